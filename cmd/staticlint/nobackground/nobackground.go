// Package nobackground запрещает context.Background и context.TODO в пакете handlers.
// Обработчик обязан передавать дальше r.Context(), иначе отмена запроса не доходит до БД.
package nobackground

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "nobackground",
	Doc:  "запрещает context.Background и context.TODO в пакете handlers вне тестов",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "handlers" {
		return nil, nil
	}

	for _, file := range pass.Files {
		name := pass.Fset.File(file.Pos()).Name()
		if strings.HasSuffix(name, "_test.go") {
			continue
		}

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if !ok {
				return true
			}
			switch fn.FullName() {
			case "context.Background", "context.TODO":
				pass.Reportf(call.Pos(), "%s в обработчике: используйте r.Context()", fn.FullName())
			}
			return true
		})
	}
	return nil, nil
}
