// Package main собирает multichecker для проверки linkbucket.
//
// Набор:
//   - анализаторы go/analysis/passes, полезные для HTTP-сервиса
//     (lostcancel и httpresponse ловят утечки контекстов и тел ответов);
//   - SA-анализаторы staticcheck;
//   - S1000 из simple и U1000 из unused;
//   - bodyclose;
//   - noexit: os.Exit и log.Fatal* в main;
//   - nobackground: context.Background и context.TODO в обработчиках HTTP.
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/fieldalignment"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/unused"

	"github.com/Totarae/linkbucket/cmd/staticlint/nobackground"
	"github.com/Totarae/linkbucket/cmd/staticlint/noexit"
)

func main() {
	analyzers := []*analysis.Analyzer{
		copylock.Analyzer,
		errorsas.Analyzer,
		fieldalignment.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			analyzers = append(analyzers, a.Analyzer)
		}
	}
	if a := findAnalyzer(simple.Analyzers, "S1000"); a != nil {
		analyzers = append(analyzers, a)
	}
	analyzers = append(analyzers, unused.Analyzer.Analyzer)

	analyzers = append(analyzers,
		bodyclose.Analyzer,
		noexit.NewAnalyzer(),
		nobackground.Analyzer,
	)

	multichecker.Main(analyzers...)
}

func findAnalyzer(set []*lint.Analyzer, name string) *analysis.Analyzer {
	for _, a := range set {
		if a.Analyzer.Name == name {
			return a.Analyzer
		}
	}
	return nil
}
