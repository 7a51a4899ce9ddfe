package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/Totarae/linkbucket/internal/auth"
	"github.com/Totarae/linkbucket/internal/model"
	"github.com/Totarae/linkbucket/internal/service"
	"github.com/Totarae/linkbucket/internal/storage"
	"go.uber.org/zap"
)

// ExampleHandler_SaveLink демонстрирует работу метода SaveLink.
func ExampleHandler_SaveLink() {
	logger := zap.NewNop()
	store, _ := storage.NewMemoryStore("", logger)
	buckets := service.NewBucketService(store.Buckets(), logger)
	links := service.NewLinkService(store.Links(), store.Buckets(), nil, logger)

	h := NewHandler(buckets, links, nil, store, logger)

	body := `{"url":"https://www.yandex.ru/maps","title":"Карты"}`
	req := httptest.NewRequest(http.MethodPost, "/save", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithUserID(req.Context(), "user_42"))
	rec := httptest.NewRecorder()

	h.SaveLink(rec, req)
	resp := rec.Result()
	defer resp.Body.Close()

	var result model.SaveLinkResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)

	fmt.Println(resp.StatusCode)
	fmt.Println(result.Success, result.Link.UserID, *result.Link.Domain)

	// Output:
	// 201
	// true user_42 yandex.ru
}
