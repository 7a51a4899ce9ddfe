package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Totarae/linkbucket/internal/auth"
	"github.com/Totarae/linkbucket/internal/categorizer"
	"github.com/Totarae/linkbucket/internal/model"
	"github.com/Totarae/linkbucket/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// Categorizer синхронный запуск автокатегоризации для POST /categorize.
type Categorizer interface {
	Categorize(ctx context.Context, req categorizer.Request) model.CategorizeResult
}

// Pinger проверка доступности хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Buckets     *service.BucketService
	Links       *service.LinkService
	Categorizer Categorizer
	Pinger      Pinger
	Validator   *model.Validator
	Logger      *zap.Logger
}

func NewHandler(buckets *service.BucketService, links *service.LinkService, c Categorizer, pinger Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Buckets:     buckets,
		Links:       links,
		Categorizer: c,
		Pinger:      pinger,
		Validator:   model.NewValidator(),
		Logger:      logger,
	}
}

// ListBuckets GET /buckets
func (h *Handler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	buckets, err := h.Buckets.List(r.Context(), userID)
	if err != nil {
		h.fail(w, err, "", "Failed to load buckets")
		return
	}
	if buckets == nil {
		buckets = []*model.Bucket{}
	}
	h.writeJSON(w, http.StatusOK, model.BucketsResponse{Buckets: buckets})
}

// CreateBucket POST /buckets
func (h *Handler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req model.BucketRequest
	if !h.decode(w, r, &req) {
		return
	}
	bucket, err := h.Buckets.Create(r.Context(), userID, req.Name)
	if err != nil {
		h.fail(w, err, "", "Failed to create bucket")
		return
	}
	h.writeJSON(w, http.StatusCreated, model.BucketResponse{Bucket: bucket})
}

// RenameBucket PUT /buckets/{id}
func (h *Handler) RenameBucket(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "Bucket ID is required")
		return
	}
	var req model.BucketRequest
	if !h.decode(w, r, &req) {
		return
	}
	bucket, err := h.Buckets.Rename(r.Context(), userID, id, req.Name)
	if err != nil {
		h.fail(w, err, "Bucket not found", "Failed to rename bucket")
		return
	}
	h.writeJSON(w, http.StatusOK, model.BucketResponse{Bucket: bucket})
}

// DeleteBucket DELETE /buckets/{id}. Ссылки категории становятся несортированными.
func (h *Handler) DeleteBucket(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := h.Buckets.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, err, "", "Failed to delete bucket")
		return
	}
	h.writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// ListLinks GET /links
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	links, err := h.Links.List(r.Context(), userID)
	if err != nil {
		h.fail(w, err, "", "Failed to load links")
		return
	}
	if links == nil {
		links = []*model.Link{}
	}
	h.writeJSON(w, http.StatusOK, model.LinksResponse{Links: links})
}

// CreateLink POST /links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	link, ok := h.createLink(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusCreated, model.LinkResponse{Link: link})
}

// SaveLink POST /save, вход для ярлыка на телефоне. Пользователь берётся из X-User-Id.
func (h *Handler) SaveLink(w http.ResponseWriter, r *http.Request) {
	link, ok := h.createLink(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusCreated, model.SaveLinkResponse{Success: true, Link: link})
}

func (h *Handler) createLink(w http.ResponseWriter, r *http.Request) (*model.Link, bool) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req model.CreateLinkRequest
	if !h.decode(w, r, &req) {
		return nil, false
	}
	link, err := h.Links.Create(r.Context(), userID, req)
	if err != nil {
		h.fail(w, err, "", "Failed to save link")
		return nil, false
	}
	return link, true
}

// UpdateLink PUT /links/{id}: {"bucketId": "..."} или {"bucketId": null}.
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "Link ID is required")
		return
	}
	var req model.UpdateLinkRequest
	if !h.decode(w, r, &req) {
		return
	}
	link, err := h.Links.UpdateBucket(r.Context(), userID, id, req.BucketID)
	if err != nil {
		h.fail(w, err, "Link not found", "Failed to update link")
		return
	}
	h.writeJSON(w, http.StatusOK, model.LinkResponse{Link: link})
}

// DeleteLink DELETE /links/{id}
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := h.Links.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, err, "", "Failed to delete link")
		return
	}
	h.writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// Categorize POST /categorize. Неудачный результат отдаётся как 500 {success:false,error}.
func (h *Handler) Categorize(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req model.CategorizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		h.fail(w, err, "", "")
		return
	}

	result := h.Categorizer.Categorize(r.Context(), categorizer.Request{
		LinkID: req.LinkID,
		UserID: userID,
		Title:  model.StringValue(req.Title),
		Domain: model.StringValue(req.Domain),
		URL:    req.URL,
	})
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	h.writeJSON(w, status, result)
}

// Ping GET /ping, проверка хранилища.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if h.Pinger != nil {
		if err := h.Pinger.Ping(r.Context()); err != nil {
			h.Logger.Error("Storage ping failed", zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "Storage unavailable")
			return
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// MethodNotAllowed ответ 405 в формате API.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound ответ 404 для неизвестных путей.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, "Not found")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		h.Logger.Debug("Failed to decode request body", zap.String("uri", r.RequestURI), zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// fail переводит ошибку сервиса в код ответа. Внутренние ошибки наружу не отдаются.
func (h *Handler) fail(w http.ResponseWriter, err error, notFoundMsg, internalMsg string) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, model.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "Not found"
		}
		h.writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, model.ErrConflict):
		h.writeError(w, http.StatusConflict, "A bucket with this name already exists")
	default:
		h.Logger.Error(internalMsg, zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warn("Failed to write response", zap.Error(err))
	}
}
