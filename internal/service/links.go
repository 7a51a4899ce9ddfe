package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Totarae/linkbucket/internal/model"
	"github.com/Totarae/linkbucket/internal/util"
	"go.uber.org/zap"
)

// LinkService операции над ссылками одного пользователя.
type LinkService struct {
	Repo     LinkRepository
	Buckets  BucketRepository
	Enqueuer Enqueuer
	Logger   *zap.Logger
}

// NewLinkService создаёт сервис. enqueuer может быть nil, тогда фоновая обработка отключена.
func NewLinkService(repo LinkRepository, buckets BucketRepository, enqueuer Enqueuer, logger *zap.Logger) *LinkService {
	return &LinkService{
		Repo:     repo,
		Buckets:  buckets,
		Enqueuer: enqueuer,
		Logger:   logger,
	}
}

// List возвращает ссылки пользователя, новые сначала.
func (s *LinkService) List(ctx context.Context, userID string) ([]*model.Link, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Create сохраняет ссылку и ставит её в фоновую обработку.
// Ошибка постановки в очередь только логируется: сохранение уже состоялось.
func (s *LinkService) Create(ctx context.Context, userID string, req model.CreateLinkRequest) (*model.Link, error) {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return nil, model.NewValidationError("url", "URL is required")
	}

	in := model.NewLink{
		URL:      rawURL,
		Title:    model.StringPtr(model.StringValue(req.Title)),
		ImageURL: model.StringPtr(model.StringValue(req.ImageURL)),
		Domain:   model.StringPtr(model.StringValue(req.Domain)),
	}
	if in.Domain == nil {
		in.Domain = model.StringPtr(util.ExtractDomain(rawURL))
	}

	link, err := s.Repo.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	if s.Enqueuer != nil {
		if err := s.Enqueuer.Enqueue(link); err != nil {
			s.Logger.Warn("Failed to enqueue link for categorization",
				zap.String("link_id", link.ID),
				zap.Error(err),
			)
		}
	}
	return link, nil
}

// UpdateBucket переназначает категорию ссылки или снимает её (bucketID == nil).
// Категория должна принадлежать тому же пользователю.
func (s *LinkService) UpdateBucket(ctx context.Context, userID, id string, bucketID *string) (*model.Link, error) {
	if bucketID != nil && *bucketID == "" {
		bucketID = nil
	}
	if bucketID != nil {
		if _, err := s.Buckets.GetByID(ctx, userID, *bucketID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, fmt.Errorf("bucket %s: %w", *bucketID, model.ErrNotFound)
			}
			return nil, err
		}
	}
	return s.Repo.UpdateBucket(ctx, userID, id, bucketID)
}

// AssignBucket записывает категорию, выбранную автоматически, только если
// пользователь ещё не выбрал её сам.
func (s *LinkService) AssignBucket(ctx context.Context, userID, id, bucketID string) (bool, error) {
	return s.Repo.AssignBucketIfEmpty(ctx, userID, id, bucketID)
}

// FillMetadata дополняет пустые поля ссылки данными страницы.
func (s *LinkService) FillMetadata(ctx context.Context, userID, id string, meta model.PageMetadata) error {
	return s.Repo.FillMetadata(ctx, userID, id, meta)
}

// Delete удаляет ссылку. Удаление несуществующей ссылки не ошибка.
func (s *LinkService) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}
