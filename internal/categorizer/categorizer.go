package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Totarae/linkbucket/internal/llm"
	"github.com/Totarae/linkbucket/internal/model"
	"go.uber.org/zap"
)

// BucketSource категории пользователя. Реализуется service.BucketService.
type BucketSource interface {
	List(ctx context.Context, userID string) ([]*model.Bucket, error)
	Create(ctx context.Context, userID, name string) (*model.Bucket, error)
	FindByName(ctx context.Context, userID, name string) (*model.Bucket, error)
}

// LinkAssigner запись выбранной категории. Реализуется service.LinkService.
type LinkAssigner interface {
	AssignBucket(ctx context.Context, userID, linkID, bucketID string) (bool, error)
}

// Request данные свежесохранённой ссылки.
type Request struct {
	LinkID string
	UserID string
	Title  string
	Domain string
	URL    string
}

// Categorizer подбирает ссылке категорию с помощью модели.
type Categorizer struct {
	Buckets BucketSource
	Links   LinkAssigner
	Model   llm.Completer
	Timeout time.Duration
	Logger  *zap.Logger
}

func New(buckets BucketSource, links LinkAssigner, completer llm.Completer, timeout time.Duration, logger *zap.Logger) *Categorizer {
	return &Categorizer{
		Buckets: buckets,
		Links:   links,
		Model:   completer,
		Timeout: timeout,
		Logger:  logger.With(zap.String("component", "categorizer")),
	}
}

// Categorize выполняет один проход: категории -> модель -> разбор -> выбор -> запись.
// Никогда не возвращает ошибку и не паникует наружу: любой сбой попадает в результат.
func (c *Categorizer) Categorize(ctx context.Context, req Request) (result model.CategorizeResult) {
	log := c.Logger.With(zap.String("link_id", req.LinkID), zap.String("user_id", req.UserID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Categorization panicked", zap.Any("panic", r))
			result = failed(fmt.Errorf("internal error: %v", r))
		}
	}()

	res, err := c.run(ctx, req, log)
	if err != nil {
		log.Warn("Categorization failed", zap.Error(err))
		return failed(err)
	}
	return res
}

func (c *Categorizer) run(ctx context.Context, req Request, log *zap.Logger) (model.CategorizeResult, error) {
	buckets, err := c.Buckets.List(ctx, req.UserID)
	if err != nil {
		return model.CategorizeResult{}, fmt.Errorf("load buckets: %w", err)
	}
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	log.Debug("Buckets loaded", zap.Int("count", len(buckets)))

	modelCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		modelCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	text, err := c.Model.Complete(modelCtx, BuildPrompt(req.Title, req.Domain, req.URL, names))
	if err != nil {
		return model.CategorizeResult{}, err
	}
	log.Debug("Model queried", zap.String("reply", text))

	suggestion, err := ParseSuggestion(text)
	if err != nil {
		return model.CategorizeResult{}, err
	}
	log.Debug("Suggestion parsed", zap.String("bucket", suggestion.Bucket), zap.Bool("is_new", suggestion.IsNew))

	bucket := c.resolve(ctx, req.UserID, suggestion, buckets, log)

	bucketName := suggestion.Bucket
	var bucketID *string
	if bucket != nil {
		bucketID = &bucket.ID
		bucketName = bucket.Name

		assigned, err := c.Links.AssignBucket(ctx, req.UserID, req.LinkID, bucket.ID)
		if err != nil {
			return model.CategorizeResult{}, fmt.Errorf("assign bucket: %w", err)
		}
		if !assigned {
			log.Info("Link already has a bucket or is gone, leaving it as is", zap.String("bucket_id", bucket.ID))
		} else {
			log.Info("Link categorized", zap.String("bucket_id", bucket.ID), zap.String("bucket", bucket.Name))
		}
	} else {
		log.Info("Suggested bucket could not be resolved", zap.String("bucket", suggestion.Bucket))
	}

	return model.CategorizeResult{
		Success:    true,
		BucketID:   bucketID,
		BucketName: &bucketName,
		IsNew:      suggestion.IsNew,
	}, nil
}

// resolve находит или создаёт категорию по подсказке модели. nil, если не удалось.
func (c *Categorizer) resolve(ctx context.Context, userID string, s model.Suggestion, existing []*model.Bucket, log *zap.Logger) *model.Bucket {
	if match := findFold(existing, s.Bucket); match != nil {
		return match
	}
	if !s.IsNew {
		return nil
	}

	created, err := c.Buckets.Create(ctx, userID, s.Bucket)
	if err == nil {
		return created
	}
	if !errors.Is(err, model.ErrConflict) {
		log.Warn("Failed to create suggested bucket", zap.String("bucket", s.Bucket), zap.Error(err))
	}

	// Скорее всего параллельный запрос уже создал такую категорию.
	found, err := c.Buckets.FindByName(ctx, userID, s.Bucket)
	if err != nil {
		log.Warn("Fallback bucket lookup failed", zap.String("bucket", s.Bucket), zap.Error(err))
		return nil
	}
	return found
}

func findFold(buckets []*model.Bucket, name string) *model.Bucket {
	for _, b := range buckets {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

func failed(err error) model.CategorizeResult {
	return model.CategorizeResult{Success: false, Error: err.Error()}
}
