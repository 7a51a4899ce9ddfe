package service

import (
	"context"

	"github.com/Totarae/linkbucket/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// BucketRepository хранилище категорий. Реализации: repositories.BucketRepository и storage.BucketStore.
type BucketRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Bucket, error)
	GetByID(ctx context.Context, userID, id string) (*model.Bucket, error)
	GetByName(ctx context.Context, userID, name string) (*model.Bucket, error)
	Create(ctx context.Context, userID, name string) (*model.Bucket, error)
	Rename(ctx context.Context, userID, id, name string) (*model.Bucket, error)
	Delete(ctx context.Context, userID, id string) error
}

// LinkRepository хранилище ссылок. Реализации: repositories.LinkRepository и storage.LinkStore.
type LinkRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Link, error)
	GetByID(ctx context.Context, userID, id string) (*model.Link, error)
	Create(ctx context.Context, userID string, in model.NewLink) (*model.Link, error)
	UpdateBucket(ctx context.Context, userID, id string, bucketID *string) (*model.Link, error)
	AssignBucketIfEmpty(ctx context.Context, userID, id, bucketID string) (bool, error)
	FillMetadata(ctx context.Context, userID, id string, meta model.PageMetadata) error
	Delete(ctx context.Context, userID, id string) error
}

// Enqueuer ставит свежесохранённую ссылку в фоновую обработку.
type Enqueuer interface {
	Enqueue(link *model.Link) error
}
