package service

import (
	"context"
	"strings"

	"github.com/Totarae/linkbucket/internal/model"
	"go.uber.org/zap"
)

// BucketService операции над категориями одного пользователя.
type BucketService struct {
	Repo      BucketRepository
	Validator *model.Validator
	Logger    *zap.Logger
}

func NewBucketService(repo BucketRepository, logger *zap.Logger) *BucketService {
	return &BucketService{
		Repo:      repo,
		Validator: model.NewValidator(),
		Logger:    logger,
	}
}

// List возвращает категории пользователя, отсортированные по имени.
func (s *BucketService) List(ctx context.Context, userID string) ([]*model.Bucket, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Create создаёт категорию. Имя обрезается по краям.
func (s *BucketService) Create(ctx context.Context, userID, name string) (*model.Bucket, error) {
	trimmed, err := s.normalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, userID, trimmed)
}

// Rename переименовывает категорию пользователя.
func (s *BucketService) Rename(ctx context.Context, userID, id, name string) (*model.Bucket, error) {
	trimmed, err := s.normalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.Repo.Rename(ctx, userID, id, trimmed)
}

// Delete удаляет категорию. Удаление несуществующей категории не ошибка.
func (s *BucketService) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

// Get возвращает категорию пользователя или model.ErrNotFound.
func (s *BucketService) Get(ctx context.Context, userID, id string) (*model.Bucket, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

// FindByName точный поиск по имени.
func (s *BucketService) FindByName(ctx context.Context, userID, name string) (*model.Bucket, error) {
	return s.Repo.GetByName(ctx, userID, name)
}

func (s *BucketService) normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", model.NewValidationError("name", "Bucket name is required")
	}
	if err := s.Validator.Var("name", trimmed, "max=100"); err != nil {
		return "", err
	}
	return trimmed, nil
}
