package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/linkbucket/internal/database"
	"github.com/Totarae/linkbucket/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BucketRepository хранит категории в PostgreSQL.
type BucketRepository struct {
	DB database.Querier
}

// NewBucketRepository создаёт новый экземпляр BucketRepository.
func NewBucketRepository(db database.Querier) *BucketRepository {
	return &BucketRepository{DB: db}
}

// ListByUser возвращает категории пользователя по алфавиту.
func (r *BucketRepository) ListByUser(ctx context.Context, userID string) ([]*model.Bucket, error) {
	query := `SELECT id, user_id, name, created_at FROM buckets WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query buckets by user: %w", err)
	}
	defer rows.Close()

	results := make([]*model.Bucket, 0)
	for rows.Next() {
		b := &model.Bucket{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buckets: %w", err)
	}
	return results, nil
}

// GetByID возвращает категорию пользователя по идентификатору.
func (r *BucketRepository) GetByID(ctx context.Context, userID, id string) (*model.Bucket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}
	query := `SELECT id, user_id, name, created_at FROM buckets WHERE id = $1 AND user_id = $2`
	return r.scanOne(ctx, query, id, userID)
}

// GetByName точный поиск по паре (user_id, name).
func (r *BucketRepository) GetByName(ctx context.Context, userID, name string) (*model.Bucket, error) {
	query := `SELECT id, user_id, name, created_at FROM buckets WHERE user_id = $1 AND name = $2`
	return r.scanOne(ctx, query, userID, name)
}

// Create вставляет категорию. Нарушение уникальности возвращается как model.ErrConflict.
func (r *BucketRepository) Create(ctx context.Context, userID, name string) (*model.Bucket, error) {
	query := `INSERT INTO buckets (id, user_id, name, created_at)
              VALUES ($1, $2, $3, $4)
              RETURNING id, user_id, name, created_at`

	b := &model.Bucket{}
	err := r.DB.QueryRow(ctx, query, uuid.NewString(), userID, name, time.Now().UTC()).
		Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("bucket %q: %w", name, model.ErrConflict)
		}
		return nil, fmt.Errorf("database insert error: %w", err)
	}
	return b, nil
}

// Rename меняет имя категории пользователя.
func (r *BucketRepository) Rename(ctx context.Context, userID, id, name string) (*model.Bucket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}
	query := `UPDATE buckets SET name = $1
              WHERE id = $2 AND user_id = $3
              RETURNING id, user_id, name, created_at`

	b := &model.Bucket{}
	err := r.DB.QueryRow(ctx, query, name, id, userID).Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("bucket %q: %w", name, model.ErrConflict)
		}
		return nil, fmt.Errorf("database update error: %w", err)
	}
	return b, nil
}

// Delete удаляет категорию. Ссылки отвязываются внешним ключом ON DELETE SET NULL.
func (r *BucketRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	_, err := r.DB.Exec(ctx, `DELETE FROM buckets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}
	return nil
}

func (r *BucketRepository) scanOne(ctx context.Context, query string, args ...any) (*model.Bucket, error) {
	b := &model.Bucket{}
	err := r.DB.QueryRow(ctx, query, args...).Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return b, nil
}
