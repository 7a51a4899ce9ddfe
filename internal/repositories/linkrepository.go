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

const linkColumns = `id, user_id, url, title, image_url, domain, bucket_id, created_at`

// LinkRepository хранит ссылки в PostgreSQL.
type LinkRepository struct {
	DB database.Querier
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db database.Querier) *LinkRepository {
	return &LinkRepository{DB: db}
}

// ListByUser возвращает ссылки пользователя, новые сначала.
func (r *LinkRepository) ListByUser(ctx context.Context, userID string) ([]*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by user: %w", err)
	}
	defer rows.Close()

	results := make([]*model.Link, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate links: %w", err)
	}
	return results, nil
}

// GetByID возвращает ссылку пользователя.
func (r *LinkRepository) GetByID(ctx context.Context, userID, id string) (*model.Link, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = $1 AND user_id = $2`
	l, err := scanLink(r.DB.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return l, nil
}

// Create сохраняет новую ссылку без категории.
func (r *LinkRepository) Create(ctx context.Context, userID string, in model.NewLink) (*model.Link, error) {
	query := `INSERT INTO links (id, user_id, url, title, image_url, domain, bucket_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, NULL, $7)
              RETURNING ` + linkColumns

	l, err := scanLink(r.DB.QueryRow(ctx, query,
		uuid.NewString(), userID, in.URL, in.Title, in.ImageURL, in.Domain, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("database insert error: %w", err)
	}
	return l, nil
}

// UpdateBucket переназначает или снимает категорию ссылки.
func (r *LinkRepository) UpdateBucket(ctx context.Context, userID, id string, bucketID *string) (*model.Link, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrNotFound
	}
	query := `UPDATE links SET bucket_id = $1
              WHERE id = $2 AND user_id = $3
              RETURNING ` + linkColumns

	l, err := scanLink(r.DB.QueryRow(ctx, query, bucketID, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("database update error: %w", err)
	}
	return l, nil
}

// AssignBucketIfEmpty назначает категорию, только если у ссылки её ещё нет.
// Возвращает false, если ссылка не найдена или категория уже выбрана.
func (r *LinkRepository) AssignBucketIfEmpty(ctx context.Context, userID, id, bucketID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	query := `UPDATE links SET bucket_id = $1
              WHERE id = $2 AND user_id = $3 AND bucket_id IS NULL
                AND EXISTS (SELECT 1 FROM buckets WHERE id = $1 AND user_id = $3)`

	tag, err := r.DB.Exec(ctx, query, bucketID, id, userID)
	if err != nil {
		return false, fmt.Errorf("database update error: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FillMetadata заполняет только пустые title и image_url.
func (r *LinkRepository) FillMetadata(ctx context.Context, userID, id string, meta model.PageMetadata) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrNotFound
	}
	query := `UPDATE links
              SET title = COALESCE(title, $1), image_url = COALESCE(image_url, $2)
              WHERE id = $3 AND user_id = $4`

	tag, err := r.DB.Exec(ctx, query, model.StringPtr(meta.Title), model.StringPtr(meta.ImageURL), id, userID)
	if err != nil {
		return fmt.Errorf("database update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete удаляет ссылку пользователя. Отсутствие строки ошибкой не считается.
func (r *LinkRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	_, err := r.DB.Exec(ctx, `DELETE FROM links WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

func scanLink(row pgx.Row) (*model.Link, error) {
	l := &model.Link{}
	err := row.Scan(&l.ID, &l.UserID, &l.URL, &l.Title, &l.ImageURL, &l.Domain, &l.BucketID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}
