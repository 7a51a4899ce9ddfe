package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Totarae/linkbucket/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, file string) *MemoryStore {
	t.Helper()
	s, err := NewMemoryStore(file, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestBucketStore_CreateConflict(t *testing.T) {
	ctx := context.Background()
	buckets := newTestStore(t, "").Buckets()

	_, err := buckets.Create(ctx, "u1", "Tech")
	require.NoError(t, err)

	_, err = buckets.Create(ctx, "u1", "Tech")
	assert.ErrorIs(t, err, model.ErrConflict)

	// Сравнение регистрозависимое, как в уникальном индексе.
	_, err = buckets.Create(ctx, "u1", "tech")
	assert.NoError(t, err)

	// Другой пользователь может завести такое же имя.
	_, err = buckets.Create(ctx, "u2", "Tech")
	assert.NoError(t, err)
}

func TestBucketStore_RenameToOwnName(t *testing.T) {
	ctx := context.Background()
	buckets := newTestStore(t, "").Buckets()

	b, err := buckets.Create(ctx, "u1", "News")
	require.NoError(t, err)

	renamed, err := buckets.Rename(ctx, "u1", b.ID, "News")
	require.NoError(t, err)
	assert.Equal(t, "News", renamed.Name)

	_, err = buckets.Rename(ctx, "u2", b.ID, "Other")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBucketStore_ListSortedAndScoped(t *testing.T) {
	ctx := context.Background()
	buckets := newTestStore(t, "").Buckets()

	for _, name := range []string{"Work", "Art", "News"} {
		_, err := buckets.Create(ctx, "u1", name)
		require.NoError(t, err)
	}
	_, err := buckets.Create(ctx, "u2", "Bikes")
	require.NoError(t, err)

	list, err := buckets.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Art", list[0].Name)
	assert.Equal(t, "News", list[1].Name)
	assert.Equal(t, "Work", list[2].Name)
	for _, b := range list {
		assert.Equal(t, "u1", b.UserID)
	}
}

func TestBucketStore_DeleteDetachesLinks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "")
	buckets, links := s.Buckets(), s.Links()

	b, err := buckets.Create(ctx, "u1", "Reading")
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 3; i++ {
		l, err := links.Create(ctx, "u1", model.NewLink{URL: "https://example.com"})
		require.NoError(t, err)
		_, err = links.UpdateBucket(ctx, "u1", l.ID, &b.ID)
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	require.NoError(t, buckets.Delete(ctx, "u1", b.ID))
	// Повторное удаление не ошибка.
	require.NoError(t, buckets.Delete(ctx, "u1", b.ID))

	for _, id := range ids {
		l, err := links.GetByID(ctx, "u1", id)
		require.NoError(t, err)
		assert.Nil(t, l.BucketID)
	}
}

func TestLinkStore_CreateListRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	links := s.Links()

	first, err := links.Create(ctx, "u1", model.NewLink{URL: "https://a.example"})
	require.NoError(t, err)
	second, err := links.Create(ctx, "u1", model.NewLink{
		URL:      "https://b.example/post",
		Title:    model.StringPtr("Post"),
		ImageURL: model.StringPtr("https://b.example/og.png"),
		Domain:   model.StringPtr("b.example"),
	})
	require.NoError(t, err)
	_, err = links.Create(ctx, "u2", model.NewLink{URL: "https://c.example"})
	require.NoError(t, err)

	list, err := links.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	got := list[0]
	assert.Equal(t, "https://b.example/post", got.URL)
	assert.Equal(t, "Post", model.StringValue(got.Title))
	assert.Equal(t, "https://b.example/og.png", model.StringValue(got.ImageURL))
	assert.Equal(t, "b.example", model.StringValue(got.Domain))
	assert.Nil(t, got.BucketID)
}

func TestLinkStore_AssignBucketIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "")
	buckets, links := s.Buckets(), s.Links()

	manual, err := buckets.Create(ctx, "u1", "Manual")
	require.NoError(t, err)
	auto, err := buckets.Create(ctx, "u1", "Auto")
	require.NoError(t, err)
	foreign, err := buckets.Create(ctx, "u2", "Foreign")
	require.NoError(t, err)

	l, err := links.Create(ctx, "u1", model.NewLink{URL: "https://example.com"})
	require.NoError(t, err)

	ok, err := links.AssignBucketIfEmpty(ctx, "u1", l.ID, foreign.ID)
	require.NoError(t, err)
	assert.False(t, ok, "bucket of another user must not be assigned")

	_, err = links.UpdateBucket(ctx, "u1", l.ID, &manual.ID)
	require.NoError(t, err)

	ok, err = links.AssignBucketIfEmpty(ctx, "u1", l.ID, auto.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := links.GetByID(ctx, "u1", l.ID)
	require.NoError(t, err)
	assert.Equal(t, manual.ID, model.StringValue(got.BucketID))
}

func TestLinkStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	links := newTestStore(t, "").Links()

	l, err := links.Create(ctx, "u1", model.NewLink{URL: "https://example.com"})
	require.NoError(t, err)

	assert.NoError(t, links.Delete(ctx, "u2", l.ID))
	_, err = links.GetByID(ctx, "u1", l.ID)
	require.NoError(t, err, "other user must not delete the link")

	assert.NoError(t, links.Delete(ctx, "u1", l.ID))
	assert.NoError(t, links.Delete(ctx, "u1", l.ID))

	_, err = links.GetByID(ctx, "u1", l.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestLinkStore_FillMetadataKeepsExisting(t *testing.T) {
	ctx := context.Background()
	links := newTestStore(t, "").Links()

	l, err := links.Create(ctx, "u1", model.NewLink{URL: "https://example.com", Title: model.StringPtr("Mine")})
	require.NoError(t, err)

	err = links.FillMetadata(ctx, "u1", l.ID, model.PageMetadata{Title: "Page", ImageURL: "https://example.com/i.png"})
	require.NoError(t, err)

	got, err := links.GetByID(ctx, "u1", l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", model.StringValue(got.Title))
	assert.Equal(t, "https://example.com/i.png", model.StringValue(got.ImageURL))
}

func TestBucketStore_ConcurrentCreateSingleWinner(t *testing.T) {
	ctx := context.Background()
	buckets := newTestStore(t, "").Buckets()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := buckets.Create(ctx, "u1", "Recipes")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, model.ErrConflict)
	}
	assert.Equal(t, 1, created)
}

// Тест сохранения и загрузки данных из файла
func TestMemoryStore_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "store.json")

	s := newTestStore(t, file)
	b, err := s.Buckets().Create(ctx, "u1", "Tech")
	require.NoError(t, err)
	l, err := s.Links().Create(ctx, "u1", model.NewLink{URL: "https://go.dev"})
	require.NoError(t, err)
	_, err = s.Links().UpdateBucket(ctx, "u1", l.ID, &b.ID)
	require.NoError(t, err)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "go.dev")

	reloaded := newTestStore(t, file)
	got, err := reloaded.Links().GetByID(ctx, "u1", l.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, model.StringValue(got.BucketID))

	_, err = reloaded.Buckets().Create(ctx, "u1", "Tech")
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestMemoryStore_BrokenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, err := NewMemoryStore(file, zap.NewNop())
	assert.Error(t, err)
}
