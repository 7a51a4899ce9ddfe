package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Totarae/linkbucket/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// snapshot формат файла хранилища.
type snapshot struct {
	Buckets []*model.Bucket `json:"buckets"`
	Links   []*model.Link   `json:"links"`
}

// MemoryStore потокобезопасное хранилище категорий и ссылок в памяти.
// Соблюдает те же инварианты, что и схема БД: уникальность (user_id, name)
// и обнуление bucket_id у ссылок при удалении категории.
// Если задан file, состояние сохраняется в него после каждого изменения.
type MemoryStore struct {
	mutex   sync.RWMutex
	buckets map[string]*model.Bucket
	links   map[string]*model.Link
	file    string
	logger  *zap.Logger
	now     func() time.Time
}

// NewMemoryStore создаёт хранилище и загружает данные из файла, если он есть.
func NewMemoryStore(file string, logger *zap.Logger) (*MemoryStore, error) {
	s := &MemoryStore{
		buckets: make(map[string]*model.Bucket),
		links:   make(map[string]*model.Link),
		file:    file,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	if err := s.LoadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Buckets возвращает представление хранилища для категорий.
func (s *MemoryStore) Buckets() *BucketStore {
	return &BucketStore{s: s}
}

// Links возвращает представление хранилища для ссылок.
func (s *MemoryStore) Links() *LinkStore {
	return &LinkStore{s: s}
}

// Ping всегда успешен.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// LoadFromFile загружает данные из файла при старте сервера
func (s *MemoryStore) LoadFromFile() error {
	if s.file == "" {
		return nil
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Файл ещё не создан, это не ошибка
		}
		return fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode storage file %s: %w", s.file, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, b := range snap.Buckets {
		s.buckets[b.ID] = b
	}
	for _, l := range snap.Links {
		s.links[l.ID] = l
	}
	s.logger.Info("Loaded storage file",
		zap.String("file", s.file),
		zap.Int("buckets", len(s.buckets)),
		zap.Int("links", len(s.links)),
	)
	return nil
}

// persistLocked перезаписывает файл целиком. Вызывается под mutex.
func (s *MemoryStore) persistLocked() {
	if s.file == "" {
		return
	}
	snap := snapshot{
		Buckets: make([]*model.Bucket, 0, len(s.buckets)),
		Links:   make([]*model.Link, 0, len(s.links)),
	}
	for _, b := range s.buckets {
		snap.Buckets = append(snap.Buckets, b)
	}
	for _, l := range s.links {
		snap.Links = append(snap.Links, l)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("Failed to encode storage snapshot", zap.Error(err))
		return
	}
	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("Failed to write storage file", zap.String("file", tmp), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.file); err != nil {
		s.logger.Error("Failed to replace storage file", zap.String("file", s.file), zap.Error(err))
	}
}

func (s *MemoryStore) nameTakenLocked(userID, name, exceptID string) bool {
	for _, b := range s.buckets {
		if b.UserID == userID && b.Name == name && b.ID != exceptID {
			return true
		}
	}
	return false
}

// BucketStore категории поверх MemoryStore.
type BucketStore struct {
	s *MemoryStore
}

func (bs *BucketStore) ListByUser(ctx context.Context, userID string) ([]*model.Bucket, error) {
	bs.s.mutex.RLock()
	defer bs.s.mutex.RUnlock()

	result := make([]*model.Bucket, 0)
	for _, b := range bs.s.buckets {
		if b.UserID == userID {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (bs *BucketStore) GetByID(ctx context.Context, userID, id string) (*model.Bucket, error) {
	bs.s.mutex.RLock()
	defer bs.s.mutex.RUnlock()

	b, ok := bs.s.buckets[id]
	if !ok || b.UserID != userID {
		return nil, model.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (bs *BucketStore) GetByName(ctx context.Context, userID, name string) (*model.Bucket, error) {
	bs.s.mutex.RLock()
	defer bs.s.mutex.RUnlock()

	for _, b := range bs.s.buckets {
		if b.UserID == userID && b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (bs *BucketStore) Create(ctx context.Context, userID, name string) (*model.Bucket, error) {
	bs.s.mutex.Lock()
	defer bs.s.mutex.Unlock()

	if bs.s.nameTakenLocked(userID, name, "") {
		return nil, fmt.Errorf("bucket %q: %w", name, model.ErrConflict)
	}
	b := &model.Bucket{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: bs.s.now(),
	}
	bs.s.buckets[b.ID] = b
	bs.s.persistLocked()
	cp := *b
	return &cp, nil
}

func (bs *BucketStore) Rename(ctx context.Context, userID, id, name string) (*model.Bucket, error) {
	bs.s.mutex.Lock()
	defer bs.s.mutex.Unlock()

	b, ok := bs.s.buckets[id]
	if !ok || b.UserID != userID {
		return nil, model.ErrNotFound
	}
	if bs.s.nameTakenLocked(userID, name, id) {
		return nil, fmt.Errorf("bucket %q: %w", name, model.ErrConflict)
	}
	b.Name = name
	bs.s.persistLocked()
	cp := *b
	return &cp, nil
}

func (bs *BucketStore) Delete(ctx context.Context, userID, id string) error {
	bs.s.mutex.Lock()
	defer bs.s.mutex.Unlock()

	b, ok := bs.s.buckets[id]
	if !ok || b.UserID != userID {
		return nil
	}
	delete(bs.s.buckets, id)
	for _, l := range bs.s.links {
		if l.BucketID != nil && *l.BucketID == id {
			l.BucketID = nil
		}
	}
	bs.s.persistLocked()
	return nil
}

// LinkStore ссылки поверх MemoryStore.
type LinkStore struct {
	s *MemoryStore
}

func (ls *LinkStore) ListByUser(ctx context.Context, userID string) ([]*model.Link, error) {
	ls.s.mutex.RLock()
	defer ls.s.mutex.RUnlock()

	result := make([]*model.Link, 0)
	for _, l := range ls.s.links {
		if l.UserID == userID {
			result = append(result, copyLink(l))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (ls *LinkStore) GetByID(ctx context.Context, userID, id string) (*model.Link, error) {
	ls.s.mutex.RLock()
	defer ls.s.mutex.RUnlock()

	l, ok := ls.s.links[id]
	if !ok || l.UserID != userID {
		return nil, model.ErrNotFound
	}
	return copyLink(l), nil
}

func (ls *LinkStore) Create(ctx context.Context, userID string, in model.NewLink) (*model.Link, error) {
	ls.s.mutex.Lock()
	defer ls.s.mutex.Unlock()

	l := &model.Link{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       in.URL,
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		Domain:    in.Domain,
		CreatedAt: ls.s.now(),
	}
	ls.s.links[l.ID] = l
	ls.s.persistLocked()
	return copyLink(l), nil
}

func (ls *LinkStore) UpdateBucket(ctx context.Context, userID, id string, bucketID *string) (*model.Link, error) {
	ls.s.mutex.Lock()
	defer ls.s.mutex.Unlock()

	l, ok := ls.s.links[id]
	if !ok || l.UserID != userID {
		return nil, model.ErrNotFound
	}
	if bucketID != nil {
		if _, ok := ls.s.buckets[*bucketID]; !ok {
			return nil, fmt.Errorf("bucket %s does not exist", *bucketID)
		}
		v := *bucketID
		bucketID = &v
	}
	l.BucketID = bucketID
	ls.s.persistLocked()
	return copyLink(l), nil
}

func (ls *LinkStore) AssignBucketIfEmpty(ctx context.Context, userID, id, bucketID string) (bool, error) {
	ls.s.mutex.Lock()
	defer ls.s.mutex.Unlock()

	l, ok := ls.s.links[id]
	if !ok || l.UserID != userID || l.BucketID != nil {
		return false, nil
	}
	b, ok := ls.s.buckets[bucketID]
	if !ok || b.UserID != userID {
		return false, nil
	}
	l.BucketID = &bucketID
	ls.s.persistLocked()
	return true, nil
}

func (ls *LinkStore) FillMetadata(ctx context.Context, userID, id string, meta model.PageMetadata) error {
	ls.s.mutex.Lock()
	defer ls.s.mutex.Unlock()

	l, ok := ls.s.links[id]
	if !ok || l.UserID != userID {
		return model.ErrNotFound
	}
	if l.Title == nil {
		l.Title = model.StringPtr(meta.Title)
	}
	if l.ImageURL == nil {
		l.ImageURL = model.StringPtr(meta.ImageURL)
	}
	ls.s.persistLocked()
	return nil
}

func (ls *LinkStore) Delete(ctx context.Context, userID, id string) error {
	ls.s.mutex.Lock()
	defer ls.s.mutex.Unlock()

	l, ok := ls.s.links[id]
	if !ok || l.UserID != userID {
		return nil
	}
	delete(ls.s.links, id)
	ls.s.persistLocked()
	return nil
}

func copyLink(l *model.Link) *model.Link {
	cp := *l
	if l.BucketID != nil {
		v := *l.BucketID
		cp.BucketID = &v
	}
	return &cp
}
