package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/linkbucket/internal/model"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const keyPrefix = "meta:"

// Cache хранит метаданные страниц по URL с ограниченным сроком жизни.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache открывает кэш. Пустой path означает хранение в памяти.
func NewCache(path string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger: logger.Sugar().With("component", "badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open metadata cache at %q: %w", path, err)
	}
	logger.Info("Metadata cache opened", zap.String("path", path), zap.Duration("ttl", ttl))
	return &Cache{db: db, ttl: ttl, logger: logger}, nil
}

// Get возвращает закэшированные метаданные. ok == false, если записи нет или она истекла.
func (c *Cache) Get(rawURL string) (meta model.PageMetadata, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + rawURL))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.PageMetadata{}, false, nil
	}
	if err != nil {
		return model.PageMetadata{}, false, fmt.Errorf("read metadata cache: %w", err)
	}
	return meta, true, nil
}

// Set сохраняет метаданные страницы.
func (c *Cache) Set(rawURL string, meta model.PageMetadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(keyPrefix+rawURL), payload)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Close закрывает базу кэша.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close metadata cache", zap.Error(err))
		return err
	}
	return nil
}

// badgerLogger направляет внутренние сообщения badger в zap.
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.logger.Warnf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.logger.Debugf(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.logger.Debugf(f, v...) }
