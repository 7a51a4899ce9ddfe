package main

import (
	"context"
	"fmt"

	"github.com/Totarae/linkbucket/internal/config"
	"github.com/Totarae/linkbucket/internal/database"
	"github.com/Totarae/linkbucket/internal/repositories"
	"github.com/Totarae/linkbucket/internal/service"
	"github.com/Totarae/linkbucket/internal/storage"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// stores хранилище, выбранное по режиму работы.
type stores struct {
	Buckets service.BucketRepository
	Links   service.LinkRepository
	pinger  pinger
	close   func()
}

func (s *stores) Ping(ctx context.Context) error {
	return s.pinger.Ping(ctx)
}

func (s *stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// databaseStores строит репозитории PostgreSQL поверх db и передаёт ему владение соединением.
func databaseStores(db database.DBInterface) *stores {
	return &stores{
		Buckets: repositories.NewBucketRepository(db),
		Links:   repositories.NewLinkRepository(db),
		pinger:  db,
		close:   db.Close,
	}
}

// openStorage подключает PostgreSQL (с миграциями) или хранилище в памяти с файлом.
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.Mode == config.ModeDatabase {
		db, err := database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return databaseStores(db), nil
	}

	file := ""
	if cfg.Mode == config.ModeFile {
		file = cfg.FileStoragePath
	}
	mem, err := storage.NewMemoryStore(file, logger)
	if err != nil {
		return nil, fmt.Errorf("open memory storage: %w", err)
	}
	return &stores{
		Buckets: mem.Buckets(),
		Links:   mem.Links(),
		pinger:  mem,
	}, nil
}
