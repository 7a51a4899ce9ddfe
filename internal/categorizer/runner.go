package categorizer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Totarae/linkbucket/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrQueueFull очередь переполнена, ссылка останется без категории.
	ErrQueueFull = errors.New("categorization queue is full")
	// ErrStopped очередь уже остановлена.
	ErrStopped = errors.New("categorization queue is stopped")
)

// MetadataFetcher загружает заголовок и картинку страницы.
type MetadataFetcher interface {
	Fetch(ctx context.Context, rawURL string) (model.PageMetadata, error)
}

// MetadataWriter дополняет пустые поля ссылки.
type MetadataWriter interface {
	FillMetadata(ctx context.Context, userID, id string, meta model.PageMetadata) error
}

// RunnerConfig параметры фоновой очереди.
type RunnerConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// Runner фоновая очередь: обогащение метаданными и автокатегоризация
// сохранённых ссылок. Каждое задание выполняется отдельно от запроса,
// который его поставил, и его ошибки наружу не выходят.
type Runner struct {
	categorizer *Categorizer
	fetcher     MetadataFetcher
	writer      MetadataWriter
	cfg         RunnerConfig
	logger      *zap.Logger

	jobs    chan *model.Link
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewRunner создаёт очередь. fetcher и writer могут быть nil, тогда обогащение пропускается.
func NewRunner(c *Categorizer, fetcher MetadataFetcher, writer MetadataWriter, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		categorizer: c,
		fetcher:     fetcher,
		writer:      writer,
		cfg:         cfg,
		logger:      logger.With(zap.String("component", "categorize-runner")),
		jobs:        make(chan *model.Link, cfg.QueueSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start запускает воркеры.
func (r *Runner) Start() {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	r.logger.Info("Categorization workers started", zap.Int("workers", r.cfg.Workers), zap.Int("queue", r.cfg.QueueSize))
}

// Enqueue ставит ссылку в очередь, не блокируясь.
func (r *Runner) Enqueue(link *model.Link) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return ErrStopped
	}
	cp := *link
	select {
	case r.jobs <- &cp:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop закрывает очередь и ждёт завершения заданий или истечения ctx.
// Задания, не успевшие завершиться, отменяются.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	close(r.jobs)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for link := range r.jobs {
		r.process(link)
	}
}

func (r *Runner) process(link *model.Link) {
	ctx := r.ctx
	if r.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.JobTimeout)
		defer cancel()
	}
	log := r.logger.With(zap.String("link_id", link.ID))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Background job panicked", zap.Any("panic", rec))
		}
	}()

	title := model.StringValue(link.Title)
	if r.fetcher != nil && r.writer != nil && (link.Title == nil || link.ImageURL == nil) {
		meta, err := r.fetcher.Fetch(ctx, link.URL)
		if err != nil {
			log.Info("Metadata fetch failed", zap.String("url", link.URL), zap.Error(err))
		} else {
			if err := r.writer.FillMetadata(ctx, link.UserID, link.ID, meta); err != nil {
				log.Warn("Failed to store page metadata", zap.Error(err))
			}
			if title == "" {
				title = meta.Title
			}
		}
	}

	result := r.categorizer.Categorize(ctx, Request{
		LinkID: link.ID,
		UserID: link.UserID,
		Title:  title,
		Domain: model.StringValue(link.Domain),
		URL:    link.URL,
	})
	if !result.Success {
		log.Info("Link left uncategorized", zap.String("reason", result.Error))
	}
}
