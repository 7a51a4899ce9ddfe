package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Totarae/linkbucket/internal/auth"
	"github.com/Totarae/linkbucket/internal/categorizer"
	"github.com/Totarae/linkbucket/internal/config"
	grpcv2 "github.com/Totarae/linkbucket/internal/grpc/v2"
	"github.com/Totarae/linkbucket/internal/handlers"
	"github.com/Totarae/linkbucket/internal/llm"
	"github.com/Totarae/linkbucket/internal/metadata"
	"github.com/Totarae/linkbucket/internal/router"
	"github.com/Totarae/linkbucket/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	exit(runMain(os.Args[1:]))
}

// exit завершает процесс вне main, когда отложенные вызовы runMain уже отработали.
func exit(code int) {
	os.Exit(code)
}

// runMain возвращает код завершения процесса.
func runMain(args []string) int {
	bootstrap, _ := zap.NewProduction()
	defer bootstrap.Sync()

	if err := run(args); err != nil {
		bootstrap.Error("Server stopped with error", zap.Error(err))
		return 1
	}
	return 0
}

func run(args []string) error {
	// Инициализация конфигурации
	cfg, err := config.NewConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger.Info("Starting linkbucket",
		zap.String("address", cfg.ServerAddress),
		zap.String("mode", cfg.Mode),
		zap.Bool("https", cfg.EnableHTTPS),
		zap.Bool("auto_categorize", cfg.AutoCategorize),
	)

	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	buckets := service.NewBucketService(st.Buckets, logger)
	links := service.NewLinkService(st.Links, st.Buckets, nil, logger)

	completer := llm.NewClient(llm.Config{
		BaseURL:   cfg.AnthropicBaseURL,
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.AnthropicModel,
		MaxTokens: cfg.AnthropicMaxTokens,
		Timeout:   cfg.CategorizeTimeout,
	}, logger)
	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY is not set, categorization will fail")
	}
	cat := categorizer.New(buckets, links, completer, cfg.CategorizeTimeout, logger)

	var runner *categorizer.Runner
	if cfg.AutoCategorize {
		cache, err := metadata.NewCache(cfg.MetadataCachePath, cfg.MetadataCacheTTL, logger)
		if err != nil {
			return err
		}
		defer cache.Close()

		fetcher := metadata.NewFetcher(cfg.MetadataTimeout, cache, logger)
		runner = categorizer.NewRunner(cat, fetcher, links, categorizer.RunnerConfig{
			Workers:    cfg.CategorizeWorkers,
			QueueSize:  cfg.CategorizeQueueSize,
			JobTimeout: cfg.CategorizeTimeout + cfg.MetadataTimeout,
		}, logger)
		links.Enqueuer = runner
		runner.Start()
	}

	authService, err := auth.New(auth.Config{
		JWTSecret:    cfg.JWTSecret,
		JWTPublicKey: cfg.JWTPublicKey,
		Issuer:       cfg.JWTIssuer,
		APIKey:       cfg.ShortcutAPIKey,
	}, logger)
	if err != nil {
		return err
	}
	if cfg.ShortcutAPIKey == "" {
		logger.Warn("SHORTCUT_API_KEY is not set, /save rejects every request")
	}

	handler := handlers.NewHandler(buckets, links, cat, st, logger)
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router.NewRouter(handler, authService, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var (
		grpcSrv *grpcv2.GRPCServer
		grpcLis net.Listener
	)
	if cfg.GRPCAddress != "" {
		grpcLis, err = net.Listen("tcp", cfg.GRPCAddress)
		if err != nil {
			return fmt.Errorf("listen grpc %s: %w", cfg.GRPCAddress, err)
		}
		grpcSrv = grpcv2.NewGRPCServer(st, logger)
		grpcSrv.RegisterLinkService(links, authService)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("address", cfg.ServerAddress))
		var err error
		if cfg.EnableHTTPS {
			err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if grpcSrv != nil {
		g.Go(func() error { return grpcSrv.Serve(grpcLis) })
		g.Go(func() error {
			grpcSrv.Watch(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown failed", zap.Error(err))
		}
		if grpcSrv != nil {
			grpcSrv.Shutdown()
		}
		if runner != nil {
			if err := runner.Stop(shutdownCtx); err != nil {
				logger.Warn("Categorization queue did not drain in time", zap.Error(err))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
