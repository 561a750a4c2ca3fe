package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/loan-insights/internal/application"
	appanalysis "github.com/bryanwahyu/loan-insights/internal/application/analysis"
	"github.com/bryanwahyu/loan-insights/internal/config"
	"github.com/bryanwahyu/loan-insights/internal/infra/chart"
	"github.com/bryanwahyu/loan-insights/internal/infra/httpserver"
	"github.com/bryanwahyu/loan-insights/internal/infra/logging"
	"github.com/bryanwahyu/loan-insights/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	checkers := map[string]middleware.HealthChecker{}

	// koneksi database (source SQL dan/atau audit log)
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
	}
	if db != nil {
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	src, err := newSource(cfg, db)
	if err != nil {
		return err
	}
	summarizer := newSummarizer(cfg)

	analyzer := &appanalysis.Analyzer{
		Source:     src,
		Renderer:   chart.NewRenderer(),
		Summarizer: summarizer,
		Dataset:    cfg.Source.Dataset,
		Clock:      application.SystemClock{},
		Logger:     logger.Named("analyzer"),
	}

	opts := []appanalysis.Option{appanalysis.WithLogger(logger.Named("cache"))}

	if cfg.Minio.Enabled {
		store, err := newChartArchive(ctx, cfg)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		opts = append(opts, appanalysis.WithArchive(store))
		checkers["minio"] = middleware.CheckerFunc(store.Ping)
	}

	if cfg.Audit.Enabled && db != nil {
		reports, failures, err := newAuditRepositories(ctx, cfg, db)
		if err != nil {
			return fmt.Errorf("audit init: %w", err)
		}
		opts = append(opts,
			appanalysis.WithReportRepository(reports),
			appanalysis.WithFailureRepository(failures),
		)
	}

	cache := appanalysis.NewCache(analyzer, opts...)
	checkers["analysis_cache"] = middleware.CheckerFunc(func(context.Context) error {
		return cache.Err()
	})

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitRefill)
		defer limiter.Close()
	}

	handler := httpserver.NewRouter(cache, httpserver.Options{
		Logger:      logger.Named("http"),
		Metrics:     middleware.NewMetrics(),
		RateLimiter: limiter,
		Checkers:    checkers,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// build cache di background, endpoint sudah bisa diakses
	buildCtx, cancelBuild := context.WithTimeout(ctx, cfg.Build.Timeout)
	defer cancelBuild()
	go func() {
		if err := cache.Build(buildCtx); err != nil {
			logger.Error("analysis cache incomplete",
				zap.Strings("available", names(cache.Available())),
				zap.Error(err))
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return err
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
