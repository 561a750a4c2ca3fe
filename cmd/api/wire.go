package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bryanwahyu/loan-insights/internal/config"
	domai "github.com/bryanwahyu/loan-insights/internal/domain/ai"
	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
	"github.com/bryanwahyu/loan-insights/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/loan-insights/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/loan-insights/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/loan-insights/internal/infra/db/postgres"
	sqlitep "github.com/bryanwahyu/loan-insights/internal/infra/db/sqlite"
	"github.com/bryanwahyu/loan-insights/internal/infra/source"
	minioStore "github.com/bryanwahyu/loan-insights/internal/infra/storage"
)

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if !cfg.UsesDatabase() {
		return nil, nil
	}
	dsn := cfg.DatabaseDSN()
	switch cfg.Database.Driver {
	case "postgres":
		return postgresp.Connect(ctx, dsn)
	case "sqlite":
		return sqlitep.Connect(ctx, dsn)
	default:
		return mysqlp.Connect(ctx, dsn)
	}
}

func newSource(cfg *config.Config, db *sql.DB) (loans.Source, error) {
	switch cfg.Source.Driver {
	case "mysql", "postgres", "sqlite":
		src := source.NewSQLSource(db, cfg.Source.Driver)
		src.Timeout = cfg.Source.Timeout
		return src, nil
	case "rest":
		src := source.NewRESTSource(cfg.Source.RESTURL, cfg.Source.RESTKey, cfg.Source.Timeout)
		src.Order = cfg.Source.RESTOrder
		return src, nil
	case "csv":
		return source.NewCSVSource(cfg.Source.CSVDir), nil
	}
	return nil, fmt.Errorf("unsupported source driver %q", cfg.Source.Driver)
}

func newSummarizer(cfg *config.Config) domai.Summarizer {
	switch cfg.AI.Provider {
	case "anthropic":
		c := anthropic.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
		c.MaxTokens = cfg.AI.MaxTokens
		c.Timeout = cfg.AI.Timeout
		return c
	default:
		c := openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
		c.MaxTokens = cfg.AI.MaxTokens
		c.Timeout = cfg.AI.Timeout
		return c
	}
}

func newChartArchive(ctx context.Context, cfg *config.Config) (*minioStore.Store, error) {
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		return nil, err
	}
	store.WithPrefix(cfg.Minio.Prefix)
	store.PresignExpiry = cfg.Minio.PresignExpiry
	return store, nil
}

func newAuditRepositories(ctx context.Context, cfg *config.Config, db *sql.DB) (domain.ReportRepository, domain.FailureRepository, error) {
	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Audit.Migrate {
			if err := postgresp.Migrate(ctx, db); err != nil {
				return nil, nil, err
			}
		}
		return postgresp.NewReportRepository(db), postgresp.NewFailureRepository(db), nil
	case "sqlite":
		if cfg.Audit.Migrate {
			if err := sqlitep.Migrate(ctx, db); err != nil {
				return nil, nil, err
			}
		}
		return sqlitep.NewReportRepository(db), sqlitep.NewFailureRepository(db), nil
	default:
		if cfg.Audit.Migrate {
			if err := mysqlp.Migrate(ctx, db); err != nil {
				return nil, nil, err
			}
		}
		return mysqlp.NewReportRepository(db), mysqlp.NewFailureRepository(db), nil
	}
}

func names(ns []domain.Name) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = string(n)
	}
	return out
}
