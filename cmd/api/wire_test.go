package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/loan-insights/internal/config"
	"github.com/bryanwahyu/loan-insights/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/loan-insights/internal/infra/ai/openai"
	"github.com/bryanwahyu/loan-insights/internal/infra/source"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestNewSourcePicksDriver(t *testing.T) {
	cfg := loadTestConfig(t)

	cfg.Source.Driver = "csv"
	src, err := newSource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &source.CSVSource{}, src)

	cfg.Source.Driver = "rest"
	src, err = newSource(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, &source.RESTSource{}, src)
	assert.Equal(t, "id", src.(*source.RESTSource).Order)

	cfg.Source.Driver = "excel"
	_, err = newSource(cfg, nil)
	assert.Error(t, err)
}

func TestNewSummarizerPicksProvider(t *testing.T) {
	cfg := loadTestConfig(t)

	cfg.AI.Provider = "anthropic"
	assert.IsType(t, &anthropic.Client{}, newSummarizer(cfg))

	cfg.AI.Provider = "openai"
	s := newSummarizer(cfg)
	require.IsType(t, &openai.Client{}, s)
	assert.Equal(t, 150, s.(*openai.Client).MaxTokens)
}

func TestSQLiteWiring(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Source.Driver = "sqlite"
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = ":memory:"
	cfg.Audit.Enabled = true
	cfg.Audit.Migrate = true

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	reports, failures, err := newAuditRepositories(ctx, cfg, db)
	require.NoError(t, err)

	list, err := reports.ListByBuild(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, list)
	fails, err := failures.ListByBuild(ctx, "none", 5)
	require.NoError(t, err)
	assert.Empty(t, fails)
}
