package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/mingyue/astro-insights/internal/domain/astro"
	"github.com/mingyue/astro-insights/internal/domain/natal"
	"github.com/mingyue/astro-insights/internal/infra/chartrepo"
	"github.com/mingyue/astro-insights/internal/infra/chartstore"
	"github.com/mingyue/astro-insights/internal/infra/config"
	"github.com/mingyue/astro-insights/internal/infra/geo/openmeteo"
)

func provideNatalConfig(cfg *config.Config) natal.Config {
	return natal.Config{
		CacheTTL: cfg.Chart.CacheTTL,
	}
}

// providePositionProvider selects the configured computation backend. The
// provider instance is constructed once here and injected everywhere; no
// package-level engine state exists.
func providePositionProvider(cfg *config.Config) (astro.PositionProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Astro.Provider)) {
	case "analytic":
		return astro.NewAnalyticProvider(), nil
	default:
		return nil, fmt.Errorf("unknown astro provider %q", cfg.Astro.Provider)
	}
}

func provideGeocoder(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.Timeout)
}

func provideChartRepository(cfg *config.Config, logger *slog.Logger) natal.Repository {
	fallback := chartrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Chart.Postgres.DSN)
	if dsn == "" {
		logger.Info("chart postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Chart.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Chart.Postgres.MaxConns
	}
	if cfg.Chart.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Chart.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("chart postgres repository enabled")
	return chartrepo.NewPostgresRepository(pool)
}

func provideChartStore(cfg *config.Config, logger *slog.Logger) natal.Store {
	if cfg.Chart.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return chartstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return chartstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("chart valkey store enabled", "addr", cfg.Chart.Redis.Addr)
			return chartstore.NewValkeyStore(client, "chart")
		}
	}
	return chartstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Chart.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Chart.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Chart.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
