package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/docsession/internal/config"
	"github.com/unifiedui/docsession/internal/core/cache"
	"github.com/unifiedui/docsession/internal/core/docdb"
	rediscache "github.com/unifiedui/docsession/internal/infrastructure/cache/redis"
	"github.com/unifiedui/docsession/internal/infrastructure/docdb/memory"
	"github.com/unifiedui/docsession/internal/infrastructure/docdb/mongodb"
	"github.com/unifiedui/docsession/internal/logging"
	"github.com/unifiedui/docsession/internal/services/session"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg   *config.Config
	store *session.Manager
	cache cache.Client
}

// bootstrap loads configuration, sets up logging and connects the session manager.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)

	logging.Setup(cfg.Log)

	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache client: %w", err)
	}

	address := cfg.DocDB.URI
	if docdb.Type(cfg.DocDB.Type) == docdb.TypeMemory && !strings.HasPrefix(address, memory.Scheme+"://") {
		address = memory.Scheme + "://local"
	}

	store, err := session.Connect(ctx, &session.Config{
		Address:    address,
		Database:   cfg.DocDB.Database,
		Collection: cfg.DocDB.Collection,
		Cache:      cacheClient,
		CacheTTL:   cfg.Cache.TTL,
	}, createDialer(cfg.DocDB))
	if err != nil {
		if cacheClient != nil {
			_ = cacheClient.Close()
		}
		return nil, err
	}

	return &app{cfg: cfg, store: store, cache: cacheClient}, nil
}

// close releases the connection and the cache.
func (a *app) close(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to close document database connection")
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close cache client")
		}
	}
}

func applyFlags(cfg *config.Config) {
	if flagURI != "" {
		cfg.DocDB.URI = flagURI
	}
	if flagDocDBType != "" {
		cfg.DocDB.Type = flagDocDBType
	}
	if flagDatabase != "" {
		cfg.DocDB.Database = flagDatabase
	}
	if flagCollection != "" {
		cfg.DocDB.Collection = flagCollection
	}
	switch {
	case verbosity >= 2:
		cfg.Log.Level = zerolog.TraceLevel.String()
	case verbosity == 1:
		cfg.Log.Level = zerolog.DebugLevel.String()
	}
}

// createDialer returns the dialer for the configured document database type.
func createDialer(cfg config.DocDBConfig) session.Dialer {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMemory:
		return func(_ context.Context, address string) (docdb.Client, error) {
			client, err := memory.NewClient(address)
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	default:
		return func(ctx context.Context, address string) (docdb.Client, error) {
			client, err := mongodb.NewClient(ctx, &mongodb.ClientConfig{
				URI:            address,
				ConnectTimeout: cfg.ConnectTimeout,
			})
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}
}

// createCacheClient creates a cache client, or nil when caching is disabled.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		client, err := rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
			KeyPrefix:  "docsession:",
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, nil
	}
}

func loggerFor(name string) *zerolog.Logger {
	l := log.With().Str("command", name).Logger()
	return &l
}
