package tokenstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-console/internal/infrastructure/redis"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// New construye el backend configurado en TOKEN_STORE. El closer libera conexiones y nunca es nil.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.TokenStore, func(), error) {
	noop := func() {}
	switch cfg.TokenStore.Backend {
	case config.TokenStoreFile:
		log.Info().Str("backend", "file").Str("path", cfg.TokenStore.File).Msg("token store")
		return NewFileStore(cfg.TokenStore.File), noop, nil
	case config.TokenStoreMemory:
		log.Info().Str("backend", "memory").Msg("token store")
		return NewMemoryStore(""), noop, nil
	case config.TokenStoreRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("backend", "redis").Str("addr", cfg.Redis.Addr()).Msg("token store")
		return redis.NewTokenStore(client, cfg.TokenStore.Key), func() { _ = client.Close() }, nil
	case config.TokenStorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		store, err := postgres.NewTokenStore(ctx, pool, cfg.TokenStore.Key)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Str("backend", "postgres").Msg("token store")
		return store, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("tokenstore: backend desconocido %q", cfg.TokenStore.Backend)
	}
}
