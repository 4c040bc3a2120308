package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/pkg/config"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// TokenStore guarda el bearer token en una clave de Redis sin expiración:
// la vigencia la decide el API remoto, no el almacenamiento.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// NewTokenStore construye el adaptador.
func NewTokenStore(client redis.UniversalClient, key string) *TokenStore {
	return &TokenStore{client: client, key: key}
}

// Load devuelve el token o "" si la clave no existe.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return tok, nil
}

// Save reemplaza el token.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear borra la clave.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}
