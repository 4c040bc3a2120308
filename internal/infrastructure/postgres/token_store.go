package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-console/internal/application/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

const tokenSchema = `
	CREATE TABLE IF NOT EXISTS console_tokens (
		key        TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// TokenStore guarda el bearer token en una fila de console_tokens.
type TokenStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewTokenStore construye el adaptador y crea la tabla si no existe.
func NewTokenStore(ctx context.Context, pool *pgxpool.Pool, key string) (*TokenStore, error) {
	if _, err := pool.Exec(ctx, tokenSchema); err != nil {
		return nil, fmt.Errorf("crear tabla console_tokens: %w", err)
	}
	return &TokenStore{pool: pool, key: key}, nil
}

// Load devuelve el token guardado o "" si no hay fila.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx, `SELECT token FROM console_tokens WHERE key = $1`, s.key).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// Save reemplaza el token.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	query := `
		INSERT INTO console_tokens (key, token, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET token = EXCLUDED.token, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, s.key, token); err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}
	return nil
}

// Clear borra la fila; borrar una fila inexistente no es error.
func (s *TokenStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM console_tokens WHERE key = $1`, s.key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
