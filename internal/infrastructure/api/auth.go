package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Login POST /auth/login (sin bearer).
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: in, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /auth/register (sin bearer).
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/register", body: in, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile GET /auth/me.
func (c *Client) Profile(ctx context.Context) (entity.UserProfile, error) {
	var out dto.Envelope[dto.UserDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/auth/me", out: &out, authorized: true}); err != nil {
		return entity.UserProfile{}, err
	}
	return out.Data.ToEntity(), nil
}
