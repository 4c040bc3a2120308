// Package api es el Gateway: único canal entre la consola y el API remoto de inventario.
// Cada función es una petición/respuesta JSON sin caché ni reintentos.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa todos los puertos.
var (
	_ ports.AuthAPI          = (*Client)(nil)
	_ ports.ProductsAPI      = (*Client)(nil)
	_ ports.SalesAPI         = (*Client)(nil)
	_ ports.AnalyticsAPI     = (*Client)(nil)
	_ ports.NotificationsAPI = (*Client)(nil)
	_ ports.PlansAPI         = (*Client)(nil)
)

// RequestIDHeader header de correlación enviado en cada llamada.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 4 << 20

// Config opciones del Gateway.
type Config struct {
	BaseURL    string       // ej. http://localhost:3000/api
	HTTPClient *http.Client // nil = cliente sin timeout propio (aplica el del transporte)
}

// Client adaptador HTTP del API remoto.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger

	mu    sync.RWMutex
	creds ports.CredentialSource
	sink  ports.AuthFailureSink
}

// NewClient construye el Gateway. Hasta Bind no adjunta credenciales.
func NewClient(cfg Config, log *logger.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: cfg.BaseURL, httpClient: hc, log: log.Component("gateway")}
}

// Bind conecta el Gateway con la sesión: de ella lee el token y a ella reporta los 401.
func (c *Client) Bind(creds ports.CredentialSource, sink ports.AuthFailureSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
	c.sink = sink
}

type call struct {
	method     string
	path       string
	query      url.Values
	body       interface{}
	out        interface{}
	authorized bool
}

func (c *Client) bound() (ports.CredentialSource, ports.AuthFailureSink) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds, c.sink
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("api: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	// Las llamadas autorizadas se emiten aunque no haya token: el servidor decide.
	creds, sink := c.bound()
	var token string
	if cl.authorized && creds != nil {
		token = creds.BearerToken()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", cl.method).Str("path", cl.path).Str("request_id", reqID).
			Err(err).Msg("llamada sin respuesta")
		return &domain.APIError{Kind: domain.ErrTransient, Method: cl.method, Path: cl.path, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.APIError{Kind: domain.ErrTransient, Status: resp.StatusCode, Method: cl.method, Path: cl.path, Message: err.Error()}
	}

	c.log.Debug().Str("method", cl.method).Str("path", cl.path).Str("request_id", reqID).
		Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("llamada API")

	if resp.StatusCode >= http.StatusBadRequest {
		var remote dto.RemoteError
		_ = json.Unmarshal(raw, &remote)
		apiErr := &domain.APIError{
			Kind:    domain.KindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Method:  cl.method,
			Path:    cl.path,
			Message: remote.Text(),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			if !cl.authorized {
				apiErr.Kind = domain.ErrInvalidCredentials
			} else if sink != nil {
				sink.Invalidate(token, apiErr)
			}
		}
		return apiErr
	}

	if cl.out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, cl.out); err != nil {
			return &domain.APIError{
				Kind: domain.ErrTransient, Status: resp.StatusCode, Method: cl.method, Path: cl.path,
				Message: "respuesta ilegible: " + err.Error(),
			}
		}
	}
	return nil
}
