package tokenstore

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/ports"
)

var _ ports.TokenStore = (*MemoryStore)(nil)

// MemoryStore token en memoria: la sesión no sobrevive al reinicio del proceso.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore construye el backend, opcionalmente con un token inicial.
func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{token: initial}
}

func (s *MemoryStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
