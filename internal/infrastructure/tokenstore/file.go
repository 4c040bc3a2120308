// Package tokenstore reúne los backends del token de sesión y elige uno según la configuración.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/jhoicas/inventario-console/internal/application/ports"
)

var _ ports.TokenStore = (*FileStore)(nil)

// fileKey variable bajo la que se escribe el token en el archivo.
const fileKey = "INVENTARIO_TOKEN"

// FileStore guarda el token en un archivo formato .env (una sola variable).
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore construye el backend sobre path. El archivo se crea en el primer Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load devuelve "" si el archivo no existe o no tiene la variable.
func (s *FileStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	env, err := godotenv.Read(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("leer %s: %w", s.path, err)
	}
	return env[fileKey], nil
}

// Save reescribe el archivo completo. Se crea con 0600 y un archivo previo con otros
// permisos se restringe antes de escribir el token.
func (s *FileStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, err := godotenv.Marshal(map[string]string{fileKey: token})
	if err != nil {
		return fmt.Errorf("serializar token: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", s.path, err)
	}
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return fmt.Errorf("permisos %s: %w", s.path, err)
	}
	if _, err := f.WriteString(content + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", s.path, err)
	}
	return nil
}

// Clear elimina el archivo; que no exista no es error.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", s.path, err)
	}
	return nil
}
