package ports

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// TokenStore almacenamiento durable de la única clave con el bearer token.
// Load devuelve "" sin error cuando no hay token guardado.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// CredentialSource lo implementa la sesión; solo el Gateway lo consume.
type CredentialSource interface {
	BearerToken() string
}

// AuthFailureSink recibe los 401 de llamadas autorizadas. token es el que se usó en la petición.
type AuthFailureSink interface {
	Invalidate(token string, cause error)
}

// ProfileSource acceso de solo lectura al perfil de la sesión.
type ProfileSource interface {
	User() (entity.UserProfile, bool)
}

// CounterRefresher pide una lectura inmediata del contador de no leídas.
type CounterRefresher interface {
	Nudge()
}
