package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Locals keys.
const (
	LocalRequestID = "request_id"
)

// RequestIDHeader header de correlación de la consola.
const RequestIDHeader = "X-Request-ID"

// sessionGate lo mínimo que el middleware necesita de la sesión.
type sessionGate interface {
	Status() entity.SessionStatus
}

// RequestID reutiliza el X-Request-ID entrante o genera uno, y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// GetRequestID devuelve el request id del contexto (después de RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// RequireSession corta con 401 si la sesión no está autenticada.
// Mientras la sesión se restaura responde 503 para que el front reintente.
func RequireSession(gate sessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch gate.Status() {
		case entity.SessionAuthenticated:
			return c.Next()
		case entity.SessionLoading:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_LOADING", Message: "restaurando sesión"})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: "inicie sesión"})
		}
	}
}
