package domain

import (
	"errors"
	"fmt"
)

// Taxonomía de fallos del API remoto (sin dependencias externas).
var (
	ErrAuthFailure        = errors.New("no autorizado")
	ErrInvalidCredentials = fmt.Errorf("credenciales inválidas: %w", ErrAuthFailure)
	ErrValidation         = errors.New("entrada rechazada por el servidor")
	ErrTransient          = errors.New("fallo de red o servidor no disponible")
	ErrNotFound           = errors.New("recurso no encontrado")
)

// Errores detectados en el cliente antes de emitir cualquier petición.
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrQuantityOutOfRange = errors.New("cantidad fuera del rango permitido")
	ErrOutOfStock         = errors.New("producto sin stock")
	ErrNoSaleInProgress   = errors.New("no hay una venta en curso")
	ErrAlertPending       = errors.New("hay un error pendiente de confirmar")
	ErrPaymentInFlight    = errors.New("ya hay un pago en proceso")
	ErrAlreadySubscribed  = errors.New("el plan ya es el plan actual")
	ErrUnknownPage        = errors.New("página desconocida")
	ErrUnknownFilter      = errors.New("filtro desconocido")
	ErrNotAuthenticated   = errors.New("sesión no autenticada")
)

// APIError fallo estructurado devuelto por el Gateway.
// Kind es uno de los sentinels de la taxonomía; errors.Is(err, Kind) funciona vía Unwrap.
type APIError struct {
	Kind    error
	Status  int    // 0 si no hubo respuesta
	Method  string
	Path    string
	Message string // mensaje del servidor cuando lo hay
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, msg)
}

func (e *APIError) Unwrap() error { return e.Kind }

// UserMessage mensaje a mostrar al usuario: el del servidor si existe, si no el genérico.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// KindForStatus clasifica un status HTTP de error dentro de la taxonomía.
func KindForStatus(status int) error {
	switch {
	case status == 401:
		return ErrAuthFailure
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return ErrTransient
	default:
		// 400, 403 (límite del plan), 409 (SKU duplicado), 422 (stock insuficiente)
		return ErrValidation
	}
}
