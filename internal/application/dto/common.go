package dto

// Envelope cuerpo estándar del API remoto: {"data": ..., "count": n}.
type Envelope[T any] struct {
	Data  T    `json:"data"`
	Count *int `json:"count,omitempty"`
}

// RemoteError cuerpo de error del API remoto. Algunas rutas usan "error" y otras "message".
type RemoteError struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text devuelve el mensaje disponible.
func (e RemoteError) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// ErrorResponse cuerpo de error HTTP de la consola local.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
