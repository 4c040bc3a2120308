package dto

import (
	"time"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// NotificationDTO notificación en el formato del API remoto.
type NotificationDTO struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToEntity convierte a dominio.
func (n NotificationDTO) ToEntity() entity.Notification {
	return entity.Notification{
		ID:        n.ID,
		Type:      n.Type,
		Priority:  n.Priority,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationFromEntity formato remoto de una notificación.
func NotificationFromEntity(n entity.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		Priority:  n.Priority,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationQuery filtros de GET /notifications. Nil = sin filtro.
type NotificationQuery struct {
	Read *bool
	Type string
}
