package entity

import "time"

// Tipos de notificación generados por el API remoto.
const (
	NotificationLowStock          = "low_stock"
	NotificationHotProduct        = "hot_product"
	NotificationRestockSuggestion = "restock_suggestion"
	NotificationNoSales           = "no_sales"
)

// Prioridades de notificación.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// NotificationTypes tipos válidos, en el orden en que se ofrecen como filtro.
var NotificationTypes = []string{
	NotificationLowStock,
	NotificationHotProduct,
	NotificationRestockSuggestion,
	NotificationNoSales,
}

// IsNotificationType informa si t es uno de los tipos conocidos.
func IsNotificationType(t string) bool {
	for _, nt := range NotificationTypes {
		if nt == t {
			return true
		}
	}
	return false
}

// Notification alerta generada por reglas del API remoto. Read solo pasa de false a true.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
