package entity

import "github.com/shopspring/decimal"

// Estados de un producto.
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product producto del catálogo tal como lo devuelve el API remoto.
// El stock nunca se modifica localmente: después de una venta se vuelve a consultar.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"` // único por comercio
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Status      string          `json:"status"` // active, inactive
}
