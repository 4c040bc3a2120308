package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRef referencia débil a un producto: puede quedar colgando si el producto se eliminó.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Sale venta registrada. Solo se agrega; el cliente nunca la edita ni la elimina.
type Sale struct {
	ID         string          `json:"id"`
	Product    ProductRef      `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
	SaleDate   time.Time       `json:"saleDate"`
}
