package entity

import "github.com/shopspring/decimal"

// PlanEntry entrada del catálogo de planes (solo lectura).
type PlanEntry struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
