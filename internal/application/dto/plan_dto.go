package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// PlanDTO entrada de GET /plans.
type PlanDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToEntity convierte a dominio.
func (p PlanDTO) ToEntity() entity.PlanEntry {
	return entity.PlanEntry{ID: p.ID, Name: p.Name, Price: p.Price}
}

// PaymentLinkRequest entrada de POST /payments/create-link.
type PaymentLinkRequest struct {
	PlanID string `json:"planId"`
}

// PaymentLinkDTO salida de POST /payments/create-link.
type PaymentLinkDTO struct {
	PaymentLink string `json:"paymentLink"`
}
