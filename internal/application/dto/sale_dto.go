package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// CreateSaleRequest lo único que se envía al registrar una venta: el total lo calcula el servidor.
type CreateSaleRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// SaleDTO venta en el formato del API remoto. productId puede venir como id
// o como el producto poblado ({"_id": ..., "name": ...}).
type SaleDTO struct {
	ID         string          `json:"_id"`
	ProductID  json.RawMessage `json:"productId"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
	SaleDate   time.Time       `json:"saleDate"`
}

// ToEntity convierte a dominio resolviendo la referencia al producto.
func (s SaleDTO) ToEntity() entity.Sale {
	return entity.Sale{
		ID:         s.ID,
		Product:    decodeProductRef(s.ProductID),
		Quantity:   s.Quantity,
		TotalValue: s.TotalValue,
		SaleDate:   s.SaleDate,
	}
}

func decodeProductRef(raw json.RawMessage) entity.ProductRef {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return entity.ProductRef{}
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return entity.ProductRef{ID: id}
	}
	var populated struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &populated); err != nil {
		return entity.ProductRef{}
	}
	return entity.ProductRef{ID: populated.ID, Name: populated.Name}
}

// PopulatedProductRef codifica la referencia poblada (lo usa el sandbox).
func PopulatedProductRef(ref entity.ProductRef) json.RawMessage {
	if ref.Name == "" {
		b, _ := json.Marshal(ref.ID)
		return b
	}
	b, _ := json.Marshal(map[string]string{"_id": ref.ID, "name": ref.Name})
	return b
}
