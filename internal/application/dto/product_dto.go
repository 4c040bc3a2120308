package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// ProductDTO producto en el formato del API remoto.
type ProductDTO struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

// ToEntity convierte a dominio.
func (p ProductDTO) ToEntity() entity.Product {
	status := p.Status
	if status == "" {
		status = entity.ProductActive
	}
	return entity.Product{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		Status:      status,
	}
}

// ProductFromEntity formato remoto de un producto.
func ProductFromEntity(p entity.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		Status:      p.Status,
	}
}

// ProductsToEntities convierte una lista completa.
func ProductsToEntities(in []ProductDTO) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.ToEntity())
	}
	return out
}
