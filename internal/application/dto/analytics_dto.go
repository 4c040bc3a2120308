package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// DashboardDTO respuesta de GET /analytics/dashboard.
type DashboardDTO struct {
	Sales struct {
		TotalSales    int             `json:"totalSales"`
		TotalValue    decimal.Decimal `json:"totalValue"`
		TotalQuantity int             `json:"totalQuantity"`
	} `json:"sales"`
	LowStock struct {
		Count    int          `json:"count"`
		Products []ProductDTO `json:"products"`
	} `json:"lowStock"`
}

// ToEntity convierte a dominio.
func (d DashboardDTO) ToEntity() entity.DashboardSummary {
	return entity.DashboardSummary{
		Sales: entity.SalesMetrics{
			TotalSales:    d.Sales.TotalSales,
			TotalValue:    d.Sales.TotalValue,
			TotalQuantity: d.Sales.TotalQuantity,
		},
		LowStock: entity.LowStock{
			Count:    d.LowStock.Count,
			Products: ProductsToEntities(d.LowStock.Products),
		},
	}
}

// BestSellerDTO elemento de GET /analytics/best-sellers.
type BestSellerDTO struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// ToEntity convierte a dominio.
func (b BestSellerDTO) ToEntity() entity.BestSeller {
	return entity.BestSeller{
		ProductID:     b.ID,
		Name:          b.Name,
		SKU:           b.SKU,
		TotalQuantity: b.TotalQuantity,
		TotalRevenue:  b.TotalRevenue,
	}
}

// RevenueDTO elemento de GET /analytics/revenue; _id es el día (YYYY-MM-DD).
type RevenueDTO struct {
	Date         string          `json:"_id"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Count        int             `json:"count"`
}

// ToEntity convierte a dominio; una fecha ilegible queda en cero.
func (r RevenueDTO) ToEntity() entity.RevenuePoint {
	d, _ := time.Parse("2006-01-02", r.Date)
	return entity.RevenuePoint{Date: d, Revenue: r.TotalRevenue, Count: r.Count}
}
