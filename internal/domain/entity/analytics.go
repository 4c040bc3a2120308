package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics métricas agregadas de ventas.
type SalesMetrics struct {
	TotalSales    int             `json:"totalSales"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	TotalQuantity int             `json:"totalQuantity"`
}

// LowStock productos con stock bajo según el API remoto.
type LowStock struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// DashboardSummary resumen del dashboard.
type DashboardSummary struct {
	Sales    SalesMetrics `json:"sales"`
	LowStock LowStock     `json:"lowStock"`
}

// BestSeller agregado por producto, ordenado por el servidor.
type BestSeller struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// RevenuePoint ingresos de un día.
type RevenuePoint struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}
