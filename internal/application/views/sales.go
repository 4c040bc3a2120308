package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// SalesData historial de ventas e ingresos por día.
type SalesData struct {
	Sales   []entity.Sale         `json:"sales"`
	Revenue []entity.RevenuePoint `json:"revenue"`
}

// Sales historial de ventas (solo lectura; las ventas nunca se editan).
type Sales struct {
	sales     ports.SalesAPI
	analytics ports.AnalyticsAPI
	data      collection[SalesData]
}

// NewSales construye la vista.
func NewSales(sales ports.SalesAPI, analytics ports.AnalyticsAPI) *Sales {
	return &Sales{sales: sales, analytics: analytics, data: collection[SalesData]{status: StatusIdle}}
}

// Load pide ventas e ingresos en paralelo, con la misma regla parcial que el dashboard.
func (v *Sales) Load(ctx context.Context) error {
	return v.data.loadPartial(ctx, func(ctx context.Context) (SalesData, error) {
		list, revenue := join2(ctx, v.sales.ListSales, v.analytics.Revenue)
		var errs []error
		if list.err != nil {
			errs = append(errs, fmt.Errorf("ventas: %w", list.err))
		}
		if revenue.err != nil {
			errs = append(errs, fmt.Errorf("ingresos: %w", revenue.err))
		}
		return SalesData{Sales: list.val, Revenue: revenue.val}, errors.Join(errs...)
	})
}

func (v *Sales) Acknowledge() { v.data.acknowledge() }

func (v *Sales) Reset() { v.data.reset() }

// List ventas cargadas.
func (v *Sales) List() []entity.Sale {
	return append([]entity.Sale(nil), v.data.current().Sales...)
}

func (v *Sales) Snapshot() interface{} { return v.data.state() }
