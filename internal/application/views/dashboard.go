package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/money"
)

// DashboardData secciones del dashboard. Una sección nil no se pudo cargar.
type DashboardData struct {
	Summary     *entity.DashboardSummary `json:"summary"`
	BestSellers []entity.BestSeller      `json:"bestSellers"`
}

// DashboardSnapshot estado de la página de inicio.
type DashboardSnapshot struct {
	State[DashboardData]
	TotalValueDisplay string `json:"totalValueDisplay,omitempty"`
}

// Dashboard resumen de ventas y productos más vendidos (solo lectura).
type Dashboard struct {
	api   ports.AnalyticsAPI
	money *money.Formatter
	data  collection[DashboardData]
}

// NewDashboard construye la vista.
func NewDashboard(api ports.AnalyticsAPI, mf *money.Formatter) *Dashboard {
	if mf == nil {
		mf = money.Default()
	}
	return &Dashboard{api: api, money: mf, data: collection[DashboardData]{status: StatusIdle}}
}

// Load pide resumen y más vendidos en paralelo y espera ambos.
// Si uno falla la vista queda en failed pero conserva la sección que sí llegó.
func (v *Dashboard) Load(ctx context.Context) error {
	return v.data.loadPartial(ctx, v.fetch)
}

func (v *Dashboard) fetch(ctx context.Context) (DashboardData, error) {
	summary, best := join2(ctx, v.api.DashboardSummary, v.api.BestSellers)

	var (
		data DashboardData
		errs []error
	)
	if summary.err != nil {
		errs = append(errs, fmt.Errorf("dashboard: resumen: %w", summary.err))
	} else {
		s := summary.val
		data.Summary = &s
	}
	if best.err != nil {
		errs = append(errs, fmt.Errorf("dashboard: más vendidos: %w", best.err))
	} else {
		data.BestSellers = best.val
	}
	return data, errors.Join(errs...)
}

// Acknowledge el dashboard no tiene acciones, así que nunca levanta alertas.
func (v *Dashboard) Acknowledge() { v.data.acknowledge() }

// Reset descarta el estado.
func (v *Dashboard) Reset() { v.data.reset() }

// BestSellers ranking cargado, en el orden del servidor.
func (v *Dashboard) BestSellers() []entity.BestSeller {
	return append([]entity.BestSeller(nil), v.data.current().BestSellers...)
}

// Snapshot estado para presentar.
func (v *Dashboard) Snapshot() interface{} {
	snap := DashboardSnapshot{State: v.data.state()}
	if s := snap.Data.Summary; s != nil {
		snap.TotalValueDisplay = v.money.Format(s.Sales.TotalValue)
	}
	return snap
}
