package views_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

func dashboardState(v *views.Dashboard) views.DashboardSnapshot {
	return v.Snapshot().(views.DashboardSnapshot)
}

func TestDashboard_AmbasSeccionesListas(t *testing.T) {
	api := newFakeAPI()
	api.summary = entity.DashboardSummary{Sales: entity.SalesMetrics{TotalSales: 4, TotalValue: decimal.RequireFromString("120.50")}}
	api.best = []entity.BestSeller{{ProductID: "p1", Name: "Widget", TotalQuantity: 3}}
	v := views.NewDashboard(api, nil)

	require.NoError(t, v.Load(context.Background()))

	snap := dashboardState(v)
	assert.Equal(t, views.StatusReady, snap.Status)
	require.NotNil(t, snap.Data.Summary)
	assert.Equal(t, 4, snap.Data.Summary.Sales.TotalSales)
	assert.Len(t, snap.Data.BestSellers, 1)
	assert.Contains(t, snap.TotalValueDisplay, "120")
}

// Las dos lecturas corren a la vez: ninguna espera a la otra para empezar.
func TestDashboard_LecturasConcurrentes(t *testing.T) {
	api := newFakeAPI()
	gate := make(chan struct{})
	api.gate["DashboardSummary"] = gate
	v := views.NewDashboard(api, nil)

	done := make(chan error, 1)
	go func() { done <- v.Load(context.Background()) }()

	require.Eventually(t, func() bool { return api.called("BestSellers") == 1 }, time.Second, time.Millisecond,
		"best-sellers se pide mientras el resumen sigue en vuelo")
	assert.Equal(t, views.StatusLoading, dashboardState(v).Status)

	close(gate)
	require.NoError(t, <-done)
}

// Si una lectura falla la vista no queda cargando: pasa a failed y conserva la otra sección.
func TestDashboard_FalloParcial(t *testing.T) {
	api := newFakeAPI()
	api.best = []entity.BestSeller{{ProductID: "p1", Name: "Widget"}}
	api.fail("DashboardSummary", &domain.APIError{Kind: domain.ErrTransient, Status: 500, Message: "boom"})
	v := views.NewDashboard(api, nil)

	err := v.Load(context.Background())

	require.ErrorIs(t, err, domain.ErrTransient)
	snap := dashboardState(v)
	assert.Equal(t, views.StatusFailed, snap.Status)
	assert.Nil(t, snap.Data.Summary)
	assert.Len(t, snap.Data.BestSellers, 1)
	assert.Len(t, v.BestSellers(), 1)
}

func TestSales_HistorialEIngresos(t *testing.T) {
	api := newFakeAPI()
	api.sales = []entity.Sale{{ID: "s1", Quantity: 2}}
	v := views.NewSales(api, api)

	require.NoError(t, v.Load(context.Background()))
	assert.Len(t, v.List(), 1)
	assert.Equal(t, 1, api.called("Revenue"))

	api.fail("Revenue", &domain.APIError{Kind: domain.ErrTransient})
	assert.Error(t, v.Load(context.Background()))
	st := v.Snapshot().(views.State[views.SalesData])
	assert.Equal(t, views.StatusFailed, st.Status)
	assert.Len(t, st.Data.Sales, 1, "las ventas se conservan")
}
