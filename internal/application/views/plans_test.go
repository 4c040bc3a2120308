package views_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

func plansState(v *views.Plans) views.PlansSnapshot {
	return v.Snapshot().(views.PlansSnapshot)
}

func TestPlans_SuscribirDevuelveHandoffYQuedaEnProceso(t *testing.T) {
	api := newFakeAPI()
	api.plans = []entity.PlanEntry{{ID: entity.PlanStarter, Name: "Starter", Price: decimal.NewFromInt(29)}}
	v := views.NewPlans(api, fakeProfile{plan: entity.PlanFree})
	require.NoError(t, v.Load(context.Background()))

	h, err := v.Subscribe(context.Background(), entity.PlanStarter)

	require.NoError(t, err)
	assert.Contains(t, h.URL, "plan=starter")
	snap := plansState(v)
	assert.Equal(t, entity.PlanStarter, snap.Processing)
	require.NotNil(t, snap.Handoff)
	assert.Equal(t, entity.PlanFree, snap.CurrentPlan)

	_, err = v.Subscribe(context.Background(), entity.PlanGrowth)
	assert.ErrorIs(t, err, domain.ErrPaymentInFlight)
}

func TestPlans_PlanActualSeRechaza(t *testing.T) {
	api := newFakeAPI()
	v := views.NewPlans(api, fakeProfile{plan: entity.PlanGrowth})

	_, err := v.Subscribe(context.Background(), entity.PlanGrowth)

	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	assert.Zero(t, api.called("CreatePaymentLink"))
}

func TestPlans_SoloUnaSolicitudEnVuelo(t *testing.T) {
	api := newFakeAPI()
	gate := make(chan struct{})
	api.gate["CreatePaymentLink"] = gate
	v := views.NewPlans(api, fakeProfile{plan: entity.PlanFree})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = v.Subscribe(context.Background(), entity.PlanPro)
	}()
	require.Eventually(t, func() bool { return api.called("CreatePaymentLink") == 1 }, time.Second, time.Millisecond)

	_, err := v.Subscribe(context.Background(), entity.PlanStarter)
	assert.ErrorIs(t, err, domain.ErrPaymentInFlight)

	close(gate)
	wg.Wait()
	assert.Equal(t, 1, api.called("CreatePaymentLink"))
}

func TestPlans_FalloLevantaAlertaYLiberaElProceso(t *testing.T) {
	api := newFakeAPI()
	api.fail("CreatePaymentLink", &domain.APIError{Kind: domain.ErrTransient, Status: 502, Message: "gateway de pago caído"})
	v := views.NewPlans(api, fakeProfile{plan: entity.PlanFree})

	_, err := v.Subscribe(context.Background(), entity.PlanPro)

	require.Error(t, err)
	snap := plansState(v)
	assert.Empty(t, snap.Processing)
	require.NotNil(t, snap.Alert)
	assert.Equal(t, "gateway de pago caído", snap.Alert.Message)

	api.fail("CreatePaymentLink", nil)
	_, err = v.Subscribe(context.Background(), entity.PlanPro)
	assert.ErrorIs(t, err, domain.ErrAlertPending)

	v.Acknowledge()
	_, err = v.Subscribe(context.Background(), entity.PlanPro)
	assert.NoError(t, err)
}

func TestPlans_ResetLiberaElProceso(t *testing.T) {
	api := newFakeAPI()
	v := views.NewPlans(api, fakeProfile{plan: entity.PlanFree})
	_, err := v.Subscribe(context.Background(), entity.PlanPro)
	require.NoError(t, err)

	v.Reset()

	snap := plansState(v)
	assert.Empty(t, snap.Processing)
	assert.Nil(t, snap.Handoff)
}
