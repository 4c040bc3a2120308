package views

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Handoff salida hacia el proveedor de pago. Desde aquí el flujo sale de la aplicación.
type Handoff struct {
	PlanID string `json:"planId"`
	URL    string `json:"url"`
}

// PlansSnapshot estado de la página de planes.
type PlansSnapshot struct {
	State[[]entity.PlanEntry]
	CurrentPlan string   `json:"currentPlan,omitempty"`
	Processing  string   `json:"processing,omitempty"`
	Handoff     *Handoff `json:"handoff,omitempty"`
}

// Plans catálogo de planes y suscripción.
type Plans struct {
	api     ports.PlansAPI
	profile ports.ProfileSource
	list    collection[[]entity.PlanEntry]

	mu         sync.Mutex
	processing string
	handoff    *Handoff
}

// NewPlans construye la vista.
func NewPlans(api ports.PlansAPI, profile ports.ProfileSource) *Plans {
	return &Plans{api: api, profile: profile, list: collection[[]entity.PlanEntry]{status: StatusIdle}}
}

// Load trae el catálogo.
func (v *Plans) Load(ctx context.Context) error {
	return v.list.load(ctx, v.api.ListPlans)
}

// Subscribe pide el link de pago del plan. Con éxito la vista queda en proceso: la salida
// al proveedor no tiene vuelta atrás. Con error se levanta una alerta y se libera el proceso.
func (v *Plans) Subscribe(ctx context.Context, planID string) (Handoff, error) {
	if planID == "" {
		return Handoff{}, domain.ErrInvalidInput
	}
	if v.profile != nil {
		if u, ok := v.profile.User(); ok && u.Plan == planID {
			return Handoff{}, domain.ErrAlreadySubscribed
		}
	}
	if v.list.alertPending() {
		return Handoff{}, domain.ErrAlertPending
	}

	v.mu.Lock()
	if v.processing != "" {
		v.mu.Unlock()
		return Handoff{}, domain.ErrPaymentInFlight
	}
	v.processing = planID
	v.mu.Unlock()

	url, err := v.api.CreatePaymentLink(ctx, planID)
	if err != nil {
		v.mu.Lock()
		v.processing = ""
		v.mu.Unlock()
		v.list.raise("subscribe", err)
		return Handoff{}, err
	}

	h := Handoff{PlanID: planID, URL: url}
	v.mu.Lock()
	v.handoff = &h
	v.mu.Unlock()
	return h, nil
}

func (v *Plans) Acknowledge() { v.list.acknowledge() }

// Reset descarta el estado, incluido el proceso de pago.
func (v *Plans) Reset() {
	v.list.reset()
	v.mu.Lock()
	v.processing = ""
	v.handoff = nil
	v.mu.Unlock()
}

func (v *Plans) Snapshot() interface{} {
	snap := PlansSnapshot{State: v.list.state()}
	if v.profile != nil {
		if u, ok := v.profile.User(); ok {
			snap.CurrentPlan = u.Plan
		}
	}
	v.mu.Lock()
	snap.Processing = v.processing
	if v.handoff != nil {
		h := *v.handoff
		snap.Handoff = &h
	}
	v.mu.Unlock()
	return snap
}
