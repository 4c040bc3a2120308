package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
)

// PlanHandler suscripción a planes (protegido).
type PlanHandler struct {
	view  *views.Plans
	store *session.Store
}

// NewPlanHandler construye el handler.
func NewPlanHandler(view *views.Plans, store *session.Store) *PlanHandler {
	return &PlanHandler{view: view, store: store}
}

// Subscribe godoc
// @Summary      Pedir el link de pago de un plan
// @Description  Devuelve la URL del proveedor de pago; el front debe redirigir a ella.
// @Tags         plans
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  views.Handoff
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /plans/{id}/subscribe [post]
func (h *PlanHandler) Subscribe(c *fiber.Ctx) error {
	handoff, err := h.view.Subscribe(h.store.Scope(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(handoff)
}
