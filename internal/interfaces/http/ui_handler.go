package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/navigation"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/domain"
)

// NavigateRequest cuerpo de POST /ui/navigate.
type NavigateRequest struct {
	Page string `json:"page"`
}

// viewSales clave de la vista de historial, que no es una página del menú.
const viewSales = "sales"

// UIHandler superficie renderizada, navegación y alertas.
type UIHandler struct {
	nav   *navigation.Controller
	store *session.Store
	sales *views.Sales
}

// NewUIHandler construye el handler.
func NewUIHandler(nav *navigation.Controller, store *session.Store, sales *views.Sales) *UIHandler {
	return &UIHandler{nav: nav, store: store, sales: sales}
}

// Render godoc
// @Summary      Superficie actual (carga, acceso o página activa)
// @Tags         ui
// @Produce      json
// @Success      200  {object}  navigation.Surface
// @Router       /ui [get]
func (h *UIHandler) Render(c *fiber.Ctx) error {
	return c.JSON(h.nav.Render())
}

// Navigate godoc
// @Summary      Cambiar de página
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        body  body  NavigateRequest  true  "dashboard, products, notifications o plans"
// @Success      200   {object}  navigation.Surface
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /ui/navigate [post]
func (h *UIHandler) Navigate(c *fiber.Ctx) error {
	var in NavigateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	page, err := navigation.ParsePage(in.Page)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.nav.Navigate(page); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.nav.Render())
}

// Acknowledge godoc
// @Summary      Confirmar la alerta pendiente de una vista
// @Tags         ui
// @Security     Session
// @Produce      json
// @Param        view  path  string  true  "página o sales"
// @Success      200   {object}  navigation.Surface
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /alerts/{view}/ack [post]
func (h *UIHandler) Acknowledge(c *fiber.Ctx) error {
	name := c.Params("view")
	if name == viewSales {
		h.sales.Acknowledge()
		return c.JSON(h.sales.Snapshot())
	}
	page, err := navigation.ParsePage(name)
	if err != nil {
		return respondError(c, err)
	}
	v, ok := h.nav.View(page)
	if !ok {
		return respondError(c, domain.ErrUnknownPage)
	}
	v.Acknowledge()
	return c.JSON(v.Snapshot())
}

// Sales godoc
// @Summary      Historial de ventas e ingresos por día
// @Tags         sales
// @Security     Session
// @Produce      json
// @Success      200  {object}  views.State[views.SalesData]
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /sales [get]
func (h *UIHandler) Sales(c *fiber.Ctx) error {
	if err := h.sales.Load(h.store.Scope()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.sales.Snapshot())
}
