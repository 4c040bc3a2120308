package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
)

// SaleQuantityRequest cuerpo de PUT /sale/quantity.
type SaleQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ProductHandler catálogo y flujo de venta (protegido).
type ProductHandler struct {
	view  *views.Products
	store *session.Store
}

// NewProductHandler construye el handler.
func NewProductHandler(view *views.Products, store *session.Store) *ProductHandler {
	return &ProductHandler{view: view, store: store}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  views.ProductsSnapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.view.Create(h.store.Scope(), in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.view.Snapshot())
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  views.ProductsSnapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.view.Update(h.store.Scope(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view.Snapshot())
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  views.ProductsSnapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.view.Delete(h.store.Scope(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view.Snapshot())
}

// ── Venta ─────────────────────────────────────────────────────────────────────

// OpenSale godoc
// @Summary      Abrir venta de un producto (cantidad 1)
// @Tags         sale
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  views.SaleDraft
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id}/sale [post]
func (h *ProductHandler) OpenSale(c *fiber.Ctx) error {
	draft, err := h.view.OpenSale(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(draft)
}

// GetSale godoc
// @Summary      Venta en curso
// @Tags         sale
// @Security     Session
// @Produce      json
// @Success      200  {object}  views.SaleDraft
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /sale [get]
func (h *ProductHandler) GetSale(c *fiber.Ctx) error {
	draft, ok := h.view.Sale()
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SALE_IN_PROGRESS", Message: "no hay una venta en curso"})
	}
	return c.JSON(draft)
}

// SetQuantity godoc
// @Summary      Cambiar la cantidad de la venta
// @Tags         sale
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  SaleQuantityRequest  true  "cantidad entre 1 y el stock"
// @Success      200   {object}  views.SaleDraft
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sale/quantity [put]
func (h *ProductHandler) SetQuantity(c *fiber.Ctx) error {
	var in SaleQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	draft, err := h.view.SetSaleQuantity(in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(draft)
}

// SubmitSale godoc
// @Summary      Registrar la venta en curso
// @Tags         sale
// @Security     Session
// @Produce      json
// @Success      201  {object}  entity.Sale
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /sale/submit [post]
func (h *ProductHandler) SubmitSale(c *fiber.Ctx) error {
	sale, err := h.view.SubmitSale(h.store.Scope())
	if err != nil && sale.ID == "" {
		return respondError(c, err)
	}
	// Con sale.ID la venta existe aunque la recarga posterior haya fallado.
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// CancelSale godoc
// @Summary      Descartar la venta en curso
// @Tags         sale
// @Security     Session
// @Success      204
// @Router       /sale [delete]
func (h *ProductHandler) CancelSale(c *fiber.Ctx) error {
	h.view.CancelSale()
	return c.SendStatus(fiber.StatusNoContent)
}
