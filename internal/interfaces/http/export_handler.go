package http

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/infrastructure/export"
	"github.com/jhoicas/inventario-console/pkg/money"
)

// TableWriter escribe una tabla como planilla.
type TableWriter interface {
	Write(w io.Writer, t dto.Table) error
}

// TableRenderer genera el PDF de una tabla.
type TableRenderer interface {
	Render(t dto.Table, now time.Time) ([]byte, error)
}

// ExportHandler descarga de planillas y reportes. Cada exportación recarga la vista de
// origen para que el archivo refleje el estado del servidor.
type ExportHandler struct {
	store     *session.Store
	products  *views.Products
	dashboard *views.Dashboard
	sales     *views.Sales
	xlsx      TableWriter
	pdf       TableRenderer
	money     *money.Formatter
	now       func() time.Time
}

// NewExportHandler construye el handler.
func NewExportHandler(
	store *session.Store,
	products *views.Products,
	dashboard *views.Dashboard,
	sales *views.Sales,
	xlsx TableWriter,
	pdf TableRenderer,
	mf *money.Formatter,
) *ExportHandler {
	return &ExportHandler{
		store: store, products: products, dashboard: dashboard, sales: sales,
		xlsx: xlsx, pdf: pdf, money: mf, now: time.Now,
	}
}

// ProductsXLSX godoc
// @Summary      Catálogo en .xlsx
// @Tags         export
// @Security     Session
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /export/products.xlsx [get]
func (h *ExportHandler) ProductsXLSX(c *fiber.Ctx) error {
	return h.spreadsheet(c, "produtos", h.products.Load, func() dto.Table {
		return views.ProductRows(h.products.Products(), h.money)
	})
}

// BestSellersXLSX godoc
// @Summary      Más vendidos en .xlsx
// @Tags         export
// @Security     Session
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /export/best-sellers.xlsx [get]
func (h *ExportHandler) BestSellersXLSX(c *fiber.Ctx) error {
	return h.spreadsheet(c, "mais-vendidos", h.dashboard.Load, func() dto.Table {
		return views.BestSellerRows(h.dashboard.BestSellers(), h.money)
	})
}

// SalesXLSX godoc
// @Summary      Historial de ventas en .xlsx
// @Tags         export
// @Security     Session
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /export/sales.xlsx [get]
func (h *ExportHandler) SalesXLSX(c *fiber.Ctx) error {
	return h.spreadsheet(c, "vendas", h.sales.Load, func() dto.Table {
		return views.SaleRows(h.sales.List(), h.money)
	})
}

// ProductsPDF godoc
// @Summary      Catálogo en PDF
// @Tags         export
// @Security     Session
// @Produce      application/pdf
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /export/products.pdf [get]
func (h *ExportHandler) ProductsPDF(c *fiber.Ctx) error {
	if err := h.products.Load(h.store.Scope()); err != nil {
		return respondError(c, err)
	}
	now := h.now()
	doc, err := h.pdf.Render(views.ProductRows(h.products.Products(), h.money), now)
	if err != nil {
		return respondError(c, err)
	}
	return h.attach(c, export.Filename("produtos", "pdf", now), export.ContentTypePDF, doc)
}

func (h *ExportHandler) spreadsheet(c *fiber.Ctx, base string, load func(context.Context) error, table func() dto.Table) error {
	if err := load(h.store.Scope()); err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := h.xlsx.Write(&buf, table()); err != nil {
		return respondError(c, err)
	}
	return h.attach(c, export.Filename(base, "xlsx", h.now()), export.ContentTypeXLSX, buf.Bytes())
}

func (h *ExportHandler) attach(c *fiber.Ctx, filename, contentType string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
