package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ListPlans GET /plans.
func (c *Client) ListPlans(ctx context.Context) ([]entity.PlanEntry, error) {
	var out dto.Envelope[[]dto.PlanDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/plans", out: &out, authorized: true}); err != nil {
		return nil, err
	}
	plans := make([]entity.PlanEntry, 0, len(out.Data))
	for _, p := range out.Data {
		plans = append(plans, p.ToEntity())
	}
	return plans, nil
}

// CreatePaymentLink POST /payments/create-link; devuelve la URL del proveedor de pago.
func (c *Client) CreatePaymentLink(ctx context.Context, planID string) (string, error) {
	var out dto.Envelope[dto.PaymentLinkDTO]
	path := "/payments/create-link"
	if err := c.do(ctx, call{method: http.MethodPost, path: path, body: dto.PaymentLinkRequest{PlanID: planID}, out: &out, authorized: true}); err != nil {
		return "", err
	}
	if out.Data.PaymentLink == "" {
		return "", &domain.APIError{Kind: domain.ErrTransient, Status: http.StatusOK, Method: http.MethodPost, Path: path, Message: "respuesta sin paymentLink"}
	}
	return out.Data.PaymentLink, nil
}
