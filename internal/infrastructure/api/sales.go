package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// CreateSale POST /sales. Solo viajan productId y quantity.
func (c *Client) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (entity.Sale, error) {
	var out dto.Envelope[dto.SaleDTO]
	if err := c.do(ctx, call{method: http.MethodPost, path: "/sales", body: in, out: &out, authorized: true}); err != nil {
		return entity.Sale{}, err
	}
	return out.Data.ToEntity(), nil
}

// ListSales GET /sales.
func (c *Client) ListSales(ctx context.Context) ([]entity.Sale, error) {
	var out dto.Envelope[[]dto.SaleDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/sales", out: &out, authorized: true}); err != nil {
		return nil, err
	}
	sales := make([]entity.Sale, 0, len(out.Data))
	for _, s := range out.Data {
		sales = append(sales, s.ToEntity())
	}
	return sales, nil
}
