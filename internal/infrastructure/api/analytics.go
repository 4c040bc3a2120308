package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// DashboardSummary GET /analytics/dashboard.
func (c *Client) DashboardSummary(ctx context.Context) (entity.DashboardSummary, error) {
	var out dto.Envelope[dto.DashboardDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/analytics/dashboard", out: &out, authorized: true}); err != nil {
		return entity.DashboardSummary{}, err
	}
	return out.Data.ToEntity(), nil
}

// BestSellers GET /analytics/best-sellers (el ranking lo define el servidor).
func (c *Client) BestSellers(ctx context.Context) ([]entity.BestSeller, error) {
	var out dto.Envelope[[]dto.BestSellerDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/analytics/best-sellers", out: &out, authorized: true}); err != nil {
		return nil, err
	}
	list := make([]entity.BestSeller, 0, len(out.Data))
	for _, b := range out.Data {
		list = append(list, b.ToEntity())
	}
	return list, nil
}

// Revenue GET /analytics/revenue.
func (c *Client) Revenue(ctx context.Context) ([]entity.RevenuePoint, error) {
	var out dto.Envelope[[]dto.RevenueDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/analytics/revenue", out: &out, authorized: true}); err != nil {
		return nil, err
	}
	points := make([]entity.RevenuePoint, 0, len(out.Data))
	for _, r := range out.Data {
		points = append(points, r.ToEntity())
	}
	return points, nil
}
