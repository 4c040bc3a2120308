package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ListProducts GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out dto.Envelope[[]dto.ProductDTO]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/products", out: &out, authorized: true}); err != nil {
		return nil, err
	}
	return dto.ProductsToEntities(out.Data), nil
}

// CreateProduct POST /products.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (entity.Product, error) {
	var out dto.Envelope[dto.ProductDTO]
	if err := c.do(ctx, call{method: http.MethodPost, path: "/products", body: in, out: &out, authorized: true}); err != nil {
		return entity.Product{}, err
	}
	return out.Data.ToEntity(), nil
}

// UpdateProduct PUT /products/:id.
func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (entity.Product, error) {
	var out dto.Envelope[dto.ProductDTO]
	path := "/products/" + url.PathEscape(id)
	if err := c.do(ctx, call{method: http.MethodPut, path: path, body: in, out: &out, authorized: true}); err != nil {
		return entity.Product{}, err
	}
	return out.Data.ToEntity(), nil
}

// DeleteProduct DELETE /products/:id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/products/" + url.PathEscape(id), authorized: true})
}
