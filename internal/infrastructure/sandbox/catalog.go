package sandbox

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// ── Productos ─────────────────────────────────────────────────────────────────

func (s *Server) listProducts(c *fiber.Ctx) error {
	s.mu.Lock()
	t := s.tenantFor(userID(c))
	out := make([]dto.ProductDTO, 0, len(t.products))
	for _, p := range t.products {
		out = append(out, dto.ProductFromEntity(*p))
	}
	s.mu.Unlock()
	return c.JSON(dto.Envelope[[]dto.ProductDTO]{Data: out})
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	uid := userID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(uid)

	if limit := entity.PlanProductLimit(s.planOf(uid)); limit > 0 && len(t.products) >= limit {
		return fail(c, fiber.StatusForbidden, "Limite de produtos do plano atingido")
	}
	for _, p := range t.products {
		if strings.EqualFold(p.SKU, in.SKU) {
			return fail(c, fiber.StatusConflict, "SKU já cadastrado")
		}
	}
	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		SKU:         in.SKU,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Description: in.Description,
		Status:      entity.ProductActive,
	}
	t.products = append(t.products, p)
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope[dto.ProductDTO]{Data: dto.ProductFromEntity(*p)})
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.tenantFor(userID(c)).product(c.Params("id"))
	if p == nil {
		return fail(c, fiber.StatusNotFound, "Produto não encontrado")
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	return c.JSON(dto.Envelope[dto.ProductDTO]{Data: dto.ProductFromEntity(*p)})
}

// deleteProduct no toca las ventas: sus referencias quedan colgando.
func (s *Server) deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))
	for i, p := range t.products {
		if p.ID == id {
			t.products = append(t.products[:i], t.products[i+1:]...)
			return c.JSON(fiber.Map{"message": "Produto removido"})
		}
	}
	return fail(c, fiber.StatusNotFound, "Produto não encontrado")
}

func (t *tenant) product(id string) *entity.Product {
	for _, p := range t.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func (s *Server) createSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	if in.ProductID == "" || in.Quantity < 1 {
		return fail(c, fiber.StatusBadRequest, "productId e quantity (>= 1) são obrigatórios")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))
	p := t.product(in.ProductID)
	if p == nil {
		return fail(c, fiber.StatusNotFound, "Produto não encontrado")
	}
	if p.Stock < in.Quantity {
		return fail(c, fiber.StatusUnprocessableEntity, "Estoque insuficiente")
	}
	p.Stock -= in.Quantity

	sale := entity.Sale{
		ID:         uuid.NewString(),
		Product:    entity.ProductRef{ID: p.ID, Name: p.Name},
		Quantity:   in.Quantity,
		TotalValue: p.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		SaleDate:   s.now().UTC(),
	}
	t.sales = append(t.sales, sale)
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope[dto.SaleDTO]{Data: t.saleDTO(sale)})
}

// listSales más recientes primero.
func (s *Server) listSales(c *fiber.Ctx) error {
	s.mu.Lock()
	t := s.tenantFor(userID(c))
	out := make([]dto.SaleDTO, 0, len(t.sales))
	for i := len(t.sales) - 1; i >= 0; i-- {
		out = append(out, t.saleDTO(t.sales[i]))
	}
	s.mu.Unlock()
	return c.JSON(dto.Envelope[[]dto.SaleDTO]{Data: out})
}

// saleDTO puebla la referencia solo si el producto todavía existe.
func (t *tenant) saleDTO(sale entity.Sale) dto.SaleDTO {
	ref := entity.ProductRef{ID: sale.Product.ID}
	if p := t.product(sale.Product.ID); p != nil {
		ref.Name = p.Name
	}
	return dto.SaleDTO{
		ID:         sale.ID,
		ProductID:  dto.PopulatedProductRef(ref),
		Quantity:   sale.Quantity,
		TotalValue: sale.TotalValue,
		SaleDate:   sale.SaleDate,
	}
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// LowStockThreshold stock a partir del cual un producto se considera bajo.
const LowStockThreshold = 5

const bestSellersLimit = 10

func (s *Server) dashboard(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))

	var out dto.DashboardDTO
	out.Sales.TotalValue = decimal.Zero
	for _, sale := range t.sales {
		out.Sales.TotalSales++
		out.Sales.TotalQuantity += sale.Quantity
		out.Sales.TotalValue = out.Sales.TotalValue.Add(sale.TotalValue)
	}
	out.LowStock.Products = []dto.ProductDTO{}
	for _, p := range t.products {
		if p.Stock <= LowStockThreshold {
			out.LowStock.Products = append(out.LowStock.Products, dto.ProductFromEntity(*p))
		}
	}
	out.LowStock.Count = len(out.LowStock.Products)
	return c.JSON(dto.Envelope[dto.DashboardDTO]{Data: out})
}

// bestSellers agrega por producto y ordena por cantidad vendida; desempata por ingreso.
func (s *Server) bestSellers(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))

	agg := make(map[string]*dto.BestSellerDTO)
	var order []string
	for _, sale := range t.sales {
		b, ok := agg[sale.Product.ID]
		if !ok {
			b = &dto.BestSellerDTO{ID: sale.Product.ID, TotalRevenue: decimal.Zero}
			if p := t.product(sale.Product.ID); p != nil {
				b.Name, b.SKU = p.Name, p.SKU
			} else {
				b.Name = sale.Product.Name
			}
			agg[sale.Product.ID] = b
			order = append(order, sale.Product.ID)
		}
		b.TotalQuantity += sale.Quantity
		b.TotalRevenue = b.TotalRevenue.Add(sale.TotalValue)
	}

	out := make([]dto.BestSellerDTO, 0, len(order))
	for _, id := range order {
		out = append(out, *agg[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
	})
	if len(out) > bestSellersLimit {
		out = out[:bestSellersLimit]
	}
	return c.JSON(dto.Envelope[[]dto.BestSellerDTO]{Data: out})
}

// revenue ingresos por día, en orden cronológico.
func (s *Server) revenue(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))

	byDay := make(map[string]*dto.RevenueDTO)
	for _, sale := range t.sales {
		day := sale.SaleDate.Format("2006-01-02")
		r, ok := byDay[day]
		if !ok {
			r = &dto.RevenueDTO{Date: day, TotalRevenue: decimal.Zero}
			byDay[day] = r
		}
		r.TotalRevenue = r.TotalRevenue.Add(sale.TotalValue)
		r.Count++
	}
	out := make([]dto.RevenueDTO, 0, len(byDay))
	for _, r := range byDay {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return c.JSON(dto.Envelope[[]dto.RevenueDTO]{Data: out})
}
