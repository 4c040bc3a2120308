package views

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/money"
)

// SaleDraft venta en preparación. Total es solo para mostrar: el valor definitivo lo calcula el servidor.
type SaleDraft struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Stock        int             `json:"stock"`
	Quantity     int             `json:"quantity"`
	MinQuantity  int             `json:"minQuantity"`
	MaxQuantity  int             `json:"maxQuantity"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
}

// ProductsSnapshot estado de la página de productos.
type ProductsSnapshot struct {
	State[[]entity.Product]
	Sale         *SaleDraft `json:"sale,omitempty"`
	Plan         string     `json:"plan,omitempty"`
	ProductLimit int        `json:"productLimit"` // 0 = ilimitado
}

// Products catálogo de productos con el flujo de venta.
type Products struct {
	api     ports.ProductsAPI
	sales   ports.SalesAPI
	profile ports.ProfileSource
	money   *money.Formatter

	list collection[[]entity.Product]

	mu    sync.Mutex
	draft *entity.Product
	qty   int
}

// NewProducts construye la vista.
func NewProducts(api ports.ProductsAPI, sales ports.SalesAPI, profile ports.ProfileSource, mf *money.Formatter) *Products {
	if mf == nil {
		mf = money.Default()
	}
	return &Products{api: api, sales: sales, profile: profile, money: mf, list: collection[[]entity.Product]{status: StatusIdle}}
}

// Load trae el catálogo completo.
func (v *Products) Load(ctx context.Context) error {
	return v.list.load(ctx, v.api.ListProducts)
}

// Create valida y crea un producto; luego recarga.
func (v *Products) Create(ctx context.Context, in dto.CreateProductRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	return v.list.mutateThenRefetch(ctx, "create_product", func(ctx context.Context) error {
		_, err := v.api.CreateProduct(ctx, in)
		return err
	}, v.api.ListProducts)
}

// Update modifica campos de un producto; luego recarga.
func (v *Products) Update(ctx context.Context, id string, in dto.UpdateProductRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	return v.list.mutateThenRefetch(ctx, "update_product", func(ctx context.Context) error {
		_, err := v.api.UpdateProduct(ctx, id, in)
		return err
	}, v.api.ListProducts)
}

// Delete elimina un producto; luego recarga.
func (v *Products) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return v.list.mutateThenRefetch(ctx, "delete_product", func(ctx context.Context) error {
		return v.api.DeleteProduct(ctx, id)
	}, v.api.ListProducts)
}

// ── Venta ─────────────────────────────────────────────────────────────────────

// OpenSale abre el borrador de venta para un producto del catálogo cargado, con cantidad 1.
func (v *Products) OpenSale(id string) (SaleDraft, error) {
	var product *entity.Product
	for _, p := range v.list.current() {
		if p.ID == id {
			product = &p
			break
		}
	}
	if product == nil {
		return SaleDraft{}, domain.ErrNotFound
	}
	if product.Stock <= 0 {
		return SaleDraft{}, domain.ErrOutOfStock
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = product
	v.qty = 1
	return v.draftLocked(), nil
}

// SetSaleQuantity cambia la cantidad. Fuera de [1, stock] se rechaza sin modificar el borrador.
func (v *Products) SetSaleQuantity(q int) (SaleDraft, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return SaleDraft{}, domain.ErrNoSaleInProgress
	}
	if q < 1 || q > v.draft.Stock {
		return v.draftLocked(), domain.ErrQuantityOutOfRange
	}
	v.qty = q
	return v.draftLocked(), nil
}

// Sale borrador vigente.
func (v *Products) Sale() (SaleDraft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return SaleDraft{}, false
	}
	return v.draftLocked(), true
}

// CancelSale descarta el borrador sin llamar al servidor.
func (v *Products) CancelSale() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = nil
	v.qty = 0
}

// SubmitSale registra la venta enviando solo productId y quantity, y recarga el catálogo
// para ver el stock actualizado. Si el servidor la rechaza el borrador sigue abierto.
func (v *Products) SubmitSale(ctx context.Context) (entity.Sale, error) {
	v.mu.Lock()
	if v.draft == nil {
		v.mu.Unlock()
		return entity.Sale{}, domain.ErrNoSaleInProgress
	}
	product, qty := *v.draft, v.qty
	v.mu.Unlock()

	if qty < 1 || qty > product.Stock {
		return entity.Sale{}, domain.ErrQuantityOutOfRange
	}

	var (
		sale    entity.Sale
		created bool
	)
	err := v.list.mutateThenRefetch(ctx, "create_sale", func(ctx context.Context) error {
		var err error
		sale, err = v.sales.CreateSale(ctx, dto.CreateSaleRequest{ProductID: product.ID, Quantity: qty})
		created = err == nil
		return err
	}, v.api.ListProducts)
	if !created {
		return entity.Sale{}, err
	}

	// La venta quedó registrada aunque la recarga posterior haya fallado.
	v.mu.Lock()
	if v.draft != nil && v.draft.ID == product.ID {
		v.draft = nil
		v.qty = 0
	}
	v.mu.Unlock()
	return sale, err
}

func (v *Products) draftLocked() SaleDraft {
	total := v.draft.Price.Mul(decimal.NewFromInt(int64(v.qty)))
	return SaleDraft{
		ProductID:    v.draft.ID,
		ProductName:  v.draft.Name,
		UnitPrice:    v.draft.Price,
		Stock:        v.draft.Stock,
		Quantity:     v.qty,
		MinQuantity:  1,
		MaxQuantity:  v.draft.Stock,
		Total:        total,
		TotalDisplay: v.money.Format(total),
	}
}

// Acknowledge confirma la alerta pendiente.
func (v *Products) Acknowledge() { v.list.acknowledge() }

// Reset descarta todo el estado (nueva sesión).
func (v *Products) Reset() {
	v.list.reset()
	v.CancelSale()
}

// Products copia del catálogo cargado.
func (v *Products) Products() []entity.Product {
	return append([]entity.Product(nil), v.list.current()...)
}

// Snapshot estado para presentar.
func (v *Products) Snapshot() interface{} {
	snap := ProductsSnapshot{State: v.list.state()}
	if d, ok := v.Sale(); ok {
		snap.Sale = &d
	}
	if v.profile != nil {
		if u, ok := v.profile.User(); ok {
			snap.Plan = u.Plan
			snap.ProductLimit = entity.PlanProductLimit(u.Plan)
		}
	}
	return snap
}
