package views_test

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// fakeAPI implementa todos los puertos del Gateway en memoria.
type fakeAPI struct {
	mu sync.Mutex

	products      []entity.Product
	notifications []entity.Notification
	plans         []entity.PlanEntry
	summary       entity.DashboardSummary
	best          []entity.BestSeller
	sales         []entity.Sale

	// errs fuerza un error por operación ("ListProducts", "CreateSale", ...).
	errs  map[string]error
	calls []string

	lastSale  dto.CreateSaleRequest
	lastQuery dto.NotificationQuery
	// gate, si no es nil, bloquea la operación hasta recibir.
	gate map[string]chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{errs: map[string]error{}, gate: map[string]chan struct{}{}}
}

func (f *fakeAPI) enter(op string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	g := f.gate[op]
	err := f.errs[op]
	f.mu.Unlock()
	if g != nil {
		<-g
	}
	return err
}

func (f *fakeAPI) called(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeAPI) ListProducts(context.Context) ([]entity.Product, error) {
	if err := f.enter("ListProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Product(nil), f.products...), nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, in dto.CreateProductRequest) (entity.Product, error) {
	if err := f.enter("CreateProduct"); err != nil {
		return entity.Product{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := entity.Product{ID: "p" + in.SKU, Name: in.Name, SKU: in.SKU, Price: in.Price, Stock: in.Stock, Status: entity.ProductActive}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, in dto.UpdateProductRequest) (entity.Product, error) {
	if err := f.enter("UpdateProduct"); err != nil {
		return entity.Product{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			if in.Name != nil {
				f.products[i].Name = *in.Name
			}
			if in.Stock != nil {
				f.products[i].Stock = *in.Stock
			}
			return f.products[i], nil
		}
	}
	return entity.Product{}, &domain.APIError{Kind: domain.ErrNotFound, Status: 404, Message: "Produto não encontrado"}
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id string) error {
	if err := f.enter("DeleteProduct"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return &domain.APIError{Kind: domain.ErrNotFound, Status: 404, Message: "Produto não encontrado"}
}

func (f *fakeAPI) CreateSale(_ context.Context, in dto.CreateSaleRequest) (entity.Sale, error) {
	if err := f.enter("CreateSale"); err != nil {
		return entity.Sale{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSale = in
	for i := range f.products {
		if f.products[i].ID == in.ProductID {
			if f.products[i].Stock < in.Quantity {
				return entity.Sale{}, &domain.APIError{Kind: domain.ErrValidation, Status: 400, Message: "Estoque insuficiente"}
			}
			f.products[i].Stock -= in.Quantity
			s := entity.Sale{ID: "s1", Product: entity.ProductRef{ID: in.ProductID}, Quantity: in.Quantity}
			f.sales = append(f.sales, s)
			return s, nil
		}
	}
	return entity.Sale{}, &domain.APIError{Kind: domain.ErrNotFound, Status: 404}
}

func (f *fakeAPI) ListSales(context.Context) ([]entity.Sale, error) {
	if err := f.enter("ListSales"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Sale(nil), f.sales...), nil
}

func (f *fakeAPI) DashboardSummary(context.Context) (entity.DashboardSummary, error) {
	if err := f.enter("DashboardSummary"); err != nil {
		return entity.DashboardSummary{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summary, nil
}

func (f *fakeAPI) BestSellers(context.Context) ([]entity.BestSeller, error) {
	if err := f.enter("BestSellers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.best, nil
}

func (f *fakeAPI) Revenue(context.Context) ([]entity.RevenuePoint, error) {
	if err := f.enter("Revenue"); err != nil {
		return nil, err
	}
	return []entity.RevenuePoint{}, nil
}

func (f *fakeAPI) ListNotifications(_ context.Context, q dto.NotificationQuery) ([]entity.Notification, int, error) {
	if err := f.enter("ListNotifications"); err != nil {
		return nil, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	var out []entity.Notification
	for _, n := range f.notifications {
		if q.Read != nil && n.Read != *q.Read {
			continue
		}
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (f *fakeAPI) GenerateNotifications(context.Context) error {
	if err := f.enter("GenerateNotifications"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, entity.Notification{ID: "gen", Type: entity.NotificationNoSales})
	return nil
}

func (f *fakeAPI) MarkNotificationRead(_ context.Context, id string) error {
	if err := f.enter("MarkNotificationRead"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *fakeAPI) MarkAllNotificationsRead(context.Context) error {
	if err := f.enter("MarkAllNotificationsRead"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		f.notifications[i].Read = true
	}
	return nil
}

func (f *fakeAPI) DeleteNotification(_ context.Context, id string) error {
	if err := f.enter("DeleteNotification"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return &domain.APIError{Kind: domain.ErrNotFound, Status: 404}
}

func (f *fakeAPI) ListPlans(context.Context) ([]entity.PlanEntry, error) {
	if err := f.enter("ListPlans"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plans, nil
}

func (f *fakeAPI) CreatePaymentLink(_ context.Context, planID string) (string, error) {
	if err := f.enter("CreatePaymentLink"); err != nil {
		return "", err
	}
	return "https://pay.example/checkout?plan=" + planID, nil
}

type fakeProfile struct{ plan string }

func (p fakeProfile) User() (entity.UserProfile, bool) {
	if p.plan == "" {
		return entity.UserProfile{}, false
	}
	return entity.UserProfile{ID: "u1", Plan: p.plan}, true
}

type countingNudger struct {
	mu sync.Mutex
	n  int
}

func (c *countingNudger) Nudge() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingNudger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
