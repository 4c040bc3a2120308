// Package ports define los contratos que la capa de aplicación consume.
// El Gateway (infrastructure/api) los implementa; los tests inyectan fakes.
package ports

import (
	"context"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// AuthAPI autenticación contra el API remoto.
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error)
	Profile(ctx context.Context) (entity.UserProfile, error)
}

// ProductsAPI catálogo de productos.
type ProductsAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (entity.Product, error)
	UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// SalesAPI registro e historial de ventas.
type SalesAPI interface {
	CreateSale(ctx context.Context, in dto.CreateSaleRequest) (entity.Sale, error)
	ListSales(ctx context.Context) ([]entity.Sale, error)
}

// AnalyticsAPI métricas agregadas (read-only).
type AnalyticsAPI interface {
	DashboardSummary(ctx context.Context) (entity.DashboardSummary, error)
	BestSellers(ctx context.Context) ([]entity.BestSeller, error)
	Revenue(ctx context.Context) ([]entity.RevenuePoint, error)
}

// NotificationsAPI notificaciones generadas por reglas remotas.
type NotificationsAPI interface {
	// ListNotifications devuelve la vista filtrada y el count informado por el servidor.
	ListNotifications(ctx context.Context, q dto.NotificationQuery) ([]entity.Notification, int, error)
	GenerateNotifications(ctx context.Context) error
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
}

// PlansAPI catálogo de planes y links de pago.
type PlansAPI interface {
	ListPlans(ctx context.Context) ([]entity.PlanEntry, error)
	CreatePaymentLink(ctx context.Context, planID string) (string, error)
}
