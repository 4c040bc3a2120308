package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/navigation"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/pkg/money"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session       *session.Store
	Navigation    *navigation.Controller
	Products      *views.Products
	Dashboard     *views.Dashboard
	Notifications *views.Notifications
	Plans         *views.Plans
	Sales         *views.Sales
	Spreadsheet   TableWriter
	PDF           TableRenderer
	Money         *money.Formatter
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())

	// Superficie y sesión (público)
	uiHandler := NewUIHandler(deps.Navigation, deps.Session, deps.Sales)
	app.Get("/ui", uiHandler.Render)
	app.Post("/ui/navigate", uiHandler.Navigate)

	sessionHandler := NewSessionHandler(deps.Session)
	sessions := app.Group("/session")
	sessions.Get("/", sessionHandler.Get)
	sessions.Post("/login", sessionHandler.Login)
	sessions.Post("/register", sessionHandler.Register)
	sessions.Post("/logout", sessionHandler.Logout)

	// Rutas que requieren sesión autenticada
	protected := app.Group("/", RequireSession(deps.Session))
	protected.Post("/session/refresh", sessionHandler.Refresh)
	protected.Post("/alerts/:view/ack", uiHandler.Acknowledge)
	protected.Get("/sales", uiHandler.Sales)

	// Products + venta
	productHandler := NewProductHandler(deps.Products, deps.Session)
	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)
	protected.Post("/products/:id/sale", productHandler.OpenSale)
	protected.Get("/sale", productHandler.GetSale)
	protected.Put("/sale/quantity", productHandler.SetQuantity)
	protected.Post("/sale/submit", productHandler.SubmitSale)
	protected.Delete("/sale", productHandler.CancelSale)

	// Notifications
	notificationHandler := NewNotificationHandler(deps.Notifications, deps.Session)
	protected.Put("/notifications/filter", notificationHandler.SetFilter)
	protected.Post("/notifications/generate", notificationHandler.Generate)
	protected.Put("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Delete("/notifications/:id", notificationHandler.Delete)

	// Plans
	planHandler := NewPlanHandler(deps.Plans, deps.Session)
	protected.Post("/plans/:id/subscribe", planHandler.Subscribe)

	// Exportaciones
	exportHandler := NewExportHandler(deps.Session, deps.Products, deps.Dashboard, deps.Sales, deps.Spreadsheet, deps.PDF, deps.Money)
	protected.Get("/export/products.xlsx", exportHandler.ProductsXLSX)
	protected.Get("/export/best-sellers.xlsx", exportHandler.BestSellersXLSX)
	protected.Get("/export/sales.xlsx", exportHandler.SalesXLSX)
	protected.Get("/export/products.pdf", exportHandler.ProductsPDF)
}
