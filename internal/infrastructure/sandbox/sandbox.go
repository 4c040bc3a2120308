// Package sandbox implementa en memoria el contrato del API remoto de inventario.
// Se usa en los tests de extremo a extremo y como remoto local (cmd/sandbox).
package sandbox

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Prefix prefijo de todas las rutas del remoto.
const Prefix = "/api"

// Config opciones del remoto simulado.
type Config struct {
	JWTSecret     string
	JWTExpiration int // minutos
	JWTIssuer     string
	BcryptCost    int // 0 = bcrypt.DefaultCost
}

type account struct {
	profile      entity.UserProfile
	passwordHash string
}

type notificationRecord struct {
	entity.Notification
	productID string
}

// tenant datos de un comercio: cada usuario ve solo lo suyo.
type tenant struct {
	products      []*entity.Product
	sales         []entity.Sale
	notifications []*notificationRecord
}

type injected struct {
	status  int
	message string
}

// Server estado del remoto simulado.
type Server struct {
	cfg Config
	log *logger.Logger
	now func() time.Time

	mu       sync.Mutex
	accounts map[string]*account // por id
	byEmail  map[string]string
	tenants  map[string]*tenant
	hits     map[string]int
	failures map[string][]injected
}

// New construye el remoto vacío.
func New(cfg Config, log *logger.Logger) *Server {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.JWTExpiration == 0 {
		cfg.JWTExpiration = 60
	}
	return &Server{
		cfg:      cfg,
		log:      log.Component("sandbox"),
		now:      time.Now,
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		tenants:  make(map[string]*tenant),
		hits:     make(map[string]int),
		failures: make(map[string][]injected),
	}
}

// App construye la aplicación Fiber con todas las rutas del contrato.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "inventario-sandbox",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(s.trace)

	api := app.Group(Prefix)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.register)
	authGroup.Post("/login", s.login)

	protected := api.Group("/", s.requireAuth)
	protected.Get("/auth/me", s.me)

	protected.Get("/products", s.listProducts)
	protected.Post("/products", s.createProduct)
	protected.Put("/products/:id", s.updateProduct)
	protected.Delete("/products/:id", s.deleteProduct)

	protected.Get("/sales", s.listSales)
	protected.Post("/sales", s.createSale)

	protected.Get("/analytics/dashboard", s.dashboard)
	protected.Get("/analytics/best-sellers", s.bestSellers)
	protected.Get("/analytics/revenue", s.revenue)

	protected.Get("/notifications", s.listNotifications)
	protected.Post("/notifications/generate", s.generateNotifications)
	protected.Put("/notifications/read-all", s.markAllRead)
	protected.Put("/notifications/:id/read", s.markRead)
	protected.Delete("/notifications/:id", s.deleteNotification)

	protected.Get("/plans", s.listPlans)
	protected.Post("/payments/create-link", s.createPaymentLink)

	return app
}

// ── Instrumentación para tests ────────────────────────────────────────────────

func routeKey(method, path string) string {
	return method + " " + strings.TrimPrefix(path, Prefix)
}

// trace cuenta peticiones por método y ruta y aplica los fallos inyectados.
func (s *Server) trace(c *fiber.Ctx) error {
	key := routeKey(c.Method(), c.Path())

	s.mu.Lock()
	s.hits[key]++
	var fail *injected
	if q := s.failures[key]; len(q) > 0 {
		f := q[0]
		fail = &f
		s.failures[key] = q[1:]
	}
	s.mu.Unlock()

	if fail != nil {
		s.log.Debug().Str("route", key).Int("status", fail.status).Msg("fallo inyectado")
		return c.Status(fail.status).JSON(fiber.Map{"error": fail.message})
	}
	return c.Next()
}

// Hits cantidad de peticiones recibidas para method + path (sin el prefijo /api).
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// FailNext hace que la próxima petición a method + path responda status con message.
// Se pueden encolar varios fallos para la misma ruta.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], injected{status: status, message: message})
}

// SetPlan cambia el plan de un usuario, como lo haría la confirmación del pago.
func (s *Server) SetPlan(email, plan string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return false
	}
	s.accounts[id].profile.Plan = plan
	return true
}

// tenantFor devuelve (creando si hace falta) los datos del usuario. Requiere s.mu.
func (s *Server) tenantFor(userID string) *tenant {
	t, ok := s.tenants[userID]
	if !ok {
		t = &tenant{}
		s.tenants[userID] = t
	}
	return t
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
