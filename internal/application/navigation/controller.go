// Package navigation decide qué se muestra: indicador de carga, pantalla de acceso
// o la página activa, según el estado de la sesión.
package navigation

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Page identificador de página.
type Page string

const (
	PageDashboard     Page = "dashboard"
	PageProducts      Page = "products"
	PageNotifications Page = "notifications"
	PagePlans         Page = "plans"
)

// Pages páginas navegables, en el orden del menú.
var Pages = []Page{PageDashboard, PageProducts, PageNotifications, PagePlans}

// ParsePage valida un identificador recibido del exterior.
func ParsePage(s string) (Page, error) {
	for _, p := range Pages {
		if string(p) == s {
			return p, nil
		}
	}
	return "", domain.ErrUnknownPage
}

// SurfaceKind qué tipo de superficie se muestra.
type SurfaceKind string

const (
	SurfaceLoading SurfaceKind = "loading"
	SurfaceAuth    SurfaceKind = "auth"
	SurfacePage    SurfaceKind = "page"
)

// Surface lo que hay que pintar.
type Surface struct {
	Kind        SurfaceKind         `json:"kind"`
	Page        Page                `json:"page,omitempty"`
	Pages       []Page              `json:"pages,omitempty"`
	View        interface{}         `json:"view,omitempty"`
	UnreadCount int                 `json:"unreadCount"`
	User        *entity.UserProfile `json:"user,omitempty"`
}

// SessionGate lo que la navegación necesita saber de la sesión.
type SessionGate interface {
	Status() entity.SessionStatus
	User() (entity.UserProfile, bool)
	Epoch() uint64
	Scope() context.Context
}

// Counter fuente del contador de no leídas.
type Counter interface {
	Count() int
}

// Controller página activa y montaje de vistas.
type Controller struct {
	gate    SessionGate
	counter Counter
	views   map[Page]views.View
	extra   []views.View
	log     *logger.Logger

	mu      sync.Mutex
	page    Page
	mounted Page
	epoch   uint64
}

// New construye el controlador con la vista de cada página. Arranca en el dashboard.
func New(gate SessionGate, counter Counter, pages map[Page]views.View, log *logger.Logger) *Controller {
	return &Controller{
		gate:    gate,
		counter: counter,
		views:   pages,
		log:     log.Component("navigation"),
		page:    PageDashboard,
	}
}

// Attach registra vistas que no son páginas (p. ej. el historial de ventas) para que
// también se reinicien con la sesión. Llamar antes de suscribir HandleSession.
func (c *Controller) Attach(vs ...views.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extra = append(c.extra, vs...)
}

// HandleSession descarta el estado de todas las vistas cuando cambia la sesión.
// Conectar con store.Subscribe(ctrl.HandleSession).
func (c *Controller) HandleSession(ev session.Event) {
	c.mu.Lock()
	c.mounted = ""
	c.epoch = 0
	if ev.Status != entity.SessionAuthenticated {
		c.page = PageDashboard
	}
	extra := c.extra
	c.mu.Unlock()

	for _, v := range c.views {
		v.Reset()
	}
	for _, v := range extra {
		v.Reset()
	}
}

// Navigate cambia la página activa. Con sesión, la vista se vuelve a cargar.
// No toca el contador de no leídas.
func (c *Controller) Navigate(page Page) error {
	if _, ok := c.views[page]; !ok {
		return domain.ErrUnknownPage
	}
	c.mu.Lock()
	c.page = page
	c.mounted = ""
	c.mu.Unlock()

	if c.gate.Status() == entity.SessionAuthenticated {
		c.mountIfNeeded()
	}
	return nil
}

// Active página seleccionada.
func (c *Controller) Active() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// View vista de una página.
func (c *Controller) View(page Page) (views.View, bool) {
	v, ok := c.views[page]
	return v, ok
}

// Render devuelve la superficie actual. La primera vez que se muestra una página en la
// sesión vigente, su carga se lanza en segundo plano ligada al scope de la sesión.
func (c *Controller) Render() Surface {
	switch c.gate.Status() {
	case entity.SessionLoading:
		return Surface{Kind: SurfaceLoading}
	case entity.SessionUnauthenticated:
		return Surface{Kind: SurfaceAuth}
	}

	page := c.mountIfNeeded()
	s := Surface{
		Kind:        SurfacePage,
		Page:        page,
		Pages:       Pages,
		View:        c.views[page].Snapshot(),
		UnreadCount: c.counter.Count(),
	}
	if u, ok := c.gate.User(); ok {
		s.User = &u
	}
	return s
}

func (c *Controller) mountIfNeeded() Page {
	epoch := c.gate.Epoch()
	c.mu.Lock()
	page := c.page
	if c.mounted == page && c.epoch == epoch {
		c.mu.Unlock()
		return page
	}
	c.mounted = page
	c.epoch = epoch
	c.mu.Unlock()

	// Hasta que la goroutine arranque la vista puede seguir en idle.
	view := c.views[page]
	ctx := c.gate.Scope()
	go func() {
		if err := view.Load(ctx); err != nil && ctx.Err() == nil {
			c.log.Debug().Err(err).Str("page", string(page)).Msg("no se pudo cargar la página")
		}
	}()
	return page
}
