package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/session"
)

// SessionHandler login, registro y cierre de sesión.
type SessionHandler struct {
	store *session.Store
}

// NewSessionHandler construye el handler.
func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  session.Snapshot
// @Router       /session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.store.Snapshot())
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  session.Snapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.store.Login(c.UserContext(), in.Email, in.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.Snapshot())
}

// Register godoc
// @Summary      Crear cuenta
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email y password"
// @Success      201   {object}  session.Snapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /session/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.store.Register(c.UserContext(), in.Name, in.Email, in.Password); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.Snapshot())
}

// Logout godoc
// @Summary      Cerrar sesión (nunca falla)
// @Tags         session
// @Produce      json
// @Success      200  {object}  session.Snapshot
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout(c.UserContext())
	return c.JSON(h.store.Snapshot())
}

// Refresh godoc
// @Summary      Recargar el perfil del usuario
// @Tags         session
// @Security     Session
// @Produce      json
// @Success      200  {object}  session.Snapshot
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /session/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	if err := h.store.RefreshProfile(h.store.Scope()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.Snapshot())
}
