package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
)

// FilterRequest cuerpo de PUT /notifications/filter.
type FilterRequest struct {
	Filter string `json:"filter"`
}

// NotificationHandler acciones sobre notificaciones (protegido).
type NotificationHandler struct {
	view  *views.Notifications
	store *session.Store
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(view *views.Notifications, store *session.Store) *NotificationHandler {
	return &NotificationHandler{view: view, store: store}
}

// SetFilter godoc
// @Summary      Cambiar el filtro de la lista
// @Tags         notifications
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  FilterRequest  true  "all, unread o un tipo"
// @Success      200   {object}  views.NotificationsSnapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /notifications/filter [put]
func (h *NotificationHandler) SetFilter(c *fiber.Ctx) error {
	var in FilterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.run(c, func(ctx context.Context) error { return h.view.SetFilter(ctx, in.Filter) })
}

// Generate godoc
// @Summary      Evaluar reglas y generar notificaciones
// @Tags         notifications
// @Security     Session
// @Produce      json
// @Success      200  {object}  views.NotificationsSnapshot
// @Router       /notifications/generate [post]
func (h *NotificationHandler) Generate(c *fiber.Ctx) error {
	return h.run(c, h.view.Generate)
}

// MarkRead godoc
// @Summary      Marcar como leída
// @Tags         notifications
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  views.NotificationsSnapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	return h.run(c, func(ctx context.Context) error { return h.view.MarkRead(ctx, id) })
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Session
// @Produce      json
// @Success      200  {object}  views.NotificationsSnapshot
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	return h.run(c, h.view.MarkAllRead)
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  views.NotificationsSnapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	return h.run(c, func(ctx context.Context) error { return h.view.Delete(ctx, id) })
}

func (h *NotificationHandler) run(c *fiber.Ctx, action func(context.Context) error) error {
	if err := action(h.store.Scope()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view.Snapshot())
}
