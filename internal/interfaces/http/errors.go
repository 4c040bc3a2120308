package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// El orden importa: ErrInvalidCredentials envuelve ErrAuthFailure y debe ir antes.
var errorMappings = []errorMapping{
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrAuthFailure, fiber.StatusUnauthorized, "SESSION_EXPIRED"},
	{domain.ErrNotAuthenticated, fiber.StatusUnauthorized, "NOT_AUTHENTICATED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrQuantityOutOfRange, fiber.StatusBadRequest, "QUANTITY_OUT_OF_RANGE"},
	{domain.ErrOutOfStock, fiber.StatusBadRequest, "OUT_OF_STOCK"},
	{domain.ErrUnknownPage, fiber.StatusBadRequest, "UNKNOWN_PAGE"},
	{domain.ErrUnknownFilter, fiber.StatusBadRequest, "UNKNOWN_FILTER"},
	{domain.ErrNoSaleInProgress, fiber.StatusConflict, "NO_SALE_IN_PROGRESS"},
	{domain.ErrAlertPending, fiber.StatusConflict, "ALERT_PENDING"},
	{domain.ErrPaymentInFlight, fiber.StatusConflict, "PAYMENT_IN_FLIGHT"},
	{domain.ErrAlreadySubscribed, fiber.StatusConflict, "ALREADY_SUBSCRIBED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrValidation, fiber.StatusUnprocessableEntity, "REJECTED"},
	{domain.ErrTransient, fiber.StatusBadGateway, "REMOTE_UNAVAILABLE"},
}

// classify devuelve status HTTP y código para un error de la aplicación.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe el error como dto.ErrorResponse. El mensaje es el del servidor remoto
// cuando lo hay.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: domain.UserMessage(err)})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
