package sandbox

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// CheckoutBaseURL base de los links de pago emitidos.
const CheckoutBaseURL = "https://pay.sandbox.local/checkout/"

// Catálogo de planes pagos; free no se ofrece.
var plans = []dto.PlanDTO{
	{ID: entity.PlanStarter, Name: "Starter", Price: decimal.RequireFromString("29.90")},
	{ID: entity.PlanGrowth, Name: "Growth", Price: decimal.RequireFromString("59.90")},
	{ID: entity.PlanPro, Name: "Pro", Price: decimal.RequireFromString("99.90")},
}

func (s *Server) listPlans(c *fiber.Ctx) error {
	return c.JSON(dto.Envelope[[]dto.PlanDTO]{Data: plans})
}

// createPaymentLink emite un link de checkout; el plan cambia recién con SetPlan.
func (s *Server) createPaymentLink(c *fiber.Ctx) error {
	var in dto.PaymentLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	known := false
	for _, p := range plans {
		if p.ID == in.PlanID {
			known = true
			break
		}
	}
	if !known {
		return fail(c, fiber.StatusBadRequest, "Plano inválido")
	}

	link := CheckoutBaseURL + uuid.NewString() + "?plan=" + url.QueryEscape(in.PlanID)
	s.log.Info().Str("user_id", userID(c)).Str("plan", in.PlanID).Msg("link de pagamento emitido")
	return c.JSON(dto.Envelope[dto.PaymentLinkDTO]{Data: dto.PaymentLinkDTO{PaymentLink: link}})
}
