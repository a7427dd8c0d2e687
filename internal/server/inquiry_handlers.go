package server

import (
	"motorlot/internal/models"
	"motorlot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateInquiry handles POST /api/v1/inquiry. The "inquiries" feature flag is
// a kill switch for the public form; it defaults to on.
func (s *Server) CreateInquiry(c *fiber.Ctx) error {
	ctx := c.Context()

	if !s.featureFlags.EnabledDefault("inquiries", c.IP(), true) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Inquiries are temporarily disabled"))
	}

	var in service.CreateInquiryInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	inquiry, err := s.inquiryService.CreateInquiry(ctx, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inquiry)
}
