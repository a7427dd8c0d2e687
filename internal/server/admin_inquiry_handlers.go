package server

import (
	"motorlot/internal/models"
	"motorlot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListInquiries handles GET /api/v1/admin/inquiries
func (s *Server) AdminListInquiries(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	inquiries, err := s.inquiryService.ListInquiries(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(inquiries)
}

// AdminGetInquiry handles GET /api/v1/admin/inquiries/:id
func (s *Server) AdminGetInquiry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	inquiry, err := s.inquiryService.GetInquiry(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(inquiry)
}

// AdminUpdateInquiry handles PUT /api/v1/admin/inquiries/:id. Only the status
// may change; a payload that alters anything else is rejected with the full
// list of offending fields.
func (s *Server) AdminUpdateInquiry(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdateInquiryInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	inquiry, err := s.inquiryService.UpdateInquiry(ctx, id, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(inquiry)
}

// AdminAddInquiryComment handles POST /api/v1/admin/inquiries/:id/comments
func (s *Server) AdminAddInquiryComment(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.inquiryService.AddComment(ctx, id, req.Comment)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
