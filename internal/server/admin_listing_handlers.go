package server

import (
	"motorlot/internal/models"
	"motorlot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateListing handles POST /api/v1/admin/listings
func (s *Server) AdminCreateListing(c *fiber.Ctx) error {
	ctx := c.Context()

	var in service.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.CreateListing(ctx, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.presentListing(listing))
}

// AdminUpdateListing handles PUT /api/v1/admin/listings/:id
func (s *Server) AdminUpdateListing(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.UpdateListing(ctx, id, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(s.presentListing(listing))
}

// AdminDeleteListing handles DELETE /api/v1/admin/listings/:id. Images are
// removed along with the listing.
func (s *Server) AdminDeleteListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.listingService.DeleteListing(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminUploadImage handles POST /api/v1/admin/listings/:id/images (multipart
// form, field "image").
func (s *Server) AdminUploadImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.saveUploadedImage(c, id)
}

// AdminUploadUnassignedImage handles POST /api/v1/admin/images. The file lands
// in the unassigned directory without a database row.
func (s *Server) AdminUploadUnassignedImage(c *fiber.Ctx) error {
	return s.saveUploadedImage(c, 0)
}

func (s *Server) saveUploadedImage(c *fiber.Ctx, listingID uint) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart field 'image' is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unreadable upload"))
	}
	defer file.Close()

	image, err := s.listingService.AttachImage(c.Context(), listingID, fileHeader.Filename, file)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.presentImage(image))
}

// AdminDeleteImage handles DELETE /api/v1/admin/images/:id. The stored file
// goes first, then the row.
func (s *Server) AdminDeleteImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.listingService.DeleteImage(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
