package server

import (
	"motorlot/internal/models"
	"motorlot/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// catalogRowRequest is the write payload for lookup rows. Model names also
// carry the owning make.
type catalogRowRequest struct {
	Value  string `json:"value"`
	MakeID uint   `json:"make_id"`
}

// ListCatalogLookups handles GET /api/v1/admin/catalog and enumerates the
// managed lookup tables.
func (s *Server) ListCatalogLookups(c *fiber.Ctx) error {
	descs := repository.LookupDescriptors()
	out := make([]fiber.Map, 0, len(descs))
	for _, d := range descs {
		out = append(out, fiber.Map{
			"slug":  d.Slug,
			"label": d.Label,
		})
	}
	return c.JSON(out)
}

// ListCatalogRows handles GET /api/v1/admin/catalog/:lookup
func (s *Server) ListCatalogRows(c *fiber.Ctx) error {
	rows, err := s.catalogService.ListLookup(c.Context(), c.Params("lookup"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// GetCatalogRow handles GET /api/v1/admin/catalog/:lookup/:id
func (s *Server) GetCatalogRow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	row, err := s.catalogService.GetLookup(c.Context(), c.Params("lookup"), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(row)
}

// CreateCatalogRow handles POST /api/v1/admin/catalog/:lookup
func (s *Server) CreateCatalogRow(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("lookup")

	var req catalogRowRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if slug == "models" {
		row, err := s.catalogService.CreateModelName(ctx, req.MakeID, req.Value)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(row)
	}

	row, err := s.catalogService.CreateLookup(ctx, slug, req.Value)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// UpdateCatalogRow handles PUT /api/v1/admin/catalog/:lookup/:id
func (s *Server) UpdateCatalogRow(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("lookup")
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req catalogRowRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if slug == "models" {
		row, err := s.catalogService.UpdateModelName(ctx, id, req.MakeID, req.Value)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.JSON(row)
	}

	row, err := s.catalogService.UpdateLookup(ctx, slug, id, req.Value)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(row)
}

// DeleteCatalogRow handles DELETE /api/v1/admin/catalog/:lookup/:id
func (s *Server) DeleteCatalogRow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.catalogService.DeleteLookup(c.Context(), c.Params("lookup"), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
