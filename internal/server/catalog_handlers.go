package server

import (
	"motorlot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMakesWithListings handles GET /api/v1/makes. Only makes with at least one
// listing are returned, alphabetically.
func (s *Server) GetMakesWithListings(c *fiber.Ctx) error {
	makes, err := s.catalogService.MakesWithListings(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(makes)
}

// GetModelsByMake handles GET /api/v1/models/:make_id, plus the query form
// GET /api/v1/models?make=<id>.
func (s *Server) GetModelsByMake(c *fiber.Ctx) error {
	var makeID uint
	if c.Params("make_id") != "" {
		id, err := s.parseID(c, "make_id")
		if err != nil {
			return nil
		}
		makeID = id
	} else {
		q := queryUintPtr(c, "make")
		if q == nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Query parameter 'make' is required"))
		}
		makeID = *q
	}

	rows, err := s.catalogService.ModelsByMake(c.Context(), makeID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// GetConditions handles GET /api/v1/conditions
func (s *Server) GetConditions(c *fiber.Ctx) error {
	rows, err := s.catalogService.Conditions(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// GetFilters handles GET /api/v1/filters
func (s *Server) GetFilters(c *fiber.Ctx) error {
	doc, err := s.catalogService.Filters(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(doc)
}
