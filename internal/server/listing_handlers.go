package server

import (
	"motorlot/internal/repository"

	"github.com/gofiber/fiber/v2"

	"motorlot/internal/models"
)

// GetListings handles GET /api/v1/car-listings
func (s *Server) GetListings(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	filter := repository.ListingFilter{
		MakeID:         queryUintPtr(c, "make"),
		ModelID:        queryUintPtr(c, "model"),
		CarTypeID:      queryUintPtr(c, "car_type"),
		DriveTypeID:    queryUintPtr(c, "drive_type"),
		FuelTypeID:     queryUintPtr(c, "fuel_type"),
		TransmissionID: queryUintPtr(c, "transmission"),
		ColorID:        queryUintPtr(c, "color"),

		PriceMin:     queryIntPtr(c, "price_min"),
		PriceMax:     queryIntPtr(c, "price_max"),
		MileageMin:   queryIntPtr(c, "mileage_min"),
		MileageMax:   queryIntPtr(c, "mileage_max"),
		CylindersMin: queryIntPtr(c, "cylinders_min"),
		CylindersMax: queryIntPtr(c, "cylinders_max"),
		YearMin:      queryIntPtr(c, "year_min"),
		YearMax:      queryIntPtr(c, "year_max"),

		Doors: queryIntPtr(c, "doors"),

		FeatureIDs:       queryUintList(c, "features"),
		SafetyFeatureIDs: queryUintList(c, "safety_features"),

		VIN:    c.Query("vin"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	listings, err := s.listingService.Search(ctx, filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(s.presentListings(listings))
}

// GetListing handles GET /api/v1/car-listings/:id
func (s *Server) GetListing(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(s.presentListing(listing))
}

// GetSimilarListings handles GET /api/v1/car-listings/:id/other (and the
// /similar alias)
func (s *Server) GetSimilarListings(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listings, err := s.listingService.RandomSimilar(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(s.presentListings(listings))
}

// GetTopMakes handles GET /api/v1/top-makes
func (s *Server) GetTopMakes(c *fiber.Ctx) error {
	tops, err := s.listingService.TopMakes(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(s.presentTopMakes(tops))
}
