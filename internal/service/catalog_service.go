package service

import (
	"context"
	"strings"

	"motorlot/internal/cache"
	"motorlot/internal/models"
	"motorlot/internal/repository"
)

// CatalogService owns the lookup tables behind listings and inquiries. Writes
// invalidate the cached filters document so storefront dropdowns stay fresh.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	listingRepo repository.ListingRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository, listingRepo repository.ListingRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo, listingRepo: listingRepo}
}

// FiltersDocument bundles every lookup collection the storefront search form
// needs, in one response.
type FiltersDocument struct {
	Makes          []models.Make          `json:"makes"`
	Models         []models.ModelName     `json:"models"`
	Colors         []models.Color         `json:"colors"`
	Transmissions  []models.Transmission  `json:"transmissions"`
	Conditions     []models.Condition     `json:"conditions"`
	FuelTypes      []models.FuelType      `json:"fuel_types"`
	DriveTypes     []models.DriveType     `json:"drive_types"`
	CarTypes       []models.CarType       `json:"car_types"`
	Features       []models.Feature       `json:"features"`
	SafetyFeatures []models.SafetyFeature `json:"safety_features"`
}

// ListLookup returns all rows of the lookup identified by slug, in id order.
func (s *CatalogService) ListLookup(ctx context.Context, slug string) (any, error) {
	desc, ok := repository.LookupBySlug(slug)
	if !ok {
		return nil, models.NewNotFoundError("Lookup", slug)
	}
	return s.catalogRepo.List(ctx, desc)
}

func (s *CatalogService) GetLookup(ctx context.Context, slug string, id uint) (models.Lookup, error) {
	desc, ok := repository.LookupBySlug(slug)
	if !ok {
		return nil, models.NewNotFoundError("Lookup", slug)
	}
	return s.catalogRepo.Get(ctx, desc, id)
}

// CreateLookup adds a lookup row. Model names go through CreateModelName
// because they carry a make reference.
func (s *CatalogService) CreateLookup(ctx context.Context, slug, value string) (models.Lookup, error) {
	desc, ok := repository.LookupBySlug(slug)
	if !ok {
		return nil, models.NewNotFoundError("Lookup", slug)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, models.NewValidationError("Value is required")
	}
	row, err := s.catalogRepo.Create(ctx, desc, value)
	if err != nil {
		return nil, err
	}
	cache.InvalidateFilters(ctx)
	return row, nil
}

func (s *CatalogService) UpdateLookup(ctx context.Context, slug string, id uint, value string) (models.Lookup, error) {
	desc, ok := repository.LookupBySlug(slug)
	if !ok {
		return nil, models.NewNotFoundError("Lookup", slug)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, models.NewValidationError("Value is required")
	}
	row, err := s.catalogRepo.Update(ctx, desc, id, value)
	if err != nil {
		return nil, err
	}
	cache.InvalidateFilters(ctx)
	return row, nil
}

// DeleteLookup removes a lookup row. Rows referenced by a listing or inquiry
// are deletion-protected; removing a make also removes its model names when
// none of them are in use.
func (s *CatalogService) DeleteLookup(ctx context.Context, slug string, id uint) error {
	desc, ok := repository.LookupBySlug(slug)
	if !ok {
		return models.NewNotFoundError("Lookup", slug)
	}
	if err := s.catalogRepo.Delete(ctx, desc, id); err != nil {
		return err
	}
	cache.InvalidateFilters(ctx)
	return nil
}

func (s *CatalogService) CreateModelName(ctx context.Context, makeID uint, name string) (*models.ModelName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	row, err := s.catalogRepo.CreateModelName(ctx, makeID, name)
	if err != nil {
		return nil, err
	}
	cache.InvalidateFilters(ctx)
	return row, nil
}

func (s *CatalogService) UpdateModelName(ctx context.Context, id, makeID uint, name string) (*models.ModelName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	row, err := s.catalogRepo.UpdateModelName(ctx, id, makeID, name)
	if err != nil {
		return nil, err
	}
	cache.InvalidateFilters(ctx)
	return row, nil
}

// ModelsByMake lists a make's model names alphabetically. An unknown make
// yields an empty list, not an error.
func (s *CatalogService) ModelsByMake(ctx context.Context, makeID uint) ([]models.ModelName, error) {
	return s.catalogRepo.ModelsByMake(ctx, makeID)
}

// Conditions returns the condition lookup in id order; the storefront relies
// on seed order here rather than alphabetical.
func (s *CatalogService) Conditions(ctx context.Context) ([]models.Condition, error) {
	rows, err := s.catalogRepo.List(ctx, mustLookup("conditions"))
	if err != nil {
		return nil, err
	}
	return *rows.(*[]models.Condition), nil
}

// Filters assembles the full filters document, served through the cache when
// available.
func (s *CatalogService) Filters(ctx context.Context) (*FiltersDocument, error) {
	var doc FiltersDocument
	if cache.GetFilters(ctx, &doc) {
		return &doc, nil
	}

	var err error
	if doc.Makes, err = listAs[models.Make](ctx, s.catalogRepo, "makes"); err != nil {
		return nil, err
	}
	if doc.Models, err = s.catalogRepo.ListModelNames(ctx); err != nil {
		return nil, err
	}
	if doc.Colors, err = listAs[models.Color](ctx, s.catalogRepo, "colors"); err != nil {
		return nil, err
	}
	if doc.Transmissions, err = listAs[models.Transmission](ctx, s.catalogRepo, "transmissions"); err != nil {
		return nil, err
	}
	if doc.Conditions, err = listAs[models.Condition](ctx, s.catalogRepo, "conditions"); err != nil {
		return nil, err
	}
	if doc.FuelTypes, err = listAs[models.FuelType](ctx, s.catalogRepo, "fuel-types"); err != nil {
		return nil, err
	}
	if doc.DriveTypes, err = listAs[models.DriveType](ctx, s.catalogRepo, "drive-types"); err != nil {
		return nil, err
	}
	if doc.CarTypes, err = listAs[models.CarType](ctx, s.catalogRepo, "car-types"); err != nil {
		return nil, err
	}
	if doc.Features, err = listAs[models.Feature](ctx, s.catalogRepo, "features"); err != nil {
		return nil, err
	}
	if doc.SafetyFeatures, err = listAs[models.SafetyFeature](ctx, s.catalogRepo, "safety-features"); err != nil {
		return nil, err
	}

	cache.SetFilters(ctx, &doc)
	return &doc, nil
}

// MakesWithListings lists makes that have at least one listing, alphabetically.
func (s *CatalogService) MakesWithListings(ctx context.Context) ([]models.Make, error) {
	return s.listingRepo.MakesWithListings(ctx)
}

func mustLookup(slug string) repository.LookupDescriptor {
	desc, ok := repository.LookupBySlug(slug)
	if !ok {
		panic("unknown lookup slug: " + slug)
	}
	return desc
}

func listAs[T any](ctx context.Context, repo repository.CatalogRepository, slug string) ([]T, error) {
	rows, err := repo.List(ctx, mustLookup(slug))
	if err != nil {
		return nil, err
	}
	return *rows.(*[]T), nil
}
