package repository

import (
	"context"
	"errors"
	"strings"

	"motorlot/internal/models"

	"gorm.io/gorm"
)

// Sort directives accepted by ListingFilter. Anything else falls back to the
// default newest-first ordering.
const (
	SortCreatedAt   = "created_at"
	SortPrice       = "price"
	SortPriceDesc   = "price_desc"
	SortMileage     = "mileage"
	SortMileageDesc = "mileage_desc"
)

// ListingFilter is the declarative search input for the listing store. All
// populated conditions compose with AND. Reference filters that point at a
// nonexistent row simply match nothing.
type ListingFilter struct {
	MakeID         *uint
	ModelID        *uint
	CarTypeID      *uint
	DriveTypeID    *uint
	FuelTypeID     *uint
	TransmissionID *uint
	ColorID        *uint

	PriceMin     *int
	PriceMax     *int
	MileageMin   *int
	MileageMax   *int
	CylindersMin *int
	CylindersMax *int
	YearMin      *int
	YearMax      *int

	Doors *int

	// FeatureIDs and SafetyFeatureIDs use match-ANY semantics: a listing
	// qualifies when it carries at least one of the given ids.
	FeatureIDs       []uint
	SafetyFeatureIDs []uint

	// VIN is a case-insensitive substring match.
	VIN string
	// Search matches the title by substring, case-insensitive.
	Search string

	Sort   string
	Limit  int
	Offset int
}

// TopMake is a make ranked by listing count, carrying a capped sample of its
// listings.
type TopMake struct {
	Make     models.Make
	Count    int64
	Listings []models.CarsListing
}

// ListingRepository defines storage operations for car listings.
type ListingRepository interface {
	List(ctx context.Context, f ListingFilter) ([]models.CarsListing, error)
	GetByID(ctx context.Context, id uint) (*models.CarsListing, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, listing *models.CarsListing) error
	Update(ctx context.Context, listing *models.CarsListing, featureIDs, safetyFeatureIDs []uint) error
	Delete(ctx context.Context, id uint) error
	CountByVIN(ctx context.Context, vin string, excludeID uint) (int64, error)
	RandomOthers(ctx context.Context, excludeID uint, n int) ([]models.CarsListing, error)
	MakesWithListings(ctx context.Context) ([]models.Make, error)
	TopMakes(ctx context.Context, makeLimit, listingsPerMake int) ([]TopMake, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository returns a repository implementation for car listings.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// withPreloads loads every relation the presentation layer embeds.
func withPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Make").
		Preload("Model").
		Preload("Model.Make").
		Preload("Color").
		Preload("Transmission").
		Preload("Condition").
		Preload("FuelType").
		Preload("DriveType").
		Preload("CarType").
		Preload("Features").
		Preload("SafetyFeatures").
		Preload("Images")
}

// orderClause maps a sort directive to SQL ordering. Every ordering carries an
// id tiebreak so pagination over equal keys is stable.
func orderClause(sort string) string {
	switch sort {
	case SortPrice:
		return "price ASC, id ASC"
	case SortPriceDesc:
		return "price DESC, id ASC"
	case SortMileage:
		return "mileage ASC, id ASC"
	case SortMileageDesc:
		return "mileage DESC, id ASC"
	case SortCreatedAt:
		return "created_at DESC, id ASC"
	default:
		// Unrecognized directives keep the default ordering.
		return "created_at DESC, id ASC"
	}
}

func (r *listingRepository) List(ctx context.Context, f ListingFilter) ([]models.CarsListing, error) {
	q := r.db.WithContext(ctx).Model(&models.CarsListing{})

	refs := map[string]*uint{
		"make_id":         f.MakeID,
		"model_id":        f.ModelID,
		"car_type_id":     f.CarTypeID,
		"drive_type_id":   f.DriveTypeID,
		"fuel_type_id":    f.FuelTypeID,
		"transmission_id": f.TransmissionID,
		"color_id":        f.ColorID,
	}
	for column, id := range refs {
		if id != nil {
			q = q.Where(column+" = ?", *id)
		}
	}

	ranges := []struct {
		column string
		min    *int
		max    *int
	}{
		{"price", f.PriceMin, f.PriceMax},
		{"mileage", f.MileageMin, f.MileageMax},
		{"cylinders", f.CylindersMin, f.CylindersMax},
		{"year", f.YearMin, f.YearMax},
	}
	for _, rg := range ranges {
		if rg.min != nil {
			q = q.Where(rg.column+" >= ?", *rg.min)
		}
		if rg.max != nil {
			q = q.Where(rg.column+" <= ?", *rg.max)
		}
	}

	if f.Doors != nil {
		q = q.Where("doors = ?", *f.Doors)
	}

	if len(f.FeatureIDs) > 0 {
		q = q.Where("cars_listings.id IN (SELECT listing_id FROM listing_features WHERE feature_id IN ?)", f.FeatureIDs)
	}
	if len(f.SafetyFeatureIDs) > 0 {
		q = q.Where("cars_listings.id IN (SELECT listing_id FROM listing_safety_features WHERE safety_feature_id IN ?)", f.SafetyFeatureIDs)
	}

	if f.VIN != "" {
		q = q.Where("LOWER(vin) LIKE ?", "%"+strings.ToLower(f.VIN)+"%")
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var listings []models.CarsListing
	err := withPreloads(q).
		Order(orderClause(f.Sort)).
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.CarsListing, error) {
	var listing models.CarsListing
	if err := withPreloads(r.db.WithContext(ctx)).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Listing", id)
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CarsListing{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *listingRepository) Create(ctx context.Context, listing *models.CarsListing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A listing with this VIN already exists",
				map[string]string{"vin": "duplicate"})
		}
		return err
	}
	return nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.CarsListing, featureIDs, safetyFeatureIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(listing).
			Select("title", "description", "make_id", "model_id", "color_id",
				"transmission_id", "condition_id", "fuel_type_id", "drive_type_id",
				"car_type_id", "year", "mileage", "engine_size", "cylinders",
				"doors", "vin", "price").
			Updates(listing).Error; err != nil {
			if isUniqueViolation(err) {
				return models.NewConflictError("A listing with this VIN already exists",
					map[string]string{"vin": "duplicate"})
			}
			return err
		}

		features := make([]models.Feature, len(featureIDs))
		for i, id := range featureIDs {
			features[i] = models.Feature{ID: id}
		}
		if err := tx.Model(listing).Association("Features").Replace(features); err != nil {
			return err
		}

		safety := make([]models.SafetyFeature, len(safetyFeatureIDs))
		for i, id := range safetyFeatureIDs {
			safety[i] = models.SafetyFeature{ID: id}
		}
		return tx.Model(listing).Association("SafetyFeatures").Replace(safety)
	})
}

// Delete removes the listing row, its feature associations, and nulls out any
// inquiries that referenced it. Image rows and files must already be gone; the
// service layer owns that cascade.
func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Inquiry{}).
			Where("listing_id = ?", id).
			Update("listing_id", nil).Error; err != nil {
			return err
		}
		listing := models.CarsListing{ID: id}
		if err := tx.Model(&listing).Association("Features").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&listing).Association("SafetyFeatures").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.CarsListing{}, id).Error
	})
}

func (r *listingRepository) CountByVIN(ctx context.Context, vin string, excludeID uint) (int64, error) {
	// Exact comparison: VINs are stored as submitted and not normalized.
	q := r.db.WithContext(ctx).Model(&models.CarsListing{}).Where("vin = ?", vin)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// RandomOthers returns up to n listings other than excludeID, sampled
// uniformly. RANDOM() is understood by both Postgres and SQLite.
func (r *listingRepository) RandomOthers(ctx context.Context, excludeID uint, n int) ([]models.CarsListing, error) {
	var listings []models.CarsListing
	err := withPreloads(r.db.WithContext(ctx).Model(&models.CarsListing{})).
		Where("id <> ?", excludeID).
		Order("RANDOM()").
		Limit(n).
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) MakesWithListings(ctx context.Context) ([]models.Make, error) {
	var makes []models.Make
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM cars_listings WHERE cars_listings.make_id = makes.id)").
		Order("name ASC").
		Find(&makes).Error
	return makes, err
}

func (r *listingRepository) TopMakes(ctx context.Context, makeLimit, listingsPerMake int) ([]TopMake, error) {
	type makeCount struct {
		ID    uint
		Name  string
		Count int64
	}

	var counts []makeCount
	err := r.db.WithContext(ctx).
		Table("makes").
		Select("makes.id, makes.name, COUNT(cars_listings.id) AS count").
		Joins("JOIN cars_listings ON cars_listings.make_id = makes.id").
		Group("makes.id, makes.name").
		Order("count DESC, makes.id ASC").
		Limit(makeLimit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make([]TopMake, 0, len(counts))
	for _, mc := range counts {
		var listings []models.CarsListing
		err := withPreloads(r.db.WithContext(ctx).Model(&models.CarsListing{})).
			Where("make_id = ?", mc.ID).
			Order("id ASC").
			Limit(listingsPerMake).
			Find(&listings).Error
		if err != nil {
			return nil, err
		}
		result = append(result, TopMake{
			Make:     models.Make{ID: mc.ID, Name: mc.Name},
			Count:    mc.Count,
			Listings: listings,
		})
	}
	return result, nil
}
