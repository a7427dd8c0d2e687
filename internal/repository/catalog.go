package repository

import (
	"context"
	"errors"
	"fmt"

	"motorlot/internal/models"

	"gorm.io/gorm"
)

// LookupDescriptor describes one catalog entity so the admin surface and the
// filters document can treat all lookup tables uniformly.
type LookupDescriptor struct {
	// Slug is the URL segment identifying the entity, e.g. "makes".
	Slug string
	// Label is the human-readable singular name used in error messages.
	Label string
	// Column is the display column, "name" or "type".
	Column string
	// New returns an empty entity instance.
	New func() models.Lookup
	// NewSlice returns a pointer to an empty typed slice for listing.
	NewSlice func() any
	// ListingFK is the column on cars_listings referencing this entity, when
	// listings reference it directly.
	ListingFK string
	// JoinTable and JoinFK identify the many-to-many join rows that protect
	// feature-style entities from deletion.
	JoinTable string
	JoinFK    string
	// InquiryFK is the column on inquiries referencing this entity (statuses).
	InquiryFK string
}

var lookupRegistry = []LookupDescriptor{
	{
		Slug: "makes", Label: "Make", Column: "name",
		New:      func() models.Lookup { return &models.Make{} },
		NewSlice: func() any { return &[]models.Make{} },
		ListingFK: "make_id",
	},
	{
		Slug: "models", Label: "Model", Column: "name",
		New:      func() models.Lookup { return &models.ModelName{} },
		NewSlice: func() any { return &[]models.ModelName{} },
		ListingFK: "model_id",
	},
	{
		Slug: "colors", Label: "Color", Column: "name",
		New:      func() models.Lookup { return &models.Color{} },
		NewSlice: func() any { return &[]models.Color{} },
		ListingFK: "color_id",
	},
	{
		Slug: "transmissions", Label: "Transmission", Column: "type",
		New:      func() models.Lookup { return &models.Transmission{} },
		NewSlice: func() any { return &[]models.Transmission{} },
		ListingFK: "transmission_id",
	},
	{
		Slug: "conditions", Label: "Condition", Column: "type",
		New:      func() models.Lookup { return &models.Condition{} },
		NewSlice: func() any { return &[]models.Condition{} },
		ListingFK: "condition_id",
	},
	{
		Slug: "fuel-types", Label: "Fuel type", Column: "type",
		New:      func() models.Lookup { return &models.FuelType{} },
		NewSlice: func() any { return &[]models.FuelType{} },
		ListingFK: "fuel_type_id",
	},
	{
		Slug: "drive-types", Label: "Drive type", Column: "type",
		New:      func() models.Lookup { return &models.DriveType{} },
		NewSlice: func() any { return &[]models.DriveType{} },
		ListingFK: "drive_type_id",
	},
	{
		Slug: "car-types", Label: "Car type", Column: "type",
		New:      func() models.Lookup { return &models.CarType{} },
		NewSlice: func() any { return &[]models.CarType{} },
		ListingFK: "car_type_id",
	},
	{
		Slug: "statuses", Label: "Status", Column: "name",
		New:      func() models.Lookup { return &models.Status{} },
		NewSlice: func() any { return &[]models.Status{} },
		InquiryFK: "status_id",
	},
	{
		Slug: "features", Label: "Feature", Column: "name",
		New:      func() models.Lookup { return &models.Feature{} },
		NewSlice: func() any { return &[]models.Feature{} },
		JoinTable: "listing_features", JoinFK: "feature_id",
	},
	{
		Slug: "safety-features", Label: "Safety feature", Column: "name",
		New:      func() models.Lookup { return &models.SafetyFeature{} },
		NewSlice: func() any { return &[]models.SafetyFeature{} },
		JoinTable: "listing_safety_features", JoinFK: "safety_feature_id",
	},
}

// LookupDescriptors returns all registered catalog entities in registry order.
func LookupDescriptors() []LookupDescriptor {
	return lookupRegistry
}

// LookupBySlug resolves a catalog entity by its URL segment.
func LookupBySlug(slug string) (LookupDescriptor, bool) {
	for _, d := range lookupRegistry {
		if d.Slug == slug {
			return d, true
		}
	}
	return LookupDescriptor{}, false
}

// CatalogRepository defines storage operations for the lookup tables. Name
// uniqueness is case-insensitive; model names are additionally scoped to their
// make.
type CatalogRepository interface {
	List(ctx context.Context, d LookupDescriptor) (any, error)
	Get(ctx context.Context, d LookupDescriptor, id uint) (models.Lookup, error)
	Create(ctx context.Context, d LookupDescriptor, value string) (models.Lookup, error)
	Update(ctx context.Context, d LookupDescriptor, id uint, value string) (models.Lookup, error)
	Delete(ctx context.Context, d LookupDescriptor, id uint) error

	CreateModelName(ctx context.Context, makeID uint, name string) (*models.ModelName, error)
	UpdateModelName(ctx context.Context, id, makeID uint, name string) (*models.ModelName, error)
	ModelsByMake(ctx context.Context, makeID uint) ([]models.ModelName, error)
	ListModelNames(ctx context.Context) ([]models.ModelName, error)

	GetStatus(ctx context.Context, id uint) (*models.Status, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository returns a repository over the lookup tables.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) List(ctx context.Context, d LookupDescriptor) (any, error) {
	dest := d.NewSlice()
	if err := r.db.WithContext(ctx).Order("id ASC").Find(dest).Error; err != nil {
		return nil, err
	}
	return dest, nil
}

func (r *catalogRepository) Get(ctx context.Context, d LookupDescriptor, id uint) (models.Lookup, error) {
	row := d.New()
	if err := r.db.WithContext(ctx).First(row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(d.Label, id)
		}
		return nil, err
	}
	return row, nil
}

func (r *catalogRepository) Create(ctx context.Context, d LookupDescriptor, value string) (models.Lookup, error) {
	if d.Slug == "models" {
		return nil, models.NewValidationError("Models require a make; use the model endpoints")
	}

	dup, err := r.duplicateExists(ctx, d, value, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, duplicateLookupError(d, value)
	}

	row := d.New()
	row.SetDisplayValue(value)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateLookupError(d, value)
		}
		return nil, err
	}
	return row, nil
}

func (r *catalogRepository) Update(ctx context.Context, d LookupDescriptor, id uint, value string) (models.Lookup, error) {
	if d.Slug == "models" {
		return nil, models.NewValidationError("Models require a make; use the model endpoints")
	}

	row, err := r.Get(ctx, d, id)
	if err != nil {
		return nil, err
	}

	dup, err := r.duplicateExists(ctx, d, value, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, duplicateLookupError(d, value)
	}

	row.SetDisplayValue(value)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateLookupError(d, value)
		}
		return nil, err
	}
	return row, nil
}

func (r *catalogRepository) Delete(ctx context.Context, d LookupDescriptor, id uint) error {
	row, err := r.Get(ctx, d, id)
	if err != nil {
		return err
	}

	referenced, err := r.referenceCount(ctx, d, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return models.NewProtectedError(fmt.Sprintf(
			"%s %q is referenced by %d row(s) and cannot be deleted", d.Label, row.DisplayValue(), referenced))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deleting a make cascades to its model names; a model in use is
		// caught above through the models of the make.
		if d.Slug == "makes" {
			var inUse int64
			if err := tx.Model(&models.CarsListing{}).
				Where("model_id IN (SELECT id FROM model_names WHERE make_id = ?)", id).
				Count(&inUse).Error; err != nil {
				return err
			}
			if inUse > 0 {
				return models.NewProtectedError(fmt.Sprintf(
					"Make %q has models referenced by %d listing(s) and cannot be deleted", row.DisplayValue(), inUse))
			}
			if err := tx.Where("make_id = ?", id).Delete(&models.ModelName{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(d.New(), id).Error; err != nil {
			if isForeignKeyViolation(err) {
				return models.NewProtectedError(fmt.Sprintf(
					"%s %q is still referenced and cannot be deleted", d.Label, row.DisplayValue()))
			}
			return err
		}
		return nil
	})
}

func (r *catalogRepository) CreateModelName(ctx context.Context, makeID uint, name string) (*models.ModelName, error) {
	if err := r.ensureMake(ctx, makeID); err != nil {
		return nil, err
	}

	dup, err := r.modelNameExists(ctx, makeID, name, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, models.NewConflictError(
			fmt.Sprintf("Model %q already exists for this make (names are case-insensitive)", name),
			map[string]string{"name": "duplicate within make"})
	}

	row := &models.ModelName{MakeID: makeID, Name: name}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError(
				fmt.Sprintf("Model %q already exists for this make (names are case-insensitive)", name),
				map[string]string{"name": "duplicate within make"})
		}
		return nil, err
	}
	return r.getModelName(ctx, row.ID)
}

func (r *catalogRepository) UpdateModelName(ctx context.Context, id, makeID uint, name string) (*models.ModelName, error) {
	row, err := r.getModelName(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.ensureMake(ctx, makeID); err != nil {
		return nil, err
	}

	dup, err := r.modelNameExists(ctx, makeID, name, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, models.NewConflictError(
			fmt.Sprintf("Model %q already exists for this make (names are case-insensitive)", name),
			map[string]string{"name": "duplicate within make"})
	}

	row.MakeID = makeID
	row.Name = name
	if err := r.db.WithContext(ctx).Model(row).Updates(map[string]any{
		"make_id": makeID,
		"name":    name,
	}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError(
				fmt.Sprintf("Model %q already exists for this make (names are case-insensitive)", name),
				map[string]string{"name": "duplicate within make"})
		}
		return nil, err
	}
	return r.getModelName(ctx, id)
}

func (r *catalogRepository) ModelsByMake(ctx context.Context, makeID uint) ([]models.ModelName, error) {
	var rows []models.ModelName
	err := r.db.WithContext(ctx).
		Preload("Make").
		Where("make_id = ?", makeID).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *catalogRepository) ListModelNames(ctx context.Context) ([]models.ModelName, error) {
	var rows []models.ModelName
	err := r.db.WithContext(ctx).
		Preload("Make").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *catalogRepository) GetStatus(ctx context.Context, id uint) (*models.Status, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Status", id)
		}
		return nil, err
	}
	return &status, nil
}

func (r *catalogRepository) getModelName(ctx context.Context, id uint) (*models.ModelName, error) {
	var row models.ModelName
	if err := r.db.WithContext(ctx).Preload("Make").First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Model", id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *catalogRepository) ensureMake(ctx context.Context, makeID uint) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Make{}).Where("id = ?", makeID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError("Make", makeID)
	}
	return nil
}

func (r *catalogRepository) duplicateExists(ctx context.Context, d LookupDescriptor, value string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(d.New()).
		Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", d.Column), value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *catalogRepository) modelNameExists(ctx context.Context, makeID uint, name string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.ModelName{}).
		Where("make_id = ? AND LOWER(name) = LOWER(?)", makeID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// referenceCount counts rows that would be orphaned or invalidated by deleting
// the lookup row. A non-zero count makes the delete a refused write.
func (r *catalogRepository) referenceCount(ctx context.Context, d LookupDescriptor, id uint) (int64, error) {
	var total int64

	if d.ListingFK != "" {
		var n int64
		if err := r.db.WithContext(ctx).Model(&models.CarsListing{}).
			Where(fmt.Sprintf("%s = ?", d.ListingFK), id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	if d.JoinTable != "" {
		var n int64
		if err := r.db.WithContext(ctx).Table(d.JoinTable).
			Where(fmt.Sprintf("%s = ?", d.JoinFK), id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	if d.InquiryFK != "" {
		var n int64
		if err := r.db.WithContext(ctx).Model(&models.Inquiry{}).
			Where(fmt.Sprintf("%s = ?", d.InquiryFK), id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

func duplicateLookupError(d LookupDescriptor, value string) *models.AppError {
	return models.NewConflictError(
		fmt.Sprintf("%s %q already exists (names are case-insensitive)", d.Label, value),
		map[string]string{d.Column: "duplicate ignoring case"})
}
