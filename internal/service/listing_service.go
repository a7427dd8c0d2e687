package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"motorlot/internal/models"
	"motorlot/internal/observability"
	"motorlot/internal/repository"
	"motorlot/internal/storage"
)

const (
	similarListingCount = 4
	topMakeCount        = 4
	topMakeListingCap   = 8
)

// ListingService owns the listing lifecycle, including the image files that
// belong to each listing.
type ListingService struct {
	listingRepo repository.ListingRepository
	imageRepo   repository.ImageRepository
	media       storage.MediaStore
}

func NewListingService(listingRepo repository.ListingRepository, imageRepo repository.ImageRepository, media storage.MediaStore) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		imageRepo:   imageRepo,
		media:       media,
	}
}

// ListingInput carries every writable listing field. Create and update take
// the full payload; listings have no partial-update surface.
type ListingInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	MakeID         uint `json:"make_id"`
	ModelID        uint `json:"model_id"`
	ColorID        uint `json:"color_id"`
	TransmissionID uint `json:"transmission_id"`
	ConditionID    uint `json:"condition_id"`
	FuelTypeID     uint `json:"fuel_type_id"`
	DriveTypeID    uint `json:"drive_type_id"`
	CarTypeID      uint `json:"car_type_id"`

	Year       int     `json:"year"`
	Mileage    int     `json:"mileage"`
	EngineSize float64 `json:"engine_size"`
	Cylinders  int     `json:"cylinders"`
	Doors      int     `json:"doors"`
	VIN        string  `json:"vin"`
	Price      int     `json:"price"`

	FeatureIDs       []uint `json:"feature_ids"`
	SafetyFeatureIDs []uint `json:"safety_feature_ids"`
}

func (in *ListingInput) validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "required"
	}
	refs := map[string]uint{
		"make_id":         in.MakeID,
		"model_id":        in.ModelID,
		"color_id":        in.ColorID,
		"transmission_id": in.TransmissionID,
		"condition_id":    in.ConditionID,
		"fuel_type_id":    in.FuelTypeID,
		"drive_type_id":   in.DriveTypeID,
		"car_type_id":     in.CarTypeID,
	}
	for name, id := range refs {
		if id == 0 {
			fields[name] = "required"
		}
	}
	if in.Year < models.MinListingYear || in.Year > models.MaxListingYear {
		fields["year"] = fmt.Sprintf("must be between %d and %d", models.MinListingYear, models.MaxListingYear)
	}
	if in.Mileage < 0 {
		fields["mileage"] = "must not be negative"
	}
	if in.EngineSize < 0 {
		fields["engine_size"] = "must not be negative"
	}
	if in.Cylinders <= 0 {
		fields["cylinders"] = "must be positive"
	}
	if in.Doors <= 0 {
		fields["doors"] = "must be positive"
	}
	if in.Price < 0 {
		fields["price"] = "must not be negative"
	}
	vin := strings.TrimSpace(in.VIN)
	if vin == "" {
		fields["vin"] = "required"
	} else if len(vin) > 32 {
		fields["vin"] = "too long (max 32 characters)"
	}

	if len(fields) > 0 {
		return models.NewFieldValidationError("Invalid listing payload", fields)
	}
	return nil
}

func (in *ListingInput) apply(listing *models.CarsListing) {
	listing.Title = strings.TrimSpace(in.Title)
	listing.Description = in.Description
	listing.MakeID = in.MakeID
	listing.ModelID = in.ModelID
	listing.ColorID = in.ColorID
	listing.TransmissionID = in.TransmissionID
	listing.ConditionID = in.ConditionID
	listing.FuelTypeID = in.FuelTypeID
	listing.DriveTypeID = in.DriveTypeID
	listing.CarTypeID = in.CarTypeID
	listing.Year = in.Year
	listing.Mileage = in.Mileage
	listing.EngineSize = in.EngineSize
	listing.Cylinders = in.Cylinders
	listing.Doors = in.Doors
	listing.VIN = strings.TrimSpace(in.VIN)
	listing.Price = in.Price
}

// Search runs a filtered listing query.
func (s *ListingService) Search(ctx context.Context, f repository.ListingFilter) ([]models.CarsListing, error) {
	sort := f.Sort
	if sort == "" {
		sort = repository.SortCreatedAt
	}
	observability.ListingSearches.WithLabelValues(sort).Inc()
	return s.listingRepo.List(ctx, f)
}

func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.CarsListing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *ListingService) CreateListing(ctx context.Context, in ListingInput) (*models.CarsListing, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureVINAvailable(ctx, strings.TrimSpace(in.VIN), 0); err != nil {
		return nil, err
	}

	listing := &models.CarsListing{}
	in.apply(listing)
	for _, id := range in.FeatureIDs {
		listing.Features = append(listing.Features, models.Feature{ID: id})
	}
	for _, id := range in.SafetyFeatureIDs {
		listing.SafetyFeatures = append(listing.SafetyFeatures, models.SafetyFeature{ID: id})
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, listing.ID)
}

func (s *ListingService) UpdateListing(ctx context.Context, id uint, in ListingInput) (*models.CarsListing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureVINAvailable(ctx, strings.TrimSpace(in.VIN), id); err != nil {
		return nil, err
	}

	in.apply(listing)
	if err := s.listingRepo.Update(ctx, listing, in.FeatureIDs, in.SafetyFeatureIDs); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, id)
}

// DeleteListing removes a listing together with its images. Files are removed
// before their rows so an interrupted delete never leaves a row pointing at a
// still-existing file that a retry would miss.
func (s *ListingService) DeleteListing(ctx context.Context, id uint) error {
	if _, err := s.listingRepo.GetByID(ctx, id); err != nil {
		return err
	}

	images, err := s.imageRepo.ListByListing(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := s.media.Remove(img.Path); err != nil {
			return err
		}
		if err := s.imageRepo.Delete(ctx, img.ID); err != nil {
			return err
		}
	}

	return s.listingRepo.Delete(ctx, id)
}

// RandomSimilar returns up to four other listings, sampled uniformly. The
// reference listing must exist.
func (s *ListingService) RandomSimilar(ctx context.Context, id uint) ([]models.CarsListing, error) {
	exists, err := s.listingRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Listing", id)
	}
	return s.listingRepo.RandomOthers(ctx, id, similarListingCount)
}

// TopMakes returns up to four makes ranked by listing count, each with a
// sample of at most eight listings.
func (s *ListingService) TopMakes(ctx context.Context) ([]repository.TopMake, error) {
	return s.listingRepo.TopMakes(ctx, topMakeCount, topMakeListingCap)
}

// AttachImage stores an uploaded file and records it against the listing.
// listingID zero stores the file under the unassigned directory without a row;
// the path can be attached later.
func (s *ListingService) AttachImage(ctx context.Context, listingID uint, originalName string, r io.Reader) (*models.ListingImage, error) {
	if listingID != 0 {
		if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
			return nil, err
		}
	}

	path, err := s.media.Save(storage.ListingDir(listingID), originalName, r)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if listingID == 0 {
		return &models.ListingImage{Path: path}, nil
	}

	image := &models.ListingImage{ListingID: listingID, Path: path}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Roll the file back so a failed row insert leaves nothing behind.
		_ = s.media.Remove(path)
		return nil, err
	}
	return image, nil
}

// DeleteImage removes the stored file, then the row.
func (s *ListingService) DeleteImage(ctx context.Context, imageID uint) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.media.Remove(image.Path); err != nil {
		return err
	}
	return s.imageRepo.Delete(ctx, imageID)
}

func (s *ListingService) ensureVINAvailable(ctx context.Context, vin string, excludeID uint) error {
	n, err := s.listingRepo.CountByVIN(ctx, vin, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return models.NewConflictError("A listing with this VIN already exists",
			map[string]string{"vin": "duplicate"})
	}
	return nil
}
