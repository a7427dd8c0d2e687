package repository

import (
	"context"
	"errors"

	"motorlot/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines storage operations for listing image rows. File
// bytes live in the media store; this repository tracks only the paths.
type ImageRepository interface {
	Create(ctx context.Context, image *models.ListingImage) error
	GetByID(ctx context.Context, id uint) (*models.ListingImage, error)
	ListByListing(ctx context.Context, listingID uint) ([]models.ListingImage, error)
	Delete(ctx context.Context, id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository returns a repository implementation for listing images.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.ListingImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.ListingImage, error) {
	var image models.ListingImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", id)
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) ListByListing(ctx context.Context, listingID uint) ([]models.ListingImage, error) {
	var images []models.ListingImage
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("id ASC").
		Find(&images).Error
	return images, err
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ListingImage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Image", id)
	}
	return nil
}
