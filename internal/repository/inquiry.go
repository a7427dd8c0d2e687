package repository

import (
	"context"
	"errors"

	"motorlot/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository defines storage operations for customer inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id uint) (*models.Inquiry, error)
	List(ctx context.Context, limit, offset int) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id, statusID uint) error
	AddComment(ctx context.Context, comment *models.InquiryComment) error
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository returns a repository implementation for inquiries.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Listing").
		First(&inquiry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Inquiry", id)
		}
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) List(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Listing").
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id, statusID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ?", id).
		Update("status_id", statusID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return models.NewValidationError("Unknown status")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Inquiry", id)
	}
	return nil
}

func (r *inquiryRepository) AddComment(ctx context.Context, comment *models.InquiryComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}
