package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"motorlot/internal/models"
	"motorlot/internal/observability"
	"motorlot/internal/repository"
)

// phonePattern accepts digits with an optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?\d+$`)

// InquiryService handles public inquiry submission and the admin follow-up
// workflow.
type InquiryService struct {
	inquiryRepo repository.InquiryRepository
	catalogRepo repository.CatalogRepository
	listingRepo repository.ListingRepository
}

func NewInquiryService(inquiryRepo repository.InquiryRepository, catalogRepo repository.CatalogRepository, listingRepo repository.ListingRepository) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		catalogRepo: catalogRepo,
		listingRepo: listingRepo,
	}
}

// CreateInquiryInput is the public submission payload. Status is not
// settable; every new inquiry starts in the default status.
type CreateInquiryInput struct {
	ListingID *uint  `json:"listing_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// UpdateInquiryInput is the admin update payload. Only Status may differ from
// the stored record; any other change is rejected wholesale.
type UpdateInquiryInput struct {
	ListingID *uint  `json:"listing_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	StatusID  uint   `json:"status_id"`
}

func (in *CreateInquiryInput) validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "required"
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields["email"] = "required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "invalid email address"
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		fields["phone"] = "required"
	} else if !phonePattern.MatchString(phone) {
		fields["phone"] = "must contain only digits with an optional leading +"
	}
	if strings.TrimSpace(in.Message) == "" {
		fields["message"] = "required"
	}

	if len(fields) > 0 {
		return models.NewFieldValidationError("Invalid inquiry payload", fields)
	}
	return nil
}

// CreateInquiry validates and stores a public submission in the default
// status. A missing default status row is a deployment fault, reported as a
// configuration error rather than a validation failure.
func (s *InquiryService) CreateInquiry(ctx context.Context, in CreateInquiryInput) (*models.Inquiry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if in.ListingID != nil {
		exists, err := s.listingRepo.Exists(ctx, *in.ListingID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewNotFoundError("Listing", *in.ListingID)
		}
	}

	if _, err := s.catalogRepo.GetStatus(ctx, models.DefaultInquiryStatusID); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return nil, models.NewConfigurationError("Default status (id=1) does not exist. Seed the statuses table before accepting inquiries.")
		}
		return nil, err
	}

	inquiry := &models.Inquiry{
		ListingID: in.ListingID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		StatusID:  models.DefaultInquiryStatusID,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	observability.InquiriesCreated.Inc()
	return s.inquiryRepo.GetByID(ctx, inquiry.ID)
}

func (s *InquiryService) GetInquiry(ctx context.Context, id uint) (*models.Inquiry, error) {
	return s.inquiryRepo.GetByID(ctx, id)
}

func (s *InquiryService) ListInquiries(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	return s.inquiryRepo.List(ctx, limit, offset)
}

// UpdateInquiry applies an admin edit. The payload must echo the stored
// record except for status; every deviating field is reported and the whole
// write refused.
func (s *InquiryService) UpdateInquiry(ctx context.Context, id uint, in UpdateInquiryInput) (*models.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if !uintPtrEqual(in.ListingID, inquiry.ListingID) {
		changed = append(changed, "listing_id")
	}
	if in.Name != inquiry.Name {
		changed = append(changed, "name")
	}
	if in.Email != inquiry.Email {
		changed = append(changed, "email")
	}
	if in.Phone != inquiry.Phone {
		changed = append(changed, "phone")
	}
	if in.Message != inquiry.Message {
		changed = append(changed, "message")
	}
	if len(changed) > 0 {
		return nil, models.NewImmutableFieldError(changed)
	}

	if in.StatusID != inquiry.StatusID {
		if _, err := s.catalogRepo.GetStatus(ctx, in.StatusID); err != nil {
			return nil, err
		}
		if err := s.inquiryRepo.UpdateStatus(ctx, id, in.StatusID); err != nil {
			return nil, err
		}
	}
	return s.inquiryRepo.GetByID(ctx, id)
}

// AddComment appends an admin annotation to an inquiry.
func (s *InquiryService) AddComment(ctx context.Context, inquiryID uint, comment string) (*models.InquiryComment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, models.NewValidationError("Comment is required")
	}
	if _, err := s.inquiryRepo.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}
	row := &models.InquiryComment{InquiryID: &inquiryID, Comment: comment}
	if err := s.inquiryRepo.AddComment(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
