package service

import (
	"context"
	"io"

	"motorlot/internal/models"
	"motorlot/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockListingRepo struct {
	mock.Mock
}

func (m *mockListingRepo) List(ctx context.Context, f repository.ListingFilter) ([]models.CarsListing, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.CarsListing), args.Error(1)
}

func (m *mockListingRepo) GetByID(ctx context.Context, id uint) (*models.CarsListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarsListing), args.Error(1)
}

func (m *mockListingRepo) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockListingRepo) Create(ctx context.Context, listing *models.CarsListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepo) Update(ctx context.Context, listing *models.CarsListing, featureIDs, safetyFeatureIDs []uint) error {
	args := m.Called(ctx, listing, featureIDs, safetyFeatureIDs)
	return args.Error(0)
}

func (m *mockListingRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockListingRepo) CountByVIN(ctx context.Context, vin string, excludeID uint) (int64, error) {
	args := m.Called(ctx, vin, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockListingRepo) RandomOthers(ctx context.Context, excludeID uint, n int) ([]models.CarsListing, error) {
	args := m.Called(ctx, excludeID, n)
	return args.Get(0).([]models.CarsListing), args.Error(1)
}

func (m *mockListingRepo) MakesWithListings(ctx context.Context) ([]models.Make, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Make), args.Error(1)
}

func (m *mockListingRepo) TopMakes(ctx context.Context, makeLimit, listingsPerMake int) ([]repository.TopMake, error) {
	args := m.Called(ctx, makeLimit, listingsPerMake)
	return args.Get(0).([]repository.TopMake), args.Error(1)
}

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) Create(ctx context.Context, image *models.ListingImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *mockImageRepo) GetByID(ctx context.Context, id uint) (*models.ListingImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingImage), args.Error(1)
}

func (m *mockImageRepo) ListByListing(ctx context.Context, listingID uint) ([]models.ListingImage, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).([]models.ListingImage), args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockInquiryRepo struct {
	mock.Mock
}

func (m *mockInquiryRepo) Create(ctx context.Context, inquiry *models.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *mockInquiryRepo) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *mockInquiryRepo) List(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Inquiry), args.Error(1)
}

func (m *mockInquiryRepo) UpdateStatus(ctx context.Context, id, statusID uint) error {
	args := m.Called(ctx, id, statusID)
	return args.Error(0)
}

func (m *mockInquiryRepo) AddComment(ctx context.Context, comment *models.InquiryComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) List(ctx context.Context, d repository.LookupDescriptor) (any, error) {
	args := m.Called(ctx, d)
	return args.Get(0), args.Error(1)
}

func (m *mockCatalogRepo) Get(ctx context.Context, d repository.LookupDescriptor, id uint) (models.Lookup, error) {
	args := m.Called(ctx, d, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Lookup), args.Error(1)
}

func (m *mockCatalogRepo) Create(ctx context.Context, d repository.LookupDescriptor, value string) (models.Lookup, error) {
	args := m.Called(ctx, d, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Lookup), args.Error(1)
}

func (m *mockCatalogRepo) Update(ctx context.Context, d repository.LookupDescriptor, id uint, value string) (models.Lookup, error) {
	args := m.Called(ctx, d, id, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Lookup), args.Error(1)
}

func (m *mockCatalogRepo) Delete(ctx context.Context, d repository.LookupDescriptor, id uint) error {
	args := m.Called(ctx, d, id)
	return args.Error(0)
}

func (m *mockCatalogRepo) CreateModelName(ctx context.Context, makeID uint, name string) (*models.ModelName, error) {
	args := m.Called(ctx, makeID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModelName), args.Error(1)
}

func (m *mockCatalogRepo) UpdateModelName(ctx context.Context, id, makeID uint, name string) (*models.ModelName, error) {
	args := m.Called(ctx, id, makeID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModelName), args.Error(1)
}

func (m *mockCatalogRepo) ModelsByMake(ctx context.Context, makeID uint) ([]models.ModelName, error) {
	args := m.Called(ctx, makeID)
	return args.Get(0).([]models.ModelName), args.Error(1)
}

func (m *mockCatalogRepo) ListModelNames(ctx context.Context) ([]models.ModelName, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ModelName), args.Error(1)
}

func (m *mockCatalogRepo) GetStatus(ctx context.Context, id uint) (*models.Status, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Status), args.Error(1)
}

// fakeMediaStore records save/remove calls in order so tests can assert file
// operations happen before or after their matching rows.
type fakeMediaStore struct {
	ops       []string
	saveErr   error
	removeErr error
}

func (f *fakeMediaStore) Save(relDir, originalName string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := relDir + "/stored-" + originalName
	f.ops = append(f.ops, "save:"+path)
	return path, nil
}

func (f *fakeMediaStore) Remove(relPath string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.ops = append(f.ops, "remove:"+relPath)
	return nil
}
