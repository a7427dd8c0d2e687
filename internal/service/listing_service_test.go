package service

import (
	"context"
	"strings"
	"testing"

	"motorlot/internal/models"
	"motorlot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validListingInput() ListingInput {
	return ListingInput{
		Title:          "2020 Ford Mustang GT",
		Description:    "One owner",
		MakeID:         1,
		ModelID:        1,
		ColorID:        1,
		TransmissionID: 1,
		ConditionID:    1,
		FuelTypeID:     1,
		DriveTypeID:    1,
		CarTypeID:      1,
		Year:           2020,
		Mileage:        30000,
		EngineSize:     5.0,
		Cylinders:      8,
		Doors:          2,
		VIN:            "1FA6P8CF5L5100001",
		Price:          35000,
	}
}

func newListingService() (*ListingService, *mockListingRepo, *mockImageRepo, *fakeMediaStore) {
	listingRepo := new(mockListingRepo)
	imageRepo := new(mockImageRepo)
	media := &fakeMediaStore{}
	return NewListingService(listingRepo, imageRepo, media), listingRepo, imageRepo, media
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
	return appErr.Fields
}

func TestListingService_CreateValidation(t *testing.T) {
	svc, _, _, _ := newListingService()
	ctx := context.Background()

	t.Run("missing required fields", func(t *testing.T) {
		in := validListingInput()
		in.Title = "  "
		in.MakeID = 0
		in.VIN = ""

		_, err := svc.CreateListing(ctx, in)
		fields := fieldErrors(t, err)
		assert.Equal(t, "required", fields["title"])
		assert.Equal(t, "required", fields["make_id"])
		assert.Equal(t, "required", fields["vin"])
	})

	t.Run("year out of range", func(t *testing.T) {
		in := validListingInput()
		in.Year = 1850
		_, err := svc.CreateListing(ctx, in)
		assert.Contains(t, fieldErrors(t, err), "year")
	})

	t.Run("negative mileage and price", func(t *testing.T) {
		in := validListingInput()
		in.Mileage = -1
		in.Price = -1
		fields := fieldErrors(t, func() error { _, err := svc.CreateListing(ctx, in); return err }())
		assert.Contains(t, fields, "mileage")
		assert.Contains(t, fields, "price")
	})

	t.Run("vin over 32 characters", func(t *testing.T) {
		in := validListingInput()
		in.VIN = strings.Repeat("A", 33)
		_, err := svc.CreateListing(ctx, in)
		assert.Contains(t, fieldErrors(t, err), "vin")
	})

	t.Run("negative engine size", func(t *testing.T) {
		in := validListingInput()
		in.EngineSize = -0.1
		_, err := svc.CreateListing(ctx, in)
		assert.Contains(t, fieldErrors(t, err), "engine_size")
	})
}

// Electric vehicles have no displacement; engine_size 0.0 is a valid value.
func TestListingService_CreateAcceptsZeroEngineSize(t *testing.T) {
	svc, listingRepo, _, _ := newListingService()
	ctx := context.Background()

	in := validListingInput()
	in.EngineSize = 0

	listingRepo.On("CountByVIN", mock.Anything, in.VIN, uint(0)).Return(int64(0), nil)
	listingRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *models.CarsListing) bool {
		return l.EngineSize == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.CarsListing).ID = 7
	}).Return(nil)
	listingRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.CarsListing{ID: 7}, nil)

	_, err := svc.CreateListing(ctx, in)
	require.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestListingService_CreateRejectsDuplicateVIN(t *testing.T) {
	svc, listingRepo, _, _ := newListingService()
	ctx := context.Background()

	listingRepo.On("CountByVIN", mock.Anything, "1FA6P8CF5L5100001", uint(0)).Return(int64(1), nil)

	_, err := svc.CreateListing(ctx, validListingInput())
	require.Error(t, err)
	appErr := err.(*models.AppError)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "duplicate", appErr.Fields["vin"])
	listingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingService_Create(t *testing.T) {
	svc, listingRepo, _, _ := newListingService()
	ctx := context.Background()

	in := validListingInput()
	in.FeatureIDs = []uint{3, 5}

	listingRepo.On("CountByVIN", mock.Anything, in.VIN, uint(0)).Return(int64(0), nil)
	listingRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *models.CarsListing) bool {
		return l.Title == in.Title && l.VIN == in.VIN && len(l.Features) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.CarsListing).ID = 42
	}).Return(nil)
	listingRepo.On("GetByID", mock.Anything, uint(42)).Return(&models.CarsListing{ID: 42, Title: in.Title}, nil)

	got, err := svc.CreateListing(ctx, in)
	require.NoError(t, err)
	assert.EqualValues(t, 42, got.ID)
	listingRepo.AssertExpectations(t)
}

func TestListingService_UpdateExcludesSelfFromVINCheck(t *testing.T) {
	svc, listingRepo, _, _ := newListingService()
	ctx := context.Background()

	in := validListingInput()
	existing := &models.CarsListing{ID: 7, VIN: in.VIN}

	listingRepo.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)
	listingRepo.On("CountByVIN", mock.Anything, in.VIN, uint(7)).Return(int64(0), nil)
	listingRepo.On("Update", mock.Anything, existing, in.FeatureIDs, in.SafetyFeatureIDs).Return(nil)

	_, err := svc.UpdateListing(ctx, 7, in)
	require.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestListingService_DeleteRemovesFilesBeforeRows(t *testing.T) {
	svc, listingRepo, imageRepo, media := newListingService()
	ctx := context.Background()

	listingRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.CarsListing{ID: 5}, nil)
	imageRepo.On("ListByListing", mock.Anything, uint(5)).Return([]models.ListingImage{
		{ID: 10, ListingID: 5, Path: "listings/5/a.jpg"},
		{ID: 11, ListingID: 5, Path: "listings/5/b.jpg"},
	}, nil)
	imageRepo.On("Delete", mock.Anything, uint(10)).Run(func(mock.Arguments) {
		media.ops = append(media.ops, "row:10")
	}).Return(nil)
	imageRepo.On("Delete", mock.Anything, uint(11)).Run(func(mock.Arguments) {
		media.ops = append(media.ops, "row:11")
	}).Return(nil)
	listingRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	require.NoError(t, svc.DeleteListing(ctx, 5))
	assert.Equal(t, []string{
		"remove:listings/5/a.jpg", "row:10",
		"remove:listings/5/b.jpg", "row:11",
	}, media.ops)
	listingRepo.AssertExpectations(t)
	imageRepo.AssertExpectations(t)
}

func TestListingService_RandomSimilar(t *testing.T) {
	ctx := context.Background()

	t.Run("missing reference listing", func(t *testing.T) {
		svc, listingRepo, _, _ := newListingService()
		listingRepo.On("Exists", mock.Anything, uint(99)).Return(false, nil)

		_, err := svc.RandomSimilar(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
	})

	t.Run("asks for four others", func(t *testing.T) {
		svc, listingRepo, _, _ := newListingService()
		listingRepo.On("Exists", mock.Anything, uint(1)).Return(true, nil)
		listingRepo.On("RandomOthers", mock.Anything, uint(1), 4).Return([]models.CarsListing{{ID: 2}}, nil)

		got, err := svc.RandomSimilar(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		listingRepo.AssertExpectations(t)
	})
}

func TestListingService_TopMakes(t *testing.T) {
	svc, listingRepo, _, _ := newListingService()
	listingRepo.On("TopMakes", mock.Anything, 4, 8).Return([]repository.TopMake{}, nil)

	_, err := svc.TopMakes(context.Background())
	require.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestListingService_AttachImage(t *testing.T) {
	ctx := context.Background()

	t.Run("attached to a listing", func(t *testing.T) {
		svc, listingRepo, imageRepo, media := newListingService()
		listingRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.CarsListing{ID: 3}, nil)
		imageRepo.On("Create", mock.Anything, mock.MatchedBy(func(img *models.ListingImage) bool {
			return img.ListingID == 3 && strings.HasPrefix(img.Path, "listings/3/")
		})).Return(nil)

		img, err := svc.AttachImage(ctx, 3, "photo.JPG", strings.NewReader("bytes"))
		require.NoError(t, err)
		assert.Equal(t, "listings/3/stored-photo.JPG", img.Path)
		assert.Equal(t, []string{"save:listings/3/stored-photo.JPG"}, media.ops)
	})

	t.Run("unassigned upload stores no row", func(t *testing.T) {
		svc, _, imageRepo, _ := newListingService()

		img, err := svc.AttachImage(ctx, 0, "photo.jpg", strings.NewReader("bytes"))
		require.NoError(t, err)
		assert.Zero(t, img.ID)
		assert.True(t, strings.HasPrefix(img.Path, "listings/unassigned/"))
		imageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failed row insert rolls the file back", func(t *testing.T) {
		svc, listingRepo, imageRepo, media := newListingService()
		listingRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.CarsListing{ID: 3}, nil)
		imageRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.AttachImage(ctx, 3, "photo.jpg", strings.NewReader("bytes"))
		require.Error(t, err)
		require.Len(t, media.ops, 2)
		assert.Equal(t, "remove:listings/3/stored-photo.jpg", media.ops[1])
	})
}

func TestListingService_DeleteImage(t *testing.T) {
	svc, _, imageRepo, media := newListingService()
	ctx := context.Background()

	imageRepo.On("GetByID", mock.Anything, uint(8)).Return(&models.ListingImage{ID: 8, Path: "listings/2/c.jpg"}, nil)
	imageRepo.On("Delete", mock.Anything, uint(8)).Run(func(mock.Arguments) {
		media.ops = append(media.ops, "row:8")
	}).Return(nil)

	require.NoError(t, svc.DeleteImage(ctx, 8))
	assert.Equal(t, []string{"remove:listings/2/c.jpg", "row:8"}, media.ops)
}
