package repository

import (
	"fmt"
	"testing"

	"motorlot/internal/database"
	"motorlot/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate schema")
	return db
}

// fixtures holds one row of every catalog entity plus a second make/model pair
// for cross-make assertions.
type fixtures struct {
	Make         models.Make
	Make2        models.Make
	Model        models.ModelName
	Model2       models.ModelName
	Color        models.Color
	Transmission models.Transmission
	Condition    models.Condition
	FuelType     models.FuelType
	DriveType    models.DriveType
	CarType      models.CarType
	Status       models.Status
	Features     []models.Feature
	Safety       []models.SafetyFeature
}

func seedFixtures(t *testing.T, db *gorm.DB) *fixtures {
	fx := &fixtures{
		Make:         models.Make{Name: "Ford"},
		Make2:        models.Make{Name: "Audi"},
		Color:        models.Color{Name: "Blue"},
		Transmission: models.Transmission{Type: "Automatic"},
		Condition:    models.Condition{Type: "Used"},
		FuelType:     models.FuelType{Type: "Gasoline"},
		DriveType:    models.DriveType{Type: "AWD"},
		CarType:      models.CarType{Type: "Sedan"},
		Status:       models.Status{Name: "New"},
	}
	require.NoError(t, db.Create(&fx.Make).Error)
	require.NoError(t, db.Create(&fx.Make2).Error)

	fx.Model = models.ModelName{Name: "Mustang", MakeID: fx.Make.ID}
	fx.Model2 = models.ModelName{Name: "A4", MakeID: fx.Make2.ID}
	require.NoError(t, db.Create(&fx.Model).Error)
	require.NoError(t, db.Create(&fx.Model2).Error)

	require.NoError(t, db.Create(&fx.Color).Error)
	require.NoError(t, db.Create(&fx.Transmission).Error)
	require.NoError(t, db.Create(&fx.Condition).Error)
	require.NoError(t, db.Create(&fx.FuelType).Error)
	require.NoError(t, db.Create(&fx.DriveType).Error)
	require.NoError(t, db.Create(&fx.CarType).Error)
	require.NoError(t, db.Create(&fx.Status).Error)

	fx.Features = []models.Feature{{Name: "Sunroof"}, {Name: "Heated Seats"}, {Name: "Navigation"}}
	for i := range fx.Features {
		require.NoError(t, db.Create(&fx.Features[i]).Error)
	}
	fx.Safety = []models.SafetyFeature{{Name: "ABS"}, {Name: "Airbags"}}
	for i := range fx.Safety {
		require.NoError(t, db.Create(&fx.Safety[i]).Error)
	}

	return fx
}

var vinCounter int

// newListing persists a listing built from the fixtures with optional
// overrides.
func newListing(t *testing.T, db *gorm.DB, fx *fixtures, overrides ...func(*models.CarsListing)) models.CarsListing {
	vinCounter++
	listing := models.CarsListing{
		Title:          "Test Listing",
		Description:    "A test car",
		MakeID:         fx.Make.ID,
		ModelID:        fx.Model.ID,
		ColorID:        fx.Color.ID,
		TransmissionID: fx.Transmission.ID,
		ConditionID:    fx.Condition.ID,
		FuelTypeID:     fx.FuelType.ID,
		DriveTypeID:    fx.DriveType.ID,
		CarTypeID:      fx.CarType.ID,
		Year:           2020,
		Mileage:        30000,
		EngineSize:     2.0,
		Cylinders:      4,
		Doors:          4,
		VIN:            fmt.Sprintf("TESTVIN%010d", vinCounter),
		Price:          15000,
	}
	for _, o := range overrides {
		o(&listing)
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}
