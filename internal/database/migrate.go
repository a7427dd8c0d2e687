package database

import (
	"fmt"
	"log/slog"

	"motorlot/internal/middleware"
	"motorlot/internal/models"

	"gorm.io/gorm"
)

// caseInsensitiveUniqueIndexes are the functional unique indexes that back the
// catalog's case-insensitive name uniqueness on Postgres. Repositories enforce
// the same rule with explicit checks so the behavior also holds on SQLite test
// databases, but the index is the source of truth under concurrency.
var caseInsensitiveUniqueIndexes = []struct {
	name string
	stmt string
}{
	{"uniq_makes_lower_name", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_makes_lower_name ON makes (LOWER(name))"},
	{"uniq_model_names_make_lower_name", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_model_names_make_lower_name ON model_names (make_id, LOWER(name))"},
	{"uniq_colors_lower_name", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_colors_lower_name ON colors (LOWER(name))"},
	{"uniq_transmissions_lower_type", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_transmissions_lower_type ON transmissions (LOWER(type))"},
	{"uniq_conditions_lower_type", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_conditions_lower_type ON conditions (LOWER(type))"},
	{"uniq_fuel_types_lower_type", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_fuel_types_lower_type ON fuel_types (LOWER(type))"},
	{"uniq_drive_types_lower_type", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_drive_types_lower_type ON drive_types (LOWER(type))"},
	{"uniq_car_types_lower_type", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_car_types_lower_type ON car_types (LOWER(type))"},
	{"uniq_statuses_lower_name", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_statuses_lower_name ON statuses (LOWER(name))"},
	{"uniq_features_lower_name", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_features_lower_name ON features (LOWER(name))"},
	{"uniq_safety_features_lower_name", "CREATE UNIQUE INDEX IF NOT EXISTS uniq_safety_features_lower_name ON safety_features (LOWER(name))"},
}

// AutoMigrate creates or updates the schema for every model. It is shared by
// the server bootstrap and by SQLite-backed tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Make{},
		&models.ModelName{},
		&models.Color{},
		&models.Transmission{},
		&models.Condition{},
		&models.FuelType{},
		&models.DriveType{},
		&models.CarType{},
		&models.Status{},
		&models.Feature{},
		&models.SafetyFeature{},
		&models.CarsListing{},
		&models.ListingImage{},
		&models.Inquiry{},
		&models.InquiryComment{},
	); err != nil {
		return err
	}

	// LOWER() expression indexes are valid on both Postgres and SQLite.
	for _, idx := range caseInsensitiveUniqueIndexes {
		if err := db.Exec(idx.stmt).Error; err != nil {
			if middleware.Logger != nil {
				middleware.Logger.Warn("failed to create case-insensitive unique index",
					slog.String("index", idx.name), slog.String("error", err.Error()))
			}
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}
