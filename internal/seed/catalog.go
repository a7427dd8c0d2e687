// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"

	"motorlot/internal/models"

	"gorm.io/gorm"
)

// Fixed catalog data. Statuses are seeded first and in order so "New" lands on
// id 1, which inquiry creation depends on.
var (
	statusNames = []string{"New", "Contacted", "In Progress", "Closed"}

	makesWithModels = map[string][]string{
		"Toyota":    {"Corolla", "Camry", "RAV4", "Highlander", "Tacoma"},
		"Honda":     {"Civic", "Accord", "CR-V", "Pilot"},
		"Ford":      {"F-150", "Escape", "Explorer", "Mustang"},
		"Chevrolet": {"Silverado", "Equinox", "Malibu", "Tahoe"},
		"BMW":       {"3 Series", "5 Series", "X3", "X5"},
		"Mercedes":  {"C-Class", "E-Class", "GLC", "GLE"},
		"Audi":      {"A4", "A6", "Q5", "Q7"},
		"Nissan":    {"Altima", "Sentra", "Rogue", "Pathfinder"},
		"Hyundai":   {"Elantra", "Sonata", "Tucson", "Santa Fe"},
		"Kia":       {"Forte", "Optima", "Sportage", "Sorento"},
	}

	colorNames = []string{
		"Black", "White", "Silver", "Gray", "Blue", "Red", "Green", "Brown", "Beige", "Orange",
	}

	transmissionTypes = []string{"Automatic", "Manual", "CVT", "Dual-Clutch"}
	conditionTypes    = []string{"New", "Used", "Certified Pre-Owned"}
	fuelTypeNames     = []string{"Gasoline", "Diesel", "Hybrid", "Electric", "Plug-in Hybrid"}
	driveTypeNames    = []string{"FWD", "RWD", "AWD", "4WD"}
	carTypeNames      = []string{"Sedan", "SUV", "Hatchback", "Coupe", "Truck", "Van", "Convertible", "Wagon"}

	featureNames = []string{
		"Air Conditioning", "Heated Seats", "Sunroof", "Navigation System",
		"Bluetooth", "Apple CarPlay", "Android Auto", "Leather Seats",
		"Keyless Entry", "Remote Start", "Backup Camera", "Cruise Control",
		"Power Windows", "Third Row Seating", "Tow Package",
	}

	safetyFeatureNames = []string{
		"ABS", "Airbags", "Lane Departure Warning", "Blind Spot Monitor",
		"Adaptive Cruise Control", "Automatic Emergency Braking",
		"Rear Cross Traffic Alert", "Stability Control", "Tire Pressure Monitoring",
	}
)

// SeedCatalog populates every lookup table, skipping rows that already exist.
// Statuses go first so the default inquiry status gets id 1 on a fresh
// database.
func SeedCatalog(db *gorm.DB) error {
	for _, name := range statusNames {
		if err := firstOrCreate(db, "name", name, &models.Status{Name: name}); err != nil {
			return fmt.Errorf("seed status %q: %w", name, err)
		}
	}

	for makeName, modelNames := range makesWithModels {
		mk := models.Make{Name: makeName}
		if err := db.Where("name = ?", makeName).FirstOrCreate(&mk).Error; err != nil {
			return fmt.Errorf("seed make %q: %w", makeName, err)
		}
		for _, modelName := range modelNames {
			mn := models.ModelName{Name: modelName, MakeID: mk.ID}
			if err := db.Where("name = ? AND make_id = ?", modelName, mk.ID).FirstOrCreate(&mn).Error; err != nil {
				return fmt.Errorf("seed model %q: %w", modelName, err)
			}
		}
	}

	for _, name := range colorNames {
		if err := firstOrCreate(db, "name", name, &models.Color{Name: name}); err != nil {
			return err
		}
	}
	for _, t := range transmissionTypes {
		if err := firstOrCreate(db, "type", t, &models.Transmission{Type: t}); err != nil {
			return err
		}
	}
	for _, t := range conditionTypes {
		if err := firstOrCreate(db, "type", t, &models.Condition{Type: t}); err != nil {
			return err
		}
	}
	for _, t := range fuelTypeNames {
		if err := firstOrCreate(db, "type", t, &models.FuelType{Type: t}); err != nil {
			return err
		}
	}
	for _, t := range driveTypeNames {
		if err := firstOrCreate(db, "type", t, &models.DriveType{Type: t}); err != nil {
			return err
		}
	}
	for _, t := range carTypeNames {
		if err := firstOrCreate(db, "type", t, &models.CarType{Type: t}); err != nil {
			return err
		}
	}
	for _, name := range featureNames {
		if err := firstOrCreate(db, "name", name, &models.Feature{Name: name}); err != nil {
			return err
		}
	}
	for _, name := range safetyFeatureNames {
		if err := firstOrCreate(db, "name", name, &models.SafetyFeature{Name: name}); err != nil {
			return err
		}
	}

	return nil
}

func firstOrCreate(db *gorm.DB, column, value string, row any) error {
	if err := db.Where(column+" = ?", value).FirstOrCreate(row).Error; err != nil {
		return fmt.Errorf("seed %s=%q: %w", column, value, err)
	}
	return nil
}
