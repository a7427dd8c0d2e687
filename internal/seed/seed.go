package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"motorlot/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumListings  int
	NumInquiries int
	ShouldClean  bool
}

// Seed populates the database with catalog data, listings and inquiries.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d listings and %d inquiries...", opts.NumListings, opts.NumInquiries)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := SeedCatalog(db); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	listings, err := SeedListings(db, opts.NumListings)
	if err != nil {
		return fmt.Errorf("seed listings: %w", err)
	}

	if err := SeedInquiries(db, listings, opts.NumInquiries); err != nil {
		return fmt.Errorf("seed inquiries: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

// SeedListings creates n listings with randomized but plausible attributes.
func SeedListings(db *gorm.DB, n int) ([]models.CarsListing, error) {
	gofakeit.Seed(time.Now().UnixNano())

	var modelNames []models.ModelName
	if err := db.Preload("Make").Find(&modelNames).Error; err != nil {
		return nil, err
	}
	if len(modelNames) == 0 {
		return nil, fmt.Errorf("catalog is empty, seed it first")
	}

	colors, err := lookupIDs(db, &models.Color{})
	if err != nil {
		return nil, err
	}
	transmissions, err := lookupIDs(db, &models.Transmission{})
	if err != nil {
		return nil, err
	}
	conditions, err := lookupIDs(db, &models.Condition{})
	if err != nil {
		return nil, err
	}
	fuelTypes, err := lookupIDs(db, &models.FuelType{})
	if err != nil {
		return nil, err
	}
	driveTypes, err := lookupIDs(db, &models.DriveType{})
	if err != nil {
		return nil, err
	}
	carTypes, err := lookupIDs(db, &models.CarType{})
	if err != nil {
		return nil, err
	}

	var features []models.Feature
	if err := db.Find(&features).Error; err != nil {
		return nil, err
	}
	var safetyFeatures []models.SafetyFeature
	if err := db.Find(&safetyFeatures).Error; err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := make([]models.CarsListing, 0, n)

	for i := 0; i < n; i++ {
		mn := modelNames[r.Intn(len(modelNames))]
		year := 2005 + r.Intn(21)

		listing := models.CarsListing{
			Title:          fmt.Sprintf("%d %s %s", year, mn.Make.Name, mn.Name),
			Description:    gofakeit.Paragraph(1, 3, 8, "\n"),
			MakeID:         mn.MakeID,
			ModelID:        mn.ID,
			ColorID:        pick(r, colors),
			TransmissionID: pick(r, transmissions),
			ConditionID:    pick(r, conditions),
			FuelTypeID:     pick(r, fuelTypes),
			DriveTypeID:    pick(r, driveTypes),
			CarTypeID:      pick(r, carTypes),
			Year:           year,
			Mileage:        r.Intn(200000),
			EngineSize:     float64(10+r.Intn(50)) / 10,
			Cylinders:      []int{3, 4, 6, 8}[r.Intn(4)],
			Doors:          []int{2, 4, 5}[r.Intn(3)],
			VIN:            randomVIN(r),
			Price:          3000 + r.Intn(80000),
			CreatedAt:      time.Now().Add(-time.Duration(r.Intn(120*24)) * time.Hour),
		}

		for _, f := range features {
			if r.Intn(3) == 0 {
				listing.Features = append(listing.Features, f)
			}
		}
		for _, sf := range safetyFeatures {
			if r.Intn(2) == 0 {
				listing.SafetyFeatures = append(listing.SafetyFeatures, sf)
			}
		}

		if err := db.Create(&listing).Error; err != nil {
			return nil, err
		}
		created = append(created, listing)
	}

	return created, nil
}

// SeedInquiries creates n inquiries, most tied to a random listing.
func SeedInquiries(db *gorm.DB, listings []models.CarsListing, n int) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < n; i++ {
		inquiry := models.Inquiry{
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Phone:     "+1" + gofakeit.Numerify("##########"),
			Message:   gofakeit.Sentence(12),
			StatusID:  models.DefaultInquiryStatusID,
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(60*24)) * time.Hour),
		}
		if len(listings) > 0 && r.Intn(5) != 0 {
			id := listings[r.Intn(len(listings))].ID
			inquiry.ListingID = &id
		}
		if err := db.Create(&inquiry).Error; err != nil {
			return err
		}
	}
	return nil
}

// vinAlphabet excludes I, O and Q per the VIN standard.
const vinAlphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

func randomVIN(r *rand.Rand) string {
	var b strings.Builder
	for i := 0; i < 17; i++ {
		b.WriteByte(vinAlphabet[r.Intn(len(vinAlphabet))])
	}
	return b.String()
}

func pick(r *rand.Rand, ids []uint) uint {
	return ids[r.Intn(len(ids))]
}

func lookupIDs(db *gorm.DB, model any) ([]uint, error) {
	var ids []uint
	if err := db.Model(model).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("lookup table is empty, seed the catalog first")
	}
	return ids, nil
}

// clearData removes seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	stmts := []string{
		"DELETE FROM inquiry_comments",
		"DELETE FROM inquiries",
		"DELETE FROM listing_features",
		"DELETE FROM listing_safety_features",
		"DELETE FROM listing_images",
		"DELETE FROM cars_listings",
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
