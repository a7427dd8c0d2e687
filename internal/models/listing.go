package models

import "time"

// Year bounds accepted for a listing.
const (
	MinListingYear = 1900
	MaxListingYear = 2100
)

// CarsListing is a single car-for-sale record. Every categorical attribute is a
// reference into the catalog; referenced catalog rows are deletion-protected
// while the listing exists.
type CarsListing struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `json:"description"`

	MakeID         uint         `gorm:"not null;index" json:"-"`
	Make           Make         `gorm:"foreignKey:MakeID;constraint:OnDelete:RESTRICT" json:"make"`
	ModelID        uint         `gorm:"not null;index" json:"-"`
	Model          ModelName    `gorm:"foreignKey:ModelID;constraint:OnDelete:RESTRICT" json:"model"`
	ColorID        uint         `gorm:"not null" json:"-"`
	Color          Color        `gorm:"foreignKey:ColorID;constraint:OnDelete:RESTRICT" json:"color"`
	TransmissionID uint         `gorm:"not null" json:"-"`
	Transmission   Transmission `gorm:"foreignKey:TransmissionID;constraint:OnDelete:RESTRICT" json:"transmission"`
	ConditionID    uint         `gorm:"not null" json:"-"`
	Condition      Condition    `gorm:"foreignKey:ConditionID;constraint:OnDelete:RESTRICT" json:"condition"`
	FuelTypeID     uint         `gorm:"not null" json:"-"`
	FuelType       FuelType     `gorm:"foreignKey:FuelTypeID;constraint:OnDelete:RESTRICT" json:"fuel_type"`
	DriveTypeID    uint         `gorm:"not null" json:"-"`
	DriveType      DriveType    `gorm:"foreignKey:DriveTypeID;constraint:OnDelete:RESTRICT" json:"drive_type"`
	CarTypeID      uint         `gorm:"not null" json:"-"`
	CarType        CarType      `gorm:"foreignKey:CarTypeID;constraint:OnDelete:RESTRICT" json:"car_type"`

	Year       int     `gorm:"not null" json:"year"`
	Mileage    int     `gorm:"not null" json:"mileage"`
	EngineSize float64 `gorm:"not null" json:"engine_size"`
	Cylinders  int     `gorm:"not null" json:"cylinders"`
	Doors      int     `gorm:"not null" json:"doors"`
	// VIN is globally unique with exact-case comparison; it is stored as
	// submitted, not normalized.
	VIN   string `gorm:"column:vin;size:32;uniqueIndex;not null" json:"vin"`
	Price int    `gorm:"not null" json:"price"`

	Features       []Feature       `gorm:"many2many:listing_features;constraint:OnDelete:CASCADE" json:"features"`
	SafetyFeatures []SafetyFeature `gorm:"many2many:listing_safety_features;constraint:OnDelete:CASCADE" json:"safety_features"`
	Images         []ListingImage  `gorm:"foreignKey:ListingID" json:"listing_images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the historical table name.
func (CarsListing) TableName() string { return "cars_listings" }

// ListingImage is an uploaded photo owned by exactly one listing. Path is the
// media-root-relative location of the stored file; deleting the row must also
// remove that file.
type ListingImage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ListingID uint `gorm:"not null;index" json:"listing_id"`
	// Path is media-root relative in storage; the presentation layer rewrites
	// it to an absolute URL before responses go out.
	Path       string    `gorm:"size:500;not null" json:"url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
