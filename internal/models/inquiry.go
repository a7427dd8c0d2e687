package models

import "time"

// DefaultInquiryStatusID is the pre-seeded status assigned to every new
// inquiry. Public submissions may not choose a status; creation fails with a
// configuration error when this row is missing.
const DefaultInquiryStatusID = 1

// Inquiry is a customer contact request, optionally tied to a listing. If the
// listing is deleted the reference is nulled, the inquiry survives. After
// creation only the status may change through the admin workflow.
type Inquiry struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	ListingID *uint        `gorm:"index" json:"listing_id"`
	Listing   *CarsListing `gorm:"foreignKey:ListingID;constraint:OnDelete:SET NULL" json:"listing,omitempty"`
	Name      string       `gorm:"size:120;not null" json:"name"`
	Email     string       `gorm:"size:254;not null" json:"email"`
	// Phone is digits only with an optional leading "+".
	Phone   string `gorm:"not null" json:"phone"`
	Message string `gorm:"not null" json:"message"`

	StatusID uint   `gorm:"not null" json:"-"`
	Status   Status `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status"`

	Comments []InquiryComment `gorm:"foreignKey:InquiryID" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InquiryComment is an append-only admin annotation on an inquiry. Comments
// outlive their inquiry; the reference is nulled when the inquiry is removed.
type InquiryComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InquiryID *uint     `gorm:"index" json:"inquiry_id"`
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
