// Package models contains data structures for the application's domain models.
package models

// Lookup is implemented by every catalog reference entity. The catalog is a set
// of small controlled-vocabulary tables; handlers and repositories treat them
// uniformly through this interface.
type Lookup interface {
	GetID() uint
	DisplayValue() string
	SetDisplayValue(v string)
}

// Make is a car manufacturer (e.g. "Ford").
type Make struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (m *Make) GetID() uint               { return m.ID }
func (m *Make) DisplayValue() string      { return m.Name }
func (m *Make) SetDisplayValue(v string)  { m.Name = v }

// ModelName is a model belonging to a make (e.g. "Mustang" under "Ford").
// Its name is unique within its make, ignoring case.
type ModelName struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	MakeID uint   `gorm:"not null;index" json:"make_id"`
	Make   Make   `gorm:"foreignKey:MakeID;constraint:OnDelete:CASCADE" json:"make"`
	Name   string `gorm:"size:120;not null" json:"name"`
}

// TableName overrides the default pluralization.
func (ModelName) TableName() string { return "model_names" }

func (m *ModelName) GetID() uint              { return m.ID }
func (m *ModelName) DisplayValue() string     { return m.Name }
func (m *ModelName) SetDisplayValue(v string) { m.Name = v }

// Color is an exterior color option.
type Color struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:60;not null" json:"name"`
}

func (c *Color) GetID() uint              { return c.ID }
func (c *Color) DisplayValue() string     { return c.Name }
func (c *Color) SetDisplayValue(v string) { c.Name = v }

// Transmission is a gearbox type (e.g. "Automatic").
type Transmission struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:40;not null" json:"type"`
}

func (t *Transmission) GetID() uint              { return t.ID }
func (t *Transmission) DisplayValue() string     { return t.Type }
func (t *Transmission) SetDisplayValue(v string) { t.Type = v }

// Condition describes the overall state of a car (e.g. "Used").
type Condition struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:40;not null" json:"type"`
}

func (c *Condition) GetID() uint              { return c.ID }
func (c *Condition) DisplayValue() string     { return c.Type }
func (c *Condition) SetDisplayValue(v string) { c.Type = v }

// FuelType is an engine fuel type (e.g. "Diesel").
type FuelType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:40;not null" json:"type"`
}

func (f *FuelType) GetID() uint              { return f.ID }
func (f *FuelType) DisplayValue() string     { return f.Type }
func (f *FuelType) SetDisplayValue(v string) { f.Type = v }

// DriveType is a drivetrain layout (e.g. "AWD").
type DriveType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:40;not null" json:"type"`
}

func (d *DriveType) GetID() uint              { return d.ID }
func (d *DriveType) DisplayValue() string     { return d.Type }
func (d *DriveType) SetDisplayValue(v string) { d.Type = v }

// CarType is a body style (e.g. "Coupe").
type CarType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:40;not null" json:"type"`
}

func (c *CarType) GetID() uint              { return c.ID }
func (c *CarType) DisplayValue() string     { return c.Type }
func (c *CarType) SetDisplayValue(v string) { c.Type = v }

// Status is a workflow state for customer inquiries (e.g. "New", "Sold").
type Status struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:40;not null" json:"name"`
}

// TableName overrides gorm's pluralization ("statuses", not "stati").
func (Status) TableName() string { return "statuses" }

func (s *Status) GetID() uint              { return s.ID }
func (s *Status) DisplayValue() string     { return s.Name }
func (s *Status) SetDisplayValue(v string) { s.Name = v }

// Feature is an equipment option attached to listings (e.g. "Sunroof").
type Feature struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (f *Feature) GetID() uint              { return f.ID }
func (f *Feature) DisplayValue() string     { return f.Name }
func (f *Feature) SetDisplayValue(v string) { f.Name = v }

// SafetyFeature is a safety equipment option (e.g. "Lane Assist").
type SafetyFeature struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (f *SafetyFeature) GetID() uint              { return f.ID }
func (f *SafetyFeature) DisplayValue() string     { return f.Name }
func (f *SafetyFeature) SetDisplayValue(v string) { f.Name = v }
