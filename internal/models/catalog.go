package models

// Ingredient is immutable reference data, listed ordered by name.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null;index" json:"name"`
	MeasurementUnit string `gorm:"not null" json:"measurement_unit"`
}

// Tag is immutable reference data. Color is stored as a CSS color name
// derived from the hex value supplied on input.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"unique;not null" json:"name"`
	Color string `gorm:"unique" json:"color"`
	Slug  string `gorm:"unique" json:"slug"`
}
