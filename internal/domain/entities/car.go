package entities

import (
	"time"
)

// Car represents a rentable car in the catalog
type Car struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Brand       string    `json:"brand" db:"brand"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	PricePerDay string    `json:"price_per_day" db:"price_per_day"` // display string, e.g. "$100/day"
	Rating      float64   `json:"rating" db:"rating"`               // 0.0-5.0
	Description string    `json:"description" db:"description"`
	Available   bool      `json:"available" db:"available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
