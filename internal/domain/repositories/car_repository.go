package repositories

import (
	"context"

	"github.com/openfleet/carrental/internal/domain/entities"
)

// CarRepository defines the interface for car catalog operations
type CarRepository interface {
	// Create creates a new car
	Create(ctx context.Context, car *entities.Car) error

	// GetByID retrieves a car by ID
	GetByID(ctx context.Context, id string) (*entities.Car, error)

	// List retrieves cars matching the filter
	List(ctx context.Context, filter CarFilter) ([]*entities.Car, error)

	// Update updates a car
	Update(ctx context.Context, car *entities.Car) error

	// SetAvailability flips only the availability flag of a car
	SetAvailability(ctx context.Context, id string, available bool) error

	// Delete deletes a car
	Delete(ctx context.Context, id string) error
}

// CarSort orders catalog listings
type CarSort string

const (
	CarSortNewest CarSort = "newest"
	CarSortRating CarSort = "rating"
)

// CarFilter defines filters for listing cars
type CarFilter struct {
	Brand         string
	OnlyAvailable bool
	Sort          CarSort
	Limit         int
	Offset        int
}
