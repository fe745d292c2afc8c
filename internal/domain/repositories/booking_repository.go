package repositories

import (
	"context"

	"github.com/openfleet/carrental/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// ListByUser retrieves bookings for a user, newest first
	ListByUser(ctx context.Context, userID string, filter BookingFilter) ([]*entities.Booking, error)

	// List retrieves all bookings, newest first
	List(ctx context.Context, filter BookingFilter) ([]*entities.Booking, error)

	// UpdateStatus sets the booking status
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error

	// Delete removes a booking record outright
	Delete(ctx context.Context, id string) error

	// CompletedRevenue sums the total cost of all completed bookings
	CompletedRevenue(ctx context.Context) (float64, error)
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	Status entities.BookingStatus
	Limit  int
	Offset int
}
