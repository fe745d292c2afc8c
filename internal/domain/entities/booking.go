package entities

import (
	"time"

	apperrors "github.com/openfleet/carrental/pkg/errors"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusCompleted BookingStatus = "Completed"
)

// ParseBookingStatus validates a raw status string against the closed set.
// Free-form statuses are rejected so nothing unrecognized can be persisted.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch BookingStatus(raw) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return BookingStatus(raw), nil
	}
	return "", apperrors.NewValidationError("unknown booking status: " + raw)
}

// Booking represents a reservation of one car for an inclusive date range
// by one user. Car name, brand and price are denormalized copies kept for
// display; they are not synced if the car record later changes.
type Booking struct {
	ID             string        `json:"id" db:"id"`
	UserID         string        `json:"user_id" db:"user_id"`
	Username       string        `json:"username" db:"username"`
	CarID          string        `json:"car_id" db:"car_id"`
	CarName        string        `json:"car_name" db:"car_name"`
	CarBrand       string        `json:"car_brand" db:"car_brand"`
	CarPricePerDay string        `json:"car_price_per_day" db:"car_price_per_day"`
	StartDate      time.Time     `json:"start_date" db:"start_date"`
	EndDate        time.Time     `json:"end_date" db:"end_date"` // inclusive
	TotalCost      float64       `json:"total_cost" db:"total_cost"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

// NewBooking returns a booking in its initial state: Pending status, empty
// identifiers and zero cost.
func NewBooking() *Booking {
	return &Booking{
		Status:    BookingStatusPending,
		CreatedAt: time.Now(),
	}
}

// Transition moves the booking to the target status. Every status change
// goes through here; the target must be a member of the closed set. Any
// member-to-member transition is allowed, mirroring the administrative
// status dropdown which imposes no workflow ordering.
func (b *Booking) Transition(target BookingStatus) error {
	if _, err := ParseBookingStatus(string(target)); err != nil {
		return err
	}
	b.Status = target
	return nil
}
