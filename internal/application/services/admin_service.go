package services

import (
	"context"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
)

// AdminStats is the dashboard summary: registered users and revenue over
// completed bookings.
type AdminStats struct {
	UserCount        int     `json:"user_count"`
	CompletedRevenue float64 `json:"completed_revenue"`
}

// AdminService handles administrative booking management and reporting
type AdminService struct {
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
}

// NewAdminService creates a new admin service
func NewAdminService(bookingRepo repositories.BookingRepository, userRepo repositories.UserRepository) *AdminService {
	return &AdminService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// ListBookings retrieves all bookings, newest first
func (s *AdminService) ListBookings(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookingRepo.List(ctx, filter)
}

// UpdateBookingStatus moves a booking to the given status. The raw status
// is validated against the closed set; any member-to-member transition is
// allowed.
func (s *AdminService) UpdateBookingStatus(ctx context.Context, id, rawStatus string) (*entities.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := entities.ParseBookingStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if err := booking.Transition(status); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return booking, nil
}

// Stats returns the dashboard summary
func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.bookingRepo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		UserCount:        count,
		CompletedRevenue: revenue,
	}, nil
}
