package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/providers"
	"github.com/openfleet/carrental/internal/domain/repositories"
	apperrors "github.com/openfleet/carrental/pkg/errors"
	"github.com/openfleet/carrental/pkg/payment"
	"github.com/openfleet/carrental/pkg/pricing"
)

// BookingRequest carries everything a rental submission needs
type BookingRequest struct {
	UserID    string
	CarID     string
	StartDate time.Time
	EndDate   time.Time
	Card      payment.Card
}

// BookingResult is the outcome of a successful submission. Warning is set
// when a non-essential side effect failed after payment went through.
type BookingResult struct {
	Booking *entities.Booking
	Warning string
}

// BookingService runs the rental submission pipeline and manages the
// caller's bookings
type BookingService struct {
	repo     repositories.BookingRepository
	carRepo  repositories.CarRepository
	userRepo repositories.UserRepository
	carSvc   *CarService
	gateway  providers.PaymentGateway
}

// NewBookingService creates a new booking service
func NewBookingService(
	repo repositories.BookingRepository,
	carRepo repositories.CarRepository,
	userRepo repositories.UserRepository,
	carSvc *CarService,
	gateway providers.PaymentGateway,
) *BookingService {
	return &BookingService{
		repo:     repo,
		carRepo:  carRepo,
		userRepo: userRepo,
		carSvc:   carSvc,
		gateway:  gateway,
	}
}

// Submit runs the booking pipeline in strict order: dates, card, caller,
// user record, payment, persistence. The car is marked unavailable last as
// a best-effort side effect; its failure downgrades the result to a
// warning instead of rolling back the paid booking.
func (s *BookingService) Submit(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	// 1. Dates
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, apperrors.NewValidationError("start and end dates are required")
	}
	days := pricing.DurationDays(req.StartDate, req.EndDate)
	if days < 1 {
		return nil, apperrors.NewValidationError("end date must not be before start date")
	}

	// 2. Card
	if !payment.Validate(req.Card, time.Now()) {
		return nil, apperrors.NewValidationError("enter valid payment details")
	}

	// 3. Caller
	if req.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("not logged in")
	}

	// 4. User record
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 5. Car and price
	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	rate, err := pricing.ParseDailyRate(car.PricePerDay)
	if err != nil {
		return nil, err
	}
	totalCost := float64(days) * rate

	booking := entities.NewBooking()
	booking.ID = uuid.New().String()
	booking.UserID = user.ID
	booking.Username = user.Username
	booking.CarID = car.ID
	booking.CarName = car.Name
	booking.CarBrand = car.Brand
	booking.CarPricePerDay = car.PricePerDay
	booking.StartDate = req.StartDate
	booking.EndDate = req.EndDate
	booking.TotalCost = totalCost

	// 6. Payment
	if _, err := s.gateway.Charge(ctx, totalCost, booking.ID); err != nil {
		return nil, err
	}

	// 7. Persist as Confirmed
	if err := booking.Transition(entities.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// 8. Availability hint
	result := &BookingResult{Booking: booking}
	if err := s.carSvc.SetAvailability(ctx, car.ID, false); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Str("car_id", car.ID).
			Msg("booked but failed to mark car unavailable")
		result.Warning = "booking confirmed, but the car could not be marked unavailable"
	}

	return result, nil
}

// GetByID retrieves a booking, restricted to its owner unless the caller
// is an administrator
func (s *BookingService) GetByID(ctx context.Context, id, callerID string, isAdmin bool) (*entities.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != callerID {
		return nil, apperrors.NewForbiddenError("booking belongs to another user")
	}
	return booking, nil
}

// ListByUser retrieves the caller's bookings, newest first
func (s *BookingService) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

// Delete removes a booking owned by the caller. Deleting the same booking
// twice surfaces NOT_FOUND on the second call. The car's availability flag
// is left untouched.
func (s *BookingService) Delete(ctx context.Context, id, callerID string) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.UserID != callerID {
		return apperrors.NewForbiddenError("booking belongs to another user")
	}
	return s.repo.Delete(ctx, id)
}
