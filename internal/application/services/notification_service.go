package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/providers"
	"github.com/openfleet/carrental/internal/domain/repositories"
)

// NotificationService sends booking lifecycle emails
type NotificationService struct {
	sender   providers.MessageSender
	userRepo repositories.UserRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(sender providers.MessageSender, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{
		sender:   sender,
		userRepo: userRepo,
	}
}

// SendBookingConfirmation emails the renter a confirmation. Failures are
// logged, never surfaced: the booking already went through.
func (n *NotificationService) SendBookingConfirmation(ctx context.Context, booking *entities.Booking) {
	if n.sender == nil {
		return
	}

	user, err := n.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to load user for confirmation email")
		return
	}

	subject := fmt.Sprintf("Booking confirmed: %s %s", booking.CarBrand, booking.CarName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\nCar: %s %s\nFrom: %s\nTo: %s\nTotal: $%.2f\n\nEnjoy the ride!",
		booking.Username,
		booking.CarBrand,
		booking.CarName,
		booking.StartDate.Format("Monday, January 2, 2006"),
		booking.EndDate.Format("Monday, January 2, 2006"),
		booking.TotalCost,
	)

	if err := n.sender.Send(ctx, user.Email, subject, body); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to send confirmation email")
	}
}
