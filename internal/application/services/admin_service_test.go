package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

func TestAdminService_UpdateBookingStatus(t *testing.T) {
	t.Run("moves a booking to a recognized status", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		service := services.NewAdminService(bookings, new(MockUserRepository))

		bookings.On("GetByID", mock.Anything, "booking-1").
			Return(&entities.Booking{ID: "booking-1", Status: entities.BookingStatusConfirmed}, nil)
		bookings.On("UpdateStatus", mock.Anything, "booking-1", entities.BookingStatusCompleted).Return(nil)

		booking, err := service.UpdateBookingStatus(context.Background(), "booking-1", "Completed")

		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusCompleted, booking.Status)
		bookings.AssertExpectations(t)
	})

	t.Run("rejects a status outside the closed set", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		service := services.NewAdminService(bookings, new(MockUserRepository))

		bookings.On("GetByID", mock.Anything, "booking-1").
			Return(&entities.Booking{ID: "booking-1", Status: entities.BookingStatusConfirmed}, nil)

		_, err := service.UpdateBookingStatus(context.Background(), "booking-1", "Archived")

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		bookings.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("allows any member-to-member transition", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		service := services.NewAdminService(bookings, new(MockUserRepository))

		bookings.On("GetByID", mock.Anything, "booking-1").
			Return(&entities.Booking{ID: "booking-1", Status: entities.BookingStatusCancelled}, nil)
		bookings.On("UpdateStatus", mock.Anything, "booking-1", entities.BookingStatusPending).Return(nil)

		booking, err := service.UpdateBookingStatus(context.Background(), "booking-1", "Pending")

		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusPending, booking.Status)
	})
}

func TestAdminService_Stats(t *testing.T) {
	t.Run("combines user count and completed revenue", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		users := new(MockUserRepository)
		service := services.NewAdminService(bookings, users)

		users.On("Count", mock.Anything).Return(42, nil)
		bookings.On("CompletedRevenue", mock.Anything).Return(12500.0, nil)

		stats, err := service.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, stats.UserCount)
		assert.Equal(t, 12500.0, stats.CompletedRevenue)
	})
}
