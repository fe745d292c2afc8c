package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking_Defaults(t *testing.T) {
	b := NewBooking()

	assert.Equal(t, BookingStatusPending, b.Status)
	assert.Empty(t, b.ID)
	assert.Empty(t, b.UserID)
	assert.Empty(t, b.CarID)
	assert.Empty(t, b.CarName)
	assert.Empty(t, b.CarBrand)
	assert.Empty(t, b.CarPricePerDay)
	assert.Zero(t, b.TotalCost)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestParseBookingStatus(t *testing.T) {
	for _, raw := range []string{"Pending", "Confirmed", "Cancelled", "Completed"} {
		status, err := ParseBookingStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, BookingStatus(raw), status)
	}

	for _, raw := range []string{"", "pending", "Unknown", "CONFIRMED", "Done"} {
		_, err := ParseBookingStatus(raw)
		assert.Error(t, err, "status %q should be rejected", raw)
	}
}

func TestBooking_Transition(t *testing.T) {
	b := NewBooking()

	require.NoError(t, b.Transition(BookingStatusConfirmed))
	assert.Equal(t, BookingStatusConfirmed, b.Status)

	// Any member-to-member transition is allowed.
	require.NoError(t, b.Transition(BookingStatusCompleted))
	require.NoError(t, b.Transition(BookingStatusCancelled))
	require.NoError(t, b.Transition(BookingStatusPending))

	// Unknown targets never mutate the booking.
	err := b.Transition(BookingStatus("Archived"))
	assert.Error(t, err)
	assert.Equal(t, BookingStatusPending, b.Status)
}
