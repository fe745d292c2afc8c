package payments_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrental/internal/adapters/payments"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

func TestSimulatedGateway_Charge(t *testing.T) {
	t.Run("approves a positive charge after the delay", func(t *testing.T) {
		gateway := payments.NewSimulatedGateway(10 * time.Millisecond)

		start := time.Now()
		ref, err := gateway.Charge(context.Background(), 600.0, "booking-1")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "pay_"))
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		gateway := payments.NewSimulatedGateway(0)

		_, err := gateway.Charge(context.Background(), 0, "booking-1")

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	})

	t.Run("returns when the context is cancelled mid-charge", func(t *testing.T) {
		gateway := payments.NewSimulatedGateway(time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := gateway.Charge(ctx, 100.0, "booking-1")

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
	})
}
