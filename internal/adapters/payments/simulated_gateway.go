package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/domain/providers"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

// SimulatedGateway approves every charge after a short processing delay.
// Card details are validated before a charge ever reaches the gateway, so
// the only failure mode here is a cancelled context.
type SimulatedGateway struct {
	delay time.Duration
}

// NewSimulatedGateway creates a simulated payment gateway
func NewSimulatedGateway(delay time.Duration) providers.PaymentGateway {
	return &SimulatedGateway{delay: delay}
}

// Charge simulates payment processing and returns a payment reference
func (g *SimulatedGateway) Charge(ctx context.Context, amount float64, reference string) (string, error) {
	if amount <= 0 {
		return "", apperrors.NewValidationError("charge amount must be positive")
	}

	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return "", apperrors.NewExternalError("payment processing interrupted", ctx.Err())
	}

	paymentRef := fmt.Sprintf("pay_%s", uuid.New().String())
	log.Info().
		Str("reference", reference).
		Str("payment_ref", paymentRef).
		Float64("amount", amount).
		Msg("simulated payment approved")

	return paymentRef, nil
}
