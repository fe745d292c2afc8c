package providers

import (
	"context"
)

// PaymentGateway defines the interface for charging a rental. The shipped
// implementation is a simulation; the port exists so a real gateway can be
// swapped in without touching the booking pipeline.
type PaymentGateway interface {
	// Charge attempts to take the given amount and returns a payment
	// reference on success.
	Charge(ctx context.Context, amount float64, reference string) (string, error)
}

// MessageSender defines the interface for outbound user messages (booking
// confirmations, password reset mail).
type MessageSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
