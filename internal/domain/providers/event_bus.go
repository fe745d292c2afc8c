package providers

import (
	"context"

	"github.com/openfleet/carrental/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to catalog
// change events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.CarEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.CarEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelCatalog is the channel for all catalog updates
const EventChannelCatalog = "cars:updates"
