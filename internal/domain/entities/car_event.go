package entities

import (
	"time"

	"github.com/google/uuid"
)

// CarEventType identifies what changed about a car
type CarEventType string

const (
	CarEventCreated             CarEventType = "car.created"
	CarEventUpdated             CarEventType = "car.updated"
	CarEventDeleted             CarEventType = "car.deleted"
	CarEventAvailabilityChanged CarEventType = "car.availability_changed"
)

// CarEvent is published on the event bus whenever the catalog changes, so
// connected clients can refresh their car lists without polling.
type CarEvent struct {
	ID        string       `json:"id"`
	Type      CarEventType `json:"type"`
	CarID     string       `json:"car_id"`
	Car       *Car         `json:"car,omitempty"` // nil for deletions
	Timestamp time.Time    `json:"timestamp"`
}

// NewCarEvent creates a catalog event with a fresh ID and timestamp.
func NewCarEvent(eventType CarEventType, carID string, car *Car) *CarEvent {
	return &CarEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		CarID:     carID,
		Car:       car,
		Timestamp: time.Now(),
	}
}
