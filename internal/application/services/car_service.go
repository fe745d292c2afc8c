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
	"github.com/openfleet/carrental/pkg/pricing"
)

// CarService handles business logic for the car catalog
type CarService struct {
	repo     repositories.CarRepository
	eventBus providers.EventBus
}

// NewCarService creates a new car service
func NewCarService(repo repositories.CarRepository, eventBus providers.EventBus) *CarService {
	return &CarService{
		repo:     repo,
		eventBus: eventBus,
	}
}

func validateCar(car *entities.Car) error {
	if car.Name == "" {
		return apperrors.NewValidationError("car name is required")
	}
	if car.Brand == "" {
		return apperrors.NewValidationError("car brand is required")
	}
	if car.Rating < 0 || car.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 0 and 5")
	}
	if _, err := pricing.ParseDailyRate(car.PricePerDay); err != nil {
		return err
	}
	return nil
}

// Create creates a new catalog entry and announces it
func (s *CarService) Create(ctx context.Context, car *entities.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}

	if car.ID == "" {
		car.ID = uuid.New().String()
	}
	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt

	if err := s.repo.Create(ctx, car); err != nil {
		return err
	}

	s.publish(ctx, entities.CarEventCreated, car)
	return nil
}

// GetByID retrieves a car by ID
func (s *CarService) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves catalog entries matching the filter
func (s *CarService) List(ctx context.Context, filter repositories.CarFilter) ([]*entities.Car, error) {
	return s.repo.List(ctx, filter)
}

// Update updates a catalog entry and announces the change
func (s *CarService) Update(ctx context.Context, car *entities.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, car); err != nil {
		return err
	}

	s.publish(ctx, entities.CarEventUpdated, car)
	return nil
}

// SetAvailability flips the availability flag and announces the change
func (s *CarService) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return err
	}

	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("car_id", id).Msg("failed to load car for availability event")
		car = &entities.Car{ID: id, Available: available}
	}

	s.publish(ctx, entities.CarEventAvailabilityChanged, car)
	return nil
}

// Delete removes a catalog entry and announces the removal
func (s *CarService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, entities.CarEventDeleted, id, nil)
	return nil
}

// Subscribe returns a stream of catalog change events; the stream closes
// when ctx is cancelled.
func (s *CarService) Subscribe(ctx context.Context) (<-chan *entities.CarEvent, error) {
	if s.eventBus == nil {
		return nil, apperrors.NewInternalError("event bus not configured", nil)
	}
	return s.eventBus.Subscribe(ctx, providers.EventChannelCatalog)
}

func (s *CarService) publish(ctx context.Context, eventType entities.CarEventType, car *entities.Car) {
	s.publishEvent(ctx, eventType, car.ID, car)
}

func (s *CarService) publishEvent(ctx context.Context, eventType entities.CarEventType, carID string, car *entities.Car) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewCarEvent(eventType, carID, car)

	// Catalog events are advisory; a publish failure never fails the write.
	if err := s.eventBus.Publish(ctx, providers.EventChannelCatalog, event); err != nil {
		log.Warn().Err(err).Str("car_id", carID).Str("type", string(eventType)).
			Msg("failed to publish catalog event")
	}
}
