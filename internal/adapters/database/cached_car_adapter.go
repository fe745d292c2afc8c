package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/providers"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/internal/infrastructure/observability"
)

// CachedCarAdapter wraps CarAdapter with caching
type CachedCarAdapter struct {
	adapter repositories.CarRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedCarAdapter creates a new cached car adapter
func NewCachedCarAdapter(adapter repositories.CarRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.CarRepository {
	return &CachedCarAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// Cache TTLs (in seconds)
const (
	carByIDTTL  = 300 // 5 minutes for single car
	carsListTTL = 120 // 2 minutes for catalog listings
)

func carCacheKey(id string) string {
	return fmt.Sprintf("car:%s", id)
}

func carsListCacheKey(filter repositories.CarFilter) string {
	return fmt.Sprintf("cars:list:%s:%t:%s:%d:%d",
		filter.Brand, filter.OnlyAvailable, filter.Sort, filter.Limit, filter.Offset)
}

// GetByID retrieves a car by ID with caching
func (a *CachedCarAdapter) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	cacheKey := carCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var car entities.Car
		if err := json.Unmarshal(cached, &car); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "car")
			return &car, nil
		}
		log.Warn().Err(err).Str("car_id", id).Msg("failed to unmarshal cached car")
	}
	observability.RecordCacheMiss(ctx, a.metrics, "car")

	car, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(car); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, carByIDTTL); err != nil {
				log.Warn().Err(err).Str("car_id", id).Msg("failed to cache car")
			}
		}
	}()

	return car, nil
}

// List retrieves a catalog listing with caching
func (a *CachedCarAdapter) List(ctx context.Context, filter repositories.CarFilter) ([]*entities.Car, error) {
	cacheKey := carsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var cars []*entities.Car
		if err := json.Unmarshal(cached, &cars); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "cars:list")
			return cars, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached car list")
	}
	observability.RecordCacheMiss(ctx, a.metrics, "cars:list")

	cars, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(cars); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, carsListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache car list")
			}
		}
	}()

	return cars, nil
}

// Create creates a car and invalidates listing caches
func (a *CachedCarAdapter) Create(ctx context.Context, car *entities.Car) error {
	if err := a.adapter.Create(ctx, car); err != nil {
		return err
	}
	go a.invalidateLists()
	return nil
}

// Update updates a car and invalidates its caches
func (a *CachedCarAdapter) Update(ctx context.Context, car *entities.Car) error {
	if err := a.adapter.Update(ctx, car); err != nil {
		return err
	}
	go a.invalidateCar(car.ID)
	return nil
}

// SetAvailability flips the availability flag and invalidates caches
func (a *CachedCarAdapter) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := a.adapter.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	go a.invalidateCar(id)
	return nil
}

// Delete deletes a car and invalidates its caches
func (a *CachedCarAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	go a.invalidateCar(id)
	return nil
}

func (a *CachedCarAdapter) invalidateCar(id string) {
	bgCtx := context.Background()
	if err := a.cache.Delete(bgCtx, carCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("car_id", id).Msg("failed to invalidate car cache")
	}
	a.invalidateLists()
}

func (a *CachedCarAdapter) invalidateLists() {
	bgCtx := context.Background()
	if err := a.cache.DeletePattern(bgCtx, "cars:list:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate car list cache")
	}
}
