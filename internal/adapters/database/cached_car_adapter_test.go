package database_test

import (
	"context"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrental/internal/adapters/database"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.items[key]; ok {
		return data, nil
	}
	return nil, apperrors.NewNotFoundError("cache miss")
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok, nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

type stubCarRepo struct {
	mu        sync.Mutex
	cars      map[string]*entities.Car
	getCalls  int
	listCalls int
}

func newStubCarRepo(cars ...*entities.Car) *stubCarRepo {
	repo := &stubCarRepo{cars: map[string]*entities.Car{}}
	for _, car := range cars {
		repo.cars[car.ID] = car
	}
	return repo
}

func (r *stubCarRepo) Create(ctx context.Context, car *entities.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars[car.ID] = car
	return nil
}

func (r *stubCarRepo) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if car, ok := r.cars[id]; ok {
		return car, nil
	}
	return nil, apperrors.NewNotFoundError("car not found")
}

func (r *stubCarRepo) List(ctx context.Context, filter repositories.CarFilter) ([]*entities.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	cars := make([]*entities.Car, 0, len(r.cars))
	for _, car := range r.cars {
		cars = append(cars, car)
	}
	return cars, nil
}

func (r *stubCarRepo) Update(ctx context.Context, car *entities.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[car.ID]; !ok {
		return apperrors.NewNotFoundError("car not found")
	}
	r.cars[car.ID] = car
	return nil
}

func (r *stubCarRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	car, ok := r.cars[id]
	if !ok {
		return apperrors.NewNotFoundError("car not found")
	}
	car.Available = available
	return nil
}

func (r *stubCarRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cars, id)
	return nil
}

func (r *stubCarRepo) gets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getCalls
}

func (r *stubCarRepo) lists() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

func TestCachedCarAdapter_GetByID(t *testing.T) {
	ctx := context.Background()
	car := &entities.Car{ID: "car-1", Name: "Model 3", Brand: "Tesla", PricePerDay: "$120/day"}
	repo := newStubCarRepo(car)
	cache := newMemoryCache()
	adapter := database.NewCachedCarAdapter(repo, cache, nil)

	t.Run("cache miss falls through and fills cache", func(t *testing.T) {
		got, err := adapter.GetByID(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "Model 3", got.Name)
		assert.Equal(t, 1, repo.gets())

		assert.Eventually(t, func() bool {
			return cache.has("car:car-1")
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		before := repo.gets()
		got, err := adapter.GetByID(ctx, "car-1")
		require.NoError(t, err)
		assert.Equal(t, "Tesla", got.Brand)
		assert.Equal(t, before, repo.gets())
	})

	t.Run("not found is not cached", func(t *testing.T) {
		_, err := adapter.GetByID(ctx, "missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.False(t, cache.has("car:missing"))
	})
}

func TestCachedCarAdapter_Invalidation(t *testing.T) {
	ctx := context.Background()
	car := &entities.Car{ID: "car-1", Name: "Civic", Brand: "Honda"}
	repo := newStubCarRepo(car)
	cache := newMemoryCache()
	adapter := database.NewCachedCarAdapter(repo, cache, nil)

	// Warm the caches.
	_, err := adapter.GetByID(ctx, "car-1")
	require.NoError(t, err)
	_, err = adapter.List(ctx, repositories.CarFilter{})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return cache.has("car:car-1")
	}, time.Second, 10*time.Millisecond)

	t.Run("update invalidates car and list caches", func(t *testing.T) {
		car.Name = "Civic Type R"
		require.NoError(t, adapter.Update(ctx, car))

		assert.Eventually(t, func() bool {
			return !cache.has("car:car-1")
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("availability change invalidates car cache", func(t *testing.T) {
		_, err := adapter.GetByID(ctx, "car-1")
		require.NoError(t, err)
		assert.Eventually(t, func() bool {
			return cache.has("car:car-1")
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, adapter.SetAvailability(ctx, "car-1", false))
		assert.Eventually(t, func() bool {
			return !cache.has("car:car-1")
		}, time.Second, 10*time.Millisecond)
	})
}

func TestCachedCarAdapter_List(t *testing.T) {
	ctx := context.Background()
	repo := newStubCarRepo(
		&entities.Car{ID: "car-1", Brand: "Toyota"},
		&entities.Car{ID: "car-2", Brand: "BMW"},
	)
	cache := newMemoryCache()
	adapter := database.NewCachedCarAdapter(repo, cache, nil)
	filter := repositories.CarFilter{OnlyAvailable: false, Limit: 10}

	cars, err := adapter.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, cars, 2)

	assert.Eventually(t, func() bool {
		cached, err := adapter.List(ctx, filter)
		return err == nil && len(cached) == 2 && repo.lists() == 1
	}, time.Second, 10*time.Millisecond)
}
