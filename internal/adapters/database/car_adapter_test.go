package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfleet/carrental/internal/domain/entities"
)

// Note: These tests would typically use a test database or mock
// This is a structure showing TDD approach

func TestCarAdapter_Create(t *testing.T) {
	// This test would use a test database connection
	// For now, we'll skip the actual implementation as it requires a database
	t.Skip("Requires database connection")

	t.Run("successfully creates a car", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// adapter := database.NewCarAdapter(testClient)

		// car := &entities.Car{
		// 	ID:          "test-car-1",
		// 	Name:        "Model 3",
		// 	Brand:       "Tesla",
		// 	PricePerDay: "$120/day",
		// 	Rating:      4.8,
		// 	Available:   true,
		// 	CreatedAt:   time.Now(),
		// 	UpdatedAt:   time.Now(),
		// }

		// Act
		// err := adapter.Create(ctx, car)

		// Assert
		// require.NoError(t, err)
	})
}

func TestCarAdapter_GetByID(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("successfully retrieves a car", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// carID := "test-car-1"

		// Act
		// car, err := adapter.GetByID(ctx, carID)

		// Assert
		// require.NoError(t, err)
		// assert.Equal(t, carID, car.ID)
	})

	t.Run("returns error when car not found", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()

		// Act
		// car, err := adapter.GetByID(ctx, "non-existent-id")

		// Assert
		// require.Error(t, err)
		// assert.Nil(t, car)
	})
}

func TestCarAdapter_List(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("lists cars filtered by brand and availability", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// filter := repositories.CarFilter{
		// 	Brand:         "Tesla",
		// 	OnlyAvailable: true,
		// 	Sort:          repositories.CarSortRating,
		// 	Limit:         10,
		// }

		// Act
		// cars, err := adapter.List(ctx, filter)

		// Assert
		// require.NoError(t, err)
		// assert.NotNil(t, cars)
	})
}

func TestCarAdapter_SetAvailability(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("flips only the availability flag", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()

		// Act
		// err := adapter.SetAvailability(ctx, "test-car-1", false)

		// Assert
		// require.NoError(t, err)
	})
}

// Example test that can run without database - testing field expectations
func TestCarFields(t *testing.T) {
	t.Run("car must have required fields", func(t *testing.T) {
		car := &entities.Car{
			ID:          "test-1",
			Name:        "Corolla",
			Brand:       "Toyota",
			PricePerDay: "$45/day",
		}

		assert.NotEmpty(t, car.ID)
		assert.NotEmpty(t, car.Name)
		assert.NotEmpty(t, car.Brand)
		assert.NotEmpty(t, car.PricePerDay)
	})
}
