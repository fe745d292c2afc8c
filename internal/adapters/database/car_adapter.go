package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/internal/infrastructure/clients/postgres"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

var carColumns = []interface{}{
	"id", "name", "brand", "image_url", "price_per_day",
	"rating", "description", "available", "created_at", "updated_at",
}

// CarAdapter implements the CarRepository interface
type CarAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCarAdapter creates a new car adapter
func NewCarAdapter(client *postgres.Client) repositories.CarRepository {
	return &CarAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new car
func (a *CarAdapter) Create(ctx context.Context, car *entities.Car) error {
	record := goqu.Record{
		"id":            car.ID,
		"name":          car.Name,
		"brand":         car.Brand,
		"image_url":     car.ImageURL,
		"price_per_day": car.PricePerDay,
		"rating":        car.Rating,
		"description":   car.Description,
		"available":     car.Available,
		"created_at":    car.CreatedAt,
		"updated_at":    car.UpdatedAt,
	}

	query, args, err := a.db.Insert("cars").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create car", err)
	}

	return nil
}

// GetByID retrieves a car by ID
func (a *CarAdapter) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	query, args, err := a.db.Select(carColumns...).
		From("cars").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	car := &entities.Car{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&car.ID,
		&car.Name,
		&car.Brand,
		&car.ImageURL,
		&car.PricePerDay,
		&car.Rating,
		&car.Description,
		&car.Available,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("car with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get car", err)
	}

	return car, nil
}

// List retrieves cars matching the filter
func (a *CarAdapter) List(ctx context.Context, filter repositories.CarFilter) ([]*entities.Car, error) {
	ds := a.db.Select(carColumns...).From("cars")

	if filter.Brand != "" {
		ds = ds.Where(goqu.Ex{"brand": filter.Brand})
	}
	if filter.OnlyAvailable {
		ds = ds.Where(goqu.Ex{"available": true})
	}

	switch filter.Sort {
	case repositories.CarSortRating:
		ds = ds.Order(goqu.I("rating").Desc())
	default:
		ds = ds.Order(goqu.I("created_at").Desc())
	}

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cars", err)
	}
	defer rows.Close()

	var cars []*entities.Car
	for rows.Next() {
		car := &entities.Car{}
		err := rows.Scan(
			&car.ID,
			&car.Name,
			&car.Brand,
			&car.ImageURL,
			&car.PricePerDay,
			&car.Rating,
			&car.Description,
			&car.Available,
			&car.CreatedAt,
			&car.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan car", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}

// Update updates a car
func (a *CarAdapter) Update(ctx context.Context, car *entities.Car) error {
	car.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":          car.Name,
		"brand":         car.Brand,
		"image_url":     car.ImageURL,
		"price_per_day": car.PricePerDay,
		"rating":        car.Rating,
		"description":   car.Description,
		"available":     car.Available,
		"updated_at":    car.UpdatedAt,
	}

	query, args, err := a.db.Update("cars").
		Set(record).
		Where(goqu.Ex{"id": car.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update car", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("car with id %s not found", car.ID))
}

// SetAvailability flips only the availability flag of a car
func (a *CarAdapter) SetAvailability(ctx context.Context, id string, available bool) error {
	query, args, err := a.db.Update("cars").
		Set(goqu.Record{
			"available":  available,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build availability query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update car availability", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("car with id %s not found", id))
}

// Delete deletes a car
func (a *CarAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("cars").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete car", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("car with id %s not found", id))
}

// requireRowsAffected converts a zero-row write into a not-found error.
func requireRowsAffected(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	return nil
}
