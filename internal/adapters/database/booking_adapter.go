package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/internal/infrastructure/clients/postgres"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

var bookingColumns = []interface{}{
	"id", "user_id", "username", "car_id", "car_name", "car_brand",
	"car_price_per_day", "start_date", "end_date", "total_cost",
	"status", "created_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":                booking.ID,
		"user_id":           booking.UserID,
		"username":          booking.Username,
		"car_id":            booking.CarID,
		"car_name":          booking.CarName,
		"car_brand":         booking.CarBrand,
		"car_price_per_day": booking.CarPricePerDay,
		"start_date":        booking.StartDate,
		"end_date":          booking.EndDate,
		"total_cost":        booking.TotalCost,
		"status":            booking.Status,
		"created_at":        booking.CreatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.Booking{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Username,
		&booking.CarID,
		&booking.CarName,
		&booking.CarBrand,
		&booking.CarPricePerDay,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalCost,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// ListByUser retrieves bookings for a user, newest first
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"user_id": userID})
	return a.list(ctx, ds, filter)
}

// List retrieves all bookings, newest first
func (a *BookingAdapter) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).From("bookings")
	return a.list(ctx, ds, filter)
}

func (a *BookingAdapter) list(ctx context.Context, ds *goqu.SelectDataset, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

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
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking := &entities.Booking{}
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.Username,
			&booking.CarID,
			&booking.CarName,
			&booking.CarBrand,
			&booking.CarPricePerDay,
			&booking.StartDate,
			&booking.EndDate,
			&booking.TotalCost,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// UpdateStatus sets the booking status
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build status query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("booking with id %s not found", id))
}

// Delete removes a booking record outright
func (a *BookingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete booking", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("booking with id %s not found", id))
}

// CompletedRevenue sums the total cost of all completed bookings
func (a *BookingAdapter) CompletedRevenue(ctx context.Context) (float64, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.SUM("total_cost"), 0)).
		From("bookings").
		Where(goqu.Ex{"status": entities.BookingStatusCompleted}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build revenue query", err)
	}

	var revenue float64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return 0, apperrors.NewInternalError("failed to compute revenue", err)
	}

	return revenue, nil
}
