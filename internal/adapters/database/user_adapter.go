package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/internal/infrastructure/clients/postgres"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

var userColumns = []interface{}{
	"id", "username", "email", "password_hash", "is_admin",
	"created_at", "updated_at",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"is_admin":      user.IsAdmin,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperrors.NewConflictError("email or username already registered")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"id": id}, fmt.Sprintf("user with id %s not found", id))
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"email": email}, "user not found")
}

func (a *UserAdapter) getBy(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// Update updates a user
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now()

	record := goqu.Record{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"is_admin":      user.IsAdmin,
		"updated_at":    user.UpdatedAt,
	}

	query, args, err := a.db.Update("users").
		Set(record).
		Where(goqu.Ex{"id": user.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update user", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("user with id %s not found", user.ID))
}

// Delete deletes a user and their profile detail
func (a *UserAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	detailQuery, detailArgs, err := a.db.Delete("user_details").
		Where(goqu.Ex{"user_id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build detail delete query", err)
	}
	if _, err := tx.ExecContext(ctx, detailQuery, detailArgs...); err != nil {
		return apperrors.NewInternalError("failed to delete user detail", err)
	}

	userQuery, userArgs, err := a.db.Delete("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user delete query", err)
	}
	result, err := tx.ExecContext(ctx, userQuery, userArgs...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}

	if err := requireRowsAffected(result, fmt.Sprintf("user with id %s not found", id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit user delete", err)
	}
	return nil
}

// Count returns the number of registered users
func (a *UserAdapter) Count(ctx context.Context) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("users").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count users", err)
	}
	return count, nil
}

// GetDetail retrieves the profile detail for a user
func (a *UserAdapter) GetDetail(ctx context.Context, userID string) (*entities.UserDetail, error) {
	query, args, err := a.db.Select("user_id", "full_name", "address", "phone", "marital_status").
		From("user_details").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build detail query", err)
	}

	detail := &entities.UserDetail{}
	var fullName, address, phone, maritalStatus sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&detail.UserID,
		&fullName,
		&address,
		&phone,
		&maritalStatus,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("detail for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user detail", err)
	}

	detail.FullName = fullName.String
	detail.Address = address.String
	detail.Phone = phone.String
	detail.MaritalStatus = maritalStatus.String

	return detail, nil
}

// UpsertDetail creates or replaces the profile detail for a user
func (a *UserAdapter) UpsertDetail(ctx context.Context, detail *entities.UserDetail) error {
	record := goqu.Record{
		"user_id":        detail.UserID,
		"full_name":      detail.FullName,
		"address":        detail.Address,
		"phone":          detail.Phone,
		"marital_status": detail.MaritalStatus,
	}

	query, args, err := a.db.Insert("user_details").
		Rows(record).
		OnConflict(goqu.DoUpdate("user_id", record)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert user detail", err)
	}
	return nil
}
