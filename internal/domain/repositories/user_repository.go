package repositories

import (
	"context"

	"github.com/openfleet/carrental/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update updates a user
	Update(ctx context.Context, user *entities.User) error

	// Delete deletes a user and their profile detail
	Delete(ctx context.Context, id string) error

	// Count returns the number of registered users
	Count(ctx context.Context) (int, error)

	// GetDetail retrieves the profile detail for a user
	GetDetail(ctx context.Context, userID string) (*entities.UserDetail, error)

	// UpsertDetail creates or replaces the profile detail for a user
	UpsertDetail(ctx context.Context, detail *entities.UserDetail) error
}
