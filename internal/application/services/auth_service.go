package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/providers"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/pkg/auth"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

// AuthService handles registration, login and account management
type AuthService struct {
	repo   repositories.UserRepository
	tokens *auth.TokenManager
	mailer providers.MessageSender
}

// NewAuthService creates a new auth service
func NewAuthService(repo repositories.UserRepository, tokens *auth.TokenManager, mailer providers.MessageSender) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
	}
}

// Register creates a new account and returns it with a session token
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entities.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, "", apperrors.NewValidationError("username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperrors.NewValidationError("a valid email is required")
	}
	if len(password) < 6 {
		return nil, "", apperrors.NewValidationError("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Seed an empty profile so edits are always an update
	detail := &entities.UserDetail{UserID: user.ID}
	if err := s.repo.UpsertDetail(ctx, detail); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to seed user detail")
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to issue token", err)
	}

	return user, token, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to issue token", err)
	}

	return user, token, nil
}

// AdminLogin authenticates an administrator. The admin flag is checked
// before the password so a valid user password on a non-admin account
// still reads "admin not found".
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", apperrors.NewUnauthorizedError("admin not found")
		}
		return nil, "", err
	}

	if !user.IsAdmin {
		return nil, "", apperrors.NewUnauthorizedError("admin not found")
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to issue token", err)
	}

	return user, token, nil
}

// ForgotPassword dispatches a password reset email. The outcome is the
// same whether or not the account exists, to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Debug().Str("email", email).Msg("password reset requested for unknown account")
		return
	}

	if s.mailer == nil {
		return
	}

	body := fmt.Sprintf("Hi %s,\n\nA password reset was requested for your account. "+
		"If this was you, follow the link in the app to choose a new password.", user.Username)
	if err := s.mailer.Send(ctx, user.Email, "Password reset", body); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to send password reset email")
	}
}

// GetProfile returns the account and its profile detail
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entities.User, *entities.UserDetail, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	detail, err := s.repo.GetDetail(ctx, userID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, nil, err
		}
		detail = &entities.UserDetail{UserID: userID}
	}

	return user, detail, nil
}

// UpdateDetail replaces the caller's profile detail
func (s *AuthService) UpdateDetail(ctx context.Context, detail *entities.UserDetail) error {
	if detail.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	return s.repo.UpsertDetail(ctx, detail)
}

// DeleteAccount removes the account and its profile detail
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
