package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/openfleet/carrental/internal/api/middleware"
	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
)

// AuthHandler handles registration, login and account endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type sessionResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

// AdminLogin handles POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is
// the same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.authService.ForgotPassword(r.Context(), req.Email)
	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "if the account exists, a reset email has been sent",
	})
}

// Me handles GET /api/users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	user, detail, err := h.authService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"detail": detail,
	})
}

// UpdateDetail handles PATCH /api/users/me/detail
func (h *AuthHandler) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var detail entities.UserDetail
	if err := json.NewDecoder(r.Body).Decode(&detail); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	detail.UserID = claims.UserID

	if err := h.authService.UpdateDetail(r.Context(), &detail); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// DeleteAccount handles DELETE /api/users/me
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	if err := h.authService.DeleteAccount(r.Context(), claims.UserID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
