package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrental/internal/api/handlers"
	"github.com/openfleet/carrental/internal/api/middleware"
	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/pkg/auth"
)

type adminHarness struct {
	mux      *http.ServeMux
	tokens   *auth.TokenManager
	bookings *MockBookingRepository
	users    *MockUserRepository
}

func newAdminHarness() *adminHarness {
	h := &adminHarness{
		tokens:   auth.NewTokenManager("test-secret", time.Hour),
		bookings: new(MockBookingRepository),
		users:    new(MockUserRepository),
	}

	handler := handlers.NewAdminHandler(services.NewAdminService(h.bookings, h.users))
	authn := middleware.NewAuthenticator(h.tokens)

	h.mux = http.NewServeMux()
	h.mux.Handle("GET /api/admin/bookings", authn.AdminOnly(http.HandlerFunc(handler.ListBookings)))
	h.mux.Handle("PATCH /api/admin/bookings/{id}/status", authn.AdminOnly(http.HandlerFunc(handler.UpdateBookingStatus)))
	h.mux.Handle("GET /api/admin/stats", authn.AdminOnly(http.HandlerFunc(handler.Stats)))
	return h
}

func (h *adminHarness) adminToken(t *testing.T) string {
	t.Helper()
	token, err := h.tokens.Generate("admin-1", "root", true)
	require.NoError(t, err)
	return token
}

func TestAdminHandler_UpdateBookingStatus(t *testing.T) {
	t.Run("moves a booking to completed", func(t *testing.T) {
		h := newAdminHarness()

		h.bookings.On("GetByID", mock.Anything, "booking-1").
			Return(&entities.Booking{ID: "booking-1", Status: entities.BookingStatusConfirmed}, nil)
		h.bookings.On("UpdateStatus", mock.Anything, "booking-1", entities.BookingStatusCompleted).
			Return(nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/bookings/booking-1/status",
			strings.NewReader(`{"status":"Completed"}`))
		req.Header.Set("Authorization", "Bearer "+h.adminToken(t))
		rec := httptest.NewRecorder()
		h.mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Completed")
	})

	t.Run("rejects an unknown status with 400", func(t *testing.T) {
		h := newAdminHarness()

		h.bookings.On("GetByID", mock.Anything, "booking-1").
			Return(&entities.Booking{ID: "booking-1", Status: entities.BookingStatusConfirmed}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/bookings/booking-1/status",
			strings.NewReader(`{"status":"Archived"}`))
		req.Header.Set("Authorization", "Bearer "+h.adminToken(t))
		rec := httptest.NewRecorder()
		h.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		h.bookings.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestAdminHandler_Stats(t *testing.T) {
	h := newAdminHarness()

	h.users.On("Count", mock.Anything).Return(42, nil)
	h.bookings.On("CompletedRevenue", mock.Anything).Return(12500.0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+h.adminToken(t))
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
	assert.Contains(t, rec.Body.String(), "12500")
}

func TestAdminHandler_Authorization(t *testing.T) {
	t.Run("non-admin token is refused", func(t *testing.T) {
		h := newAdminHarness()

		token, err := h.tokens.Generate("user-1", "alice", false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token is refused", func(t *testing.T) {
		h := newAdminHarness()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		rec := httptest.NewRecorder()
		h.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
