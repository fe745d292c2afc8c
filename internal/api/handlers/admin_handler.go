package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
)

// AdminHandler handles administrative booking and reporting endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookings handles GET /api/admin/bookings
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := repositories.BookingFilter{Limit: 200}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := entities.ParseBookingStatus(raw)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		filter.Status = status
	}

	bookings, err := h.adminService.ListBookings(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// UpdateBookingStatus handles PATCH /api/admin/bookings/{id}/status
func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.adminService.UpdateBookingStatus(r.Context(), bookingID, req.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
