package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/openfleet/carrental/internal/api/middleware"
	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/internal/infrastructure/observability"
	"github.com/openfleet/carrental/pkg/payment"
)

const dateLayout = "2006-01-02"

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService      *services.BookingService
	notificationService *services.NotificationService
	metrics             *observability.Metrics
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, notificationService *services.NotificationService, metrics *observability.Metrics) *BookingHandler {
	return &BookingHandler{
		bookingService:      bookingService,
		notificationService: notificationService,
		metrics:             metrics,
	}
}

type createBookingRequest struct {
	CarID      string `json:"car_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
}

type createBookingResponse struct {
	Booking *entities.Booking `json:"booking"`
	Warning string            `json:"warning,omitempty"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	var userID string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID
	}

	result, err := h.bookingService.Submit(r.Context(), services.BookingRequest{
		UserID:    userID,
		CarID:     req.CarID,
		StartDate: start,
		EndDate:   end,
		Card: payment.Card{
			Number: req.CardNumber,
			Expiry: req.CardExpiry,
			CVV:    req.CardCVV,
		},
	})
	if err != nil {
		observability.RecordBookingMetric(r.Context(), h.metrics, "failed")
		respondWithAppError(w, err)
		return
	}

	outcome := "confirmed"
	if result.Warning != "" {
		outcome = "confirmed_with_warning"
	}
	observability.RecordBookingMetric(r.Context(), h.metrics, outcome)

	if h.notificationService != nil {
		go func(booking *entities.Booking) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			h.notificationService.SendBookingConfirmation(ctx, booking)
		}(result.Booking)
	}

	respondWithJSON(w, http.StatusCreated, createBookingResponse{
		Booking: result.Booking,
		Warning: result.Warning,
	})
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	filter := repositories.BookingFilter{Limit: 100}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := entities.ParseBookingStatus(raw)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		filter.Status = status
	}

	bookings, err := h.bookingService.ListByUser(r.Context(), claims.UserID, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.bookingService.GetByID(r.Context(), bookingID, claims.UserID, claims.IsAdmin)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	if err := h.bookingService.Delete(r.Context(), bookingID, claims.UserID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
