package routes

import (
	"net/http"

	"github.com/openfleet/carrental/internal/api/handlers"
	"github.com/openfleet/carrental/internal/api/middleware"
	"github.com/openfleet/carrental/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler    *handlers.AuthHandler
	carHandler     *handlers.CarHandler
	bookingHandler *handlers.BookingHandler
	adminHandler   *handlers.AdminHandler
	imageHandler   *handlers.ImageHandler
	sseHandler     *handlers.SSEHandler

	authenticator *middleware.Authenticator
	metrics       *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	carHandler *handlers.CarHandler,
	bookingHandler *handlers.BookingHandler,
	adminHandler *handlers.AdminHandler,
	imageHandler *handlers.ImageHandler,
	sseHandler *handlers.SSEHandler,
	authenticator *middleware.Authenticator,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		authHandler:    authHandler,
		carHandler:     carHandler,
		bookingHandler: bookingHandler,
		adminHandler:   adminHandler,
		imageHandler:   imageHandler,
		sseHandler:     sseHandler,
		authenticator:  authenticator,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/admin/login", r.authHandler.AdminLogin)
	r.mux.HandleFunc("POST /api/auth/forgot-password", r.authHandler.ForgotPassword)

	// Account endpoints
	r.mux.Handle("GET /api/users/me", r.authenticator.Required(http.HandlerFunc(r.authHandler.Me)))
	r.mux.Handle("PATCH /api/users/me/detail", r.authenticator.Required(http.HandlerFunc(r.authHandler.UpdateDetail)))
	r.mux.Handle("DELETE /api/users/me", r.authenticator.Required(http.HandlerFunc(r.authHandler.DeleteAccount)))

	// Catalog endpoints
	r.mux.HandleFunc("GET /api/cars", r.carHandler.ListCars)
	r.mux.HandleFunc("GET /api/cars/events", r.sseHandler.StreamCatalogUpdates)
	r.mux.HandleFunc("GET /api/cars/{id}", r.carHandler.GetCar)

	// Booking endpoints. Submission uses optional auth: an unauthenticated
	// submission must reach the pipeline so it fails with the documented
	// "not logged in" outcome instead of a bare middleware rejection.
	r.mux.Handle("POST /api/bookings", r.authenticator.Optional(http.HandlerFunc(r.bookingHandler.CreateBooking)))
	r.mux.Handle("GET /api/bookings", r.authenticator.Required(http.HandlerFunc(r.bookingHandler.ListBookings)))
	r.mux.Handle("GET /api/bookings/{id}", r.authenticator.Required(http.HandlerFunc(r.bookingHandler.GetBooking)))
	r.mux.Handle("DELETE /api/bookings/{id}", r.authenticator.Required(http.HandlerFunc(r.bookingHandler.DeleteBooking)))

	// Admin endpoints
	r.mux.Handle("POST /api/admin/cars", r.authenticator.AdminOnly(http.HandlerFunc(r.carHandler.CreateCar)))
	r.mux.Handle("PUT /api/admin/cars/{id}", r.authenticator.AdminOnly(http.HandlerFunc(r.carHandler.UpdateCar)))
	r.mux.Handle("DELETE /api/admin/cars/{id}", r.authenticator.AdminOnly(http.HandlerFunc(r.carHandler.DeleteCar)))
	r.mux.Handle("GET /api/admin/bookings", r.authenticator.AdminOnly(http.HandlerFunc(r.adminHandler.ListBookings)))
	r.mux.Handle("PATCH /api/admin/bookings/{id}/status", r.authenticator.AdminOnly(http.HandlerFunc(r.adminHandler.UpdateBookingStatus)))
	r.mux.Handle("GET /api/admin/stats", r.authenticator.AdminOnly(http.HandlerFunc(r.adminHandler.Stats)))
	if r.imageHandler != nil {
		r.mux.Handle("POST /api/admin/images", r.authenticator.AdminOnly(http.HandlerFunc(r.imageHandler.Upload)))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflights never hit auth
	handler = middleware.CORSMiddleware(handler)

	return handler
}
