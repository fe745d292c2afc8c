package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
)

// CarHandler handles catalog HTTP requests
type CarHandler struct {
	carService *services.CarService
}

// NewCarHandler creates a new car handler
func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// ListCars handles GET /api/cars
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.CarFilter{
		Brand:         query.Get("brand"),
		OnlyAvailable: query.Get("available") == "true",
		Limit:         50,
		Offset:        0,
	}

	switch query.Get("sort") {
	case "rating":
		filter.Sort = repositories.CarSortRating
	default:
		filter.Sort = repositories.CarSortNewest
	}

	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil && offset >= 0 {
		filter.Offset = offset
	}

	cars, err := h.carService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cars":  cars,
		"count": len(cars),
	})
}

// GetCar handles GET /api/cars/{id}
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID := r.PathValue("id")
	if carID == "" {
		respondWithError(w, http.StatusBadRequest, "car ID is required")
		return
	}

	car, err := h.carService.GetByID(r.Context(), carID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, car)
}

// CreateCar handles POST /api/admin/cars
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var car entities.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.carService.Create(r.Context(), &car); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, car)
}

// UpdateCar handles PUT /api/admin/cars/{id}
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	carID := r.PathValue("id")
	if carID == "" {
		respondWithError(w, http.StatusBadRequest, "car ID is required")
		return
	}

	var car entities.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	car.ID = carID

	if err := h.carService.Update(r.Context(), &car); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, car)
}

// DeleteCar handles DELETE /api/admin/cars/{id}
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID := r.PathValue("id")
	if carID == "" {
		respondWithError(w, http.StatusBadRequest, "car ID is required")
		return
	}

	if err := h.carService.Delete(r.Context(), carID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
