package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrental/internal/api/handlers"
	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/domain/repositories"
	apperrors "github.com/openfleet/carrental/pkg/errors"
)

func newCarMux(repo *MockCarRepository) *http.ServeMux {
	handler := handlers.NewCarHandler(services.NewCarService(repo, nil))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cars", handler.ListCars)
	mux.HandleFunc("GET /api/cars/{id}", handler.GetCar)
	mux.HandleFunc("POST /api/admin/cars", handler.CreateCar)
	mux.HandleFunc("PUT /api/admin/cars/{id}", handler.UpdateCar)
	mux.HandleFunc("DELETE /api/admin/cars/{id}", handler.DeleteCar)
	return mux
}

func TestCarHandler_ListCars(t *testing.T) {
	repo := new(MockCarRepository)
	mux := newCarMux(repo)

	cars := []*entities.Car{
		{ID: "car-1", Name: "Model 3", Brand: "Tesla", PricePerDay: "$120/day", Available: true},
		{ID: "car-2", Name: "Civic", Brand: "Honda", PricePerDay: "$60/day", Available: true},
	}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.CarFilter) bool {
		return f.OnlyAvailable && f.Sort == repositories.CarSortRating
	})).Return(cars, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cars?available=true&sort=rating", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Cars  []*entities.Car `json:"cars"`
		Count int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Model 3", body.Cars[0].Name)
}

func TestCarHandler_GetCar(t *testing.T) {
	t.Run("returns the car", func(t *testing.T) {
		repo := new(MockCarRepository)
		mux := newCarMux(repo)

		repo.On("GetByID", mock.Anything, "car-1").
			Return(&entities.Car{ID: "car-1", Name: "Model 3"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/cars/car-1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		repo := new(MockCarRepository)
		mux := newCarMux(repo)

		repo.On("GetByID", mock.Anything, "missing").
			Return(nil, apperrors.NewNotFoundError("car with id missing not found"))

		req := httptest.NewRequest(http.MethodGet, "/api/cars/missing", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})
}

func TestCarHandler_CreateCar(t *testing.T) {
	t.Run("creates a car from a valid payload", func(t *testing.T) {
		repo := new(MockCarRepository)
		mux := newCarMux(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		payload := `{"name":"Corolla","brand":"Toyota","price_per_day":"$45/day","rating":4.2,"available":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/cars", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var car entities.Car
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&car))
		assert.NotEmpty(t, car.ID)
	})

	t.Run("rejects an out-of-range rating with 400", func(t *testing.T) {
		repo := new(MockCarRepository)
		mux := newCarMux(repo)

		payload := `{"name":"Corolla","brand":"Toyota","price_per_day":"$45/day","rating":9}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/cars", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.AssertNotCalled(t, "Create")
	})
}
