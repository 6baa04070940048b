package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/reservation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReservationUseCase is a mock implementation of reservation.UseCase
type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) Create(ctx context.Context, input reservation.CreateInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Update(ctx context.Context, id int64, input reservation.UpdateInput) (*domain.Reservation, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationUseCase) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Conflicts(ctx context.Context, vehicleID int64, w reservation.Window, excludeID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, vehicleID, w, excludeID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) CheckAvailability(ctx context.Context, vehicleID int64, w reservation.Window) (bool, int64, error) {
	args := m.Called(ctx, vehicleID, w)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockReservationUseCase) CompleteOverdue(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUseCase) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestReservationHandler_create(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pickUp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	dropOff := pickUp.Add(90 * time.Minute)
	input := reservation.CreateInput{
		VehicleID:       7,
		UserID:          42,
		PickUpTime:      pickUp,
		DropOffTime:     dropOff,
		PickUpLocation:  "airport",
		DropOffLocation: "downtown",
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/reservations", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	res := &domain.Reservation{
		ID:              1,
		VehicleID:       7,
		UserID:          42,
		PickUpTime:      pickUp,
		DropOffTime:     dropOff,
		PickUpLocation:  "airport",
		DropOffLocation: "downtown",
		Status:          domain.ReservationStatusCreated,
		TotalPriceCents: 2000,
	}

	mockUsers.On("GetByID", c.Request.Context(), int64(42)).Return(&domain.User{ID: 42}, nil)
	mockService.On("Create", c.Request.Context(), input).Return(res, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response reservationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), response.ID)
	assert.Equal(t, string(domain.ReservationStatusCreated), response.Status)
	assert.Equal(t, int64(2000), response.TotalPriceCents)

	mockUsers.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_create_unknownUser(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pickUp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	input := reservation.CreateInput{
		VehicleID:       7,
		UserID:          99,
		PickUpTime:      pickUp,
		DropOffTime:     pickUp.Add(time.Hour),
		PickUpLocation:  "airport",
		DropOffLocation: "downtown",
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/reservations", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("GetByID", c.Request.Context(), int64(99)).Return(nil, fmt.Errorf("user 99: %w", repository.ErrNotFound))

	handler.create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "Create")
	mockUsers.AssertExpectations(t)
}

func TestReservationHandler_create_vehicleUnavailable(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pickUp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	input := reservation.CreateInput{
		VehicleID:       7,
		UserID:          42,
		PickUpTime:      pickUp,
		DropOffTime:     pickUp.Add(time.Hour),
		PickUpLocation:  "airport",
		DropOffLocation: "downtown",
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/reservations", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockUsers.On("GetByID", c.Request.Context(), int64(42)).Return(&domain.User{ID: 42}, nil)
	mockService.On("Create", c.Request.Context(), input).Return(nil, reservation.ErrVehicleUnavailable)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_update(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pickUp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	dropOff := pickUp.Add(90 * time.Minute)
	reqBody := map[string]interface{}{
		"vehicle_id":        7,
		"pick_up_time":      pickUp.Format(time.RFC3339),
		"drop_off_time":     dropOff.Format(time.RFC3339),
		"pick_up_location":  "airport",
		"drop_off_location": "downtown",
		"status":            "CANCELED",
	}
	body, _ := json.Marshal(reqBody)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("PUT", "/reservations/1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	res := &domain.Reservation{
		ID:              1,
		VehicleID:       7,
		UserID:          42,
		PickUpTime:      pickUp,
		DropOffTime:     dropOff,
		PickUpLocation:  "airport",
		DropOffLocation: "downtown",
		Status:          domain.ReservationStatusCanceled,
		TotalPriceCents: 2000,
	}

	mockService.On("Update", c.Request.Context(), int64(1), reservation.UpdateInput{
		VehicleID:       7,
		PickUpTime:      pickUp,
		DropOffTime:     dropOff,
		PickUpLocation:  "airport",
		DropOffLocation: "downtown",
		Status:          domain.ReservationStatusCanceled,
	}).Return(res, nil)

	handler.update(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response reservationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.ReservationStatusCanceled), response.Status)
	assert.Equal(t, int64(2000), response.TotalPriceCents)

	mockService.AssertExpectations(t)
}

func TestReservationHandler_update_invalidStatus(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pickUp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	reqBody := map[string]interface{}{
		"vehicle_id":        7,
		"pick_up_time":      pickUp.Format(time.RFC3339),
		"drop_off_time":     pickUp.Add(time.Hour).Format(time.RFC3339),
		"pick_up_location":  "airport",
		"drop_off_location": "downtown",
		"status":            "PENDING",
	}
	body, _ := json.Marshal(reqBody)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("PUT", "/reservations/1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Update")
}

func TestReservationHandler_remove(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/reservations/1", nil)

	mockService.On("Remove", c.Request.Context(), int64(1)).Return(nil)

	handler.remove(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_get_notFound(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/reservations/99", nil)

	mockService.On("GetByID", c.Request.Context(), int64(99)).Return(nil, fmt.Errorf("reservation 99: %w", repository.ErrNotFound))

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_GetForUser(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "42"}, {Key: "reservationId", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/users/42/reservations/1", nil)

	res := &domain.Reservation{ID: 1, VehicleID: 7, UserID: 42, Status: domain.ReservationStatusCreated}
	mockService.On("GetByIDForUser", c.Request.Context(), int64(1), int64(42)).Return(res, nil)

	handler.GetForUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response reservationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), response.UserID)

	mockService.AssertExpectations(t)
}

func TestReservationHandler_CheckAvailability(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	pickUp := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	dropOff := pickUp.Add(time.Hour)
	target := fmt.Sprintf("/vehicles/7/availability?pick_up_time=%s&drop_off_time=%s",
		pickUp.Format(time.RFC3339), dropOff.Format(time.RFC3339))
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("GET", target, nil)

	mockService.On("CheckAvailability", c.Request.Context(), int64(7), reservation.Window{PickUp: pickUp, DropOff: dropOff}).
		Return(true, int64(1000), nil)

	handler.CheckAvailability(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response availabilityResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Available)
	assert.Equal(t, int64(1000), response.TotalPriceCents)

	mockService.AssertExpectations(t)
}

func TestReservationHandler_CheckAvailability_badTime(t *testing.T) {
	mockService := &MockReservationUseCase{}
	mockUsers := &MockUserUseCase{}
	handler := NewReservationHandler(mockService, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/vehicles/7/availability?pick_up_time=tomorrow", nil)

	handler.CheckAvailability(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CheckAvailability")
}
