package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/reservation"
	"github.com/Domenick1991/carrental/internal/service/users"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	service reservation.UseCase
	users   users.UserUseCase
}

type createReservationRequest struct {
	VehicleID       int64     `json:"vehicle_id" binding:"required"`
	UserID          int64     `json:"user_id" binding:"required"`
	PickUpTime      time.Time `json:"pick_up_time" binding:"required"`
	DropOffTime     time.Time `json:"drop_off_time" binding:"required"`
	PickUpLocation  string    `json:"pick_up_location" binding:"required,max=150"`
	DropOffLocation string    `json:"drop_off_location" binding:"required,max=150"`
}

type updateReservationRequest struct {
	VehicleID       int64     `json:"vehicle_id" binding:"required"`
	PickUpTime      time.Time `json:"pick_up_time" binding:"required"`
	DropOffTime     time.Time `json:"drop_off_time" binding:"required"`
	PickUpLocation  string    `json:"pick_up_location" binding:"required,max=150"`
	DropOffLocation string    `json:"drop_off_location" binding:"required,max=150"`
	Status          string    `json:"status" binding:"required,oneof=CREATED CANCELED DONE"`
}

type reservationResponse struct {
	ID              int64  `json:"id"`
	VehicleID       int64  `json:"vehicle_id"`
	UserID          int64  `json:"user_id"`
	PickUpTime      string `json:"pick_up_time"`
	DropOffTime     string `json:"drop_off_time"`
	PickUpLocation  string `json:"pick_up_location"`
	DropOffLocation string `json:"drop_off_location"`
	Status          string `json:"status"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

type availabilityResponse struct {
	Available       bool  `json:"available"`
	TotalPriceCents int64 `json:"total_price_cents"`
}

func NewReservationHandler(service reservation.UseCase, users users.UserUseCase) *ReservationHandler {
	return &ReservationHandler{service: service, users: users}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The requester is resolved up front; the scheduling core treats the
	// id as opaque.
	if _, err := h.users.GetByID(c.Request.Context(), req.UserID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Create(c.Request.Context(), reservation.CreateInput{
		VehicleID:       req.VehicleID,
		UserID:          req.UserID,
		PickUpTime:      req.PickUpTime,
		DropOffTime:     req.DropOffTime,
		PickUpLocation:  req.PickUpLocation,
		DropOffLocation: req.DropOffLocation,
	})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toReservationResponse(res))
}

func (h *ReservationHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, reservation.UpdateInput{
		VehicleID:       req.VehicleID,
		PickUpTime:      req.PickUpTime,
		DropOffTime:     req.DropOffTime,
		PickUpLocation:  req.PickUpLocation,
		DropOffLocation: req.DropOffLocation,
		Status:          domain.ReservationStatus(req.Status),
	})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) list(c *gin.Context) {
	reservations, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// ListByUser serves GET /users/:id/reservations.
func (h *ReservationHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), userID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	reservations, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// GetForUser serves GET /users/:id/reservations/:reservationId, an
// ownership-scoped read.
func (h *ReservationHandler) GetForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	id, err := strconv.ParseInt(c.Param("reservationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	res, err := h.service.GetByIDForUser(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toReservationResponse(res))
}

// CheckAvailability serves GET /vehicles/:id/availability. Times come as
// RFC3339 query parameters.
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}
	pickUp, err := time.Parse(time.RFC3339, c.Query("pick_up_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pick_up_time"})
		return
	}
	dropOff, err := time.Parse(time.RFC3339, c.Query("drop_off_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid drop_off_time"})
		return
	}

	available, price, err := h.service.CheckAvailability(c.Request.Context(), vehicleID, reservation.Window{PickUp: pickUp, DropOff: dropOff})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, availabilityResponse{Available: available, TotalPriceCents: price})
}

func toReservationResponse(res *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:              res.ID,
		VehicleID:       res.VehicleID,
		UserID:          res.UserID,
		PickUpTime:      res.PickUpTime.Format(time.RFC3339),
		DropOffTime:     res.DropOffTime.Format(time.RFC3339),
		PickUpLocation:  res.PickUpLocation,
		DropOffLocation: res.DropOffLocation,
		Status:          string(res.Status),
		TotalPriceCents: res.TotalPriceCents,
	}
}

func toReservationResponses(reservations []domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, toReservationResponse(&reservations[i]))
	}
	return out
}
