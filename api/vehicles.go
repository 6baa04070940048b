package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/carrental/internal/service/vehicles"
	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	service vehicles.VehicleUseCase
}

type vehicleRequest struct {
	Model             string `json:"model" binding:"required,max=30"`
	Doors             int    `json:"doors" binding:"required"`
	Seats             int    `json:"seats" binding:"required"`
	Luggage           int    `json:"luggage"`
	Transmission      string `json:"transmission" binding:"required,max=30"`
	AirConditioning   bool   `json:"air_conditioning"`
	Age               int    `json:"age"`
	PricePerHourCents int64  `json:"price_per_hour_cents" binding:"required,gt=0"`
	FuelType          string `json:"fuel_type" binding:"required,max=30"`
	BuiltIn           bool   `json:"built_in"`
}

func NewVehicleHandler(service vehicles.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{service: service}
}

func (h *VehicleHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *VehicleHandler) list(c *gin.Context) {
	vehicleList, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vehicleList)
}

func (h *VehicleHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	vehicle, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) create(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.service.Create(c.Request.Context(), toVehicleInput(req))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.service.Update(c.Request.Context(), id, toVehicleInput(req))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) remove(c *gin.Context) {
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

func toVehicleInput(req vehicleRequest) vehicles.VehicleInput {
	return vehicles.VehicleInput{
		Model:             req.Model,
		Doors:             req.Doors,
		Seats:             req.Seats,
		Luggage:           req.Luggage,
		Transmission:      req.Transmission,
		AirConditioning:   req.AirConditioning,
		Age:               req.Age,
		PricePerHourCents: req.PricePerHourCents,
		FuelType:          req.FuelType,
		BuiltIn:           req.BuiltIn,
	}
}
