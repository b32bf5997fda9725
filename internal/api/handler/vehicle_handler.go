package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

// VehicleHandler serves the vehicle registry endpoints.
type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

// NewVehicleHandler builds a VehicleHandler.
func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

// Create
// POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.vehicleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.Created(c, result)
}

// Get
// GET /api/v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	result, err := h.vehicleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.OK(c, result)
}

// List
// GET /api/v1/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	result, err := h.vehicleSvc.List(c.Request.Context())
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete
// DELETE /api/v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeVehicleError(c, err)
		return
	}
	response.OK(c, nil)
}

func writeVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		response.NotFound(c, 14001, "vehicle not found")
	case errors.Is(err, service.ErrEmptyPlate):
		response.BadRequest(c, 14002, "plate must not be empty")
	default:
		response.InternalError(c)
	}
}
