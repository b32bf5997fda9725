package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

// ScheduleHandler serves the weekly-calendar endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler builds a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ── coordinator calendar ──

// CreateCoordinatorBlock
// POST /api/v1/schedules/coordinators
func (h *ScheduleHandler) CreateCoordinatorBlock(c *gin.Context) {
	var req dto.CreateCoordinatorScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.scheduleSvc.CreateCoordinatorBlock(c.Request.Context(), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Created(c, result)
}

// ListCoordinatorBlocks
// GET /api/v1/schedules/coordinators/:user_id
func (h *ScheduleHandler) ListCoordinatorBlocks(c *gin.Context) {
	result, err := h.scheduleSvc.ListCoordinatorBlocks(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateCoordinatorBlock
// PUT /api/v1/schedules/coordinators/blocks/:id
func (h *ScheduleHandler) UpdateCoordinatorBlock(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.scheduleSvc.UpdateCoordinatorBlock(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteCoordinatorBlock
// DELETE /api/v1/schedules/coordinators/blocks/:id
func (h *ScheduleHandler) DeleteCoordinatorBlock(c *gin.Context) {
	if err := h.scheduleSvc.DeleteCoordinatorBlock(c.Request.Context(), c.Param("id")); err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── area calendar ──

// CreateAreaBlock
// POST /api/v1/schedules/areas
func (h *ScheduleHandler) CreateAreaBlock(c *gin.Context) {
	var req dto.CreateAreaScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.scheduleSvc.CreateAreaBlock(c.Request.Context(), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.Created(c, result)
}

// ListAreaBlocks
// GET /api/v1/schedules/areas/:area
func (h *ScheduleHandler) ListAreaBlocks(c *gin.Context) {
	result, err := h.scheduleSvc.ListAreaBlocks(c.Request.Context(), c.Param("area"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateAreaBlock
// PUT /api/v1/schedules/areas/blocks/:id
func (h *ScheduleHandler) UpdateAreaBlock(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.scheduleSvc.UpdateAreaBlock(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteAreaBlock
// DELETE /api/v1/schedules/areas/blocks/:id
func (h *ScheduleHandler) DeleteAreaBlock(c *gin.Context) {
	if err := h.scheduleSvc.DeleteAreaBlock(c.Request.Context(), c.Param("id")); err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── availability ──

// Availability
// GET /api/v1/schedules/availability?user_id=...&day_of_week=0&time=10:00
func (h *ScheduleHandler) Availability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.scheduleSvc.Availability(c.Request.Context(), &req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

func writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16001, "schedule block not found")
	case errors.Is(err, service.ErrNotCoordinator):
		response.BadRequest(c, 16002, "schedules can only belong to coordinators")
	case errors.Is(err, service.ErrScheduleOverlap):
		response.Conflict(c, 16003, "the block overlaps an existing one")
	case errors.Is(err, service.ErrInvalidBlockRange):
		response.BadRequest(c, 16004, "end time must be after start time")
	case errors.Is(err, service.ErrInvalidScheduleTime):
		response.BadRequest(c, 16005, "times must use HH:MM format")
	case errors.Is(err, service.ErrAvailabilityTarget):
		response.BadRequest(c, 16006, "either user_id or area is required")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}
