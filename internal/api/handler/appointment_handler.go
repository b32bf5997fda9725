package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

// AppointmentHandler serves the booking endpoints.
type AppointmentHandler struct {
	apptSvc service.AppointmentService
}

// NewAppointmentHandler builds an AppointmentHandler.
func NewAppointmentHandler(apptSvc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc}
}

// Create
// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.apptSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	response.Created(c, result)
}

// Get
// GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	result, err := h.apptSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	response.OK(c, result)
}

// List
// GET /api/v1/appointments?date=2026-03-01&area=library&visited=...
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.apptSvc.List(c.Request.Context(), &req, userID, role)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	response.OK(c, result)
}

// ListByVisitor
// GET /api/v1/appointments/by-visitor?name=...&paternal_surname=...&maternal_surname=...
func (h *AppointmentHandler) ListByVisitor(c *gin.Context) {
	name := c.Query("name")
	paternal := c.Query("paternal_surname")
	if name == "" || paternal == "" {
		response.BadRequest(c, 10001, "name and paternal_surname are required")
		return
	}

	result, err := h.apptSvc.ListByVisitorName(c.Request.Context(), name, paternal, c.Query("maternal_surname"))
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	response.OK(c, result)
}

// Update
// PUT /api/v1/appointments/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.apptSvc.Update(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete
// DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.apptSvc.Delete(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		writeAppointmentError(c, err)
		return
	}
	response.OK(c, nil)
}

func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		response.NotFound(c, 15001, "appointment not found")
	case errors.Is(err, service.ErrVisitorNotFound):
		response.NotFound(c, 15002, "visitor not found, register the visitor before booking")
	case errors.Is(err, service.ErrDuplicateBooking):
		response.Conflict(c, 15003, "the visitor already has an appointment on that date")
	case errors.Is(err, service.ErrTimeConflict):
		response.Conflict(c, 15004, "the requested time falls inside another appointment's window")
	case errors.Is(err, service.ErrVisitorUnderage):
		response.BadRequest(c, 15005, "the visitor does not meet the minimum age")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "the role does not allow modifying this appointment")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15006, "date must be today or later, in YYYY-MM-DD format")
	case errors.Is(err, service.ErrInvalidTime):
		response.BadRequest(c, 15007, "time must use HH:MM format")
	default:
		response.InternalError(c)
	}
}
