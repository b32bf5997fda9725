package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

// VisitorHandler serves the visitor registry endpoints.
type VisitorHandler struct {
	visitorSvc service.VisitorService
}

// NewVisitorHandler builds a VisitorHandler.
func NewVisitorHandler(visitorSvc service.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorSvc: visitorSvc}
}

// Create
// POST /api/v1/visitors
func (h *VisitorHandler) Create(c *gin.Context) {
	var req dto.CreateVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.visitorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeVisitorError(c, err)
		return
	}
	response.Created(c, result)
}

// Get
// GET /api/v1/visitors/:id
func (h *VisitorHandler) Get(c *gin.Context) {
	result, err := h.visitorSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeVisitorError(c, err)
		return
	}
	response.OK(c, result)
}

// List
// GET /api/v1/visitors
func (h *VisitorHandler) List(c *gin.Context) {
	result, err := h.visitorSvc.List(c.Request.Context())
	if err != nil {
		writeVisitorError(c, err)
		return
	}
	response.OK(c, result)
}

// Update
// PUT /api/v1/visitors/:id
func (h *VisitorHandler) Update(c *gin.Context) {
	var req dto.UpdateVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.visitorSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeVisitorError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete
// DELETE /api/v1/visitors/:id
func (h *VisitorHandler) Delete(c *gin.Context) {
	if err := h.visitorSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeVisitorError(c, err)
		return
	}
	response.OK(c, nil)
}

func writeVisitorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVisitorRecordNotFound):
		response.NotFound(c, 13001, "visitor not found")
	case errors.Is(err, service.ErrDocumentMismatch):
		response.Conflict(c, 13002, "the document number is registered to a different person")
	case errors.Is(err, service.ErrInvalidBirthDate):
		response.BadRequest(c, 13003, "birth date must use YYYY-MM-DD format")
	default:
		response.InternalError(c)
	}
}
