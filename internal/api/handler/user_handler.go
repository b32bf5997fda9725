package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/service"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/response"
)

// UserHandler serves the staff-account endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.Created(c, result)
}

// Get
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	result, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, result)
}

// GetByName
// GET /api/v1/users/by-name?name=...&paternal_surname=...&maternal_surname=...
func (h *UserHandler) GetByName(c *gin.Context) {
	name := c.Query("name")
	paternal := c.Query("paternal_surname")
	if name == "" || paternal == "" {
		response.BadRequest(c, 10001, "name and paternal_surname are required")
		return
	}

	result, err := h.userSvc.GetByName(c.Request.Context(), name, paternal, c.Query("maternal_surname"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, result)
}

// List
// GET /api/v1/users?role=guard or ?area=library
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userSvc.List(c.Request.Context(), c.Query("role"), c.Query("area"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, result)
}

// Update
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, nil)
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 12002, "email already registered")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12003, "unknown role")
	case errors.Is(err, service.ErrWeakPassword):
		response.BadRequest(c, 11005, "password must be at least 8 characters with a letter and a digit")
	default:
		response.InternalError(c)
	}
}
