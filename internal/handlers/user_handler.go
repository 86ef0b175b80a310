package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/services"
	"jobforge_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id, id.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser PATCH /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateDetails(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword POST /api/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), id, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeactivateUser DELETE /api/users/:id
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	userID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Deactivate(c.Request.Context(), id, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
