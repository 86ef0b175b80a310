package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/services"
	"jobforge_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// SignUp POST /api/users/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout POST /api/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RenewAccessToken POST /api/auth/renewAccessToken
func (h *AuthHandler) RenewAccessToken(c *gin.Context) {
	var req dto.RenewAccessTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.authService.RenewAccessToken(c.Request.Context(), req.SessionToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InitiateRecovery POST /api/users/recovery/initiate
func (h *AuthHandler) InitiateRecovery(c *gin.Context) {
	var req dto.RecoveryInitRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.authService.InitiateRecovery(c.Request.Context(), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "if the account exists, a recovery mail has been sent"})
}

// CompleteRecovery POST /api/users/recovery/complete
func (h *AuthHandler) CompleteRecovery(c *gin.Context) {
	var req dto.RecoveryCompleteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.authService.CompleteRecovery(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated, please log in"})
}
