package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/services"
	"jobforge_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

// Apply POST /api/jobs/:id/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	app, err := h.applicationService.Apply(c.Request.Context(), id, jobID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// MyApplications GET /api/applications/my
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.MyApplications(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListByJob GET /api/jobs/:id/applications
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	apps, err := h.applicationService.ListByJob(c.Request.Context(), id, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetApplication GET /api/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	appID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationService.GetApplication(c.Request.Context(), id, appID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Review PATCH /api/applications/:id
func (h *ApplicationHandler) Review(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	appID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	app, err := h.applicationService.Review(c.Request.Context(), id, appID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Withdraw POST /api/applications/:id/withdraw
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	appID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationService.Withdraw(c.Request.Context(), id, appID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// DeleteApplication DELETE /api/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	appID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.applicationService.AdminDelete(c.Request.Context(), id, appID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
