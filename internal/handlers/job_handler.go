package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/models"
	"jobforge_backend/internal/services"
	"jobforge_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

// CreateJob POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobService.CreateJob(c.Request.Context(), id, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJob GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	job, err := h.jobService.GetJob(c.Request.Context(), h.OptionalIdentity(c), jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs GET /api/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.ListActiveJobs(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// MyJobs GET /api/jobs/my
func (h *JobHandler) MyJobs(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobs, err := h.jobService.ListMyJobs(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListCompanyJobs GET /api/companies/:id/jobs?status=DRAFT,ACTIVE
func (h *JobHandler) ListCompanyJobs(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var statuses []models.JobStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, models.JobStatus(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	jobs, err := h.jobService.ListCompanyJobs(c.Request.Context(), id, companyID, statuses)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// UpdateJob PATCH /api/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobService.UpdateJob(c.Request.Context(), id, jobID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// RepostJob POST /api/jobs/:id/repost
func (h *JobHandler) RepostJob(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	job, err := h.jobService.RepostJob(c.Request.Context(), id, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DuplicateJob POST /api/jobs/:id/duplicate
func (h *JobHandler) DuplicateJob(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.DuplicateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobService.DuplicateJob(c.Request.Context(), id, jobID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// DeleteJob DELETE /api/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.jobService.DeleteJob(c.Request.Context(), id, jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TransferJobs POST /api/companies/:id/jobs/transfer
func (h *JobHandler) TransferJobs(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.TransferJobsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.jobService.TransferJobManagement(c.Request.Context(), id, companyID, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
