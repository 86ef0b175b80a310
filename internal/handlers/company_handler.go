package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/services"
	"jobforge_backend/internal/services/dto"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{BaseHandler: base, companyService: companyService}
}

// CreateCompany POST /api/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	var req dto.CreateCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	company, err := h.companyService.CreateCompany(c.Request.Context(), id, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// GetCompany GET /api/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListCompanies GET /api/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// UpdateCompany PATCH /api/companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	company, err := h.companyService.UpdateCompany(c.Request.Context(), id, companyID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// AppointRecruiter POST /api/companies/:id/recruiters
func (h *CompanyHandler) AppointRecruiter(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.MemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.companyService.AppointRecruiter(c.Request.Context(), id, companyID, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRecruiters GET /api/companies/:id/recruiters
func (h *CompanyHandler) ListRecruiters(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	recruiters, err := h.companyService.ListRecruiters(c.Request.Context(), id, companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recruiters)
}

// RemoveRecruiter DELETE /api/companies/:id/recruiters/:userId
func (h *CompanyHandler) RemoveRecruiter(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}
	if err := h.companyService.RemoveRecruiter(c.Request.Context(), id, companyID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeEmployer POST /api/companies/:id/employer
func (h *CompanyHandler) ChangeEmployer(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	var req dto.MemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.companyService.ChangeEmployer(c.Request.Context(), id, companyID, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCompany DELETE /api/companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	companyID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}
	if err := h.companyService.DeleteCompany(c.Request.Context(), id, companyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
