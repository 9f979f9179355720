package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	base
}

// NewCompanyHandler creates a new CompanyHandler instance
func NewCompanyHandler(deps *Dependencies) *CompanyHandler {
	return &CompanyHandler{base: newBase(deps)}
}

// ListCompanies handles GET /api/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var req dto.ListCompaniesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	companies, err := h.store.ListCompanies(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.fail(c, "list companies", err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

// FeaturedCompanies handles GET /api/companies/featured
// Returns the most followed companies first
func (h *CompanyHandler) FeaturedCompanies(c *gin.Context) {
	var req dto.LimitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	companies, err := h.store.FeaturedCompanies(c.Request.Context(), req.Or(h.featuredLimit))
	if err != nil {
		h.fail(c, "list featured companies", err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetCompany handles GET /api/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.store.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get company", err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// CompanyJobs handles GET /api/companies/:id/jobs
// Lists the active jobs of a company; an unknown company simply has none
func (h *CompanyHandler) CompanyJobs(c *gin.Context) {
	jobs, err := h.store.JobsByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "list company jobs", err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// CreateCompany handles POST /api/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	company, err := h.store.CreateCompany(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, "create company", err)
		return
	}

	h.logger.Info("Company created",
		slog.String("company_id", company.ID),
		slog.String("name", company.Name),
	)
	h.publish(c, events.CompanyCreated, company.ID, company)

	c.JSON(http.StatusCreated, company)
}

// UpdateCompany handles PATCH /api/companies/:id
// Server computed fields in the body are ignored
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	company, err := h.store.UpdateCompany(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.fail(c, "update company", err)
		return
	}

	h.publish(c, events.CompanyUpdated, company.ID, company)

	c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/companies/:id
// Deactivates the company's jobs, then removes the company
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id := c.Param("id")

	deactivated, err := h.store.DeleteCompany(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "delete company", err)
		return
	}

	h.logger.Info("Company deleted",
		slog.String("company_id", id),
		slog.Int("deactivated_jobs", len(deactivated)),
	)
	h.publish(c, events.CompanyDeleted, id, gin.H{"deactivatedJobIds": deactivated})

	c.Status(http.StatusNoContent)
}
