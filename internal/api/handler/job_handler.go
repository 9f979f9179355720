package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/gin-gonic/gin"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	base
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{base: newBase(deps)}
}

// ListJobs handles GET /api/jobs
// Lists active jobs with optional search and enum filters
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	jobs, err := h.store.ListJobs(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.fail(c, "list jobs", err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// RecentJobs handles GET /api/jobs/recent
func (h *JobHandler) RecentJobs(c *gin.Context) {
	var req dto.LimitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	jobs, err := h.store.RecentJobs(c.Request.Context(), req.Or(h.recentLimit))
	if err != nil {
		h.fail(c, "list recent jobs", err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob handles GET /api/jobs/:id
// Inactive jobs are still returned
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.store.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob handles POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	job, err := h.store.CreateJob(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, "create job", err)
		return
	}

	h.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("company_id", job.CompanyID),
	)
	h.publish(c, events.JobCreated, job.ID, job)

	c.JSON(http.StatusCreated, job)
}

// UpdateJob handles PATCH /api/jobs/:id
// A changed companyId must reference an existing company
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	job, err := h.store.UpdateJob(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.fail(c, "update job", err)
		return
	}

	h.publish(c, events.JobUpdated, job.ID, job)

	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/jobs/:id
// Jobs are deactivated, never removed; repeating the call is harmless
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.DeleteJob(c.Request.Context(), id); err != nil {
		h.fail(c, "delete job", err)
		return
	}

	h.publish(c, events.JobDeactivated, id, nil)

	c.Status(http.StatusNoContent)
}
