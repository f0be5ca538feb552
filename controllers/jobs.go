package controllers

import (
	"net/http"

	"placement-portal/services"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	jobs *services.JobService
}

func NewJobController(jobs *services.JobService) *JobController {
	return &JobController{jobs: jobs}
}

// ListOpen returns postings students can still apply to.
// GET /api/v1/jobs
func (h *JobController) ListOpen(c *gin.Context) {
	h.list(c, true)
}

// GET /api/v1/admin/jobs
func (h *JobController) AdminList(c *gin.Context) {
	h.list(c, false)
}

func (h *JobController) list(c *gin.Context, onlyOpen bool) {
	jobs, err := h.jobs.ListJobs(c.Request.Context(), onlyOpen)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

// GET /api/v1/jobs/:id
func (h *JobController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// POST /api/v1/admin/jobs
func (h *JobController) Create(c *gin.Context) {
	var req services.JobInput
	if !bindAndValidate(c, &req) {
		return
	}
	job, err := h.jobs.CreateJob(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "job": job})
}

// POST /api/v1/admin/jobs/:id/close
func (h *JobController) Close(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.jobs.CloseJob(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/admin/companies
func (h *JobController) ListCompanies(c *gin.Context) {
	companies, err := h.jobs.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// POST /api/v1/admin/companies
func (h *JobController) CreateCompany(c *gin.Context) {
	var req services.CompanyInput
	if !bindAndValidate(c, &req) {
		return
	}
	company, err := h.jobs.CreateCompany(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "company": company})
}
