package controllers

import (
	"net/http"

	"placement-portal/models"
	"placement-portal/services"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	applications *services.ApplicationService
	statuses     *services.StatusService
}

func NewApplicationController(applications *services.ApplicationService, statuses *services.StatusService) *ApplicationController {
	return &ApplicationController{applications: applications, statuses: statuses}
}

type updateStatusRequest struct {
	Status    string `json:"status"`
	StudentID *int64 `json:"studentId"`
	Notify    *bool  `json:"notify"`
}

type bulkStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required,min=1"`
	Status string  `json:"status"`
	Notify *bool   `json:"notify"`
}

// UpdateStatus changes one application's status.
// PATCH /api/v1/admin/applications/:id/status
func (h *ApplicationController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	in := services.UpdateStatusInput{
		ApplicationID: id,
		Status:        req.Status,
		Notify:        req.Notify == nil || *req.Notify,
	}
	// a non-positive hint falls back to the application's own student
	if req.StudentID != nil && *req.StudentID > 0 {
		in.StudentID = uint(*req.StudentID)
	}

	res, err := h.statuses.UpdateStatus(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    res.Updated,
		"notified":   res.Notified,
		"emailError": res.EmailError,
	})
}

// BulkUpdateStatus applies one status to many applications in one request.
// POST /api/v1/admin/applications/status/bulk
func (h *ApplicationController) BulkUpdateStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ids must be a non-empty list"})
		return
	}

	// non-positive ids are reported per item as failed updates
	res, err := h.statuses.BulkUpdateStatus(c.Request.Context(), services.BulkStatusInput{
		ApplicationIDs: req.IDs,
		Status:         req.Status,
		Notify:         req.Notify == nil || *req.Notify,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"updatedCount":  res.UpdatedCount,
		"notifiedCount": res.NotifiedCount,
		"errorCount":    res.ErrorCount,
		"failedCount":   res.FailedCount,
		"items":         res.Items,
	})
}

// AdminList returns the applications table.
// GET /api/v1/admin/applications?status=&job_id=&student_id=&limit=&offset=
func (h *ApplicationController) AdminList(c *gin.Context) {
	items, total, err := h.applications.ListForAdmin(c.Request.Context(), services.ApplicationFilter{
		Status:    c.Query("status"),
		JobID:     parseUintQuery(c, "job_id"),
		StudentID: parseUintQuery(c, "student_id"),
		Limit:     parseIntQuery(c, "limit", 100),
		Offset:    parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": items,
		"total":        total,
		"statuses":     models.ApplicationStatuses,
	})
}

// GET /api/v1/admin/applications/:id
func (h *ApplicationController) AdminGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	app, err := h.applications.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

type applyRequest struct {
	ResumeID uint `json:"resume_id" binding:"required"`
}

// Apply submits the current student's application to a job.
// POST /api/v1/jobs/:id/apply
func (h *ApplicationController) Apply(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "resume_id is required"})
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), services.ApplyInput{
		JobID:     jobID,
		StudentID: studentID,
		ResumeID:  req.ResumeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// GET /api/v1/me/applications
func (h *ApplicationController) ListMine(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}
	items, err := h.applications.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": items, "total": len(items)})
}
