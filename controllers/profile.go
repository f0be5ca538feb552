package controllers

import (
	"net/http"

	"placement-portal/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

type gradesRequest struct {
	Grades []services.GradeInput `json:"grades" validate:"max=8,unique=Sem,dive"`
}

type internshipsRequest struct {
	Internships []services.InternshipInput `json:"internships" validate:"max=20,dive"`
}

type resumesRequest struct {
	Resumes []services.ResumeInput `json:"resumes" validate:"max=10,dive"`
}

// GET /api/v1/me/profile
func (h *ProfileController) GetMine(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}
	h.writeProfile(c, studentID)
}

// ReplaceMine overwrites the whole profile atomically.
// PUT /api/v1/me/profile
func (h *ProfileController) ReplaceMine(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}

	var req services.ProfileInput
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.profiles.ReplaceProfile(c.Request.Context(), studentID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile saved"})
}

// PATCH /api/v1/me/profile/basic
func (h *ProfileController) UpdateBasic(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}

	var req services.BasicProfileInput
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.profiles.UpdateBasicSection(c.Request.Context(), studentID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /api/v1/me/profile/grades
func (h *ProfileController) UpdateGrades(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}
	h.updateGrades(c, studentID)
}

// PUT /api/v1/me/profile/internships
func (h *ProfileController) UpdateInternships(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}

	var req internshipsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.profiles.UpdateInternshipsSection(c.Request.Context(), studentID, req.Internships); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /api/v1/me/profile/resumes
func (h *ProfileController) UpdateResumes(c *gin.Context) {
	studentID, ok := currentSubject(c)
	if !ok {
		return
	}

	var req resumesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.profiles.UpdateResumesSection(c.Request.Context(), studentID, req.Resumes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/admin/students/:id
func (h *ProfileController) AdminGetStudent(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.writeProfile(c, studentID)
}

// PUT /api/v1/admin/students/:id/grades
func (h *ProfileController) AdminUpdateGrades(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.updateGrades(c, studentID)
}

func (h *ProfileController) updateGrades(c *gin.Context, studentID uint) {
	var req gradesRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.profiles.UpdateGradesSection(c.Request.Context(), studentID, req.Grades); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileController) writeProfile(c *gin.Context, studentID uint) {
	student, err := h.profiles.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student})
}
