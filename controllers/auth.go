package controllers

import (
	"errors"
	"net/http"
	"time"

	"placement-portal/middleware"
	"placement-portal/services"
	"placement-portal/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	students  *services.StudentService
	admins    *services.AdminService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthController(students *services.StudentService, admins *services.AdminService, jwtSecret string, tokenTTL time.Duration) *AuthController {
	return &AuthController{students: students, admins: admins, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type studentLoginRequest struct {
	Login    string `json:"login" binding:"required"` // roll number or email
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles admin console authentication
func (h *AuthController) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	admin, err := h.admins.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, admin.ID, admin.Email, middleware.RoleAdmin, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"admin":   admin,
		"message": "Login successful",
	})
}

// StudentLogin handles student app authentication
func (h *AuthController) StudentLogin(c *gin.Context) {
	var req studentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	req.Login = utils.SanitizeInput(req.Login)
	student, err := h.students.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, student.ID, student.EmailAddress(), middleware.RoleStudent, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"student": student,
		"message": "Login successful",
	})
}

// StudentSignup creates a student account and logs it in.
func (h *AuthController) StudentSignup(c *gin.Context) {
	var req services.RegisterInput
	if !bindAndValidate(c, &req) {
		return
	}

	student, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, student.ID, student.EmailAddress(), middleware.RoleStudent, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"student": student,
		"message": "Signup successful",
	})
}

func (h *AuthController) loginFailed(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}
	respondError(c, err)
}
