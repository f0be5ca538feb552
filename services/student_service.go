package services

import (
	"context"
	"errors"
	"strings"

	"placement-portal/models"
	"placement-portal/utils"

	"gorm.io/gorm"
)

// StudentService handles student accounts.
type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// RegisterInput is the signup form of the student app.
type RegisterInput struct {
	RollNumber string `json:"roll_number" validate:"required,alphanum,max=32"`
	Email      string `json:"email" validate:"omitempty,email,max=191"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	FirstName  string `json:"first_name" validate:"max=100"`
	LastName   string `json:"last_name" validate:"max=100"`
}

// Register creates a student account. Roll number and email must be unused.
func (s *StudentService) Register(ctx context.Context, in RegisterInput) (*models.Student, error) {
	roll := strings.ToUpper(strings.TrimSpace(in.RollNumber))
	if roll == "" {
		return nil, invalidArgument("roll number is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	student := models.Student{
		RollNumber: roll,
		Password:   hashed,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
	}
	if email != "" {
		student.Email = &email
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		q := tx.Model(&models.Student{}).Where("roll_number = ?", roll)
		if email != "" {
			q = q.Or("email = ?", email)
		}
		if err := q.Count(&count).Error; err != nil {
			return persistenceError("check existing student", err)
		}
		if count > 0 {
			return conflict("roll number or email already registered")
		}
		if err := tx.Create(&student).Error; err != nil {
			return persistenceError("create student", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Authenticate checks a roll number (or email) and password.
func (s *StudentService) Authenticate(ctx context.Context, login, password string) (*models.Student, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrUnauthorized
	}

	var student models.Student
	err := s.db.WithContext(ctx).
		Where("roll_number = ? OR email = ?", strings.ToUpper(login), strings.ToLower(login)).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, persistenceError("load student", err)
	}
	if !utils.CheckPasswordHash(password, student.Password) {
		return nil, ErrUnauthorized
	}
	return &student, nil
}
