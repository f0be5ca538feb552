package services

import (
	"context"
	"errors"
	"strings"

	"placement-portal/models"
	"placement-portal/utils"

	"gorm.io/gorm"
)

// AdminService handles placement-cell accounts.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrUnauthorized
	}

	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, persistenceError("load admin", err)
	}
	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrUnauthorized
	}
	return &admin, nil
}

// EnsureAdmin creates the admin or resets its name and password.
func (s *AdminService) EnsureAdmin(ctx context.Context, email, name, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalidArgument("admin email is required")
	}
	if len(password) < 8 {
		return nil, invalidArgument("admin password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var admin models.Admin
	err = s.db.WithContext(ctx).
		Where(models.Admin{Email: email}).
		Assign(models.Admin{Name: strings.TrimSpace(name), Password: hashed}).
		FirstOrCreate(&admin).Error
	if err != nil {
		return nil, persistenceError("save admin", err)
	}
	return &admin, nil
}
