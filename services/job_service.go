package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"placement-portal/models"

	"gorm.io/gorm"
)

// JobService manages companies and job postings.
type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

type CompanyInput struct {
	Name        string `json:"name" validate:"required,max=191"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=5000"`
}

type JobInput struct {
	CompanyID   uint       `json:"company_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=10000"`
	Location    string     `json:"location" validate:"max=200"`
	CTC         float64    `json:"ctc" validate:"gte=0"`
	MinCGPA     float64    `json:"min_cgpa" validate:"gte=0,lte=10"`
	Deadline    *time.Time `json:"deadline"`
}

func (s *JobService) CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidArgument("company name is required")
	}

	company := models.Company{
		Name:        name,
		Website:     strings.TrimSpace(in.Website),
		Description: strings.TrimSpace(in.Description),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Company{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return persistenceError("check company", err)
		}
		if count > 0 {
			return conflict("company %q already exists", name)
		}
		if err := tx.Create(&company).Error; err != nil {
			return persistenceError("create company", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *JobService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, persistenceError("list companies", err)
	}
	return companies, nil
}

func (s *JobService) CreateJob(ctx context.Context, in JobInput) (*models.Job, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalidArgument("job title is required")
	}

	var company models.Company
	if err := s.db.WithContext(ctx).First(&company, in.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("company %d", in.CompanyID)
		}
		return nil, persistenceError("load company", err)
	}

	job := models.Job{
		CompanyID:   company.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		CTC:         roundTo2(in.CTC),
		MinCGPA:     roundTo2(in.MinCGPA),
		Deadline:    in.Deadline,
		Status:      models.JobStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, persistenceError("create job", err)
	}
	job.Company = &company
	return &job, nil
}

// ListJobs returns postings newest first; onlyOpen hides closed ones.
func (s *JobService) ListJobs(ctx context.Context, onlyOpen bool) ([]models.Job, error) {
	q := s.db.WithContext(ctx).Preload("Company").Order("created_at DESC, id DESC")
	if onlyOpen {
		q = q.Where("status = ?", models.JobStatusOpen)
	}
	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, persistenceError("list jobs", err)
	}
	return jobs, nil
}

func (s *JobService) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).Preload("Company").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("job %d", id)
		}
		return nil, persistenceError("load job", err)
	}
	return &job, nil
}

// CloseJob stops a posting from accepting applications.
func (s *JobService) CloseJob(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.JobStatusClosed, "updated_at": time.Now()})
	if res.Error != nil {
		return persistenceError("close job", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("job %d", id)
	}
	return nil
}
