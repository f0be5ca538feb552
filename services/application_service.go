package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"placement-portal/models"

	"gorm.io/gorm"
)

// ApplicationService covers applying to jobs and listing applications.
type ApplicationService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db, now: time.Now}
}

type ApplyInput struct {
	JobID     uint
	StudentID uint
	ResumeID  uint
}

// Apply creates a pending application. A student may hold at most one
// application per job; the check lives here, not in the schema.
func (s *ApplicationService) Apply(ctx context.Context, in ApplyInput) (*models.Application, error) {
	if in.JobID == 0 || in.StudentID == 0 {
		return nil, invalidArgument("job and student are required")
	}
	if in.ResumeID == 0 {
		return nil, invalidArgument("resume is required")
	}

	var created models.Application
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, in.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("job %d", in.JobID)
			}
			return persistenceError("load job", err)
		}
		if !job.AcceptsApplications(s.now()) {
			return conflict("job %d is not accepting applications", in.JobID)
		}

		var resumes int64
		if err := tx.Model(&models.Resume{}).
			Where("id = ? AND student_id = ?", in.ResumeID, in.StudentID).
			Count(&resumes).Error; err != nil {
			return persistenceError("check resume", err)
		}
		if resumes == 0 {
			return invalidArgument("resume %d does not belong to the student", in.ResumeID)
		}

		var existing int64
		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND student_id = ?", in.JobID, in.StudentID).
			Count(&existing).Error; err != nil {
			return persistenceError("check existing application", err)
		}
		if existing > 0 {
			return conflict("already applied to job %d", in.JobID)
		}

		resumeID := in.ResumeID
		created = models.Application{
			JobID:     in.JobID,
			StudentID: in.StudentID,
			ResumeID:  &resumeID,
			Status:    models.ApplicationStatusPending,
		}
		if err := tx.Create(&created).Error; err != nil {
			return persistenceError("create application", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ApplicationFilter narrows the admin applications table.
type ApplicationFilter struct {
	Status    string
	JobID     uint
	StudentID uint
	Limit     int
	Offset    int
}

func (s *ApplicationService) ListForAdmin(ctx context.Context, f ApplicationFilter) ([]models.Application, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Application{})
	if status := strings.TrimSpace(f.Status); status != "" {
		q = q.Where("status = ?", status)
	}
	if f.JobID > 0 {
		q = q.Where("job_id = ?", f.JobID)
	}
	if f.StudentID > 0 {
		q = q.Where("student_id = ?", f.StudentID)
	}
	// reusable for the count and the page query
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, persistenceError("count applications", err)
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var items []models.Application
	err := q.Preload("Job").Preload("Job.Company").Preload("Student").Preload("Resume").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, persistenceError("list applications", err)
	}
	return items, total, nil
}

func (s *ApplicationService) ListForStudent(ctx context.Context, studentID uint) ([]models.Application, error) {
	var items []models.Application
	err := s.db.WithContext(ctx).
		Preload("Job").Preload("Job.Company").Preload("Resume").
		Where("student_id = ?", studentID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, persistenceError("list student applications", err)
	}
	return items, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := s.db.WithContext(ctx).
		Preload("Job").Preload("Job.Company").Preload("Student").Preload("Resume").
		First(&app, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("application %d", id)
		}
		return nil, persistenceError("load application", err)
	}
	return &app, nil
}
