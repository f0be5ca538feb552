package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"placement-portal/models"

	"gorm.io/gorm"
)

// ProfileService owns student profile reads and writes.
type ProfileService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, now: time.Now}
}

// GetProfile loads a student with grades, internships and resumes.
func (s *ProfileService) GetProfile(ctx context.Context, studentID uint) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("Grades", func(db *gorm.DB) *gorm.DB { return db.Order("sem ASC") }).
		Preload("Internships", func(db *gorm.DB) *gorm.DB { return db.Order("start_date DESC, id ASC") }).
		Preload("Resumes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&student, studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("student %d", studentID)
		}
		return nil, persistenceError("load student profile", err)
	}
	return &student, nil
}

// ReplaceProfile overwrites the scalar fields and replaces grades,
// internships and resumes in one transaction. The profile must already be
// validated. On any failure nothing of the prior profile changes.
// Grades are stored as given, including sgpi <= 0.
func (s *ProfileService) ReplaceProfile(ctx context.Context, studentID uint, profile *ProfileInput) error {
	if studentID == 0 {
		return invalidArgument("student id must be a positive integer")
	}
	if profile == nil {
		return invalidArgument("profile is required")
	}

	fields, err := profile.BasicProfileInput.columns(s.now())
	if err != nil {
		return err
	}
	grades := buildGrades(studentID, profile.Grades, false)
	internships, err := buildInternships(studentID, profile.Internships)
	if err != nil {
		return err
	}
	resumes := buildResumes(studentID, profile.Resumes)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Student{}).Where("id = ?", studentID).Updates(fields)
		if res.Error != nil {
			return persistenceError("update student profile", res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("student %d", studentID)
		}
		if err := replaceGrades(tx, studentID, grades); err != nil {
			return err
		}
		if err := replaceInternships(tx, studentID, internships); err != nil {
			return err
		}
		return replaceResumes(tx, studentID, resumes)
	})
	if err != nil {
		log.Printf("profile replace rolled back (student=%d): %v", studentID, err)
		return err
	}
	return nil
}

// UpdateBasicSection updates only the scalar fields.
func (s *ProfileService) UpdateBasicSection(ctx context.Context, studentID uint, basic *BasicProfileInput) error {
	if studentID == 0 {
		return invalidArgument("student id must be a positive integer")
	}
	if basic == nil {
		return invalidArgument("profile is required")
	}
	fields, err := basic.columns(s.now())
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", studentID).Updates(fields)
	if res.Error != nil {
		return persistenceError("update student profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("student %d", studentID)
	}
	return nil
}

// UpdateGradesSection replaces the grade rows, silently dropping entries
// with sgpi <= 0 (treated as not yet entered).
func (s *ProfileService) UpdateGradesSection(ctx context.Context, studentID uint, grades []GradeInput) error {
	rows := buildGrades(studentID, grades, true)
	return s.replaceSection(ctx, studentID, "grades", func(tx *gorm.DB) error {
		return replaceGrades(tx, studentID, rows)
	})
}

func (s *ProfileService) UpdateInternshipsSection(ctx context.Context, studentID uint, internships []InternshipInput) error {
	rows, err := buildInternships(studentID, internships)
	if err != nil {
		return err
	}
	return s.replaceSection(ctx, studentID, "internships", func(tx *gorm.DB) error {
		return replaceInternships(tx, studentID, rows)
	})
}

func (s *ProfileService) UpdateResumesSection(ctx context.Context, studentID uint, resumes []ResumeInput) error {
	rows := buildResumes(studentID, resumes)
	return s.replaceSection(ctx, studentID, "resumes", func(tx *gorm.DB) error {
		return replaceResumes(tx, studentID, rows)
	})
}

// replaceSection runs one collection's delete+insert on its own, separate
// from any scalar profile update.
func (s *ProfileService) replaceSection(ctx context.Context, studentID uint, section string, fn func(tx *gorm.DB) error) error {
	if studentID == 0 {
		return invalidArgument("student id must be a positive integer")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Student{}).Where("id = ?", studentID).Count(&count).Error; err != nil {
			return persistenceError("check student", err)
		}
		if count == 0 {
			return notFound("student %d", studentID)
		}
		return fn(tx)
	})
	if err != nil {
		log.Printf("profile %s update failed (student=%d): %v", section, studentID, err)
	}
	return err
}

func replaceGrades(tx *gorm.DB, studentID uint, rows []models.Grade) error {
	if err := tx.Where("student_id = ?", studentID).Delete(&models.Grade{}).Error; err != nil {
		return persistenceError("delete grades", err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return persistenceError("insert grades", err)
	}
	return nil
}

func replaceInternships(tx *gorm.DB, studentID uint, rows []models.Internship) error {
	if err := tx.Where("student_id = ?", studentID).Delete(&models.Internship{}).Error; err != nil {
		return persistenceError("delete internships", err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return persistenceError("insert internships", err)
	}
	return nil
}

func replaceResumes(tx *gorm.DB, studentID uint, rows []models.Resume) error {
	if err := tx.Where("student_id = ?", studentID).Delete(&models.Resume{}).Error; err != nil {
		return persistenceError("delete resumes", err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return persistenceError(fmt.Sprintf("insert %d resumes", len(rows)), err)
	}
	return nil
}
