package models

import (
	"strings"
	"time"
)

// Application statuses offered by the admin console.
const (
	ApplicationStatusPending          = "pending"
	ApplicationStatusInReview         = "in review"
	ApplicationStatusOnlineAssessment = "Online Assessment"
	ApplicationStatusInterviewRound   = "Interview round"
	ApplicationStatusOfferGiven       = "offer given"
	ApplicationStatusAccepted         = "accepted"
	ApplicationStatusRejected         = "rejected"
)

// ApplicationStatuses lists the statuses in pipeline order.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusInReview,
	ApplicationStatusOnlineAssessment,
	ApplicationStatusInterviewRound,
	ApplicationStatusOfferGiven,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// IsKnownStatus reports whether status is one of ApplicationStatuses (exact match).
// The status column itself is free-form; this only drives UI hints and filters.
func IsKnownStatus(status string) bool {
	status = strings.TrimSpace(status)
	for _, known := range ApplicationStatuses {
		if known == status {
			return true
		}
	}
	return false
}

// Application is a student's submission for one job.
type Application struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	JobID     uint      `gorm:"column:job_id;not null;index:idx_applications_job_student" json:"job_id"`
	StudentID uint      `gorm:"column:student_id;not null;index:idx_applications_job_student;index" json:"student_id"`
	ResumeID  *uint     `gorm:"column:resume_id" json:"resume_id"`
	Status    string    `gorm:"column:status;type:varchar(64);not null;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Job     *Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Resume  *Resume  `gorm:"foreignKey:ResumeID;constraint:OnDelete:SET NULL" json:"resume,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
