package models

import "time"

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Company struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(191);uniqueIndex;not null" json:"name"`
	Website     string    `gorm:"column:website" json:"website"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// Job is a posting students can apply to.
type Job struct {
	ID          uint       `gorm:"primaryKey;column:id" json:"id"`
	CompanyID   uint       `gorm:"column:company_id;not null;index" json:"company_id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Location    string     `gorm:"column:location" json:"location"`
	CTC         float64    `gorm:"column:ctc;type:decimal(10,2)" json:"ctc"`
	MinCGPA     float64    `gorm:"column:min_cgpa;type:decimal(4,2)" json:"min_cgpa"`
	Deadline    *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	Status      string     `gorm:"column:status;type:varchar(16);not null;default:open" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// AcceptsApplications reports whether the job is open and its deadline has not passed.
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobStatusOpen {
		return false
	}
	return j.Deadline == nil || now.Before(*j.Deadline)
}

// TableName overrides
func (Company) TableName() string {
	return "companies"
}

func (Job) TableName() string {
	return "jobs"
}
