package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Student is the profile owned by a student account.
type Student struct {
	ID         uint    `gorm:"primaryKey;column:id" json:"id"`
	Email      *string `gorm:"column:email;type:varchar(191);uniqueIndex" json:"email"`
	RollNumber string  `gorm:"column:roll_number;type:varchar(64);uniqueIndex;not null" json:"roll_number"`
	Password   string  `gorm:"column:password" json:"-"`

	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	MiddleName  string     `gorm:"column:middle_name" json:"middle_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Phone       string     `gorm:"column:phone" json:"phone"`
	Gender      string     `gorm:"column:gender" json:"gender"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth,omitempty"`

	Department        string   `gorm:"column:department" json:"department"`
	GraduationYear    int      `gorm:"column:graduation_year" json:"graduation_year"`
	CGPA              float64  `gorm:"column:cgpa;type:decimal(4,2)" json:"cgpa"`
	TenthPercentage   float64  `gorm:"column:tenth_percentage;type:decimal(5,2)" json:"tenth_percentage"`
	TwelfthPercentage *float64 `gorm:"column:twelfth_percentage;type:decimal(5,2)" json:"twelfth_percentage,omitempty"`
	DiplomaPercentage *float64 `gorm:"column:diploma_percentage;type:decimal(5,2)" json:"diploma_percentage,omitempty"`

	LinkedInURL  string                      `gorm:"column:linkedin_url" json:"linkedin_url"`
	GithubURL    string                      `gorm:"column:github_url" json:"github_url"`
	PortfolioURL string                      `gorm:"column:portfolio_url" json:"portfolio_url"`
	Skills       datatypes.JSONSlice[string] `gorm:"column:skills" json:"skills"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Grades      []Grade      `gorm:"foreignKey:StudentID" json:"grades,omitempty"`
	Internships []Internship `gorm:"foreignKey:StudentID" json:"internships,omitempty"`
	Resumes     []Resume     `gorm:"foreignKey:StudentID" json:"resumes,omitempty"`
}

// DisplayName joins the name parts, falling back to the roll number.
func (s *Student) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.MiddleName, s.LastName} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(s.RollNumber)
	}
	return strings.Join(parts, " ")
}

// EmailAddress returns the trimmed email or "" when none is on file.
func (s *Student) EmailAddress() string {
	if s.Email == nil {
		return ""
	}
	return strings.TrimSpace(*s.Email)
}

// Grade is one semester result; (student_id, sem) is the key.
type Grade struct {
	StudentID uint    `gorm:"primaryKey;autoIncrement:false;column:student_id" json:"student_id"`
	Sem       int     `gorm:"primaryKey;autoIncrement:false;column:sem" json:"sem"`
	SGPI      float64 `gorm:"column:sgpi;type:decimal(4,2)" json:"sgpi"`
	IsKT      bool    `gorm:"column:is_kt" json:"is_kt"`
	DeadKT    bool    `gorm:"column:dead_kt" json:"dead_kt"`
}

type Internship struct {
	ID          uint       `gorm:"primaryKey;column:id" json:"id"`
	StudentID   uint       `gorm:"column:student_id;not null;index" json:"student_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Company     string     `gorm:"column:company" json:"company"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Location    string     `gorm:"column:location" json:"location"`
	StartDate   *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
}

type Resume struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	StudentID uint   `gorm:"column:student_id;not null;index" json:"student_id"`
	Title     string `gorm:"column:title" json:"title"`
	Link      string `gorm:"column:link" json:"link"`
}

// TableName overrides
func (Student) TableName() string {
	return "students"
}

func (Grade) TableName() string {
	return "grades"
}

func (Internship) TableName() string {
	return "internships"
}

func (Resume) TableName() string {
	return "resumes"
}
