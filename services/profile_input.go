package services

import (
	"strings"
	"time"

	"placement-portal/models"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// BasicProfileInput carries the scalar student fields.
type BasicProfileInput struct {
	FirstName         string   `json:"first_name" validate:"required,max=100"`
	MiddleName        string   `json:"middle_name" validate:"max=100"`
	LastName          string   `json:"last_name" validate:"required,max=100"`
	Phone             string   `json:"phone" validate:"required,numeric,min=10,max=15"`
	Gender            string   `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth       string   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Department        string   `json:"department" validate:"required,max=120"`
	GraduationYear    int      `json:"graduation_year" validate:"required,gte=2000,lte=2100"`
	CGPA              float64  `json:"cgpa" validate:"gte=0,lte=10"`
	TenthPercentage   float64  `json:"tenth_percentage" validate:"gte=0,lte=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage" validate:"omitempty,gte=0,lte=100"`
	DiplomaPercentage *float64 `json:"diploma_percentage" validate:"omitempty,gte=0,lte=100"`
	LinkedInURL       string   `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL         string   `json:"github_url" validate:"omitempty,url"`
	PortfolioURL      string   `json:"portfolio_url" validate:"omitempty,url"`
	Skills            []string `json:"skills" validate:"max=50,dive,required,max=64"`
}

type GradeInput struct {
	Sem    int     `json:"sem" validate:"required,min=1,max=8"`
	SGPI   float64 `json:"sgpi" validate:"gte=0,lte=10"`
	IsKT   bool    `json:"is_kt"`
	DeadKT bool    `json:"dead_kt"`
}

type InternshipInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Company     string `json:"company" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Location    string `json:"location" validate:"max=200"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type ResumeInput struct {
	Title string `json:"title" validate:"required,max=200"`
	Link  string `json:"link" validate:"required,url"`
}

// ProfileInput is a complete profile submission from the student app.
type ProfileInput struct {
	BasicProfileInput
	Grades      []GradeInput      `json:"grades" validate:"max=8,unique=Sem,dive"`
	Internships []InternshipInput `json:"internships" validate:"max=20,dive"`
	Resumes     []ResumeInput     `json:"resumes" validate:"max=10,dive"`
}

func (b *BasicProfileInput) columns(now time.Time) (map[string]interface{}, error) {
	dob, err := parseOptionalDate("date_of_birth", b.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"first_name":         strings.TrimSpace(b.FirstName),
		"middle_name":        strings.TrimSpace(b.MiddleName),
		"last_name":          strings.TrimSpace(b.LastName),
		"phone":              strings.TrimSpace(b.Phone),
		"gender":             strings.TrimSpace(b.Gender),
		"date_of_birth":      dob,
		"department":         strings.TrimSpace(b.Department),
		"graduation_year":    b.GraduationYear,
		"cgpa":               roundTo2(b.CGPA),
		"tenth_percentage":   roundTo2(b.TenthPercentage),
		"twelfth_percentage": roundPtr(b.TwelfthPercentage),
		"diploma_percentage": roundPtr(b.DiplomaPercentage),
		"linkedin_url":       strings.TrimSpace(b.LinkedInURL),
		"github_url":         strings.TrimSpace(b.GithubURL),
		"portfolio_url":      strings.TrimSpace(b.PortfolioURL),
		"skills":             datatypes.JSONSlice[string](normalizeSkills(b.Skills)),
		"updated_at":         now,
	}, nil
}

// buildGrades maps inputs to rows. dropUnset removes entries with sgpi <= 0,
// which the section editor uses for "not yet entered".
func buildGrades(studentID uint, in []GradeInput, dropUnset bool) []models.Grade {
	out := make([]models.Grade, 0, len(in))
	for _, g := range in {
		if dropUnset && g.SGPI <= 0 {
			continue
		}
		out = append(out, models.Grade{
			StudentID: studentID,
			Sem:       g.Sem,
			SGPI:      roundTo2(g.SGPI),
			IsKT:      g.IsKT,
			DeadKT:    g.DeadKT,
		})
	}
	return out
}

func buildInternships(studentID uint, in []InternshipInput) ([]models.Internship, error) {
	out := make([]models.Internship, 0, len(in))
	for i, item := range in {
		start, err := parseOptionalDate("internships.start_date", item.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseOptionalDate("internships.end_date", item.EndDate)
		if err != nil {
			return nil, err
		}
		if start != nil && end != nil && end.Before(*start) {
			return nil, invalidArgument("internship %d ends before it starts", i+1)
		}
		out = append(out, models.Internship{
			StudentID:   studentID,
			Title:       strings.TrimSpace(item.Title),
			Company:     strings.TrimSpace(item.Company),
			Description: strings.TrimSpace(item.Description),
			Location:    strings.TrimSpace(item.Location),
			StartDate:   start,
			EndDate:     end,
		})
	}
	return out, nil
}

func buildResumes(studentID uint, in []ResumeInput) []models.Resume {
	out := make([]models.Resume, 0, len(in))
	for _, item := range in {
		out = append(out, models.Resume{
			StudentID: studentID,
			Title:     strings.TrimSpace(item.Title),
			Link:      strings.TrimSpace(item.Link),
		})
	}
	return out
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalidArgument("%s must be YYYY-MM-DD", field)
	}
	return &t, nil
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func roundTo2(v float64) float64 {
	if v < 0 {
		return -roundTo2(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := roundTo2(*v)
	return &r
}
