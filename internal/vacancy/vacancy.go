package vacancy

import (
	"fmt"
	"strings"
)

// WorkFormat is the work arrangement declared by the posting employer.
type WorkFormat string

const (
	WorkFormatRemote WorkFormat = "remote"
	WorkFormatHybrid WorkFormat = "hybrid"
	WorkFormatOffice WorkFormat = "office"
)

// EmploymentType is the employment arrangement declared by the posting employer.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentInternship EmploymentType = "internship"
)

// PrimarySkills splits the employer's primary skill list into hard
// requirements and preferences. Missing a required skill vetoes the
// application regardless of the overall score.
type PrimarySkills struct {
	Required  []string `json:"required,omitempty"`
	Preferred []string `json:"preferred,omitempty"`
}

// Vacancy is a structured job-posting requirement record. Every criterion
// except the title is optional; an absent criterion is simply not scored.
type Vacancy struct {
	ID         int64 `json:"id,omitempty"`
	EmployerID int64 `json:"employer_id,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// ExperienceRequired is free text as entered by the employer, for
	// example "от 3 лет". The scorer parses it into a year range.
	ExperienceRequired string `json:"experience_required,omitempty"`

	PrimarySkills    PrimarySkills `json:"primary_skills,omitempty"`
	NiceToHaveSkills []string      `json:"nice_to_have_skills,omitempty"`

	SalaryFrom *int `json:"salary_from,omitempty"`
	SalaryTo   *int `json:"salary_to,omitempty"`

	WorkFormat     WorkFormat     `json:"work_format,omitempty"`
	EmploymentType EmploymentType `json:"employment_type,omitempty"`
}

func (f WorkFormat) valid() bool {
	switch f {
	case WorkFormatRemote, WorkFormatHybrid, WorkFormatOffice:
		return true
	}
	return false
}

func (e EmploymentType) valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentInternship:
		return true
	}
	return false
}

// Validate checks structural invariants of the record. The salary bounds
// form a half-open declaration: an upper bound is meaningless without a
// lower one, and the range must not be inverted.
func (v *Vacancy) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("vacancy title is required")
	}

	if v.SalaryTo != nil && v.SalaryFrom == nil {
		return fmt.Errorf("salary_to requires salary_from to be set")
	}

	if v.SalaryFrom != nil && *v.SalaryFrom < 0 {
		return fmt.Errorf("salary_from must be non-negative, got %d", *v.SalaryFrom)
	}

	if v.SalaryFrom != nil && v.SalaryTo != nil && *v.SalaryTo < *v.SalaryFrom {
		return fmt.Errorf("salary_to (%d) is below salary_from (%d)", *v.SalaryTo, *v.SalaryFrom)
	}

	if v.WorkFormat != "" && !v.WorkFormat.valid() {
		return fmt.Errorf("unknown work format: %s", v.WorkFormat)
	}

	if v.EmploymentType != "" && !v.EmploymentType.valid() {
		return fmt.Errorf("unknown employment type: %s", v.EmploymentType)
	}

	return nil
}
