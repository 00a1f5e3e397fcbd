package resume

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Contact groups the ways to reach a candidate. Every field is optional.
type Contact struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
}

// Education describes the single education record extracted from a resume.
type Education struct {
	Year         string `json:"year,omitempty"`
	Institution  string `json:"institution,omitempty"`
	City         string `json:"city,omitempty"`
	Faculty      string `json:"faculty,omitempty"`
	Degree       string `json:"degree,omitempty"`
	DegreeStatus string `json:"degree_status,omitempty"`
}

// Course is one entry of the professional-development section.
type Course struct {
	Year  string `json:"year,omitempty"`
	Name  string `json:"name,omitempty"`
	Place string `json:"place,omitempty"`
}

// Salary is the candidate's desired compensation.
type Salary struct {
	Amount   *int   `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// ExperienceEntry is one job stint that passed the relevance filter.
type ExperienceEntry struct {
	Company string `json:"company,omitempty"`
	Months  int    `json:"months"`
}

// Profile is the structured candidate record extracted from free-form
// resume text. Extraction is best-effort: any field may be missing, and a
// missing field must never break downstream scoring.
type Profile struct {
	FullName    string  `json:"full_name,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Age         *int    `json:"age,omitempty"`
	DateOfBirth string  `json:"date_of_birth,omitempty"`
	Contact     Contact `json:"contact,omitempty"`
	Citizenship string  `json:"citizenship,omitempty"`
	WorkPermit  string  `json:"work_permit,omitempty"`

	// Busyness and WorkSchedule hold the declarations as written in the
	// resume; the preferred_* fields below are derived from them.
	Busyness     string `json:"busyness,omitempty"`
	WorkSchedule string `json:"work_schedule,omitempty"`

	// TotalExperienceMonths comes from the section header ("Опыт работы —
	// 5 лет 3 месяца"); the relevant fields accumulate only stints that
	// matched the relevance markers.
	TotalExperienceMonths    *int              `json:"total_experience_months,omitempty"`
	RelevantExperienceMonths int               `json:"relevant_experience_months,omitempty"`
	RelevantExperience       []ExperienceEntry `json:"relevant_experience,omitempty"`

	Education *Education `json:"education,omitempty"`
	Courses   []Course   `json:"courses,omitempty"`
	Skills    []string   `json:"skills,omitempty"`

	DesiredSalary *Salary `json:"desired_salary,omitempty"`

	// Derived enum values (see vacancy.WorkFormat / vacancy.EmploymentType).
	// Empty means the candidate did not state a preference.
	PreferredWorkFormat     string `json:"preferred_work_format,omitempty"`
	PreferredEmploymentType string `json:"preferred_employment_type,omitempty"`
}

// Empty reports whether extraction produced nothing the scorer could use.
func (p *Profile) Empty() bool {
	if p == nil {
		return true
	}
	return p.FullName == "" &&
		p.Contact == (Contact{}) &&
		p.TotalExperienceMonths == nil &&
		p.Education == nil &&
		len(p.Courses) == 0 &&
		len(p.Skills) == 0 &&
		p.DesiredSalary == nil
}

// ToMap renders the profile as a JSON-compatible nested structure, the
// shape persisted by the record store.
func (p *Profile) ToMap() (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal profile map: %w", err)
	}
	return m, nil
}

// FromMap decodes a stored loosely-typed profile document back into a
// Profile. Numbers arrive as float64 from JSON, hence the weak decoding.
func FromMap(m map[string]any) (*Profile, error) {
	var profile Profile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return nil, fmt.Errorf("build profile decoder: %w", err)
	}

	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}
