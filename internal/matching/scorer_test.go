package matching

import (
	"encoding/json"
	"testing"

	"github.com/ashmnv/hh-screener/internal/resume"
	"github.com/ashmnv/hh-screener/internal/vacancy"
)

func TestEvaluateSubstringSkillMatch(t *testing.T) {
	v := &vacancy.Vacancy{
		Title:         "Python Developer",
		PrimarySkills: vacancy.PrimarySkills{Required: []string{"Python"}},
	}
	p := &resume.Profile{Skills: []string{"Python developer"}}

	result := Evaluate(p, v)

	if len(result.Details.MissingMandatorySkills) != 0 {
		t.Fatalf("unexpected missing skills: %v", result.Details.MissingMandatorySkills)
	}
	if len(result.Details.SkillsRequired) != 1 {
		t.Fatalf("expected 1 required skill entry, got %d", len(result.Details.SkillsRequired))
	}
	got := result.Details.SkillsRequired[0]
	if !got.Matched || got.Score != weightSkillRequired {
		t.Fatalf("required skill not matched: %+v", got)
	}
	if got.MatchedWith != "python developer" {
		t.Fatalf("unexpected matched_with: %q", got.MatchedWith)
	}
	if result.InitialStatus != StatusAdvanceToReview {
		t.Fatalf("unexpected status: %q", result.InitialStatus)
	}
}

func TestEvaluateExperienceWithinDeficit(t *testing.T) {
	v := &vacancy.Vacancy{Title: "Go Developer", ExperienceRequired: "от 3 лет"}
	total := 34
	p := &resume.Profile{TotalExperienceMonths: &total}

	result := Evaluate(p, v)

	if !result.Details.Experience.Matched {
		t.Fatalf("34 of 36 months must pass the deficit tolerance: %+v", result.Details.Experience)
	}
	if result.Details.Experience.Score != weightExperience {
		t.Fatalf("expected full experience weight, got %d", result.Details.Experience.Score)
	}
	if result.InitialStatus != StatusAdvanceToReview {
		t.Fatalf("unexpected status: %q", result.InitialStatus)
	}
}

func TestEvaluateExperienceBeyondDeficit(t *testing.T) {
	v := &vacancy.Vacancy{Title: "Go Developer", ExperienceRequired: "от 3 лет"}

	for _, months := range []int{33, 20} {
		total := months
		p := &resume.Profile{TotalExperienceMonths: &total}

		result := Evaluate(p, v)

		if result.Details.Experience.Matched {
			t.Fatalf("%d of 36 months must fail the experience criterion", months)
		}
		// Priority rule: an unmet nonzero minimum rejects outright.
		if result.InitialStatus != StatusReject {
			t.Fatalf("expected reject for %d months, got %q", months, result.InitialStatus)
		}
	}
}

func TestEvaluateSalaryAsymmetricLeniency(t *testing.T) {
	from, to := 100000, 150000
	v := &vacancy.Vacancy{Title: "Go Developer", SalaryFrom: &from, SalaryTo: &to}

	below := 90000
	p := &resume.Profile{DesiredSalary: &resume.Salary{Amount: &below}}

	result := Evaluate(p, v)

	if !result.Details.Salary.Matched || result.Details.Salary.Score != weightSalary {
		t.Fatalf("expectation below the range must still match: %+v", result.Details.Salary)
	}

	above := 200000
	p = &resume.Profile{DesiredSalary: &resume.Salary{Amount: &above}}

	result = Evaluate(p, v)

	if result.Details.Salary.Matched {
		t.Fatalf("expectation above the range must fail: %+v", result.Details.Salary)
	}
}

func TestEvaluateNothingToScore(t *testing.T) {
	v := &vacancy.Vacancy{Title: "Go Developer"}
	p := &resume.Profile{Skills: []string{"Go", "SQL"}}

	result := Evaluate(p, v)

	if result.Details.MaxPossibleScore != 0 || result.Details.AchievedScore != 0 {
		t.Fatalf("unexpected scoreboard: %d/%d", result.Details.AchievedScore, result.Details.MaxPossibleScore)
	}
	if result.MatchScore != 0 {
		t.Fatalf("unexpected percentage: %v", result.MatchScore)
	}
	if result.InitialStatus != StatusNeedsManualReview {
		t.Fatalf("unexpected status: %q", result.InitialStatus)
	}
}

func TestEvaluateBenefitOfDoubt(t *testing.T) {
	from := 120000
	v := &vacancy.Vacancy{
		Title:          "Go Developer",
		SalaryFrom:     &from,
		WorkFormat:     vacancy.WorkFormatRemote,
		EmploymentType: vacancy.EmploymentFullTime,
	}
	// The candidate states none of the three preferences.
	p := &resume.Profile{FullName: "Иванов Иван"}

	result := Evaluate(p, v)

	for name, c := range map[string]Criterion{
		"salary":          result.Details.Salary,
		"work format":     result.Details.WorkFormat,
		"employment type": result.Details.EmploymentType,
	} {
		if !c.Matched || c.Score != c.Possible || c.Possible == 0 {
			t.Fatalf("%s must get the benefit of the doubt: %+v", name, c)
		}
	}
	if result.MatchScore != 100 {
		t.Fatalf("unexpected percentage: %v", result.MatchScore)
	}
	if result.InitialStatus != StatusAdvanceToReview {
		t.Fatalf("unexpected status: %q", result.InitialStatus)
	}
}

func TestEvaluateMandatorySkillVeto(t *testing.T) {
	from := 120000
	v := &vacancy.Vacancy{
		Title:          "Go Developer",
		PrimarySkills:  vacancy.PrimarySkills{Required: []string{"Go", "Kubernetes"}},
		SalaryFrom:     &from,
		WorkFormat:     vacancy.WorkFormatRemote,
		EmploymentType: vacancy.EmploymentFullTime,
	}
	p := &resume.Profile{
		Skills:                  []string{"Go"},
		PreferredWorkFormat:     "remote",
		PreferredEmploymentType: "full_time",
	}

	result := Evaluate(p, v)

	// 35 of 50 points: the percentage clears the threshold, yet the
	// missing mandatory skill still vetoes the application.
	if result.MatchScore < MatchThresholdPercent {
		t.Fatalf("test setup broken, expected percentage above threshold, got %v", result.MatchScore)
	}
	if result.InitialStatus != StatusReject {
		t.Fatalf("missing mandatory skill must reject, got %q", result.InitialStatus)
	}
	if len(result.Details.MissingMandatorySkills) != 1 || result.Details.MissingMandatorySkills[0] != "Kubernetes" {
		t.Fatalf("unexpected missing skills: %v", result.Details.MissingMandatorySkills)
	}
}

func TestEvaluateEmptyProfile(t *testing.T) {
	v := &vacancy.Vacancy{Title: "Go Developer"}

	for _, p := range []*resume.Profile{nil, {}} {
		result := Evaluate(p, v)

		if result.InitialStatus != StatusNeedsManualReview {
			t.Fatalf("unexpected status: %q", result.InitialStatus)
		}
		if result.MatchScore != 0 {
			t.Fatalf("unexpected score: %v", result.MatchScore)
		}
		if result.ErrorMessage == "" {
			t.Fatalf("expected error message for empty profile")
		}
		if result.Details != nil {
			t.Fatalf("expected no details for empty profile")
		}
	}
}

func TestEvaluatePercentageBounds(t *testing.T) {
	from := 100000
	total := 34
	profiles := []*resume.Profile{
		{Skills: []string{"Go"}},
		{FullName: "Иванов", TotalExperienceMonths: &total},
		{Skills: []string{"Go", "SQL", "Docker"}, PreferredWorkFormat: "office"},
	}
	vacancies := []*vacancy.Vacancy{
		{Title: "A"},
		{Title: "B", ExperienceRequired: "от 3 лет", SalaryFrom: &from},
		{Title: "C", PrimarySkills: vacancy.PrimarySkills{Required: []string{"Rust"}, Preferred: []string{"Go"}}, WorkFormat: vacancy.WorkFormatRemote},
	}

	for _, p := range profiles {
		for _, v := range vacancies {
			result := Evaluate(p, v)
			if result.MatchScore < 0 || result.MatchScore > 100 {
				t.Fatalf("percentage out of bounds: %v", result.MatchScore)
			}
			if result.Details.MatchPercentage != result.MatchScore {
				t.Fatalf("details percentage diverges from score: %v vs %v", result.Details.MatchPercentage, result.MatchScore)
			}
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	from, to := 100000, 150000
	total := 40
	desired := 120000
	v := &vacancy.Vacancy{
		Title:              "Go Developer",
		ExperienceRequired: "от 3 лет",
		PrimarySkills:      vacancy.PrimarySkills{Required: []string{"Go"}, Preferred: []string{"PostgreSQL"}},
		NiceToHaveSkills:   []string{"Kubernetes"},
		SalaryFrom:         &from,
		SalaryTo:           &to,
		WorkFormat:         vacancy.WorkFormatRemote,
		EmploymentType:     vacancy.EmploymentFullTime,
	}
	p := &resume.Profile{
		FullName:                "Иванов Иван",
		TotalExperienceMonths:   &total,
		Skills:                  []string{"Go", "PostgreSQL", "Docker"},
		DesiredSalary:           &resume.Salary{Amount: &desired},
		PreferredWorkFormat:     "remote",
		PreferredEmploymentType: "full_time",
	}

	first, err := json.Marshal(Evaluate(p, v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := json.Marshal(Evaluate(p, v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("evaluation is not deterministic:\n%s\n%s", first, second)
	}
}
