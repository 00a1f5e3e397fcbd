package matching

import (
	"fmt"
	"strings"

	"github.com/ashmnv/hh-screener/internal/resume"
	"github.com/ashmnv/hh-screener/internal/vacancy"
)

// Criterion weights. Skills are weighted per declared skill; the other
// criteria are weighted once. Every criterion is all-or-nothing.
const (
	weightExperience     = 20
	weightSkillRequired  = 15
	weightSkillPreferred = 7
	weightSkillNice      = 3
	weightSalary         = 10
	weightWorkFormat     = 5
	weightEmployment     = 5
)

// MatchThresholdPercent is the bar for passing the automated screen.
const MatchThresholdPercent = 65.0

// experienceDeficitMonths is how far the candidate may fall short of the
// required minimum and still pass the experience criterion.
const experienceDeficitMonths = 2

// scoreboard is the explicit accumulator the criterion evaluators fold
// into. A criterion the vacancy does not specify adds to neither side.
type scoreboard struct {
	achieved int
	possible int
}

func (s *scoreboard) add(c Criterion) {
	s.achieved += c.Score
	s.possible += c.Possible
}

// evaluateExperience scores the experience criterion and reports the
// parsed minimum in years (nil when the requirement is absent or
// unparseable), which the decision policy needs for its strict-rejection
// rule.
func evaluateExperience(p *resume.Profile, v *vacancy.Vacancy) (Criterion, *int) {
	if strings.TrimSpace(v.ExperienceRequired) == "" {
		return Criterion{
			Matched: true,
			Message: "Vacancy does not state an experience requirement; criterion not scored.",
		}, nil
	}

	minYears, _ := ParseExperience(v.ExperienceRequired)
	c := Criterion{Possible: weightExperience}

	var minMonths *int
	if minYears != nil {
		mm := *minYears * 12
		minMonths = &mm
	}

	candidate := p.TotalExperienceMonths

	switch {
	case minMonths == nil || *minMonths == 0:
		// An unparseable or zero minimum is satisfiable by anyone,
		// including candidates with no stated experience.
		c.Matched = true
		c.Message = "No minimum experience required; criterion satisfied."
	case candidate == nil:
		c.Message = fmt.Sprintf(
			"Vacancy requires experience (%s) but the resume does not state any.",
			v.ExperienceRequired,
		)
	case *candidate >= *minMonths:
		c.Matched = true
		c.Message = "Candidate experience satisfies the requirement."
	case *minMonths-*candidate <= experienceDeficitMonths:
		c.Matched = true
		c.Message = fmt.Sprintf(
			"Candidate experience (~%.1f years) is slightly below the requirement (%s) but within the allowed deficit of %d months.",
			float64(*candidate)/12, v.ExperienceRequired, experienceDeficitMonths,
		)
	default:
		c.Message = fmt.Sprintf(
			"Candidate experience (~%.1f years) is below the requirement (%s) even with the allowed deficit.",
			float64(*candidate)/12, v.ExperienceRequired,
		)
	}

	if c.Matched {
		c.Score = weightExperience
	}
	return c, minYears
}

// evaluateSalary applies the asymmetric leniency rule: asking for less
// than the vacancy offers never fails the criterion, only exceeding the
// relevant ceiling does. A candidate without stated expectations gets the
// benefit of the doubt.
func evaluateSalary(p *resume.Profile, v *vacancy.Vacancy) Criterion {
	if v.SalaryFrom == nil {
		return Criterion{Message: "Vacancy does not state a salary; criterion not scored."}
	}

	c := Criterion{Possible: weightSalary}

	var desired *int
	if p.DesiredSalary != nil {
		desired = p.DesiredSalary.Amount
	}

	switch {
	case desired == nil:
		c.Matched = true
		c.Message = "Candidate did not state salary expectations; treated as a match."
	case v.SalaryTo != nil && *desired <= *v.SalaryTo:
		c.Matched = true
		if *desired < *v.SalaryFrom {
			c.Message = fmt.Sprintf("Expectation (%d) is below the vacancy range (%d-%d); treated as a match.", *desired, *v.SalaryFrom, *v.SalaryTo)
		} else {
			c.Message = fmt.Sprintf("Expectation (%d) is within the vacancy range (%d-%d).", *desired, *v.SalaryFrom, *v.SalaryTo)
		}
	case v.SalaryTo != nil:
		c.Message = fmt.Sprintf("Expectation (%d) exceeds the vacancy range (%d-%d).", *desired, *v.SalaryFrom, *v.SalaryTo)
	case *desired <= *v.SalaryFrom:
		c.Matched = true
		c.Message = fmt.Sprintf("Expectation (%d) does not exceed the vacancy offer (from %d).", *desired, *v.SalaryFrom)
	default:
		c.Message = fmt.Sprintf("Expectation (%d) exceeds the vacancy offer (from %d).", *desired, *v.SalaryFrom)
	}

	if c.Matched {
		c.Score = weightSalary
	}
	return c
}

// evaluatePreference is the shared rule for work format and employment
// type: exact case-insensitive match, with an unstated candidate
// preference counting as satisfied.
func evaluatePreference(label, vacancyValue, candidateValue string, weight int) Criterion {
	if vacancyValue == "" {
		return Criterion{Message: fmt.Sprintf("Vacancy does not state a %s; criterion not scored.", label)}
	}

	c := Criterion{Possible: weight}

	switch {
	case strings.TrimSpace(candidateValue) == "":
		c.Matched = true
		c.Message = fmt.Sprintf("Candidate did not state a %s preference; treated as acceptable.", label)
	case strings.EqualFold(strings.TrimSpace(candidateValue), vacancyValue):
		c.Matched = true
		c.Message = fmt.Sprintf("The %s matches.", label)
	default:
		c.Message = fmt.Sprintf("Vacancy %s (%s) does not match the candidate preference (%s).", label, vacancyValue, candidateValue)
	}

	if c.Matched {
		c.Score = weight
	}
	return c
}
