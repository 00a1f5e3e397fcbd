// Package matching implements the rule-based resume-to-vacancy scorer:
// fixed criterion weights, all-or-nothing scoring, benefit-of-the-doubt
// handling for unstated candidate fields, and a strict-priority triage
// decision. Evaluate is pure and deterministic; callers may run it
// concurrently without coordination.
package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/ashmnv/hh-screener/internal/resume"
	"github.com/ashmnv/hh-screener/internal/vacancy"
)

// Evaluate scores one candidate profile against one vacancy and
// recommends a triage status. It never fails: a profile with no usable
// data produces a zero-score result with ErrorMessage set.
func Evaluate(p *resume.Profile, v *vacancy.Vacancy) *Result {
	if p.Empty() {
		return &Result{
			InitialStatus: StatusNeedsManualReview,
			MatchScore:    0,
			ErrorMessage:  "resume data is missing or could not be parsed",
		}
	}

	var sb scoreboard
	d := &Details{}

	expCriterion, minYears := evaluateExperience(p, v)
	d.Experience = expCriterion
	sb.add(d.Experience)

	d.Salary = evaluateSalary(p, v)
	sb.add(d.Salary)

	d.WorkFormat = evaluatePreference("work format", string(v.WorkFormat), p.PreferredWorkFormat, weightWorkFormat)
	sb.add(d.WorkFormat)

	d.EmploymentType = evaluatePreference("employment type", string(v.EmploymentType), p.PreferredEmploymentType, weightEmployment)
	sb.add(d.EmploymentType)

	candidateSkills := normalizeSkills(p.Skills)

	var missing []string
	d.SkillsRequired, missing = evaluateSkillSet(v.PrimarySkills.Required, candidateSkills, weightSkillRequired)
	d.SkillsPreferred, _ = evaluateSkillSet(v.PrimarySkills.Preferred, candidateSkills, weightSkillPreferred)
	d.SkillsNiceToHave, _ = evaluateSkillSet(v.NiceToHaveSkills, candidateSkills, weightSkillNice)

	for _, set := range []struct {
		details []SkillMatch
		weight  int
	}{
		{d.SkillsRequired, weightSkillRequired},
		{d.SkillsPreferred, weightSkillPreferred},
		{d.SkillsNiceToHave, weightSkillNice},
	} {
		achieved, possible := skillScore(set.details, set.weight)
		sb.achieved += achieved
		sb.possible += possible
	}

	percentage := matchPercentage(sb)
	status, reason := decide(missing, minYears, d.Experience, percentage, sb)

	d.AchievedScore = sb.achieved
	d.MaxPossibleScore = sb.possible
	d.MatchPercentage = round2(percentage)
	d.MissingMandatorySkills = missing
	d.ReasonSummary = reason

	return &Result{
		InitialStatus: status,
		MatchScore:    round2(percentage),
		Details:       d,
	}
}

// matchPercentage keeps the degenerate-case convention: with nothing to
// measure against, the percentage is 100 only if something was still
// achieved, otherwise 0.
func matchPercentage(sb scoreboard) float64 {
	if sb.possible > 0 {
		return float64(sb.achieved) / float64(sb.possible) * 100
	}
	if sb.achieved > 0 {
		return 100
	}
	return 0
}

// decide applies the triage policy in strict priority order; the first
// rule that fires wins.
func decide(missing []string, minYears *int, experience Criterion, percentage float64, sb scoreboard) (Status, string) {
	if len(missing) > 0 {
		return StatusReject, fmt.Sprintf("Missing mandatory skills: %s.", strings.Join(missing, ", "))
	}

	if minYears != nil && *minYears > 0 && !experience.Matched {
		return StatusReject, experience.Message
	}

	if percentage >= MatchThresholdPercent {
		return StatusAdvanceToReview, fmt.Sprintf("Match percentage (%.2f%%) meets the %.1f%% threshold.", percentage, MatchThresholdPercent)
	}

	if sb.possible == 0 && sb.achieved == 0 {
		// The scorer had literally nothing to evaluate; auto-rejecting
		// here would discard applications no rule ever looked at.
		return StatusNeedsManualReview, "The vacancy lists no scoreable requirements and the resume adds none; manual review required."
	}

	return StatusReject, fmt.Sprintf("Match percentage (%.2f%%) is below the %.1f%% threshold.", percentage, MatchThresholdPercent)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
