package matching

import "strings"

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if n := normalizeSkill(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// evaluateSkillSet scores every vacancy-declared skill in one category
// independently. A vacancy skill is satisfied when its normalized form is
// a substring of any normalized candidate skill, so "Python" matches
// "Python developer". The trade-off is false positives on very short
// tokens (a required "R" would match "Marketing"); tightening to
// word-boundary matching is a product decision, not taken here.
//
// The second result lists the vacancy skills that found no match; the
// caller records them as missing only for the required category.
func evaluateSkillSet(vacancySkills, candidateNorm []string, weight int) ([]SkillMatch, []string) {
	if len(vacancySkills) == 0 {
		return nil, nil
	}

	details := make([]SkillMatch, 0, len(vacancySkills))
	var unmatched []string

	for _, skill := range vacancySkills {
		norm := normalizeSkill(skill)
		if norm == "" {
			continue
		}

		detail := SkillMatch{Skill: skill}
		for _, candidate := range candidateNorm {
			if strings.Contains(candidate, norm) {
				detail.Matched = true
				detail.Score = weight
				detail.MatchedWith = candidate
				break
			}
		}

		if !detail.Matched {
			unmatched = append(unmatched, skill)
		}
		details = append(details, detail)
	}

	return details, unmatched
}

func skillScore(details []SkillMatch, weight int) (achieved, possible int) {
	for _, d := range details {
		possible += weight
		achieved += d.Score
	}
	return achieved, possible
}
