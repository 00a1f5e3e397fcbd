package matching

import (
	"regexp"
	"strconv"
	"strings"
)

// Experience requirements arrive as free text entered by the employer
// ("от 3 лет", "от 1 года до 3 лет", "нет опыта"). The patterns are tried
// in order of specificity; the first hit wins.
var (
	reExpRange = regexp.MustCompile(`(?:от\s*)?(\d+)\s*(?:год(?:а|ов)?|лет)?\s*(?:до|[-–—])\s*(\d+)\s*(?:год(?:а|ов)?|лет)`)
	reExpMin   = regexp.MustCompile(`(?:от|более)\s*(\d+)\s*(?:год(?:а|ов)?|лет)`)
	reExpMax   = regexp.MustCompile(`до\s*(\d+)\s*(?:год(?:а|ов)?|лет)`)
	reExpExact = regexp.MustCompile(`(\d+)\s*(?:год(?:а|ов)?|лет)`)
)

// ParseExperience extracts a (min, max) year range from the vacancy's
// free-text experience requirement. Either bound may be nil; both nil
// means the text was not parseable.
func ParseExperience(s string) (minYears, maxYears *int) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}

	if strings.Contains(s, "нет опыта") || strings.Contains(s, "0 лет") {
		zero := 0
		return &zero, &zero
	}

	if m := reExpRange.FindStringSubmatch(s); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2])
	}

	if m := reExpMin.FindStringSubmatch(s); m != nil {
		return atoiPtr(m[1]), nil
	}

	if m := reExpMax.FindStringSubmatch(s); m != nil {
		zero := 0
		return &zero, atoiPtr(m[1])
	}

	if m := reExpExact.FindStringSubmatch(s); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[1])
	}

	return nil, nil
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
