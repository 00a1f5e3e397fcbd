package resume

import (
	"regexp"
	"strconv"
	"strings"
)

// Info-section rules. Each rule is independent, scans one line, and sets
// its field only if the field is still unset (first match wins). A miss is
// not an error: the field just stays empty.
type infoRule struct {
	name  string
	apply func(line string, p *Profile) bool
}

var (
	reGenderAge   = regexp.MustCompile(`(Мужчина|Женщина),\s*(\d+)\s*(?:год(?:а|ов)?|лет),\s*родил(?:ся|ась)\s*(\d{1,2}\s+\S+\s+\d{4})`)
	rePhone       = regexp.MustCompile(`\+7\s*\(\d{3}\)\s*\d{6,}`)
	reEmail       = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	reLocation    = regexp.MustCompile(`Проживает:\s*(.+)`)
	reCitizenship = regexp.MustCompile(`Гражданство:\s*([^,]+)(?:,\s*есть разрешение на работу:\s*(.+))?`)
	reBusyness    = regexp.MustCompile(`Занятость:\s*(.+)`)
	reSchedule    = regexp.MustCompile(`График работы:\s*(.+)`)
)

var infoRules = []infoRule{
	{
		name: "gender_age_birthdate",
		apply: func(line string, p *Profile) bool {
			if p.Gender != "" {
				return false
			}
			m := reGenderAge.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			p.Gender = m[1]
			if age, err := strconv.Atoi(m[2]); err == nil {
				p.Age = &age
			}
			p.DateOfBirth = m[3]
			return true
		},
	},
	{
		name: "phone",
		apply: func(line string, p *Profile) bool {
			if p.Contact.Phone != "" {
				return false
			}
			m := rePhone.FindString(line)
			if m == "" {
				return false
			}
			p.Contact.Phone = strings.ReplaceAll(m, " ", "")
			return true
		},
	},
	{
		name: "email",
		apply: func(line string, p *Profile) bool {
			if p.Contact.Email != "" {
				return false
			}
			m := reEmail.FindString(line)
			if m == "" {
				return false
			}
			p.Contact.Email = m
			return true
		},
	},
	{
		name: "location",
		apply: func(line string, p *Profile) bool {
			if p.Contact.Location != "" {
				return false
			}
			m := reLocation.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			p.Contact.Location = strings.TrimSpace(m[1])
			return true
		},
	},
	{
		name: "citizenship_work_permit",
		apply: func(line string, p *Profile) bool {
			if p.Citizenship != "" {
				return false
			}
			m := reCitizenship.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			p.Citizenship = strings.TrimSpace(m[1])
			if m[2] != "" {
				p.WorkPermit = strings.TrimSpace(m[2])
			}
			return true
		},
	},
	{
		name: "busyness",
		apply: func(line string, p *Profile) bool {
			if p.Busyness != "" {
				return false
			}
			m := reBusyness.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			p.Busyness = strings.TrimSpace(m[1])
			return true
		},
	},
	{
		name: "work_schedule",
		apply: func(line string, p *Profile) bool {
			if p.WorkSchedule != "" {
				return false
			}
			m := reSchedule.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			p.WorkSchedule = strings.TrimSpace(m[1])
			return true
		},
	},
}

// parseInfo fills the header fields. The first non-empty line is taken as
// the full name, best-effort and unvalidated.
func parseInfo(lines []string, p *Profile) {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			p.FullName = strings.TrimSpace(line)
			break
		}
	}

	for _, line := range lines {
		for _, rule := range infoRules {
			rule.apply(line, p)
		}
	}
}

var (
	reTotalExperience = regexp.MustCompile(`Опыт работы\s*—\s*(?:(\d+)\s*(?:год(?:а|ов)?|лет))?\s*(?:(\d+)\s*месяц(?:а|ев)?)?`)
	reStintDuration   = regexp.MustCompile(`^\s*(?:(\d+)\s*(?:год(?:а|ов)?|лет))?\s*(?:(\d+)\s*месяц(?:а|ев)?)?\s*(.*)$`)
)

// parseExperience reads the experience block. The heading line carries the
// cumulative total; individual stints ("3 года 2 месяца Компания") are
// accumulated into the relevant total only when a nearby line matches one
// of the relevance markers, mirroring how hh.ru groups a stint with its
// industry categories.
func parseExperience(lines []string, markers []string, p *Profile) {
	if len(lines) == 0 {
		return
	}

	if m := reTotalExperience.FindStringSubmatch(lines[0]); m != nil && (m[1] != "" || m[2] != "") {
		total := atoiOrZero(m[1])*12 + atoiOrZero(m[2])
		p.TotalExperienceMonths = &total
	}

	var (
		stintMonths  int
		stintCompany string
	)

	for _, line := range lines {
		if m := reStintDuration.FindStringSubmatch(line); m != nil && (m[1] != "" || m[2] != "") {
			stintMonths = atoiOrZero(m[1])*12 + atoiOrZero(m[2])
			if company := strings.TrimSpace(m[3]); company != "" {
				stintCompany = company
			}
		}

		if stintMonths > 0 && matchesAnyMarker(line, markers) {
			p.RelevantExperience = append(p.RelevantExperience, ExperienceEntry{
				Company: stintCompany,
				Months:  stintMonths,
			})
			p.RelevantExperienceMonths += stintMonths
			// Each stint counts once, even if several category lines follow.
			stintMonths = 0
		}
	}
}

func matchesAnyMarker(line string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

var (
	reEducationMain   = regexp.MustCompile(`(\d{4})\s+([^,]+),\s*([^\s,]+)?\s+([^,]+),`)
	reEducationDegree = regexp.MustCompile(`([^,]+),\s*([^,]+?)(?:\s*\([^)]+\))?\s*$`)
)

// parseEducation joins the whole section into one string and applies two
// composite patterns: graduation year / institution / city / faculty from
// the head, degree wording from the tail. Both must match for the record
// to be filled; a partial hit stays nil rather than guessing.
func parseEducation(lines []string, p *Profile) {
	if len(lines) == 0 {
		return
	}

	joined := " " + strings.Join(lines, " ") + " "
	joined = strings.TrimRight(joined, " ")

	main := reEducationMain.FindStringSubmatch(joined)
	tail := reEducationDegree.FindStringSubmatch(joined)
	if main == nil || tail == nil {
		return
	}

	edu := &Education{
		Year:        main[1],
		Institution: strings.TrimSpace(main[2]),
		City:        strings.TrimSpace(main[3]),
		Faculty:     strings.TrimSpace(main[4]),
		Degree:      strings.TrimSpace(tail[2]),
	}
	if len(lines) > 1 {
		edu.DegreeStatus = strings.TrimSpace(lines[1])
	}
	p.Education = edu
}

var reCourseYear = regexp.MustCompile(`^(\d{4})\s+(.*)$`)

// parseCourses reads one entry per leading-year line, splitting the rest
// on the first comma into course name and place. A line without a leading
// year continues the previous entry's place field (PDF line wrapping).
func parseCourses(lines []string, p *Profile) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := reCourseYear.FindStringSubmatch(line)
		if m == nil {
			if n := len(p.Courses); n > 0 {
				last := &p.Courses[n-1]
				if last.Place == "" {
					last.Place = line
				} else {
					last.Place += " " + line
				}
			}
			continue
		}

		course := Course{Year: m[1]}
		if name, place, found := strings.Cut(m[2], ","); found {
			course.Name = strings.TrimSpace(name)
			course.Place = strings.TrimSpace(place)
		} else {
			course.Name = strings.TrimSpace(m[2])
		}
		p.Courses = append(p.Courses, course)
	}
}

// parseSkills joins the section with a double-space separator and splits
// on it: hh.ru PDFs delimit skill tokens with runs of spaces, so each
// fragment is one skill. A repeated "Навыки" subheading inside the section
// is skipped together with everything before it.
func parseSkills(lines []string, p *Profile) {
	start := 0
	for i, line := range lines {
		if strings.Contains(line, "Навыки") {
			start = i + 1
			break
		}
	}

	joined := strings.Join(lines[start:], "  ")
	for _, fragment := range strings.Split(joined, "  ") {
		if skill := strings.TrimSpace(fragment); skill != "" {
			p.Skills = append(p.Skills, skill)
		}
	}
}

var reDesiredSalary = regexp.MustCompile(`Желаемая зарплата\D*?(\d[\d\s]*)`)

// currencyTokens are the currency lines hh.ru prints under the amount.
var currencyTokens = map[string]bool{
	"руб.": true,
	"руб":  true,
	"₽":    true,
	"rub":  true,
	"usd":  true,
	"eur":  true,
	"kzt":  true,
}

// parseDesiredSalary scans the whole document for the salary label. The
// amount counts only when the next line is a known currency token;
// otherwise the occurrence is abandoned and scanning continues forward
// without backtracking.
func parseDesiredSalary(lines []string, p *Profile) {
	for i, line := range lines {
		m := reDesiredSalary.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if i+1 >= len(lines) {
			return
		}

		currency := strings.TrimSpace(lines[i+1])
		if !currencyTokens[strings.ToLower(currency)] {
			continue
		}

		amount, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(m[1]), " ", ""))
		if err != nil {
			continue
		}

		p.DesiredSalary = &Salary{Amount: &amount, Currency: currency}
		return
	}
}

// Keyword tables mapping the candidate's free-text declarations to the
// vacancy enum values. First keyword match wins; no match leaves the
// preference unset.
var workFormatKeywords = []struct {
	keyword string
	value   string
}{
	{"удал", "remote"},
	{"гибрид", "hybrid"},
	{"на месте работодателя", "office"},
	{"полный день", "office"},
	{"офис", "office"},
}

var employmentTypeKeywords = []struct {
	keyword string
	value   string
}{
	{"стажировка", "internship"},
	{"стажер", "internship"},
	{"частичная занятость", "part_time"},
	{"подработка", "part_time"},
	{"полная занятость", "full_time"},
}

func deriveWorkFormat(busyness, schedule string) string {
	combined := strings.ToLower(busyness + " " + schedule)
	for _, entry := range workFormatKeywords {
		if strings.Contains(combined, entry.keyword) {
			return entry.value
		}
	}
	return ""
}

func deriveEmploymentType(busyness, schedule string) string {
	combined := strings.ToLower(busyness + " " + schedule)
	for _, entry := range employmentTypeKeywords {
		if strings.Contains(combined, entry.keyword) {
			return entry.value
		}
	}
	return ""
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
