package resume

import (
	"regexp"
	"strings"
)

// section identifies one of the fixed blocks of an hh.ru-style resume.
type section int

const (
	sectionInfo section = iota
	sectionExperience
	sectionEducation
	sectionCourses
	sectionSkills
	sectionExtra
)

// anchors are the section headings in the order hh.ru renders them. The
// tagger below does not depend on that order: a line is classified by the
// nearest preceding anchor, whatever sequence the anchors appear in.
var anchors = []struct {
	marker string
	sec    section
	// skipHeader drops the heading line itself from the section body.
	// The experience heading carries the total duration ("Опыт работы —
	// 5 лет 3 месяца"), so it stays part of its section.
	skipHeader bool
}{
	{marker: "Опыт работы", sec: sectionExperience},
	{marker: "Образование", sec: sectionEducation},
	{marker: "Повышение квалификации, курсы", sec: sectionCourses, skipHeader: true},
	{marker: "Навыки", sec: sectionSkills, skipHeader: true},
	{marker: "Дополнительная информация", sec: sectionExtra},
}

var noiseBanner = regexp.MustCompile(`Резюме обновлено\s+\d{1,2}\s+\S+\s+\d{4}\s+в\s+\d{2}:\d{2}`)

// prepareLines splits raw text into lines and strips known page noise:
// non-breaking spaces left over from PDF extraction and the "resume last
// updated" banner hh.ru prints on every page.
func prepareLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.ReplaceAll(line, " ", " ")
		line = noiseBanner.ReplaceAllString(line, "")
		lines = append(lines, line)
	}
	return lines
}

func hasText(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// splitSections tags every line with the section it belongs to. Lines
// before the first anchor form the info block. Each anchor fires once, on
// its first occurrence; a missing anchor simply yields an empty section.
// The boolean result is false when none of the anchors were found, which
// means the document is not segmentable at all.
func splitSections(lines []string) (map[section][]string, bool) {
	out := make(map[section][]string, sectionExtra+1)
	fired := make(map[section]bool, len(anchors))

	current := sectionInfo
	anyAnchor := false

	for _, line := range lines {
		switched := false
		for _, a := range anchors {
			if fired[a.sec] || !strings.Contains(line, a.marker) {
				continue
			}
			fired[a.sec] = true
			current = a.sec
			anyAnchor = true
			if a.skipHeader {
				switched = true
			}
			break
		}
		if switched {
			continue
		}
		out[current] = append(out[current], line)
	}

	return out, anyAnchor
}
