package resume

import "errors"

var (
	// ErrNoText means the document produced no usable text at all.
	ErrNoText = errors.New("resume contains no extractable text")
	// ErrNoSections means none of the expected section headings were
	// found, so the document cannot be segmented.
	ErrNoSections = errors.New("no resume sections recognized")
)

// defaultRelevanceMarkers filter which job stints count towards the
// relevant-experience total. hh.ru prints the industry categories of each
// stint right under it; matching them keeps unrelated stints out.
var defaultRelevanceMarkers = []string{"Информационные технологии,"}

// Extractor converts raw resume text into a Profile. The zero-argument
// configuration is the common case; markers can be overridden per
// deployment domain.
type Extractor struct {
	relevanceMarkers []string
}

func NewExtractor(relevanceMarkers []string) *Extractor {
	if len(relevanceMarkers) == 0 {
		relevanceMarkers = defaultRelevanceMarkers
	}
	return &Extractor{relevanceMarkers: relevanceMarkers}
}

// Extract runs the full pipeline: noise stripping, section tagging,
// per-section rules and derived fields. It fails only when the document is
// unusable as a whole (ErrNoText, ErrNoSections); any individual field
// that cannot be extracted is silently left empty.
func (e *Extractor) Extract(text string) (*Profile, error) {
	lines := prepareLines(text)
	if !hasText(lines) {
		return nil, ErrNoText
	}

	sections, ok := splitSections(lines)
	if !ok {
		return nil, ErrNoSections
	}

	p := &Profile{}
	parseInfo(sections[sectionInfo], p)
	parseExperience(sections[sectionExperience], e.relevanceMarkers, p)
	parseEducation(sections[sectionEducation], p)
	parseCourses(sections[sectionCourses], p)
	parseSkills(sections[sectionSkills], p)
	parseDesiredSalary(lines, p)

	p.PreferredWorkFormat = deriveWorkFormat(p.Busyness, p.WorkSchedule)
	p.PreferredEmploymentType = deriveEmploymentType(p.Busyness, p.WorkSchedule)

	return p, nil
}

// Extract is a convenience wrapper using the default configuration.
func Extract(text string) (*Profile, error) {
	return NewExtractor(nil).Extract(text)
}
