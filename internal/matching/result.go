package matching

// Status is the triage recommendation produced by the scorer.
type Status string

const (
	// StatusNeedsManualReview means the automated screen had nothing to
	// evaluate: a recruiter has to look at the application.
	StatusNeedsManualReview Status = "needs_manual_review"
	// StatusAdvanceToReview means the candidate passed the automated screen.
	StatusAdvanceToReview Status = "advance_to_review"
	StatusReject          Status = "reject"
)

// Criterion is the outcome of one scoring dimension. Score carries the
// full criterion weight or zero: there is no partial credit. Possible is
// zero when the vacancy does not specify the criterion at all.
type Criterion struct {
	Matched  bool   `json:"matched"`
	Score    int    `json:"score"`
	Possible int    `json:"possible"`
	Message  string `json:"message"`
}

// SkillMatch is the outcome for a single vacancy-declared skill.
type SkillMatch struct {
	Skill       string `json:"skill"`
	Matched     bool   `json:"matched"`
	Score       int    `json:"score"`
	MatchedWith string `json:"matched_with,omitempty"`
}

// Details is the full per-criterion breakdown persisted with the
// application record.
type Details struct {
	Experience     Criterion `json:"experience"`
	Salary         Criterion `json:"salary"`
	WorkFormat     Criterion `json:"work_format"`
	EmploymentType Criterion `json:"employment_type"`

	SkillsRequired   []SkillMatch `json:"skills_required"`
	SkillsPreferred  []SkillMatch `json:"skills_preferred"`
	SkillsNiceToHave []SkillMatch `json:"skills_nice_to_have"`

	AchievedScore    int     `json:"achieved_score"`
	MaxPossibleScore int     `json:"max_possible_score"`
	MatchPercentage  float64 `json:"match_percentage"`

	MissingMandatorySkills []string `json:"missing_mandatory_skills,omitempty"`
	ReasonSummary          string   `json:"reason_summary"`
}

// Result is the scorer's answer for one profile/vacancy pair. The scorer
// never fails: an unusable profile yields a zero score with ErrorMessage
// set instead of an error.
type Result struct {
	InitialStatus Status   `json:"initial_status"`
	MatchScore    float64  `json:"match_score"`
	Details       *Details `json:"match_details"`
	ErrorMessage  string   `json:"error_message,omitempty"`
}
