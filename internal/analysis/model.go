package analysis

// SkillStatus classifies how well CV evidence covers a job skill.
type SkillStatus string

const (
	StatusMatch   SkillStatus = "match"
	StatusPartial SkillStatus = "partial"
	StatusMissing SkillStatus = "missing"
)

// SkillImportance ranks how much a job posting cares about a skill.
type SkillImportance string

const (
	ImportanceCritical   SkillImportance = "critical"
	ImportanceImportant  SkillImportance = "important"
	ImportanceNiceToHave SkillImportance = "nice_to_have"
)

// SkillMapping links one job skill to the evidence found in the CV.
// Mappings are regenerated on every analysis, never mutated.
type SkillMapping struct {
	Skill      string          `json:"skill"`
	Status     SkillStatus     `json:"status"`
	Importance SkillImportance `json:"importance"`
	Evidence   []string        `json:"evidence,omitempty"`
}

// GapAnalysis partitions skill mappings and summarizes overall fit.
type GapAnalysis struct {
	Strengths       []SkillMapping `json:"strengths"`
	Gaps            []SkillMapping `json:"gaps"`
	PartialMatches  []SkillMapping `json:"partialMatches"`
	MatchPercentage float64        `json:"matchPercentage"`
	Recommendations []string       `json:"recommendations"`
}

// QuestionType distinguishes how a question probes the candidate.
type QuestionType string

const (
	TypeBehavioral QuestionType = "behavioral"
	TypeTechnical  QuestionType = "technical"
	TypeScenario   QuestionType = "scenario"
)

// Question is one generated interview question.
type Question struct {
	ID                   string       `json:"id"`
	Question             string       `json:"question"`
	Type                 QuestionType `json:"type"`
	Skill                string       `json:"skill"`
	Difficulty           string       `json:"difficulty"`
	ExpectedAnswerPoints []string     `json:"expected_answer_points"`
	FollowUps            []string     `json:"follow_ups,omitempty"`
}
