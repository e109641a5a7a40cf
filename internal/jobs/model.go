package jobs

import "time"

// JobPosting is the structured job description extracted from a fetched
// page. Fields the posting does not state stay empty.
type JobPosting struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Seniority        string   `json:"seniority"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
	ExperienceLevel  string   `json:"experience_level"`
	Location         string   `json:"location"`
	Salary           string   `json:"salary"`
	Benefits         []string `json:"benefits"`
	CultureSignals   []string `json:"culture_signals"`
	Sources          []string `json:"sources"`
}

// RubricCriterion is one weighted scoring line for an HR question.
type RubricCriterion struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"` // always in [0,1]
}

// HRQuestion is a behavioral question with its scoring rubric.
type HRQuestion struct {
	Question string            `json:"question"`
	Rubric   []RubricCriterion `json:"rubric"`
}

// TechnicalQuestion targets one skill at a difficulty from 1 to 3.
type TechnicalQuestion struct {
	Question   string `json:"question"`
	Skill      string `json:"skill"`
	Difficulty int    `json:"difficulty"`
}

// InterviewPack bundles everything an interviewer needs for one posting.
type InterviewPack struct {
	HRQuestions        []HRQuestion        `json:"hrQuestions"`
	TechnicalQuestions []TechnicalQuestion `json:"technicalQuestions"`
	LiveCodingPrompts  []string            `json:"liveCodingPrompts"`
	HRWeight           float64             `json:"hrWeight"`   // in [0,1]
	TechWeight         float64             `json:"techWeight"` // in [0,1]
}

// Job is a persisted job-posting record with its generated interview pack.
type Job struct {
	ID        string        `json:"jobId"`
	UserID    string        `json:"-"`
	URL       string        `json:"url"`
	Posting   JobPosting    `json:"posting"`
	Pack      InterviewPack `json:"interviewPack"`
	CreatedAt time.Time     `json:"createdAt"`
}
