package jobs

import "fmt"

const (
	defaultHRWeight   = 0.4
	defaultTechWeight = 0.6

	maxTechnicalQuestions = 6
	maxLiveCodingPrompts  = 3
)

// BuildInterviewPack derives an interview pack from a parsed posting.
// Technical questions cover the must-have skills first, cycling difficulty
// 1 to 3; HR questions come from fixed templates seeded with the posting's
// culture signals. All scoring weights land in [0,1].
func BuildInterviewPack(posting JobPosting) InterviewPack {
	pack := InterviewPack{
		HRQuestions:        buildHRQuestions(posting),
		TechnicalQuestions: buildTechnicalQuestions(posting),
		LiveCodingPrompts:  buildLiveCodingPrompts(posting),
		HRWeight:           clampWeight(defaultHRWeight),
		TechWeight:         clampWeight(defaultTechWeight),
	}
	return pack
}

func buildHRQuestions(posting JobPosting) []HRQuestion {
	role := posting.Title
	if role == "" {
		role = "this role"
	}

	questions := []HRQuestion{
		{
			Question: fmt.Sprintf("Walk me through a project you are proud of and how it prepared you for %s.", role),
			Rubric: []RubricCriterion{
				{Criterion: "Clarity of narrative", Weight: clampWeight(0.3)},
				{Criterion: "Relevance to the role", Weight: clampWeight(0.4)},
				{Criterion: "Ownership of outcomes", Weight: clampWeight(0.3)},
			},
		},
		{
			Question: "Tell me about a time you disagreed with a teammate. How was it resolved?",
			Rubric: []RubricCriterion{
				{Criterion: "Constructive conflict handling", Weight: clampWeight(0.5)},
				{Criterion: "Empathy and listening", Weight: clampWeight(0.5)},
			},
		},
	}

	for _, signal := range posting.CultureSignals {
		if len(questions) >= 4 {
			break
		}
		questions = append(questions, HRQuestion{
			Question: fmt.Sprintf("This team values %q. Describe a situation where you demonstrated that.", signal),
			Rubric: []RubricCriterion{
				{Criterion: "Concrete example", Weight: clampWeight(0.6)},
				{Criterion: "Alignment with the value", Weight: clampWeight(0.4)},
			},
		})
	}

	return questions
}

func buildTechnicalQuestions(posting JobPosting) []TechnicalQuestion {
	skills := append([]string{}, posting.RequiredSkills...)
	skills = append(skills, posting.PreferredSkills...)

	questions := make([]TechnicalQuestion, 0, maxTechnicalQuestions)
	for i, skill := range skills {
		if len(questions) >= maxTechnicalQuestions {
			break
		}
		questions = append(questions, TechnicalQuestion{
			Question:   fmt.Sprintf("Describe a real problem you solved with %s and the trade-offs you weighed.", skill),
			Skill:      skill,
			Difficulty: i%3 + 1,
		})
	}
	return questions
}

func buildLiveCodingPrompts(posting JobPosting) []string {
	prompts := make([]string, 0, maxLiveCodingPrompts)
	for _, skill := range posting.RequiredSkills {
		if len(prompts) >= maxLiveCodingPrompts {
			break
		}
		prompts = append(prompts, fmt.Sprintf("Implement a small, working example that exercises %s. Talk through your choices as you go.", skill))
	}
	return prompts
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
