package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"coach-backend/internal/llm"
	"coach-backend/internal/shared/jsonx"
	"coach-backend/internal/shared/telemetry"
)

var (
	// ErrMissingInput indicates a required analysis input was absent.
	ErrMissingInput = errors.New("missing analysis input")
	// ErrBadResponse indicates the model response could not be parsed
	// after the single recovery attempt.
	ErrBadResponse = errors.New("unparseable model response")
)

const (
	minQuestions = 8
	maxQuestions = 10
)

// Service orchestrates gap analysis and question generation. Each operation
// is one model call; a parse failure after recovery is fatal, there is no
// fallback chain here.
type Service struct {
	LLM llm.Client
}

type gapResponse struct {
	Mappings        []SkillMapping `json:"mappings"`
	MatchPercentage float64        `json:"match_percentage"`
	Recommendations []string       `json:"recommendations"`
}

// AnalyzeGaps compares structured CV content against job requirements and
// partitions the resulting skill mappings.
func (s *Service) AnalyzeGaps(ctx context.Context, cvContent, jobRequirements json.RawMessage) (GapAnalysis, error) {
	if len(cvContent) == 0 || len(jobRequirements) == 0 {
		return GapAnalysis{}, ErrMissingInput
	}

	raw, err := s.LLM.AnalyzeGaps(ctx, cvContent, jobRequirements)
	if err != nil {
		return GapAnalysis{}, err
	}
	recovered, err := jsonx.Recover(raw)
	if err != nil {
		return GapAnalysis{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var resp gapResponse
	if err := json.Unmarshal(recovered, &resp); err != nil {
		return GapAnalysis{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return partition(resp), nil
}

// partition buckets normalized mappings into strengths, gaps, and partial
// matches. Gaps are missing skills the posting marks critical or important.
func partition(resp gapResponse) GapAnalysis {
	out := GapAnalysis{
		Strengths:       []SkillMapping{},
		Gaps:            []SkillMapping{},
		PartialMatches:  []SkillMapping{},
		MatchPercentage: clampPercentage(resp.MatchPercentage),
		Recommendations: resp.Recommendations,
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}

	for _, m := range resp.Mappings {
		m.Status = normalizeStatus(m.Status)
		m.Importance = normalizeImportance(m.Importance)
		switch m.Status {
		case StatusMatch:
			out.Strengths = append(out.Strengths, m)
		case StatusPartial:
			out.PartialMatches = append(out.PartialMatches, m)
		case StatusMissing:
			if m.Importance == ImportanceCritical || m.Importance == ImportanceImportant {
				out.Gaps = append(out.Gaps, m)
			}
		}
	}
	return out
}

func clampPercentage(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func normalizeStatus(s SkillStatus) SkillStatus {
	switch SkillStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StatusMatch:
		return StatusMatch
	case StatusPartial:
		return StatusPartial
	default:
		return StatusMissing
	}
}

func normalizeImportance(imp SkillImportance) SkillImportance {
	cleaned := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(imp))), "-", "_")
	switch SkillImportance(cleaned) {
	case ImportanceCritical:
		return ImportanceCritical
	case ImportanceImportant:
		return ImportanceImportant
	default:
		return ImportanceNiceToHave
	}
}

type questionResponse struct {
	Questions []Question `json:"questions"`
}

// GenerateQuestions produces an interview question batch from the gap
// analysis, job requirements, and CV content. Questions missing an ID get a
// type-index-timestamp composite, unique within the batch.
func (s *Service) GenerateQuestions(ctx context.Context, gapAnalysis, jobRequirements, cvContent json.RawMessage) ([]Question, error) {
	if len(gapAnalysis) == 0 || len(jobRequirements) == 0 || len(cvContent) == 0 {
		return nil, ErrMissingInput
	}

	raw, err := s.LLM.GenerateQuestions(ctx, gapAnalysis, jobRequirements, cvContent)
	if err != nil {
		return nil, err
	}
	recovered, err := jsonx.Recover(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var resp questionResponse
	if err := json.Unmarshal(recovered, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(resp.Questions) == 0 {
		return nil, fmt.Errorf("%w: empty question batch", ErrBadResponse)
	}

	questions := resp.Questions
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	if len(questions) < minQuestions {
		telemetry.Info("analysis.questions.short_batch", map[string]any{"count": len(questions)})
		questions = s.reaskQuestions(ctx, gapAnalysis, jobRequirements, cvContent, questions)
	}
	if len(questions) < minQuestions {
		questions = padQuestions(questions, gapAnalysis)
	}

	now := time.Now().UnixNano()
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = fmt.Sprintf("%s-%d-%d", questions[i].Type, i, now)
		}
	}
	return questions, nil
}

// reaskQuestions makes one more model call after a short first batch and
// keeps the larger of the two. Any failure on the second call falls back to
// the original batch.
func (s *Service) reaskQuestions(ctx context.Context, gapAnalysis, jobRequirements, cvContent json.RawMessage, current []Question) []Question {
	raw, err := s.LLM.GenerateQuestions(ctx, gapAnalysis, jobRequirements, cvContent)
	if err != nil {
		return current
	}
	recovered, err := jsonx.Recover(raw)
	if err != nil {
		return current
	}
	var resp questionResponse
	if err := json.Unmarshal(recovered, &resp); err != nil {
		return current
	}
	retried := resp.Questions
	if len(retried) > maxQuestions {
		retried = retried[:maxQuestions]
	}
	if len(retried) > len(current) {
		return retried
	}
	return current
}

// Templates used when the model cannot fill a batch on its own. Skill
// questions come first so padding still targets the reported gaps.
var genericQuestions = []Question{
	{Question: "Describe the project you are most proud of and the impact it had.", Type: TypeBehavioral, Difficulty: "medium"},
	{Question: "Tell me about a time you had to learn a new technology under deadline pressure.", Type: TypeBehavioral, Difficulty: "medium"},
	{Question: "How do you approach debugging a production incident you have never seen before?", Type: TypeScenario, Difficulty: "medium"},
	{Question: "A stakeholder asks for a feature that conflicts with the current architecture. How do you respond?", Type: TypeScenario, Difficulty: "medium"},
	{Question: "How do you decide what to test and what not to test in a new codebase?", Type: TypeTechnical, Difficulty: "medium"},
	{Question: "What trade-offs do you weigh when choosing between building and buying a component?", Type: TypeTechnical, Difficulty: "medium"},
	{Question: "Walk me through how you keep a long running project on track.", Type: TypeBehavioral, Difficulty: "easy"},
	{Question: "How do you give and receive code review feedback?", Type: TypeBehavioral, Difficulty: "easy"},
}

// padQuestions tops a short batch up to the minimum, first with questions
// aimed at the gap and partial skills that have no question yet, then with
// generic templates.
func padQuestions(questions []Question, gapAnalysis json.RawMessage) []Question {
	asked := make(map[string]bool, len(questions))
	for _, q := range questions {
		if skill := strings.ToLower(strings.TrimSpace(q.Skill)); skill != "" {
			asked[skill] = true
		}
	}

	var skills []string
	for _, path := range []string{"gaps.#.skill", "partialMatches.#.skill"} {
		for _, res := range gjson.GetBytes(gapAnalysis, path).Array() {
			skill := strings.TrimSpace(res.String())
			if skill == "" || asked[strings.ToLower(skill)] {
				continue
			}
			asked[strings.ToLower(skill)] = true
			skills = append(skills, skill)
		}
	}

	for _, skill := range skills {
		if len(questions) >= minQuestions {
			return questions
		}
		questions = append(questions, Question{
			Question:   fmt.Sprintf("Walk me through a time you worked with %s. What was your role, and what would you do differently today?", skill),
			Type:       TypeBehavioral,
			Skill:      skill,
			Difficulty: "medium",
		})
	}
	for i := 0; len(questions) < minQuestions && i < len(genericQuestions); i++ {
		questions = append(questions, genericQuestions[i])
	}
	return questions
}
