package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"coach-backend/internal/llm"
)

type stubLLM struct {
	llm.Client

	gapResponse       string
	gapErr            error
	questionResponse  string
	questionResponses []string
	questionErr       error
	questionCalls     int
}

func (s *stubLLM) AnalyzeGaps(ctx context.Context, cvContent, jobRequirements json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(s.gapResponse), s.gapErr
}

func (s *stubLLM) GenerateQuestions(ctx context.Context, gapAnalysis, jobRequirements, cvContent json.RawMessage) (json.RawMessage, error) {
	s.questionCalls++
	if len(s.questionResponses) > 0 {
		resp := s.questionResponses[0]
		if len(s.questionResponses) > 1 {
			s.questionResponses = s.questionResponses[1:]
		}
		return json.RawMessage(resp), s.questionErr
	}
	return json.RawMessage(s.questionResponse), s.questionErr
}

var (
	cvReactSQL   = json.RawMessage(`{"skills":["React","SQL"]}`)
	jobReactTS   = json.RawMessage(`{"required_skills":["React","TypeScript"]}`)
	gapInput     = json.RawMessage(`{"strengths":[],"gaps":[]}`)
	anyStructure = json.RawMessage(`{"skills":[]}`)
)

func TestAnalyzeGapsPartitionsMappings(t *testing.T) {
	svc := &Service{LLM: &stubLLM{gapResponse: `{
		"mappings": [
			{"skill": "React", "status": "match", "importance": "critical", "evidence": ["built SPAs with React"]},
			{"skill": "TypeScript", "status": "missing", "importance": "critical"},
			{"skill": "GraphQL", "status": "partial", "importance": "nice_to_have"},
			{"skill": "Docker", "status": "missing", "importance": "nice_to_have"}
		],
		"match_percentage": 55,
		"recommendations": ["Learn TypeScript fundamentals"]
	}`}}

	result, err := svc.AnalyzeGaps(context.Background(), cvReactSQL, jobReactTS)
	if err != nil {
		t.Fatalf("AnalyzeGaps: %v", err)
	}

	if len(result.Strengths) != 1 || result.Strengths[0].Skill != "React" {
		t.Fatalf("strengths = %+v", result.Strengths)
	}
	if len(result.Gaps) != 1 || result.Gaps[0].Skill != "TypeScript" || result.Gaps[0].Importance != ImportanceCritical {
		t.Fatalf("gaps = %+v", result.Gaps)
	}
	if len(result.PartialMatches) != 1 || result.PartialMatches[0].Skill != "GraphQL" {
		t.Fatalf("partials = %+v", result.PartialMatches)
	}
	if result.MatchPercentage != 55 {
		t.Fatalf("match = %v", result.MatchPercentage)
	}
}

func TestAnalyzeGapsClampsPercentage(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`{"mappings": [], "match_percentage": 140}`, 100},
		{`{"mappings": [], "match_percentage": -3}`, 0},
	}
	for _, tc := range cases {
		svc := &Service{LLM: &stubLLM{gapResponse: tc.raw}}
		result, err := svc.AnalyzeGaps(context.Background(), cvReactSQL, jobReactTS)
		if err != nil {
			t.Fatalf("AnalyzeGaps: %v", err)
		}
		if result.MatchPercentage != tc.want {
			t.Fatalf("match = %v, want %v", result.MatchPercentage, tc.want)
		}
	}
}

func TestAnalyzeGapsNormalizesEnums(t *testing.T) {
	svc := &Service{LLM: &stubLLM{gapResponse: `{
		"mappings": [
			{"skill": "Kubernetes", "status": "MISSING", "importance": "nice-to-have"},
			{"skill": "Go", "status": "somewhat", "importance": "Critical"}
		],
		"match_percentage": 50
	}`}}

	result, err := svc.AnalyzeGaps(context.Background(), cvReactSQL, jobReactTS)
	if err != nil {
		t.Fatalf("AnalyzeGaps: %v", err)
	}
	// Unknown status collapses to missing; critical missing skills are gaps.
	if len(result.Gaps) != 1 || result.Gaps[0].Skill != "Go" {
		t.Fatalf("gaps = %+v", result.Gaps)
	}
}

func TestAnalyzeGapsRecoversFencedJSON(t *testing.T) {
	fenced := "Here is the analysis:\n```json\n{\"mappings\": [{\"skill\": \"React\", \"status\": \"match\", \"importance\": \"critical\"}], \"match_percentage\": 80}\n```"
	svc := &Service{LLM: &stubLLM{gapResponse: fenced}}

	result, err := svc.AnalyzeGaps(context.Background(), cvReactSQL, jobReactTS)
	if err != nil {
		t.Fatalf("AnalyzeGaps: %v", err)
	}
	if len(result.Strengths) != 1 {
		t.Fatalf("strengths = %+v", result.Strengths)
	}
}

func TestAnalyzeGapsMissingInput(t *testing.T) {
	svc := &Service{LLM: &stubLLM{}}
	if _, err := svc.AnalyzeGaps(context.Background(), nil, jobReactTS); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}
	if _, err := svc.AnalyzeGaps(context.Background(), cvReactSQL, nil); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}
}

func TestAnalyzeGapsUnparseableIsFatal(t *testing.T) {
	svc := &Service{LLM: &stubLLM{gapResponse: "I could not produce the analysis."}}
	_, err := svc.AnalyzeGaps(context.Background(), cvReactSQL, jobReactTS)
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
}

func questionBatchJSON(n int) string {
	var sb strings.Builder
	sb.WriteString(`{"questions":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		qType := "technical"
		if i%3 == 0 {
			qType = "behavioral"
		}
		fmt.Fprintf(&sb, `{"id":"","question":"Question %d?","type":%q,"skill":"React","difficulty":"medium","expected_answer_points":["point"]}`, i, qType)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func TestGenerateQuestionsAssignsUniqueIDs(t *testing.T) {
	svc := &Service{LLM: &stubLLM{questionResponse: questionBatchJSON(9)}}

	questions, err := svc.GenerateQuestions(context.Background(), gapInput, jobReactTS, anyStructure)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) < 8 || len(questions) > 10 {
		t.Fatalf("batch size = %d, want 8-10", len(questions))
	}

	seen := make(map[string]bool)
	for _, q := range questions {
		if q.ID == "" {
			t.Fatalf("question %q has empty ID", q.Question)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate ID %q", q.ID)
		}
		seen[q.ID] = true
		if !strings.HasPrefix(q.ID, string(q.Type)+"-") {
			t.Fatalf("ID %q does not start with type %q", q.ID, q.Type)
		}
	}
}

func TestGenerateQuestionsKeepsProvidedIDs(t *testing.T) {
	svc := &Service{LLM: &stubLLM{questionResponse: `{"questions":[
		{"id":"q-custom","question":"Tell me about React.","type":"technical","skill":"React","difficulty":"easy","expected_answer_points":[]},
		{"id":"","question":"Describe a conflict.","type":"behavioral","skill":"","difficulty":"medium","expected_answer_points":[]},
		{"id":"","question":"Q3","type":"technical","skill":"SQL","difficulty":"medium","expected_answer_points":[]},
		{"id":"","question":"Q4","type":"scenario","skill":"React","difficulty":"hard","expected_answer_points":[]},
		{"id":"","question":"Q5","type":"technical","skill":"SQL","difficulty":"easy","expected_answer_points":[]},
		{"id":"","question":"Q6","type":"behavioral","skill":"","difficulty":"medium","expected_answer_points":[]},
		{"id":"","question":"Q7","type":"scenario","skill":"React","difficulty":"hard","expected_answer_points":[]},
		{"id":"","question":"Q8","type":"technical","skill":"SQL","difficulty":"medium","expected_answer_points":[]}
	]}`}}

	questions, err := svc.GenerateQuestions(context.Background(), gapInput, jobReactTS, anyStructure)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if questions[0].ID != "q-custom" {
		t.Fatalf("provided ID overwritten: %q", questions[0].ID)
	}
}

func TestGenerateQuestionsTrimsOversizedBatch(t *testing.T) {
	svc := &Service{LLM: &stubLLM{questionResponse: questionBatchJSON(14)}}
	questions, err := svc.GenerateQuestions(context.Background(), gapInput, jobReactTS, anyStructure)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) != maxQuestions {
		t.Fatalf("batch size = %d, want %d", len(questions), maxQuestions)
	}
}

func TestGenerateQuestionsRetriesShortBatch(t *testing.T) {
	stub := &stubLLM{questionResponses: []string{questionBatchJSON(5), questionBatchJSON(9)}}
	svc := &Service{LLM: stub}

	questions, err := svc.GenerateQuestions(context.Background(), gapInput, jobReactTS, anyStructure)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if stub.questionCalls != 2 {
		t.Fatalf("model calls = %d, want 2", stub.questionCalls)
	}
	if len(questions) != 9 {
		t.Fatalf("batch size = %d, want 9 from the retry", len(questions))
	}
}

func TestGenerateQuestionsPadsPersistentShortBatch(t *testing.T) {
	gaps := json.RawMessage(`{
		"strengths": [{"skill":"React","status":"match","importance":"critical"}],
		"gaps": [
			{"skill":"Kubernetes","status":"missing","importance":"critical"},
			{"skill":"Terraform","status":"missing","importance":"important"}
		],
		"partialMatches": [{"skill":"Go","status":"partial","importance":"important"}],
		"matchPercentage": 40,
		"recommendations": []
	}`)
	stub := &stubLLM{questionResponse: questionBatchJSON(5)}
	svc := &Service{LLM: stub}

	questions, err := svc.GenerateQuestions(context.Background(), gaps, jobReactTS, anyStructure)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if stub.questionCalls != 2 {
		t.Fatalf("model calls = %d, want 2", stub.questionCalls)
	}
	if len(questions) != 8 {
		t.Fatalf("batch size = %d, want the minimum of 8", len(questions))
	}

	skills := make(map[string]bool)
	seen := make(map[string]bool)
	for _, q := range questions {
		if q.ID == "" {
			t.Fatalf("question %q has empty ID", q.Question)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate ID %q", q.ID)
		}
		seen[q.ID] = true
		skills[q.Skill] = true
	}
	for _, want := range []string{"Kubernetes", "Terraform", "Go"} {
		if !skills[want] {
			t.Fatalf("padding skipped gap skill %s; batch skills %v", want, skills)
		}
	}
}

func TestGenerateQuestionsMalformedIsFatal(t *testing.T) {
	svc := &Service{LLM: &stubLLM{questionResponse: "no json here"}}
	_, err := svc.GenerateQuestions(context.Background(), gapInput, jobReactTS, anyStructure)
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
}
