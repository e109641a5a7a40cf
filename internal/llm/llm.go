package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the external reasoning service. Every call is a single
// request/response; callers own fallback and retry policy.
type Client interface {
	// OCRDocument recovers text from a document the direct extractors could not read.
	OCRDocument(ctx context.Context, data []byte, mimeType string) (string, error)
	// StructureCV converts raw CV text into the structured content schema.
	StructureCV(ctx context.Context, rawText string) (json.RawMessage, error)
	// ExtractJob converts fetched job-posting text into the JD schema.
	ExtractJob(ctx context.Context, pageText string) (json.RawMessage, error)
	// AnalyzeGaps classifies job skills against CV evidence.
	AnalyzeGaps(ctx context.Context, cvContent, jobRequirements json.RawMessage) (json.RawMessage, error)
	// GenerateQuestions produces an interview question batch.
	GenerateQuestions(ctx context.Context, gapAnalysis, jobRequirements, cvContent json.RawMessage) (json.RawMessage, error)
	// Embed returns an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

var (
	// ErrNotImplemented is returned by the placeholder client.
	ErrNotImplemented = errors.New("LLM not implemented")
	// ErrInvalidAPIKey indicates the provider rejected the configured key.
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")
)

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

func (PlaceholderClient) OCRDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	return "", ErrNotImplemented
}

func (PlaceholderClient) StructureCV(ctx context.Context, rawText string) (json.RawMessage, error) {
	return nil, ErrNotImplemented
}

func (PlaceholderClient) ExtractJob(ctx context.Context, pageText string) (json.RawMessage, error) {
	return nil, ErrNotImplemented
}

func (PlaceholderClient) AnalyzeGaps(ctx context.Context, cvContent, jobRequirements json.RawMessage) (json.RawMessage, error) {
	return nil, ErrNotImplemented
}

func (PlaceholderClient) GenerateQuestions(ctx context.Context, gapAnalysis, jobRequirements, cvContent json.RawMessage) (json.RawMessage, error) {
	return nil, ErrNotImplemented
}

func (PlaceholderClient) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, ErrNotImplemented
}

var _ Client = PlaceholderClient{}
