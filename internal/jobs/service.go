package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coach-backend/internal/llm"
	"coach-backend/internal/shared/jsonx"
)

// ErrBadResponse indicates the model response could not be parsed after the
// single recovery attempt.
var ErrBadResponse = errors.New("unparseable model response")

// PageFetcher downloads a posting page as plain text.
type PageFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (string, error)
}

// Service turns a job-posting URL into a persisted structured job with an
// interview pack.
type Service struct {
	Fetcher PageFetcher
	LLM     llm.Client
	Repo    Repo
}

// FromURL fetches, parses, and persists the posting at rawURL.
func (s *Service) FromURL(ctx context.Context, userID, rawURL string) (Job, error) {
	text, err := s.Fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		return Job{}, err
	}

	raw, err := s.LLM.ExtractJob(ctx, text)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrInvalidAPIKey):
			return Job{}, fetchErr(CodeInvalidAPIKey, err)
		case errors.Is(err, llm.ErrRateLimited):
			return Job{}, fetchErr(CodeRateLimited, err)
		default:
			return Job{}, err
		}
	}

	recovered, err := jsonx.Recover(raw)
	if err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	var posting JobPosting
	if err := json.Unmarshal(recovered, &posting); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	posting.Sources = appendSource(posting.Sources, rawURL)

	job := Job{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       rawURL,
		Posting:   posting,
		Pack:      BuildInterviewPack(posting),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get returns one job record.
func (s *Service) Get(ctx context.Context, userID, jobID string) (Job, error) {
	return s.Repo.GetByID(ctx, userID, jobID)
}

// List returns the user's jobs, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Job, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func appendSource(sources []string, url string) []string {
	for _, s := range sources {
		if s == url {
			return sources
		}
	}
	return append(sources, url)
}
