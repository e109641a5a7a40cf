package search

import (
	"context"
	"errors"

	"coach-backend/internal/llm"
	"coach-backend/internal/shared/telemetry"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// ErrEmptyQuery indicates a blank search query.
var ErrEmptyQuery = errors.New("empty search query")

// Service runs the tier chain: semantic, then full-text, then substring.
// Any tier failure is logged and the next tier tried; only the final tier's
// failure surfaces.
type Service struct {
	LLM  llm.Client
	Repo Repo
}

// Search executes a query. searchType "semantic" starts at the embedding
// tier; "text" (or anything else) starts at full-text.
func (s *Service) Search(ctx context.Context, userID, query, searchType string, limit int) ([]Result, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if searchType == TierSemantic {
		results, err := s.semantic(ctx, userID, query, limit)
		if err == nil {
			return results, nil
		}
		telemetry.Info("search.tier.semantic", map[string]any{"err": err.Error()})
	}

	results, err := s.Repo.FullText(ctx, userID, query, limit)
	if err == nil {
		return results, nil
	}
	telemetry.Info("search.tier.fulltext", map[string]any{"err": err.Error()})

	return s.Repo.Substring(ctx, userID, query, limit)
}

func (s *Service) semantic(ctx context.Context, userID, query string, limit int) ([]Result, error) {
	vector, err := s.LLM.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.Repo.Semantic(ctx, userID, vector, limit)
}
