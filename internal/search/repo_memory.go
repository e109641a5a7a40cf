package search

import (
	"context"
	"strings"

	"coach-backend/internal/cvs"
	"coach-backend/internal/pipeline"
)

// MemoryRepo serves only the substring tier, over the in-memory stores.
// Semantic and full-text search need Postgres.
type MemoryRepo struct {
	Records  cvs.Repo
	Contents *pipeline.MemoryContentRepo
}

func (r *MemoryRepo) Semantic(ctx context.Context, userID string, vector []float32, limit int) ([]Result, error) {
	return nil, ErrTierUnsupported
}

func (r *MemoryRepo) FullText(ctx context.Context, userID, query string, limit int) ([]Result, error) {
	return nil, ErrTierUnsupported
}

func (r *MemoryRepo) Substring(ctx context.Context, userID, query string, limit int) ([]Result, error) {
	contents, err := r.Contents.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := r.Records.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(records))
	for _, rec := range records {
		names[rec.ID] = rec.FileName
	}

	needle := strings.ToLower(query)
	var results []Result
	for _, content := range contents {
		if len(results) >= limit {
			break
		}
		name, active := names[content.CVID]
		if !active || !strings.Contains(strings.ToLower(content.RawText), needle) {
			continue
		}
		results = append(results, Result{
			CVID:     content.CVID,
			FileName: name,
			Snippet:  snippet(content.RawText),
			Tier:     TierSubstring,
		})
	}
	return results, nil
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > 160 {
		runes = runes[:160]
	}
	return string(runes)
}

var _ Repo = (*MemoryRepo)(nil)
