package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"coach-backend/internal/pipeline"
)

// ContentSource exposes the latest processed CV content for a user.
type ContentSource interface {
	GetLatestByUser(ctx context.Context, userID string) (pipeline.ProcessedContent, error)
}

// Aggregate is the combined profile view: base profile, latest structured
// CV, the deduplicated skill union, and completeness scores.
type Aggregate struct {
	Profile      Profile                     `json:"profile"`
	CV           *pipeline.StructuredContent `json:"cv,omitempty"`
	Skills       []string                    `json:"skills"`
	Completeness Completeness                `json:"completeness"`
}

// Service aggregates profile data and recomputes completeness per request.
type Service struct {
	Repo     Repo
	Contents ContentSource
}

// Save upserts the user's profile.
func (s *Service) Save(ctx context.Context, p Profile) error {
	p.UpdatedAt = time.Now().UTC()
	return s.Repo.Upsert(ctx, p)
}

// Get builds the aggregate view. A missing profile or unprocessed CV is not
// an error; the corresponding sections just score zero.
func (s *Service) Get(ctx context.Context, userID string) (Aggregate, error) {
	p, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Aggregate{}, err
		}
		p = Profile{UserID: userID, TargetRoles: []string{}}
	}

	agg := Aggregate{Profile: p}

	content, err := s.Contents.GetLatestByUser(ctx, userID)
	switch {
	case err == nil:
		structured := content.Structured
		agg.CV = &structured
	case errors.Is(err, pipeline.ErrNoContent):
		// no CV processed yet
	default:
		return Aggregate{}, err
	}

	agg.Skills = mergeSkills(p.NetworkSkills, cvSkills(agg.CV))

	agg.Completeness = Completeness{
		Profile: ScoreProfile(p),
		Network: ScoreNetwork(p),
		CV:      cvScore(agg.CV),
	}
	agg.Completeness.Overall = ScoreOverall(agg.Completeness)

	return agg, nil
}

func cvSkills(cv *pipeline.StructuredContent) []string {
	if cv == nil {
		return nil
	}
	return cv.Skills
}

func cvScore(cv *pipeline.StructuredContent) float64 {
	if cv == nil {
		return 0
	}
	return ScoreCV(*cv)
}

// mergeSkills unions skill lists, deduplicating case-insensitively and
// keeping the first-seen casing.
func mergeSkills(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, skill := range list {
			trimmed := strings.TrimSpace(skill)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, trimmed)
		}
	}
	return out
}
