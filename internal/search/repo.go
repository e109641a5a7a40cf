package search

import (
	"context"
	"errors"
)

// Search tiers, in order of preference.
const (
	TierSemantic  = "semantic"
	TierFullText  = "fulltext"
	TierSubstring = "substring"
)

// similarityThreshold filters out semantic matches with near-zero cosine
// similarity to the query.
const similarityThreshold = 0.1

// ErrTierUnsupported indicates a backend cannot serve the requested tier.
var ErrTierUnsupported = errors.New("search tier unsupported")

// Result is one CV matched by a search query.
type Result struct {
	CVID     string  `json:"cvId"`
	FileName string  `json:"fileName"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
	Tier     string  `json:"tier"`
}

// Repo executes one search tier against stored CV content. A tier failure
// makes the service fall through to the next tier.
type Repo interface {
	Semantic(ctx context.Context, userID string, vector []float32, limit int) ([]Result, error)
	FullText(ctx context.Context, userID, query string, limit int) ([]Result, error)
	Substring(ctx context.Context, userID, query string, limit int) ([]Result, error)
}
