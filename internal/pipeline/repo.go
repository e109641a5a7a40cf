package pipeline

import (
	"context"
	"errors"
)

// ErrNoContent indicates a CV has not been processed yet.
var ErrNoContent = errors.New("cv content not found")

// ContentRepo persists processed CV content. Content is written once per
// upload; a re-run for the same CV replaces the previous row.
type ContentRepo interface {
	Save(ctx context.Context, content ProcessedContent) error
	GetByCV(ctx context.Context, userID, cvID string) (ProcessedContent, error)
	GetLatestByUser(ctx context.Context, userID string) (ProcessedContent, error)
}
