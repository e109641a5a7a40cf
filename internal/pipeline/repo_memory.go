package pipeline

import (
	"context"
	"sync"
)

// MemoryContentRepo is an in-memory ContentRepo used when no database
// is configured.
type MemoryContentRepo struct {
	mu       sync.RWMutex
	contents map[string]ProcessedContent // cv_id -> content
}

func NewMemoryContentRepo() *MemoryContentRepo {
	return &MemoryContentRepo{contents: make(map[string]ProcessedContent)}
}

func (r *MemoryContentRepo) Save(ctx context.Context, content ProcessedContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents[content.CVID] = content
	return nil
}

func (r *MemoryContentRepo) GetByCV(ctx context.Context, userID, cvID string) (ProcessedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	content, ok := r.contents[cvID]
	if !ok || content.UserID != userID {
		return ProcessedContent{}, ErrNoContent
	}
	return content, nil
}

func (r *MemoryContentRepo) GetLatestByUser(ctx context.Context, userID string) (ProcessedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest ProcessedContent
	found := false
	for _, content := range r.contents {
		if content.UserID != userID {
			continue
		}
		if !found || content.CreatedAt.After(latest.CreatedAt) {
			latest = content
			found = true
		}
	}
	if !found {
		return ProcessedContent{}, ErrNoContent
	}
	return latest, nil
}

// ListByUser returns all processed contents for a user, unordered.
func (r *MemoryContentRepo) ListByUser(ctx context.Context, userID string) ([]ProcessedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ProcessedContent
	for _, content := range r.contents {
		if content.UserID == userID {
			out = append(out, content)
		}
	}
	return out, nil
}

var _ ContentRepo = (*MemoryContentRepo)(nil)
