package cvs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]CVRecord // userId -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]CVRecord),
	}
}

// Create stores a new record for a user.
func (r *MemoryRepo) Create(ctx context.Context, rec CVRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = append(r.data[rec.UserID], rec)
	return nil
}

// GetByID returns a record by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, cvID string) (CVRecord, error) {
	if err := ctx.Err(); err != nil {
		return CVRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data[userID] {
		if rec.ID == cvID {
			return rec, nil
		}
	}
	return CVRecord{}, ErrNotFound
}

// ListActiveByUser returns active records for a user, newest first.
func (r *MemoryRepo) ListActiveByUser(ctx context.Context, userID string) ([]CVRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CVRecord, 0)
	for _, rec := range r.data[userID] {
		if rec.IsActive {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SetDefault flips the default flag to the given record under one lock.
func (r *MemoryRepo) SetDefault(ctx context.Context, userID, cvID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := r.data[userID]
	found := false
	for i := range recs {
		if recs[i].ID == cvID && recs[i].IsActive {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range recs {
		if recs[i].IsActive {
			recs[i].IsDefault = recs[i].ID == cvID
		}
	}
	r.data[userID] = recs
	return nil
}

// Deactivate clears the active flag for a record.
func (r *MemoryRepo) Deactivate(ctx context.Context, userID, cvID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID == cvID && recs[i].IsActive {
			recs[i].IsActive = false
			recs[i].IsDefault = false
			r.data[userID] = recs
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
