package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string][]Job // user_id -> jobs
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string][]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.UserID] = append(r.jobs[job.UserID], job)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, jobID string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs[userID] {
		if job.ID == jobID {
			return job, nil
		}
	}
	return Job{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]Job(nil), r.jobs[userID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
