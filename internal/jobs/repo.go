package jobs

import "context"

// Repo persists job records per user.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, userID, jobID string) (Job, error)
	ListByUser(ctx context.Context, userID string) ([]Job, error)
}
