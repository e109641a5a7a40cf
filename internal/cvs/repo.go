package cvs

import "context"

// Repo defines persistence operations for CV records.
type Repo interface {
	Create(ctx context.Context, rec CVRecord) error
	GetByID(ctx context.Context, userID, cvID string) (CVRecord, error)
	ListActiveByUser(ctx context.Context, userID string) ([]CVRecord, error)
	// SetDefault marks exactly one CV as the user's default in a single
	// conditional update, clearing any previous default atomically.
	SetDefault(ctx context.Context, userID, cvID string) error
	// Deactivate soft-deletes a CV by clearing its active flag.
	Deactivate(ctx context.Context, userID, cvID string) error
}
