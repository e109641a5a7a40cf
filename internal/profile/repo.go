package profile

import (
	"context"
	"errors"
)

// ErrNotFound indicates no profile exists for the user.
var ErrNotFound = errors.New("profile not found")

// Repo persists user profiles.
type Repo interface {
	Upsert(ctx context.Context, p Profile) error
	GetByUser(ctx context.Context, userID string) (Profile, error)
}
