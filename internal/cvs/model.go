package cvs

import "time"

// CVRecord represents an uploaded CV owned by a user. Records are never
// hard-deleted; delete requests clear IsActive.
type CVRecord struct {
	ID         string
	UserID     string
	FileName   string
	SizeBytes  int64
	StorageKey string
	MimeType   string
	IsDefault  bool
	IsActive   bool
	CreatedAt  time.Time
}
