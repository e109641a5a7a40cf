package cvs

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"coach-backend/internal/shared/storage/object"
	"coach-backend/internal/shared/telemetry"
)

const previewExpires = 15 * time.Minute

// Service contains business logic for CV records.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload validates the file, saves it to object storage, and records the CV.
// Validation failures report a typed error and leave no side effects.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredMime string, sizeBytes int64, r io.Reader) (CVRecord, error) {
	if userID == "" || fileName == "" {
		return CVRecord{}, ErrInvalidInput
	}
	if err := ValidateFile(fileName, declaredMime, sizeBytes); err != nil {
		return CVRecord{}, err
	}

	storageKey, size, detectedMime, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return CVRecord{}, err
	}

	mimeType := declaredMime
	if mimeType == "" {
		mimeType = detectedMime
	}

	rec := CVRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		SizeBytes:  size,
		StorageKey: storageKey,
		MimeType:   mimeType,
		IsDefault:  false,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return CVRecord{}, err
	}

	return rec, nil
}

// List returns the user's active CVs, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]CVRecord, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListActiveByUser(ctx, userID)
}

// Get returns one CV record.
func (s *Service) Get(ctx context.Context, userID, cvID string) (CVRecord, error) {
	if userID == "" || cvID == "" {
		return CVRecord{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, cvID)
}

// SetDefault marks the given CV as the user's default.
func (s *Service) SetDefault(ctx context.Context, userID, cvID string) error {
	if userID == "" || cvID == "" {
		return ErrInvalidInput
	}
	return s.Repo.SetDefault(ctx, userID, cvID)
}

// Delete soft-deletes the record and removes the stored object. A storage
// removal failure is logged but does not undo the deactivation.
func (s *Service) Delete(ctx context.Context, userID, cvID string) error {
	if userID == "" || cvID == "" {
		return ErrInvalidInput
	}
	rec, err := s.Repo.GetByID(ctx, userID, cvID)
	if err != nil {
		return err
	}
	if err := s.Repo.Deactivate(ctx, userID, cvID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, rec.StorageKey); err != nil {
		telemetry.Error("cvs.delete.storage", map[string]any{
			"cv_id":       cvID,
			"storage_key": rec.StorageKey,
			"err":         err.Error(),
		})
	}
	return nil
}

// PreviewURL issues a time-limited link to the stored file.
func (s *Service) PreviewURL(ctx context.Context, userID, cvID string) (string, error) {
	rec, err := s.Get(ctx, userID, cvID)
	if err != nil {
		return "", err
	}
	return s.Store.PresignGet(ctx, rec.StorageKey, previewExpires)
}
