package cvs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new CV record.
func (r *PGRepo) Create(ctx context.Context, rec CVRecord) error {
	const query = `
INSERT INTO cv_records (
    id,
    user_id,
    file_name,
    size_bytes,
    storage_key,
    mime_type,
    is_default,
    is_active,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.FileName,
		rec.SizeBytes,
		rec.StorageKey,
		rec.MimeType,
		rec.IsDefault,
		rec.IsActive,
		rec.CreatedAt,
	)
	return err
}

// GetByID fetches a CV record by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, cvID string) (CVRecord, error) {
	const query = `
SELECT id, user_id, file_name, size_bytes, storage_key, mime_type, is_default, is_active, created_at
FROM cv_records
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var rec CVRecord
	err := r.DB.QueryRowContext(ctx, query, userID, cvID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.FileName,
		&rec.SizeBytes,
		&rec.StorageKey,
		&rec.MimeType,
		&rec.IsDefault,
		&rec.IsActive,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CVRecord{}, ErrNotFound
		}
		return CVRecord{}, err
	}
	return rec, nil
}

// ListActiveByUser lists active CV records newest-first.
func (r *PGRepo) ListActiveByUser(ctx context.Context, userID string) ([]CVRecord, error) {
	const query = `
SELECT id, user_id, file_name, size_bytes, storage_key, mime_type, is_default, is_active, created_at
FROM cv_records
WHERE user_id = $1 AND is_active
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CVRecord
	for rows.Next() {
		var rec CVRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.FileName,
			&rec.SizeBytes,
			&rec.StorageKey,
			&rec.MimeType,
			&rec.IsDefault,
			&rec.IsActive,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SetDefault flips the default flag to the given CV in one statement, so two
// concurrent calls cannot leave zero or two defaults for a user. The EXISTS
// guard keeps an unknown or inactive target from clearing the current default.
func (r *PGRepo) SetDefault(ctx context.Context, userID, cvID string) error {
	const query = `
UPDATE cv_records
SET is_default = (id = $2)
WHERE user_id = $1 AND is_active
  AND EXISTS (
    SELECT 1 FROM cv_records
    WHERE id = $2 AND user_id = $1 AND is_active
  )`
	res, err := r.DB.ExecContext(ctx, query, userID, cvID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate clears the active flag; the row and its derived content remain.
func (r *PGRepo) Deactivate(ctx context.Context, userID, cvID string) error {
	const query = `
UPDATE cv_records
SET is_active = FALSE, is_default = FALSE
WHERE user_id = $1 AND id = $2 AND is_active`
	res, err := r.DB.ExecContext(ctx, query, userID, cvID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
