package pipeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGContentRepo implements ContentRepo using Postgres.
type PGContentRepo struct {
	DB *sql.DB
}

// Save upserts the processed content for a CV.
func (r *PGContentRepo) Save(ctx context.Context, content ProcessedContent) error {
	structured, err := json.Marshal(content.Structured)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO cv_contents (cv_id, user_id, raw_text, processing_method, confidence, structured, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (cv_id) DO UPDATE
SET raw_text = EXCLUDED.raw_text,
    processing_method = EXCLUDED.processing_method,
    confidence = EXCLUDED.confidence,
    structured = EXCLUDED.structured,
    created_at = EXCLUDED.created_at`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		content.CVID,
		content.UserID,
		content.RawText,
		string(content.Method),
		content.Confidence,
		structured,
		content.CreatedAt,
	)
	return err
}

// GetByCV returns the processed content for one CV.
func (r *PGContentRepo) GetByCV(ctx context.Context, userID, cvID string) (ProcessedContent, error) {
	const query = `
SELECT cv_id, user_id, raw_text, processing_method, confidence, structured, created_at
FROM cv_contents
WHERE user_id = $1 AND cv_id = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID, cvID))
}

// GetLatestByUser returns the most recently processed content for a user.
func (r *PGContentRepo) GetLatestByUser(ctx context.Context, userID string) (ProcessedContent, error) {
	const query = `
SELECT cv_id, user_id, raw_text, processing_method, confidence, structured, created_at
FROM cv_contents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGContentRepo) scanOne(row *sql.Row) (ProcessedContent, error) {
	var content ProcessedContent
	var method string
	var confidence sql.NullFloat64
	var structured []byte
	err := row.Scan(
		&content.CVID,
		&content.UserID,
		&content.RawText,
		&method,
		&confidence,
		&structured,
		&content.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProcessedContent{}, ErrNoContent
		}
		return ProcessedContent{}, err
	}
	content.Method = ProcessingMethod(method)
	if confidence.Valid {
		content.Confidence = confidence.Float64
	}
	if len(structured) > 0 {
		if err := json.Unmarshal(structured, &content.Structured); err != nil {
			return ProcessedContent{}, err
		}
	}
	return content, nil
}

var _ ContentRepo = (*PGContentRepo)(nil)
