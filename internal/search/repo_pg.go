package search

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"
)

// PGRepo implements all three search tiers and the embedding sink on
// Postgres with the pgvector extension.
type PGRepo struct {
	DB *sql.DB
}

// SaveEmbedding upserts the embedding vector for a CV. Satisfies
// pipeline.EmbeddingSink.
func (r *PGRepo) SaveEmbedding(ctx context.Context, userID, cvID string, vector []float32) error {
	const query = `
INSERT INTO cv_embeddings (cv_id, user_id, embedding, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (cv_id) DO UPDATE
SET embedding = EXCLUDED.embedding,
    created_at = now()`
	_, err := r.DB.ExecContext(ctx, query, cvID, userID, pgvector.NewVector(vector))
	return err
}

// Semantic ranks CVs by cosine similarity to the query vector. Matches at
// or below the similarity threshold are dropped.
func (r *PGRepo) Semantic(ctx context.Context, userID string, vector []float32, limit int) ([]Result, error) {
	const query = `
SELECT e.cv_id, rec.file_name, left(c.raw_text, 160), 1 - (e.embedding <=> $2) AS similarity
FROM cv_embeddings e
JOIN cv_records rec ON rec.id = e.cv_id
JOIN cv_contents c ON c.cv_id = e.cv_id
WHERE e.user_id = $1
  AND rec.is_active
  AND 1 - (e.embedding <=> $2) > $3
ORDER BY e.embedding <=> $2
LIMIT $4`
	rows, err := r.DB.QueryContext(ctx, query, userID, pgvector.NewVector(vector), similarityThreshold, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, TierSemantic)
}

// FullText ranks CVs with Postgres full-text search over the raw text.
func (r *PGRepo) FullText(ctx context.Context, userID, q string, limit int) ([]Result, error) {
	const query = `
SELECT c.cv_id, rec.file_name, left(c.raw_text, 160),
       ts_rank(to_tsvector('english', c.raw_text), plainto_tsquery('english', $2)) AS rank
FROM cv_contents c
JOIN cv_records rec ON rec.id = c.cv_id
WHERE c.user_id = $1
  AND rec.is_active
  AND to_tsvector('english', c.raw_text) @@ plainto_tsquery('english', $2)
ORDER BY rank DESC
LIMIT $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, q, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, TierFullText)
}

// Substring is the last-resort tier: a case-insensitive pattern match.
func (r *PGRepo) Substring(ctx context.Context, userID, q string, limit int) ([]Result, error) {
	const query = `
SELECT c.cv_id, rec.file_name, left(c.raw_text, 160), 0.0
FROM cv_contents c
JOIN cv_records rec ON rec.id = c.cv_id
WHERE c.user_id = $1
  AND rec.is_active
  AND c.raw_text ILIKE '%' || $2 || '%'
ORDER BY c.created_at DESC
LIMIT $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, q, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, TierSubstring)
}

func collect(rows *sql.Rows, tier string) ([]Result, error) {
	defer rows.Close()
	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.CVID, &res.FileName, &res.Snippet, &res.Score); err != nil {
			return nil, err
		}
		res.Tier = tier
		results = append(results, res)
	}
	return results, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
