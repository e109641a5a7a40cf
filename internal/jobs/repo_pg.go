package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Posting and pack are stored as
// JSONB documents under the requirements and interview_pack columns.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	posting, err := json.Marshal(job.Posting)
	if err != nil {
		return err
	}
	pack, err := json.Marshal(job.Pack)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO jobs (id, user_id, source_url, title, company, requirements, interview_pack, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		job.ID, job.UserID, job.URL, job.Posting.Title, job.Posting.Company,
		posting, pack, job.CreatedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, jobID string) (Job, error) {
	const query = `
SELECT id, user_id, source_url, requirements, interview_pack, created_at
FROM jobs
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return scanJob(r.DB.QueryRowContext(ctx, query, userID, jobID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	const query = `
SELECT id, user_id, source_url, requirements, interview_pack, created_at
FROM jobs
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJobRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row *sql.Row) (Job, error) {
	job, err := scanJobRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func scanJobRow(row rowScanner) (Job, error) {
	var job Job
	var sourceURL sql.NullString
	var posting, pack []byte
	if err := row.Scan(&job.ID, &job.UserID, &sourceURL, &posting, &pack, &job.CreatedAt); err != nil {
		return Job{}, err
	}
	job.URL = sourceURL.String
	if len(posting) > 0 {
		if err := json.Unmarshal(posting, &job.Posting); err != nil {
			return Job{}, err
		}
	}
	if len(pack) > 0 {
		if err := json.Unmarshal(pack, &job.Pack); err != nil {
			return Job{}, err
		}
	}
	return job, nil
}

var _ Repo = (*PGRepo)(nil)
