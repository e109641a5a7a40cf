package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, p Profile) error {
	targetRoles, err := json.Marshal(emptyIfNil(p.TargetRoles))
	if err != nil {
		return err
	}
	networkSkills, err := json.Marshal(emptyIfNil(p.NetworkSkills))
	if err != nil {
		return err
	}

	const query = `
INSERT INTO profiles (
	user_id, full_name, email, experience_level, target_roles,
	network_id, network_headline, network_location, network_industry,
	network_summary, network_skills, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
ON CONFLICT (user_id) DO UPDATE
SET full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    experience_level = EXCLUDED.experience_level,
    target_roles = EXCLUDED.target_roles,
    network_id = EXCLUDED.network_id,
    network_headline = EXCLUDED.network_headline,
    network_location = EXCLUDED.network_location,
    network_industry = EXCLUDED.network_industry,
    network_summary = EXCLUDED.network_summary,
    network_skills = EXCLUDED.network_skills,
    updated_at = now()`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		p.UserID,
		p.FullName,
		p.Email,
		p.ExperienceLevel,
		targetRoles,
		p.NetworkID,
		p.NetworkHeadline,
		p.NetworkLocation,
		p.NetworkIndustry,
		p.NetworkSummary,
		networkSkills,
	)
	return err
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, full_name, email, experience_level, target_roles,
       network_id, network_headline, network_location, network_industry,
       network_summary, network_skills, updated_at
FROM profiles
WHERE user_id = $1`

	var p Profile
	var fullName, email, experienceLevel, networkID sql.NullString
	var headline, location, industry, summary sql.NullString
	var targetRoles, networkSkills []byte

	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&fullName,
		&email,
		&experienceLevel,
		&targetRoles,
		&networkID,
		&headline,
		&location,
		&industry,
		&summary,
		&networkSkills,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	p.FullName = fullName.String
	p.Email = email.String
	p.ExperienceLevel = experienceLevel.String
	p.NetworkID = networkID.String
	p.NetworkHeadline = headline.String
	p.NetworkLocation = location.String
	p.NetworkIndustry = industry.String
	p.NetworkSummary = summary.String
	if err := json.Unmarshal(targetRoles, &p.TargetRoles); err != nil {
		return Profile{}, err
	}
	if err := json.Unmarshal(networkSkills, &p.NetworkSkills); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

var _ Repo = (*PGRepo)(nil)
