package profile

import "coach-backend/internal/pipeline"

// ScoreProfile rates the base profile: four fields, 25 points each.
func ScoreProfile(p Profile) float64 {
	filled := 0
	if p.FullName != "" {
		filled++
	}
	if p.Email != "" {
		filled++
	}
	if p.ExperienceLevel != "" {
		filled++
	}
	if len(p.TargetRoles) > 0 {
		filled++
	}
	return float64(filled) / 4 * 100
}

// ScoreNetwork rates the linked network profile. Without a linked account
// the score is zero regardless of any stray field values.
func ScoreNetwork(p Profile) float64 {
	if p.NetworkID == "" {
		return 0
	}
	filled := 0
	if p.NetworkHeadline != "" {
		filled++
	}
	if p.NetworkLocation != "" {
		filled++
	}
	if p.NetworkIndustry != "" {
		filled++
	}
	if p.NetworkSummary != "" {
		filled++
	}
	return float64(filled) / 4 * 100
}

// ScoreCV rates structured CV content: 25 points per populated section,
// with certifications and languages counting as one section together.
func ScoreCV(content pipeline.StructuredContent) float64 {
	score := 0.0
	if len(content.Skills) > 0 {
		score += 25
	}
	if len(content.Experience) > 0 {
		score += 25
	}
	if len(content.Education) > 0 {
		score += 25
	}
	if len(content.Certifications) > 0 || len(content.Languages) > 0 {
		score += 25
	}
	return score
}

// ScoreOverall is the unweighted mean of the three section scores.
func ScoreOverall(c Completeness) float64 {
	return (c.Profile + c.Network + c.CV) / 3
}
