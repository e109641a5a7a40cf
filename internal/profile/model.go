package profile

import "time"

// Profile is a user's base profile plus optional professional-network
// fields. Network fields are only meaningful when NetworkID is set.
type Profile struct {
	UserID          string    `json:"-"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	ExperienceLevel string    `json:"experienceLevel"`
	TargetRoles     []string  `json:"targetRoles"`
	NetworkID       string    `json:"networkId,omitempty"`
	NetworkHeadline string    `json:"networkHeadline,omitempty"`
	NetworkLocation string    `json:"networkLocation,omitempty"`
	NetworkIndustry string    `json:"networkIndustry,omitempty"`
	NetworkSummary  string    `json:"networkSummary,omitempty"`
	NetworkSkills   []string  `json:"networkSkills,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Completeness reports how filled-in each data source is, all in [0,100].
type Completeness struct {
	Profile float64 `json:"profile"`
	Network float64 `json:"network"`
	CV      float64 `json:"cv"`
	Overall float64 `json:"overall"`
}
