package domain

import "time"

// Station is an org-scoped physical or organizational unit on a production
// line. A station is matched to a machine in the line overview by code, or by
// case-insensitive name when no code match exists.
type Station struct {
	ID        int64     `json:"id"`
	OrgID     string    `json:"orgID"`
	Line      string    `json:"line"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// StationRoleRequirement is one skill demand attached to a station. Only
// mandatory requirements participate in NO-GO determination.
type StationRoleRequirement struct {
	ID            int64 `json:"id"`
	StationID     int64 `json:"stationID"`
	SkillID       int64 `json:"skillID"`
	RequiredLevel int   `json:"requiredLevel"`
	IsMandatory   bool  `json:"isMandatory"`
}
