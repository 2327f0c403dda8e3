package dto

import "time"

// ProfileRequest carries editable profile fields.
type ProfileRequest struct {
	RealName       string `json:"real_name"`
	Education      string `json:"education"`
	GraduationYear int    `json:"graduation_year"`
	TargetRegion   string `json:"target_region"`
}

// ProfileResponse describes the stored profile.
type ProfileResponse struct {
	RealName       string    `json:"real_name"`
	Education      string    `json:"education"`
	GraduationYear int       `json:"graduation_year"`
	TargetRegion   string    `json:"target_region"`
	UpdatedAt      time.Time `json:"updated_at"`
}
