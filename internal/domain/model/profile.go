package model

import "time"

// Profile carries the applicant details used to match postings.
type Profile struct {
	UserID         int64
	RealName       string
	Education      string
	GraduationYear int
	TargetRegion   string
	UpdatedAt      time.Time
}
