package model

import "time"

// User represents a registered job seeker.
type User struct {
	ID              int64
	Login           string
	PasswordHash    string
	OpenID          string
	MembershipLevel int
	CreatedAt       time.Time
}
