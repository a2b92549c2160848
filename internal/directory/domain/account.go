package domain

import "time"

// Account is an alumni profile. One account exists per consumed invite;
// InviteCode records which invite authorized the registration.
type Account struct {
	ID                  string
	Username            string
	PasswordHash        string // argon2 encoded
	Name                string
	Course              string
	GraduationYear      string
	PersonalDescription string
	CareerDescription   string
	Verified            bool
	TermsAccepted       bool
	ProfileImage        string // opaque path/URL, storage handled elsewhere
	FaceImage           string
	FacePoints          string
	ContactLinks        map[string]string
	InviteCode          string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
