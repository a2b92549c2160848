package domain

import "time"

type Admin struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string // argon2 encoded
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
