package model

import "time"

// Profile is an application account: an admin planning events or a staff
// member stating availability.  Corresponds to a row in the `profiles`
// table.  PasswordHash never leaves the repository/handler boundary.
type Profile struct {
	ID           uint64
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string // ADMIN or STAFF
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
