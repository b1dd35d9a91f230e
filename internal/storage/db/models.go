package db

import "time"

// User is a row of the users table.
type User struct {
	ID           uint64
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertUserParams are the arguments to [Queries.UpsertUser].
type UpsertUserParams struct {
	ID           uint64
	Name         string
	PasswordHash []byte
}

// GetUsersParams are the arguments to [Queries.GetUsers].
type GetUsersParams struct {
	AfterName string
	Limit     int64
}
