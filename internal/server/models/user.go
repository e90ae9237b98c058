// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. PasswordHash never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds per-user application data. Its ID equals the user's ID.
type Profile struct {
	ID        string
	Email     string
	Role      string
	FullName  string
	Phone     string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
