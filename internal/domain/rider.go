package domain

import "time"

// Rider represents the requesting user role.
type Rider struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}
