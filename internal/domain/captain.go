package domain

import "time"

// CaptainStatus represents the account standing of a captain.
type CaptainStatus string

const (
	CaptainStatusActive  CaptainStatus = "active"
	CaptainStatusBlocked CaptainStatus = "blocked"
)

// Captain represents a driver in the system.
type Captain struct {
	ID     string
	Name   string
	Phone  string
	Email  string
	Status CaptainStatus

	// Latest reported coordinate, persisted from the realtime channel.
	LastLat           float64
	LastLng           float64
	LocationUpdatedAt time.Time
}

// Blocked reports whether the captain may be dispatched.
func (c *Captain) Blocked() bool {
	return c.Status == CaptainStatusBlocked
}
