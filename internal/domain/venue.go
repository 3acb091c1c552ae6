package domain

import "time"

// Venue is a reservable facility. A venue has at most one owning custodian
// at a time; ownership is held as a plain identifier and may be reassigned.
type Venue struct {
	ID          string
	Name        string
	Location    string
	Capacity    int
	CustodianID *string
	Description string
	Amenities   []string
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
