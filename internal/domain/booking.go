package domain

import "time"

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
	BookingStatusCanceled BookingStatus = "canceled"
)

// CancelParty identifies who cancelled a booking.
type CancelParty string

const (
	CancelledByUser      CancelParty = "user"
	CancelledByCustodian CancelParty = "custodian"
	CancelledBySystem    CancelParty = "system"
)

// Booking is the aggregate for venue reservations. CustodianID is a
// snapshot of the venue's owner taken at creation time, so later
// reassignment of the venue does not rewrite past bookings.
type Booking struct {
	ID          string
	Reference   string
	UserID      string
	VenueID     string
	CustodianID *string
	EventName   string
	EventType   string
	Description string
	Date        time.Time
	TimeSlot    string
	Capacity    int
	Status      BookingStatus
	CancelledBy *CancelParty
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DateOnly truncates a timestamp to its calendar day in UTC. Booking dates
// are compared as flat equality keys, never as instants.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
