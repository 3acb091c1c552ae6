package events

import (
	"time"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated        EventType = "booking_created"
	EventBookingStatusChanged  EventType = "booking_status_changed"
	EventBookingDeleted        EventType = "booking_deleted"
	EventVenueCustodianChanged EventType = "venue_custodian_changed"
)

// Actor encapsulates the party behind an event.
type Actor struct {
	Party domain.CancelParty `json:"party"`
	ID    *string            `json:"id,omitempty"`
}

// Event represents a domain event emitted by services. SubjectID is the
// booking or venue the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	UserID      string    `json:"user_id"`
	VenueID     string    `json:"venue_id"`
	CustodianID *string   `json:"custodian_id,omitempty"`
	EventName   string    `json:"event_name"`
	Date        time.Time `json:"date"`
	TimeSlot    string    `json:"time_slot"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	OldStatus   domain.BookingStatus `json:"old_status"`
	NewStatus   domain.BookingStatus `json:"new_status"`
	VenueID     string               `json:"venue_id"`
	Date        time.Time            `json:"date"`
	TimeSlot    string               `json:"time_slot"`
	CancelledBy *domain.CancelParty  `json:"cancelled_by,omitempty"`
}

// BookingDeletedPayload payload.
type BookingDeletedPayload struct {
	VenueID  string               `json:"venue_id"`
	Date     time.Time            `json:"date"`
	TimeSlot string               `json:"time_slot"`
	Status   domain.BookingStatus `json:"status"`
}

// VenueCustodianChangedPayload payload.
type VenueCustodianChangedPayload struct {
	VenueID        string  `json:"venue_id"`
	OldCustodianID *string `json:"old_custodian_id,omitempty"`
	NewCustodianID *string `json:"new_custodian_id,omitempty"`
}
