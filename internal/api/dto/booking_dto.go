package dto

import (
	"time"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

// CreateBookingRequest payload. Date uses the 2006-01-02 layout.
type CreateBookingRequest struct {
	UserID      string `json:"user_id"`
	VenueID     string `json:"venue_id"`
	EventName   string `json:"event_name"`
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Capacity    int    `json:"capacity"`
}

// UpdateBookingRequest carries partial booking updates. A supplied status
// goes through the same transition rule as the status endpoint.
type UpdateBookingRequest struct {
	EventName   *string `json:"event_name"`
	EventType   *string `json:"event_type"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	TimeSlot    *string `json:"time_slot"`
	Capacity    *int    `json:"capacity"`
	Status      *string `json:"status"`
	CancelledBy *string `json:"cancelled_by"`
}

// UpdateBookingStatusRequest payload.
type UpdateBookingStatusRequest struct {
	Status      string  `json:"status"`
	CancelledBy *string `json:"cancelled_by"`
}

// BookingResponse response.
type BookingResponse struct {
	ID          string               `json:"id"`
	Reference   string               `json:"reference"`
	UserID      string               `json:"user_id"`
	VenueID     string               `json:"venue_id"`
	CustodianID *string              `json:"custodian_id,omitempty"`
	EventName   string               `json:"event_name"`
	EventType   string               `json:"event_type,omitempty"`
	Description string               `json:"description,omitempty"`
	Date        string               `json:"date"`
	TimeSlot    string               `json:"time_slot"`
	Capacity    int                  `json:"capacity"`
	Status      domain.BookingStatus `json:"status"`
	CancelledBy *domain.CancelParty  `json:"cancelled_by,omitempty"`
	CancelledAt *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// AvailabilityResponse response.
type AvailabilityResponse struct {
	VenueID   string `json:"venue_id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot,omitempty"`
	Available bool   `json:"available"`
}
