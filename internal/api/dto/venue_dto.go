package dto

import "time"

// CreateVenueRequest payload.
type CreateVenueRequest struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	CustodianID *string  `json:"custodian_id"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Image       *string  `json:"image"`
}

// UpdateVenueRequest carries partial venue updates. An empty custodian_id
// clears ownership.
type UpdateVenueRequest struct {
	Name        *string  `json:"name"`
	Location    *string  `json:"location"`
	Capacity    *int     `json:"capacity"`
	CustodianID *string  `json:"custodian_id"`
	Description *string  `json:"description"`
	Amenities   []string `json:"amenities"`
	Image       *string  `json:"image"`
}

// VenueResponse response.
type VenueResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	CustodianID *string   `json:"custodian_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Amenities   []string  `json:"amenities"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
