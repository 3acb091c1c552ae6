package dto

import (
	"time"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	UserType    domain.UserType `json:"user_type"`
	About       *string         `json:"about"`
	Location    *string         `json:"location"`
	Department  *string         `json:"department"`
	Course      *string         `json:"course"`
	Affiliation *string         `json:"affiliation"`
}

// UpdateUserRequest carries partial user updates.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	About       *string `json:"about"`
	Location    *string `json:"location"`
	Department  *string `json:"department"`
	Course      *string `json:"course"`
	Affiliation *string `json:"affiliation"`
}

// UserResponse response.
type UserResponse struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	UserType    domain.UserType `json:"user_type"`
	About       *string         `json:"about,omitempty"`
	Location    *string         `json:"location,omitempty"`
	Department  *string         `json:"department,omitempty"`
	Course      *string         `json:"course,omitempty"`
	Affiliation *string         `json:"affiliation,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
