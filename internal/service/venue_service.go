package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/events"
	"github.com/spec-kit/venue-booking-service/internal/repository"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// VenueService manages venues and their custodian assignment.
type VenueService struct {
	venues     repository.VenueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// VenueCreateInput describes venue creation payload.
type VenueCreateInput struct {
	Name        string
	Location    string
	Capacity    int
	CustodianID *string
	Description string
	Amenities   []string
	Image       *string
}

// VenueUpdateInput carries partial venue updates. A non-nil CustodianID
// reassigns ownership; an empty string clears it.
type VenueUpdateInput struct {
	Name        *string
	Location    *string
	Capacity    *int
	CustodianID *string
	Description *string
	Amenities   []string
	Image       *string
}

// VenueListQuery filters venue listings.
type VenueListQuery struct {
	Location    *string
	MinCapacity *int
	NameSearch  *string
}

// NewVenueService constructs the service.
func NewVenueService(venues repository.VenueRepository, users repository.UserRepository, dispatcher events.Dispatcher) *VenueService {
	return &VenueService{venues: venues, users: users, dispatcher: dispatcher}
}

// Create persists a venue, validating the owning custodian when supplied.
func (s *VenueService) Create(ctx context.Context, input VenueCreateInput) (*domain.Venue, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Capacity <= 0 {
		return nil, apperrors.NewValidationError("capacity must be positive", nil)
	}
	if input.CustodianID != nil {
		if err := s.requireCustodian(ctx, *input.CustodianID); err != nil {
			return nil, err
		}
	}

	venue := &domain.Venue{
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Capacity:    input.Capacity,
		CustodianID: input.CustodianID,
		Description: strings.TrimSpace(input.Description),
		Amenities:   input.Amenities,
		Image:       input.Image,
	}
	if venue.Amenities == nil {
		venue.Amenities = []string{}
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// Get fetches a venue by id.
func (s *VenueService) Get(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("venue", map[string]any{"venue_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// Update applies partial changes; custodian reassignment is validated and
// announced so owner-scoped views stay coherent.
func (s *VenueService) Update(ctx context.Context, id string, input VenueUpdateInput) (*domain.Venue, error) {
	venue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		venue.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil && strings.TrimSpace(*input.Location) != "" {
		venue.Location = strings.TrimSpace(*input.Location)
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, apperrors.NewValidationError("capacity must be positive", nil)
		}
		venue.Capacity = *input.Capacity
	}
	if input.Description != nil {
		venue.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amenities != nil {
		venue.Amenities = input.Amenities
	}
	if input.Image != nil {
		venue.Image = input.Image
	}

	oldCustodian := venue.CustodianID
	custodianChanged := false
	if input.CustodianID != nil {
		if *input.CustodianID == "" {
			venue.CustodianID = nil
		} else {
			if err := s.requireCustodian(ctx, *input.CustodianID); err != nil {
				return nil, err
			}
			venue.CustodianID = input.CustodianID
		}
		custodianChanged = !equalID(oldCustodian, venue.CustodianID)
	}

	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, apperrors.MapError(err)
	}
	if custodianChanged {
		s.publishCustodianChange(ctx, venue, oldCustodian)
	}
	return venue, nil
}

// Delete removes a venue.
func (s *VenueService) Delete(ctx context.Context, id string) error {
	if err := s.venues.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("venue", map[string]any{"venue_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// List returns venues matching the query.
func (s *VenueService) List(ctx context.Context, query VenueListQuery) ([]domain.Venue, error) {
	venues, err := s.venues.ListWithFilter(ctx, repository.VenueFilter{
		Location:     query.Location,
		MinCapacity:  query.MinCapacity,
		NameContains: query.NameSearch,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return venues, nil
}

// requireCustodian ensures the referenced user exists and may own venues.
func (s *VenueService) requireCustodian(ctx context.Context, custodianID string) error {
	user, err := s.users.GetByID(ctx, custodianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("custodian", map[string]any{"custodian_id": custodianID})
		}
		return apperrors.MapError(err)
	}
	if !user.IsCustodian() {
		return apperrors.NewValidationError("user is not a custodian", map[string]any{"user_id": custodianID})
	}
	return nil
}

func (s *VenueService) publishCustodianChange(ctx context.Context, venue *domain.Venue, oldCustodian *string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventVenueCustodianChanged,
		SubjectID: venue.ID,
		Actor:     systemActor(),
		Timestamp: time.Now(),
		Payload: events.VenueCustodianChangedPayload{
			VenueID:        venue.ID,
			OldCustodianID: oldCustodian,
			NewCustodianID: venue.CustodianID,
		},
	})
}

func equalID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
