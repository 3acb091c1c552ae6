package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/repository"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// CustodianService resolves owner-scoped views: the venues a custodian owns
// and the bookings on them. Identifiers are validated as custodian-typed
// users before scoping.
type CustodianService struct {
	users    repository.UserRepository
	venues   repository.VenueRepository
	bookings *BookingService
}

// NewCustodianService constructs the service.
func NewCustodianService(users repository.UserRepository, venues repository.VenueRepository, bookings *BookingService) *CustodianService {
	return &CustodianService{
		users:    users,
		venues:   venues,
		bookings: bookings,
	}
}

// Get returns the custodian user record.
func (s *CustodianService) Get(ctx context.Context, custodianID string) (*domain.User, error) {
	return s.resolveCustodian(ctx, custodianID)
}

// List returns all custodian-typed users.
func (s *CustodianService) List(ctx context.Context) ([]domain.User, error) {
	custodians, err := s.users.ListByType(ctx, domain.UserTypeCustodian)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return custodians, nil
}

// VenuesFor returns the venues currently owned by the custodian.
func (s *CustodianService) VenuesFor(ctx context.Context, custodianID string) ([]domain.Venue, error) {
	if _, err := s.resolveCustodian(ctx, custodianID); err != nil {
		return nil, err
	}
	venues, err := s.venues.ListByCustodian(ctx, custodianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return venues, nil
}

// BookingsFor returns all bookings on venues the custodian owns.
func (s *CustodianService) BookingsFor(ctx context.Context, custodianID string) ([]domain.Booking, error) {
	if _, err := s.resolveCustodian(ctx, custodianID); err != nil {
		return nil, err
	}
	return s.bookings.ListForCustodian(ctx, custodianID)
}

// PendingBookingsFor returns the custodian's approval queue.
func (s *CustodianService) PendingBookingsFor(ctx context.Context, custodianID string) ([]domain.Booking, error) {
	if _, err := s.resolveCustodian(ctx, custodianID); err != nil {
		return nil, err
	}
	return s.bookings.ListPendingForCustodian(ctx, custodianID)
}

func (s *CustodianService) resolveCustodian(ctx context.Context, custodianID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, custodianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("custodian", map[string]any{"custodian_id": custodianID})
		}
		return nil, apperrors.MapError(err)
	}
	if !user.IsCustodian() {
		return nil, apperrors.NewNotFound("custodian", map[string]any{"custodian_id": custodianID})
	}
	return user, nil
}
