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

// BookingService owns the booking state machine: creation, transitions,
// cancellation bookkeeping and the query operations scoped by user, venue,
// date and custodian.
type BookingService struct {
	bookings   repository.BookingRepository
	users      repository.UserRepository
	venues     repository.VenueRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository
	VenueRepo   repository.VenueRepository
	Dispatcher  events.Dispatcher
}

// BookingCreateInput describes booking creation payload.
type BookingCreateInput struct {
	VenueID     string
	EventName   string
	EventType   string
	Description string
	Date        time.Time
	TimeSlot    string
	Capacity    int
}

// BookingUpdateInput carries the mutable descriptive fields. A non-nil
// Status routes through the same transition rule as UpdateStatus.
type BookingUpdateInput struct {
	EventName   *string
	EventType   *string
	Description *string
	Date        *time.Time
	TimeSlot    *string
	Capacity    *int
	Status      *domain.BookingStatus
	CancelledBy *domain.CancelParty
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		users:      deps.UserRepo,
		venues:     deps.VenueRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create resolves the requesting user and venue, snapshots the venue's
// current custodian onto the booking and persists it as pending. The insert
// and the slot-availability check are one atomic unit: a second booking for
// an occupied slot fails with a slot conflict, never a double booking.
func (s *BookingService) Create(ctx context.Context, userID string, input BookingCreateInput) (*domain.Booking, error) {
	if strings.TrimSpace(input.EventName) == "" {
		return nil, apperrors.NewValidationError("event_name required", nil)
	}
	if strings.TrimSpace(input.TimeSlot) == "" {
		return nil, apperrors.NewValidationError("time_slot required", nil)
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("date required", nil)
	}
	if input.Capacity <= 0 {
		return nil, apperrors.NewValidationError("capacity must be positive", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	venue, err := s.venues.GetByID(ctx, input.VenueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("venue", map[string]any{"venue_id": input.VenueID})
		}
		return nil, apperrors.MapError(err)
	}

	booking := &domain.Booking{
		Reference:   generateBookingReference(),
		UserID:      user.ID,
		VenueID:     venue.ID,
		CustodianID: venue.CustodianID,
		EventName:   strings.TrimSpace(input.EventName),
		EventType:   strings.TrimSpace(input.EventType),
		Description: strings.TrimSpace(input.Description),
		Date:        domain.DateOnly(input.Date),
		TimeSlot:    strings.TrimSpace(input.TimeSlot),
		Capacity:    input.Capacity,
		Status:      domain.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookingCreated,
		SubjectID: booking.ID,
		Actor:     userActor(user.ID),
		Payload: events.BookingCreatedPayload{
			UserID:      booking.UserID,
			VenueID:     booking.VenueID,
			CustodianID: booking.CustodianID,
			EventName:   booking.EventName,
			Date:        booking.Date,
			TimeSlot:    booking.TimeSlot,
		},
	})
	return booking, nil
}

// Get fetches a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

// UpdateDetails updates the mutable descriptive fields. Date or slot moves
// re-enter the conflict check; a supplied status goes through the strict
// transition rule.
func (s *BookingService) UpdateDetails(ctx context.Context, id string, input BookingUpdateInput) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.EventName != nil {
		if strings.TrimSpace(*input.EventName) == "" {
			return nil, apperrors.NewValidationError("event_name cannot be empty", nil)
		}
		booking.EventName = strings.TrimSpace(*input.EventName)
	}
	if input.EventType != nil {
		booking.EventType = strings.TrimSpace(*input.EventType)
	}
	if input.Description != nil {
		booking.Description = strings.TrimSpace(*input.Description)
	}
	if input.Date != nil {
		booking.Date = domain.DateOnly(*input.Date)
	}
	if input.TimeSlot != nil {
		if strings.TrimSpace(*input.TimeSlot) == "" {
			return nil, apperrors.NewValidationError("time_slot cannot be empty", nil)
		}
		booking.TimeSlot = strings.TrimSpace(*input.TimeSlot)
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, apperrors.NewValidationError("capacity must be positive", nil)
		}
		booking.Capacity = *input.Capacity
	}

	oldStatus := booking.Status
	if input.Status != nil && *input.Status != booking.Status {
		if err := applyStatus(booking, *input.Status, input.CancelledBy); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}
	if booking.Status != oldStatus {
		s.publishStatusChange(ctx, booking, oldStatus)
	}
	return booking, nil
}

// UpdateStatus moves a booking through the state machine. Transitions are
// strictly forward-only; entering canceled records who cancelled and when.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, newStatus domain.BookingStatus, cancelledBy *domain.CancelParty) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := booking.Status
	if err := applyStatus(booking, newStatus, cancelledBy); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, booking, oldStatus)
	return booking, nil
}

// Delete physically removes a booking. This is the administrative purge,
// distinct from cancellation.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("booking", map[string]any{"booking_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookingDeleted,
		SubjectID: booking.ID,
		Actor:     systemActor(),
		Payload: events.BookingDeletedPayload{
			VenueID:  booking.VenueID,
			Date:     booking.Date,
			TimeSlot: booking.TimeSlot,
			Status:   booking.Status,
		},
	})
	return nil
}

// ListAll returns every booking.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{})
}

// ListByUser returns bookings requested by a user.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{UserID: &userID})
}

// ListByUserAndStatus returns a user's bookings with an exact status match.
func (s *BookingService) ListByUserAndStatus(ctx context.Context, userID string, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{
		UserID:   &userID,
		Statuses: []domain.BookingStatus{status},
	})
}

// ListUpcomingByUser returns a user's pending and approved bookings.
func (s *BookingService) ListUpcomingByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{
		UserID:   &userID,
		Statuses: []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusApproved},
	})
}

// ListByVenue returns bookings for a venue.
func (s *BookingService) ListByVenue(ctx context.Context, venueID string) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{VenueID: &venueID})
}

// ListByDate returns bookings on a calendar day.
func (s *BookingService) ListByDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	day := domain.DateOnly(date)
	return s.list(ctx, repository.BookingFilter{Date: &day})
}

// ListByStatus returns bookings with an exact status match.
func (s *BookingService) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{Statuses: []domain.BookingStatus{status}})
}

// ListForCustodian returns all bookings on venues currently owned by the
// custodian.
func (s *BookingService) ListForCustodian(ctx context.Context, custodianID string) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{OwnerCustodianID: &custodianID})
}

// ListPendingForCustodian returns the custodian's approval queue.
func (s *BookingService) ListPendingForCustodian(ctx context.Context, custodianID string) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{
		OwnerCustodianID: &custodianID,
		Statuses:         []domain.BookingStatus{domain.BookingStatusPending},
	})
}

func (s *BookingService) list(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return bookings, nil
}

func (s *BookingService) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"booking_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return booking, nil
}

var allowedTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusPending:  {domain.BookingStatusApproved, domain.BookingStatusRejected, domain.BookingStatusCanceled},
	domain.BookingStatusApproved: {domain.BookingStatusCanceled},
	domain.BookingStatusRejected: {},
	domain.BookingStatusCanceled: {},
}

func isValidTransition(current, next domain.BookingStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// applyStatus mutates the booking's status and cancellation metadata.
// cancelledBy/cancelledAt are set exactly when entering canceled; a missing
// cancelling party defaults to system.
func applyStatus(booking *domain.Booking, next domain.BookingStatus, cancelledBy *domain.CancelParty) error {
	if !isValidTransition(booking.Status, next) {
		return apperrors.NewInvalidTransition(string(booking.Status), string(next))
	}
	booking.Status = next
	if next == domain.BookingStatusCanceled {
		party := domain.CancelledBySystem
		if cancelledBy != nil {
			party = *cancelledBy
		}
		now := time.Now().UTC()
		booking.CancelledBy = &party
		booking.CancelledAt = &now
	}
	return nil
}

func (s *BookingService) publishStatusChange(ctx context.Context, booking *domain.Booking, oldStatus domain.BookingStatus) {
	actor := systemActor()
	if booking.CancelledBy != nil && booking.Status == domain.BookingStatusCanceled {
		actor = events.Actor{Party: *booking.CancelledBy}
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookingStatusChanged,
		SubjectID: booking.ID,
		Actor:     actor,
		Payload: events.BookingStatusChangedPayload{
			OldStatus:   oldStatus,
			NewStatus:   booking.Status,
			VenueID:     booking.VenueID,
			Date:        booking.Date,
			TimeSlot:    booking.TimeSlot,
			CancelledBy: booking.CancelledBy,
		},
	})
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateBookingReference() string {
	return "BKG-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func userActor(userID string) events.Actor {
	return events.Actor{Party: domain.CancelledByUser, ID: &userID}
}

func systemActor() events.Actor {
	return events.Actor{Party: domain.CancelledBySystem}
}
