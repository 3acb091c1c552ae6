package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/events"
	"github.com/spec-kit/venue-booking-service/internal/repository"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// The fakes mirror the Postgres repositories closely enough for service
// tests: row misses surface as pgx.ErrNoRows and slot collisions surface as
// a unique violation on the slot-conflict index, exactly like the pool does.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByType(_ context.Context, userType domain.UserType) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if user.UserType == userType {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeVenueRepo struct {
	mu     sync.Mutex
	venues map[string]domain.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{venues: map[string]domain.Venue{}}
}

func (r *fakeVenueRepo) Create(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue.ID = uuid.NewString()
	venue.CreatedAt = time.Now()
	venue.UpdatedAt = venue.CreatedAt
	r.venues[venue.ID] = *venue
	return nil
}

func (r *fakeVenueRepo) Update(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; !ok {
		return pgx.ErrNoRows
	}
	venue.UpdatedAt = time.Now()
	r.venues[venue.ID] = *venue
	return nil
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &venue, nil
}

func (r *fakeVenueRepo) ListWithFilter(_ context.Context, filter repository.VenueFilter) ([]domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Venue
	for _, venue := range r.venues {
		if filter.CustodianID != nil && (venue.CustodianID == nil || *venue.CustodianID != *filter.CustodianID) {
			continue
		}
		if filter.Location != nil && !strings.EqualFold(venue.Location, *filter.Location) {
			continue
		}
		if filter.MinCapacity != nil && venue.Capacity < *filter.MinCapacity {
			continue
		}
		if filter.NameContains != nil && !strings.Contains(strings.ToLower(venue.Name), strings.ToLower(*filter.NameContains)) {
			continue
		}
		result = append(result, venue)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeVenueRepo) ListByCustodian(ctx context.Context, custodianID string) ([]domain.Venue, error) {
	return r.ListWithFilter(ctx, repository.VenueFilter{CustodianID: &custodianID})
}

func (r *fakeVenueRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.venues, id)
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
	venues   *fakeVenueRepo
}

func newFakeBookingRepo(venues *fakeVenueRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]domain.Booking{}, venues: venues}
}

// slotTaken mirrors the partial unique index: only pending and approved
// bookings hold a slot.
func (r *fakeBookingRepo) slotTaken(candidate *domain.Booking, excludeID string) bool {
	for _, existing := range r.bookings {
		if existing.ID == excludeID {
			continue
		}
		if existing.Status != domain.BookingStatusPending && existing.Status != domain.BookingStatusApproved {
			continue
		}
		if existing.VenueID == candidate.VenueID &&
			existing.Date.Equal(candidate.Date) &&
			existing.TimeSlot == candidate.TimeSlot {
			return true
		}
	}
	return false
}

func slotConflictErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: apperrors.SlotConflictConstraint}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.Status == domain.BookingStatusPending || booking.Status == domain.BookingStatusApproved {
		if r.slotTaken(booking, "") {
			return slotConflictErr()
		}
	}
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return pgx.ErrNoRows
	}
	if booking.Status == domain.BookingStatusPending || booking.Status == domain.BookingStatusApproved {
		if r.slotTaken(booking, booking.ID) {
			return slotConflictErr()
		}
	}
	booking.UpdatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &booking, nil
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Booking
	for _, booking := range r.bookings {
		if filter.UserID != nil && booking.UserID != *filter.UserID {
			continue
		}
		if filter.VenueID != nil && booking.VenueID != *filter.VenueID {
			continue
		}
		if filter.OwnerCustodianID != nil && !r.ownedBy(booking.VenueID, *filter.OwnerCustodianID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, booking.Status) {
			continue
		}
		if filter.Date != nil && !booking.Date.Equal(domain.DateOnly(*filter.Date)) {
			continue
		}
		if filter.TimeSlot != nil && booking.TimeSlot != *filter.TimeSlot {
			continue
		}
		result = append(result, booking)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].TimeSlot < result[j].TimeSlot
	})
	return result, nil
}

func (r *fakeBookingRepo) ownedBy(venueID, custodianID string) bool {
	r.venues.mu.Lock()
	defer r.venues.mu.Unlock()
	venue, ok := r.venues.venues[venueID]
	return ok && venue.CustodianID != nil && *venue.CustodianID == custodianID
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.bookings, id)
	return nil
}

func containsStatus(statuses []domain.BookingStatus, status domain.BookingStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// fixture bundles fakes and services the way main wires the real thing.
type fixture struct {
	userRepo    *fakeUserRepo
	venueRepo   *fakeVenueRepo
	bookingRepo *fakeBookingRepo
	dispatcher  *recordingDispatcher
	bookings    *BookingService
	users       *UserService
	venues      *VenueService
	custodians  *CustodianService
}

func newFixture() *fixture {
	userRepo := newFakeUserRepo()
	venueRepo := newFakeVenueRepo()
	bookingRepo := newFakeBookingRepo(venueRepo)
	dispatcher := &recordingDispatcher{}

	bookings := NewBookingService(BookingDependencies{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		VenueRepo:   venueRepo,
		Dispatcher:  dispatcher,
	})
	return &fixture{
		userRepo:    userRepo,
		venueRepo:   venueRepo,
		bookingRepo: bookingRepo,
		dispatcher:  dispatcher,
		bookings:    bookings,
		users:       NewUserService(userRepo),
		venues:      NewVenueService(venueRepo, userRepo, dispatcher),
		custodians:  NewCustodianService(userRepo, venueRepo, bookings),
	}
}

func (f *fixture) seedUser(userType domain.UserType, email string) *domain.User {
	user := &domain.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		UserType:  userType,
	}
	if err := f.userRepo.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func (f *fixture) seedVenue(name string, custodianID *string) *domain.Venue {
	venue := &domain.Venue{
		Name:        name,
		Location:    "North Campus",
		Capacity:    120,
		CustodianID: custodianID,
		Amenities:   []string{"projector"},
	}
	if err := f.venueRepo.Create(context.Background(), venue); err != nil {
		panic(err)
	}
	return venue
}
