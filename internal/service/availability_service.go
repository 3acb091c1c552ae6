package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-booking-service/internal/config"
	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/events"
	"github.com/spec-kit/venue-booking-service/internal/persistence"
	"github.com/spec-kit/venue-booking-service/internal/repository"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// AvailabilityService decides whether a venue can accept a booking for a
// given date and time slot. It is a conflict predicate, not a capacity
// check. Results are cached in Redis for a short TTL; booking mutations
// invalidate the affected slot through the event dispatcher.
type AvailabilityService struct {
	bookings repository.BookingRepository
	cache    *persistence.Redis
	logger   *zap.Logger
	cfg      config.AvailabilityConfig
}

// NewAvailabilityService constructs the service. cache may be nil, in which
// case every check goes to the store.
func NewAvailabilityService(bookings repository.BookingRepository, cache *persistence.Redis, logger *zap.Logger, cfg config.AvailabilityConfig) *AvailabilityService {
	return &AvailabilityService{
		bookings: bookings,
		cache:    cache,
		logger:   logger,
		cfg:      cfg,
	}
}

// BlockingStatuses returns the statuses that hold a slot under the current
// policy. Canceled never blocks; rejected blocks only when configured.
func (s *AvailabilityService) BlockingStatuses() []domain.BookingStatus {
	statuses := []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusApproved}
	if s.cfg.RejectedBlocks {
		statuses = append(statuses, domain.BookingStatusRejected)
	}
	return statuses
}

// IsAvailable reports whether the venue is free for the date and time slot.
// An empty timeSlot checks the whole day.
func (s *AvailabilityService) IsAvailable(ctx context.Context, venueID string, date time.Time, timeSlot string) (bool, error) {
	day := domain.DateOnly(date)
	slot := strings.TrimSpace(timeSlot)

	key := s.cacheKey(venueID, day, slot)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	filter := repository.BookingFilter{
		VenueID:  &venueID,
		Date:     &day,
		Statuses: s.BlockingStatuses(),
	}
	if slot != "" {
		filter.TimeSlot = &slot
	}
	blocking, err := s.bookings.ListWithFilter(ctx, filter)
	if err != nil {
		return false, apperrors.MapError(err)
	}

	available := len(blocking) == 0
	s.cacheSet(ctx, key, available)
	return available, nil
}

// RegisterHandlers subscribes cache invalidation to booking mutations.
func (s *AvailabilityService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventBookingCreated, s.handleBookingCreated)
	dispatcher.Subscribe(events.EventBookingStatusChanged, s.handleBookingStatusChanged)
	dispatcher.Subscribe(events.EventBookingDeleted, s.handleBookingDeleted)
}

func (s *AvailabilityService) handleBookingCreated(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.BookingCreatedPayload); ok {
		s.invalidate(ctx, payload.VenueID, payload.Date, payload.TimeSlot)
	}
	return nil
}

func (s *AvailabilityService) handleBookingStatusChanged(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.BookingStatusChangedPayload); ok {
		s.invalidate(ctx, payload.VenueID, payload.Date, payload.TimeSlot)
	}
	return nil
}

func (s *AvailabilityService) handleBookingDeleted(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.BookingDeletedPayload); ok {
		s.invalidate(ctx, payload.VenueID, payload.Date, payload.TimeSlot)
	}
	return nil
}

func (s *AvailabilityService) invalidate(ctx context.Context, venueID string, date time.Time, timeSlot string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	day := domain.DateOnly(date)
	keys := []string{
		s.cacheKey(venueID, day, strings.TrimSpace(timeSlot)),
		s.cacheKey(venueID, day, ""),
	}
	if err := s.cache.Client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.Error(err), zap.Strings("keys", keys))
	}
}

func (s *AvailabilityService) cacheKey(venueID string, day time.Time, slot string) string {
	key := "availability:" + venueID + ":" + day.Format("2006-01-02")
	if slot != "" {
		key += ":" + slot
	}
	return key
}

func (s *AvailabilityService) cacheGet(ctx context.Context, key string) (bool, bool) {
	if s.cache == nil || s.cache.Client == nil || s.cfg.CacheTTL() <= 0 {
		return false, false
	}
	val, err := s.cache.Client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("availability cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false, false
	}
	return val == "1", true
}

func (s *AvailabilityService) cacheSet(ctx context.Context, key string, available bool) {
	if s.cache == nil || s.cache.Client == nil || s.cfg.CacheTTL() <= 0 {
		return
	}
	val := "0"
	if available {
		val = "1"
	}
	if err := s.cache.Client.Set(ctx, key, val, s.cfg.CacheTTL()).Err(); err != nil {
		s.logger.Debug("availability cache write failed", zap.Error(err), zap.String("key", key))
	}
}
