package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-booking-service/internal/api/dto"
	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/service"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

const dateLayout = "2006-01-02"

// BookingsHandler manages booking endpoints.
type BookingsHandler struct {
	bookings     *service.BookingService
	availability *service.AvailabilityService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService, availability *service.AvailabilityService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings, availability: availability}
}

// Create POST /api/bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.VenueID == "" {
		return apperrors.NewValidationError("user_id and venue_id required", nil)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return apperrors.NewValidationError("date must use YYYY-MM-DD", nil)
	}

	booking, err := h.bookings.Create(c.UserContext(), req.UserID, service.BookingCreateInput{
		VenueID:     req.VenueID,
		EventName:   req.EventName,
		EventType:   req.EventType,
		Description: req.Description,
		Date:        date,
		TimeSlot:    req.TimeSlot,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": bookingResponse(booking)})
}

// List GET /api/bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// Get GET /api/bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	booking, err := h.bookings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Update PUT /api/bookings/:id.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.BookingUpdateInput{
		EventName:   req.EventName,
		EventType:   req.EventType,
		Description: req.Description,
		TimeSlot:    req.TimeSlot,
		Capacity:    req.Capacity,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return apperrors.NewValidationError("date must use YYYY-MM-DD", nil)
		}
		input.Date = &date
	}
	if req.Status != nil {
		status, err := parseBookingStatus(*req.Status)
		if err != nil {
			return err
		}
		input.Status = &status
	}
	if req.CancelledBy != nil {
		party, err := parseCancelParty(*req.CancelledBy)
		if err != nil {
			return err
		}
		input.CancelledBy = &party
	}

	booking, err := h.bookings.UpdateDetails(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// UpdateStatus PUT /api/bookings/:id/status.
func (h *BookingsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := parseBookingStatus(req.Status)
	if err != nil {
		return err
	}
	var cancelledBy *domain.CancelParty
	if req.CancelledBy != nil {
		party, err := parseCancelParty(*req.CancelledBy)
		if err != nil {
			return err
		}
		cancelledBy = &party
	}

	booking, err := h.bookings.UpdateStatus(c.UserContext(), c.Params("id"), status, cancelledBy)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Delete DELETE /api/bookings/:id.
func (h *BookingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.bookings.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByUser GET /api/bookings/user/:userId.
func (h *BookingsHandler) ListByUser(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListUpcomingByUser GET /api/bookings/user/:userId/upcoming.
func (h *BookingsHandler) ListUpcomingByUser(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListUpcomingByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListByUserAndStatus GET /api/bookings/user/:userId/status/:status.
func (h *BookingsHandler) ListByUserAndStatus(c *fiber.Ctx) error {
	status, err := parseBookingStatus(c.Params("status"))
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListByUserAndStatus(c.UserContext(), c.Params("userId"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListByVenue GET /api/bookings/venue/:venueId.
func (h *BookingsHandler) ListByVenue(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListByVenue(c.UserContext(), c.Params("venueId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListByDate GET /api/bookings/date/:date.
func (h *BookingsHandler) ListByDate(c *fiber.Ctx) error {
	date, err := time.Parse(dateLayout, c.Params("date"))
	if err != nil {
		return apperrors.NewValidationError("date must use YYYY-MM-DD", nil)
	}
	bookings, err := h.bookings.ListByDate(c.UserContext(), date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListByStatus GET /api/bookings/status/:status.
func (h *BookingsHandler) ListByStatus(c *fiber.Ctx) error {
	status, err := parseBookingStatus(c.Params("status"))
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListForCustodian GET /api/bookings/custodian/:custodianId.
func (h *BookingsHandler) ListForCustodian(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListForCustodian(c.UserContext(), c.Params("custodianId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// ListPendingForCustodian GET /api/bookings/custodian/:custodianId/pending.
func (h *BookingsHandler) ListPendingForCustodian(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListPendingForCustodian(c.UserContext(), c.Params("custodianId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// CheckAvailability GET /api/bookings/availability/:venueId/:date.
// An optional time_slot query narrows the check to one slot.
func (h *BookingsHandler) CheckAvailability(c *fiber.Ctx) error {
	date, err := time.Parse(dateLayout, c.Params("date"))
	if err != nil {
		return apperrors.NewValidationError("date must use YYYY-MM-DD", nil)
	}
	timeSlot := c.Query("time_slot")
	available, err := h.availability.IsAvailable(c.UserContext(), c.Params("venueId"), date, timeSlot)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AvailabilityResponse{
		VenueID:   c.Params("venueId"),
		Date:      date.Format(dateLayout),
		TimeSlot:  timeSlot,
		Available: available,
	}})
}

func parseBookingStatus(raw string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(raw) {
	case domain.BookingStatusPending, domain.BookingStatusApproved, domain.BookingStatusRejected, domain.BookingStatusCanceled:
		return domain.BookingStatus(raw), nil
	}
	return "", apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
}

func parseCancelParty(raw string) (domain.CancelParty, error) {
	switch domain.CancelParty(raw) {
	case domain.CancelledByUser, domain.CancelledByCustodian, domain.CancelledBySystem:
		return domain.CancelParty(raw), nil
	}
	return "", apperrors.NewValidationError("unknown cancelled_by", map[string]any{"cancelled_by": raw})
}

func bookingResponse(booking *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:          booking.ID,
		Reference:   booking.Reference,
		UserID:      booking.UserID,
		VenueID:     booking.VenueID,
		CustodianID: booking.CustodianID,
		EventName:   booking.EventName,
		EventType:   booking.EventType,
		Description: booking.Description,
		Date:        booking.Date.Format(dateLayout),
		TimeSlot:    booking.TimeSlot,
		Capacity:    booking.Capacity,
		Status:      booking.Status,
		CancelledBy: booking.CancelledBy,
		CancelledAt: booking.CancelledAt,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
}

func bookingResponses(bookings []domain.Booking) []dto.BookingResponse {
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return items
}
