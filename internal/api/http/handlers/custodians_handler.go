package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-booking-service/internal/service"
)

// CustodiansHandler exposes the owner-scoped views.
type CustodiansHandler struct {
	custodians *service.CustodianService
}

// NewCustodiansHandler constructs handler.
func NewCustodiansHandler(custodians *service.CustodianService) *CustodiansHandler {
	return &CustodiansHandler{custodians: custodians}
}

// List GET /api/custodians.
func (h *CustodiansHandler) List(c *fiber.Ctx) error {
	custodians, err := h.custodians.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(custodians)})
}

// Get GET /api/custodians/:id.
func (h *CustodiansHandler) Get(c *fiber.Ctx) error {
	custodian, err := h.custodians.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(custodian)})
}

// Venues GET /api/custodians/:id/venues.
func (h *CustodiansHandler) Venues(c *fiber.Ctx) error {
	venues, err := h.custodians.VenuesFor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueResponses(venues)})
}

// Bookings GET /api/custodians/:id/bookings.
func (h *CustodiansHandler) Bookings(c *fiber.Ctx) error {
	bookings, err := h.custodians.BookingsFor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}

// PendingBookings GET /api/custodians/:id/bookings/pending.
func (h *CustodiansHandler) PendingBookings(c *fiber.Ctx) error {
	bookings, err := h.custodians.PendingBookingsFor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(bookings)})
}
