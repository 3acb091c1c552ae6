package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-booking-service/internal/api/dto"
	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/service"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// VenuesHandler manages venue endpoints.
type VenuesHandler struct {
	venues     *service.VenueService
	custodians *service.CustodianService
}

// NewVenuesHandler constructs handler.
func NewVenuesHandler(venues *service.VenueService, custodians *service.CustodianService) *VenuesHandler {
	return &VenuesHandler{venues: venues, custodians: custodians}
}

// Create POST /api/venues.
func (h *VenuesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	venue, err := h.venues.Create(c.UserContext(), service.VenueCreateInput{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CustodianID: req.CustodianID,
		Description: req.Description,
		Amenities:   req.Amenities,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": venueResponse(venue)})
}

// List GET /api/venues. Supports location, min_capacity and name filters.
func (h *VenuesHandler) List(c *fiber.Ctx) error {
	query := service.VenueListQuery{}
	if location := c.Query("location"); location != "" {
		query.Location = &location
	}
	if raw := c.Query("min_capacity"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil || min < 0 {
			return apperrors.NewValidationError("min_capacity must be a non-negative integer", nil)
		}
		query.MinCapacity = &min
	}
	if name := c.Query("name"); name != "" {
		query.NameSearch = &name
	}
	venues, err := h.venues.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueResponses(venues)})
}

// Get GET /api/venues/:id.
func (h *VenuesHandler) Get(c *fiber.Ctx) error {
	venue, err := h.venues.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueResponse(venue)})
}

// Update PUT /api/venues/:id.
func (h *VenuesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	venue, err := h.venues.Update(c.UserContext(), c.Params("id"), service.VenueUpdateInput{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CustodianID: req.CustodianID,
		Description: req.Description,
		Amenities:   req.Amenities,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueResponse(venue)})
}

// Delete DELETE /api/venues/:id.
func (h *VenuesHandler) Delete(c *fiber.Ctx) error {
	if err := h.venues.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByCustodian GET /api/venues/custodian/:custodianId.
func (h *VenuesHandler) ListByCustodian(c *fiber.Ctx) error {
	venues, err := h.custodians.VenuesFor(c.UserContext(), c.Params("custodianId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": venueResponses(venues)})
}

func venueResponse(venue *domain.Venue) dto.VenueResponse {
	return dto.VenueResponse{
		ID:          venue.ID,
		Name:        venue.Name,
		Location:    venue.Location,
		Capacity:    venue.Capacity,
		CustodianID: venue.CustodianID,
		Description: venue.Description,
		Amenities:   venue.Amenities,
		Image:       venue.Image,
		CreatedAt:   venue.CreatedAt,
		UpdatedAt:   venue.UpdatedAt,
	}
}

func venueResponses(venues []domain.Venue) []dto.VenueResponse {
	items := make([]dto.VenueResponse, 0, len(venues))
	for i := range venues {
		items = append(items, venueResponse(&venues[i]))
	}
	return items
}
