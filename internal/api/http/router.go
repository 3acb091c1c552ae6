package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-booking-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Bookings   *handlers.BookingsHandler
	Venues     *handlers.VenuesHandler
	Users      *handlers.UsersHandler
	Custodians *handlers.CustodiansHandler
}

// RegisterRoutes wires HTTP routes. Specific booking paths register before
// the :id routes so fiber does not swallow them.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	bookings := api.Group("/bookings")
	bookings.Get("/availability/:venueId/:date", cfg.Bookings.CheckAvailability)
	bookings.Get("/user/:userId/upcoming", cfg.Bookings.ListUpcomingByUser)
	bookings.Get("/user/:userId/status/:status", cfg.Bookings.ListByUserAndStatus)
	bookings.Get("/user/:userId", cfg.Bookings.ListByUser)
	bookings.Get("/custodian/:custodianId/pending", cfg.Bookings.ListPendingForCustodian)
	bookings.Get("/custodian/:custodianId", cfg.Bookings.ListForCustodian)
	bookings.Get("/venue/:venueId", cfg.Bookings.ListByVenue)
	bookings.Get("/date/:date", cfg.Bookings.ListByDate)
	bookings.Get("/status/:status", cfg.Bookings.ListByStatus)
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Get("/", cfg.Bookings.List)
	bookings.Put("/:id/status", cfg.Bookings.UpdateStatus)
	bookings.Put("/:id", cfg.Bookings.Update)
	bookings.Delete("/:id", cfg.Bookings.Delete)
	bookings.Get("/:id", cfg.Bookings.Get)

	venues := api.Group("/venues")
	venues.Get("/custodian/:custodianId", cfg.Venues.ListByCustodian)
	venues.Post("/", cfg.Venues.Create)
	venues.Get("/", cfg.Venues.List)
	venues.Put("/:id", cfg.Venues.Update)
	venues.Delete("/:id", cfg.Venues.Delete)
	venues.Get("/:id", cfg.Venues.Get)

	users := api.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
	users.Get("/:id", cfg.Users.Get)

	custodians := api.Group("/custodians")
	custodians.Get("/", cfg.Custodians.List)
	custodians.Get("/:id/bookings/pending", cfg.Custodians.PendingBookings)
	custodians.Get("/:id/bookings", cfg.Custodians.Bookings)
	custodians.Get("/:id/venues", cfg.Custodians.Venues)
	custodians.Get("/:id", cfg.Custodians.Get)
}
