package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi254/medibook/handlers"
	"github.com/mwangi254/medibook/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Post("", handlers.CreateBooking)
	booking.Get("", handlers.GetBookings)
	booking.Get("/user/:phone", handlers.GetBookingsByPhone)
	booking.Patch("/:id/checked", middleware.DoctorRequired(), handlers.MarkBookingChecked)

	api.Get("/notifications/user/:phone", middleware.Protected(), handlers.GetNotificationFeed)
}
