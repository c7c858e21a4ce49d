package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi254/medibook/handlers"
	"github.com/mwangi254/medibook/middleware"
)

func DoctorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/doctors", handlers.ListApprovedDoctors)
	api.Get("/doctors/:doctorId", handlers.GetDoctorProfile)
	api.Get("/doctors/:doctorId/calendar/:year/:month", handlers.GetDoctorCalendar)

	doctor := api.Group("/doctor", middleware.Protected(), middleware.DoctorRequired())
	doctor.Get("/me", handlers.GetMyDoctorProfile)
	doctor.Get("/bookings", handlers.GetMyDoctorBookings)
	doctor.Get("/patients", handlers.GetMyPatients)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/doctor", websocket.New(handlers.ServeWs))
}
