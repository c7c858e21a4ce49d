package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi254/medibook/handlers"
	"github.com/mwangi254/medibook/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/doctors", handlers.ListDoctors)
	admin.Patch("/doctors/:doctorId/status", handlers.SetDoctorStatus)
	admin.Get("/bookings", handlers.ListAllBookings)
}
