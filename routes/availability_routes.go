package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi254/medibook/handlers"
	"github.com/mwangi254/medibook/middleware"
)

func AvailabilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/doctor-availability/:doctorId", handlers.GetAvailability)
	api.Post("/doctor-availability", middleware.Protected(), middleware.DoctorRequired(), handlers.SaveAvailability)
	api.Patch("/doctor-availability/:doctorId/slot", middleware.Protected(), middleware.DoctorRequired(), handlers.SetSlotCount)
	api.Post("/doctor-availability/:doctorId/reduce-slot", middleware.Protected(), handlers.ReduceSlot)
}
