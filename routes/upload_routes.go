package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi254/medibook/handlers"
	"github.com/mwangi254/medibook/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected(), middleware.DoctorRequired())
	uploads.Post("/signature", handlers.GenerateUploadSignature)
}
