package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi254/medibook/handlers"
	"github.com/mwangi254/medibook/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	otpLimiter := middleware.NewRateLimiter(0.2, 3)

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterPatient)
	auth.Post("/request-otp", otpLimiter.Handler(), handlers.RequestOTP)
	auth.Post("/verify-otp", handlers.VerifyOTP)
	auth.Post("/doctor/register", handlers.RegisterDoctor)
	auth.Post("/doctor/login", handlers.LoginDoctor)
	auth.Post("/admin/login", handlers.AdminLogin)
}
