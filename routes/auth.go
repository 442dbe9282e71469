package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/controllers"
	"github.com/sbayrealty/brokerage-backend/middleware"
)

// SetupAuthRoutes configures back-office authentication
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/login", controllers.Login)
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
}
