package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/controllers"
)

// SetupPropertyRoutes configures the public listing endpoints
func SetupPropertyRoutes(app *fiber.App) {
	properties := app.Group("/properties")
	properties.Get("/", controllers.GetAllProperties)
	properties.Get("/:id", controllers.GetProperty)
}
