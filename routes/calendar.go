package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/controllers"
)

// SetupCalendarRoutes configures the public availability endpoint
func SetupCalendarRoutes(app *fiber.App) {
	calendar := app.Group("/calendar")
	calendar.Get("/availability", controllers.GetCalendarAvailability)
}
