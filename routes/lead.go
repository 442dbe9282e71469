package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/controllers"
)

// SetupLeadRoutes configures the public lead-capture endpoint
func SetupLeadRoutes(app *fiber.App) {
	leads := app.Group("/leads")
	leads.Post("/", controllers.CreateLead)
}
