package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/controllers"
)

// SetupAppointmentRoutes configures the public booking endpoints
func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/appointments")
	appointments.Post("/", controllers.BookAppointment)
	appointments.Post("/reschedule", controllers.RescheduleAppointment)
}
