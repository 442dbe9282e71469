package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/controllers"
	"github.com/sbayrealty/brokerage-backend/middleware"
)

// SetupAdminRoutes configures the back-office surfaces that own the
// calendar, lead and listing records
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole("admin"))

	admin.Get("/leads", controllers.GetLeads)
	admin.Get("/appointments", controllers.GetAppointments)
	admin.Patch("/appointments/:id/status", controllers.UpdateAppointmentStatus)

	admin.Post("/calendars", controllers.CreatePropertyCalendar)
	admin.Patch("/calendars/:id", controllers.UpdatePropertyCalendar)

	admin.Get("/availability-rules", controllers.GetAvailabilityRules)
	admin.Post("/availability-rules", controllers.CreateAvailabilityRule)
	admin.Patch("/availability-rules/:id", controllers.UpdateAvailabilityRule)
	admin.Delete("/availability-rules/:id", controllers.DeleteAvailabilityRule)

	admin.Post("/blocked-dates", controllers.CreateBlockedDate)
	admin.Delete("/blocked-dates/:id", controllers.DeleteBlockedDate)

	admin.Post("/properties", controllers.CreateProperty)
	admin.Post("/properties/:id/photo", controllers.UploadPropertyPhoto)
}
