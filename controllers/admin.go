package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/models"
	"github.com/sbayrealty/brokerage-backend/utils"
)

// Back-office CRUD. These endpoints own the calendar rows the availability
// resolver reads; the resolver itself never writes.

// GetLeads lists captured leads, newest first
func GetLeads(c *fiber.Ctx) error {
	var leads []models.Lead
	query := db.DB.Preload("Activities").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&leads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch leads",
		})
	}
	return c.JSON(leads)
}

// GetAppointments lists appointments with their leads
func GetAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Preload("Lead").Order("start_time DESC").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch appointments",
		})
	}
	return c.JSON(appointments)
}

// UpdateAppointmentStatus moves an appointment through its lifecycle
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if err := appointment.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreatePropertyCalendar enables booking for a property
func CreatePropertyCalendar(c *fiber.Ctx) error {
	calendar := new(models.PropertyCalendar)
	if err := c.BodyParser(calendar); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if calendar.PropertyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "property_id is required",
		})
	}
	if err := db.DB.Create(calendar).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create calendar",
		})
	}
	return c.JSON(calendar)
}

// UpdatePropertyCalendar flips the master switch or remaps the property
func UpdatePropertyCalendar(c *fiber.Ctx) error {
	id := c.Params("id")
	var calendar models.PropertyCalendar
	if err := db.DB.First(&calendar, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Calendar not found",
		})
	}
	if err := c.BodyParser(&calendar); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Save(&calendar).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update calendar",
		})
	}
	return c.JSON(calendar)
}

// GetAvailabilityRules lists a property's weekly windows
func GetAvailabilityRules(c *fiber.Ctx) error {
	var rules []models.AvailabilityRule
	query := db.DB.Order("day_of_week ASC, id ASC")
	if propertyID := c.Query("propertyId"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if err := query.Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability rules",
		})
	}
	return c.JSON(rules)
}

// CreateAvailabilityRule adds a weekly window for a property
func CreateAvailabilityRule(c *fiber.Ctx) error {
	rule := new(models.AvailabilityRule)
	if err := c.BodyParser(rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if rule.DayOfWeek < models.Sunday || rule.DayOfWeek > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("day_of_week must be 0-6, got %d", rule.DayOfWeek),
		})
	}
	if err := db.DB.Create(rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create availability rule",
		})
	}
	return c.JSON(rule)
}

// UpdateAvailabilityRule edits an existing weekly window
func UpdateAvailabilityRule(c *fiber.Ctx) error {
	id := c.Params("id")
	var rule models.AvailabilityRule
	if err := db.DB.First(&rule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability rule not found",
		})
	}
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Save(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update availability rule",
		})
	}
	return c.JSON(rule)
}

// DeleteAvailabilityRule removes a weekly window
func DeleteAvailabilityRule(c *fiber.Ctx) error {
	id := c.Params("id")
	var rule models.AvailabilityRule
	if err := db.DB.First(&rule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability rule not found",
		})
	}
	if err := db.DB.Delete(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete availability rule",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBlockedDate takes a single calendar date out of bookability
func CreateBlockedDate(c *fiber.Ctx) error {
	blocked := new(models.BlockedDate)
	if err := c.BodyParser(blocked); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if blocked.CalendarID == "" || blocked.BlockedDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "calendar_id and blocked_date are required",
		})
	}
	if err := db.DB.Create(blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create blocked date",
		})
	}
	return c.JSON(blocked)
}

// DeleteBlockedDate reopens a blocked date
func DeleteBlockedDate(c *fiber.Ctx) error {
	id := c.Params("id")
	var blocked models.BlockedDate
	if err := db.DB.First(&blocked, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Blocked date not found",
		})
	}
	if err := db.DB.Delete(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete blocked date",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProperty adds a listing
func CreateProperty(c *fiber.Ctx) error {
	property := new(models.Property)
	if err := c.BodyParser(property); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := db.DB.Create(property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create property",
		})
	}
	return c.JSON(property)
}

// UploadPropertyPhoto attaches a Cloudinary-hosted photo to a listing
func UploadPropertyPhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	var property models.Property
	if err := db.DB.First(&property, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "photo file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadPropertyPhoto(file, fmt.Sprintf("property_%s", property.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&property).Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store photo URL",
		})
	}

	property.PhotoURL = url
	return c.JSON(property)
}
