package controllers

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/availability"
	"github.com/sbayrealty/brokerage-backend/metrics"
)

// CalendarSettings selects between the deployment variants of the
// availability endpoint: whether blocked dates are honored and which
// response shape the caller expects.
type CalendarSettings struct {
	CheckBlockedDates bool
	// ResponseStyle is "slots" (success+available with the expanded slot
	// list) or "window" (legacy shape carrying just the raw window).
	ResponseStyle string
}

// CalendarSettingsFromEnv reads the variant switches from the environment
func CalendarSettingsFromEnv() CalendarSettings {
	style := os.Getenv("CALENDAR_RESPONSE_STYLE")
	if style == "" {
		style = "slots"
	}
	return CalendarSettings{
		CheckBlockedDates: os.Getenv("CALENDAR_CHECK_BLOCKED_DATES") == "true",
		ResponseStyle:     style,
	}
}

var (
	calendarResolver *availability.Resolver
	calendarSettings CalendarSettings
)

// InitCalendar wires the resolver and variant settings at startup
func InitCalendar(resolver *availability.Resolver, settings CalendarSettings) {
	calendarResolver = resolver
	calendarSettings = settings
}

// GetCalendarAvailability answers the booking widget's availability query.
// Not-available is a successful determination (200 with available=false);
// only data faults and bad input produce error statuses.
func GetCalendarAvailability(c *fiber.Ctx) error {
	propertyID := c.Query("propertyId")
	date := c.Query("date")

	if propertyID == "" || date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "propertyId and date are required",
		})
	}

	result, err := calendarResolver.Resolve(c.Context(), propertyID, date)
	if err != nil {
		metrics.IncAvailabilityCheck("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}

	if !result.Available {
		metrics.IncAvailabilityCheck("unavailable")
		if calendarSettings.ResponseStyle == "window" {
			return c.JSON(fiber.Map{
				"available": false,
				"reason":    result.Reason,
			})
		}
		return c.JSON(fiber.Map{
			"success":   false,
			"available": false,
			"reason":    result.Reason,
		})
	}

	metrics.IncAvailabilityCheck("available")
	if calendarSettings.ResponseStyle == "window" {
		return c.JSON(fiber.Map{
			"available":  true,
			"start_time": result.StartTime,
			"end_time":   result.EndTime,
		})
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"available":       true,
		"property_id":     result.PropertyID,
		"date":            result.Date,
		"day_of_week":     result.DayOfWeek,
		"available_slots": result.Slots,
	})
}
