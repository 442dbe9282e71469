package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sbayrealty/brokerage-backend/crm"
	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/gcal"
	"github.com/sbayrealty/brokerage-backend/metrics"
	"github.com/sbayrealty/brokerage-backend/models"
	"github.com/sbayrealty/brokerage-backend/utils"
)

// calendarSync is nil when Google Calendar sync is not configured
var calendarSync *gcal.Service

// InitCalendarSync wires the Google Calendar service at startup
func InitCalendarSync(service *gcal.Service) {
	calendarSync = service
}

// BookingInput is the calendar widget's booking payload
type BookingInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	AppointmentType string `json:"appointment_type"`
	AppointmentDate string `json:"appointment_date"` // "YYYY-MM-DD"
	AppointmentTime string `json:"appointment_time"` // "HH:MM:SS" or "3:04 PM"
	PropertyID      string `json:"property_id"`
	PropertyTitle   string `json:"property_title"`
	Message         string `json:"message"`
	Source          string `json:"source"`
}

// parseAppointmentTime accepts the slot value format and the display format
func parseAppointmentTime(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04", "3:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// BookAppointment creates the lead, the appointment and its activity trail,
// then sends the confirmation email and syncs the calendar event
func BookAppointment(c *fiber.Ctx) error {
	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Name == "" || input.Email == "" || input.Phone == "" ||
		input.AppointmentType == "" || input.AppointmentDate == "" || input.AppointmentTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required appointment information",
		})
	}

	date, err := time.Parse("2006-01-02", input.AppointmentDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment date",
			Error:   err.Error(),
		})
	}
	timeOfDay, err := parseAppointmentTime(input.AppointmentTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment time",
			Error:   err.Error(),
		})
	}

	source := input.Source
	if source == "" {
		source = "calendar_booking"
	}
	typeInfo := models.TypeInfoFor(input.AppointmentType)

	startTime := time.Date(date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, time.UTC)
	endTime := startTime.Add(typeInfo.Duration)

	leadTitle := fmt.Sprintf("%s - %s", typeInfo.Label, input.Name)
	if input.Company != "" {
		leadTitle = fmt.Sprintf("%s (%s)", leadTitle, input.Company)
	}

	lead := models.Lead{
		Title:            leadTitle,
		Type:             "consultation",
		Priority:         models.PriorityHigh, // Appointments are high priority
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Company:          input.Company,
		PropertyInterest: input.PropertyTitle,
		Timeline:         "Immediate - Appointment scheduled",
		Message:          input.Message,
		Source:           source,
		ConsultationDate: input.AppointmentDate,
		ConsultationTime: input.AppointmentTime,
		FollowUpDate:     input.AppointmentDate,
		InternalNotes: fmt.Sprintf("Appointment booked via calendar widget. Type: %s, Duration: %d minutes",
			typeInfo.Label, int(typeInfo.Duration.Minutes())),
	}
	if input.PropertyTitle != "" {
		lead.SpaceRequirements = fmt.Sprintf("Interested in viewing: %s", input.PropertyTitle)
	}

	description := fmt.Sprintf("%s appointment with %s", typeInfo.Label, input.Name)
	if input.Company != "" {
		description += fmt.Sprintf(" from %s", input.Company)
	}
	if input.PropertyTitle != "" {
		description += fmt.Sprintf(" regarding %s", input.PropertyTitle)
	}

	appointment := models.Appointment{
		Title:           fmt.Sprintf("%s - %s", typeInfo.Label, input.Name),
		Description:     description,
		AppointmentType: input.AppointmentType,
		StartTime:       startTime,
		EndTime:         endTime,
		Location:        "Office or Virtual (TBD)",
		PropertyID:      input.PropertyID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lead).Error; err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}

		appointment.LeadID = lead.ID
		if err := tx.Create(&appointment).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		activity := models.LeadActivity{
			LeadID:       lead.ID,
			ActivityType: "note",
			Title:        "Appointment booked",
			Description: fmt.Sprintf("%s appointment scheduled for %s at %s",
				typeInfo.Label, input.AppointmentDate, input.AppointmentTime),
			Metadata: models.Metadata{
				"source":           source,
				"appointment_type": input.AppointmentType,
				"appointment_date": input.AppointmentDate,
				"appointment_time": input.AppointmentTime,
				"duration":         int(typeInfo.Duration.Minutes()),
				"property_id":      input.PropertyID,
				"appointment_id":   appointment.ID,
			},
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to book appointment",
			Error:   err.Error(),
		})
	}

	metrics.IncAppointmentBooked()
	log.Printf("Lead %d and appointment %d created for %s", lead.ID, appointment.ID, input.Email)

	// CRM notification; the CRM owns the admin alert pipeline
	crmClient := crm.NewClientFromEnv()
	if err := crmClient.NotifyLead(c.Context(), crm.LeadNotification{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Company:          input.Company,
		PropertyInterest: lead.PropertyInterest,
		Message: fmt.Sprintf("Appointment booking: %s on %s at %s",
			typeInfo.Label, input.AppointmentDate, input.AppointmentTime),
		Source:   "appointment_booking",
		Priority: "high",
		Type:     "consultation",
	}); err != nil {
		log.Printf("CRM notification error: %v", err)
	}

	// Confirmation email to the client
	go func() {
		subject := fmt.Sprintf("Appointment Confirmed: %s", typeInfo.Label)
		if err := utils.SendEmail(input.Email, subject, confirmationEmailBody(input.Name, typeInfo, startTime)); err != nil {
			log.Printf("Confirmation email failed for appointment %d: %v", appointment.ID, err)
		}
	}()

	// Google Calendar sync
	if calendarSync != nil {
		eventID, err := calendarSync.CreateEvent(c.Context(), &appointment, input.Email)
		if err != nil {
			log.Printf("Google Calendar sync failed for appointment %d: %v", appointment.ID, err)
		} else if err := db.DB.Model(&appointment).Update("google_event_id", eventID).Error; err != nil {
			log.Printf("Failed to store event id for appointment %d: %v", appointment.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Appointment booked successfully",
		"leadId":        lead.ID,
		"appointmentId": appointment.ID,
	})
}

// RescheduleInput moves an existing appointment
type RescheduleInput struct {
	AppointmentID uint   `json:"appointmentId"`
	NewDate       string `json:"newDate"`
	NewTime       string `json:"newTime"`
	Reason        string `json:"reason"`
	RequestedBy   string `json:"requestedBy"`
}

// RescheduleAppointment moves an appointment, resets its reminders and
// notifies everyone involved
func RescheduleAppointment(c *fiber.Ctx) error {
	input := new(RescheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.AppointmentID == 0 || input.NewDate == "" || input.NewTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields: appointmentId, newDate, newTime",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Lead").First(&appointment, input.AppointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	date, err := time.Parse("2006-01-02", input.NewDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid new date",
			Error:   err.Error(),
		})
	}
	timeOfDay, err := parseAppointmentTime(input.NewTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid new time",
			Error:   err.Error(),
		})
	}

	originalStart := appointment.StartTime
	duration := appointment.EndTime.Sub(appointment.StartTime)
	newStart := time.Date(date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, time.UTC)

	requestedBy := input.RequestedBy
	if requestedBy == "" {
		requestedBy = "system"
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := appointment.Reschedule(tx, newStart); err != nil {
			return err
		}

		description := fmt.Sprintf("Appointment rescheduled from %s at %s to %s at %s",
			utils.FormatDisplayDate(originalStart), utils.FormatDisplayTime(originalStart),
			utils.FormatDisplayDate(newStart), utils.FormatDisplayTime(newStart))
		if input.Reason != "" {
			description += fmt.Sprintf(". Reason: %s", input.Reason)
		}

		activity := models.LeadActivity{
			LeadID:       appointment.LeadID,
			ActivityType: "note",
			Title:        "Appointment rescheduled",
			Description:  description,
			Metadata: models.Metadata{
				"appointment_id": appointment.ID,
				"original_date":  originalStart,
				"new_date":       newStart,
				"requested_by":   requestedBy,
				"reason":         input.Reason,
			},
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reschedule appointment",
			Error:   err.Error(),
		})
	}

	log.Printf("Appointment %d rescheduled from %s to %s", appointment.ID, originalStart, newStart)

	go func(appointment models.Appointment, originalStart, newStart time.Time) {
		body := rescheduleEmailBody(appointment.Lead.Name, originalStart, newStart)
		if err := utils.SendEmail(appointment.Lead.Email, "Your appointment has been rescheduled", body); err != nil {
			log.Printf("Reschedule notification failed for appointment %d: %v", appointment.ID, err)
		}
		if err := utils.SendAdminEmail(
			fmt.Sprintf("Appointment rescheduled: %s", appointment.Title), body); err != nil {
			log.Printf("Admin reschedule notification failed: %v", err)
		}
	}(appointment, originalStart, newStart)

	if calendarSync != nil && appointment.GoogleEventID != "" {
		appointment.StartTime = newStart
		appointment.EndTime = newStart.Add(duration)
		if err := calendarSync.UpdateEvent(c.Context(), &appointment, appointment.Lead.Email); err != nil {
			log.Printf("Google Calendar update failed for appointment %d: %v", appointment.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment rescheduled successfully",
	})
}

func confirmationEmailBody(name string, typeInfo models.AppointmentTypeInfo, start time.Time) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been confirmed.</p>
		<ul>
			<li><strong>Type:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Brokerage Team</p>
	`, name, typeInfo.Label, utils.FormatDisplayDate(start), utils.FormatDisplayTime(start),
		int(typeInfo.Duration.Minutes()))
}

func rescheduleEmailBody(name string, originalStart, newStart time.Time) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been rescheduled.</p>
		<ul>
			<li><strong>Previously:</strong> %s at %s</li>
			<li><strong>Now:</strong> %s at %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Brokerage Team</p>
	`, name,
		utils.FormatDisplayDate(originalStart), utils.FormatDisplayTime(originalStart),
		utils.FormatDisplayDate(newStart), utils.FormatDisplayTime(newStart))
}
