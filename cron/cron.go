package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/metrics"
	"github.com/sbayrealty/brokerage-backend/models"
	"github.com/sbayrealty/brokerage-backend/utils"
)

// StartCronJobs initializes and starts the scheduler for appointment
// reminders and post-meeting follow-ups
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()

	if _, err := c.AddFunc("*/5 * * * *", sendAppointmentReminders); err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}
	if _, err := c.AddFunc("*/15 * * * *", sendAutomatedFollowUps); err != nil {
		log.Fatalf("Failed to add follow-up cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started for reminders and follow-ups")
}

// sendAppointmentReminders delivers the 24-hour and 2-hour reminders.
// Sent-flags on the appointment row keep each reminder one-shot.
func sendAppointmentReminders() {
	now := time.Now()
	in24Hours := now.Add(24 * time.Hour)
	in2Hours := now.Add(2 * time.Hour)

	var appointments24h []models.Appointment
	err := db.DB.Preload("Lead").
		Where("status = ? AND reminder_24h_sent = ? AND start_time >= ? AND start_time <= ? AND start_time > ?",
			models.StatusScheduled, false, now, in24Hours, in2Hours). // within-2h ones get the 2h reminder instead
		Find(&appointments24h).Error
	if err != nil {
		log.Printf("Error fetching appointments for 24h reminders: %v", err)
		return
	}

	for _, appointment := range appointments24h {
		if err := sendReminderEmail(&appointment, "24 hours"); err != nil {
			log.Printf("Failed to send 24h reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		if err := db.DB.Model(&appointment).Update("reminder_24h_sent", true).Error; err != nil {
			log.Printf("Failed to flag 24h reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		metrics.IncReminderSent("24h")
		log.Printf("Sent 24h reminder for appointment %d to %s", appointment.ID, appointment.Lead.Email)
	}

	var appointments2h []models.Appointment
	err = db.DB.Preload("Lead").
		Where("status = ? AND reminder_2h_sent = ? AND start_time >= ? AND start_time <= ?",
			models.StatusScheduled, false, now, in2Hours).
		Find(&appointments2h).Error
	if err != nil {
		log.Printf("Error fetching appointments for 2h reminders: %v", err)
		return
	}

	for _, appointment := range appointments2h {
		if err := sendReminderEmail(&appointment, "2 hours"); err != nil {
			log.Printf("Failed to send 2h reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		if err := db.DB.Model(&appointment).Update("reminder_2h_sent", true).Error; err != nil {
			log.Printf("Failed to flag 2h reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		metrics.IncReminderSent("2h")
		log.Printf("Sent 2h reminder for appointment %d to %s", appointment.ID, appointment.Lead.Email)
	}
}

// followUpStage is one step of the post-meeting sequence
type followUpStage struct {
	after   time.Duration
	column  string
	kind    string
	subject string
}

var followUpStages = []followUpStage{
	{2 * time.Hour, "follow_up_2h_sent", "2h_followup", "Thank you for meeting with us today!"},
	{24 * time.Hour, "follow_up_24h_sent", "24h_followup", "Following up on our meeting - Next Steps"},
	{72 * time.Hour, "follow_up_3d_sent", "3day_followup", "Checking in - Any questions from our meeting?"},
	{168 * time.Hour, "follow_up_1w_sent", "1week_followup", "Weekly check-in - How can we help move forward?"},
}

// sendAutomatedFollowUps walks completed appointments through the follow-up
// sequence, one email per stage
func sendAutomatedFollowUps() {
	now := time.Now()

	for _, stage := range followUpStages {
		var appointments []models.Appointment
		err := db.DB.Preload("Lead").
			Where("status = ? AND "+stage.column+" = ? AND end_time <= ?",
				models.StatusCompleted, false, now.Add(-stage.after)).
			Find(&appointments).Error
		if err != nil {
			log.Printf("Error fetching appointments for %s: %v", stage.kind, err)
			continue
		}

		for _, appointment := range appointments {
			body := followUpEmailBody(&appointment)
			if err := utils.SendEmail(appointment.Lead.Email, stage.subject, body); err != nil {
				log.Printf("Failed to send %s for appointment %d: %v", stage.kind, appointment.ID, err)
				continue
			}
			if err := db.DB.Model(&appointment).Update(stage.column, true).Error; err != nil {
				log.Printf("Failed to flag %s for appointment %d: %v", stage.kind, appointment.ID, err)
				continue
			}
			if err := appointment.Lead.TouchFollowUp(db.DB, now); err != nil {
				log.Printf("Failed to advance follow-up date for lead %d: %v", appointment.LeadID, err)
			}

			activity := models.LeadActivity{
				LeadID:       appointment.LeadID,
				ActivityType: "email",
				Title:        "Follow-up sent",
				Description:  fmt.Sprintf("Automated %s email sent", stage.kind),
				Metadata: models.Metadata{
					"appointment_id": appointment.ID,
					"follow_up_type": stage.kind,
				},
			}
			if err := db.DB.Create(&activity).Error; err != nil {
				log.Printf("Failed to log %s activity for lead %d: %v", stage.kind, appointment.LeadID, err)
			}

			metrics.IncReminderSent(stage.kind)
			log.Printf("Sent %s for appointment %d to %s", stage.kind, appointment.ID, appointment.Lead.Email)
		}
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment, window string) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Title)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment in %s.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Appointment:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Location:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Brokerage Team</p>
	`, appointment.Lead.Name, window, appointment.Title,
		utils.FormatDisplayDate(appointment.StartTime),
		utils.FormatDisplayTime(appointment.StartTime),
		appointment.Location)

	return utils.SendEmail(appointment.Lead.Email, subject, body)
}

func followUpEmailBody(appointment *models.Appointment) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for taking the time to meet with us about %s.</p>
		<p>If you have any questions or would like to move forward, just reply to this email
		or give us a call.</p>
		<p>Best regards,</p>
		<p>The Brokerage Team</p>
	`, appointment.Lead.Name, appointment.Title)
}
