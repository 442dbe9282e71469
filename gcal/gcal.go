// Package gcal mirrors booked appointments into the brokerage's Google
// Calendar using a service account.
package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/sbayrealty/brokerage-backend/models"
)

type Service struct {
	service    *calendar.Service
	calendarID string
}

func NewService(ctx context.Context, credentialsFile, calendarID string) (*Service, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	client := config.Client(ctx)
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}

	return &Service{service: srv, calendarID: calendarID}, nil
}

// NewServiceFromEnv builds the service from GOOGLE_CREDENTIALS_FILE and
// GOOGLE_CALENDAR_ID
func NewServiceFromEnv(ctx context.Context) (*Service, error) {
	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	calendarID := os.Getenv("GOOGLE_CALENDAR_ID")
	if credentialsFile == "" || calendarID == "" {
		return nil, fmt.Errorf("google calendar sync not configured")
	}
	return NewService(ctx, credentialsFile, calendarID)
}

func eventFor(appointment *models.Appointment, attendeeEmail string) *calendar.Event {
	event := &calendar.Event{
		Summary:     appointment.Title,
		Description: appointment.Description,
		Location:    appointment.Location,
		Start: &calendar.EventDateTime{
			DateTime: appointment.StartTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: appointment.EndTime.Format(time.RFC3339),
		},
	}
	if attendeeEmail != "" {
		event.Attendees = []*calendar.EventAttendee{{Email: attendeeEmail}}
	}
	return event
}

// CreateEvent inserts the appointment and returns the Google event id
func (s *Service) CreateEvent(ctx context.Context, appointment *models.Appointment, attendeeEmail string) (string, error) {
	created, err := s.service.Events.Insert(s.calendarID, eventFor(appointment, attendeeEmail)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("event insert failed: %v", err)
	}
	return created.Id, nil
}

// UpdateEvent rewrites the event the appointment is linked to
func (s *Service) UpdateEvent(ctx context.Context, appointment *models.Appointment, attendeeEmail string) error {
	if appointment.GoogleEventID == "" {
		return fmt.Errorf("appointment %d has no linked event", appointment.ID)
	}
	_, err := s.service.Events.Update(s.calendarID, appointment.GoogleEventID, eventFor(appointment, attendeeEmail)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("event update failed: %v", err)
	}
	return nil
}

// DeleteEvent removes a synced event, e.g. on cancellation
func (s *Service) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.service.Events.Delete(s.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("event delete failed: %v", err)
	}
	return nil
}
