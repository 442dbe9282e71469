package gcal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/sbayrealty/brokerage-backend/models"
)

func testAppointment() *models.Appointment {
	start := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	appointment := &models.Appointment{
		Title:       "Property Viewing - Jane Doe",
		Description: "Property Viewing appointment with Jane Doe",
		Location:    "Office or Virtual (TBD)",
		StartTime:   start,
		EndTime:     start.Add(45 * time.Minute),
	}
	appointment.ID = 42
	return appointment
}

func TestCalendarService_WithMockAPI(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()
	srv, _ := calendar.NewService(ctx, option.WithEndpoint(server.URL), option.WithoutAuthentication())
	s := &Service{service: srv, calendarID: "primary"}

	t.Run("CreateEvent", func(t *testing.T) {
		mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
			var event calendar.Event
			if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
				t.Errorf("decode event: %v", err)
			}
			if event.Summary != "Property Viewing - Jane Doe" {
				t.Errorf("unexpected summary %q", event.Summary)
			}
			if len(event.Attendees) != 1 || event.Attendees[0].Email != "jane@example.com" {
				t.Errorf("unexpected attendees %+v", event.Attendees)
			}
			json.NewEncoder(w).Encode(calendar.Event{Id: "evt_123"})
		})

		eventID, err := s.CreateEvent(ctx, testAppointment(), "jane@example.com")
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		if eventID != "evt_123" {
			t.Fatalf("expected evt_123, got %q", eventID)
		}
	})

	t.Run("UpdateEvent", func(t *testing.T) {
		mux.HandleFunc("/calendars/primary/events/evt_123", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut:
				json.NewEncoder(w).Encode(calendar.Event{Id: "evt_123"})
			case http.MethodDelete:
				w.WriteHeader(http.StatusNoContent)
			default:
				t.Errorf("unexpected method %s", r.Method)
			}
		})

		appointment := testAppointment()
		appointment.GoogleEventID = "evt_123"
		if err := s.UpdateEvent(ctx, appointment, "jane@example.com"); err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}

		if err := s.DeleteEvent(ctx, "evt_123"); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
	})

	t.Run("UpdateEventWithoutLink", func(t *testing.T) {
		if err := s.UpdateEvent(ctx, testAppointment(), ""); err == nil {
			t.Fatal("expected error for appointment without linked event")
		}
	})
}
