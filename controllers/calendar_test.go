package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/sbayrealty/brokerage-backend/availability"
)

type fakeStore struct {
	calendar *availability.CalendarConfig
	rules    []availability.Rule
	blocked  bool
	fail     bool
}

func (f *fakeStore) CalendarFor(ctx context.Context, propertyID string) (*availability.CalendarConfig, error) {
	if f.fail {
		return nil, errors.New("store down")
	}
	return f.calendar, nil
}

func (f *fakeStore) ActiveRules(ctx context.Context, propertyID string, dayOfWeek int) ([]availability.Rule, error) {
	if f.fail {
		return nil, errors.New("store down")
	}
	return f.rules, nil
}

func (f *fakeStore) IsBlocked(ctx context.Context, calendarID, date string) (bool, error) {
	if f.fail {
		return false, errors.New("store down")
	}
	return f.blocked, nil
}

func calendarApp(t *testing.T, store *fakeStore, settings CalendarSettings) *fiber.App {
	t.Helper()
	resolver := availability.NewResolver(store, store, store, availability.Options{
		CheckBlockedDates: settings.CheckBlockedDates,
	})
	InitCalendar(resolver, settings)

	app := fiber.New()
	app.Get("/calendar/availability", GetCalendarAvailability)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	payload := map[string]interface{}{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestGetCalendarAvailabilityMissingParams(t *testing.T) {
	app := calendarApp(t, &fakeStore{}, CalendarSettings{ResponseStyle: "slots"})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing date, got %d", resp.StatusCode)
	}
}

func TestGetCalendarAvailabilityNoCalendar(t *testing.T) {
	app := calendarApp(t, &fakeStore{}, CalendarSettings{ResponseStyle: "slots"})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1&date=2024-01-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	// A legitimate "no" is not a fault
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for unavailable verdict, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp.Body)
	if payload["success"] != false || payload["available"] != false {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["reason"] != availability.ReasonNoCalendar {
		t.Fatalf("unexpected reason %v", payload["reason"])
	}
}

func TestGetCalendarAvailabilitySlots(t *testing.T) {
	store := &fakeStore{
		calendar: &availability.CalendarConfig{ID: "cal-1", IsActive: true},
		rules:    []availability.Rule{{ID: 1, StartTime: "09:00:00", EndTime: "17:00:00"}},
	}
	app := calendarApp(t, store, CalendarSettings{ResponseStyle: "slots"})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1&date=2024-01-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp.Body)
	if payload["success"] != true || payload["available"] != true {
		t.Fatalf("unexpected payload %v", payload)
	}
	slots, ok := payload["available_slots"].([]interface{})
	if !ok || len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %v", payload["available_slots"])
	}
	if payload["day_of_week"] != float64(1) {
		t.Fatalf("expected Monday index, got %v", payload["day_of_week"])
	}
}

func TestGetCalendarAvailabilityWindowStyle(t *testing.T) {
	store := &fakeStore{
		calendar: &availability.CalendarConfig{ID: "cal-1", IsActive: true},
		rules:    []availability.Rule{{ID: 1, StartTime: "09:00:00", EndTime: "17:00:00"}},
	}
	app := calendarApp(t, store, CalendarSettings{ResponseStyle: "window"})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1&date=2024-01-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	payload := decodeBody(t, resp.Body)
	if payload["available"] != true {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, hasSuccess := payload["success"]; hasSuccess {
		t.Fatal("legacy shape must not carry the success field")
	}
	if payload["start_time"] != "09:00:00" || payload["end_time"] != "17:00:00" {
		t.Fatalf("window not carried: %v", payload)
	}
}

func TestGetCalendarAvailabilityBlockedDate(t *testing.T) {
	store := &fakeStore{
		calendar: &availability.CalendarConfig{ID: "cal-1", IsActive: true},
		rules:    []availability.Rule{{ID: 1, StartTime: "09:00:00", EndTime: "17:00:00"}},
		blocked:  true,
	}
	app := calendarApp(t, store, CalendarSettings{ResponseStyle: "slots", CheckBlockedDates: true})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1&date=2024-01-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	payload := decodeBody(t, resp.Body)
	if payload["available"] != false || payload["reason"] != availability.ReasonDateBlocked {
		t.Fatalf("expected blocked verdict, got %v", payload)
	}
}

func TestGetCalendarAvailabilityStoreFault(t *testing.T) {
	app := calendarApp(t, &fakeStore{fail: true}, CalendarSettings{ResponseStyle: "slots"})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1&date=2024-01-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	// Faults are errors, not "unavailable"
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 for store fault, got %d", resp.StatusCode)
	}
}

func TestGetCalendarAvailabilityMalformedDate(t *testing.T) {
	app := calendarApp(t, &fakeStore{}, CalendarSettings{ResponseStyle: "slots"})

	req := httptest.NewRequest("GET", "/calendar/availability?propertyId=prop-1&date=not-a-date", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected error status for malformed date, got %d", resp.StatusCode)
	}
}
