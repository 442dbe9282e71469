package models

import (
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newOfflineDB builds a connectionless handle; dry-run statements are
// prepared but never executed.
func newOfflineDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=brokerage dbname=brokerage",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open offline db: %v", err)
	}
	return gdb
}

func TestUpdateStatusFromScheduled(t *testing.T) {
	gdb := newOfflineDB(t)

	appointment := &Appointment{Status: StatusScheduled}
	if err := appointment.UpdateStatus(gdb, StatusCompleted); err != nil {
		t.Fatalf("scheduled to completed rejected: %v", err)
	}
	if appointment.Status != StatusCompleted {
		t.Fatalf("status not advanced, got %s", appointment.Status)
	}

	appointment = &Appointment{Status: StatusScheduled}
	if err := appointment.UpdateStatus(gdb, StatusCanceled); err != nil {
		t.Fatalf("scheduled to canceled rejected: %v", err)
	}
	if appointment.Status != StatusCanceled {
		t.Fatalf("status not advanced, got %s", appointment.Status)
	}

	// Validation rejects before any DB access, so a nil tx is safe here
	appointment = &Appointment{Status: StatusScheduled}
	if err := appointment.UpdateStatus(nil, StatusScheduled); err == nil {
		t.Fatal("scheduled to scheduled must be rejected")
	}
	if appointment.Status != StatusScheduled {
		t.Fatalf("rejected transition mutated status to %s", appointment.Status)
	}
}

func TestUpdateStatusTerminalStatesLocked(t *testing.T) {
	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCanceled} {
		for _, target := range []AppointmentStatus{StatusScheduled, StatusCompleted, StatusCanceled} {
			appointment := &Appointment{Status: terminal}
			if err := appointment.UpdateStatus(nil, target); err == nil {
				t.Errorf("%s to %s must be rejected", terminal, target)
			}
			if appointment.Status != terminal {
				t.Errorf("terminal status mutated from %s to %s", terminal, appointment.Status)
			}
		}
	}
}
