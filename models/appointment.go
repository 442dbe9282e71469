package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// AppointmentTypeInfo describes a bookable meeting type
type AppointmentTypeInfo struct {
	Label    string
	Duration time.Duration
}

// AppointmentTypes maps the booking widget's type keys to their labels and durations
var AppointmentTypes = map[string]AppointmentTypeInfo{
	"consultation":     {Label: "Initial Consultation", Duration: 30 * time.Minute},
	"property-viewing": {Label: "Property Viewing", Duration: 45 * time.Minute},
	"portfolio-review": {Label: "Portfolio Review", Duration: 60 * time.Minute},
	"market-analysis":  {Label: "Market Analysis", Duration: 45 * time.Minute},
}

// TypeInfoFor returns the type details, falling back to a 30-minute consultation
func TypeInfoFor(appointmentType string) AppointmentTypeInfo {
	if info, ok := AppointmentTypes[appointmentType]; ok {
		return info
	}
	return AppointmentTypeInfo{Label: "Consultation", Duration: 30 * time.Minute}
}

type Appointment struct {
	gorm.Model
	LeadID          uint              `json:"lead_id" gorm:"index"`
	Lead            Lead              `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	AppointmentType string            `json:"appointment_type"`
	StartTime       time.Time         `json:"start_time" gorm:"index"`
	EndTime         time.Time         `json:"end_time"`
	Location        string            `json:"location"`
	Status          AppointmentStatus `json:"status"`
	PropertyID      string            `json:"property_id"`
	GoogleEventID   string            `json:"google_event_id"`
	Reminder24hSent bool              `json:"reminder_24h_sent" gorm:"default:false"`
	Reminder2hSent  bool              `json:"reminder_2h_sent" gorm:"default:false"`
	FollowUp2hSent  bool              `json:"follow_up_2h_sent" gorm:"default:false"`
	FollowUp24hSent bool              `json:"follow_up_24h_sent" gorm:"default:false"`
	FollowUp3dSent  bool              `json:"follow_up_3d_sent" gorm:"default:false"`
	FollowUp1wSent  bool              `json:"follow_up_1w_sent" gorm:"default:false"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusScheduled:
		if newStatus != StatusCompleted && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from scheduled to %s", newStatus)
		}
	case StatusCompleted, StatusCanceled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}

// Reschedule moves the appointment keeping its duration and resets reminder flags
func (a *Appointment) Reschedule(tx *gorm.DB, newStart time.Time) error {
	duration := a.EndTime.Sub(a.StartTime)
	return tx.Model(a).Updates(map[string]interface{}{
		"start_time":        newStart,
		"end_time":          newStart.Add(duration),
		"status":            StatusScheduled,
		"reminder_24h_sent": false,
		"reminder_2h_sent":  false,
	}).Error
}
