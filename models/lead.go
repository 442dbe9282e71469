package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type LeadStatus string
type LeadPriority string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"

	PriorityLow    LeadPriority = "low"
	PriorityMedium LeadPriority = "medium"
	PriorityHigh   LeadPriority = "high"
)

// Lead is a web-form submission persisted as a CRM record
type Lead struct {
	gorm.Model
	Title             string         `json:"title"`
	Type              string         `json:"type"` // "general", "consultation", "requirements"
	Status            LeadStatus     `json:"status"`
	Priority          LeadPriority   `json:"priority"`
	Name              string         `json:"name"`
	Email             string         `json:"email" gorm:"index"`
	Phone             string         `json:"phone"`
	Company           string         `json:"company"`
	PropertyInterest  string         `json:"property_interest"`
	SpaceRequirements string         `json:"space_requirements"`
	BudgetRange       string         `json:"budget_range"`
	SizeNeeded        string         `json:"size_needed"`
	County            string         `json:"county"`
	Timeline          string         `json:"timeline"`
	Message           string         `json:"message"`
	Source            string         `json:"source"`
	ConsultationDate  string         `json:"consultation_date"` // "YYYY-MM-DD"
	ConsultationTime  string         `json:"consultation_time"`
	FollowUpDate      string         `json:"follow_up_date"`
	InternalNotes     string         `json:"internal_notes"`
	Activities        []LeadActivity `json:"activities,omitempty" gorm:"foreignKey:LeadID"`
	Appointments      []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:LeadID"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.Priority == "" {
		l.Priority = PriorityMedium
	}
	if l.Source == "" {
		l.Source = "website_form"
	}
	return nil
}

// LeadActivity is one entry in a lead's activity trail
type LeadActivity struct {
	gorm.Model
	LeadID       uint     `json:"lead_id" gorm:"index"`
	ActivityType string   `json:"activity_type"` // "note", "email", "call"
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Metadata     Metadata `json:"metadata" gorm:"type:jsonb"`
}

// Metadata stores unstructured activity context as JSONB
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Metadata: unsupported type %T", value)
	}

	return json.Unmarshal(data, m)
}

// TouchFollowUp sets the follow-up date without changing anything else
func (l *Lead) TouchFollowUp(tx *gorm.DB, date time.Time) error {
	l.FollowUpDate = date.Format("2006-01-02")
	return tx.Model(l).Update("follow_up_date", l.FollowUpDate).Error
}
