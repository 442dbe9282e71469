package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// PropertyCalendar is the master switch for a property's booking calendar.
// Without an active row the property has no bookable days at all.
type PropertyCalendar struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID string         `json:"property_id" gorm:"uniqueIndex"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *PropertyCalendar) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (PropertyCalendar) TableName() string {
	return "property_calendars"
}

// AvailabilityRule declares one bookable weekday window for a property.
// Times are wall-clock "HH:MM:SS" strings, half-open [start, end).
type AvailabilityRule struct {
	gorm.Model
	PropertyID   string    `json:"property_id" gorm:"index:idx_rule_property_day"`
	DayOfWeek    DayOfWeek `json:"day_of_week" gorm:"index:idx_rule_property_day"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	SlotDuration int       `json:"slot_duration" gorm:"default:30"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
}

func (AvailabilityRule) TableName() string {
	return "calendar_availability"
}

// BlockedDate removes an otherwise-available calendar date from bookability
type BlockedDate struct {
	gorm.Model
	CalendarID  string `json:"calendar_id" gorm:"index"`
	BlockedDate string `json:"blocked_date"` // "YYYY-MM-DD"
	Reason      string `json:"reason"`       // "Holiday", "Vacation", "Other"
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

func (BlockedDate) TableName() string {
	return "calendar_blocked_dates"
}
