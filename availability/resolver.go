// Package availability decides whether a property accepts bookings on a
// given calendar date and expands its weekly window into half-hour slots.
package availability

import (
	"context"
	"fmt"
	"time"
)

// CalendarConfig is a property's master calendar switch
type CalendarConfig struct {
	ID       string
	IsActive bool
}

// Rule is one active weekly availability window
type Rule struct {
	ID        uint
	StartTime string // "HH:MM:SS"
	EndTime   string // "HH:MM:SS"
}

// ConfigStore looks up the calendar configuration for a property.
// A missing configuration is (nil, nil), not an error.
type ConfigStore interface {
	CalendarFor(ctx context.Context, propertyID string) (*CalendarConfig, error)
}

// RuleStore returns the active rules for a property and weekday,
// ordered by ascending row id.
type RuleStore interface {
	ActiveRules(ctx context.Context, propertyID string, dayOfWeek int) ([]Rule, error)
}

// BlockedDateStore reports whether a calendar has an active block on a date
type BlockedDateStore interface {
	IsBlocked(ctx context.Context, calendarID, date string) (bool, error)
}

// Options selects between the deployment variants of the resolver
type Options struct {
	// CheckBlockedDates enables the blocked-date override lookup.
	// The legacy deployment never had the table and skips the check.
	CheckBlockedDates bool
}

// Reasons for the not-available outcomes. These are normal determinations,
// not faults; callers surface them with a 200-class status.
const (
	ReasonNoCalendar  = "Property not found or no calendar configured"
	ReasonDayClosed   = "Day not available"
	ReasonDateBlocked = "Date is blocked"
)

// Result is an availability verdict for one (property, date) pair
type Result struct {
	Available  bool
	Reason     string
	PropertyID string
	Date       string
	DayOfWeek  int
	StartTime  string
	EndTime    string
	Slots      []Slot
}

type Resolver struct {
	configs ConfigStore
	rules   RuleStore
	blocked BlockedDateStore
	opts    Options
}

func NewResolver(configs ConfigStore, rules RuleStore, blocked BlockedDateStore, opts Options) *Resolver {
	return &Resolver{configs: configs, rules: rules, blocked: blocked, opts: opts}
}

// ParseDate parses a "YYYY-MM-DD" calendar date as UTC midnight. The weekday
// of the returned instant is therefore timezone-independent.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Resolve determines bookability for a property on a calendar date.
// A (nil, err) return means the determination itself failed (bad date,
// store fault); a Result with Available=false is a successful "no".
func (r *Resolver) Resolve(ctx context.Context, propertyID, dateStr string) (*Result, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	day := int(date.Weekday()) // 0 = Sunday

	result := &Result{
		PropertyID: propertyID,
		Date:       date.Format("2006-01-02"),
		DayOfWeek:  day,
	}

	calendar, err := r.configs.CalendarFor(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("calendar lookup failed: %w", err)
	}
	if calendar == nil || !calendar.IsActive {
		result.Reason = ReasonNoCalendar
		return result, nil
	}

	rules, err := r.rules.ActiveRules(ctx, propertyID, day)
	if err != nil {
		return nil, fmt.Errorf("availability lookup failed: %w", err)
	}
	if len(rules) == 0 {
		result.Reason = ReasonDayClosed
		return result, nil
	}
	// Lowest row id wins when an operator left duplicate rules for a day
	rule := rules[0]

	if r.opts.CheckBlockedDates && r.blocked != nil {
		blocked, err := r.blocked.IsBlocked(ctx, calendar.ID, result.Date)
		if err != nil {
			return nil, fmt.Errorf("blocked date lookup failed: %w", err)
		}
		if blocked {
			result.Reason = ReasonDateBlocked
			return result, nil
		}
	}

	slots, err := GenerateSlots(rule.StartTime, rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("slot generation failed: %w", err)
	}

	result.Available = true
	result.StartTime = rule.StartTime
	result.EndTime = rule.EndTime
	result.Slots = slots
	return result, nil
}
