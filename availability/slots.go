package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is one 30-minute bookable interval within a day's window.
// Available is always true here; conflicts with booked appointments
// are the booking flow's concern, not the slot generator's.
type Slot struct {
	Time        string `json:"time"`
	DisplayTime string `json:"display_time"`
	Available   bool   `json:"available"`
}

// windowHour keeps only the hour component of a "HH:MM:SS" bound. Minutes
// are discarded: production calendars only ever used whole-hour windows, so
// "09:15:00" behaves exactly like "09:00:00".
func windowHour(t string) (int, error) {
	h, _, _ := strings.Cut(t, ":")
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("bad time-of-day %q: %w", t, err)
	}
	return hour, nil
}

// displayTime renders a 12-hour label, "12:00 PM" for noon
func displayTime(hour int, minute string) string {
	switch {
	case hour > 12:
		return fmt.Sprintf("%d:%s PM", hour-12, minute)
	case hour == 12:
		return "12:" + minute + " PM"
	default:
		return fmt.Sprintf("%d:%s AM", hour, minute)
	}
}

// GenerateSlots expands a half-open [start, end) window into half-hour
// slots in ascending order. The end bound itself is never emitted, so a
// 09:00-17:00 window ends with the 16:30 slot.
func GenerateSlots(startTime, endTime string) ([]Slot, error) {
	startHour, err := windowHour(startTime)
	if err != nil {
		return nil, err
	}
	endHour, err := windowHour(endTime)
	if err != nil {
		return nil, err
	}

	var slots []Slot
	for hour := startHour; hour < endHour; hour++ {
		slots = append(slots, Slot{
			Time:        fmt.Sprintf("%02d:00:00", hour),
			DisplayTime: displayTime(hour, "00"),
			Available:   true,
		})
		if float64(hour)+0.5 < float64(endHour) {
			slots = append(slots, Slot{
				Time:        fmt.Sprintf("%02d:30:00", hour),
				DisplayTime: displayTime(hour, "30"),
				Available:   true,
			})
		}
	}
	return slots, nil
}
