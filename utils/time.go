package utils

import "time"

// FormatDisplayDate renders a date the way the site shows it,
// e.g. "Monday, January 1, 2024"
func FormatDisplayDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatDisplayTime renders a 12-hour clock label, e.g. "2:30 PM"
func FormatDisplayTime(t time.Time) string {
	return t.Format("3:04 PM")
}
