// Package thaidate formats dates for Thai-locale display using the Buddhist
// calendar year (Gregorian year + 543).
package thaidate

import (
	"fmt"
	"time"
)

const buddhistYearOffset = 543

var thaiMonths = [12]string{
	"มกราคม",
	"กุมภาพันธ์",
	"มีนาคม",
	"เมษายน",
	"พฤษภาคม",
	"มิถุนายน",
	"กรกฎาคม",
	"สิงหาคม",
	"กันยายน",
	"ตุลาคม",
	"พฤศจิกายน",
	"ธันวาคม",
}

// BuddhistYear converts a Gregorian year to the Thai Buddhist year.
func BuddhistYear(t time.Time) int {
	return t.Year() + buddhistYearOffset
}

// Format renders a date as "2 มกราคม 2569".
func Format(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], BuddhistYear(t))
}

// FormatRange renders "2 มกราคม 2569 - 4 มกราคม 2569", collapsing
// single-day ranges to one date.
func FormatRange(start, end time.Time) string {
	if start.Equal(end) {
		return Format(start)
	}
	return Format(start) + " - " + Format(end)
}
