// Package timeutil parses and formats the date/time shapes the dashboard and
// the processor exchange. Local date+time pairs are always built from their
// numeric components so the calendar date the user picked never shifts across
// timezones.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	displayLayout = "02/01/2006, 15:04:05"
	queryLayout   = "2006-01-02T15:04"
)

// flexibleLayouts are tried in order against upstream date strings. Zone-less
// layouts parse in local time to keep the stored calendar components intact.
var flexibleLayouts = []struct {
	name   string
	layout string
	zoned  bool
}{
	{"iso-zoned", time.RFC3339Nano, true},
	{"iso-millis", "2006-01-02T15:04:05.000", false},
	{"iso", "2006-01-02T15:04:05", false},
	{"sql-millis", "2006-01-02 15:04:05.000", false},
	{"sql", "2006-01-02 15:04:05", false},
	{"display", displayLayout, false},
	{"date-only", "2006-01-02", false},
}

// ParseLocal builds an instant from a "YYYY-MM-DD" date and an "HH:MM" time.
// Out-of-range components are an input error, never clamped.
func ParseLocal(dateStr, timeStr string) (time.Time, error) {
	dateParts := strings.Split(dateStr, "-")
	if len(dateParts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", dateStr)
	}
	timeParts := strings.Split(timeStr, ":")
	if len(timeParts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", timeStr)
	}

	nums := make([]int, 0, 5)
	for _, p := range append(dateParts, timeParts...) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date/time component %q", p)
		}
		nums = append(nums, n)
	}

	year, month, day, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d out of range 0-23", hour)
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("minute %d out of range 0-59", minute)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range 1-12", month)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject that too.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", dateStr)
	}

	return t, nil
}

// FormatDisplay renders an instant as "DD/MM/YYYY, HH:MM:SS".
func FormatDisplay(t time.Time) string {
	return t.Format(displayLayout)
}

// FormatQuery encodes an instant the way the processor's range endpoints
// expect, "YYYY-MM-DDTHH:MM:SS". A range end gets :59 seconds so the last
// selected minute is inclusive; a range start gets :00.
func FormatQuery(t time.Time, rangeEnd bool) string {
	if rangeEnd {
		return t.Format(queryLayout) + ":59"
	}
	return t.Format(queryLayout) + ":00"
}

// ParseFlexible tries the known upstream date shapes in order and reports
// whether one matched. Callers keep the raw string when none does.
func ParseFlexible(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range flexibleLayouts {
		var t time.Time
		var err error
		if p.zoned {
			t, err = time.Parse(p.layout, s)
		} else {
			t, err = time.ParseInLocation(p.layout, s, time.Local)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayString normalizes a raw upstream date string for display, keeping
// the original verbatim when its shape is unrecognized. Empty input renders
// as "N/A".
func DisplayString(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "N/A"
	}
	if t, ok := ParseFlexible(raw); ok {
		return FormatDisplay(t)
	}
	return raw
}
