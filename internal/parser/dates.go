package parser

import (
	"strings"
	"time"
)

// dayFirstLayouts accepted notification date layouts, tried in order.
// Slash/dash/dot forms are day-first; ISO forms keep year-month-day.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"02-01-2006",
	"2-1-2006",
	"02-01-2006 15:04:05",
	"2-1-2006 15:04",
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05-07:00",
	"2006/01/02",
	"20060102",
}

// ParseNotificationDate parses a notification date day-first.
// Unparseable values yield nil; it never fails.
func ParseNotificationDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if IsNullToken(s) {
		return nil
	}
	for _, layout := range dayFirstLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &t
		}
	}
	return nil
}

// YearOf returns the calendar year of t, nil when t is nil.
func YearOf(t *time.Time) *int {
	if t == nil {
		return nil
	}
	y := t.Year()
	return &y
}
