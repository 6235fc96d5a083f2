package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultNumWeeks is the plan horizon used when none is configured.
const DefaultNumWeeks = 4

// DateLayout is the persisted and displayed date format.
const DateLayout = "2006-01-02"

// NotSet is displayed in place of a date when no start date is configured.
const NotSet = "Not Set"

// PlanConfig holds the plan horizon and its anchor date.
type PlanConfig struct {
	NumWeeks  int
	StartDate *time.Time // Monday of week 1; nil when not set
}

// DefaultPlanConfig returns the configuration used before anything is loaded.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{NumWeeks: DefaultNumWeeks}
}

// ParseNumWeeks parses user input as a positive week count.
func ParseNumWeeks(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return 0, ErrInvalidWeekCount
	}
	return n, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MondayOf returns midnight UTC of the Monday in t's week.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday counts from Sunday; shift so Monday is 0 and Sunday 6.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DefaultStartDate returns the Monday of the calendar week containing now.
func DefaultStartDate(now time.Time) time.Time {
	return MondayOf(now)
}

// WeekStart returns the Monday of the given 1-based week counted from start.
func WeekStart(start time.Time, week int) time.Time {
	return start.AddDate(0, 0, (week-1)*7)
}
