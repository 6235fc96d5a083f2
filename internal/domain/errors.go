package domain

import "errors"

var (
	// ErrInvalidWeekCount is returned when a week count is not a positive integer.
	// The message is what the user sees.
	ErrInvalidWeekCount = errors.New("Invalid Input!")

	// ErrInvalidDay is returned for a day name outside Monday..Sunday.
	ErrInvalidDay = errors.New("invalid day")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrWeekOutOfRange is returned for a week number outside [1, num_weeks].
	ErrWeekOutOfRange = errors.New("week out of range")
)
