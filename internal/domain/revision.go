package domain

import "time"

// Revision is a stored snapshot of the plan document.
type Revision struct {
	ID        string
	SavedAt   time.Time
	NumWeeks  int
	StartDate *time.Time
	Body      []byte
}
