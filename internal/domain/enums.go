package domain

import "strings"

// Day identifies a weekday. Values are case-sensitive in stored documents.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the weekdays in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ValidDays is the canonical set of accepted day identifiers.
var ValidDays = map[Day]bool{
	Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
	Friday: true, Saturday: true, Sunday: true,
}

// IsValid reports whether d is one of the seven canonical identifiers.
func (d Day) IsValid() bool {
	return ValidDays[d]
}

// ParseDay resolves user input to a canonical Day. Matching ignores case and
// accepts three-letter abbreviations ("tue").
func ParseDay(s string) (Day, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return "", ErrInvalidDay
	}
	for _, d := range Days {
		name := strings.ToLower(string(d))
		if in == name || (len(in) == 3 && strings.HasPrefix(name, in)) {
			return d, nil
		}
	}
	return "", ErrInvalidDay
}
