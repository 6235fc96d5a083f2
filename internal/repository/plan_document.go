package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/alexanderramin/mealplanner/internal/domain"
)

const (
	fieldWeeks     = "weeks"
	fieldStartDate = "start_date"
	fieldNumWeeks  = "num_weeks"
)

// planDocument is the persisted shape. Week keys are strings on disk.
type planDocument struct {
	Weeks     map[string]map[string]string `json:"weeks"`
	StartDate *string                      `json:"start_date"`
	NumWeeks  int                          `json:"num_weeks"`
}

// EncodeDocument converts the in-memory plan to the persisted JSON form,
// turning integer week keys into strings. A nil start date is written as null.
func EncodeDocument(plan domain.WeeklyPlan, startDate *time.Time, numWeeks int) ([]byte, error) {
	doc := planDocument{
		Weeks:    make(map[string]map[string]string, len(plan)),
		NumWeeks: numWeeks,
	}
	for week, meals := range plan {
		days := make(map[string]string, len(meals))
		for day, meal := range meals {
			days[string(day)] = meal
		}
		doc.Weeks[strconv.Itoa(week)] = days
	}
	if startDate != nil {
		s := startDate.Format(domain.DateLayout)
		doc.StartDate = &s
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan document: %w", err)
	}
	return append(data, '\n'), nil
}

// Document is a parsed plan document whose fields are decoded lazily, so a
// bad field never invalidates the others.
type Document struct {
	fields map[string]json.RawMessage
}

// DecodeDocument parses the top level of a stored document. Anything other
// than a JSON object (including an empty file) yields ErrMalformedDocument.
func DecodeDocument(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return &Document{fields: fields}, nil
}

func (d *Document) raw(name string) (json.RawMessage, bool) {
	v, ok := d.fields[name]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// NumWeeks returns the stored week count. It fails with ErrMissingField when
// absent and ErrInvalidField unless the value is a positive integer.
func (d *Document) NumWeeks() (int, error) {
	v, ok := d.raw(fieldNumWeeks)
	if !ok {
		return 0, fmt.Errorf("%s: %w", fieldNumWeeks, ErrMissingField)
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil || n <= 0 {
		return 0, fmt.Errorf("%s %s: %w", fieldNumWeeks, v, ErrInvalidField)
	}
	return n, nil
}

// StartDate returns the stored start date. It fails with ErrMissingField when
// absent or null and domain.ErrInvalidDate when not a YYYY-MM-DD string.
func (d *Document) StartDate() (time.Time, error) {
	v, ok := d.raw(fieldStartDate)
	if !ok {
		return time.Time{}, fmt.Errorf("%s: %w", fieldStartDate, ErrMissingField)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return time.Time{}, fmt.Errorf("%s %s: %w", fieldStartDate, v, domain.ErrInvalidDate)
	}
	return domain.ParseDate(s)
}

// Weeks decodes the stored weeks, converting string keys to week numbers.
// Entries that cannot be converted are skipped and reported in problems;
// the remaining entries are still returned.
func (d *Document) Weeks() (plan domain.WeeklyPlan, problems []error) {
	plan = domain.WeeklyPlan{}
	v, ok := d.raw(fieldWeeks)
	if !ok {
		return plan, nil
	}

	var weeks map[string]json.RawMessage
	if err := json.Unmarshal(v, &weeks); err != nil {
		return plan, []error{fmt.Errorf("%s: %w", fieldWeeks, ErrInvalidField)}
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		week, err := strconv.Atoi(key)
		if err != nil || week <= 0 {
			problems = append(problems, fmt.Errorf("%w: %q", ErrInvalidWeekKey, key))
			continue
		}

		var days map[string]string
		if err := json.Unmarshal(weeks[key], &days); err != nil {
			problems = append(problems, fmt.Errorf("week %d: %w", week, ErrInvalidField))
			continue
		}

		meals := make(domain.DayMeals, len(days))
		for name, meal := range days {
			day := domain.Day(name)
			if !day.IsValid() {
				problems = append(problems, fmt.Errorf("week %d: %w %q", week, domain.ErrInvalidDay, name))
				continue
			}
			meals[day] = meal
		}
		plan[week] = meals
	}
	return plan, problems
}
