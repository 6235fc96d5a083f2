package testutil

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/alexanderramin/mealplanner/internal/domain"
)

// FixedNow is the reference clock used across tests: Wednesday 2024-02-21.
var FixedNow = time.Date(2024, 2, 21, 18, 30, 0, 0, time.UTC)

// FixedClock returns FixedNow.
func FixedClock() time.Time { return FixedNow }

// Date builds a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// PlanOption customises a plan built by NewTestPlan.
type PlanOption func(domain.WeeklyPlan)

// WithMeal sets a single dinner.
func WithMeal(week int, day domain.Day, meal string) PlanOption {
	return func(p domain.WeeklyPlan) {
		p.Set(week, day, meal)
	}
}

// WithWeek replaces a whole week.
func WithWeek(week int, meals domain.DayMeals) PlanOption {
	return func(p domain.WeeklyPlan) {
		p[week] = meals.Clone()
	}
}

// NewTestPlan returns a default plan of n weeks with opts applied.
func NewTestPlan(n int, opts ...PlanOption) domain.WeeklyPlan {
	p := domain.DefaultWeeklyMeals(n)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WriteJSON marshals v into path, failing the test on error.
func WriteJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	WriteRaw(t, path, string(data))
}

// WriteRaw writes s verbatim into path.
func WriteRaw(t *testing.T, path string, s string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

// ReadJSON decodes the file at path into a generic map.
func ReadJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}
