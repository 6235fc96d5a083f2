package domain

import "sort"

// NoDinnerPlanned is shown for a day without an entry.
const NoDinnerPlanned = "No dinner planned"

// DayMeals maps a weekday to its dinner. A missing key means no dinner is planned.
type DayMeals map[Day]string

// WeeklyPlan maps a 1-based week number to that week's dinners.
type WeeklyPlan map[int]DayMeals

// DefaultDayMeals returns a fresh copy of the seed dinners used for any
// week without data.
func DefaultDayMeals() DayMeals {
	return DayMeals{
		Monday:    "Pasta",
		Tuesday:   "Tacos",
		Wednesday: "Pizza",
		Thursday:  "Chicken and Veggies",
		Friday:    "Fish and Chips",
		Saturday:  "Steak",
		Sunday:    "Roast Dinner",
	}
}

// DefaultWeeklyMeals returns a plan with weeks 1..n, each seeded with an
// independent copy of DefaultDayMeals.
func DefaultWeeklyMeals(n int) WeeklyPlan {
	plan := make(WeeklyPlan, max(n, 0))
	plan.EnsureWeeks(n)
	return plan
}

// Meal returns the dinner for day and whether one is planned.
func (m DayMeals) Meal(day Day) (string, bool) {
	meal, ok := m[day]
	return meal, ok
}

// Display returns the dinner text for day, or NoDinnerPlanned.
func (m DayMeals) Display(day Day) string {
	if meal, ok := m[day]; ok {
		return meal
	}
	return NoDinnerPlanned
}

// Clone returns an independent copy of m.
func (m DayMeals) Clone() DayMeals {
	if m == nil {
		return nil
	}
	out := make(DayMeals, len(m))
	for d, meal := range m {
		out[d] = meal
	}
	return out
}

// EnsureWeeks fills every week in [1, n] that has no entry with the default
// dinners. Existing entries, including weeks beyond n, are left untouched.
// It returns the weeks that were added in ascending order.
func (p WeeklyPlan) EnsureWeeks(n int) []int {
	var added []int
	for week := 1; week <= n; week++ {
		if _, ok := p[week]; ok {
			continue
		}
		p[week] = DefaultDayMeals()
		added = append(added, week)
	}
	return added
}

// Set assigns meal to day in week, creating the week entry when needed.
func (p WeeklyPlan) Set(week int, day Day, meal string) {
	meals, ok := p[week]
	if !ok || meals == nil {
		meals = DayMeals{}
		p[week] = meals
	}
	meals[day] = meal
}

// Weeks returns the week numbers present in p in ascending order.
func (p WeeklyPlan) Weeks() []int {
	weeks := make([]int, 0, len(p))
	for w := range p {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// Clone returns a deep copy of p.
func (p WeeklyPlan) Clone() WeeklyPlan {
	out := make(WeeklyPlan, len(p))
	for w, meals := range p {
		out[w] = meals.Clone()
	}
	return out
}
