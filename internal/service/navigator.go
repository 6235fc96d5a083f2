package service

import (
	"time"

	"github.com/alexanderramin/mealplanner/internal/domain"
)

// WeekNavigator tracks which week is showing and keeps it within
// [1, NumWeeks]. Moving past either end is silently ignored.
type WeekNavigator struct {
	bounds  PlanBounds
	current int
}

// NewWeekNavigator starts at week 1.
func NewWeekNavigator(bounds PlanBounds) *WeekNavigator {
	return &WeekNavigator{bounds: bounds, current: 1}
}

// clamp pulls the pointer back into range after the week count shrinks.
func (n *WeekNavigator) clamp() {
	last := n.NumWeeks()
	if n.current > last {
		n.current = last
	}
	if n.current < 1 {
		n.current = 1
	}
}

// NumWeeks is the upper bound, never below 1.
func (n *WeekNavigator) NumWeeks() int {
	return max(n.bounds.NumWeeks(), 1)
}

// Current returns the active week.
func (n *WeekNavigator) Current() int {
	n.clamp()
	return n.current
}

// Next advances one week unless the current week is the last.
func (n *WeekNavigator) Next() {
	if n.IsNextEnabled() {
		n.current++
	}
}

// Previous steps back one week unless the current week is the first.
func (n *WeekNavigator) Previous() {
	if n.IsPreviousEnabled() {
		n.current--
	}
}

// IsNextEnabled reports whether a later week exists.
func (n *WeekNavigator) IsNextEnabled() bool {
	return n.Current() < n.NumWeeks()
}

// IsPreviousEnabled reports whether an earlier week exists.
func (n *WeekNavigator) IsPreviousEnabled() bool {
	return n.Current() > 1
}

// Jump moves to week, clamped into range.
func (n *WeekNavigator) Jump(week int) {
	n.current = week
	n.clamp()
}

// DisplayDate returns the Monday of week, or false when no start date is set.
func (n *WeekNavigator) DisplayDate(week int) (time.Time, bool) {
	start, ok := n.bounds.StartDate()
	if !ok {
		return time.Time{}, false
	}
	return domain.WeekStart(start, week), true
}

// DisplayLabel renders DisplayDate as YYYY-MM-DD or "Not Set".
func (n *WeekNavigator) DisplayLabel(week int) string {
	d, ok := n.DisplayDate(week)
	if !ok {
		return domain.NotSet
	}
	return d.Format(domain.DateLayout)
}
