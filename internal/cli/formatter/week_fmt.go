package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mealplanner/internal/domain"
)

// WeekTitle renders the "Week N of M" heading.
func WeekTitle(week, numWeeks int) string {
	return fmt.Sprintf("Week %d of %d", week, numWeeks)
}

// MealText renders a day's dinner, dimming the placeholder for unplanned days.
func MealText(meals domain.DayMeals, day domain.Day) string {
	if _, ok := meals.Meal(day); !ok {
		return Dim(domain.NoDinnerPlanned)
	}
	return StyleFg.Render(meals.Display(day))
}

// FormatWeek renders one week as a boxed Day/Dinner table.
func FormatWeek(week, numWeeks int, dateLabel string, meals domain.DayMeals) string {
	rows := make([][]string, 0, len(domain.Days))
	for _, d := range domain.Days {
		rows = append(rows, []string{Bold(string(d)), MealText(meals, d)})
	}

	var b strings.Builder
	b.WriteString(Dim("Starting ") + dateText(dateLabel) + "\n\n")
	b.WriteString(strings.TrimRight(RenderTable([]string{"Day", "Dinner"}, rows), "\n"))

	return RenderBox(WeekTitle(week, numWeeks), b.String()) + "\n"
}

// WeekDate pairs a week number with its display label.
type WeekDate struct {
	Week  int
	Label string
}

// FormatDates renders the week-to-date listing.
func FormatDates(dates []WeekDate) string {
	rows := make([][]string, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, []string{strconv.Itoa(d.Week), dateText(d.Label)})
	}
	return RenderTable([]string{"Week", "Starts"}, rows)
}

// FormatRevisions renders stored revisions, newest first.
func FormatRevisions(revs []*domain.Revision) string {
	if len(revs) == 0 {
		return Dim("No revisions stored.") + "\n"
	}
	rows := make([][]string, 0, len(revs))
	for _, r := range revs {
		start := domain.NotSet
		if r.StartDate != nil {
			start = r.StartDate.Format(domain.DateLayout)
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestamp(r.SavedAt),
			strconv.Itoa(r.NumWeeks),
			dateText(start),
		})
	}
	return RenderTable([]string{"ID", "Saved", "Weeks", "Start"}, rows)
}

func dateText(label string) string {
	if label == domain.NotSet {
		return StyleYellow.Render(label)
	}
	return StyleBlue.Render(label)
}
