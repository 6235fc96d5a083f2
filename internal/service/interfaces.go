package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mealplanner/internal/domain"
)

// PlanBounds is the read-only view of the plan configuration that the
// navigator needs.
type PlanBounds interface {
	NumWeeks() int
	StartDate() (time.Time, bool)
}

// PlanService is the set of plan operations the presentation layer uses.
type PlanService interface {
	PlanBounds

	Load(ctx context.Context)
	LoadSettings(ctx context.Context) int
	LoadStartDate(ctx context.Context) time.Time
	LoadMeals(ctx context.Context) domain.WeeklyPlan
	SaveMeals(ctx context.Context) error

	SetNumWeeks(ctx context.Context, input string) error
	SetStartDate(ctx context.Context, input string) error
	EditDinner(ctx context.Context, week int, day domain.Day, meal string) error

	Plan() domain.WeeklyPlan
	Meals(week int) domain.DayMeals
	DayHandles() []DayHandle
}

// RevisionLister lists stored document revisions, newest first.
type RevisionLister interface {
	Revisions(ctx context.Context, limit int) ([]*domain.Revision, error)
}

var _ PlanService = (*PlanStore)(nil)
