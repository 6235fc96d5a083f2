package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/alexanderramin/mealplanner/internal/domain"
	"github.com/alexanderramin/mealplanner/internal/repository"
	"github.com/alexanderramin/mealplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T, path string) (*PlanStore, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	store := NewPlanStore(
		repository.NewFileDocumentRepo(path),
		WithLogger(NewLogger(&logs, slog.LevelDebug)),
		WithClock(testutil.FixedClock),
	)
	return store, &logs
}

func TestPlanStore_UnloadedUsesDefaultConfig(t *testing.T) {
	store := NewPlanStore(&testutil.MemoryDocumentRepo{})

	assert.Equal(t, domain.DefaultPlanConfig(), store.cfg)
	assert.Equal(t, domain.DefaultNumWeeks, store.NumWeeks())
	_, ok := store.StartDate()
	assert.False(t, ok)
}

func TestPlanStore_Load_NoDocumentUsesDefaults(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	store, logs := newFileStore(t, path)

	store.Load(context.Background())

	assert.Equal(t, domain.DefaultNumWeeks, store.NumWeeks())
	start, ok := store.StartDate()
	require.True(t, ok)
	assert.Equal(t, testutil.Date(2024, 2, 19), start, "default start is the Monday of the current week")

	plan := store.Plan()
	assert.Equal(t, []int{1, 2, 3, 4}, plan.Weeks())
	for _, week := range plan.Weeks() {
		assert.Equal(t, domain.DefaultDayMeals(), plan[week])
	}
	assert.Contains(t, logs.String(), "no saved meal plan")
	assert.NotContains(t, logs.String(), "level=WARN")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "loading must not create the document")
}

func TestPlanStore_Load_MalformedDocumentFallsBack(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "this is not json"},
		{"empty file", ""},
		{"top level array", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.TempDocumentPath(t)
			testutil.WriteRaw(t, path, tt.body)
			store, logs := newFileStore(t, path)

			store.Load(context.Background())

			assert.Equal(t, domain.DefaultNumWeeks, store.NumWeeks())
			assert.Equal(t, domain.DefaultWeeklyMeals(domain.DefaultNumWeeks), store.Plan())
			assert.Contains(t, logs.String(), "malformed")
		})
	}
}

func TestPlanStore_LoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]any
		want    int
		warning bool
	}{
		{"stored value", map[string]any{"num_weeks": 6}, 6, false},
		{"missing field", map[string]any{"weeks": map[string]any{}}, domain.DefaultNumWeeks, false},
		{"zero", map[string]any{"num_weeks": 0}, domain.DefaultNumWeeks, true},
		{"string", map[string]any{"num_weeks": "six"}, domain.DefaultNumWeeks, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.TempDocumentPath(t)
			testutil.WriteJSON(t, path, tt.doc)
			store, logs := newFileStore(t, path)

			got := store.LoadSettings(context.Background())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, store.NumWeeks())
			assert.Equal(t, tt.warning, bytes.Contains(logs.Bytes(), []byte("level=WARN")))
		})
	}
}

func TestPlanStore_LoadStartDate(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		path := testutil.TempDocumentPath(t)
		testutil.WriteJSON(t, path, map[string]any{"start_date": "2024-01-01"})
		store, _ := newFileStore(t, path)

		got := store.LoadStartDate(context.Background())

		assert.Equal(t, testutil.Date(2024, 1, 1), got)
	})

	t.Run("null", func(t *testing.T) {
		path := testutil.TempDocumentPath(t)
		testutil.WriteRaw(t, path, `{"start_date": null}`)
		store, logs := newFileStore(t, path)

		got := store.LoadStartDate(context.Background())

		assert.Equal(t, testutil.Date(2024, 2, 19), got)
		assert.NotContains(t, logs.String(), "level=WARN")
	})

	t.Run("unparseable", func(t *testing.T) {
		path := testutil.TempDocumentPath(t)
		testutil.WriteJSON(t, path, map[string]any{"start_date": "19/02/2024"})
		store, logs := newFileStore(t, path)

		got := store.LoadStartDate(context.Background())

		assert.Equal(t, testutil.Date(2024, 2, 19), got)
		assert.Contains(t, logs.String(), "ignoring stored start date")
	})
}

func TestPlanStore_LoadMeals_SkipsBadWeekKeys(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	testutil.WriteRaw(t, path, `{
		"weeks": {
			"x": {"Monday": "Curry"},
			"2": {"Monday": "Soup"}
		},
		"num_weeks": 2
	}`)
	store, logs := newFileStore(t, path)
	ctx := context.Background()

	store.LoadSettings(ctx)
	plan := store.LoadMeals(ctx)

	assert.Equal(t, []int{1, 2}, plan.Weeks())
	assert.Equal(t, domain.DefaultDayMeals(), plan[1], "week 1 is missing and gets defaults")
	assert.Equal(t, domain.DayMeals{domain.Monday: "Soup"}, plan[2])
	assert.Contains(t, logs.String(), "skipping meal plan entry")
}

func TestPlanStore_LoadMeals_PartialWeekKeepsMissingDays(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	testutil.WriteJSON(t, path, map[string]any{
		"weeks":     map[string]any{"1": map[string]string{"Friday": "Burgers"}},
		"num_weeks": 1,
	})
	store, _ := newFileStore(t, path)

	store.Load(context.Background())

	meals := store.Meals(1)
	assert.Equal(t, "Burgers", meals.Display(domain.Friday))
	assert.Equal(t, domain.NoDinnerPlanned, meals.Display(domain.Monday))
}

func TestPlanStore_SetNumWeeks_GrowFillsDefaults(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	store, _ := newFileStore(t, path)
	ctx := context.Background()
	store.Load(ctx)
	require.NoError(t, store.EditDinner(ctx, 2, domain.Tuesday, "Ramen"))

	require.NoError(t, store.SetNumWeeks(ctx, "8"))

	assert.Equal(t, 8, store.NumWeeks())
	plan := store.Plan()
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, plan.Weeks())
	for week := 5; week <= 8; week++ {
		assert.Equal(t, domain.DefaultDayMeals(), plan[week], "week %d", week)
	}
	assert.Equal(t, "Ramen", plan[2][domain.Tuesday], "existing weeks are untouched")

	stored := testutil.ReadJSON(t, path)
	assert.EqualValues(t, 8, stored["num_weeks"])
	assert.Len(t, stored["weeks"], 8)
}

func TestPlanStore_SetNumWeeks_RejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"abc", "-1", "0", "", "2.5"} {
		t.Run(input, func(t *testing.T) {
			path := testutil.TempDocumentPath(t)
			store, logs := newFileStore(t, path)
			ctx := context.Background()
			store.Load(ctx)
			before := store.Plan()

			err := store.SetNumWeeks(ctx, input)

			assert.ErrorIs(t, err, domain.ErrInvalidWeekCount)
			assert.Equal(t, domain.DefaultNumWeeks, store.NumWeeks())
			assert.Equal(t, before, store.Plan())
			assert.Contains(t, logs.String(), "Invalid Input!")

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "rejected input must not write")
		})
	}
}

func TestPlanStore_SetNumWeeks_ShrinkKeepsStaleWeeks(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	store, _ := newFileStore(t, path)
	ctx := context.Background()
	store.Load(ctx)

	require.NoError(t, store.SetNumWeeks(ctx, "2"))

	assert.Equal(t, 2, store.NumWeeks())
	assert.Equal(t, []int{1, 2, 3, 4}, store.Plan().Weeks())

	stored := testutil.ReadJSON(t, path)
	weeks, ok := stored["weeks"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, weeks, "4")
}

func TestPlanStore_EditDinner_PersistsAndReloads(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	store, _ := newFileStore(t, path)
	ctx := context.Background()
	store.Load(ctx)

	require.NoError(t, store.EditDinner(ctx, 1, domain.Monday, "Soup"))

	reloaded, _ := newFileStore(t, path)
	reloaded.Load(ctx)
	assert.Equal(t, "Soup", reloaded.Meals(1).Display(domain.Monday))
	assert.Equal(t, "Tacos", reloaded.Meals(1).Display(domain.Tuesday))
}

func TestPlanStore_EditDinner_AcceptsEmptyMeal(t *testing.T) {
	store := NewPlanStore(&testutil.MemoryDocumentRepo{}, WithClock(testutil.FixedClock))
	ctx := context.Background()
	store.Load(ctx)

	require.NoError(t, store.EditDinner(ctx, 3, domain.Sunday, ""))

	meal, ok := store.Meals(3).Meal(domain.Sunday)
	assert.True(t, ok)
	assert.Empty(t, meal)
}

func TestPlanStore_EditDinner_Validation(t *testing.T) {
	store := NewPlanStore(&testutil.MemoryDocumentRepo{}, WithClock(testutil.FixedClock))
	ctx := context.Background()
	store.Load(ctx)

	err := store.EditDinner(ctx, 1, domain.Day("Funday"), "Cake")
	assert.ErrorIs(t, err, domain.ErrInvalidDay)

	err = store.EditDinner(ctx, 0, domain.Monday, "Cake")
	assert.ErrorIs(t, err, domain.ErrWeekOutOfRange)

	err = store.EditDinner(ctx, 5, domain.Monday, "Cake")
	assert.ErrorIs(t, err, domain.ErrWeekOutOfRange)

	assert.Equal(t, domain.DefaultWeeklyMeals(4), store.Plan())
}

func TestPlanStore_WriteFailureKeepsState(t *testing.T) {
	diskFull := errors.New("disk full")
	repo := &testutil.FailingDocumentRepo{
		DocumentRepo: &testutil.MemoryDocumentRepo{},
		WriteErr:     diskFull,
	}
	var logs bytes.Buffer
	store := NewPlanStore(repo,
		WithLogger(NewLogger(&logs, slog.LevelInfo)),
		WithClock(testutil.FixedClock),
	)
	ctx := context.Background()
	store.Load(ctx)

	err := store.EditDinner(ctx, 1, domain.Monday, "Soup")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistenceWrite)
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, "Soup", store.Meals(1).Display(domain.Monday), "in-memory edit survives a failed write")
	assert.Contains(t, logs.String(), "failed to save meal plan")
	assert.Equal(t, 1, repo.Writes())

	err = store.SaveMeals(ctx)
	assert.ErrorIs(t, err, ErrPersistenceWrite)
	assert.Equal(t, 2, repo.Writes())
}

func TestPlanStore_SetStartDate(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	store, _ := newFileStore(t, path)
	ctx := context.Background()
	store.Load(ctx)

	require.NoError(t, store.SetStartDate(ctx, "2024-03-07"))

	start, ok := store.StartDate()
	require.True(t, ok)
	assert.Equal(t, testutil.Date(2024, 3, 4), start, "start date snaps to Monday")
	assert.Equal(t, "2024-03-04", testutil.ReadJSON(t, path)["start_date"])

	err := store.SetStartDate(ctx, "next week")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	start, _ = store.StartDate()
	assert.Equal(t, testutil.Date(2024, 3, 4), start)
}

func TestPlanStore_SaveMeals_RoundTrip(t *testing.T) {
	path := testutil.TempDocumentPath(t)
	store, _ := newFileStore(t, path)
	ctx := context.Background()
	store.Load(ctx)
	require.NoError(t, store.SetNumWeeks(ctx, "3"))
	require.NoError(t, store.EditDinner(ctx, 3, domain.Wednesday, "Lasagne"))

	require.NoError(t, store.SaveMeals(ctx))

	reloaded, _ := newFileStore(t, path)
	reloaded.Load(ctx)
	assert.Equal(t, store.NumWeeks(), reloaded.NumWeeks())
	assert.Equal(t, store.Plan(), reloaded.Plan())
	wantStart, _ := store.StartDate()
	gotStart, _ := reloaded.StartDate()
	assert.Equal(t, wantStart, gotStart)
}

func TestPlanStore_SQLiteBackend(t *testing.T) {
	repo := testutil.NewTestSQLiteDocumentRepo(t, repository.WithRevisionClock(testutil.FixedClock))
	store := NewPlanStore(repo, WithClock(testutil.FixedClock))
	ctx := context.Background()
	store.Load(ctx)

	require.NoError(t, store.EditDinner(ctx, 2, domain.Thursday, "Stir Fry"))
	require.NoError(t, store.SaveMeals(ctx))

	reloaded := NewPlanStore(repo, WithClock(testutil.FixedClock))
	reloaded.Load(ctx)
	assert.Equal(t, "Stir Fry", reloaded.Meals(2).Display(domain.Thursday))

	// The edit already saved; the repeat save stores nothing new.
	revs, err := repo.Revisions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, revs, 1)

	require.NoError(t, store.EditDinner(ctx, 2, domain.Friday, "Curry"))
	revs, err = repo.Revisions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, revs, 2)
}

func TestPlanStore_DayHandles(t *testing.T) {
	store := NewPlanStore(&testutil.MemoryDocumentRepo{}, WithClock(testutil.FixedClock))
	ctx := context.Background()
	store.Load(ctx)

	handles := store.DayHandles()
	require.Len(t, handles, 7)
	assert.Equal(t, domain.Monday, handles[0].Day)
	assert.Equal(t, domain.Sunday, handles[6].Day)

	require.NoError(t, handles[4].Edit(ctx, 2, "Paella"))
	assert.Equal(t, "Paella", handles[4].Meal(2))
	assert.Equal(t, "Fish and Chips", handles[4].Meal(1), "handles bind the day, not the week")
	assert.Equal(t, domain.NoDinnerPlanned, handles[0].Meal(99))
}
