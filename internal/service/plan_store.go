package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/mealplanner/internal/domain"
	"github.com/alexanderramin/mealplanner/internal/repository"
)

// ErrPersistenceWrite wraps any failure to store the plan document.
var ErrPersistenceWrite = errors.New("saving meal plan")

// PlanStore owns the weekly plan, the week count and the start date, and
// keeps them in sync with the persisted document.
//
// Load failures never surface to callers: a missing or malformed document
// degrades to defaults and a logged warning. Write failures are logged and
// returned, leaving the in-memory state as the caller left it.
type PlanStore struct {
	mu sync.Mutex

	repo   repository.DocumentRepo
	logger *slog.Logger
	now    func() time.Time

	cfg  domain.PlanConfig
	plan domain.WeeklyPlan
}

// StoreOption configures a PlanStore.
type StoreOption func(*PlanStore)

// WithLogger sets the sink for load warnings and persistence errors.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *PlanStore) {
		s.logger = loggerOrDiscard(l)
	}
}

// WithClock overrides the clock used to compute the default start date.
func WithClock(now func() time.Time) StoreOption {
	return func(s *PlanStore) {
		s.now = now
	}
}

// NewPlanStore creates a PlanStore over repo. Nothing is read until one of
// the Load methods is called.
func NewPlanStore(repo repository.DocumentRepo, opts ...StoreOption) *PlanStore {
	s := &PlanStore{
		repo:   repo,
		logger: discardLogger(),
		now:    time.Now,
		cfg:    domain.DefaultPlanConfig(),
		plan:   domain.WeeklyPlan{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ── loading ──────────────────────────────────────────────────────────────────

// Load runs the startup sequence (settings, start date, meals) over a single
// read of the document.
func (s *PlanStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.readDocument(ctx)
	s.cfg.NumWeeks = s.settingsFrom(doc)
	start := s.startDateFrom(doc)
	s.cfg.StartDate = &start
	s.plan = s.mealsFrom(doc)
}

// LoadSettings reads num_weeks from the document, falling back to
// domain.DefaultNumWeeks.
func (s *PlanStore) LoadSettings(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.NumWeeks = s.settingsFrom(s.readDocument(ctx))
	return s.cfg.NumWeeks
}

// LoadStartDate reads start_date from the document, falling back to the
// Monday of the current week.
func (s *PlanStore) LoadStartDate(ctx context.Context) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.startDateFrom(s.readDocument(ctx))
	s.cfg.StartDate = &start
	return start
}

// LoadMeals reads the weekly plan and fills every week in [1, num_weeks]
// that has no entry with the default dinners.
func (s *PlanStore) LoadMeals(ctx context.Context) domain.WeeklyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plan = s.mealsFrom(s.readDocument(ctx))
	return s.plan.Clone()
}

// readDocument returns nil when the document is absent or unusable.
func (s *PlanStore) readDocument(ctx context.Context) *repository.Document {
	data, err := s.repo.Read(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("no saved meal plan, using defaults")
		} else {
			s.logger.Warn("could not read meal plan, using defaults", "error", err)
		}
		return nil
	}

	doc, err := repository.DecodeDocument(data)
	if err != nil {
		s.logger.Warn("meal plan is malformed, using defaults", "error", err)
		return nil
	}
	return doc
}

func (s *PlanStore) settingsFrom(doc *repository.Document) int {
	if doc == nil {
		return domain.DefaultNumWeeks
	}
	n, err := doc.NumWeeks()
	if err != nil {
		s.logFieldFallback("ignoring stored week count", err, domain.DefaultNumWeeks)
		return domain.DefaultNumWeeks
	}
	return n
}

func (s *PlanStore) startDateFrom(doc *repository.Document) time.Time {
	fallback := domain.DefaultStartDate(s.now())
	if doc == nil {
		return fallback
	}
	start, err := doc.StartDate()
	if err != nil {
		s.logFieldFallback("ignoring stored start date", err, fallback.Format(domain.DateLayout))
		return fallback
	}
	return start
}

// logFieldFallback reports a field replaced by its default. An absent field
// is routine for older documents and only logged at debug.
func (s *PlanStore) logFieldFallback(msg string, err error, fallback any) {
	level := slog.LevelWarn
	if errors.Is(err, repository.ErrMissingField) {
		level = slog.LevelDebug
	}
	s.logger.Log(context.Background(), level, msg, "error", err, "default", fallback)
}

func (s *PlanStore) mealsFrom(doc *repository.Document) domain.WeeklyPlan {
	if doc == nil {
		return domain.DefaultWeeklyMeals(s.cfg.NumWeeks)
	}
	plan, problems := doc.Weeks()
	for _, p := range problems {
		s.logger.Warn("skipping meal plan entry", "error", p)
	}
	if added := plan.EnsureWeeks(s.cfg.NumWeeks); len(added) > 0 {
		s.logger.Debug("filled missing weeks with default dinners", "weeks", added)
	}
	return plan
}

// ── saving and mutation ──────────────────────────────────────────────────────

// SaveMeals overwrites the stored document with the current state.
func (s *PlanStore) SaveMeals(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *PlanStore) saveLocked(ctx context.Context) error {
	body, err := repository.EncodeDocument(s.plan, s.cfg.StartDate, s.cfg.NumWeeks)
	if err == nil {
		err = s.repo.Write(ctx, body)
	}
	if err != nil {
		s.logger.Error("failed to save meal plan", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	s.logger.Debug("meal plan saved", "num_weeks", s.cfg.NumWeeks)
	return nil
}

// SetNumWeeks parses input as the new week count. Invalid input leaves the
// state untouched and returns domain.ErrInvalidWeekCount. Weeks that come
// into range get the default dinners; weeks that fall out of range are kept.
func (s *PlanStore) SetNumWeeks(ctx context.Context, input string) error {
	n, err := domain.ParseNumWeeks(input)
	if err != nil {
		s.logger.Error(err.Error(), "input", input)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.NumWeeks = n
	added := s.plan.EnsureWeeks(n)
	s.logger.Info("number of weeks updated", "num_weeks", n, "added", len(added))
	return s.saveLocked(ctx)
}

// SetStartDate parses a YYYY-MM-DD date and anchors week 1 to the Monday of
// that date's week.
func (s *PlanStore) SetStartDate(ctx context.Context, input string) error {
	d, err := domain.ParseDate(input)
	if err != nil {
		s.logger.Error("invalid start date", "input", input)
		return err
	}
	monday := domain.MondayOf(d)
	if !monday.Equal(d) {
		s.logger.Info("start date moved to Monday", "input", input, "start_date", monday.Format(domain.DateLayout))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.StartDate = &monday
	return s.saveLocked(ctx)
}

// EditDinner sets the dinner for day in week and persists immediately. The
// meal text is taken as-is, including the empty string.
func (s *PlanStore) EditDinner(ctx context.Context, week int, day domain.Day, meal string) error {
	if !day.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDay, day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if week < 1 || week > s.cfg.NumWeeks {
		return fmt.Errorf("%w: week %d of %d", domain.ErrWeekOutOfRange, week, s.cfg.NumWeeks)
	}

	s.plan.Set(week, day, meal)
	s.logger.Info("dinner updated", "week", week, "day", string(day), "meal", meal)
	return s.saveLocked(ctx)
}

// ── accessors ────────────────────────────────────────────────────────────────

// NumWeeks returns the configured week count.
func (s *PlanStore) NumWeeks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.NumWeeks
}

// StartDate returns the Monday of week 1, or false if it has not been loaded or set.
func (s *PlanStore) StartDate() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.StartDate == nil {
		return time.Time{}, false
	}
	return *s.cfg.StartDate, true
}

// Plan returns a deep copy of the weekly plan, including out-of-range weeks.
func (s *PlanStore) Plan() domain.WeeklyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Clone()
}

// Meals returns a copy of one week's dinners; nil if the week has no entry.
func (s *PlanStore) Meals(week int) domain.DayMeals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan[week].Clone()
}

// DayHandle is a stable per-day binding for the presentation layer: bind it
// once to a row, then call it with whichever week is showing.
type DayHandle struct {
	Day   domain.Day
	store *PlanStore
}

// Meal returns the display text for this day in week.
func (h DayHandle) Meal(week int) string {
	return h.store.Meals(week).Display(h.Day)
}

// Edit sets this day's dinner in week.
func (h DayHandle) Edit(ctx context.Context, week int, meal string) error {
	return h.store.EditDinner(ctx, week, h.Day, meal)
}

// DayHandles returns one handle per weekday in display order.
func (s *PlanStore) DayHandles() []DayHandle {
	handles := make([]DayHandle, len(domain.Days))
	for i, d := range domain.Days {
		handles[i] = DayHandle{Day: d, store: s}
	}
	return handles
}
