package cli

import (
	"testing"

	"github.com/alexanderramin/mealplanner/internal/teatest"
)

// TestDriver wraps teatest.Driver with planner-specific inspection methods.
// It provides access to appModel internals (view stack, week cursor) that
// the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init().
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	if app.Console != nil {
		app.Console.Capture(true)
		t.Cleanup(func() { app.Console.Capture(false) })
	}

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.Title()
	}
	return ""
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// WeekCursor returns the selected row of the week view.
func (d *TestDriver) WeekCursor() int {
	m := d.appModel()
	wv, ok := m.viewStack[0].(*weekView)
	if !ok {
		d.T.Fatalf("bottom view is %T, want *weekView", m.viewStack[0])
	}
	return wv.cursor
}

// IsQuitting reports whether the model asked to quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}
