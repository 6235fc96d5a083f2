package cli

import (
	"fmt"

	"github.com/alexanderramin/mealplanner/internal/cli/formatter"
	"github.com/alexanderramin/mealplanner/internal/domain"
	"github.com/alexanderramin/mealplanner/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// plannerHuhTheme returns a custom huh theme using the Gruvbox palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardEditMeal creates a huh form prefilled with the current dinner.
// Any text is accepted, including an empty string.
func wizardEditMeal(day domain.Day, week int, result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Dinner for %s", day)).
				Description(fmt.Sprintf("Week %d", week)).
				Value(result),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

// wizardNumWeeks creates a huh form for the number of weeks. Validation is
// left to the store so invalid input is reported through the error console.
func wizardNumWeeks(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of weeks").
				Placeholder(fmt.Sprint(domain.DefaultNumWeeks)).
				Value(result),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

// applyEditMeal stores the edited dinner and reports the outcome.
func applyEditMeal(state *SharedState, handle service.DayHandle, week int, meal string) tea.Msg {
	err := handle.Edit(state.ctx(), week, meal)
	state.reportErr(err)
	return planChangedMsg{err: err}
}

// applyNumWeeks sets the week count from raw form input.
func applyNumWeeks(state *SharedState, input string) tea.Msg {
	err := state.App.Plans.SetNumWeeks(state.ctx(), input)
	state.reportErr(err)
	return planChangedMsg{err: err}
}

// editMealCmd opens the edit form for handle in week.
func editMealCmd(state *SharedState, handle service.DayHandle, week int) tea.Cmd {
	meal, _ := state.App.Plans.Meals(week).Meal(handle.Day)
	value := meal
	form := wizardEditMeal(handle.Day, week, &value)
	return startWizardCmd(state, fmt.Sprintf("Edit %s", handle.Day), form, func() tea.Cmd {
		return func() tea.Msg { return applyEditMeal(state, handle, week, value) }
	})
}

// numWeeksCmd opens the number-of-weeks form.
func numWeeksCmd(state *SharedState) tea.Cmd {
	value := fmt.Sprint(state.App.Plans.NumWeeks())
	form := wizardNumWeeks(&value)
	return startWizardCmd(state, "Weeks", form, func() tea.Cmd {
		return func() tea.Msg { return applyNumWeeks(state, value) }
	})
}
