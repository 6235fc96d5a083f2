package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mealplanner/internal/cli/formatter"
	"github.com/alexanderramin/mealplanner/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// consoleHeight is the number of lines shown in each console panel.
const consoleHeight = 6

// weekView shows the dinners for the navigator's current week.
// Rows are bound once to the store's day handles and re-read on render.
type weekView struct {
	state  *SharedState
	days   []service.DayHandle
	cursor int
	flash  string // last failed change, cleared by the next key
}

func newWeekView(state *SharedState) *weekView {
	return &weekView{
		state: state,
		days:  state.App.Plans.DayHandles(),
	}
}

func (v *weekView) ID() ViewID    { return ViewWeek }
func (v *weekView) Title() string { return "" }

func (v *weekView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev week")),
		key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next week")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weeks")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *weekView) Init() tea.Cmd {
	return nil
}

func (v *weekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	nav := v.state.App.Navigator

	switch msg := msg.(type) {
	case planChangedMsg:
		// State is read live in View; only the outcome needs keeping.
		v.flash = ""
		if msg.err != nil {
			v.flash = msg.err.Error()
		}
		return v, nil

	case tea.KeyMsg:
		v.flash = ""
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.days)-1 {
				v.cursor++
			}
		case "n", "right":
			nav.Next()
		case "p", "left":
			nav.Previous()
		case "e", "enter":
			if v.cursor < len(v.days) {
				return v, editMealCmd(v.state, v.days[v.cursor], nav.Current())
			}
		case "w":
			return v, numWeeksCmd(v.state)
		case "c":
			if c := v.state.App.Console; c != nil {
				c.Clear()
			}
		}
	}
	return v, nil
}

func (v *weekView) View() string {
	nav := v.state.App.Navigator
	week := nav.Current()
	meals := v.state.App.Plans.Meals(week)

	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(formatter.StyleHeader.Render(formatter.WeekTitle(week, nav.NumWeeks())))
	b.WriteString(formatter.Dim("  starting "))
	b.WriteString(formatter.StyleBlue.Render(nav.DisplayLabel(week)))
	b.WriteString("\n  ")
	b.WriteString(navHint("◂ prev", nav.IsPreviousEnabled()))
	b.WriteString("  ")
	b.WriteString(navHint("next ▸", nav.IsNextEnabled()))
	b.WriteString("\n")
	if v.flash != "" {
		b.WriteString("  " + formatter.Failure(v.flash) + "\n")
	}
	b.WriteString("\n")

	for i, h := range v.days {
		marker := "  "
		day := formatter.StyleFg.Render(fmt.Sprintf("%-10s", h.Day))
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
			day = formatter.Bold(fmt.Sprintf("%-10s", h.Day))
		}
		b.WriteString("  " + marker + day + "  " + formatter.MealText(meals, h.Day) + "\n")
	}

	if c := v.state.App.Console; c != nil {
		b.WriteString("\n")
		b.WriteString(v.renderConsoles(c))
	}

	return b.String()
}

// renderConsoles lays the message and error consoles side by side.
func (v *weekView) renderConsoles(c *ConsoleHandler) string {
	width := max(v.state.Width, 40) / 2
	msgs := formatter.RenderPanel("Messages", c.Messages(), width, consoleHeight)
	errs := formatter.RenderPanel("Errors", styleLines(c.Errors(), formatter.StyleRed), width, consoleHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, msgs, errs)
}

func navHint(label string, enabled bool) string {
	if enabled {
		return formatter.StyleGreen.Render(label)
	}
	return formatter.Dim(label)
}

func styleLines(lines []string, style lipgloss.Style) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = style.Render(l)
	}
	return out
}
