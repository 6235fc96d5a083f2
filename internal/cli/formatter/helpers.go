package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RenderPanel is a compact bordered panel used for the TUI consoles. Lines
// beyond height are dropped from the top so the newest stay visible.
func RenderPanel(title string, lines []string, width, height int) string {
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	body := strings.Join(lines, "\n")
	if body == "" {
		body = Dim("(empty)")
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(StyleHeader.Render(title) + "\n" + body)
}

// HumanTimestamp renders t in local time down to the second.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04:05")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
