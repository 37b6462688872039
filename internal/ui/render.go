package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/notexe/reminder-notifier/internal/reminder"
)

// ReminderMarkdown returns the markdown document shown for a single reminder.
func ReminderMarkdown(r reminder.Reminder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", r.Date)
	fmt.Fprintf(&sb, "**Time:** %s\n\n", r.Time)
	sb.WriteString(r.Message)
	sb.WriteString("\n")
	return sb.String()
}

// RenderReminder renders r for the terminal. Plain markdown is returned when
// colour is off or rendering fails.
func (f *Formatter) RenderReminder(r reminder.Reminder) string {
	md := ReminderMarkdown(r)
	if !f.colored {
		return strings.TrimSpace(md)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return strings.TrimSpace(md)
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return strings.TrimSpace(md)
	}

	return strings.TrimSpace(rendered)
}
