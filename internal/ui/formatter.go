package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/notexe/reminder-notifier/internal/reminder"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	DateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	TimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Padding(0, 1)
)

// previewWidth bounds the message preview in list output.
const previewWidth = 40

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return SuccessStyle.Render("✓") + " " + msg
	}
	return "✓ " + msg
}

// FormatReminderList renders one line per reminder in the order given.
func (f *Formatter) FormatReminderList(reminders []reminder.Reminder) string {
	if len(reminders) == 0 {
		return f.FormatInfo("No reminders yet. Add one with /add DD/MM/YYYY HH:MM message")
	}

	lines := make([]string, 0, len(reminders))
	for _, r := range reminders {
		preview := truncate(firstLine(r.Message), previewWidth)
		if f.colored {
			lines = append(lines, "  "+DateStyle.Render(r.Date)+"  "+TimeStyle.Render(r.Time)+"  "+preview)
		} else {
			lines = append(lines, fmt.Sprintf("  %s  %s  %s", r.Date, r.Time, preview))
		}
	}

	body := strings.Join(lines, "\n")
	title := fmt.Sprintf("Reminders (%d)", len(reminders))
	if f.colored {
		return DateStyle.Render(title) + "\n" + BoxStyle.Render(body)
	}
	return title + "\n" + body
}

func (f *Formatter) FormatWelcome(storePath string, count int, notifications bool) string {
	notif := "off (no SMTP username configured)"
	if notifications {
		notif = "on"
	}

	if f.colored {
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
		labelStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
		valueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))
		subtitleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		content := strings.Join([]string{
			titleStyle.Render("Notifier"),
			labelStyle.Render("File: ") + valueStyle.Render(storePath),
			labelStyle.Render("Reminders: ") + valueStyle.Render(fmt.Sprintf("%d", count)),
			labelStyle.Render("Notifications: ") + valueStyle.Render(notif),
			"",
			subtitleStyle.Render("Type /help for commands"),
		}, "\n")

		return "\n" + BoxStyle.Render(content) + "\n\n"
	}

	lines := []string{
		"",
		"Notifier",
		fmt.Sprintf("File: %s", storePath),
		fmt.Sprintf("Reminders: %d", count),
		fmt.Sprintf("Notifications: %s", notif),
		"Type /help for commands",
		"",
	}

	return strings.Join(lines, "\n") + "\n"
}

func (f *Formatter) FormatHelp() string {
	if f.colored {
		headerStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

		cmdStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

		dimStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		formatCmd := func(cmd, desc string) string {
			return "  " + cmdStyle.Render(cmd) + " " + descStyle.Render(desc)
		}

		lines := []string{
			"",
			headerStyle.Render("Commands"),
			"",
			formatCmd("/add <DD/MM/YYYY> <HH:MM> <message>", "Add or replace a reminder"),
			formatCmd("/del <DD/MM/YYYY>", "Delete a reminder"),
			formatCmd("/list", "List reminders"),
			formatCmd("/show <DD/MM/YYYY>", "Show a reminder"),
			formatCmd("/help", "Show this help"),
			formatCmd("/quit", "Exit"),
			"",
			headerStyle.Render("Tips"),
			dimStyle.Render("  One reminder per date; adding to a used date replaces it"),
			dimStyle.Render("  Reminders dated today are e-mailed at startup"),
			"",
		}

		return strings.Join(lines, "\n")
	}

	lines := []string{
		"",
		"Commands:",
		"  /add <DD/MM/YYYY> <HH:MM> <message>  - Add or replace a reminder",
		"  /del <DD/MM/YYYY>                    - Delete a reminder",
		"  /list                                - List reminders",
		"  /show <DD/MM/YYYY>                   - Show a reminder",
		"  /help                                - Show help",
		"  /quit                                - Exit",
		"",
	}

	return strings.Join(lines, "\n")
}

// FormatPrompt returns a styled input prompt
func (f *Formatter) FormatPrompt() string {
	if f.colored {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
		arrowStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)
		return promptStyle.Render("notifier") + arrowStyle.Render(" > ")
	}
	return "notifier > "
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
