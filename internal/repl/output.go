package repl

import (
	"fmt"

	"github.com/notexe/reminder-notifier/internal/reminder"
)

func (r *REPL) displayError(err error) {
	fmt.Fprintln(r.out, r.formatter.FormatError(err))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayWelcome() {
	fmt.Fprint(r.out, r.formatter.FormatWelcome(r.store.Path(), r.store.Len(), r.notifications))
}

func (r *REPL) displayHelp() {
	fmt.Fprint(r.out, r.formatter.FormatHelp())
}

func (r *REPL) displayList() {
	keys := r.store.ListKeys()
	reminders := make([]reminder.Reminder, 0, len(keys))
	for _, k := range keys {
		if rem, ok := r.store.Get(k); ok {
			reminders = append(reminders, rem)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.formatter.FormatReminderList(reminders))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayInfo(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatInfo(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displaySystem(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSystem(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displaySuccess(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSuccess(msg))
	fmt.Fprintln(r.out)
}
