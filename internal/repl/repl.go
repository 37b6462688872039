package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/notexe/reminder-notifier/internal/reminder"
	"github.com/notexe/reminder-notifier/internal/ui"
)

// REPL is the interactive front end. It is the only goroutine that touches
// the store.
type REPL struct {
	store     *reminder.Store
	changes   ChangeNotifier
	rl        *readline.Instance
	formatter *ui.Formatter
	out       io.Writer
	logger    *zap.Logger

	notifications bool
}

// ChangeNotifier signals that the reminders file changed on disk.
// *reminder.Watcher implements it.
type ChangeNotifier interface {
	Changes() <-chan struct{}
}

// Options carries the optional collaborators of a REPL.
type Options struct {
	// Watcher, when set, reports external edits between prompts.
	Watcher ChangeNotifier
	// Notifications is shown in the welcome banner.
	Notifications bool
	Logger        *zap.Logger
}

func NewREPL(store *reminder.Store, formatter *ui.Formatter, opts Options) (*REPL, error) {
	rl, err := setupReadline(formatter.FormatPrompt())
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	r := newREPL(store, formatter, rl.Stdout(), opts)
	r.rl = rl
	return r, nil
}

func newREPL(store *reminder.Store, formatter *ui.Formatter, out io.Writer, opts Options) *REPL {
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &REPL{
		store:         store,
		changes:       opts.Watcher,
		formatter:     formatter,
		out:           out,
		logger:        logger.Named("repl"),
		notifications: opts.Notifications,
	}
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.displayWelcome()

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		r.syncStore()

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if !isCommand {
			r.displayError(fmt.Errorf("unknown input %q (type /help for available commands)", input))
			continue
		}

		if err := r.handleCommand(command, args); err != nil {
			r.displayError(err)
		}

		if command == "/quit" || command == "/exit" || command == "/q" {
			return nil
		}
	}
}

func (r *REPL) Stop() {
	if r.rl != nil {
		r.rl.Close()
	}
}

// syncStore reloads the store if another writer changed the file. It runs
// before every command, with or without a watcher; a pending watcher signal
// is drained so it does not pile up.
func (r *REPL) syncStore() {
	if r.changes != nil {
		select {
		case <-r.changes.Changes():
			r.logger.Debug("reminders file change signalled")
		default:
		}
	}

	reloaded, err := r.store.ReloadIfChanged()
	if err != nil {
		r.logger.Error("reload failed", zap.Error(err))
		r.displayError(fmt.Errorf("reminders file changed but could not be reloaded: %w", err))
		return
	}
	if reloaded {
		r.displaySystem(fmt.Sprintf("Reminders file changed on disk, reloaded %d reminders.", r.store.Len()))
	}
}

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/add", "/a":
		return r.handleAdd(args)

	case "/del", "/delete", "/d":
		return r.handleDelete(args)

	case "/list", "/ls", "/l":
		r.displayList()
		return nil

	case "/show", "/s":
		return r.handleShow(args)

	case "/quit", "/exit", "/q":
		fmt.Fprintln(r.out, "\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) handleAdd(args string) error {
	date, rest := splitWord(args)
	tm, message := splitWord(rest)

	_, existed := r.store.Get(date)

	if err := r.store.Upsert(date, tm, message); err != nil {
		var vErr *reminder.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("incorrect input: %w", vErr)
		}
		return err
	}

	if existed {
		r.displaySuccess(fmt.Sprintf("Reminder for %s replaced.", date))
	} else {
		r.displaySuccess(fmt.Sprintf("Reminder for %s added.", date))
	}
	return nil
}

func (r *REPL) handleDelete(args string) error {
	date, _ := splitWord(args)
	if date == "" {
		return fmt.Errorf("usage: /del <DD/MM/YYYY>")
	}

	if err := r.store.Delete(date); err != nil {
		if errors.Is(err, reminder.ErrNotFound) {
			r.displayInfo(fmt.Sprintf("No reminder for %s.", date))
			return nil
		}
		return err
	}

	r.displaySuccess(fmt.Sprintf("Reminder for %s deleted.", date))
	return nil
}

func (r *REPL) handleShow(args string) error {
	date, _ := splitWord(args)
	if date == "" {
		return fmt.Errorf("usage: /show <DD/MM/YYYY>")
	}

	rem, ok := r.store.Get(date)
	if !ok {
		r.displayInfo(fmt.Sprintf("No reminder for %s.", date))
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.formatter.RenderReminder(rem))
	fmt.Fprintln(r.out)
	return nil
}
