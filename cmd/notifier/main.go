// Command notifier keeps date-keyed reminders in a JSON file and, at startup,
// e-mails every reminder dated today.
//
// Usage:
//
//	notifier                     # dispatch today's reminders, then open the prompt
//	notifier -list               # print all reminders and exit
//	notifier -file work.json     # use another reminders file
//
// Environment:
//
//	NOTIFIER_SMTP_USERNAME   sender account (empty disables e-mail)
//	NOTIFIER_SMTP_PASSWORD   sender secret
//	NOTIFIER_SMTP_RECIPIENT  address that receives every reminder
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/notexe/reminder-notifier/internal/config"
	"github.com/notexe/reminder-notifier/internal/logging"
	"github.com/notexe/reminder-notifier/internal/notify"
	"github.com/notexe/reminder-notifier/internal/reminder"
	"github.com/notexe/reminder-notifier/internal/repl"
	"github.com/notexe/reminder-notifier/internal/ui"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	storePath := flag.String("file", "", "Reminders file (overrides config)")
	listOnly := flag.Bool("list", false, "Print reminders and exit without sending")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := reminder.Open(cfg.Store.Path, logger)
	if err != nil {
		var sErr *reminder.StorageError
		if errors.As(err, &sErr) {
			fmt.Fprintf(os.Stderr, "Cannot start: %v\n", sErr)
			fmt.Fprintf(os.Stderr, "Fix or move %s and try again.\n", sErr.Path)
		} else {
			fmt.Fprintf(os.Stderr, "Cannot start: %v\n", err)
		}
		os.Exit(1)
	}

	formatter := ui.NewFormatter(cfg.UI.ColoredOutput)

	if *listOnly {
		printList(store, formatter)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.SMTP.Enabled() {
		dispatcher := notify.NewDispatcher(notify.NewSMTPSender(cfg.SMTP), cfg.SMTP, logger)
		dispatcher.Dispatch(ctx, store, time.Now())
	} else {
		logger.Info("notifications disabled: no SMTP username configured")
	}

	opts := repl.Options{
		Notifications: cfg.SMTP.Enabled(),
		Logger:        logger,
	}
	if cfg.Store.Watch {
		watcher, err := reminder.NewWatcher(cfg.Store.Path, logger)
		if err != nil {
			logger.Warn("not watching reminders file", zap.Error(err))
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	replInstance, err := repl.NewREPL(store, formatter, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		replInstance.Stop()
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printList(store *reminder.Store, formatter *ui.Formatter) {
	keys := store.ListKeys()
	reminders := make([]reminder.Reminder, 0, len(keys))
	for _, k := range keys {
		if r, ok := store.Get(k); ok {
			reminders = append(reminders, r)
		}
	}
	fmt.Println(formatter.FormatReminderList(reminders))
}
