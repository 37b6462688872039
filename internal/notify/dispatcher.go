package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/notexe/reminder-notifier/internal/config"
	"github.com/notexe/reminder-notifier/internal/reminder"
)

// Source is the read side of the reminder store.
type Source interface {
	ListKeys() []string
	Get(date string) (reminder.Reminder, bool)
}

// SendError is logged when a single notification cannot be delivered.
type SendError struct {
	Date string
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("notification for %s: %v", e.Date, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Dispatcher sends one notification per reminder due today.
type Dispatcher struct {
	sender    Sender
	from      string
	recipient string
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher that sends from the configured account
// to the configured recipient.
func NewDispatcher(sender Sender, cfg config.SMTPConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		sender:    sender,
		from:      cfg.Username,
		recipient: cfg.Recipient,
		logger:    logger.Named("dispatch"),
	}
}

// Today formats t the way reminder keys are written.
func Today(t time.Time) string {
	return t.Format(reminder.DateLayout)
}

// Dispatch starts a send for every key equal to today's DD/MM/YYYY string and
// returns how many were started. Sends run on their own goroutines and are
// not awaited; failures are logged and go nowhere else. Calling Dispatch
// twice sends twice.
func (d *Dispatcher) Dispatch(ctx context.Context, src Source, today time.Time) int {
	key := Today(today)
	// Sends are not cancelled with ctx; the SMTP client has its own timeout.
	sendCtx := context.WithoutCancel(ctx)

	started := 0
	for _, date := range src.ListKeys() {
		if date != key {
			continue
		}
		r, ok := src.Get(date)
		if !ok {
			continue
		}

		msg := Compose(d.from, d.recipient, r.Time, r.Message)
		d.logger.Info("reminder due today", zap.String("date", date), zap.String("time", r.Time))

		go d.send(sendCtx, date, msg)
		started++
	}

	if started == 0 {
		d.logger.Debug("no reminders due", zap.String("today", key))
	}
	return started
}

func (d *Dispatcher) send(ctx context.Context, date string, msg Message) {
	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("failed to send reminder", zap.Error(&SendError{Date: date, Err: err}))
		return
	}
	d.logger.Info("reminder sent", zap.String("date", date), zap.String("to", msg.To))
}
