package reminder

import (
	"errors"
	"fmt"
)

// Layouts used for keys and times. The store matches them by pattern only,
// so "31/02/2025" is a valid key.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// Placeholder values a form shows before the user types anything.
const (
	DatePlaceholder = "DD/MM/YYYY"
	TimePlaceholder = "HH:MM"
)

// Reminder is a date-keyed record of time and message text.
type Reminder struct {
	Date    string `json:"date" validate:"required,ddmmyyyy"`
	Time    string `json:"time" validate:"required,hhmm"`
	Message string `json:"message" validate:"required"`
}

// Entry is the persisted value stored under a date key.
type Entry struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// ErrNotFound is returned by Delete when the key is absent.
var ErrNotFound = errors.New("reminder not found")

// ValidationError reports a field that failed its format check.
// The store is left unchanged when it is returned.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case "date":
		return fmt.Sprintf("invalid date %q: use format %s", e.Value, DatePlaceholder)
	case "time":
		return fmt.Sprintf("invalid time %q: use format %s (00:00-23:59 or 24:00)", e.Value, TimePlaceholder)
	case "message":
		return "message is required"
	default:
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
}

// StorageError wraps a failure to read, parse or write the reminders file.
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("reminders file %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
