package notify

import "fmt"

// Subject is the fixed subject line of every notification.
const Subject = "Reminder"

// Message is a single outbound notification.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Compose builds the notification for one reminder.
func Compose(from, to, tm, text string) Message {
	return Message{
		From:    from,
		To:      to,
		Subject: Subject,
		Body:    fmt.Sprintf("Time of reminder:\n%s\nMessage:\n%s\n", tm, text),
	}
}
