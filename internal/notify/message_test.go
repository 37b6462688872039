package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	msg := Compose("me@example.com", "you@example.com", "24:00", "Take out\nthe bins")

	assert.Equal(t, "me@example.com", msg.From)
	assert.Equal(t, "you@example.com", msg.To)
	assert.Equal(t, "Reminder", msg.Subject)
	assert.Equal(t, "Time of reminder:\n24:00\nMessage:\nTake out\nthe bins\n", msg.Body)
}
