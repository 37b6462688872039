package notify

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notexe/reminder-notifier/internal/config"
	"github.com/notexe/reminder-notifier/internal/reminder"
)

// fakeSender records messages and reports each one on sent.
type fakeSender struct {
	mu   sync.Mutex
	msgs []Message
	err  error
	sent chan Message
}

func newFakeSender(err error) *fakeSender {
	return &fakeSender{err: err, sent: make(chan Message, 16)}
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	f.msgs = append(f.msgs, msg)
	f.mu.Unlock()
	f.sent <- msg
	return f.err
}

func (f *fakeSender) wait(t *testing.T, n int) []Message {
	t.Helper()

	var got []Message
	for i := 0; i < n; i++ {
		select {
		case m := <-f.sent:
			got = append(got, m)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for send %d of %d", i+1, n)
		}
	}
	return got
}

func (f *fakeSender) assertNoMore(t *testing.T) {
	t.Helper()

	select {
	case m := <-f.sent:
		t.Fatalf("unexpected extra send: %+v", m)
	case <-time.After(100 * time.Millisecond):
	}
}

var testSMTP = config.SMTPConfig{
	Host:      "smtp.example.com",
	Port:      587,
	Username:  "sender@example.com",
	Password:  "secret",
	Recipient: "me@example.com",
	Timeout:   5,
}

func newTestStore(t *testing.T, dates ...string) *reminder.Store {
	t.Helper()

	s, err := reminder.Open(filepath.Join(t.TempDir(), "messages.json"), nil)
	require.NoError(t, err)
	for _, d := range dates {
		require.NoError(t, s.Upsert(d, "09:30", "message for "+d))
	}
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.ParseInLocation(reminder.DateLayout, s, time.Local)
	require.NoError(t, err)
	return d
}

func TestDispatch_SendsOnlyTodaysReminder(t *testing.T) {
	store := newTestStore(t, "01/01/2025", "15/06/2025")
	sender := newFakeSender(nil)
	d := NewDispatcher(sender, testSMTP, nil)

	n := d.Dispatch(context.Background(), store, day(t, "01/01/2025"))
	assert.Equal(t, 1, n)

	msgs := sender.wait(t, 1)
	sender.assertNoMore(t)

	assert.Equal(t, Message{
		From:    "sender@example.com",
		To:      "me@example.com",
		Subject: "Reminder",
		Body:    "Time of reminder:\n09:30\nMessage:\nmessage for 01/01/2025\n",
	}, msgs[0])
}

func TestDispatch_NoMatch(t *testing.T) {
	store := newTestStore(t, "01/01/2025", "15/06/2025")
	sender := newFakeSender(nil)
	d := NewDispatcher(sender, testSMTP, nil)

	n := d.Dispatch(context.Background(), store, day(t, "02/01/2025"))
	assert.Zero(t, n)
	sender.assertNoMore(t)
}

func TestDispatch_EmptyStore(t *testing.T) {
	sender := newFakeSender(nil)
	d := NewDispatcher(sender, testSMTP, nil)

	assert.Zero(t, d.Dispatch(context.Background(), newTestStore(t), day(t, "01/01/2025")))
}

func TestDispatch_TwiceSendsTwice(t *testing.T) {
	store := newTestStore(t, "01/01/2025")
	sender := newFakeSender(nil)
	d := NewDispatcher(sender, testSMTP, nil)

	d.Dispatch(context.Background(), store, day(t, "01/01/2025"))
	d.Dispatch(context.Background(), store, day(t, "01/01/2025"))

	sender.wait(t, 2)
}

func TestDispatch_FailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	store := newTestStore(t, "01/01/2025")
	sender := newFakeSender(errors.New("535 authentication failed"))
	d := NewDispatcher(sender, testSMTP, zap.New(core))

	n := d.Dispatch(context.Background(), store, day(t, "01/01/2025"))
	assert.Equal(t, 1, n)
	sender.wait(t, 1)

	require.Eventually(t, func() bool {
		return logs.FilterMessage("failed to send reminder").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	entry := logs.FilterMessage("failed to send reminder").All()[0]
	assert.Contains(t, entry.ContextMap()["error"], "notification for 01/01/2025")
	assert.Contains(t, entry.ContextMap()["error"], "authentication failed")

	// The store is untouched by a failed send.
	assert.Equal(t, []string{"01/01/2025"}, store.ListKeys())
}

func TestDispatch_SendSurvivesCallerCancel(t *testing.T) {
	store := newTestStore(t, "01/01/2025")

	var gotCtxErr error
	done := make(chan struct{})
	sender := senderFunc(func(ctx context.Context, _ Message) error {
		time.Sleep(20 * time.Millisecond)
		gotCtxErr = ctx.Err()
		close(done)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	NewDispatcher(sender, testSMTP, nil).Dispatch(ctx, store, day(t, "01/01/2025"))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send did not run")
	}
	assert.NoError(t, gotCtxErr)
}

type senderFunc func(ctx context.Context, msg Message) error

func (f senderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

func TestToday(t *testing.T) {
	assert.Equal(t, "05/03/2025", Today(time.Date(2025, time.March, 5, 23, 59, 0, 0, time.UTC)))
}

func TestSendError(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	err := &SendError{Date: "01/01/2025", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "notification for 01/01/2025: dial tcp: timeout", err.Error())
}
