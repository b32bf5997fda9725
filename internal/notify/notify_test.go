package notify

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string // "to|subject"
	fail int      // fail the first N sends
}

func (f *fakeSender) Send(to, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail > 0 {
		f.fail--
		return errTestSend
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var errTestSend = &sendError{}

type sendError struct{}

func (*sendError) Error() string { return "smtp unavailable" }

func testEvent(kind EventKind) Event {
	return Event{
		Kind:        kind,
		To:          "ana@test.com",
		VisitorName: "Ana Perez",
		VisitedName: "Dr. Lopez",
		Area:        "library",
		Date:        "2026-03-01",
		Time:        "10:00",
		OldDate:     "2026-02-28",
		OldTime:     "09:00",
	}
}

// ── Render ──

func TestRender_Kinds(t *testing.T) {
	cases := []struct {
		kind        EventKind
		wantSubject string
		wantInBody  string
	}{
		{KindConfirmation, "Appointment confirmation", "Visit confirmed"},
		{KindRescheduled, "Appointment rescheduled", "2026-02-28 09:00"},
		{KindCancelled, "Appointment cancelled", "has been cancelled"},
	}

	for _, tc := range cases {
		subject, body, err := Render(testEvent(tc.kind))
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", tc.kind, err)
		}
		if subject != tc.wantSubject {
			t.Errorf("expected subject %q, got %q", tc.wantSubject, subject)
		}
		if !strings.Contains(body, tc.wantInBody) {
			t.Errorf("body for %s should contain %q", tc.kind, tc.wantInBody)
		}
		if !strings.Contains(body, "Ana Perez") {
			t.Errorf("body for %s should greet the visitor", tc.kind)
		}
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, _, err := Render(Event{Kind: "party"}); err == nil {
		t.Error("an unknown kind should fail to render")
	}
}

func TestRender_ConfirmationPlateOptional(t *testing.T) {
	evt := testEvent(KindConfirmation)
	_, body, err := Render(evt)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body, "Vehicle plate") {
		t.Error("the plate row should be omitted when no plate was given")
	}

	evt.Plate = "ABC-123"
	_, body, err = Render(evt)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "ABC-123") {
		t.Error("the plate row should appear when a plate was given")
	}
}

// ── Dispatcher ──

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_Delivers(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 8, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(testEvent(KindConfirmation))

	waitFor(t, func() bool { return sender.sentCount() == 1 }, "the event should be delivered")
	if sender.sent[0] != "ana@test.com|Appointment confirmation" {
		t.Errorf("unexpected delivery: %s", sender.sent[0])
	}
}

func TestDispatcher_SkipsEmptyRecipient(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 8, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	evt := testEvent(KindConfirmation)
	evt.To = ""
	d.Enqueue(evt)
	d.Enqueue(testEvent(KindCancelled))

	waitFor(t, func() bool { return sender.sentCount() == 1 }, "only the addressed event should go out")
}

func TestDispatcher_RetriesOnce(t *testing.T) {
	sender := &fakeSender{fail: 1}
	d := NewDispatcher(sender, 8, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(testEvent(KindConfirmation))

	// The retry waits a couple of seconds before the second attempt.
	deadline := time.After(5 * time.Second)
	for sender.sentCount() != 1 {
		select {
		case <-deadline:
			t.Fatal("a single failure should be retried")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 1, zap.NewNop())
	// Not started: the queue fills and Enqueue must still return.

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Enqueue(testEvent(KindConfirmation))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue must never block the caller")
	}
}
