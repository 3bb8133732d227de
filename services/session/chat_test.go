package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"lexmap/models"
)

func TestChatReplyArrivesWithinThreeSeconds(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	if _, err := f.manager.Request(ctx, "adv-online", models.ModeChat); err != nil {
		t.Fatalf("request: %v", err)
	}
	view, err := f.manager.SendMessage(ctx, "I need help with a tenancy dispute.")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if view.State != models.SessionActive {
		t.Fatalf("first message must activate the session, state=%s", view.State)
	}
	if len(view.Messages) != 1 || view.Messages[0].Sender != models.SenderUser {
		t.Fatalf("unexpected messages %+v", view.Messages)
	}

	f.clock.Advance(3 * time.Second)

	snap, ok := f.manager.Snapshot()
	if !ok {
		t.Fatalf("session vanished")
	}
	if len(snap.Messages) != 2 {
		t.Fatalf("want reply within 3s, got %d messages", len(snap.Messages))
	}
	if snap.Messages[1].Sender != models.SenderCounterpart {
		t.Fatalf("reply sender %s", snap.Messages[1].Sender)
	}
	if snap.Messages[1].Text == "" {
		t.Fatalf("empty reply text")
	}
	if snap.CounterpartTyping {
		t.Fatalf("typing indicator must clear once the reply lands")
	}
}

func TestTypingIndicatorPrecedesReply(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	f.manager.Request(ctx, "adv-online", models.ModeChat)
	f.manager.SendMessage(ctx, "Hello")

	// The typing delay is within [1s, 2s); the reply lands a fixed second
	// later. Just shy of 2s the indicator is on and the reply is pending.
	f.clock.Advance(1999 * time.Millisecond)

	snap, _ := f.manager.Snapshot()
	if !snap.CounterpartTyping {
		t.Fatalf("typing indicator must be on before the reply")
	}
	if len(snap.Messages) != 1 {
		t.Fatalf("reply must not land before the compose delay, got %d messages", len(snap.Messages))
	}

	f.clock.Advance(1001 * time.Millisecond)
	snap, _ = f.manager.Snapshot()
	if len(snap.Messages) != 2 {
		t.Fatalf("want reply after compose delay, got %d messages", len(snap.Messages))
	}
}

func TestCloseBeforeReplySuppressesAppend(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	f.manager.Request(ctx, "adv-online", models.ModeChat)
	f.manager.SendMessage(ctx, "Hello")

	closed, err := f.manager.Close(ctx)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(closed.Messages) != 1 {
		t.Fatalf("closed snapshot: want 1 message, got %d", len(closed.Messages))
	}

	// The pending reply timer fires into the void.
	f.clock.Advance(5 * time.Second)

	if _, ok := f.manager.Snapshot(); ok {
		t.Fatalf("no session must reappear after close")
	}

	// A fresh chat with the same entity starts empty; nothing leaked across.
	fresh, err := f.manager.Request(ctx, "adv-online", models.ModeChat)
	if err != nil {
		t.Fatalf("fresh request: %v", err)
	}
	if len(fresh.Messages) != 0 {
		t.Fatalf("fresh session must start empty, got %d messages", len(fresh.Messages))
	}
}

func TestSendMessageValidation(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	if _, err := f.manager.SendMessage(ctx, "hi"); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("want ErrNoActiveSession, got %v", err)
	}

	f.manager.Request(ctx, "adv-online", models.ModeChat)
	var valErr *ValidationError
	if _, err := f.manager.SendMessage(ctx, "   "); !errors.As(err, &valErr) {
		t.Fatalf("blank text: want ValidationError, got %v", err)
	}

	f.manager.Request(ctx, "adv-online", models.ModeSchedule)
	var wrongMode *WrongModeError
	if _, err := f.manager.SendMessage(ctx, "hi"); !errors.As(err, &wrongMode) {
		t.Fatalf("schedule session: want WrongModeError, got %v", err)
	}
}

func TestMessageSentEventPublished(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	var events []models.SessionEvent
	f.manager.Subscribe(func(ev models.SessionEvent) { events = append(events, ev) })

	f.manager.Request(ctx, "adv-online", models.ModeChat)
	view, _ := f.manager.SendMessage(ctx, "Hello")

	if len(events) != 1 || events[0].Type != models.EventMessageSent {
		t.Fatalf("want one message_sent event, got %+v", events)
	}
	if events[0].SessionID != view.ID || events[0].EntityID != "adv-online" {
		t.Fatalf("event mismatch %+v", events[0])
	}
}
