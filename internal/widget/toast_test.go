package widget

import (
	"errors"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNotificationAutoDismiss(t *testing.T) {
	clock := NewManualClock(epoch)
	n := NewNotification(clock, 0)

	if err := n.Show("hello"); err != nil {
		t.Fatalf("Show: %v", err)
	}
	st := n.Snapshot()
	if !st.Visible || st.Message != "hello" {
		t.Fatalf("expected visible hello, got %+v", st)
	}
	if want := epoch.Add(DefaultToastDuration); !st.AutoDismissAt.Equal(want) {
		t.Errorf("expected dismiss at %v, got %v", want, st.AutoDismissAt)
	}

	clock.Advance(2999 * time.Millisecond)
	if !n.Snapshot().Visible {
		t.Fatal("dismissed before 3000ms")
	}
	clock.Advance(time.Millisecond)
	if n.Snapshot().Visible {
		t.Fatal("still visible at 3000ms")
	}
}

func TestNotificationShowReplacesTimer(t *testing.T) {
	clock := NewManualClock(epoch)
	n := NewNotification(clock, 3000*time.Millisecond)

	_ = n.Show("a")
	clock.Advance(1000 * time.Millisecond)
	_ = n.Show("b")

	// 3000ms after the first Show.
	clock.Advance(2000 * time.Millisecond)
	st := n.Snapshot()
	if !st.Visible {
		t.Fatal("stale timer from the first Show dismissed the second notification")
	}
	if st.Message != "b" {
		t.Errorf("expected message b, got %q", st.Message)
	}

	// 3000ms after the second Show.
	clock.Advance(1000 * time.Millisecond)
	if n.Snapshot().Visible {
		t.Fatal("expected dismissal 3000ms after the second Show")
	}
	if clock.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", clock.Pending())
	}
}

// staleClock never honours Stop, like a timer whose callback has already
// been dispatched when Stop is called.
type staleClock struct {
	*ManualClock
}

type unstoppable struct{}

func (unstoppable) Stop() bool { return false }

func (c staleClock) AfterFunc(d time.Duration, f func()) Timer {
	c.ManualClock.AfterFunc(d, f)
	return unstoppable{}
}

func TestNotificationIgnoresStaleDismissal(t *testing.T) {
	clock := staleClock{NewManualClock(epoch)}
	n := NewNotification(clock, 3000*time.Millisecond)

	_ = n.Show("a")
	clock.Advance(500 * time.Millisecond)
	_ = n.Show("b")

	clock.Advance(2500 * time.Millisecond)
	if !n.Snapshot().Visible {
		t.Fatal("stale callback hid the newer notification")
	}
	clock.Advance(500 * time.Millisecond)
	if n.Snapshot().Visible {
		t.Fatal("expected the current callback to hide the notification")
	}
}

func TestNotificationCloseCancelsTimer(t *testing.T) {
	clock := NewManualClock(epoch)
	n := NewNotification(clock, 0)

	_ = n.Show("a")
	n.Close()
	if n.Snapshot().Visible {
		t.Fatal("expected hidden after Close")
	}
	if clock.Pending() != 0 {
		t.Errorf("expected Close to stop the timer, %d pending", clock.Pending())
	}

	_ = n.Show("b")
	clock.Advance(DefaultToastDuration)
	if n.Snapshot().Visible {
		t.Fatal("expected auto dismissal after re-show")
	}
}

func TestNotificationRejectsEmptyMessage(t *testing.T) {
	n := NewNotification(NewManualClock(epoch), 0)
	if err := n.Show(""); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if n.Snapshot().Visible {
		t.Error("empty Show made the toast visible")
	}
}

func TestNotificationSystemClock(t *testing.T) {
	n := NewNotification(nil, 20*time.Millisecond)
	_ = n.Show("real timer")

	deadline := time.Now().Add(2 * time.Second)
	for n.Snapshot().Visible {
		if time.Now().After(deadline) {
			t.Fatal("notification never dismissed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
