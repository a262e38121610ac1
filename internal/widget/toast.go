package widget

import (
	"errors"
	"sync"
	"time"
)

// DefaultToastDuration is how long a notification stays up on its own.
const DefaultToastDuration = 3000 * time.Millisecond

var ErrEmptyMessage = errors.New("notification message is empty")

// NotificationState is a point-in-time copy of a Notification.
type NotificationState struct {
	Visible       bool
	Message       string
	AutoDismissAt time.Time
}

// Notification is a toast that hides itself a fixed time after the most
// recent Show. It is safe for concurrent use; the dismissal runs on the
// clock's timer goroutine.
type Notification struct {
	mu       sync.Mutex
	clock    Clock
	duration time.Duration

	visible   bool
	message   string
	dismissAt time.Time
	timer     Timer
	// gen is bumped by every Show and Close. A dismissal only applies
	// to the generation that scheduled it.
	gen uint64
}

// NewNotification returns a hidden toast. A nil clock means SystemClock
// and a non-positive duration means DefaultToastDuration.
func NewNotification(clock Clock, d time.Duration) *Notification {
	if clock == nil {
		clock = SystemClock
	}
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &Notification{clock: clock, duration: d}
}

// Show displays msg and restarts the auto-dismiss countdown.
func (n *Notification) Show(msg string) error {
	if msg == "" {
		return ErrEmptyMessage
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimerLocked()
	n.gen++
	gen := n.gen
	n.visible = true
	n.message = msg
	n.dismissAt = n.clock.Now().Add(n.duration)
	n.timer = n.clock.AfterFunc(n.duration, func() { n.expire(gen) })
	return nil
}

// Close hides the toast now and drops the pending dismissal.
func (n *Notification) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimerLocked()
	n.gen++
	n.visible = false
	n.dismissAt = time.Time{}
}

func (n *Notification) Snapshot() NotificationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NotificationState{
		Visible:       n.visible,
		Message:       n.message,
		AutoDismissAt: n.dismissAt,
	}
}

func (n *Notification) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen {
		return
	}
	n.visible = false
	n.timer = nil
	n.dismissAt = time.Time{}
}

func (n *Notification) stopTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
