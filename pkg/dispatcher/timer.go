package dispatcher

import (
	"time"
)

// TimerType selects the reset behaviour of a Timer.
type TimerType int

const (
	// NotificationTimer stays signaled after expiration and releases all waiters.
	NotificationTimer TimerType = iota
	// SynchronizationTimer is reset by the single waiter it releases.
	SynchronizationTimer
)

func (t TimerType) String() string {
	if t == SynchronizationTimer {
		return "synchronization"
	}
	return "notification"
}

// DeferredRoutine is called after a timer expired, outside of the
// dispatcher lock.
type DeferredRoutine func(*timer)

// Timer is signaled when its due time has elapsed. A periodic timer is
// re-armed on every expiration.
type Timer = *timer

type timer struct {
	Header
	kind TimerType

	due    time.Time
	period time.Duration
	dpc    DeferredRoutine

	clock      *time.Timer
	generation uint64
	inserted   bool
}

func (k *kernel) NewTimer(kind TimerType, names ...string) Timer {
	return k.newTimer(kind, names...)
}

func (k *kernel) newTimer(kind TimerType, names ...string) *timer {
	tm := &timer{kind: kind}
	tm.init(k, TimerObject, 0, ElementName("timer", names...))
	return tm
}

func (tm *timer) Kind() TimerType {
	return tm.kind
}

// Set arms the timer to expire after due and then every period, if
// period is positive. The timer is reset to not signaled. The optional
// deferred routine is called after every expiration.
// It reports whether the timer had already been armed.
func (tm *timer) Set(due, period time.Duration, dpc DeferredRoutine) bool {
	d := tm.kernel.acquire()
	defer d.release()
	return d.setTimer(tm, due, period, dpc)
}

// Cancel disarms the timer. It reports whether it had been armed.
// The signal state is not changed.
func (tm *timer) Cancel() bool {
	d := tm.kernel.acquire()
	defer d.release()
	return d.cancelTimer(tm)
}

func (tm *timer) IsSet() bool {
	d := tm.kernel.acquire()
	defer d.release()
	return tm.inserted
}

func (tm *timer) DueTime() time.Time {
	d := tm.kernel.acquire()
	defer d.release()
	return tm.due
}

func (tm *timer) Period() time.Duration {
	d := tm.kernel.acquire()
	defer d.release()
	return tm.period
}

func (d *dispatch) setTimer(tm *timer, due, period time.Duration, dpc DeferredRoutine) bool {
	armed := d.cancelTimer(tm)
	tm.signalState = 0
	tm.period = period
	tm.dpc = dpc
	d.armTimer(tm, due)
	return armed
}

func (d *dispatch) armTimer(tm *timer, due time.Duration) {
	if due < 0 {
		due = 0
	}
	tm.generation++
	gen := tm.generation
	tm.inserted = true
	tm.due = time.Now().Add(due)
	d.k.activeTimers++

	k := d.k
	tm.clock = time.AfterFunc(due, func() { k.expireTimer(tm, gen) })
}

func (d *dispatch) cancelTimer(tm *timer) bool {
	if !tm.inserted {
		return false
	}
	tm.inserted = false
	// an expiration already in flight is ignored by its outdated generation
	tm.generation++
	tm.clock.Stop()
	d.k.activeTimers--
	return true
}

func (k *kernel) expireTimer(tm *timer, gen uint64) {
	d := k.acquire()
	if !tm.inserted || tm.generation != gen {
		d.release()
		return
	}
	tm.inserted = false
	k.activeTimers--
	tm.signalState = 1
	d.waitTest(tm, 0)
	if tm.period > 0 {
		d.armTimer(tm, tm.period)
	}
	dpc := tm.dpc
	d.release()

	if dpc != nil {
		dpc(tm)
	}
}
