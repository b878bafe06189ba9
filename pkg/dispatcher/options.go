package dispatcher

import (
	"github.com/go-logr/logr"
)

// Option configures a Kernel.
type Option func(*kernel)

// WithLogger sets the logger used to trace thread lifecycle (V(1))
// and waits and wakeups (V(2)).
func WithLogger(log logr.Logger) Option {
	return func(k *kernel) {
		k.log = log
	}
}

// WithWaitBlockCapacity sets the number of wait blocks available to
// a blocking wait. It is limited to MaximumWaitObjects.
func WithWaitBlockCapacity(n int) Option {
	return func(k *kernel) {
		switch {
		case n < 1:
			n = 1
		case n > MaximumWaitObjects:
			n = MaximumWaitObjects
		}
		k.capacity = n
	}
}

// ThreadOption configures a Thread.
type ThreadOption func(*thread)

// WithPriority sets the base priority. Non-realtime threads are limited
// to 0..MaximumDynamicPriority, realtime threads to MaximumDynamicPriority+1..MaximumPriority.
func WithPriority(p int) ThreadOption {
	return func(t *thread) {
		t.basePriority = p
	}
}

// WithRealtime marks the thread as realtime. Realtime threads never
// get priority boosts.
func WithRealtime() ThreadOption {
	return func(t *thread) {
		t.realtime = true
	}
}

// WithName sets the name parts of the thread.
func WithName(names ...string) ThreadOption {
	return func(t *thread) {
		t.name = ElementName("thread", names...)
	}
}
