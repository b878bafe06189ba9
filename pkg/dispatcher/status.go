package dispatcher

import (
	"fmt"
	"time"
)

// Infinite requests a wait without timeout.
const Infinite time.Duration = -1

const (
	// MaximumWaitObjects is the upper bound of objects a single wait may name.
	MaximumWaitObjects = 64
	// DefaultWaitBlockCapacity is the default number of wait blocks a thread
	// can register for a blocking wait. Waits naming more objects are only
	// served by the fast path.
	DefaultWaitBlockCapacity = 16

	// MaximumDynamicPriority caps priority boosts of non-realtime threads.
	MaximumDynamicPriority = 15
	// MaximumPriority is the highest (realtime) priority.
	MaximumPriority = 31
	// DefaultPriority is the base priority of a thread created without options.
	DefaultPriority = 8

	// SignalIncrement is the priority boost used by object release operations
	// which don't take an explicit boost.
	SignalIncrement = 1
)

// WaitStatus is the result of a wait operation.
// Object0+i reports that the object with index i in the caller's
// list satisfied the wait, Abandoned0+i that it was an abandoned mutex.
type WaitStatus int

const (
	Object0    WaitStatus = 0x00
	Abandoned0 WaitStatus = 0x80
	Alerted    WaitStatus = 0x101
	Timeout    WaitStatus = 0x102
	Invalid    WaitStatus = -1
)

func objectStatus(index int, abandoned bool) WaitStatus {
	if abandoned {
		return Abandoned0 + WaitStatus(index)
	}
	return Object0 + WaitStatus(index)
}

// IsObject reports whether the wait was satisfied by an object.
func (s WaitStatus) IsObject() bool {
	return s >= Object0 && s < Object0+MaximumWaitObjects
}

// IsAbandoned reports whether the wait was satisfied by an abandoned mutex.
func (s WaitStatus) IsAbandoned() bool {
	return s >= Abandoned0 && s < Abandoned0+MaximumWaitObjects
}

// Index returns the object index of a satisfied wait, or -1.
func (s WaitStatus) Index() int {
	switch {
	case s.IsObject():
		return int(s - Object0)
	case s.IsAbandoned():
		return int(s - Abandoned0)
	default:
		return -1
	}
}

func (s WaitStatus) String() string {
	switch {
	case s.IsObject():
		return fmt.Sprintf("object%d", s.Index())
	case s.IsAbandoned():
		return fmt.Sprintf("abandoned%d", s.Index())
	case s == Alerted:
		return "alerted"
	case s == Timeout:
		return "timeout"
	case s == Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("status(%#x)", int(s))
	}
}
