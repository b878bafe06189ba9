package dispatcher

// EventType selects the reset behaviour of an Event.
type EventType int

const (
	// NotificationEvent stays signaled until it is reset and
	// releases all waiters.
	NotificationEvent EventType = iota
	// SynchronizationEvent is reset by the single waiter it releases.
	SynchronizationEvent
)

func (t EventType) String() string {
	if t == SynchronizationEvent {
		return "synchronization"
	}
	return "notification"
}

type Event = *event

type event struct {
	Header
	kind EventType
}

func (k *kernel) NewEvent(kind EventType, signaled bool, names ...string) Event {
	e := &event{kind: kind}
	state := 0
	if signaled {
		state = 1
	}
	e.init(k, EventObject, state, ElementName("event", names...))
	return e
}

func (e *event) Kind() EventType {
	return e.kind
}

// Set signals the event, boosting released threads by boost.
// It returns the previous signal state.
func (e *event) Set(boost int) int {
	d := e.kernel.acquire()
	defer d.release()

	prev := e.signalState
	d.signalObject(e, boost)
	return prev
}

// Reset sets the event to not signaled and returns the previous signal state.
func (e *event) Reset() int {
	d := e.kernel.acquire()
	defer d.release()

	prev := e.signalState
	e.signalState = 0
	return prev
}
