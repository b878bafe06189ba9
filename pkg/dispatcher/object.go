package dispatcher

// Object is a dispatcher object threads can wait for.
// The set of implementations is closed: Event, Mutex, Semaphore,
// Timer, Thread and Queue.
type Object interface {
	Name() string
	Type() ObjectType
	Kernel() Kernel
	SignalState() int
	HasWaiters() bool

	dispatcherHeader() *Header
}

var (
	_ Object = (Event)(nil)
	_ Object = (Mutex)(nil)
	_ Object = (Semaphore)(nil)
	_ Object = (Timer)(nil)
	_ Object = (Thread)(nil)
	_ Object = (Queue)(nil)
)

// signaled reports whether o could satisfy a wait of thread t.
// Nothing is consumed.
func signaled(o Object, t *thread) bool {
	switch obj := o.(type) {
	case *mutex:
		return obj.signalState > 0 || obj.owner == t
	default:
		return o.dispatcherHeader().signalState > 0
	}
}

// consume applies the effect of a satisfied wait of thread t to o,
// which has the given index in the object list of the wait.
// It reports whether o has been an abandoned mutex.
func consume(o Object, t *thread, index int) bool {
	switch obj := o.(type) {
	case *event:
		if obj.kind == SynchronizationEvent {
			obj.signalState = 0
		}
	case *mutex:
		return obj.acquire(t)
	case *semaphore:
		if obj.signalState > 0 {
			obj.signalState--
		}
	case *timer:
		if obj.kind == SynchronizationTimer {
			obj.signalState = 0
		}
	case *queue:
		obj.dequeue(t, index)
	}
	return false
}

// consumable reports whether satisfying a wait on o takes away
// a unit a signaler can hand out to exactly one waiter.
func consumable(o Object) bool {
	switch obj := o.(type) {
	case *event:
		return obj.kind == SynchronizationEvent
	case *timer:
		return obj.kind == SynchronizationTimer
	case *semaphore, *queue:
		return true
	default:
		return false
	}
}
