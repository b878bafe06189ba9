package dispatcher

// ObjectType discriminates the kinds of dispatcher objects.
type ObjectType int

const (
	EventObject ObjectType = iota
	MutexObject
	SemaphoreObject
	TimerObject
	ThreadObject
	QueueObject
)

func (t ObjectType) String() string {
	switch t {
	case EventObject:
		return "event"
	case MutexObject:
		return "mutex"
	case SemaphoreObject:
		return "semaphore"
	case TimerObject:
		return "timer"
	case ThreadObject:
		return "thread"
	case QueueObject:
		return "queue"
	default:
		return "unknown"
	}
}

// Header is the common part of all dispatcher objects.
// The meaning of the signal state depends on the object type:
// a flag for events, timers and threads, 1 for an unowned mutex
// and the available count for semaphores and queues.
// All fields are guarded by the dispatcher lock of the kernel.
type Header struct {
	kernel      *kernel
	name        string
	objectType  ObjectType
	signalState int
	waitList    waitList
}

func (h *Header) init(k *kernel, typ ObjectType, state int, name string) {
	h.kernel = k
	h.objectType = typ
	h.signalState = state
	h.name = name
}

func (h *Header) dispatcherHeader() *Header {
	return h
}

func (h *Header) Name() string {
	return h.name
}

func (h *Header) Type() ObjectType {
	return h.objectType
}

func (h *Header) Kernel() Kernel {
	return h.kernel
}

// SignalState returns the current signal state.
// It must not be called inside Kernel.Synchronized, use Dispatch.SignalState there.
func (h *Header) SignalState() int {
	d := h.kernel.acquire()
	defer d.release()
	return h.signalState
}

// HasWaiters reports whether wait blocks are registered at the object.
// It must not be called inside Kernel.Synchronized, use Dispatch.HasWaiters there.
func (h *Header) HasWaiters() bool {
	d := h.kernel.acquire()
	defer d.release()
	return !h.waitList.empty()
}

func (h *Header) hasWaiters() bool {
	return !h.waitList.empty()
}
