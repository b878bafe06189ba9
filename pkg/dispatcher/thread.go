package dispatcher

import (
	"sync"
)

// ThreadState is the scheduling state of a thread.
type ThreadState int

const (
	Initialized ThreadState = iota
	Ready
	Running
	Waiting
	Terminated
)

func (s ThreadState) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Waiting:
		return "waiting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ThreadFunction is the body of a kernel thread. The Thread argument
// identifies the running thread for wait and signal operations. It MUST
// only be used by the Go routine executing the function to wait,
// other Go routines may use it as a dispatcher object or to alert it.
type ThreadFunction func(*thread)

// Thread is a kernel thread executed by a Go routine under control of
// the kernel's scheduler. A thread is itself a dispatcher object, which
// becomes signaled when its function returns.
type Thread = *thread

type thread struct {
	Header
	blocker  sync.Mutex
	function ThreadFunction

	// guarded by the scheduler lock
	state ThreadState

	// guarded by the dispatcher lock
	basePriority int
	priority     int
	realtime     bool
	started      bool

	waitStatus  WaitStatus
	waitType    WaitType
	waitCount   int
	waitBlocks  []WaitBlock
	waitActive  bool
	waitBlocked bool
	unwaited    bool
	alerted     bool

	blockArena []WaitBlock
	timer      *timer
	mutexes    []*mutex
	// entries removed from queues for this thread, by wait index
	queueEntries map[int]interface{}
}

// NewThread creates a new thread for the function f. It is started with Thread.Start.
func (k *kernel) NewThread(f ThreadFunction, opts ...ThreadOption) Thread {
	t := &thread{
		function:     f,
		basePriority: DefaultPriority,
	}
	t.init(k, ThreadObject, 0, ElementName("thread"))
	for _, o := range opts {
		o(t)
	}
	if t.realtime {
		t.basePriority = clamp(t.basePriority, MaximumDynamicPriority+1, MaximumPriority)
	} else {
		t.basePriority = clamp(t.basePriority, 0, MaximumDynamicPriority)
	}
	t.priority = t.basePriority
	t.blockArena = make([]WaitBlock, k.capacity+1)
	t.timer = k.newTimer(NotificationTimer, t.name, "timeout")
	return t
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Start hands the thread to the scheduler.
func (t *thread) Start() Thread {
	d := t.kernel.acquire()
	if t.started {
		d.release()
		panic("thread already started")
	}
	t.started = true
	t.kernel.log.V(1).Info("thread started", "thread", t.name, "priority", t.basePriority, "realtime", t.realtime)
	t.kernel.sched.start(t)
	d.release()
	return t
}

func (t *thread) run() {
	t.blocker.Lock()
	t.function(t)
	t.kernel.exitThread(t)
	t.kernel.sched.done(t)
}

func (t *thread) _block() {
	t.blocker.Lock()
}

func (t *thread) _unblock() {
	t.blocker.Unlock()
}

func (t *thread) State() ThreadState {
	return t.kernel.sched.stateOf(t)
}

func (t *thread) IsRealtime() bool {
	return t.realtime
}

func (t *thread) BasePriority() int {
	return t.basePriority
}

// Priority returns the current dynamic priority.
func (t *thread) Priority() int {
	d := t.kernel.acquire()
	defer d.release()
	return t.priority
}

// WaitCount returns the number of objects of the wait in progress, or 0.
func (t *thread) WaitCount() int {
	d := t.kernel.acquire()
	defer d.release()
	return t.waitCount
}

// OwnedMutexes returns the number of mutexes currently owned by the thread.
func (t *thread) OwnedMutexes() int {
	d := t.kernel.acquire()
	defer d.release()
	return len(t.mutexes)
}

// TakeQueueEntry returns and forgets the entry a satisfied wait removed
// from the Queue with the given index in its object list.
// A thread with entries not yet taken cannot wait for a Queue again.
func (t *thread) TakeQueueEntry(index int) (interface{}, bool) {
	d := t.kernel.acquire()
	defer d.release()
	return t.takeQueueEntry(index)
}

func (t *thread) takeQueueEntry(index int) (interface{}, bool) {
	e, ok := t.queueEntries[index]
	delete(t.queueEntries, index)
	return e, ok
}

// PendingQueueEntries returns the number of queue entries not yet taken.
func (t *thread) PendingQueueEntries() int {
	d := t.kernel.acquire()
	defer d.release()
	return len(t.queueEntries)
}

// Yield hands the processor to the next ready thread of at least the same priority.
// It must be called by the thread itself.
func (t *thread) Yield() bool {
	d := t.kernel.acquire()
	return t.kernel.sched.preempt(t, true, d.release)
}

// boost raises the dynamic priority by b, limited to MaximumDynamicPriority.
// Realtime threads are not boosted.
func (t *thread) boost(b int) {
	if b <= 0 || t.realtime {
		return
	}
	p := t.priority + b
	if p > MaximumDynamicPriority {
		p = MaximumDynamicPriority
	}
	if p > t.priority {
		t.priority = p
	}
}

// decay lowers a boosted priority by one level towards the base priority.
func (t *thread) decay() {
	if t.priority > t.basePriority {
		t.priority--
	}
}

func (t *thread) removeMutex(m *mutex) {
	for i, e := range t.mutexes {
		if e == m {
			t.mutexes = append(t.mutexes[:i], t.mutexes[i+1:]...)
			return
		}
	}
}

// exitThread abandons all mutexes still owned by the terminating thread
// and signals the thread object.
func (k *kernel) exitThread(t *thread) {
	d := k.acquire()
	defer d.release()

	for len(t.mutexes) > 0 {
		m := t.mutexes[0]
		t.mutexes = t.mutexes[1:]
		k.log.V(1).Info("mutex abandoned", "thread", t.name, "mutex", m.name)
		d.abandonMutex(m)
	}
	d.cancelTimer(t.timer)
	t.signalState = 1
	d.waitTest(t, 0)
	k.log.V(1).Info("thread terminated", "thread", t.name)
}
