package dispatcher

import (
	"sync"

	"github.com/go-logr/logr"
)

// Kernel is the dispatcher database: it owns the dispatcher lock
// guarding all dispatcher objects and thread wait state created
// for it, and the scheduler running its threads.
// Objects and threads of different kernels must not be mixed.
type Kernel = *kernel

type kernel struct {
	lock     sync.Mutex
	dispatch dispatch

	sched    *scheduler
	log      logr.Logger
	capacity int

	activeTimers int
}

// New creates a kernel with the given number of processors,
// the maximum number of threads running at the same time.
func New(processors int, opts ...Option) Kernel {
	if processors < 1 {
		processors = 1
	}
	k := &kernel{
		log:      logr.Discard(),
		capacity: DefaultWaitBlockCapacity,
	}
	for _, o := range opts {
		o(k)
	}
	k.dispatch.k = k
	k.sched = newScheduler(processors)
	return k
}

func (k *kernel) Scheduler() Scheduler {
	return k.sched
}

func (k *kernel) WaitBlockCapacity() int {
	return k.capacity
}

// ActiveTimers returns the number of armed timers, including
// timeout timers of blocked waits.
func (k *kernel) ActiveTimers() int {
	d := k.acquire()
	defer d.release()
	return k.activeTimers
}

// Synchronized runs f while holding the dispatcher lock.
// The Dispatch passed to f gives access to the engine operations
// requiring the lock and must not be used after f returned.
// Object methods acquiring the lock themselves must not be called by f.
func (k *kernel) Synchronized(f func(Dispatch)) {
	d := k.acquire()
	defer d.release()
	f(d)
}

// SignalObject signals o and releases its waiters, see Dispatch.SignalObject.
// It is intended for code not running in a kernel thread, like timer callbacks.
func (k *kernel) SignalObject(o Object, boost int) {
	d := k.acquire()
	defer d.release()
	d.SignalObject(o, boost)
}

// UnwaitThread force-completes the wait of a blocked thread, see Dispatch.UnwaitThread.
func (k *kernel) UnwaitThread(t Thread, status WaitStatus) bool {
	d := k.acquire()
	defer d.release()
	return d.UnwaitThread(t, status)
}

// CheckWaitAll probes the wait of a thread, see Dispatch.CheckWaitAll.
func (k *kernel) CheckWaitAll(t Thread) bool {
	d := k.acquire()
	defer d.release()
	return d.CheckWaitAll(t)
}

////////////////////////////////////////////////////////////////////////////////

// Dispatch is the proof of holding the dispatcher lock. All engine
// operations mutating dispatcher objects are methods of it.
type Dispatch = *dispatch

type dispatch struct {
	k      *kernel
	active bool
}

func (k *kernel) acquire() *dispatch {
	k.lock.Lock()
	k.dispatch.active = true
	return &k.dispatch
}

func (d *dispatch) release() {
	d.active = false
	d.k.lock.Unlock()
}

func (d *dispatch) check() {
	if !d.active {
		panic("dispatch used outside the dispatcher lock")
	}
}

func (d *dispatch) owns(o Object) bool {
	return o != nil && o.dispatcherHeader().kernel == d.k
}

// SignalState returns the signal state of o.
func (d *dispatch) SignalState(o Object) int {
	d.check()
	return o.dispatcherHeader().signalState
}

// SetSignalState sets the signal state of o without releasing any waiter.
func (d *dispatch) SetSignalState(o Object, state int) {
	d.check()
	if d.owns(o) {
		o.dispatcherHeader().signalState = state
	}
}

// HasWaiters reports whether wait blocks are registered at o.
func (d *dispatch) HasWaiters(o Object) bool {
	d.check()
	return o.dispatcherHeader().hasWaiters()
}

// WaitBlocks returns the wait blocks registered at o in wake order.
func (d *dispatch) WaitBlocks(o Object) []*WaitBlock {
	d.check()
	var list []*WaitBlock
	for b := o.dispatcherHeader().waitList.head; b != nil; b = b.next {
		list = append(list, b)
	}
	return list
}
