package dispatcher

// SignalObject signals o and releases its waiters as far as the new
// signal state allows. Events and timers become signaled, a semaphore
// gains one unit up to its limit, an unowned mutex stays available.
// Mutex ownership and queue entries are only changed by the operations
// of these objects.
// Woken non-realtime threads are boosted by boost, limited to
// MaximumDynamicPriority.
func (d *dispatch) SignalObject(o Object, boost int) {
	d.check()
	if !d.owns(o) {
		return
	}
	d.signalObject(o, boost)
}

func (d *dispatch) signalObject(o Object, boost int) {
	switch obj := o.(type) {
	case *semaphore:
		if obj.signalState < obj.limit {
			obj.signalState++
		}
	case *mutex:
		if obj.owner == nil {
			obj.signalState = 1
		}
	case *queue:
	default:
		o.dispatcherHeader().signalState = 1
	}
	d.waitTest(o, boost)
}

// SignalObject signals o on behalf of the running thread t, see Dispatch.SignalObject.
// If wait is false and a woken thread now has a higher priority than t,
// t hands its processor over. If the caller is going to wait immediately,
// it passes true to skip the preemption.
// It must be called by the Go routine executing the thread.
func (t *thread) SignalObject(o Object, boost int, wait bool) {
	d := t.kernel.acquire()
	d.SignalObject(o, boost)
	if wait {
		d.release()
		return
	}
	t.kernel.sched.preempt(t, false, d.release)
}

// waitTest releases the waiters of o according to its type and signal state.
func (d *dispatch) waitTest(o Object, boost int) {
	h := o.dispatcherHeader()
	switch {
	case h.objectType == MutexObject:
		if h.signalState > 0 {
			d.wakeMutexWaiter(h, boost)
		}
	case consumable(o):
		d.wakeGranting(o, boost)
	default:
		d.wakeAllWaiters(h, boost)
	}
}

// wakeOneWaiter pops the first wait block of h and readies its thread.
// If grant is set and the block belongs to a WaitAny, the object is
// consumed on behalf of the thread, which then gets its wait satisfied
// by this object without recheck.
// Blocks of threads not blocked anymore are dropped, they are
// registered again by their thread if it continues waiting.
// It returns the popped block and whether a thread was woken.
func (d *dispatch) wakeOneWaiter(h *Header, boost int, grant bool) (*WaitBlock, bool) {
	b := h.waitList.removeHead()
	if b == nil {
		return nil, false
	}
	t := b.thread
	if !t.waitBlocked {
		return b, false
	}
	if grant && b.waitType == WaitAny {
		consume(b.object, t, b.index)
		b.granted = true
		d.unlinkBlocks(t)
	}
	d.readyThread(t, boost)
	return b, true
}

func (d *dispatch) wakeAllWaiters(h *Header, boost int) {
	for h.hasWaiters() {
		d.wakeOneWaiter(h, boost, false)
	}
}

// wakeGranting hands out the available units of a consumable object,
// one per WaitAny waiter. WaitAll waiters on the way are woken to
// recheck their condition, but don't take a unit.
func (d *dispatch) wakeGranting(o Object, boost int) {
	h := o.dispatcherHeader()
	for h.signalState > 0 && h.hasWaiters() {
		d.wakeOneWaiter(h, boost, true)
	}
}

// wakeMutexWaiter wakes the first WaitAny waiter of a free mutex.
// Ownership is taken by the waiter itself when it rechecks.
func (d *dispatch) wakeMutexWaiter(h *Header, boost int) {
	for h.hasWaiters() {
		b, woken := d.wakeOneWaiter(h, boost, false)
		if woken && b.waitType == WaitAny {
			return
		}
	}
}

// readyThread ends the blocked state of t and hands it to the scheduler.
func (d *dispatch) readyThread(t *thread, boost int) {
	t.waitBlocked = false
	t.boost(boost)
	d.k.log.V(2).Info("thread readied", "thread", t.name, "priority", t.priority)
	d.k.sched.unblock(t)
}
