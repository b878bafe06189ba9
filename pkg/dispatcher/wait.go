package dispatcher

import (
	"time"
)

// WaitForSingleObject waits until o is signaled or the timeout elapses.
// It must be called by the Go routine executing the thread.
func (t *thread) WaitForSingleObject(o Object, timeout time.Duration) WaitStatus {
	return t.WaitForMultipleObjects([]Object{o}, WaitAny, timeout)
}

// WaitForMultipleObjects waits until one (WaitAny) or all (WaitAll) of the
// given objects are signaled, or the timeout elapses. A timeout of 0 only
// tests the objects, Infinite waits without timeout.
//
// For WaitAny the lowest index of a signaled object wins, and Object0+index
// is returned. For WaitAll, Object0 is returned after every object has
// been consumed exactly once. Abandoned mutexes yield Abandoned0+index.
// Invalid is returned without any side effect if the call violates a
// precondition: an object count outside 1..MaximumWaitObjects, a nil
// object or thread, objects of another kernel, duplicates in a WaitAll,
// a thread not currently running, a Queue named by a thread still
// holding queue entries not taken (see Thread.TakeQueueEntry), or a
// blocking wait exceeding the wait block capacity of the kernel.
// It must be called by the Go routine executing the thread.
func (t *thread) WaitForMultipleObjects(objects []Object, waitType WaitType, timeout time.Duration) WaitStatus {
	if t == nil {
		return Invalid
	}
	d := t.kernel.acquire()
	defer d.release()
	return d.waitForObjects(t, objects, waitType, timeout)
}

// SignalAndWait signals the first object and waits for the second one
// without releasing the dispatcher lock in between. Signaling a mutex
// releases it, which requires the thread to own it. Signaling a
// semaphore releases one unit.
func (t *thread) SignalAndWait(signal Object, wait Object, timeout time.Duration) WaitStatus {
	if t == nil {
		return Invalid
	}
	d := t.kernel.acquire()
	defer d.release()

	if !d.owns(signal) || !d.validWait(t, []Object{wait}, WaitAny) {
		return Invalid
	}
	switch s := signal.(type) {
	case *mutex:
		if d.releaseMutex(s, t, SignalIncrement) != nil {
			return Invalid
		}
	case *semaphore:
		if s.signalState >= s.limit {
			return Invalid
		}
		d.signalObject(s, SignalIncrement)
	default:
		d.signalObject(signal, SignalIncrement)
	}
	return d.waitForObjects(t, []Object{wait}, WaitAny, timeout)
}

func (d *dispatch) validWait(t *thread, objects []Object, waitType WaitType) bool {
	if t == nil || t.kernel != d.k {
		return false
	}
	if len(objects) == 0 || len(objects) > MaximumWaitObjects {
		return false
	}
	if waitType != WaitAny && waitType != WaitAll {
		return false
	}
	for i, o := range objects {
		if !d.owns(o) {
			return false
		}
		if _, ok := o.(*queue); ok && len(t.queueEntries) > 0 {
			return false
		}
		if waitType == WaitAll {
			for _, p := range objects[:i] {
				if p == o {
					return false
				}
			}
		}
	}
	return !t.waitActive && d.k.sched.stateOf(t) == Running
}

func (d *dispatch) waitForObjects(t *thread, objects []Object, waitType WaitType, timeout time.Duration) WaitStatus {
	if !d.validWait(t, objects, waitType) {
		return Invalid
	}
	if status, ok := d.satisfy(t, objects, waitType); ok {
		return status
	}
	if timeout == 0 {
		return Timeout
	}
	if len(objects) > d.k.capacity {
		return Invalid
	}
	if t.alerted {
		t.alerted = false
		return Alerted
	}
	return d.block(t, objects, waitType, timeout)
}

// satisfiable tests the wait condition without consuming anything.
func satisfiable(t *thread, objects []Object, waitType WaitType) bool {
	if waitType == WaitAny {
		for _, o := range objects {
			if signaled(o, t) {
				return true
			}
		}
		return false
	}
	for _, o := range objects {
		if !signaled(o, t) {
			return false
		}
	}
	return true
}

// satisfy consumes the objects satisfying the wait condition, if it holds.
// For WaitAny the first signaled object in array order is consumed.
// For WaitAll all objects are tested before the first one is consumed.
func (d *dispatch) satisfy(t *thread, objects []Object, waitType WaitType) (WaitStatus, bool) {
	if waitType == WaitAny {
		for i, o := range objects {
			if signaled(o, t) {
				return objectStatus(i, consume(o, t, i)), true
			}
		}
		return Invalid, false
	}
	if !satisfiable(t, objects, WaitAll) {
		return Invalid, false
	}
	abandoned := false
	for i, o := range objects {
		if consume(o, t, i) {
			abandoned = true
		}
	}
	return objectStatus(0, abandoned), true
}

// block registers the wait blocks of t and suspends it until the wait
// is satisfied, times out or is cancelled. A wakeup is only a hint to
// recheck the wait condition, unless the waker granted an object or
// force-completed the wait.
func (d *dispatch) block(t *thread, objects []Object, waitType WaitType, timeout time.Duration) WaitStatus {
	count := len(objects)

	t.decay()
	t.waitStatus = Object0
	t.waitType = waitType
	t.waitCount = count
	t.waitActive = true
	t.unwaited = false
	for i, o := range objects {
		b := &t.blockArena[i]
		*b = WaitBlock{thread: t, object: o, waitType: waitType, index: i}
		o.dispatcherHeader().waitList.insertTail(b)
	}
	t.waitBlocks = t.blockArena[:count]

	timed := timeout > 0
	if timed {
		d.setTimer(t.timer, timeout, 0, nil)
		b := &t.blockArena[count]
		*b = WaitBlock{thread: t, object: t.timer, waitType: WaitAny, index: count}
		t.timer.waitList.insertTail(b)
		t.waitBlocks = t.blockArena[:count+1]
	}
	log := d.k.log.V(2)
	log.Info("wait blocked", "thread", t.name, "objects", count, "type", waitType, "timeout", timeout)

	var status WaitStatus
	for {
		t.waitBlocked = true
		d.k.sched.block(t, d.release)
		d.k.acquire()
		t.waitBlocked = false

		if t.unwaited {
			status = t.waitStatus
			d.endWait(t, timed)
			log.Info("wait cancelled", "thread", t.name, "status", status)
			break
		}
		if b := t.grantedBlock(); b != nil {
			status = objectStatus(b.index, false)
			d.endWait(t, timed)
			log.Info("wait granted", "thread", t.name, "status", status)
			break
		}
		if timed && t.timer.signalState > 0 {
			status = Timeout
			d.endWait(t, timed)
			log.Info("wait timed out", "thread", t.name)
			break
		}
		if satisfiable(t, objects, waitType) {
			d.endWait(t, timed)
			status, _ = d.satisfy(t, objects, waitType)
			log.Info("wait satisfied", "thread", t.name, "status", status)
			break
		}
		if t.alerted {
			t.alerted = false
			status = Alerted
			d.endWait(t, timed)
			break
		}

		// blocks popped by the wakeup must be registered again
		for i := range t.waitBlocks {
			b := &t.waitBlocks[i]
			if !b.linked() {
				b.object.dispatcherHeader().waitList.insertTail(b)
			}
		}
	}
	d.passOnMutexes(objects)
	return status
}

// passOnMutexes wakes the next waiter of every awaited mutex still free
// after the wait ended. A release may have woken this thread, which
// then did not take the mutex.
func (d *dispatch) passOnMutexes(objects []Object) {
	for _, o := range objects {
		if m, ok := o.(*mutex); ok && m.signalState > 0 && m.hasWaiters() {
			d.wakeMutexWaiter(&m.Header, 0)
		}
	}
}

func (t *thread) grantedBlock() *WaitBlock {
	for i := range t.waitBlocks {
		if t.waitBlocks[i].granted {
			return &t.waitBlocks[i]
		}
	}
	return nil
}

// endWait unregisters all wait blocks of t, cancels the timeout timer
// and resets the wait bookkeeping of the thread.
func (d *dispatch) endWait(t *thread, timed bool) {
	d.unlinkBlocks(t)
	if timed {
		d.cancelTimer(t.timer)
		t.timer.signalState = 0
	}
	for i := range t.waitBlocks {
		t.waitBlocks[i] = WaitBlock{}
	}
	t.waitBlocks = nil
	t.waitCount = 0
	t.waitActive = false
	t.unwaited = false
}

func (d *dispatch) unlinkBlocks(t *thread) {
	for i := range t.waitBlocks {
		t.waitBlocks[i].unlink()
	}
}
