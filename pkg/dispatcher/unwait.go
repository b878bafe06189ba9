package dispatcher

// UnwaitThread force-completes the blocked wait of t with the given status,
// regardless of the state of the awaited objects. It is used to deliver
// alerts or to terminate a wait on behalf of another subsystem, which may
// pass Abandoned0 for the owner termination of a mutex.
// All wait blocks of t are unregistered using the thread's own bookkeeping.
// It reports false, without any effect, if t is not blocked in a wait.
func (d *dispatch) UnwaitThread(t Thread, status WaitStatus) bool {
	d.check()
	return d.unwaitThread(t, status)
}

func (d *dispatch) unwaitThread(t *thread, status WaitStatus) bool {
	if t == nil || t.kernel != d.k || !t.waitBlocked {
		return false
	}
	t.waitStatus = status
	t.unwaited = true
	d.unlinkBlocks(t)
	d.k.log.V(2).Info("thread unwaited", "thread", t.name, "status", status)
	d.readyThread(t, 0)
	return true
}

// CheckWaitAll reports whether every object of the wait in progress of
// t is signaled for t. Nothing is consumed and nobody is woken. The
// timeout block of the wait is not taken into account.
func (d *dispatch) CheckWaitAll(t Thread) bool {
	d.check()
	if t == nil || t.kernel != d.k || !t.waitActive || t.waitCount == 0 {
		return false
	}
	for i := 0; i < t.waitCount; i++ {
		if !signaled(t.waitBlocks[i].object, t) {
			return false
		}
	}
	return true
}

// Alert force-completes a blocked wait of t with Alerted. If t is not
// blocked, the alert is kept pending and terminates the next blocking
// wait of t instead. It reports whether a blocked wait was completed.
func (t *thread) Alert() bool {
	d := t.kernel.acquire()
	defer d.release()

	if d.unwaitThread(t, Alerted) {
		return true
	}
	t.alerted = true
	return false
}
