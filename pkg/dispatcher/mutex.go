package dispatcher

import (
	"fmt"
)

var ErrNotOwner = fmt.Errorf("mutex not owned by thread")

// Mutex is a recursive mutual exclusion object. A thread acquires it by
// waiting for it, a thread already owning it acquires it again
// immediately and has to release it once per acquisition.
// A mutex still owned by a terminating thread is abandoned: it gets
// released and its next owner is told by an Abandoned0+index wait status.
type Mutex = *mutex

type mutex struct {
	Header
	owner     *thread
	recursion int
	abandoned bool
}

func (k *kernel) NewMutex(names ...string) Mutex {
	m := &mutex{}
	m.init(k, MutexObject, 1, ElementName("mutex", names...))
	return m
}

// Owner returns the owning thread or nil.
func (m *mutex) Owner() Thread {
	d := m.kernel.acquire()
	defer d.release()
	return m.owner
}

func (m *mutex) Recursion() int {
	d := m.kernel.acquire()
	defer d.release()
	return m.recursion
}

// Release releases one acquisition of the mutex by t. The mutex is
// signaled again, when the last acquisition is released.
func (m *mutex) Release(t Thread) error {
	d := m.kernel.acquire()
	defer d.release()
	return d.releaseMutex(m, t, SignalIncrement)
}

func (d *dispatch) releaseMutex(m *mutex, t *thread, boost int) error {
	if t == nil || m.owner != t {
		return ErrNotOwner
	}
	m.recursion--
	if m.recursion > 0 {
		return nil
	}
	t.removeMutex(m)
	m.owner = nil
	m.signalState = 1
	d.waitTest(m, boost)
	return nil
}

func (d *dispatch) abandonMutex(m *mutex) {
	m.owner = nil
	m.recursion = 0
	m.abandoned = true
	m.signalState = 1
	d.waitTest(m, 0)
}

// acquire passes ownership to t, or counts a recursive acquisition.
// It reports whether the mutex had been abandoned.
func (m *mutex) acquire(t *thread) bool {
	if m.owner == t {
		m.recursion++
		return false
	}
	m.owner = t
	m.recursion = 1
	m.signalState = 0
	t.mutexes = append(t.mutexes, m)

	abandoned := m.abandoned
	m.abandoned = false
	return abandoned
}
