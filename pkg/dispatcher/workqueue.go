package dispatcher

import (
	"fmt"
	"time"
)

var ErrQueueRundown = fmt.Errorf("queue is run down")

// Queue is a dispatcher object holding a list of entries. It is
// signaled as long as it holds entries, and every satisfied wait
// removes one entry for the waiting thread.
// Entries are handed to waiting threads in insertion order.
type Queue = *queue

type queue struct {
	Header
	entries []interface{}
	rundown bool
}

func (k *kernel) NewQueue(names ...string) Queue {
	q := &queue{}
	q.init(k, QueueObject, 0, ElementName("queue", names...))
	return q
}

// Insert appends an entry and releases one waiter.
// It returns the previous number of entries.
func (q *queue) Insert(entry interface{}) (int, error) {
	return q.insert(entry, false)
}

// InsertHead prepends an entry and releases one waiter.
// It returns the previous number of entries.
func (q *queue) InsertHead(entry interface{}) (int, error) {
	return q.insert(entry, true)
}

func (q *queue) insert(entry interface{}, head bool) (int, error) {
	d := q.kernel.acquire()
	defer d.release()

	if q.rundown {
		return 0, ErrQueueRundown
	}
	prev := q.signalState
	if head {
		q.entries = append([]interface{}{entry}, q.entries...)
	} else {
		q.entries = append(q.entries, entry)
	}
	q.signalState++
	d.waitTest(q, 0)
	return prev, nil
}

// Remove waits for an entry and removes it from the queue.
// If the wait is not satisfied, the status is returned with a nil entry.
// It must be called by the Go routine executing the thread.
func (q *queue) Remove(t Thread, timeout time.Duration) (interface{}, WaitStatus) {
	if t == nil {
		return nil, Invalid
	}
	d := q.kernel.acquire()
	defer d.release()

	status := d.waitForObjects(t, []Object{q}, WaitAny, timeout)
	if status != Object0 {
		return nil, status
	}
	e, _ := t.takeQueueEntry(0)
	return e, status
}

// Rundown disables the queue and returns the remaining entries.
// Threads still waiting for the queue are not released.
func (q *queue) Rundown() []interface{} {
	d := q.kernel.acquire()
	defer d.release()

	q.rundown = true
	entries := q.entries
	q.entries = nil
	q.signalState = 0
	return entries
}

func (q *queue) Len() int {
	d := q.kernel.acquire()
	defer d.release()
	return len(q.entries)
}

// dequeue removes the first entry for the wait of thread t naming
// the queue at the given index.
func (q *queue) dequeue(t *thread, index int) {
	if len(q.entries) == 0 {
		return
	}
	if t.queueEntries == nil {
		t.queueEntries = map[int]interface{}{}
	}
	t.queueEntries[index] = q.entries[0]
	q.entries = q.entries[1:]
	q.signalState--
}
