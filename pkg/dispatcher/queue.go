package dispatcher

// threadQueue is a list of threads managed by the scheduler.
// A priority queue keeps threads ordered by descending dynamic priority,
// FIFO among threads of the same priority.
// It is guarded by the scheduler lock.
type threadQueue struct {
	name     string
	priority bool
	list     []*thread
}

func newQueue(name string) *threadQueue {
	return &threadQueue{name: name}
}

func newPriorityQueue(name string) *threadQueue {
	return &threadQueue{name: name, priority: true}
}

func (q *threadQueue) Name() string {
	return q.name
}

func (q *threadQueue) Add(t *thread) {
	if q.priority {
		i := len(q.list)
		for i > 0 && q.list[i-1].priority < t.priority {
			i--
		}
		q.list = append(q.list, nil)
		copy(q.list[i+1:], q.list[i:])
		q.list[i] = t
		return
	}
	q.list = append(q.list, t)
}

func (q *threadQueue) Len() int {
	return len(q.list)
}

func (q *threadQueue) Peek() *thread {
	if len(q.list) > 0 {
		return q.list[0]
	}
	return nil
}

func (q *threadQueue) Next() *thread {
	if len(q.list) > 0 {
		r := q.list[0]
		q.list = q.list[1:]
		return r
	}
	return nil
}

func (q *threadQueue) Remove(t *thread) bool {
	for i, e := range q.list {
		if e == t {
			q.list = append(q.list[:i], q.list[i+1:]...)
			return true
		}
	}
	return false
}
