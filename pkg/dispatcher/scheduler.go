package dispatcher

import (
	"sync"
)

// Scheduler runs the threads of a kernel on a limited number of
// processors. Threads beyond that limit are kept Ready in a priority
// queue until a processor becomes available, either because a running
// thread blocks in a wait, yields or terminates.
// A thread is suspended on its blocker mutex while it is not Running.
type Scheduler = *scheduler

type scheduler struct {
	lock              sync.Mutex
	num_processors    int
	active_processors int

	running *threadQueue
	ready   *threadQueue
	waiting *threadQueue
}

func newScheduler(n int) Scheduler {
	return &scheduler{
		num_processors: n,

		running: newQueue("running"),
		ready:   newPriorityQueue("ready"),
		waiting: newQueue("waiting"),
	}
}

func (s *scheduler) Processors() int {
	return s.num_processors
}

func (s *scheduler) ActiveCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.running.Len() + s.ready.Len()
}

func (s *scheduler) RunningCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.running.Len()
}

func (s *scheduler) ReadyCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.ready.Len()
}

func (s *scheduler) WaitingCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.waiting.Len()
}

func (s *scheduler) stateOf(t *thread) ThreadState {
	s.lock.Lock()
	defer s.lock.Unlock()

	return t.state
}

func (s *scheduler) start(t *thread) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.active_processors < s.num_processors {
		s.active_processors++
		s.running.Add(t)
		t.state = Running
	} else {
		t._block()
		s.ready.Add(t)
		t.state = Ready
	}
	go t.run()
}

func (s *scheduler) done(t *thread) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.running.Remove(t)
	t.state = Terminated
	s._schedule()
}

func (s *scheduler) _schedule() {
	if r := s.ready.Next(); r != nil {
		s.running.Add(r)
		r.state = Running
		r._unblock()
	} else {
		s.active_processors--
	}
}

// block suspends the running thread t. The release function is called
// after t has been marked Waiting, but before it is actually suspended,
// so a wakeup issued after release can never be lost.
func (s *scheduler) block(t *thread, release func()) {
	s.lock.Lock()

	s.running.Remove(t)
	s.waiting.Add(t)
	t.state = Waiting
	if release != nil {
		release()
	}
	s._schedule()
	s.lock.Unlock()

	t._block()
}

// unblock makes a waiting thread Ready and runs it if a processor
// is available.
func (s *scheduler) unblock(t *thread) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.waiting.Remove(t) {
		return
	}
	if s.active_processors < s.num_processors {
		s.active_processors++
		s.running.Add(t)
		t.state = Running
		t._unblock()
	} else {
		s.ready.Add(t)
		t.state = Ready
	}
}

// preempt hands the processor of the running thread t to the first
// ready thread, if that one has a higher priority (or the same one,
// if yield is set). It reports whether t has been preempted.
// Like for block, release is called under the scheduler lock after
// the decision has been taken.
func (s *scheduler) preempt(t *thread, yield bool, release func()) bool {
	s.lock.Lock()

	r := s.ready.Peek()
	if r == nil || t.state != Running || r.priority < t.priority || (r.priority == t.priority && !yield) {
		if release != nil {
			release()
		}
		s.lock.Unlock()
		return false
	}
	s.ready.Next()
	s.running.Remove(t)
	s.ready.Add(t)
	t.state = Ready
	s.running.Add(r)
	r.state = Running
	if release != nil {
		release()
	}
	r._unblock()
	s.lock.Unlock()

	t._block()
	return true
}
