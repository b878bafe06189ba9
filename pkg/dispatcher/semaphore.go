package dispatcher

import (
	"fmt"
)

var (
	ErrLimitExceeded     = fmt.Errorf("semaphore limit exceeded")
	ErrInvalidAdjustment = fmt.Errorf("invalid semaphore adjustment")
)

// Semaphore is a counting semaphore. Every satisfied wait takes one unit.
type Semaphore = *semaphore

type semaphore struct {
	Header
	limit int
}

// NewSemaphore creates a semaphore with the given initial count, which
// must be within 0..limit.
func (k *kernel) NewSemaphore(count, limit int, names ...string) (Semaphore, error) {
	if limit < 1 || count < 0 || count > limit {
		return nil, ErrInvalidAdjustment
	}
	s := &semaphore{limit: limit}
	s.init(k, SemaphoreObject, count, ElementName("semaphore", names...))
	return s, nil
}

func (s *semaphore) Limit() int {
	return s.limit
}

// Release adds adjustment units and wakes up to that many waiters,
// boosting them by boost. It returns the previous count.
// A release exceeding the limit fails without changing the count.
func (s *semaphore) Release(adjustment int, boost int) (int, error) {
	if adjustment < 1 {
		return 0, ErrInvalidAdjustment
	}
	d := s.kernel.acquire()
	defer d.release()

	prev := s.signalState
	if prev > s.limit-adjustment {
		return prev, ErrLimitExceeded
	}
	s.signalState += adjustment
	d.waitTest(s, boost)
	return prev, nil
}
