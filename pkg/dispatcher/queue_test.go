package dispatcher_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/dispatcher/pkg/dispatcher"
)

var _ = Describe("queue", func() {
	var k dispatcher.Kernel
	var q dispatcher.Queue

	BeforeEach(func() {
		k = newKernel(4)
		q = k.NewQueue("q")
	})

	It("removes available entries immediately", func() {
		Expect(q.Insert("a")).To(Equal(0))
		Expect(q.Insert("b")).To(Equal(1))
		Expect(q.InsertHead("c")).To(Equal(2))
		Expect(q.Len()).To(Equal(3))
		Expect(q.SignalState()).To(Equal(3))

		var entries []interface{}
		runThread(k, func(t dispatcher.Thread) {
			for i := 0; i < 3; i++ {
				e, _ := q.Remove(t, 0)
				entries = append(entries, e)
			}
		})
		Expect(entries).To(Equal([]interface{}{"c", "a", "b"}))
		Expect(q.SignalState()).To(Equal(0))
	})

	It("hands every entry to exactly one waiter", func() {
		received := make(chan interface{}, 2)
		for i := 0; i < 2; i++ {
			t := k.NewThread(func(t dispatcher.Thread) {
				e, _ := q.Remove(t, dispatcher.Infinite)
				received <- e
			}).Start()
			Eventually(t.State).Should(Equal(dispatcher.Waiting))
		}

		q.Insert("x")
		q.Insert("y")
		var entries []interface{}
		for i := 0; i < 2; i++ {
			var e interface{}
			Eventually(received).Should(Receive(&e))
			entries = append(entries, e)
		}
		Expect(entries).To(ConsistOf("x", "y"))
		Expect(q.Len()).To(Equal(0))
		noWaiters(q)
	})

	It("times out without an entry", func() {
		var entry interface{}
		var status dispatcher.WaitStatus
		runThread(k, func(t dispatcher.Thread) {
			entry, status = q.Remove(t, 50*time.Millisecond)
		})
		Expect(status).To(Equal(dispatcher.Timeout))
		Expect(entry).To(BeNil())
		noWaiters(q)
	})

	It("delivers entries to multi-object waits", func() {
		e := k.NewEvent(dispatcher.NotificationEvent, false, "e")
		var entry interface{}
		var found bool
		result := make(chan dispatcher.WaitStatus, 1)
		t := k.NewThread(func(t dispatcher.Thread) {
			s := t.WaitForMultipleObjects(objects(e, q), dispatcher.WaitAny, dispatcher.Infinite)
			entry, found = t.TakeQueueEntry(1)
			result <- s
		}).Start()
		Eventually(t.State).Should(Equal(dispatcher.Waiting))

		q.Insert(42)
		Eventually(result).Should(Receive(Equal(dispatcher.Object0 + 1)))
		Expect(found).To(BeTrue())
		Expect(entry).To(Equal(42))
		Expect(q.Len()).To(Equal(0))
	})

	It("keeps the entries of all queues consumed by one wait", func() {
		q2 := k.NewQueue("q2")
		q.Insert("a")
		q2.Insert("b")

		var status dispatcher.WaitStatus
		var pending int
		var entries []interface{}
		runThread(k, func(t dispatcher.Thread) {
			status = t.WaitForMultipleObjects(objects(q, q2), dispatcher.WaitAll, 0)
			pending = t.PendingQueueEntries()
			for i := 0; i < 2; i++ {
				e, _ := t.TakeQueueEntry(i)
				entries = append(entries, e)
			}
		})
		Expect(status).To(Equal(dispatcher.Object0))
		Expect(pending).To(Equal(2))
		Expect(entries).To(Equal([]interface{}{"a", "b"}))
		Expect(q.Len()).To(Equal(0))
		Expect(q2.Len()).To(Equal(0))
	})

	It("refuses another queue wait while entries are not taken", func() {
		q.Insert("a")
		q.Insert("b")

		var first, second, third dispatcher.WaitStatus
		var entries []interface{}
		runThread(k, func(t dispatcher.Thread) {
			first = t.WaitForSingleObject(q, 0)
			second = t.WaitForSingleObject(q, 0)
			e, _ := t.TakeQueueEntry(0)
			entries = append(entries, e)
			third = t.WaitForSingleObject(q, 0)
			e, _ = t.TakeQueueEntry(0)
			entries = append(entries, e)
		})
		Expect(first).To(Equal(dispatcher.Object0))
		Expect(second).To(Equal(dispatcher.Invalid))
		Expect(third).To(Equal(dispatcher.Object0))
		Expect(entries).To(Equal([]interface{}{"a", "b"}))
		Expect(q.Len()).To(Equal(0))
	})

	It("rejects inserts after rundown", func() {
		q.Insert("a")
		q.Insert("b")
		Expect(q.Rundown()).To(Equal([]interface{}{"a", "b"}))
		Expect(q.SignalState()).To(Equal(0))
		_, err := q.Insert("c")
		Expect(err).To(MatchError(dispatcher.ErrQueueRundown))
		_, err = q.InsertHead("c")
		Expect(err).To(MatchError(dispatcher.ErrQueueRundown))
	})
})
