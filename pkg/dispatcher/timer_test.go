package dispatcher_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/dispatcher/pkg/dispatcher"
)

var _ = Describe("timer", func() {
	var k dispatcher.Kernel

	BeforeEach(func() {
		k = newKernel(4)
	})

	It("releases all waiters on expiration", func() {
		tm := k.NewTimer(dispatcher.NotificationTimer, "tm")
		t1, r1 := startWaiter(k, objects(tm), dispatcher.WaitAny, dispatcher.Infinite)
		t2, r2 := startWaiter(k, objects(tm), dispatcher.WaitAny, dispatcher.Infinite)
		Eventually(t1.State).Should(Equal(dispatcher.Waiting))
		Eventually(t2.State).Should(Equal(dispatcher.Waiting))

		Expect(tm.Set(50*time.Millisecond, 0, nil)).To(BeFalse())
		Expect(tm.IsSet()).To(BeTrue())
		Expect(k.ActiveTimers()).To(Equal(1))

		Eventually(r1).Should(Receive(Equal(dispatcher.Object0)))
		Eventually(r2).Should(Receive(Equal(dispatcher.Object0)))
		Expect(tm.SignalState()).To(Equal(1))
		Expect(tm.IsSet()).To(BeFalse())
		Expect(k.ActiveTimers()).To(Equal(0))
		noWaiters(tm)
	})

	It("re-arms a periodic timer", func() {
		tm := k.NewTimer(dispatcher.SynchronizationTimer, "periodic")
		var calls int32
		tm.Set(20*time.Millisecond, 20*time.Millisecond, func(dispatcher.Timer) {
			atomic.AddInt32(&calls, 1)
		})
		Expect(tm.Period()).To(Equal(20 * time.Millisecond))

		results := &Results{}
		runThread(k, func(t dispatcher.Thread) {
			for i := 0; i < 3; i++ {
				results.Add(t.WaitForSingleObject(tm, time.Second).String())
			}
		})
		Expect(results.List()).To(Equal([]string{"object0", "object0", "object0"}))
		Eventually(func() int32 { return atomic.LoadInt32(&calls) }).Should(BeNumerically(">=", 3))

		Expect(tm.IsSet()).To(BeTrue())
		Expect(tm.Cancel()).To(BeTrue())
		Expect(tm.IsSet()).To(BeFalse())
		Expect(k.ActiveTimers()).To(Equal(0))
	})

	It("does not expire after cancellation", func() {
		tm := k.NewTimer(dispatcher.NotificationTimer, "tm")
		tm.Set(50*time.Millisecond, 0, nil)
		Expect(tm.DueTime()).To(BeTemporally(">", time.Now()))
		Expect(tm.Cancel()).To(BeTrue())
		Expect(tm.Cancel()).To(BeFalse())
		Consistently(tm.SignalState, 150*time.Millisecond).Should(Equal(0))
		Expect(k.ActiveTimers()).To(Equal(0))
	})

	It("resets the signal state when set again", func() {
		tm := k.NewTimer(dispatcher.NotificationTimer, "tm")
		tm.Set(0, 0, nil)
		Eventually(tm.SignalState).Should(Equal(1))
		Expect(tm.Set(time.Hour, 0, nil)).To(BeFalse())
		Expect(tm.SignalState()).To(Equal(0))
		Expect(tm.Set(time.Hour, 0, nil)).To(BeTrue())
		Expect(tm.Cancel()).To(BeTrue())
	})

	It("cancels the timeout timer of a satisfied wait", func() {
		e := k.NewEvent(dispatcher.SynchronizationEvent, false, "e")
		t, result := startWaiter(k, objects(e), dispatcher.WaitAny, time.Hour)
		Eventually(t.State).Should(Equal(dispatcher.Waiting))
		Expect(k.ActiveTimers()).To(Equal(1))

		e.Set(0)
		Eventually(result).Should(Receive(Equal(dispatcher.Object0)))
		Eventually(k.ActiveTimers).Should(Equal(0))
	})
})
