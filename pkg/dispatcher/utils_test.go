package dispatcher_test

import (
	"fmt"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/dispatcher/pkg/dispatcher"
)

type Results struct {
	lock sync.Mutex
	list []string
}

func (r *Results) Add(e ...string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	msg := strings.Join(e, " ")
	fmt.Fprintf(GinkgoWriter, "%s\n", msg)
	r.list = append(r.list, msg)
}

func (r *Results) List() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.list...)
}

////////////////////////////////////////////////////////////////////////////////

func newKernel(processors int, opts ...dispatcher.Option) dispatcher.Kernel {
	return dispatcher.New(processors, append([]dispatcher.Option{dispatcher.WithLogger(GinkgoLogr)}, opts...)...)
}

// runThread executes f in a kernel thread and waits for its termination.
func runThread(k dispatcher.Kernel, f dispatcher.ThreadFunction, opts ...dispatcher.ThreadOption) dispatcher.Thread {
	t := k.NewThread(f, opts...).Start()
	Eventually(t.State, 5*time.Second).Should(Equal(dispatcher.Terminated))
	return t
}

// startWaiter starts a thread waiting for the given objects and returns
// it together with the channel receiving the wait status.
func startWaiter(k dispatcher.Kernel, objects []dispatcher.Object, waitType dispatcher.WaitType, timeout time.Duration, opts ...dispatcher.ThreadOption) (dispatcher.Thread, chan dispatcher.WaitStatus) {
	result := make(chan dispatcher.WaitStatus, 1)
	t := k.NewThread(func(t dispatcher.Thread) {
		result <- t.WaitForMultipleObjects(objects, waitType, timeout)
	}, opts...).Start()
	return t, result
}

func objects(list ...dispatcher.Object) []dispatcher.Object {
	return list
}

func noWaiters(list ...dispatcher.Object) {
	for _, o := range list {
		ExpectWithOffset(1, o.HasWaiters()).To(BeFalse(), o.Name())
	}
}
