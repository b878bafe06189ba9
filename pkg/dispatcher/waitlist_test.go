package dispatcher

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("wait list", func() {
	var list waitList
	var blocks []WaitBlock

	BeforeEach(func() {
		list = waitList{}
		blocks = make([]WaitBlock, 3)
		for i := range blocks {
			blocks[i].index = i
		}
	})

	indices := func(l *waitList) []int {
		r := []int{}
		for b := l.head; b != nil; b = b.next {
			r = append(r, b.index)
		}
		return r
	}

	It("keeps insertion order", func() {
		Expect(list.empty()).To(BeTrue())
		for i := range blocks {
			list.insertTail(&blocks[i])
		}
		Expect(list.len()).To(Equal(3))
		Expect(indices(&list)).To(Equal([]int{0, 1, 2}))

		Expect(list.removeHead()).To(BeIdenticalTo(&blocks[0]))
		Expect(blocks[0].linked()).To(BeFalse())
		Expect(indices(&list)).To(Equal([]int{1, 2}))
	})

	It("removes entries in the middle and at the tail", func() {
		for i := range blocks {
			list.insertTail(&blocks[i])
		}
		Expect(list.remove(&blocks[1])).To(BeTrue())
		Expect(indices(&list)).To(Equal([]int{0, 2}))
		blocks[2].unlink()
		Expect(indices(&list)).To(Equal([]int{0}))
		Expect(list.tail).To(BeIdenticalTo(&blocks[0]))
		blocks[0].unlink()
		Expect(list.empty()).To(BeTrue())
		Expect(list.len()).To(Equal(0))
		Expect(list.removeHead()).To(BeNil())
	})

	It("links a block into one list only", func() {
		var other waitList
		list.insertTail(&blocks[0])
		Expect(func() { other.insertTail(&blocks[0]) }).To(Panic())
		Expect(other.remove(&blocks[0])).To(BeFalse())
		Expect(list.len()).To(Equal(1))

		blocks[0].unlink()
		other.insertTail(&blocks[0])
		Expect(other.len()).To(Equal(1))
	})
})
