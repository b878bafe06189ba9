package dispatcher

// WaitType selects whether a wait is satisfied by any or by all of its objects.
type WaitType int

const (
	WaitAll WaitType = iota
	WaitAny
)

func (t WaitType) String() string {
	switch t {
	case WaitAll:
		return "all"
	case WaitAny:
		return "any"
	default:
		return "invalid"
	}
}

// WaitBlock links one waiting thread to one object for the duration
// of a single wait call. The blocks live in an arena owned by the thread,
// objects only refer to them through their wait list.
type WaitBlock struct {
	next *WaitBlock
	prev *WaitBlock
	list *waitList

	thread   *thread
	object   Object
	waitType WaitType
	index    int

	// granted is set by a signaler which already consumed the object
	// on behalf of the waiting thread.
	granted bool
}

func (b *WaitBlock) Thread() Thread {
	return b.thread
}

func (b *WaitBlock) Object() Object {
	return b.object
}

func (b *WaitBlock) WaitType() WaitType {
	return b.waitType
}

func (b *WaitBlock) Index() int {
	return b.index
}

func (b *WaitBlock) linked() bool {
	return b.list != nil
}

func (b *WaitBlock) unlink() {
	if b.list != nil {
		b.list.remove(b)
	}
}

// waitList is an intrusive doubly linked list of wait blocks.
// A block is a member of at most one list.
type waitList struct {
	head  *WaitBlock
	tail  *WaitBlock
	count int
}

func (l *waitList) empty() bool {
	return l.head == nil
}

func (l *waitList) len() int {
	return l.count
}

func (l *waitList) insertTail(b *WaitBlock) {
	if b.list != nil {
		panic("wait block already linked")
	}
	b.list = l
	b.next = nil
	b.prev = l.tail
	if l.tail != nil {
		l.tail.next = b
	} else {
		l.head = b
	}
	l.tail = b
	l.count++
}

func (l *waitList) removeHead() *WaitBlock {
	b := l.head
	if b != nil {
		l.remove(b)
	}
	return b
}

func (l *waitList) remove(b *WaitBlock) bool {
	if b.list != l {
		return false
	}
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		l.head = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		l.tail = b.prev
	}
	b.next = nil
	b.prev = nil
	b.list = nil
	l.count--
	return true
}
