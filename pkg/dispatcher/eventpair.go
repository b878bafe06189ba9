package dispatcher

// EventPair couples two synchronization events, high and low, used by
// two threads to hand control back and forth. The set-and-wait
// operations signal one event and wait for the other one without
// giving the partner a chance to miss the signal.
type EventPair = *eventPair

type eventPair struct {
	name string
	high Event
	low  Event
}

func (k *kernel) NewEventPair(names ...string) EventPair {
	name := ElementName("eventpair", names...)
	return &eventPair{
		name: name,
		high: k.NewEvent(SynchronizationEvent, false, name, "high"),
		low:  k.NewEvent(SynchronizationEvent, false, name, "low"),
	}
}

func (p *eventPair) Name() string {
	return p.name
}

func (p *eventPair) High() Event {
	return p.high
}

func (p *eventPair) Low() Event {
	return p.low
}

func (p *eventPair) SetHigh() {
	p.high.Set(SignalIncrement)
}

func (p *eventPair) SetLow() {
	p.low.Set(SignalIncrement)
}

func (p *eventPair) WaitHigh(t Thread) WaitStatus {
	return t.WaitForSingleObject(p.high, Infinite)
}

func (p *eventPair) WaitLow(t Thread) WaitStatus {
	return t.WaitForSingleObject(p.low, Infinite)
}

// SetHighWaitLow signals the high event and waits for the low one.
func (p *eventPair) SetHighWaitLow(t Thread) WaitStatus {
	return t.SignalAndWait(p.high, p.low, Infinite)
}

// SetLowWaitHigh signals the low event and waits for the high one.
func (p *eventPair) SetLowWaitHigh(t Thread) WaitStatus {
	return t.SignalAndWait(p.low, p.high, Infinite)
}
