package interaction

// Signal records a transition at the moment it was detected.
type Signal struct {
	Region *Region
	Probe  *Probe
	Enter  bool
}

// Event returns the name the region declared for this transition, or ""
// when the region does not listen for it.
func (s Signal) Event() string {
	if s.Enter {
		return s.Region.enterEvent
	}
	return s.Region.exitEvent
}

// Listener returns the region's fixed target, else the probe's.
func (s Signal) Listener() Listener {
	if s.Region.target != nil {
		return s.Region.target
	}
	return s.Probe.target
}

// signalQueue is a FIFO of pending signals.
type signalQueue struct {
	items []Signal
	spare []Signal
}

func (q *signalQueue) push(s Signal) {
	q.items = append(q.items, s)
}

// drain returns every queued signal and empties the queue. The returned
// slice stays valid until the next drain.
func (q *signalQueue) drain() []Signal {
	out := q.items
	q.items = q.spare[:0]
	q.spare = out
	return out
}

func (q *signalQueue) len() int {
	return len(q.items)
}

func (q *signalQueue) reset() {
	clear(q.items)
	q.items = q.items[:0]
}
