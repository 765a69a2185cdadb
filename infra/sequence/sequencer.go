package sequence

import "sync/atomic"

// Sequencer issues strictly monotonic sequence numbers for the
// outbound event stream.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer whose first Next call returns start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence number.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
