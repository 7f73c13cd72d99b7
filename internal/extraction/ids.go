package extraction

import (
	"sync/atomic"
	"time"
)

// IDGenerator issues receipt identifiers.
type IDGenerator interface {
	Next() int64
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the wall clock.
var SystemClock TimeSource = systemClock{}

// Sequence derives ids from the clock in microseconds. When two calls land
// on the same tick, or the clock steps backwards, the id is bumped to one
// past the last issued value. Safe for concurrent use.
type Sequence struct {
	clock TimeSource
	last  atomic.Int64
}

// NewSequence returns a Sequence reading the wall clock.
func NewSequence() *Sequence {
	return NewSequenceWithClock(SystemClock)
}

// NewSequenceWithClock returns a Sequence reading clock.
func NewSequenceWithClock(clock TimeSource) *Sequence {
	return &Sequence{clock: clock}
}

// Next returns an id strictly greater than every id returned before it.
func (s *Sequence) Next() int64 {
	for {
		prev := s.last.Load()
		next := s.clock.Now().UnixMicro()
		if next <= prev {
			next = prev + 1
		}
		if s.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}
