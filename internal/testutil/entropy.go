package testutil

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// CountingEntropy is a deterministic stand-in for planner.SystemEntropy.
//
// Instead of seeding a PRNG it derives every draw from a monotonic counter,
// so expected values can be written down by hand: the first ShortID is
// "id00000001", the first IntBetween(1000, 1000000) is 1001, the first UUID
// ends in ...000000000001.
//
// Thread-safety: all methods are safe for concurrent use via an internal
// mutex, and Reset enables test reuse.
type CountingEntropy struct {
	mu sync.Mutex
	n  uint64
}

// NewCountingEntropy creates a counter starting at 0; the first draw
// observes 1.
func NewCountingEntropy() *CountingEntropy {
	return &CountingEntropy{}
}

func (e *CountingEntropy) next() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.n++
	return e.n
}

// NewUUID returns a UUID whose final eight bytes hold the counter.
func (e *CountingEntropy) NewUUID() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], e.next())
	return id
}

// ShortID returns "id" followed by the counter in eight hex digits.
func (e *CountingEntropy) ShortID() string {
	return fmt.Sprintf("id%08x", e.next())
}

// IntBetween returns lo + counter, wrapped into [lo, hi].
func (e *CountingEntropy) IntBetween(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo + 1)
	return lo + int64(e.next()%span)
}

// Reset rewinds the counter to 0 for test reuse.
func (e *CountingEntropy) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.n = 0
}
