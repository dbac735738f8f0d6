package planner

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time to the primitive catalog. Injected so
// tests can pin timestamp synthesis to a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock reports a pinned instant. Used by manifest-pinned renders and
// by every golden test.
type FixedClock struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time { return c.Instant }

// Entropy supplies the randomness the synthesis rules explicitly call for:
// random identifiers and the identifier-heuristic literals. Everything else
// in the core is a pure function of its input shape.
type Entropy interface {
	// NewUUID returns a fresh random identifier.
	NewUUID() uuid.UUID

	// ShortID returns a short unique-looking string, used for text-typed
	// identifier fields.
	ShortID() string

	// IntBetween returns a value in [lo, hi], used for integer-typed
	// identifier fields.
	IntBetween(lo, hi int64) int64
}

// SystemEntropy draws from the process entropy source.
type SystemEntropy struct{}

// NewUUID returns a random RFC 4122 version 4 UUID.
func (SystemEntropy) NewUUID() uuid.UUID { return uuid.New() }

// ShortID returns the first eight hex digits of a fresh UUID.
func (SystemEntropy) ShortID() string { return uuid.NewString()[:8] }

// IntBetween returns a uniform value in [lo, hi].
func (SystemEntropy) IntBetween(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Int63n(hi-lo+1)
}
