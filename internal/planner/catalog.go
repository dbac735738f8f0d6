package planner

import (
	"fmt"
	"time"

	"github.com/roach88/previewkit/internal/shape"
)

// Placeholder literals of the primitive catalog. Golden tests pin these
// exact values; changing any of them breaks every recorded snapshot.
const (
	// PlaceholderText is the plain text value; indexed text appends
	// "_{ordinal}".
	PlaceholderText = "previewValue"

	// PlaceholderURL is the plain resource locator; indexed locators append
	// "/{ordinal}".
	PlaceholderURL = "https://www.example.com"

	// PlaceholderImageURL is the image-heuristic locator, deliberately
	// distinct from PlaceholderURL.
	PlaceholderImageURL = "https://www.example.com/image.png"
)

// secondsPerDay spaces indexed timestamps one day apart.
const secondsPerDay = 86400

// PrimitiveCatalog maps primitive kinds to baseline values and, for kinds
// that support it, index-parameterized unique values.
//
// Timestamp and identifier synthesis read the injected clock and entropy
// sources; every other kind is pure. There are no error conditions: every
// supported kind always produces a value, and unsupported shapes are
// rejected during planning, never here.
type PrimitiveCatalog struct {
	clock   Clock
	entropy Entropy
}

// NewPrimitiveCatalog creates a catalog over the given time and entropy
// sources. Pass SystemClock/SystemEntropy outside of tests.
func NewPrimitiveCatalog(clock Clock, entropy Entropy) *PrimitiveCatalog {
	return &PrimitiveCatalog{clock: clock, entropy: entropy}
}

// Plain returns the baseline value for k.
func (c *PrimitiveCatalog) Plain(k shape.Kind) shape.Value {
	switch k {
	case shape.KindString:
		return shape.ValueString(PlaceholderText)
	case shape.KindInt, shape.KindInt32:
		return shape.ValueInt(0)
	case shape.KindFloat, shape.KindDouble:
		return shape.ValueFloat(0)
	case shape.KindBool:
		return shape.ValueBool(true)
	case shape.KindDate:
		return shape.ValueTime(c.clock.Now())
	case shape.KindURL:
		return shape.ValueURL(PlaceholderURL)
	case shape.KindUUID:
		return shape.ValueUUID(c.entropy.NewUUID().String())
	default:
		// The sealed Kind set makes this unreachable from planned input.
		return shape.ValueString(PlaceholderText)
	}
}

// Indexed returns the value at the given zero-based ordinal, or false if k
// has no indexed synthesis (only Bool).
//
// UUID is the one non-injective kind: the ordinal is ignored and a fresh
// random identifier is drawn on every call, so uniqueness within a batch is
// probabilistic rather than guaranteed.
func (c *PrimitiveCatalog) Indexed(k shape.Kind, ordinal int) (shape.Value, bool) {
	switch k {
	case shape.KindString:
		return shape.ValueString(fmt.Sprintf("%s_%d", PlaceholderText, ordinal)), true
	case shape.KindInt, shape.KindInt32:
		return shape.ValueInt(int64(ordinal)), true
	case shape.KindFloat, shape.KindDouble:
		return shape.ValueFloat(float64(ordinal)), true
	case shape.KindBool:
		return nil, false
	case shape.KindDate:
		now := c.clock.Now()
		return shape.ValueTime(now.Add(time.Duration(ordinal) * secondsPerDay * time.Second)), true
	case shape.KindURL:
		return shape.ValueURL(fmt.Sprintf("%s/%d", PlaceholderURL, ordinal)), true
	case shape.KindUUID:
		return shape.ValueUUID(c.entropy.NewUUID().String()), true
	default:
		return nil, false
	}
}
