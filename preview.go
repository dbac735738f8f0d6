package previewkit

// PlainSource is the plain-synthesis capability: one representative value.
type PlainSource[T any] interface {
	// PreviewValue returns the canonical example instance of T.
	PreviewValue() T
}

// IndexedSource is the indexed-synthesis capability: a value deterministically
// parameterized by a zero-based ordinal.
//
// Implementations are expected (but not required) to be injective in the
// ordinal. The one deliberate exception in the primitive catalog is the
// random-identifier kind, whose indexed form ignores the ordinal entirely -
// uniqueness across a batch of identifiers is probabilistic, not guaranteed.
type IndexedSource[T any] interface {
	// PreviewValueAt returns the example instance at the given ordinal.
	// PreviewValueAt(0) is conventionally the same as PreviewValue.
	PreviewValueAt(ordinal int) T
}

// Default cardinalities for the collection builders.
const (
	DefaultSequenceCount = 5
	DefaultSetCount      = 5
	DefaultMapCount      = 3
)
