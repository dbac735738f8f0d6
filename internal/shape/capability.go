package shape

// Capability identifies a synthesis capability a type declares.
//
// The two capabilities are tracked independently. IndexedSynthesis implies a
// plain value is derivable (the value at ordinal 0), but a type can declare
// PlainSynthesis alone - a boolean has only two possible values and gains
// nothing from indexing.
type Capability string

const (
	// CapabilityPlain produces one representative value of a type.
	CapabilityPlain Capability = "PlainSynthesis"

	// CapabilityIndexed produces a value deterministically parameterized by
	// a zero-based ordinal, used for uniqueness within a batch.
	CapabilityIndexed Capability = "IndexedSynthesis"
)
