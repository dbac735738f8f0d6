package shape

// Kind identifies a primitive scalar kind. The constant values are the
// canonical spellings used by TypeRef rendering.
type Kind string

const (
	// KindString is the text kind.
	KindString Kind = "String"

	// KindInt32 is the 32-bit integer kind.
	KindInt32 Kind = "Int32"

	// KindInt is the 64-bit integer kind. Bare "Int" in declarations
	// resolves here.
	KindInt Kind = "Int"

	// KindFloat is the single-precision floating-point kind.
	KindFloat Kind = "Float"

	// KindDouble is the double-precision floating-point kind.
	KindDouble Kind = "Double"

	// KindBool is the boolean kind.
	KindBool Kind = "Bool"

	// KindDate is the timestamp kind.
	KindDate Kind = "Date"

	// KindURL is the resource-locator kind.
	KindURL Kind = "URL"

	// KindUUID is the universally-unique-identifier kind.
	KindUUID Kind = "UUID"
)

// kindSpellings maps accepted declaration spellings to kinds. Lookup happens
// after module qualification has been stripped, so "Foundation.URL" resolves
// through "URL".
var kindSpellings = map[string]Kind{
	"String":    KindString,
	"Text":      KindString,
	"Int":       KindInt,
	"Int64":     KindInt,
	"Int32":     KindInt32,
	"Float":     KindFloat,
	"Float32":   KindFloat,
	"Double":    KindDouble,
	"Float64":   KindDouble,
	"Bool":      KindBool,
	"Boolean":   KindBool,
	"Date":      KindDate,
	"Timestamp": KindDate,
	"URL":       KindURL,
	"UUID":      KindUUID,
}

// KindFromSpelling resolves a primitive spelling to its Kind.
func KindFromSpelling(s string) (Kind, bool) {
	k, ok := kindSpellings[s]
	return k, ok
}

// IsInteger reports whether k is an integer kind.
func (k Kind) IsInteger() bool {
	return k == KindInt || k == KindInt32
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat || k == KindDouble
}

// SupportsIndexed reports whether the primitive catalog defines an
// index-parameterized value for k.
//
// Bool is the only kind without indexed synthesis: a two-value type gains
// nothing from ordinal parameterization. UUID reports true even though its
// indexed generator ignores the ordinal - every call draws a fresh random
// identifier, so uniqueness across a batch is probabilistic only.
func (k Kind) SupportsIndexed() bool {
	return k != KindBool
}
