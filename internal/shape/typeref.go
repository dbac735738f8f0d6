package shape

import (
	"fmt"
	"strings"
	"unicode"
)

// TypeRef is a sealed interface describing a normalized declared type.
// Only PrimRef, OptionalRef, SequenceRef, SetRef, MapRef, and NamedRef
// implement it.
//
// Normalization is idempotent: ParseTypeRef(ref.String()) reproduces ref.
type TypeRef interface {
	typeRef() // Sealed - only these types implement it

	// String renders the canonical textual form.
	String() string
}

// PrimRef references a primitive kind.
type PrimRef struct {
	Kind Kind
}

func (PrimRef) typeRef() {}

func (r PrimRef) String() string { return string(r.Kind) }

// OptionalRef wraps another TypeRef as optional. Both the suffix sugar "T?"
// and the generic form "Optional<T>" normalize here; the canonical
// rendering is the suffix form.
type OptionalRef struct {
	Elem TypeRef
}

func (OptionalRef) typeRef() {}

func (r OptionalRef) String() string { return r.Elem.String() + "?" }

// SequenceRef is an ordered homogeneous collection. "[T]" and "Array<T>"
// normalize here; the canonical rendering is the bracket form.
type SequenceRef struct {
	Elem TypeRef
}

func (SequenceRef) typeRef() {}

func (r SequenceRef) String() string { return "[" + r.Elem.String() + "]" }

// SetRef is a unique-element collection.
type SetRef struct {
	Elem TypeRef
}

func (SetRef) typeRef() {}

func (r SetRef) String() string { return "Set<" + r.Elem.String() + ">" }

// MapRef is a key-indexed collection. "[K: V]", "Map<K, V>" and
// "Dictionary<K, V>" normalize here; the canonical rendering is the
// bracket form.
type MapRef struct {
	Key   TypeRef
	Value TypeRef
}

func (MapRef) typeRef() {}

func (r MapRef) String() string { return "[" + r.Key.String() + ": " + r.Value.String() + "]" }

// NamedRef references a nominal user-defined type. Module qualification is
// stripped during normalization ("Models.User" becomes "User").
type NamedRef struct {
	Name string
}

func (NamedRef) typeRef() {}

func (r NamedRef) String() string { return r.Name }

// ParseTypeRef parses a declared-type string into its normalized TypeRef.
//
// Accepted forms: primitive spellings (see KindFromSpelling), "T?",
// "Optional<T>", "[T]", "Array<T>", "Set<T>", "[K: V]", "Map<K, V>",
// "Dictionary<K, V>", bare identifiers, and module-qualified identifiers.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type reference")
	}

	// Optional suffix sugar. The '?' is necessarily top-level when it is
	// the final character: every bracketed form ends in ']' or '>'.
	if strings.HasSuffix(s, "?") {
		inner, err := ParseTypeRef(strings.TrimSuffix(s, "?"))
		if err != nil {
			return nil, err
		}
		return OptionalRef{Elem: inner}, nil
	}

	// Bracket forms: [T] sequence or [K: V] map.
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") || !bracketsBalance(s) {
			return nil, fmt.Errorf("unbalanced brackets in type reference %q", s)
		}
		inner := s[1 : len(s)-1]
		if colon := topLevelIndex(inner, ':'); colon >= 0 {
			key, err := ParseTypeRef(inner[:colon])
			if err != nil {
				return nil, err
			}
			value, err := ParseTypeRef(inner[colon+1:])
			if err != nil {
				return nil, err
			}
			return MapRef{Key: key, Value: value}, nil
		}
		elem, err := ParseTypeRef(inner)
		if err != nil {
			return nil, err
		}
		return SequenceRef{Elem: elem}, nil
	}

	// Generic forms: Set<T>, Array<T>, Optional<T>, Map<K, V>.
	if open := strings.IndexByte(s, '<'); open > 0 {
		if !strings.HasSuffix(s, ">") || !bracketsBalance(s) {
			return nil, fmt.Errorf("unbalanced generic brackets in type reference %q", s)
		}
		head := stripQualification(strings.TrimSpace(s[:open]))
		inner := s[open+1 : len(s)-1]
		switch head {
		case "Optional":
			elem, err := ParseTypeRef(inner)
			if err != nil {
				return nil, err
			}
			return OptionalRef{Elem: elem}, nil
		case "Array":
			elem, err := ParseTypeRef(inner)
			if err != nil {
				return nil, err
			}
			return SequenceRef{Elem: elem}, nil
		case "Set":
			elem, err := ParseTypeRef(inner)
			if err != nil {
				return nil, err
			}
			return SetRef{Elem: elem}, nil
		case "Map", "Dictionary":
			comma := topLevelIndex(inner, ',')
			if comma < 0 {
				return nil, fmt.Errorf("map type %q requires a key and a value", s)
			}
			key, err := ParseTypeRef(inner[:comma])
			if err != nil {
				return nil, err
			}
			value, err := ParseTypeRef(inner[comma+1:])
			if err != nil {
				return nil, err
			}
			return MapRef{Key: key, Value: value}, nil
		default:
			return nil, fmt.Errorf("unsupported generic type %q", s)
		}
	}

	// Plain identifier, possibly module-qualified.
	name := stripQualification(s)
	if k, ok := KindFromSpelling(name); ok {
		return PrimRef{Kind: k}, nil
	}
	if !isIdentifier(name) {
		return nil, fmt.Errorf("invalid type reference %q", s)
	}
	return NamedRef{Name: name}, nil
}

// MustParseTypeRef is ParseTypeRef that panics on error. Test helper.
func MustParseTypeRef(s string) TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// stripQualification drops module qualification, keeping the final path
// segment: "Models.User" -> "User".
func stripQualification(s string) string {
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return s[dot+1:]
	}
	return s
}

// topLevelIndex returns the index of the first occurrence of sep that is
// not nested inside brackets, or -1.
func topLevelIndex(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '<':
			depth++
		case ']', '>':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// bracketsBalance reports whether every '[' / '<' has a matching close and
// the final close is the last character.
func bracketsBalance(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '<':
			depth++
		case ']', '>':
			depth--
			if depth < 0 {
				return false
			}
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// isIdentifier reports whether s is a plausible type identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
