package previewkit

// SequenceOf builds an ordered slice by invoking plain count times.
// Duplicates are allowed - every element equals the single representative
// value unless the caller supplies per-call variation.
//
// count <= 0 yields an empty (non-nil) slice.
func SequenceOf[V any](plain func() V, count int) []V {
	if count <= 0 {
		return []V{}
	}
	out := make([]V, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, plain())
	}
	return out
}

// UniqueSetOf builds a set from indexed(0), indexed(1), ..., indexed(count-1).
//
// Injectivity of the generator is a caller contract: a non-injective
// generator is silently de-duplicated, so the resulting set may be smaller
// than count. count <= 0 yields an empty set.
func UniqueSetOf[E comparable](indexed func(ordinal int) E, count int) map[E]struct{} {
	out := make(map[E]struct{}, max(count, 0))
	for i := 0; i < count; i++ {
		out[indexed(i)] = struct{}{}
	}
	return out
}

// MapOf builds a map of count pairs (indexed(i), plain()) for i in 0..count-1.
// The key generator carries the uniqueness burden; values all equal the
// single representative value. count <= 0 yields an empty map.
func MapOf[K comparable, V any](indexed func(ordinal int) K, plain func() V, count int) map[K]V {
	out := make(map[K]V, max(count, 0))
	for i := 0; i < count; i++ {
		out[indexed(i)] = plain()
	}
	return out
}

// SequenceFrom is SequenceOf over a PlainSource.
func SequenceFrom[V any](src PlainSource[V], count int) []V {
	return SequenceOf(src.PreviewValue, count)
}

// UniqueSetFrom is UniqueSetOf over an IndexedSource. The generic bound is
// the capability check: element types without indexed synthesis do not
// type-check here.
func UniqueSetFrom[E comparable](src IndexedSource[E], count int) map[E]struct{} {
	return UniqueSetOf(src.PreviewValueAt, count)
}

// MapFrom is MapOf over an IndexedSource for keys and a PlainSource for
// values.
func MapFrom[K comparable, V any](keys IndexedSource[K], values PlainSource[V], count int) map[K]V {
	return MapOf(keys.PreviewValueAt, values.PreviewValue, count)
}
