// Package previewkit is the runtime surface consumed by code that uses
// generated placeholder values.
//
// The package defines the two synthesis capabilities as separate
// abstractions:
//
//   - PlainSource produces one representative value of a type.
//   - IndexedSource produces a value parameterized by a zero-based ordinal,
//     used to guarantee uniqueness within a batch.
//
// A type may implement neither, either, or both. The collection builders
// that require uniqueness (UniqueSetFrom, MapFrom) are generically
// constrained on IndexedSource, so requesting unique synthesis for a type
// without it is a compile error, never a runtime failure.
//
// The planner and evaluator under internal/ produce and resolve synthesis
// plans; this package carries only what consumers of the rendered values
// need at runtime.
package previewkit
