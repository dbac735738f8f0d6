// Package eval resolves synthesis plans into concrete rendered values.
//
// Collection expressions are materialized through the public previewkit
// builders, so the runtime surface the generated code relies on is the same
// one the tool exercises. Nominal references recurse through the registry
// with no cycle protection, matching planning semantics: a self-referential
// declaration recurses unboundedly unless WithMaxDepth is enabled.
package eval
