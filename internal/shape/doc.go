// Package shape provides the foundational data model for previewkit.
//
// This package contains the scanner-facing declaration types
// (FieldDescriptor, EnumShape, Registry), the normalized type-reference
// model (TypeRef), the planner output model (Expr, Plan), and the runtime
// value model (Value) with canonical serialization and content hashing.
//
// All other internal packages import shape; shape imports nothing internal.
// This keeps it the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - TypeRef, Expr and Value are sealed interfaces - the closed set of
//     implementations is the whole point; exhaustive type switches are safe.
//   - All scanner-produced data is transient: computed once, consumed once
//     during a single synthesis pass, never mutated.
//   - Canonical serialization (RFC 8785 key order, NFC strings) is the only
//     form used for content-addressed identity.
package shape
