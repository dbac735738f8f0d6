// Package planner is the value-synthesis core: given scanned declaration
// shapes it decides, field by field, what placeholder expression to plan.
//
// The decision order is a hard contract, implemented as an explicit ordered
// rule table (see rules.go) so the shadowing between name heuristics and
// type dispatch is visible and testable in isolation:
//
//  1. identifier heuristic - field name contains "id" and the type is text
//     or integer
//  2. image heuristic - field name contains "image" or "icon" and the type
//     is a resource locator
//  3. literal sequence - a sequence of simple primitives becomes a
//     five-element literal array with 1-based display suffixes
//  4. type dispatch - primitives, optionals, collections, nominal types
//
// Note the two indexing conventions: the literal arrays of rule 3 suffix
// from 1, while the general collection expressions enumerate ordinals from
// 0. Recorded snapshots pin both conventions.
//
// Planning is synthesis-time computation: single-threaded, no I/O beyond
// the injected clock and entropy sources, no shared mutable state.
package planner
