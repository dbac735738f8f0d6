// Package harness provides the conformance harness: YAML scenarios that
// scan a declaration set, plan it, render it under a pinned clock and
// counting entropy, and compare the combined snapshot against golden files.
//
// Scenarios validate the synthesis rules end to end - the same path the
// CLI takes - with every non-deterministic source substituted, so golden
// files are stable across runs and machines.
package harness
