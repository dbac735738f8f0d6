package planner

import "fmt"

// PlanError represents a planning-time rejection.
//
// Rejections are static properties of the declared shapes - they depend
// only on the declaration registry, never on rendered values - so a type
// either plans fully or fails with one of these before any value is
// produced. No partial plans are emitted.
type PlanError struct {
	// Code identifies the rejection category.
	Code PlanErrorCode

	// Type is the declaration being planned.
	Type string

	// Field is the field whose rule lookup failed, when applicable.
	Field string

	// Message is a human-readable description.
	Message string
}

// PlanErrorCode categorizes planning rejections.
type PlanErrorCode string

const (
	// ErrCodeNoRule indicates a declared type with no reachable synthesis
	// rule and no declared capability.
	ErrCodeNoRule PlanErrorCode = "NO_SYNTHESIS_RULE"

	// ErrCodeUnknownType indicates a nominal reference to a declaration the
	// registry has never seen.
	ErrCodeUnknownType PlanErrorCode = "UNKNOWN_TYPE"

	// ErrCodeCapabilityMismatch indicates a collection whose element or key
	// type lacks the indexed-synthesis capability its cardinality policy
	// requires, or an explicit indexed-synthesis request for a type that
	// cannot derive it.
	ErrCodeCapabilityMismatch PlanErrorCode = "CAPABILITY_MISMATCH"

	// ErrCodeRecursionLimit indicates the opt-in evaluation depth guard
	// fired on a self-referential declaration.
	ErrCodeRecursionLimit PlanErrorCode = "RECURSION_LIMIT"
)

// Error implements the error interface.
func (e *PlanError) Error() string {
	switch {
	case e.Type != "" && e.Field != "":
		return fmt.Sprintf("%s: %s (type=%s, field=%s)", e.Code, e.Message, e.Type, e.Field)
	case e.Type != "":
		return fmt.Sprintf("%s: %s (type=%s)", e.Code, e.Message, e.Type)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}
