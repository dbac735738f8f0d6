package planner

import "github.com/roach88/previewkit/internal/shape"

// PlanEnumShape selects the representative case for a sum-typed
// declaration.
//
// Preference order: the enumerable-cases capability if the declaration has
// it (first element of the enumerated list), else the first case in
// declaration order with no associated data, else nothing - a nil return
// means no member is emitted for this declaration, and the type simply
// fails to gain PlainSynthesis. A deliberate no-op rather than a guess.
func PlanEnumShape(s shape.EnumShape) shape.Expr {
	if s.HasEnumerableCapability {
		return shape.FirstCaseExpr{}
	}
	for _, c := range s.Cases {
		if !c.HasAssociatedData {
			return shape.CaseExpr{Case: c.Name}
		}
	}
	return nil
}
