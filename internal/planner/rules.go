package planner

import (
	"fmt"
	"strings"

	"github.com/roach88/previewkit"
	"github.com/roach88/previewkit/internal/shape"
)

// Bounds for the identifier-heuristic integer literal.
const (
	idHeuristicMin = 1000
	idHeuristicMax = 1000000
)

// Planner decides the value expression for a single field. It consults the
// registry for nominal references and the entropy source for the
// identifier-heuristic literals; it holds no other state.
type Planner struct {
	registry *shape.Registry
	entropy  Entropy
}

// NewPlanner creates a field planner over the given registry.
func NewPlanner(registry *shape.Registry, entropy Entropy) *Planner {
	return &Planner{registry: registry, entropy: entropy}
}

// fieldRule is one entry of the ordered rule table. First match wins;
// heuristics shadow type dispatch by position alone.
type fieldRule struct {
	name  string
	match func(p *Planner, f shape.FieldDescriptor) bool
	plan  func(p *Planner, f shape.FieldDescriptor) (shape.Expr, error)
}

// fieldRules is the decision table. The final entry matches every field,
// so rule lookup always terminates in a plan or a PlanError.
var fieldRules = []fieldRule{
	{
		name:  "identifier-heuristic",
		match: matchIdentifierHeuristic,
		plan:  planIdentifierHeuristic,
	},
	{
		name:  "image-heuristic",
		match: matchImageHeuristic,
		plan:  planImageHeuristic,
	},
	{
		name:  "primitive-sequence-literal",
		match: matchPrimitiveSequence,
		plan:  planPrimitiveSequence,
	},
	{
		name:  "type-dispatch",
		match: func(*Planner, shape.FieldDescriptor) bool { return true },
		plan: func(p *Planner, f shape.FieldDescriptor) (shape.Expr, error) {
			return p.dispatchType(f.Name, f.DeclaredType)
		},
	},
}

// PlanField plans the value expression for one field.
//
// position is the field's zero-based position among its siblings. No
// current rule consults it - the 1..5 suffixes of the literal-sequence rule
// are element positions, not field positions - but the orchestrator passes
// it through as part of the planning contract.
func (p *Planner) PlanField(f shape.FieldDescriptor, position int) (shape.Expr, error) {
	_ = position
	for _, r := range fieldRules {
		if r.match(p, f) {
			return r.plan(p, f)
		}
	}
	// Unreachable: the type-dispatch rule matches everything.
	return nil, &PlanError{Code: ErrCodeNoRule, Field: f.Name, Message: "no rule matched"}
}

// RuleNames exposes the table order for tests and diagnostics.
func RuleNames() []string {
	names := make([]string, len(fieldRules))
	for i, r := range fieldRules {
		names[i] = r.name
	}
	return names
}

// matchIdentifierHeuristic: name contains "id" (case-insensitive substring,
// so "valid" matches too) and the declared type is text or integer.
func matchIdentifierHeuristic(_ *Planner, f shape.FieldDescriptor) bool {
	if !containsFold(f.Name, "id") {
		return false
	}
	prim, ok := f.DeclaredType.(shape.PrimRef)
	if !ok {
		return false
	}
	return prim.Kind == shape.KindString || prim.Kind.IsInteger()
}

// planIdentifierHeuristic emits a randomly drawn unique-looking literal,
// bypassing the type-driven path entirely.
func planIdentifierHeuristic(p *Planner, f shape.FieldDescriptor) (shape.Expr, error) {
	prim := f.DeclaredType.(shape.PrimRef)
	if prim.Kind == shape.KindString {
		return shape.StringLit(p.entropy.ShortID()), nil
	}
	return shape.IntLit(p.entropy.IntBetween(idHeuristicMin, idHeuristicMax)), nil
}

// matchImageHeuristic: name contains "image" or "icon" and the declared
// type is a resource locator.
func matchImageHeuristic(_ *Planner, f shape.FieldDescriptor) bool {
	if !containsFold(f.Name, "image") && !containsFold(f.Name, "icon") {
		return false
	}
	prim, ok := f.DeclaredType.(shape.PrimRef)
	return ok && prim.Kind == shape.KindURL
}

func planImageHeuristic(*Planner, shape.FieldDescriptor) (shape.Expr, error) {
	return shape.URLLit(PlaceholderImageURL), nil
}

// literalSequenceKinds are the element kinds eligible for the five-element
// literal shortcut. Timestamps and identifiers are deliberately absent;
// sequences of those take the generic collection path.
var literalSequenceKinds = map[shape.Kind]bool{
	shape.KindString: true,
	shape.KindInt:    true,
	shape.KindInt32:  true,
	shape.KindFloat:  true,
	shape.KindDouble: true,
	shape.KindBool:   true,
	shape.KindURL:    true,
}

func matchPrimitiveSequence(_ *Planner, f shape.FieldDescriptor) bool {
	seq, ok := f.DeclaredType.(shape.SequenceRef)
	if !ok {
		return false
	}
	prim, ok := seq.Elem.(shape.PrimRef)
	return ok && literalSequenceKinds[prim.Kind]
}

// planPrimitiveSequence emits a literal five-element array. Elements are
// suffixed 1..5, not the 0-based ordinals used by the general collection
// expressions. Compatibility pins both conventions.
func planPrimitiveSequence(_ *Planner, f shape.FieldDescriptor) (shape.Expr, error) {
	prim := f.DeclaredType.(shape.SequenceRef).Elem.(shape.PrimRef)
	elems := make(shape.ArrayLit, 0, previewkit.DefaultSequenceCount)
	for i := 1; i <= previewkit.DefaultSequenceCount; i++ {
		switch {
		case prim.Kind == shape.KindString:
			elems = append(elems, shape.StringLit(fmt.Sprintf("%s_%d", f.Name, i)))
		case prim.Kind.IsInteger():
			elems = append(elems, shape.IntLit(int64(i)))
		case prim.Kind.IsFloat():
			elems = append(elems, shape.FloatLit(float64(i)))
		case prim.Kind == shape.KindBool:
			elems = append(elems, shape.BoolLit(i%2 == 1))
		case prim.Kind == shape.KindURL:
			elems = append(elems, shape.URLLit(fmt.Sprintf("%s/%d", PlaceholderURL, i)))
		}
	}
	return elems, nil
}

// dispatchType plans purely on the normalized declared type. Name
// heuristics never re-apply below this point: an optional unwraps back into
// dispatch, not into the full rule table.
func (p *Planner) dispatchType(fieldName string, t shape.TypeRef) (shape.Expr, error) {
	switch ref := t.(type) {
	case shape.PrimRef:
		// Text fields carry their own name as the placeholder, not the
		// generic catalog value.
		if ref.Kind == shape.KindString {
			return shape.StringLit(fieldName), nil
		}
		return shape.PrimitiveExpr{Kind: ref.Kind}, nil

	case shape.OptionalRef:
		// Optionals are always populated: plan the inner type directly.
		return p.dispatchType(fieldName, ref.Elem)

	case shape.SequenceRef:
		if err := p.ensurePlain(fieldName, ref.Elem); err != nil {
			return nil, err
		}
		return shape.SequenceExpr{Elem: ref.Elem, Count: previewkit.DefaultSequenceCount}, nil

	case shape.SetRef:
		if err := p.ensureIndexed(fieldName, ref.Elem); err != nil {
			return nil, err
		}
		return shape.UniqueSetExpr{Elem: ref.Elem, Count: previewkit.DefaultSetCount}, nil

	case shape.MapRef:
		if err := p.ensureIndexed(fieldName, ref.Key); err != nil {
			return nil, err
		}
		if err := p.ensurePlain(fieldName, ref.Value); err != nil {
			return nil, err
		}
		return shape.MapExpr{Key: ref.Key, Value: ref.Value, Count: previewkit.DefaultMapCount}, nil

	case shape.NamedRef:
		if !p.registry.Has(ref.Name) {
			return nil, &PlanError{
				Code:    ErrCodeUnknownType,
				Field:   fieldName,
				Message: fmt.Sprintf("nominal type %q is not declared", ref.Name),
			}
		}
		return shape.PreviewRef{TypeName: ref.Name}, nil

	default:
		return nil, &PlanError{
			Code:    ErrCodeNoRule,
			Field:   fieldName,
			Message: fmt.Sprintf("no synthesis rule for type %s", t),
		}
	}
}

// ensurePlain checks that t can produce a representative value at all.
func (p *Planner) ensurePlain(fieldName string, t shape.TypeRef) error {
	switch ref := t.(type) {
	case shape.PrimRef:
		return nil
	case shape.OptionalRef:
		return p.ensurePlain(fieldName, ref.Elem)
	case shape.SequenceRef:
		return p.ensurePlain(fieldName, ref.Elem)
	case shape.SetRef:
		return p.ensureIndexed(fieldName, ref.Elem)
	case shape.MapRef:
		if err := p.ensureIndexed(fieldName, ref.Key); err != nil {
			return err
		}
		return p.ensurePlain(fieldName, ref.Value)
	case shape.NamedRef:
		if !p.registry.Has(ref.Name) {
			return &PlanError{
				Code:    ErrCodeUnknownType,
				Field:   fieldName,
				Message: fmt.Sprintf("nominal type %q is not declared", ref.Name),
			}
		}
		return nil
	default:
		return &PlanError{
			Code:    ErrCodeNoRule,
			Field:   fieldName,
			Message: fmt.Sprintf("no synthesis rule for type %s", t),
		}
	}
}

// ensureIndexed checks the indexed-synthesis capability. Only primitives
// define it directly; the core never auto-derives it for collections or
// nominal types, so those are capability mismatches by construction.
func (p *Planner) ensureIndexed(fieldName string, t shape.TypeRef) error {
	prim, ok := t.(shape.PrimRef)
	if !ok {
		return &PlanError{
			Code:    ErrCodeCapabilityMismatch,
			Field:   fieldName,
			Message: fmt.Sprintf("type %s does not support indexed synthesis", t),
		}
	}
	if !prim.Kind.SupportsIndexed() {
		return &PlanError{
			Code:    ErrCodeCapabilityMismatch,
			Field:   fieldName,
			Message: fmt.Sprintf("primitive %s does not support indexed synthesis", prim.Kind),
		}
	}
	return nil
}

// containsFold reports whether s contains substr ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
