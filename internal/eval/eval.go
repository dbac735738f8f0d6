package eval

import (
	"fmt"

	"github.com/roach88/previewkit"
	"github.com/roach88/previewkit/internal/planner"
	"github.com/roach88/previewkit/internal/shape"
)

// Evaluator renders plans against a declaration registry and a primitive
// catalog.
type Evaluator struct {
	registry *shape.Registry
	plans    map[string]*shape.Plan
	catalog  *planner.PrimitiveCatalog

	// counts holds per-type collection count overrides; count, when set
	// (>= 0), overrides everything. Zero is a valid override - it renders
	// empty collections.
	counts map[string]int
	count  int

	// maxDepth is the opt-in recursion guard. Zero means unlimited - the
	// faithful default, under which a self-referential declaration
	// exhausts the stack.
	maxDepth int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCounts sets per-type collection count overrides, keyed by the
// declaration whose plan contains the collection.
func WithCounts(counts map[string]int) Option {
	return func(ev *Evaluator) { ev.counts = counts }
}

// WithCount overrides every collection count. Zero renders empty
// collections.
func WithCount(n int) Option {
	return func(ev *Evaluator) {
		if n >= 0 {
			ev.count = n
		}
	}
}

// WithMaxDepth enables the fail-fast recursion guard. It changes no
// passing-case output: plans that resolve within n nominal hops render
// exactly as they would unguarded, and deeper ones fail with
// RECURSION_LIMIT instead of exhausting the stack.
func WithMaxDepth(n int) Option {
	return func(ev *Evaluator) { ev.maxDepth = n }
}

// New creates an evaluator over the given registry, plans, and catalog.
func New(registry *shape.Registry, plans []*shape.Plan, catalog *planner.PrimitiveCatalog, opts ...Option) *Evaluator {
	ev := &Evaluator{
		registry: registry,
		plans:    make(map[string]*shape.Plan, len(plans)),
		catalog:  catalog,
		count:    -1,
	}
	for _, p := range plans {
		ev.plans[p.TypeName] = p
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Rendered pairs a declaration name with its rendered value.
type Rendered struct {
	TypeName string
	Value    shape.Value
}

// Render resolves the plan for typeName into a concrete value.
func (ev *Evaluator) Render(typeName string) (shape.Value, error) {
	return ev.render(typeName, 0)
}

// RenderAll renders every planned declaration in registry order.
func (ev *Evaluator) RenderAll() ([]Rendered, error) {
	out := make([]Rendered, 0, len(ev.plans))
	for _, name := range ev.registry.Names() {
		if _, ok := ev.plans[name]; !ok {
			continue
		}
		v, err := ev.Render(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Rendered{TypeName: name, Value: v})
	}
	return out, nil
}

func (ev *Evaluator) render(typeName string, depth int) (shape.Value, error) {
	if err := ev.checkDepth(typeName, depth); err != nil {
		return nil, err
	}
	plan, ok := ev.plans[typeName]
	if !ok {
		return nil, &planner.PlanError{
			Code:    planner.ErrCodeUnknownType,
			Type:    typeName,
			Message: "no plan for declaration",
		}
	}

	if plan.Kind == shape.DeclEnum {
		return ev.renderEnum(plan, typeName)
	}

	obj := shape.ValueObject{TypeName: typeName, Fields: make([]shape.ValueField, 0, len(plan.Fields))}
	for _, f := range plan.Fields {
		v, err := ev.evalExpr(f.Expr, typeName, depth)
		if err != nil {
			return nil, fmt.Errorf("render %s.%s: %w", typeName, f.Name, err)
		}
		obj.Fields = append(obj.Fields, shape.ValueField{Name: f.Name, Value: v})
	}
	return obj, nil
}

func (ev *Evaluator) renderEnum(plan *shape.Plan, typeName string) (shape.Value, error) {
	if plan.Case == nil {
		return nil, &planner.PlanError{
			Code:    planner.ErrCodeNoRule,
			Type:    typeName,
			Message: "declaration has no selectable case and no synthesis capability",
		}
	}
	switch c := plan.Case.(type) {
	case shape.CaseExpr:
		return shape.ValueCase{TypeName: typeName, Case: c.Case}, nil
	case shape.FirstCaseExpr:
		decl, ok := ev.registry.Enum(typeName)
		if !ok || len(decl.Shape.Cases) == 0 {
			return nil, &planner.PlanError{
				Code:    planner.ErrCodeNoRule,
				Type:    typeName,
				Message: "enumerable declaration has no cases",
			}
		}
		return shape.ValueCase{TypeName: typeName, Case: decl.Shape.Cases[0].Name}, nil
	default:
		return nil, fmt.Errorf("render %s: unexpected case expression %T", typeName, plan.Case)
	}
}

// evalExpr resolves one planned expression. hostType names the declaration
// whose plan the expression came from, for count overrides and diagnostics.
func (ev *Evaluator) evalExpr(e shape.Expr, hostType string, depth int) (shape.Value, error) {
	switch expr := e.(type) {
	case shape.StringLit:
		return shape.ValueString(expr), nil
	case shape.IntLit:
		return shape.ValueInt(expr), nil
	case shape.FloatLit:
		return shape.ValueFloat(expr), nil
	case shape.BoolLit:
		return shape.ValueBool(expr), nil
	case shape.URLLit:
		return shape.ValueURL(expr), nil
	case shape.ArrayLit:
		elems := make([]shape.Value, 0, len(expr))
		for i, el := range expr {
			v, err := ev.evalExpr(el, hostType, depth)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			elems = append(elems, v)
		}
		return shape.ValueArray(elems), nil

	case shape.PrimitiveExpr:
		return ev.catalog.Plain(expr.Kind), nil

	case shape.SequenceExpr:
		return ev.renderSequence(expr.Elem, ev.countFor(hostType, expr.Count), hostType, depth)

	case shape.UniqueSetExpr:
		return ev.renderSet(expr.Elem, ev.countFor(hostType, expr.Count), hostType)

	case shape.MapExpr:
		return ev.renderMap(expr.Key, expr.Value, ev.countFor(hostType, expr.Count), hostType, depth)

	case shape.PreviewRef:
		return ev.render(expr.TypeName, depth+1)

	default:
		return nil, fmt.Errorf("unexpected expression %T", e)
	}
}

// renderSequence invokes the plain generator count times, duplicates
// allowed - all elements equal the representative value except for the
// non-deterministic primitives.
func (ev *Evaluator) renderSequence(elem shape.TypeRef, count int, hostType string, depth int) (shape.Value, error) {
	var firstErr error
	elems := previewkit.SequenceOf(func() shape.Value {
		v, err := ev.renderPlainType(elem, hostType, depth)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}, count)
	if firstErr != nil {
		return nil, firstErr
	}
	return shape.ValueArray(elems), nil
}

// renderSet collects indexed values at ordinals 0..count-1. Planning has
// already confirmed the element is an indexed primitive.
func (ev *Evaluator) renderSet(elem shape.TypeRef, count int, hostType string) (shape.Value, error) {
	prim, ok := elem.(shape.PrimRef)
	if !ok {
		return nil, ev.capabilityMismatch(hostType, elem)
	}
	var firstErr error
	set := previewkit.UniqueSetOf(func(i int) shape.Value {
		v, err := ev.renderIndexedKind(prim.Kind, i, hostType)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}, count)
	if firstErr != nil {
		return nil, firstErr
	}
	elems := make([]shape.Value, 0, len(set))
	for v := range set {
		elems = append(elems, v)
	}
	return shape.NewValueSet(elems), nil
}

// renderMap builds count (indexed key, plain value) pairs.
func (ev *Evaluator) renderMap(key, value shape.TypeRef, count int, hostType string, depth int) (shape.Value, error) {
	prim, ok := key.(shape.PrimRef)
	if !ok {
		return nil, ev.capabilityMismatch(hostType, key)
	}
	var firstErr error
	pairs := previewkit.MapOf(
		func(i int) shape.Value {
			k, err := ev.renderIndexedKind(prim.Kind, i, hostType)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			return k
		},
		func() shape.Value {
			v, err := ev.renderPlainType(value, hostType, depth)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			return v
		},
		count,
	)
	if firstErr != nil {
		return nil, firstErr
	}
	entries := make([]shape.MapEntry, 0, len(pairs))
	for k, v := range pairs {
		entries = append(entries, shape.MapEntry{Key: k, Value: v})
	}
	return shape.NewValueMap(entries), nil
}

// renderPlainType produces the representative value of a type reference.
func (ev *Evaluator) renderPlainType(t shape.TypeRef, hostType string, depth int) (shape.Value, error) {
	switch ref := t.(type) {
	case shape.PrimRef:
		return ev.catalog.Plain(ref.Kind), nil
	case shape.OptionalRef:
		// Optionals are always populated.
		return ev.renderPlainType(ref.Elem, hostType, depth)
	case shape.SequenceRef:
		return ev.renderSequence(ref.Elem, previewkit.DefaultSequenceCount, hostType, depth)
	case shape.SetRef:
		return ev.renderSet(ref.Elem, previewkit.DefaultSetCount, hostType)
	case shape.MapRef:
		return ev.renderMap(ref.Key, ref.Value, previewkit.DefaultMapCount, hostType, depth)
	case shape.NamedRef:
		return ev.render(ref.Name, depth+1)
	default:
		return nil, fmt.Errorf("unexpected type reference %T", t)
	}
}

func (ev *Evaluator) renderIndexedKind(k shape.Kind, ordinal int, hostType string) (shape.Value, error) {
	v, ok := ev.catalog.Indexed(k, ordinal)
	if !ok {
		return nil, &planner.PlanError{
			Code:    planner.ErrCodeCapabilityMismatch,
			Type:    hostType,
			Message: fmt.Sprintf("primitive %s does not support indexed synthesis", k),
		}
	}
	return v, nil
}

func (ev *Evaluator) capabilityMismatch(hostType string, t shape.TypeRef) error {
	return &planner.PlanError{
		Code:    planner.ErrCodeCapabilityMismatch,
		Type:    hostType,
		Message: fmt.Sprintf("type %s does not support indexed synthesis", t),
	}
}

// countFor resolves the effective collection count for a plan hosted by
// hostType.
func (ev *Evaluator) countFor(hostType string, planned int) int {
	if ev.count >= 0 {
		return ev.count
	}
	if n, ok := ev.counts[hostType]; ok {
		return n
	}
	return planned
}

func (ev *Evaluator) checkDepth(typeName string, depth int) error {
	if ev.maxDepth > 0 && depth > ev.maxDepth {
		return &planner.PlanError{
			Code:    planner.ErrCodeRecursionLimit,
			Type:    typeName,
			Message: fmt.Sprintf("nominal recursion exceeded depth %d; declaration shape is likely self-referential", ev.maxDepth),
		}
	}
	return nil
}
