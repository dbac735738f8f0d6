package planner

import (
	"fmt"

	"github.com/roach88/previewkit/internal/shape"
)

// Orchestrator drives the field planner over whole declarations and
// assembles plans plus the capability conformances to attach.
type Orchestrator struct {
	registry       *shape.Registry
	planner        *Planner
	requestIndexed map[string]bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithEntropy substitutes the entropy source used for the
// identifier-heuristic literals and random identifiers.
func WithEntropy(e Entropy) Option {
	return func(o *Orchestrator) {
		o.planner = NewPlanner(o.registry, e)
	}
}

// RequestIndexed marks declarations for which IndexedSynthesis has been
// explicitly requested. The core does not auto-derive indexed synthesis for
// product or sum types - only primitives define it directly - so planning a
// requested type fails with a capability mismatch rather than guessing a
// value-at-ordinal rule.
func RequestIndexed(names ...string) Option {
	return func(o *Orchestrator) {
		for _, n := range names {
			o.requestIndexed[n] = true
		}
	}
}

// NewOrchestrator creates an orchestrator over the given registry.
func NewOrchestrator(registry *shape.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:       registry,
		planner:        NewPlanner(registry, SystemEntropy{}),
		requestIndexed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// PlanStruct plans a product-typed declaration: one FieldPlan per
// descriptor, preserving descriptor order, with PlainSynthesis always
// attached to the host type.
func (o *Orchestrator) PlanStruct(d *shape.StructDecl) (*shape.Plan, error) {
	if err := o.checkIndexedRequest(d.Name, shape.DeclStruct); err != nil {
		return nil, err
	}
	plan := &shape.Plan{
		TypeName:     d.Name,
		Kind:         shape.DeclStruct,
		Fields:       make([]shape.FieldPlan, 0, len(d.Fields)),
		Capabilities: []shape.Capability{shape.CapabilityPlain},
	}
	for i, f := range d.Fields {
		expr, err := o.planner.PlanField(f, i)
		if err != nil {
			return nil, attachType(err, d.Name)
		}
		plan.Fields = append(plan.Fields, shape.FieldPlan{Name: f.Name, Expr: expr})
	}
	return plan, nil
}

// PlanEnum plans a sum-typed declaration. A declaration with no selectable
// case yields a plan with a nil Case and no capabilities.
func (o *Orchestrator) PlanEnum(d *shape.EnumDecl) (*shape.Plan, error) {
	if err := o.checkIndexedRequest(d.Name, shape.DeclEnum); err != nil {
		return nil, err
	}
	plan := &shape.Plan{
		TypeName: d.Name,
		Kind:     shape.DeclEnum,
		Case:     PlanEnumShape(d.Shape),
	}
	if plan.Case != nil {
		plan.Capabilities = []shape.Capability{shape.CapabilityPlain}
	}
	return plan, nil
}

// PlanType plans the named declaration, whichever kind it is.
func (o *Orchestrator) PlanType(name string) (*shape.Plan, error) {
	if d, ok := o.registry.Struct(name); ok {
		return o.PlanStruct(d)
	}
	if d, ok := o.registry.Enum(name); ok {
		return o.PlanEnum(d)
	}
	return nil, &PlanError{
		Code:    ErrCodeUnknownType,
		Type:    name,
		Message: fmt.Sprintf("declaration %q is not registered", name),
	}
}

// PlanAll plans every registered declaration in registry order.
func (o *Orchestrator) PlanAll() ([]*shape.Plan, error) {
	plans := make([]*shape.Plan, 0, o.registry.Len())
	for _, name := range o.registry.Names() {
		plan, err := o.PlanType(name)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (o *Orchestrator) checkIndexedRequest(name string, kind shape.DeclKind) error {
	if !o.requestIndexed[name] {
		return nil
	}
	return &PlanError{
		Code:    ErrCodeCapabilityMismatch,
		Type:    name,
		Message: fmt.Sprintf("indexed synthesis is not derivable for %s types", kind),
	}
}

// attachType fills the Type field on a PlanError bubbling out of field
// planning.
func attachType(err error, typeName string) error {
	if pe, ok := err.(*PlanError); ok && pe.Type == "" {
		pe.Type = typeName
	}
	return err
}
