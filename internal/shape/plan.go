package shape

import (
	"encoding/json"
	"fmt"
)

// DeclKind distinguishes product- and sum-typed plans.
type DeclKind string

const (
	// DeclStruct marks a plan for a product-typed declaration.
	DeclStruct DeclKind = "struct"

	// DeclEnum marks a plan for a sum-typed declaration.
	DeclEnum DeclKind = "enum"
)

// FieldPlan pairs one field name with its planned value expression.
type FieldPlan struct {
	Name string
	Expr Expr
}

// Plan is the ordered synthesis plan for one declaration.
//
// For a product type, Fields covers every FieldDescriptor exactly once in
// descriptor order and Case is nil. For a sum type, Fields is empty and
// Case holds the selected case expression - or nil when no case could be
// selected, in which case Capabilities is empty and the declaration gains
// no synthesis capability at all.
type Plan struct {
	TypeName     string
	Kind         DeclKind
	Fields       []FieldPlan
	Case         Expr
	Capabilities []Capability
}

// planEnvelope fixes the JSON field order for deterministic output.
type planEnvelope struct {
	Type         string            `json:"type"`
	Kind         DeclKind          `json:"kind"`
	Fields       []json.RawMessage `json:"fields,omitempty"`
	Case         json.RawMessage   `json:"case,omitempty"`
	Capabilities []Capability      `json:"capabilities"`
}

// MarshalJSON serializes the plan in a stable, ordered form. The same bytes
// feed PlanID, so any change here changes every plan hash.
func (p *Plan) MarshalJSON() ([]byte, error) {
	env := planEnvelope{
		Type:         p.TypeName,
		Kind:         p.Kind,
		Capabilities: p.Capabilities,
	}
	if env.Capabilities == nil {
		env.Capabilities = []Capability{}
	}
	for _, f := range p.Fields {
		fb, err := MarshalExpr(f.Expr)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		pair, err := json.Marshal(struct {
			Name string          `json:"name"`
			Expr json.RawMessage `json:"expr"`
		}{Name: f.Name, Expr: fb})
		if err != nil {
			return nil, err
		}
		env.Fields = append(env.Fields, pair)
	}
	if p.Case != nil {
		cb, err := MarshalExpr(p.Case)
		if err != nil {
			return nil, fmt.Errorf("case: %w", err)
		}
		env.Case = cb
	}
	return json.Marshal(env)
}
