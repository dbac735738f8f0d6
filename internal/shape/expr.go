package shape

import (
	"encoding/json"
	"fmt"
)

// Expr is a sealed interface representing a planned value expression - the
// right-hand side of one (fieldName, valueExpression) pair in a Plan.
//
// Literal variants carry values fixed at planning time (including the
// randomly drawn identifier-heuristic literals). Deferred variants
// (PrimitiveExpr, SequenceExpr, UniqueSetExpr, MapExpr, PreviewRef,
// FirstCaseExpr) are resolved by the evaluator against the primitive
// catalog and the declaration registry.
type Expr interface {
	expr() // Sealed - only these types implement it
}

// StringLit is a literal text value.
type StringLit string

func (StringLit) expr() {}

// IntLit is a literal integer value.
type IntLit int64

func (IntLit) expr() {}

// FloatLit is a literal floating-point value.
type FloatLit float64

func (FloatLit) expr() {}

// BoolLit is a literal boolean value.
type BoolLit bool

func (BoolLit) expr() {}

// URLLit is a literal resource locator.
type URLLit string

func (URLLit) expr() {}

// ArrayLit is a literal ordered sequence of expressions.
type ArrayLit []Expr

func (ArrayLit) expr() {}

// PrimitiveExpr defers to the primitive catalog's plain value for Kind.
type PrimitiveExpr struct {
	Kind Kind
}

func (PrimitiveExpr) expr() {}

// SequenceExpr materializes Count plain values of Elem in order.
type SequenceExpr struct {
	Elem  TypeRef
	Count int
}

func (SequenceExpr) expr() {}

// UniqueSetExpr materializes the indexed values of Elem at ordinals
// 0..Count-1 into a set. Planning has already checked that Elem supports
// indexed synthesis.
type UniqueSetExpr struct {
	Elem  TypeRef
	Count int
}

func (UniqueSetExpr) expr() {}

// MapExpr materializes Count pairs of (indexed key, plain value). Planning
// has already checked that Key supports indexed synthesis.
type MapExpr struct {
	Key   TypeRef
	Value TypeRef
	Count int
}

func (MapExpr) expr() {}

// PreviewRef defers to the synthesized representative value of a nominal
// user type. Resolution recurses with no cycle protection: a
// self-referential or mutually-recursive declaration recurses unboundedly
// unless the evaluator's opt-in depth guard is enabled.
type PreviewRef struct {
	TypeName string
}

func (PreviewRef) expr() {}

// FirstCaseExpr selects the first element of an enumerable case list.
type FirstCaseExpr struct{}

func (FirstCaseExpr) expr() {}

// CaseExpr selects a specific case of a sum-typed declaration.
type CaseExpr struct {
	Case string
}

func (CaseExpr) expr() {}

// exprEnvelope is the tagged JSON form shared by MarshalExpr and the golden
// snapshots. Field order is fixed by the struct, so output is deterministic.
type exprEnvelope struct {
	Expr  string            `json:"expr"`
	Kind  string            `json:"kind,omitempty"`
	Value any               `json:"value,omitempty"`
	Elems []json.RawMessage `json:"elems,omitempty"`
	Elem  string            `json:"elem,omitempty"`
	Key   string            `json:"key,omitempty"`
	VType string            `json:"value_type,omitempty"`
	Count int               `json:"count,omitempty"`
	Type  string            `json:"type,omitempty"`
	Case  string            `json:"case,omitempty"`
}

// MarshalExpr serializes an expression to its tagged JSON form.
func MarshalExpr(e Expr) ([]byte, error) {
	switch v := e.(type) {
	case StringLit:
		return json.Marshal(exprEnvelope{Expr: "string", Value: string(v)})
	case IntLit:
		return json.Marshal(exprEnvelope{Expr: "int", Value: int64(v)})
	case FloatLit:
		return json.Marshal(exprEnvelope{Expr: "float", Value: float64(v)})
	case BoolLit:
		return json.Marshal(exprEnvelope{Expr: "bool", Value: bool(v)})
	case URLLit:
		return json.Marshal(exprEnvelope{Expr: "url", Value: string(v)})
	case ArrayLit:
		elems := make([]json.RawMessage, len(v))
		for i, elem := range v {
			b, err := MarshalExpr(elem)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			elems[i] = b
		}
		return json.Marshal(exprEnvelope{Expr: "array", Elems: elems})
	case PrimitiveExpr:
		return json.Marshal(exprEnvelope{Expr: "primitive", Kind: string(v.Kind)})
	case SequenceExpr:
		return json.Marshal(exprEnvelope{Expr: "sequence", Elem: v.Elem.String(), Count: v.Count})
	case UniqueSetExpr:
		return json.Marshal(exprEnvelope{Expr: "unique_set", Elem: v.Elem.String(), Count: v.Count})
	case MapExpr:
		return json.Marshal(exprEnvelope{Expr: "map", Key: v.Key.String(), VType: v.Value.String(), Count: v.Count})
	case PreviewRef:
		return json.Marshal(exprEnvelope{Expr: "preview", Type: v.TypeName})
	case FirstCaseExpr:
		return json.Marshal(exprEnvelope{Expr: "first_case"})
	case CaseExpr:
		return json.Marshal(exprEnvelope{Expr: "case", Case: v.Case})
	default:
		return nil, fmt.Errorf("unknown Expr type: %T", e)
	}
}
