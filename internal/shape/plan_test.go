package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalExpr(t *testing.T) {
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"string literal", StringLit("name"), `{"expr":"string","value":"name"}`},
		{"int literal", IntLit(1001), `{"expr":"int","value":1001}`},
		{"float literal", FloatLit(1.5), `{"expr":"float","value":1.5}`},
		{"bool literal keeps false", BoolLit(false), `{"expr":"bool","value":false}`},
		{"url literal", URLLit("https://www.example.com/image.png"), `{"expr":"url","value":"https://www.example.com/image.png"}`},
		{"primitive", PrimitiveExpr{Kind: KindDate}, `{"expr":"primitive","kind":"Date"}`},
		{"sequence", SequenceExpr{Elem: PrimRef{Kind: KindDate}, Count: 5}, `{"expr":"sequence","elem":"Date","count":5}`},
		{"unique set", UniqueSetExpr{Elem: PrimRef{Kind: KindString}, Count: 5}, `{"expr":"unique_set","elem":"String","count":5}`},
		{"map", MapExpr{Key: PrimRef{Kind: KindString}, Value: PrimRef{Kind: KindDouble}, Count: 3}, `{"expr":"map","key":"String","value_type":"Double","count":3}`},
		{"preview ref", PreviewRef{TypeName: "User"}, `{"expr":"preview","type":"User"}`},
		{"first case", FirstCaseExpr{}, `{"expr":"first_case"}`},
		{"case", CaseExpr{Case: "active"}, `{"expr":"case","case":"active"}`},
		{
			"array literal",
			ArrayLit{StringLit("tags_1"), StringLit("tags_2")},
			`{"expr":"array","elems":[{"expr":"string","value":"tags_1"},{"expr":"string","value":"tags_2"}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MarshalExpr(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestPlanMarshalJSON(t *testing.T) {
	t.Run("struct plan", func(t *testing.T) {
		plan := &Plan{
			TypeName: "Profile",
			Kind:     DeclStruct,
			Fields: []FieldPlan{
				{Name: "name", Expr: StringLit("name")},
				{Name: "score", Expr: PrimitiveExpr{Kind: KindInt}},
			},
			Capabilities: []Capability{CapabilityPlain},
		}
		got, err := plan.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"type": "Profile",
			"kind": "struct",
			"fields": [
				{"name": "name", "expr": {"expr": "string", "value": "name"}},
				{"name": "score", "expr": {"expr": "primitive", "kind": "Int"}}
			],
			"capabilities": ["PlainSynthesis"]
		}`, string(got))
	})

	t.Run("enum plan", func(t *testing.T) {
		plan := &Plan{
			TypeName:     "Status",
			Kind:         DeclEnum,
			Case:         FirstCaseExpr{},
			Capabilities: []Capability{CapabilityPlain},
		}
		got, err := plan.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"type": "Status",
			"kind": "enum",
			"case": {"expr": "first_case"},
			"capabilities": ["PlainSynthesis"]
		}`, string(got))
	})

	t.Run("nil capabilities serialize as empty list", func(t *testing.T) {
		plan := &Plan{TypeName: "Opaque", Kind: DeclEnum}
		got, err := plan.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type": "Opaque", "kind": "enum", "capabilities": []}`, string(got))
	})
}
