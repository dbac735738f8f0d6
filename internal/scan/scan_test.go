package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/previewkit/internal/shape"
)

func TestScanSourceStruct(t *testing.T) {
	src := []byte(`
types: {
	Profile: {
		fields: {
			name:  "String"
			score: "Int"
			tags:  "[String]"
		}
	}
}
`)
	reg, err := ScanSource("profile.cue", src)
	require.NoError(t, err)

	decl, ok := reg.Struct("Profile")
	require.True(t, ok)
	require.Len(t, decl.Fields, 3)

	assert.Equal(t, "name", decl.Fields[0].Name)
	assert.Equal(t, shape.PrimRef{Kind: shape.KindString}, decl.Fields[0].DeclaredType)
	assert.Equal(t, "score", decl.Fields[1].Name)
	assert.Equal(t, "tags", decl.Fields[2].Name)
	assert.Equal(t, shape.SequenceRef{Elem: shape.PrimRef{Kind: shape.KindString}}, decl.Fields[2].DeclaredType)
}

func TestScanSourceFieldObjectForm(t *testing.T) {
	src := []byte(`
types: {
	Document: {
		fields: {
			title: {type: "String"}
			checksum: {type: "String", computed: true}
			kind: {type: "String", static: true}
			createdAt: {type: "Date", readonly: true, hasDefault: true}
			ownerID: {type: "String", readonly: true}
		}
	}
}
`)
	reg, err := ScanSource("document.cue", src)
	require.NoError(t, err)

	decl, ok := reg.Struct("Document")
	require.True(t, ok)

	// Computed, static, and defaulted-immutable fields are structurally
	// excluded; immutable fields without defaults survive, flagged.
	require.Len(t, decl.Fields, 2)
	assert.Equal(t, "title", decl.Fields[0].Name)
	assert.False(t, decl.Fields[0].ImmutableWithoutDefault)
	assert.Equal(t, "ownerID", decl.Fields[1].Name)
	assert.True(t, decl.Fields[1].ImmutableWithoutDefault)
}

func TestScanSourceEnum(t *testing.T) {
	src := []byte(`
types: {
	Status: {
		enumerable: true
		cases: ["active", "archived"]
	}
	Payload: {
		cases: [
			{name: "text", associated: true},
			{name: "empty"},
		]
	}
}
`)
	reg, err := ScanSource("status.cue", src)
	require.NoError(t, err)

	status, ok := reg.Enum("Status")
	require.True(t, ok)
	assert.True(t, status.Shape.HasEnumerableCapability)
	require.Len(t, status.Shape.Cases, 2)
	assert.Equal(t, "active", status.Shape.Cases[0].Name)

	payload, ok := reg.Enum("Payload")
	require.True(t, ok)
	assert.False(t, payload.Shape.HasEnumerableCapability)
	require.Len(t, payload.Shape.Cases, 2)
	assert.True(t, payload.Shape.Cases[0].HasAssociatedData)
	assert.False(t, payload.Shape.Cases[1].HasAssociatedData)
}

func TestScanSourceRegistryOrder(t *testing.T) {
	src := []byte(`
types: {
	Zeta: {fields: {name: "String"}}
	Alpha: {fields: {name: "String"}}
}
`)
	reg, err := ScanSource("order.cue", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha"}, reg.Names())
}

func TestScanIntoRejectsDuplicates(t *testing.T) {
	reg := shape.NewRegistry()
	src := []byte(`types: {Profile: {fields: {name: "String"}}}`)

	require.NoError(t, ScanInto(reg, "a.cue", src))
	err := ScanInto(reg, "b.cue", src)
	require.Error(t, err)

	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Contains(t, scanErr.Message, "duplicate")
}

func TestScanSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing types root", `other: {}`, "top-level types struct"},
		{"struct without fields", `types: {Profile: {}}`, "requires a fields struct"},
		{"enum without cases", `types: {Status: {enum: true}}`, "requires a cases list"},
		{"bad type reference", `types: {Profile: {fields: {name: "Tuple<A, B>"}}}`, "unsupported generic"},
		{"field entry neither string nor object", `types: {Profile: {fields: {name: 42}}}`, "type string or an object"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScanSource("bad.cue", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestScanErrorIncludesPosition(t *testing.T) {
	_, err := ScanSource("bad.cue", []byte(`types: {Profile: {fields: {name: "[Broken"}}}`))
	require.Error(t, err)

	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, "Profile.name", scanErr.Field)
	assert.Contains(t, err.Error(), "bad.cue")
}
