package shape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalValueScalars(t *testing.T) {
	instant := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"string", ValueString("previewValue"), `"previewValue"`},
		{"int", ValueInt(0), `0`},
		{"float zero", ValueFloat(0), `0`},
		{"float fraction", ValueFloat(1.5), `1.5`},
		{"bool", ValueBool(true), `true`},
		{"time", ValueTime(instant), `"2024-01-01T00:00:00Z"`},
		{"url", ValueURL("https://www.example.com"), `"https://www.example.com"`},
		{"uuid", ValueUUID("00000000-0000-0000-0000-000000000001"), `"00000000-0000-0000-0000-000000000001"`},
		{"case", ValueCase{TypeName: "Status", Case: "active"}, `"active"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MarshalValue(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestMarshalValueObjectPreservesFieldOrder(t *testing.T) {
	obj := ValueObject{
		TypeName: "Profile",
		Fields: []ValueField{
			{Name: "zeta", Value: ValueInt(1)},
			{Name: "alpha", Value: ValueString("a")},
		},
	}
	got, err := MarshalValue(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"a"}`, string(got))
}

func TestMarshalCanonicalSortsFields(t *testing.T) {
	obj := ValueObject{
		TypeName: "Profile",
		Fields: []ValueField{
			{Name: "zeta", Value: ValueInt(1)},
			{Name: "alpha", Value: ValueString("a")},
		},
	}
	got, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","zeta":1}`, string(got))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	got, err := MarshalCanonical(ValueString("a<b&c>d"))
	require.NoError(t, err)
	assert.Equal(t, `"a<b&c>d"`, string(got))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute (NFD) normalizes to the precomposed form.
	decomposed := ValueString("e\u0301")
	precomposed := ValueString("\u00e9")

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalTimeInUTC(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	local := ValueTime(time.Date(2024, time.January, 1, 1, 0, 0, 0, zone))

	got, err := MarshalCanonical(local)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01T00:00:00Z"`, string(got))
}

func TestNewValueSetSortsAndDeduplicates(t *testing.T) {
	set := NewValueSet([]Value{
		ValueString("previewValue_2"),
		ValueString("previewValue_0"),
		ValueString("previewValue_2"),
		ValueString("previewValue_1"),
	})
	got, err := MarshalValue(set)
	require.NoError(t, err)
	assert.Equal(t, `["previewValue_0","previewValue_1","previewValue_2"]`, string(got))
}

func TestNewValueMapSortsByKey(t *testing.T) {
	m := NewValueMap([]MapEntry{
		{Key: ValueString("previewValue_1"), Value: ValueInt(0)},
		{Key: ValueString("previewValue_0"), Value: ValueInt(0)},
	})
	got, err := MarshalValue(m)
	require.NoError(t, err)
	assert.Equal(t, `{"previewValue_0":0,"previewValue_1":0}`, string(got))
}

func TestNewValueMapLaterDuplicateWins(t *testing.T) {
	m := NewValueMap([]MapEntry{
		{Key: ValueString("k"), Value: ValueInt(1)},
		{Key: ValueString("k"), Value: ValueInt(2)},
	})
	require.Len(t, m, 1)
	got, err := MarshalValue(m)
	require.NoError(t, err)
	assert.Equal(t, `{"k":2}`, string(got))
}

func TestCompareKeysUTF16(t *testing.T) {
	// U+FF01 (fullwidth !) is one UTF-16 unit; U+1F600 (emoji) encodes as a
	// surrogate pair starting at 0xD83D, which sorts BELOW 0xFF01. Plain
	// UTF-8 byte order would reverse them.
	assert.Equal(t, -1, compareKeysUTF16("\U0001F600", "！"))
	assert.Equal(t, 1, compareKeysUTF16("！", "\U0001F600"))
	assert.Equal(t, 0, compareKeysUTF16("abc", "abc"))
	assert.Equal(t, -1, compareKeysUTF16("ab", "abc"))
}
