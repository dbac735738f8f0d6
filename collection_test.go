package previewkit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/previewkit"
)

func TestSequenceOf(t *testing.T) {
	t.Run("repeats the representative value", func(t *testing.T) {
		got := previewkit.SequenceOf(func() string { return "previewValue" }, 5)
		require.Len(t, got, 5)
		for _, v := range got {
			assert.Equal(t, "previewValue", v)
		}
	})

	t.Run("zero count yields empty non-nil slice", func(t *testing.T) {
		got := previewkit.SequenceOf(func() int { return 7 }, 0)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("negative count yields empty slice", func(t *testing.T) {
		assert.Empty(t, previewkit.SequenceOf(func() int { return 7 }, -3))
	})

	t.Run("per-call variation is preserved in order", func(t *testing.T) {
		n := 0
		got := previewkit.SequenceOf(func() int { n++; return n }, 3)
		assert.Equal(t, []int{1, 2, 3}, got)
	})
}

func TestUniqueSetOf(t *testing.T) {
	t.Run("collects indexed values at ordinals 0..count-1", func(t *testing.T) {
		got := previewkit.UniqueSetOf(func(i int) string {
			return fmt.Sprintf("previewValue_%d", i)
		}, 5)
		require.Len(t, got, 5)
		for i := 0; i < 5; i++ {
			assert.Contains(t, got, fmt.Sprintf("previewValue_%d", i))
		}
	})

	t.Run("non-injective generator deduplicates silently", func(t *testing.T) {
		got := previewkit.UniqueSetOf(func(i int) int { return i % 2 }, 6)
		assert.Len(t, got, 2)
	})

	t.Run("zero count yields empty set", func(t *testing.T) {
		assert.Empty(t, previewkit.UniqueSetOf(func(i int) int { return i }, 0))
	})
}

func TestMapOf(t *testing.T) {
	t.Run("keys are indexed, values are the representative", func(t *testing.T) {
		got := previewkit.MapOf(
			func(i int) string { return fmt.Sprintf("previewValue_%d", i) },
			func() int { return 0 },
			3,
		)
		require.Len(t, got, 3)
		for i := 0; i < 3; i++ {
			v, ok := got[fmt.Sprintf("previewValue_%d", i)]
			require.True(t, ok)
			assert.Equal(t, 0, v)
		}
	})

	t.Run("zero count yields empty map", func(t *testing.T) {
		assert.Empty(t, previewkit.MapOf(func(i int) int { return i }, func() bool { return true }, 0))
	})
}

type staticSource struct{}

func (staticSource) PreviewValue() string        { return "previewValue" }
func (staticSource) PreviewValueAt(i int) string { return fmt.Sprintf("previewValue_%d", i) }

func TestSourceAdapters(t *testing.T) {
	src := staticSource{}

	seq := previewkit.SequenceFrom[string](src, 2)
	assert.Equal(t, []string{"previewValue", "previewValue"}, seq)

	set := previewkit.UniqueSetFrom[string](src, 2)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "previewValue_0")
	assert.Contains(t, set, "previewValue_1")

	m := previewkit.MapFrom[string, string](src, src, 2)
	assert.Equal(t, map[string]string{
		"previewValue_0": "previewValue",
		"previewValue_1": "previewValue",
	}, m)
}
