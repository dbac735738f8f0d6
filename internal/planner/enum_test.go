package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/previewkit/internal/shape"
)

func TestPlanEnumShape(t *testing.T) {
	t.Run("enumerable shape selects the first enumerated case", func(t *testing.T) {
		got := PlanEnumShape(shape.EnumShape{
			HasEnumerableCapability: true,
			Cases: []shape.CaseDescriptor{
				{Name: "active"},
				{Name: "archived"},
			},
		})
		assert.Equal(t, shape.FirstCaseExpr{}, got)
	})

	t.Run("enumerable wins even when the first case has associated data", func(t *testing.T) {
		got := PlanEnumShape(shape.EnumShape{
			HasEnumerableCapability: true,
			Cases: []shape.CaseDescriptor{
				{Name: "text", HasAssociatedData: true},
			},
		})
		assert.Equal(t, shape.FirstCaseExpr{}, got)
	})

	t.Run("falls back to first case without associated data", func(t *testing.T) {
		got := PlanEnumShape(shape.EnumShape{
			Cases: []shape.CaseDescriptor{
				{Name: "text", HasAssociatedData: true},
				{Name: "empty"},
				{Name: "deleted"},
			},
		})
		assert.Equal(t, shape.CaseExpr{Case: "empty"}, got)
	})

	t.Run("no selectable case yields nil", func(t *testing.T) {
		got := PlanEnumShape(shape.EnumShape{
			Cases: []shape.CaseDescriptor{
				{Name: "text", HasAssociatedData: true},
				{Name: "media", HasAssociatedData: true},
			},
		})
		assert.Nil(t, got)
	})

	t.Run("empty case list yields nil", func(t *testing.T) {
		assert.Nil(t, PlanEnumShape(shape.EnumShape{}))
	})
}
