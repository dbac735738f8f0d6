package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/previewkit/internal/shape"
	"github.com/roach88/previewkit/internal/testutil"
)

func newTestPlanner(t *testing.T, registered ...string) *Planner {
	t.Helper()
	reg := shape.NewRegistry()
	for _, name := range registered {
		require.NoError(t, reg.AddStruct(&shape.StructDecl{Name: name}))
	}
	return NewPlanner(reg, testutil.NewCountingEntropy())
}

func field(name, declared string) shape.FieldDescriptor {
	return shape.FieldDescriptor{
		Name:         name,
		DeclaredType: shape.MustParseTypeRef(declared),
		Raw:          declared,
	}
}

func TestRuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		"identifier-heuristic",
		"image-heuristic",
		"primitive-sequence-literal",
		"type-dispatch",
	}, RuleNames())
}

func TestIdentifierHeuristic(t *testing.T) {
	p := newTestPlanner(t)

	t.Run("text identifier draws a short ID", func(t *testing.T) {
		expr, err := p.PlanField(field("id", "String"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.StringLit("id00000001"), expr)
	})

	t.Run("integer identifier draws from the bounded range", func(t *testing.T) {
		expr, err := p.PlanField(field("userId", "Int"), 0)
		require.NoError(t, err)
		lit, ok := expr.(shape.IntLit)
		require.True(t, ok)
		assert.GreaterOrEqual(t, int64(lit), int64(idHeuristicMin))
		assert.LessOrEqual(t, int64(lit), int64(idHeuristicMax))
	})

	t.Run("substring match is naive", func(t *testing.T) {
		// "valid" contains "id", so the heuristic fires even though the
		// field is not an identifier.
		expr, err := p.PlanField(field("valid", "String"), 0)
		require.NoError(t, err)
		_, ok := expr.(shape.StringLit)
		require.True(t, ok)
		assert.NotEqual(t, shape.StringLit("valid"), expr)
	})

	t.Run("case insensitive", func(t *testing.T) {
		expr, err := p.PlanField(field("ID", "Int32"), 0)
		require.NoError(t, err)
		_, ok := expr.(shape.IntLit)
		assert.True(t, ok)
	})

	t.Run("does not fire for non-identifier types", func(t *testing.T) {
		expr, err := p.PlanField(field("recordId", "UUID"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.PrimitiveExpr{Kind: shape.KindUUID}, expr)
	})
}

func TestImageHeuristic(t *testing.T) {
	p := newTestPlanner(t)

	for _, name := range []string{"imageURL", "avatarImage", "icon", "AppIcon"} {
		expr, err := p.PlanField(field(name, "URL"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.URLLit("https://www.example.com/image.png"), expr, "field %s", name)
	}

	t.Run("requires a locator type", func(t *testing.T) {
		expr, err := p.PlanField(field("imageName", "String"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.StringLit("imageName"), expr)
	})
}

func TestPrimitiveSequenceLiteral(t *testing.T) {
	p := newTestPlanner(t)

	t.Run("text elements suffixed one-based", func(t *testing.T) {
		expr, err := p.PlanField(field("tags", "[String]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.ArrayLit{
			shape.StringLit("tags_1"),
			shape.StringLit("tags_2"),
			shape.StringLit("tags_3"),
			shape.StringLit("tags_4"),
			shape.StringLit("tags_5"),
		}, expr)
	})

	t.Run("integer elements count one-based", func(t *testing.T) {
		expr, err := p.PlanField(field("scores", "[Int]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.ArrayLit{
			shape.IntLit(1), shape.IntLit(2), shape.IntLit(3), shape.IntLit(4), shape.IntLit(5),
		}, expr)
	})

	t.Run("bool elements alternate starting true", func(t *testing.T) {
		expr, err := p.PlanField(field("flags", "[Bool]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.ArrayLit{
			shape.BoolLit(true), shape.BoolLit(false), shape.BoolLit(true), shape.BoolLit(false), shape.BoolLit(true),
		}, expr)
	})

	t.Run("url elements append one-based path", func(t *testing.T) {
		expr, err := p.PlanField(field("links", "[URL]"), 0)
		require.NoError(t, err)
		lit, ok := expr.(shape.ArrayLit)
		require.True(t, ok)
		require.Len(t, lit, 5)
		assert.Equal(t, shape.URLLit("https://www.example.com/1"), lit[0])
	})

	t.Run("date sequences take the generic collection path", func(t *testing.T) {
		expr, err := p.PlanField(field("history", "[Date]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.SequenceExpr{Elem: shape.PrimRef{Kind: shape.KindDate}, Count: 5}, expr)
	})

	t.Run("uuid sequences take the generic collection path", func(t *testing.T) {
		expr, err := p.PlanField(field("batch", "[UUID]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.SequenceExpr{Elem: shape.PrimRef{Kind: shape.KindUUID}, Count: 5}, expr)
	})
}

func TestTypeDispatch(t *testing.T) {
	p := newTestPlanner(t, "User")

	t.Run("text carries the field name", func(t *testing.T) {
		expr, err := p.PlanField(field("title", "String"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.StringLit("title"), expr)
	})

	t.Run("non-text primitives defer to the catalog", func(t *testing.T) {
		expr, err := p.PlanField(field("createdAt", "Date"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.PrimitiveExpr{Kind: shape.KindDate}, expr)
	})

	t.Run("optional unwraps into dispatch only", func(t *testing.T) {
		// An optional text field still carries the field name; optionals are
		// always populated.
		expr, err := p.PlanField(field("subtitle", "String?"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.StringLit("subtitle"), expr)
	})

	t.Run("optional does not re-enter heuristics", func(t *testing.T) {
		// The identifier heuristic requires a bare primitive; behind an
		// optional the field falls through to type dispatch.
		expr, err := p.PlanField(field("ownerId", "String?"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.StringLit("ownerId"), expr)
	})

	t.Run("set of indexable primitive", func(t *testing.T) {
		expr, err := p.PlanField(field("labels", "Set<String>"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.UniqueSetExpr{Elem: shape.PrimRef{Kind: shape.KindString}, Count: 5}, expr)
	})

	t.Run("set of bool is a capability mismatch", func(t *testing.T) {
		_, err := p.PlanField(field("flags", "Set<Bool>"), 0)
		var planErr *PlanError
		require.ErrorAs(t, err, &planErr)
		assert.Equal(t, ErrCodeCapabilityMismatch, planErr.Code)
	})

	t.Run("map keys must be indexable primitives", func(t *testing.T) {
		_, err := p.PlanField(field("byUser", "[User: Int]"), 0)
		var planErr *PlanError
		require.ErrorAs(t, err, &planErr)
		assert.Equal(t, ErrCodeCapabilityMismatch, planErr.Code)
	})

	t.Run("map of indexable key and plain value", func(t *testing.T) {
		expr, err := p.PlanField(field("prices", "[String: Double]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.MapExpr{
			Key:   shape.PrimRef{Kind: shape.KindString},
			Value: shape.PrimRef{Kind: shape.KindDouble},
			Count: 3,
		}, expr)
	})

	t.Run("registered nominal reference", func(t *testing.T) {
		expr, err := p.PlanField(field("owner", "User"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.PreviewRef{TypeName: "User"}, expr)
	})

	t.Run("unregistered nominal reference", func(t *testing.T) {
		_, err := p.PlanField(field("owner", "Ghost"), 0)
		var planErr *PlanError
		require.ErrorAs(t, err, &planErr)
		assert.Equal(t, ErrCodeUnknownType, planErr.Code)
		assert.Equal(t, "owner", planErr.Field)
	})

	t.Run("sequence of named type stays an expression", func(t *testing.T) {
		expr, err := p.PlanField(field("members", "[User]"), 0)
		require.NoError(t, err)
		assert.Equal(t, shape.SequenceExpr{Elem: shape.NamedRef{Name: "User"}, Count: 5}, expr)
	})
}

// Planning the documented three-field example end to end: a text identifier
// draws a random literal, a text field carries its name, and a text sequence
// becomes a one-based literal array.
func TestPlanFieldExampleShape(t *testing.T) {
	p := newTestPlanner(t)

	id, err := p.PlanField(field("id", "String"), 0)
	require.NoError(t, err)
	assert.Equal(t, shape.StringLit("id00000001"), id)

	name, err := p.PlanField(field("name", "String"), 1)
	require.NoError(t, err)
	assert.Equal(t, shape.StringLit("name"), name)

	tags, err := p.PlanField(field("tags", "[String]"), 2)
	require.NoError(t, err)
	lit, ok := tags.(shape.ArrayLit)
	require.True(t, ok)
	assert.Equal(t, shape.StringLit("tags_1"), lit[0])
	assert.Equal(t, shape.StringLit("tags_5"), lit[4])
}
