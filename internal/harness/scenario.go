package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/previewkit/internal/eval"
	"github.com/roach88/previewkit/internal/planner"
	"github.com/roach88/previewkit/internal/scan"
	"github.com/roach88/previewkit/internal/shape"
	"github.com/roach88/previewkit/internal/testutil"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Decls lists paths to CUE declaration files, relative to the scenario
	// file location.
	Decls []string `yaml:"decls"`

	// Types optionally restricts rendering to a subset of declarations.
	// Empty means every declaration.
	Types []string `yaml:"types,omitempty"`

	// Counts holds per-type collection count overrides.
	Counts map[string]int `yaml:"counts,omitempty"`

	// Now pins the clock, RFC 3339. Empty defaults to the conventional
	// golden instant (2024-01-01T00:00:00Z).
	Now string `yaml:"now,omitempty"`

	// MaxDepth enables the evaluation recursion guard when positive.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Expect holds lightweight assertions checked before the golden
	// comparison.
	Expect []Assertion `yaml:"expect,omitempty"`

	// baseDir resolves relative decl paths; set by LoadScenario.
	baseDir string
}

// Assertion validates one aspect of the result.
//
// Supported types:
//   - plan_field: the plan for TypeName has Field planned with the given
//     expression tag ("string", "primitive", "sequence", ...)
//   - value_field: the rendered value of TypeName has a top-level Field
//     whose display JSON equals Equals
type Assertion struct {
	Type     string `yaml:"type"`
	TypeName string `yaml:"type_name"`
	Field    string `yaml:"field"`
	Expr     string `yaml:"expr,omitempty"`
	Equals   any    `yaml:"equals,omitempty"`
}

// Result holds everything a scenario produced.
type Result struct {
	Registry *shape.Registry
	Plans    []*shape.Plan
	Values   []eval.Rendered
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	s.baseDir = filepath.Dir(path)
	return &s, nil
}

// Run executes a scenario: scan, plan, render, assert.
func Run(s *Scenario) (*Result, error) {
	reg := shape.NewRegistry()
	for _, decl := range s.Decls {
		path := decl
		if s.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(s.baseDir, decl)
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read declarations: %w", err)
		}
		if err := scan.ScanInto(reg, path, src); err != nil {
			return nil, err
		}
	}

	entropy := testutil.NewCountingEntropy()
	orch := planner.NewOrchestrator(reg, planner.WithEntropy(entropy))
	plans, err := orch.PlanAll()
	if err != nil {
		return nil, err
	}

	instant := testutil.DefaultInstant
	if s.Now != "" {
		instant, err = time.Parse(time.RFC3339, s.Now)
		if err != nil {
			return nil, fmt.Errorf("parse scenario now: %w", err)
		}
	}
	catalog := planner.NewPrimitiveCatalog(planner.FixedClock{Instant: instant}, entropy)

	opts := []eval.Option{eval.WithCounts(s.Counts)}
	if s.MaxDepth > 0 {
		opts = append(opts, eval.WithMaxDepth(s.MaxDepth))
	}
	ev := eval.New(reg, plans, catalog, opts...)

	result := &Result{Registry: reg, Plans: plans}
	if len(s.Types) == 0 {
		result.Values, err = ev.RenderAll()
		if err != nil {
			return nil, err
		}
	} else {
		for _, name := range s.Types {
			v, err := ev.Render(name)
			if err != nil {
				return nil, err
			}
			result.Values = append(result.Values, eval.Rendered{TypeName: name, Value: v})
		}
	}

	for i, a := range s.Expect {
		if err := checkAssertion(result, a); err != nil {
			return nil, fmt.Errorf("assertion %d: %w", i, err)
		}
	}
	return result, nil
}

func checkAssertion(r *Result, a Assertion) error {
	switch a.Type {
	case "plan_field":
		return checkPlanField(r, a)
	case "value_field":
		return checkValueField(r, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func checkPlanField(r *Result, a Assertion) error {
	for _, p := range r.Plans {
		if p.TypeName != a.TypeName {
			continue
		}
		for _, f := range p.Fields {
			if f.Name != a.Field {
				continue
			}
			raw, err := shape.MarshalExpr(f.Expr)
			if err != nil {
				return err
			}
			var env struct {
				Expr string `json:"expr"`
			}
			if err := json.Unmarshal(raw, &env); err != nil {
				return err
			}
			if env.Expr != a.Expr {
				return fmt.Errorf("%s.%s: planned %q, expected %q", a.TypeName, a.Field, env.Expr, a.Expr)
			}
			return nil
		}
		return fmt.Errorf("%s: no field plan for %q", a.TypeName, a.Field)
	}
	return fmt.Errorf("no plan for %q", a.TypeName)
}

func checkValueField(r *Result, a Assertion) error {
	for _, rendered := range r.Values {
		if rendered.TypeName != a.TypeName {
			continue
		}
		obj, ok := rendered.Value.(shape.ValueObject)
		if !ok {
			return fmt.Errorf("%s: rendered value is not an object", a.TypeName)
		}
		for _, f := range obj.Fields {
			if f.Name != a.Field {
				continue
			}
			got, err := shape.MarshalValue(f.Value)
			if err != nil {
				return err
			}
			want, err := json.Marshal(a.Equals)
			if err != nil {
				return err
			}
			if !bytes.Equal(got, want) {
				return fmt.Errorf("%s.%s: rendered %s, expected %s", a.TypeName, a.Field, got, want)
			}
			return nil
		}
		return fmt.Errorf("%s: rendered value has no field %q", a.TypeName, a.Field)
	}
	return fmt.Errorf("no rendered value for %q", a.TypeName)
}
