package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/previewkit/internal/eval"
	"github.com/roach88/previewkit/internal/planner"
	"github.com/roach88/previewkit/internal/shape"
)

// RenderManifest pins a render run: which declarations to render and under
// what knobs. Reused verbatim by the fixtures save command.
type RenderManifest struct {
	// Types restricts rendering; empty means every declaration.
	Types []string `yaml:"types,omitempty"`

	// Counts holds per-type collection count overrides.
	Counts map[string]int `yaml:"counts,omitempty"`

	// Now pins the clock, RFC 3339. Empty uses the wall clock.
	Now string `yaml:"now,omitempty"`

	// MaxDepth enables the recursion guard when positive.
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// RenderedType is the per-declaration payload of the render command.
type RenderedType struct {
	TypeName string          `json:"type_name"`
	Value    json.RawMessage `json:"value"`
}

// NewRenderCommand creates the render command: plan and evaluate
// declarations into concrete placeholder values.
func NewRenderCommand(opts *RootOptions) *cobra.Command {
	var (
		manifestPath string
		only         []string
		count        int
		now          string
		maxDepth     int
	)

	cmd := &cobra.Command{
		Use:   "render <decls>...",
		Short: "Render placeholder values for declared types",
		Long: "Scan CUE declaration files, plan synthesis, and evaluate the plans\n" +
			"into concrete placeholder values. A manifest pins the run for\n" +
			"reproducible output; flags override the manifest.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			manifest, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			if len(only) > 0 {
				manifest.Types = only
			}
			if now != "" {
				manifest.Now = now
			}
			if maxDepth > 0 {
				manifest.MaxDepth = maxDepth
			}

			rendered, _, err := renderDecls(args, manifest, count, formatter)
			if err != nil {
				return err
			}

			out := make([]RenderedType, 0, len(rendered))
			var text strings.Builder
			for i, r := range rendered {
				body, err := shape.MarshalValue(r.Value)
				if err != nil {
					return WrapExitError(ExitCommandError, "encode rendered value", err)
				}
				out = append(out, RenderedType{TypeName: r.TypeName, Value: body})
				if i > 0 {
					text.WriteByte('\n')
				}
				fmt.Fprintf(&text, "%s\t%s", r.TypeName, body)
			}
			return formatter.SuccessText(text.String(), out)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML manifest pinning the render run")
	cmd.Flags().StringSliceVar(&only, "type", nil, "render only the named declaration (repeatable)")
	cmd.Flags().IntVar(&count, "count", -1, "override every collection count (0 renders empty collections)")
	cmd.Flags().StringVar(&now, "now", "", "pin timestamp synthesis to an RFC 3339 instant")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "fail rendering past this nominal recursion depth")

	return cmd
}

// loadManifest reads a render manifest, or returns an empty one when no
// path is given.
func loadManifest(path string) (*RenderManifest, error) {
	m := &RenderManifest{}
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("read manifest %s", path), err)
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("parse manifest %s", path), err)
	}
	return m, nil
}

// renderDecls runs the scan-plan-render pipeline under the manifest. The
// plans it returns are the ones the values were rendered from.
func renderDecls(args []string, manifest *RenderManifest, count int, formatter *OutputFormatter) ([]eval.Rendered, []*shape.Plan, error) {
	files, err := collectDeclFiles(args)
	if err != nil {
		return nil, nil, err
	}
	formatter.VerboseLog("scanning %d declaration file(s)", len(files))

	reg, err := loadRegistry(files)
	if err != nil {
		return nil, nil, rejectionError(formatter, err)
	}

	orch := planner.NewOrchestrator(reg)
	plans, err := orch.PlanAll()
	if err != nil {
		return nil, nil, rejectionError(formatter, err)
	}

	var clock planner.Clock = planner.SystemClock{}
	if manifest.Now != "" {
		instant, err := time.Parse(time.RFC3339, manifest.Now)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "parse now instant", err)
		}
		clock = planner.FixedClock{Instant: instant}
	}
	catalog := planner.NewPrimitiveCatalog(clock, planner.SystemEntropy{})

	evalOpts := []eval.Option{eval.WithCounts(manifest.Counts)}
	if count >= 0 {
		evalOpts = append(evalOpts, eval.WithCount(count))
	}
	if manifest.MaxDepth > 0 {
		evalOpts = append(evalOpts, eval.WithMaxDepth(manifest.MaxDepth))
	}
	ev := eval.New(reg, plans, catalog, evalOpts...)

	if len(manifest.Types) == 0 {
		rendered, err := ev.RenderAll()
		if err != nil {
			return nil, nil, rejectionError(formatter, err)
		}
		return rendered, plans, nil
	}

	rendered := make([]eval.Rendered, 0, len(manifest.Types))
	for _, name := range manifest.Types {
		v, err := ev.Render(name)
		if err != nil {
			return nil, nil, rejectionError(formatter, err)
		}
		rendered = append(rendered, eval.Rendered{TypeName: name, Value: v})
	}
	return rendered, plans, nil
}
