package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/roach88/previewkit/internal/planner"
	"github.com/roach88/previewkit/internal/scan"
	"github.com/roach88/previewkit/internal/shape"
)

// PlannedType is the per-declaration payload of the plan command.
type PlannedType struct {
	TypeName string          `json:"type_name"`
	PlanID   string          `json:"plan_id"`
	Plan     json.RawMessage `json:"plan"`
}

// NewPlanCommand creates the plan command: scan declarations and emit the
// synthesis plan for each.
func NewPlanCommand(opts *RootOptions) *cobra.Command {
	var (
		only    []string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "plan <decls>...",
		Short: "Plan synthesis for declared types",
		Long: "Scan CUE declaration files (or directories of them) and emit the\n" +
			"synthesis plan chosen for every declaration, with its content-addressed\n" +
			"plan ID.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			files, err := collectDeclFiles(args)
			if err != nil {
				return err
			}
			formatter.VerboseLog("scanning %d declaration file(s)", len(files))

			reg, err := loadRegistry(files)
			if err != nil {
				return rejectionError(formatter, err)
			}

			orch := planner.NewOrchestrator(reg)
			var plans []*shape.Plan
			if len(only) > 0 {
				for _, name := range only {
					p, err := orch.PlanType(name)
					if err != nil {
						return rejectionError(formatter, err)
					}
					plans = append(plans, p)
				}
			} else {
				plans, err = orch.PlanAll()
				if err != nil {
					return rejectionError(formatter, err)
				}
			}

			out := make([]PlannedType, 0, len(plans))
			for _, p := range plans {
				id, err := shape.PlanID(p)
				if err != nil {
					return WrapExitError(ExitCommandError, "compute plan ID", err)
				}
				body, err := json.Marshal(p)
				if err != nil {
					return WrapExitError(ExitCommandError, "encode plan", err)
				}
				out = append(out, PlannedType{TypeName: p.TypeName, PlanID: id, Plan: body})
			}

			if outPath != "" {
				body, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return WrapExitError(ExitCommandError, "encode plans", err)
				}
				if err := os.WriteFile(outPath, append(body, '\n'), 0o644); err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("write %s", outPath), err)
				}
			}

			var text strings.Builder
			for i, p := range out {
				if i > 0 {
					text.WriteByte('\n')
				}
				fmt.Fprintf(&text, "%s\t%s", p.TypeName, p.PlanID)
			}
			return formatter.SuccessText(text.String(), out)
		},
	}

	cmd.Flags().StringSliceVar(&only, "type", nil, "plan only the named declaration (repeatable)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "also write the full plan set to a JSON file")

	return cmd
}

// rejectionError reports a scan or planning rejection through the formatter
// and converts it to the rejection exit code. Command-level failures (bad
// paths, encoding) pass through untouched.
func rejectionError(f *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var planErr *planner.PlanError
	if errors.As(err, &planErr) {
		if ferr := f.Failure(string(planErr.Code), planErr.Error(), map[string]string{
			"type":  planErr.Type,
			"field": planErr.Field,
		}); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitFailure, Message: planErr.Error(), Err: planErr}
	}

	var scanErr *scan.ScanError
	if errors.As(err, &scanErr) {
		if ferr := f.Failure("SCAN_ERROR", scanErr.Error(), nil); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitFailure, Message: scanErr.Error(), Err: scanErr}
	}

	return WrapExitError(ExitFailure, "planning failed", err)
}
