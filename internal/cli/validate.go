package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/previewkit/internal/planner"
	"github.com/roach88/previewkit/internal/scan"
)

// ValidationIssue is one rejection found while validating declarations.
type ValidationIssue struct {
	Code    string `json:"code"`
	Type    string `json:"type,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationReport summarizes a validate run.
type ValidationReport struct {
	Scanned int               `json:"scanned"`
	Planned int               `json:"planned"`
	Issues  []ValidationIssue `json:"issues"`
}

// NewValidateCommand creates the validate command: scan declarations and
// check that every one of them plans, reporting all rejections rather than
// stopping at the first.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <decls>...",
		Short: "Check that every declaration has a synthesis plan",
		Args:  cobra.MinimumNArgs(1),
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

			report := ValidationReport{Issues: []ValidationIssue{}}

			reg, err := loadRegistry(files)
			if err != nil {
				var exitErr *ExitError
				if errors.As(err, &exitErr) {
					return err
				}
				// Scan rejections end the run; planning needs a registry.
				report.Issues = append(report.Issues, issueFromError(err))
				return emitReport(formatter, report)
			}
			report.Scanned = reg.Len()

			orch := planner.NewOrchestrator(reg)
			for _, name := range reg.Names() {
				if _, err := orch.PlanType(name); err != nil {
					report.Issues = append(report.Issues, issueFromError(err))
					continue
				}
				report.Planned++
			}

			return emitReport(formatter, report)
		},
	}

	return cmd
}

func issueFromError(err error) ValidationIssue {
	var planErr *planner.PlanError
	if errors.As(err, &planErr) {
		return ValidationIssue{
			Code:    string(planErr.Code),
			Type:    planErr.Type,
			Field:   planErr.Field,
			Message: planErr.Message,
		}
	}
	var scanErr *scan.ScanError
	if errors.As(err, &scanErr) {
		return ValidationIssue{
			Code:    "SCAN_ERROR",
			Field:   scanErr.Field,
			Message: scanErr.Message,
		}
	}
	return ValidationIssue{Code: "INTERNAL", Message: err.Error()}
}

func emitReport(f *OutputFormatter, report ValidationReport) error {
	var text strings.Builder
	fmt.Fprintf(&text, "scanned %d declaration(s), planned %d", report.Scanned, report.Planned)
	for _, issue := range report.Issues {
		text.WriteByte('\n')
		fmt.Fprintf(&text, "%s", issue.Code)
		if issue.Type != "" {
			fmt.Fprintf(&text, " %s", issue.Type)
		}
		if issue.Field != "" {
			fmt.Fprintf(&text, ".%s", issue.Field)
		}
		fmt.Fprintf(&text, ": %s", issue.Message)
	}

	if err := f.SuccessText(text.String(), report); err != nil {
		return err
	}
	if len(report.Issues) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d declaration(s) rejected", len(report.Issues)))
	}
	return nil
}
