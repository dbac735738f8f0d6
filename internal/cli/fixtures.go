package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/previewkit/internal/fixture"
	"github.com/roach88/previewkit/internal/shape"
)

// NewFixturesCommand creates the fixtures command group: durable storage
// for rendered values.
func NewFixturesCommand(opts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Store and retrieve rendered fixtures",
		Long: "Persist rendered placeholder values in a content-addressed SQLite\n" +
			"store. Saving the same value twice is a no-op, so fixture sets can be\n" +
			"regenerated idempotently.",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "previewkit.db", "fixture database path")

	cmd.AddCommand(newFixturesSaveCommand(opts, &dbPath))
	cmd.AddCommand(newFixturesListCommand(opts, &dbPath))
	cmd.AddCommand(newFixturesGetCommand(opts, &dbPath))

	return cmd
}

func newFixturesSaveCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	var (
		manifestPath string
		only         []string
	)

	cmd := &cobra.Command{
		Use:   "save <decls>...",
		Short: "Render declarations and store the results",
		Args:  cobra.MinimumNArgs(1),
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

			rendered, plans, err := renderDecls(args, manifest, -1, formatter)
			if err != nil {
				return err
			}

			planIDs := make(map[string]string, len(plans))
			for _, p := range plans {
				id, err := shape.PlanID(p)
				if err != nil {
					return WrapExitError(ExitCommandError, "compute plan ID", err)
				}
				planIDs[p.TypeName] = id
			}

			store, err := fixture.Open(*dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open fixture store", err)
			}
			defer store.Close()

			records := make([]*fixture.Record, 0, len(rendered))
			for _, r := range rendered {
				rec, err := store.Save(cmd.Context(), r.TypeName, planIDs[r.TypeName], r.Value)
				if err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("save fixture for %s", r.TypeName), err)
				}
				formatter.VerboseLog("saved %s as %s", rec.TypeName, rec.ID)
				records = append(records, rec)
			}

			return formatter.SuccessText(recordsText(records), records)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML manifest pinning the render run")
	cmd.Flags().StringSliceVar(&only, "type", nil, "save only the named declaration (repeatable)")

	return cmd
}

func newFixturesListCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			store, err := fixture.Open(*dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open fixture store", err)
			}
			defer store.Close()

			var records []*fixture.Record
			if typeName != "" {
				records, err = store.ListByType(cmd.Context(), typeName)
			} else {
				records, err = store.List(cmd.Context())
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "list fixtures", err)
			}

			return formatter.SuccessText(recordsText(records), records)
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "list fixtures for one declaration only")

	return cmd
}

func newFixturesGetCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <fixture-id>",
		Short: "Print one stored fixture body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			store, err := fixture.Open(*dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open fixture store", err)
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if errors.Is(err, fixture.ErrNotFound) {
				if ferr := formatter.Failure("NOT_FOUND", err.Error(), nil); ferr != nil {
					return ferr
				}
				return &ExitError{Code: ExitFailure, Message: err.Error(), Err: err}
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "get fixture", err)
			}

			if opts.Format == "json" {
				return formatter.Success(rec)
			}
			// Text mode prints the body alone so output pipes into jq.
			_, werr := fmt.Fprintln(cmd.OutOrStdout(), rec.Body)
			return werr
		},
	}

	return cmd
}

// recordsText renders fixture records as one tab-separated line each.
func recordsText(records []*fixture.Record) string {
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\t%s\tseq=%d", rec.ID, rec.TypeName, rec.Seq)
	}
	if len(records) == 0 {
		b.WriteString("no fixtures")
	}
	return b.String()
}
