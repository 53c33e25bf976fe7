package main

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/casevet/internal/analysis"
	"github.com/unbound-force/casevet/internal/config"
	"github.com/unbound-force/casevet/internal/diagnostic"
	"github.com/unbound-force/casevet/internal/fixer"
	"github.com/unbound-force/casevet/internal/report"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "casevet",
		Short: "Casevet — static checks for declarative test case sources",
		Long: `Casevet resolves and validates the case-source declarations that
couple tests to their data by name, and rewrites deprecated classic
verify calls to the constraint form.`,
		Version: version,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads .casevet.yaml (or an explicit path) relative to
// the working directory.
func loadConfig(cfgPath string) (config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Load(dir, cfgPath)
}

// checkParams holds the parsed flags for the check command.
type checkParams struct {
	patterns    []string
	format      string
	cfgPath     string
	failOn      string
	interactive bool
	stdout      io.Writer
	stderr      io.Writer
}

// errProblemsFound reports that the check found diagnostics at or
// above the fail-on threshold.
type errProblemsFound struct{ count int }

func (e errProblemsFound) Error() string {
	return fmt.Sprintf("found %d problem(s) at or above the fail-on severity", e.count)
}

// runCheck is the extracted, testable body of the check command.
func runCheck(ctx context.Context, p checkParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	cfg, err := loadConfig(p.cfgPath)
	if err != nil {
		return err
	}
	if p.failOn != "" {
		cfg.FailOn = p.failOn
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	logger.Info("checking packages", "patterns", p.patterns)
	diags, err := analysis.LoadAndAnalyze(ctx, dir, p.patterns, cfg.Options())
	if err != nil {
		return err
	}
	logger.Info("check complete", "problems", len(diags))

	if p.interactive {
		return runInteractiveCheck(diags)
	}

	switch p.format {
	case "json":
		err = report.WriteJSON(p.stdout, diags)
	default:
		err = report.WriteText(p.stdout, diags)
	}
	if err != nil {
		return err
	}

	if n := countAtOrAbove(diags, cfg.FailSeverity()); n > 0 {
		return errProblemsFound{count: n}
	}
	return nil
}

func countAtOrAbove(diags []diagnostic.Diagnostic, min diagnostic.Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity >= min {
			n++
		}
	}
	return n
}

func newCheckCmd() *cobra.Command {
	var (
		format      string
		cfgPath     string
		failOn      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Check case-source declarations and classic verify calls",
		Long: `Check that every case-source declaration resolves to an
accessible, iterable declaration with a matching argument list, and
report deprecated classic verify calls.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), checkParams{
				patterns:    args,
				format:      format,
				cfgPath:     cfgPath,
				failOn:      failOn,
				interactive: interactive,
				stdout:      os.Stdout,
				stderr:      os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")
	cmd.Flags().StringVar(&cfgPath, "config", "",
		"path to config file (default: .casevet.yaml in the working directory)")
	cmd.Flags().StringVar(&failOn, "fail-on", "",
		"minimum severity that fails the run: info, warning, or error")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing problems")

	return cmd
}

// fixParams holds the parsed flags for the fix command.
type fixParams struct {
	patterns []string
	cfgPath  string
	id       string
	first    bool
	dryRun   bool
	stdout   io.Writer
	stderr   io.Writer
}

// runFix is the extracted, testable body of the fix command.
func runFix(ctx context.Context, p fixParams) error {
	cfg, err := loadConfig(p.cfgPath)
	if err != nil {
		return err
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	logger.Info("checking packages", "patterns", p.patterns)
	diags, err := analysis.LoadAndAnalyze(ctx, dir, p.patterns, cfg.Options())
	if err != nil {
		return err
	}

	opts := fixer.Options{Mode: fixer.ModeAll, DryRun: p.dryRun}
	switch {
	case p.id != "":
		opts.Mode = fixer.ModeID
		opts.TargetID = diagnostic.ID(p.id)
	case p.first:
		opts.Mode = fixer.ModeFirst
	}

	result, err := fixer.Apply(diags, opts)
	if err == fixer.ErrNoFixes {
		logger.Warn("no applicable fixes found")
		return nil
	}
	if err != nil {
		return err
	}

	writeFixResult(p.stdout, result, p.dryRun)
	return nil
}

func writeFixResult(w io.Writer, result *fixer.Result, dryRun bool) {
	verb := "applied"
	if dryRun {
		verb = "would apply"
	}
	for _, a := range result.Applied {
		fmt.Fprintf(w, "%s %s: %s (%s:%d)\n", verb, a.DiagID, a.Title, a.File, a.Line)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(w, "skipped %s: %s\n", s.Title, s.Reason)
	}
	for _, c := range result.Changed {
		fmt.Fprintf(w, "%s: %d edit(s)\n", c.Path, c.EditCount)
	}
}

func newFixCmd() *cobra.Command {
	var (
		cfgPath string
		id      string
		first   bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "fix [packages...]",
		Short: "Apply the suggested fixes for classic verify calls",
		Long: `Rewrite deprecated classic verify calls to the constraint form,
preserving the call site's argument formatting.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd.Context(), fixParams{
				patterns: args,
				cfgPath:  cfgPath,
				id:       id,
				first:    first,
				dryRun:   dryRun,
				stdout:   os.Stdout,
				stderr:   os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "",
		"path to config file (default: .casevet.yaml in the working directory)")
	cmd.Flags().StringVar(&id, "id", "",
		"apply fixes for a single check ID (e.g. CV2001)")
	cmd.Flags().BoolVar(&first, "first", false,
		"apply only the first fix in order")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"report the fixes without writing any file")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for casevet check output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of casevet check --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
