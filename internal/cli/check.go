package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/pipeline"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type checkOpts struct {
	input       inputFlags
	format      string
	interactive bool
	noCache     bool
	refresh     bool
	skipLayout  bool
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "check [design.json]",
		Short: "Evaluate rules against a design",
		Long: `Evaluate rules against a design.

Gaps are applied and every panel is restacked before evaluation, so the
geometric checks see final positions. The command exits non-zero when any
error-severity violation is found; warnings alone do not fail it.

Results are cached by a hash of the design and rule set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
			}
			return c.runCheck(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse violations interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.skipLayout, "skip-layout", false, "evaluate placements as given, without applying gaps")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, designPath string, opts checkOpts, w io.Writer) error {
	in, err := c.loadInput(designPath, opts.input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Check(ctx, in, pipeline.Options{Refresh: opts.refresh, SkipLayout: opts.skipLayout})
	if err != nil {
		return err
	}
	prog.done("checked design", "panels", len(in.Design.Panels), "rules", len(in.Rules))

	switch {
	case opts.format == formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case opts.interactive && len(result.Violations) > 0:
		m := NewViolationListModel(result.Violations, in.Design.Catalog)
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr)).Run(); err != nil {
			return fmt.Errorf("violation browser: %w", err)
		}
	default:
		writeCheckResult(w, result)
	}

	if result.HasErrors() {
		return ErrViolations
	}
	return nil
}

// writeCheckResult prints violations followed by a summary line.
func writeCheckResult(w io.Writer, result *pipeline.Result) {
	cached := result.CacheInfo.EvaluateHit
	if len(result.Violations) == 0 {
		fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" no violations")
		fmt.Fprintln(w, "  "+summaryLine(0, 0, cached))
		return
	}
	writeViolations(w, result.Violations)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+summaryLine(result.Stats.Errors, result.Stats.Warnings, cached))
}
