package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/render"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

type graphOpts struct {
	design          string
	output          string
	format          string
	highlight       bool
	includeDisabled bool
	noCache         bool
}

// graphCommand draws the co-usage requirement graph of a rule file.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "graph [rules]",
		Short: "Draw the co-usage requirement graph",
		Long: `Draw which components require which others.

Edges come from co-usage constraints and from the legacy requiredComponents
lists in the design's catalog (dashed). With --highlight the design is
checked first and required components it lacks are drawn in red.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateGraphFormat(opts.format); err != nil {
				return err
			}
			if opts.highlight && opts.design == "" {
				return fmt.Errorf("--highlight needs --design")
			}
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.design, "design", "d", "", "design file supplying the catalog")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "mark required components the design lacks")
	cmd.Flags().BoolVar(&opts.includeDisabled, "include-disabled", false, "draw disabled rules greyed out")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, rulesPath string, opts graphOpts) error {
	rs, err := rules.ReadFile(rulesPath)
	if err != nil {
		return err
	}
	var catalog *design.Catalog
	renderOpts := render.Options{IncludeDisabled: opts.includeDisabled}
	if opts.design != "" {
		d, err := design.ReadDesignFile(opts.design)
		if err != nil {
			return err
		}
		catalog = d.Catalog
		if opts.highlight {
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			result, err := runner.Check(ctx, pipeline.Input{Design: d, Rules: rs}, pipeline.Options{})
			if err != nil {
				return err
			}
			renderOpts.Missing = render.MissingFrom(result.Violations)
		}
	}

	out := []byte(render.CoUsageDOT(catalog, rs, renderOpts))
	if opts.format == pipeline.FormatSVG {
		spin := newSpinnerWithContext(ctx, "Rendering graph...")
		spin.Start()
		out, err = render.RenderSVG(ctx, string(out))
		spin.Stop()
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote co-usage graph")
	printFile(opts.output)
	return nil
}
