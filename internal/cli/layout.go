package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/pipeline"
)

// layoutCommand groups the stacking operations. Each reads a design, applies
// one edit and writes the updated design to --output or stdout.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Apply gaps and edit panel stacks",
	}

	cmd.AddCommand(c.layoutGapsCommand())
	cmd.AddCommand(c.layoutAddCommand())
	cmd.AddCommand(c.layoutMoveCommand())
	cmd.AddCommand(c.layoutRemoveCommand())
	cmd.AddCommand(c.layoutCapacityCommand())

	return cmd
}

type layoutOpts struct {
	input  inputFlags
	output string
	panel  string
}

func (o *layoutOpts) register(cmd *cobra.Command, needsPanel bool) {
	o.input.register(cmd)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output design file (default stdout)")
	if needsPanel {
		cmd.Flags().StringVarP(&o.panel, "panel", "p", "", "panel id")
		_ = cmd.MarkFlagRequired("panel")
	}
}

func (c *CLI) layoutGapsCommand() *cobra.Command {
	var opts layoutOpts
	cmd := &cobra.Command{
		Use:   "gaps [design.json]",
		Short: "Insert or update gap placements and restack every panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], opts.input)
			if err != nil {
				return err
			}
			return writeDesign(pipeline.ApplyGaps(in.Design, in.Rules), opts.output)
		},
	}
	opts.register(cmd, false)
	return cmd
}

func (c *CLI) layoutAddCommand() *cobra.Command {
	var (
		opts layoutOpts
		id   string
	)
	cmd := &cobra.Command{
		Use:   "add [design.json] [component-id]",
		Short: "Place a catalog item at the bottom of a panel",
		Long: `Place a catalog item (component or combinator) at the bottom of a panel.

The item is rejected when the panel has no room left for it or when a
component it requires through a co-usage rule is not already placed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], opts.input)
			if err != nil {
				return err
			}
			d, err := pipeline.AddComponent(in.Design, in.Rules, opts.panel, args[1], id)
			if err != nil {
				return err
			}
			c.Logger.Info("placed component", "component", args[1], "panel", opts.panel)
			return writeDesign(d, opts.output)
		},
	}
	opts.register(cmd, true)
	cmd.Flags().StringVar(&id, "id", "", "placement id (default random)")
	return cmd
}

func (c *CLI) layoutMoveCommand() *cobra.Command {
	var (
		opts    layoutOpts
		centerY float64
	)
	cmd := &cobra.Command{
		Use:   "move [design.json] [placement-id]",
		Short: "Move a placement to a new vertical position and restack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], opts.input)
			if err != nil {
				return err
			}
			d, err := pipeline.MovePlacement(in.Design, opts.panel, args[1], centerY)
			if err != nil {
				return err
			}
			return writeDesign(d, opts.output)
		},
	}
	opts.register(cmd, true)
	cmd.Flags().Float64Var(&centerY, "y", 0, "new vertical center in mm")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func (c *CLI) layoutRemoveCommand() *cobra.Command {
	var opts layoutOpts
	cmd := &cobra.Command{
		Use:   "remove [design.json] [placement-id]",
		Short: "Remove a placement and close the hole it leaves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], opts.input)
			if err != nil {
				return err
			}
			d, err := pipeline.RemovePlacement(in.Design, opts.panel, args[1])
			if err != nil {
				return err
			}
			return writeDesign(d, opts.output)
		},
	}
	opts.register(cmd, true)
	return cmd
}

func (c *CLI) layoutCapacityCommand() *cobra.Command {
	var opts layoutOpts
	cmd := &cobra.Command{
		Use:   "capacity [design.json]",
		Short: "Show the stacking height used and left on a panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], opts.input)
			if err != nil {
				return err
			}
			capacity, err := pipeline.PanelCapacity(in.Design, in.Rules, opts.panel)
			if err != nil {
				return err
			}
			printKeyValue("panel", capacity.PanelID)
			printKeyValue("max", formatMM(capacity.Max))
			printKeyValue("used", formatMM(capacity.Used))
			printKeyValue("available", formatMM(capacity.Available))
			if capacity.Available < 0 {
				printWarning("panel is over capacity by %s", formatMM(-capacity.Available))
			}
			return nil
		},
	}
	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.panel, "panel", "p", "", "panel id")
	_ = cmd.MarkFlagRequired("panel")
	return cmd
}
