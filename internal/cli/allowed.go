package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/pipeline"
)

// allowedCommand lists what the selection rules admit on one panel.
func (c *CLI) allowedCommand() *cobra.Command {
	var (
		input  inputFlags
		panel  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "allowed [design.json]",
		Short: "List catalog items the rules allow on a panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadInput(args[0], input)
			if err != nil {
				return err
			}
			a, err := pipeline.AllowedFor(in.Design, in.Rules, panel)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			}

			printInfo("panel %s: %s", StyleValue.Render(a.PanelID), describeAllowed(a))
			fmt.Println(StyleTitle.Render("components"))
			for _, comp := range a.Components {
				printDetail("%-20s %-12s %s x %s", comp.ID, comp.Type, formatMM(comp.Width), formatMM(comp.Height))
			}
			fmt.Println(StyleTitle.Render("combinators"))
			for _, cb := range a.Combinators {
				printDetail("%-20s %s", cb.ID, cb.Name)
			}
			return nil
		},
	}
	input.register(cmd)
	cmd.Flags().StringVarP(&panel, "panel", "p", "", "panel id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("panel")
	return cmd
}

// describeAllowed formats a type restriction for display.
func describeAllowed(a *pipeline.Allowed) string {
	if !a.Restricted {
		return "any type"
	}
	if len(a.Types) == 0 {
		return "no types"
	}
	return strings.Join(a.Types, ", ")
}
