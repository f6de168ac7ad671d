package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// rulesCommand groups rule file utilities.
func (c *CLI) rulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Convert, validate and list rule files",
	}
	cmd.AddCommand(c.rulesConvertCommand())
	cmd.AddCommand(c.rulesListCommand())
	return cmd
}

func (c *CLI) rulesConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [in] [out]",
		Short: "Convert a rule file between JSON, YAML and TOML",
		Long: `Convert a rule file between JSON, YAML and TOML.

The format of each file is chosen by its extension. Constraint kinds this
version does not know are carried through unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := errors.ValidateRuleFilePath(p); err != nil {
					return err
				}
			}
			rs, err := rules.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := rules.WriteFile(args[1], rs); err != nil {
				return err
			}
			printSuccess("Converted %s", plural(len(rs), "rule"))
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) rulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [rules]",
		Short: "Validate a rule file and list its rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.ReadFile(args[0])
			if err != nil {
				return err
			}
			var invalid int
			for _, r := range rs {
				if err := r.Validate(); err != nil {
					printError("%s", errors.UserMessage(err))
					invalid++
				}
			}
			fmt.Println(rulesTable(rs))
			if invalid > 0 {
				return fmt.Errorf("%s invalid", plural(invalid, "rule"))
			}
			return nil
		},
	}
}

// rulesTable renders one row per rule with its scope and constraint kinds.
func rulesTable(rs []rules.Rule) string {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		target := r.PanelID
		if r.Scope == rules.ScopeComponent {
			target = r.ComponentID
		}
		kinds := make([]string, len(r.Constraints))
		for i, c := range r.Constraints {
			kinds[i] = string(c.Kind())
		}
		enabled := "✓"
		if !r.Enabled {
			enabled = ""
		}
		rows = append(rows, []string{r.ID, r.Name, string(r.Scope), target, enabled, strings.Join(kinds, ", ")})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Scope", "Target", "On", "Constraints").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return listHeaderStyle
			}
			if row < len(rs) && !rs[row].Enabled {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
