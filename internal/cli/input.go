package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// inputFlags are the design and rule file arguments shared by commands.
type inputFlags struct {
	rules string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.rules, "rules", "r", "", "rule file (.json, .yaml, .toml); defaults to the config's rules")
}

// loadInput reads a design file and the rule file named by flags or config.
func (c *CLI) loadInput(designPath string, f inputFlags) (pipeline.Input, error) {
	d, err := design.ReadDesignFile(designPath)
	if err != nil {
		return pipeline.Input{}, err
	}
	rs, err := c.loadRules(f.rules)
	if err != nil {
		return pipeline.Input{}, err
	}
	in := pipeline.Input{Design: d, Rules: rs}
	if err := in.Validate(); err != nil {
		return pipeline.Input{}, err
	}
	c.Logger.Debug("loaded input", "design", designPath, "panels", len(d.Panels), "placements", len(d.Placements), "rules", len(rs))
	return in, nil
}

func (c *CLI) loadRules(path string) ([]rules.Rule, error) {
	if path == "" {
		path = c.Config.Rules
	}
	if path == "" {
		c.Logger.Warn("no rule file given; checking with an empty rule set")
		return nil, nil
	}
	if err := errors.ValidateRuleFilePath(path); err != nil {
		return nil, err
	}
	return rules.ReadFile(path)
}

// writeDesign writes d to path, or to stdout when path is empty.
func writeDesign(d *design.Design, path string) error {
	if path == "" {
		return design.WriteDesign(d, os.Stdout)
	}
	if err := design.WriteDesignFile(d, path); err != nil {
		return err
	}
	printFile(path)
	return nil
}
