package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/buildinfo"
	"github.com/matzehuels/cabinetry/pkg/cache"
	"github.com/matzehuels/cabinetry/pkg/config"
	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "cabinetry"

// ErrViolations is returned by check when the design has error-severity
// violations, so the process exits non-zero without printing it twice.
var ErrViolations = errors.New("design has rule errors")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cabinetry checks electrical cabinet panel layouts against rules",
		Long: `Cabinetry evaluates a rule set against components placed on cabinet mounting
panels, reporting overlaps, spacing, count, dimension and co-usage violations,
and keeps panel stacks laid out: gaps, capacity, insertion and reordering.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cabinetry/config.toml)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.allowedCommand())
	root.AddCommand(c.rulesCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies the log level.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	level := cfg.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)
	observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
	observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, keyer, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache picks Redis when a URL is configured and the file cache otherwise.
func (c *CLI) newCache(noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Config.Cache.Prefix)
	}
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), keyer, nil
	}
	if url := c.Config.Cache.Redis; url != "" {
		rc, err := cache.NewRedisCache(url)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, keyer, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), keyer, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, keyer, nil
}

// cacheDir returns the configured file cache directory, defaulting to
// ~/.cache/cabinetry.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
