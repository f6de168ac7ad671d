package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/internal/server"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the check and layout API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sc := c.Config.Server
			if addr != "" {
				sc.Addr = addr
			}
			srv := server.New(runner, c.Logger, server.Options{
				Addr:            sc.Addr,
				ReadTimeout:     sc.ReadTimeout.Duration,
				WriteTimeout:    sc.WriteTimeout.Duration,
				ShutdownTimeout: sc.ShutdownTimeout.Duration,
				MaxBodyBytes:    sc.MaxBodyBytes,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
