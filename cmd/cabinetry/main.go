package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/internal/cli"
	cerrors "github.com/matzehuels/cabinetry/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, log.InfoLevel)
	err := c.RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(130) // SIGINT
	case errors.Is(err, cli.ErrViolations):
		os.Exit(1)
	default:
		if code := cerrors.GetCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "error [%s]: %s\n", code, cerrors.UserMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(2)
	}
}
