// Package cli implements the cabinetry command-line interface.
//
// Commands read a design file (panels, library, catalog and placements as
// JSON) and a rule file (JSON, YAML or TOML), run them through the pipeline
// and print the outcome:
//   - check: evaluate rules against a laid-out design
//   - layout: apply gaps, add, move or remove placements
//   - allowed: list catalog entries the selection rules admit on a panel
//   - rules: convert and list rule files
//   - graph: draw the co-usage requirement graph
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//
// All commands accept --verbose (-v) for debug logging and --config to point
// at a TOML settings file.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing timestamps as "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Checked 3 panels (12ms)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}
