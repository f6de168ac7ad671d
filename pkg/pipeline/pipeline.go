// Package pipeline runs the layout → evaluate flow shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// A check has two stages:
//
//  1. Layout: reconcile gap placements with the rule set and restack every
//     panel ([layout.ApplyGaps])
//  2. Evaluate: run the rule set against the laid-out design
//     ([engine.Evaluator])
//
// Layout always runs before evaluation, since the geometric evaluators read
// final positions. Both stages are cached by a content hash of their inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Check(ctx, pipeline.Input{Design: d, Rules: rs}, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, v := range result.Violations {
//	    fmt.Println(v.Severity, v.Message)
//	}
//
// Editing operations ([AddComponent], [MovePlacement], [RemovePlacement])
// resolve ids against a design and return an updated copy.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// =============================================================================
// Input and Options
// =============================================================================

// Input is what a check runs on.
type Input struct {
	Design *design.Design
	Rules  []rules.Rule
}

// Validate checks the design and every rule.
func (in Input) Validate() error {
	if in.Design == nil {
		return errors.New(errors.ErrCodeInvalidInput, "design is required")
	}
	if err := in.Design.Validate(); err != nil {
		return err
	}
	for _, r := range in.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Options control a check.
type Options struct {
	// SkipLayout evaluates placements as given, without applying gaps.
	SkipLayout bool `json:"skipLayout,omitempty"`

	// Refresh bypasses cached results (they are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger `json:"-"`
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of a check.
type Result struct {
	// Placements after layout, or the input placements with SkipLayout.
	Placements []design.CanvasComponent `json:"placements" msgpack:"placements"`

	Violations []rules.Violation `json:"violations" msgpack:"violations"`

	// InputHash identifies the design and rule set.
	InputHash string `json:"inputHash" msgpack:"inputHash"`

	Stats     Stats     `json:"stats" msgpack:"stats"`
	CacheInfo CacheInfo `json:"cache" msgpack:"cache"`
}

// Stats contains check statistics.
type Stats struct {
	Errors       int           `json:"errors" msgpack:"errors"`
	Warnings     int           `json:"warnings" msgpack:"warnings"`
	LayoutTime   time.Duration `json:"layoutTime" msgpack:"layoutTime"`
	EvaluateTime time.Duration `json:"evaluateTime" msgpack:"evaluateTime"`
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	LayoutHit   bool `json:"layoutHit" msgpack:"layoutHit"`
	EvaluateHit bool `json:"evaluateHit" msgpack:"evaluateHit"`
}

// HasErrors reports whether any violation is an error.
func (r *Result) HasErrors() bool {
	return r.Stats.Errors > 0
}

// =============================================================================
// Output Formats
// =============================================================================

// Graph output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidGraphFormats is the set of supported co-usage graph formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidateGraphFormat checks that a graph format is supported.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg)", format)
	}
	return nil
}
