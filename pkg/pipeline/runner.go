package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/pkg/cache"
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/engine"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/layout"
	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// Runner executes checks with caching. It holds no per-check state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Check lays out the design and evaluates the rules against it.
func (r *Runner) Check(ctx context.Context, in Input, opts Options) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	hash, err := inputHash(in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash input")
	}
	result := &Result{InputHash: hash}

	placements := in.Design.Placements
	if !opts.SkipLayout {
		start := time.Now()
		var hit bool
		placements, hit, err = r.LayoutWithCacheInfo(ctx, in, hash, opts)
		if err != nil {
			return nil, err
		}
		result.Stats.LayoutTime = time.Since(start)
		result.CacheInfo.LayoutHit = hit
		logger.Debug("applied layout", "placements", len(placements), "cached", hit, "duration", result.Stats.LayoutTime)
	}
	result.Placements = placements

	laidOut := *in.Design
	laidOut.Placements = placements
	start := time.Now()
	violations, hit, err := r.EvaluateWithCacheInfo(ctx, Input{Design: &laidOut, Rules: in.Rules}, hash, opts)
	if err != nil {
		return nil, err
	}
	if violations == nil {
		violations = []rules.Violation{}
	}
	result.Violations = violations
	result.Stats.EvaluateTime = time.Since(start)
	result.Stats.Errors, result.Stats.Warnings = rules.CountBySeverity(violations)
	result.CacheInfo.EvaluateHit = hit

	logger.Info("checked design",
		"panels", len(in.Design.Panels),
		"rules", len(in.Rules),
		"errors", result.Stats.Errors,
		"warnings", result.Stats.Warnings)
	return result, nil
}

// LayoutWithCacheInfo applies gaps to the design and reports whether the
// result came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, in Input, hash string, opts Options) ([]design.CanvasComponent, bool, error) {
	key := r.Keyer.LayoutKey(hash)
	var cached []design.CanvasComponent
	if r.lookup(ctx, key, "layout", opts, &cached) {
		return cached, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(in.Design.Panels), len(in.Design.Placements))
	start := time.Now()
	d := in.Design
	placements := layout.ApplyGaps(d.Panels, d.Placements, d.Catalog, in.Rules, d.Library)
	hooks.OnLayoutComplete(ctx, len(placements), time.Since(start), nil)

	r.store(ctx, key, "layout", placements, cache.TTLLayout)
	return placements, false, nil
}

// EvaluateWithCacheInfo evaluates the rules against the design as given and
// reports whether the result came from the cache.
func (r *Runner) EvaluateWithCacheInfo(ctx context.Context, in Input, hash string, opts Options) ([]rules.Violation, bool, error) {
	key := r.Keyer.EvaluationKey(hash, cache.EvaluationKeyOpts{Layout: !opts.SkipLayout})
	var cached []rules.Violation
	if r.lookup(ctx, key, "eval", opts, &cached) {
		return cached, true, nil
	}

	hooks := observability.Pipeline()
	d := in.Design
	hooks.OnEvaluateStart(ctx, len(in.Rules), len(d.Placements))
	start := time.Now()
	violations := engine.New(r.logger(opts)).Evaluate(in.Rules, d.Panels, d.Placements, d.Catalog)
	hooks.OnEvaluateComplete(ctx, len(violations), time.Since(start), nil)

	r.store(ctx, key, "eval", violations, cache.TTLEvaluation)
	return violations, false, nil
}

// Evaluate is EvaluateWithCacheInfo without the cache hit flag, hashing the
// input itself.
func (r *Runner) Evaluate(ctx context.Context, in Input, opts Options) ([]rules.Violation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := inputHash(in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash input")
	}
	opts.SkipLayout = true
	vs, _, err := r.EvaluateWithCacheInfo(ctx, in, hash, opts)
	return vs, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup decodes a cached value into v. Backend failures are retried when
// retryable and otherwise treated as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, opts Options, v any) bool {
	if opts.Refresh {
		return false
	}
	var data []byte
	var hit bool
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.logger(opts).Warn("cache read failed", "type", keyType, "err", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := decode(data, v); err != nil {
		r.logger(opts).Debug("discarding undecodable cache entry", "type", keyType, "err", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

func (r *Runner) store(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := encode(v)
	if err != nil {
		r.Logger.Debug("cannot encode cache entry", "type", keyType, "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// inputHash identifies a design and rule set by content.
func inputHash(in Input) (string, error) {
	return cache.HashJSON(struct {
		Design *design.Design `json:"design"`
		Rules  []rules.Rule   `json:"rules"`
	}{in.Design, in.Rules})
}
