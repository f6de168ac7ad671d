package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events to a logger at debug level.
// Failures are logged at error level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, panels, placements int) {
	h.Logger.Debug("layout started", "panels", panels, "placements", placements)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, placements int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("layout failed", "err", err, "duration", d)
		return
	}
	h.Logger.Debug("layout complete", "placements", placements, "duration", d)
}

func (h *LogHooks) OnEvaluateStart(_ context.Context, rules, placements int) {
	h.Logger.Debug("evaluation started", "rules", rules, "placements", placements)
}

func (h *LogHooks) OnEvaluateComplete(_ context.Context, violations int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("evaluation failed", "err", err, "duration", d)
		return
	}
	h.Logger.Debug("evaluation complete", "violations", violations, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
