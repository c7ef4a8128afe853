// Package analysis drives a document or an image set through text
// acquisition, field extraction and label selection, consulting the cache
// before any collaborator call.
package analysis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/cache"
	"github.com/joseph-ayodele/claims-triage/internal/collab"
	"github.com/joseph-ayodele/claims-triage/internal/common"
	"github.com/joseph-ayodele/claims-triage/internal/fields"
)

// Config tunes extraction and cache keying.
type Config struct {
	Fields         fields.Options
	LabelThreshold float64
	KeyScheme      cache.Scheme
}

// DefaultConfig returns stock windows, threshold and the digest key scheme.
func DefaultConfig() Config {
	return Config{
		Fields:         fields.DefaultOptions(),
		LabelThreshold: constants.LabelConfidenceThreshold,
		KeyScheme:      cache.SchemeDigest,
	}
}

// ConfigFrom maps application configuration onto analysis settings.
func ConfigFrom(cfg *common.Config) Config {
	c := DefaultConfig()
	c.Fields.Windows = fields.Windows{
		VAT:    cfg.Tuning.VATWindow,
		Policy: cfg.Tuning.PolicyWindow,
		Date:   cfg.Tuning.DateWindow,
		Price:  cfg.Tuning.PriceWindow,
	}
	c.LabelThreshold = cfg.Tuning.LabelThreshold
	c.KeyScheme = cache.Scheme(cfg.Cache.KeyScheme)
	return c
}

// Analyzer is safe for concurrent use. Concurrent requests for the same
// content share a single collaborator call.
type Analyzer struct {
	cache    *cache.Cache
	provider *collab.Provider
	guard    *collab.Guard
	cfg      Config
	flights  singleflight.Group
	logger   *slog.Logger
}

func New(c *cache.Cache, provider *collab.Provider, guard *collab.Guard, cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if guard == nil {
		guard = collab.NewGuard(collab.GuardConfig{}, logger)
	}
	if cfg.KeyScheme == "" {
		cfg.KeyScheme = cache.SchemeDigest
	}
	return &Analyzer{
		cache:    c,
		provider: provider,
		guard:    guard,
		cfg:      cfg,
		logger:   logger,
	}
}

// share runs fn at most once per key among concurrent callers. fn runs
// detached from the caller's cancellation, so one caller giving up does not
// fail the others; each caller stops waiting when its own ctx is done.
// Attempts inside fn stay bounded by the Guard's per-attempt timeout.
func share[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (any, error) {
		return fn(flightCtx)
	})
	var zero T
	select {
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Shared, r.Err
		}
		return r.Val.(T), r.Shared, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func requestID(ctx context.Context) string {
	if id := common.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// stateLog records the transitions of one analysis.
type stateLog struct {
	logger *slog.Logger
	state  constants.AnalysisState
}

func newStateLog(logger *slog.Logger) *stateLog {
	s := &stateLog{logger: logger, state: constants.StateReceived}
	logger.Info("analysis.state", "to", constants.StateReceived)
	return s
}

func (s *stateLog) to(next constants.AnalysisState, args ...any) {
	s.logger.Info("analysis.state", append([]any{"from", s.state, "to", next}, args...)...)
	s.state = next
}
