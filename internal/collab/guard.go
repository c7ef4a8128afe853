package collab

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/joseph-ayodele/claims-triage/internal/common"
)

// GuardConfig holds the limits applied around every collaborator call.
type GuardConfig struct {
	Timeout       time.Duration // per attempt, 0 disables
	MaxRetries    int           // retries after the first attempt
	BaseBackoff   time.Duration // doubled after every failed attempt
	RatePerSecond float64       // 0 disables rate limiting
	Burst         int
}

// GuardConfigFrom maps application configuration onto guard settings.
func GuardConfigFrom(cfg common.CollaboratorConfig) GuardConfig {
	return GuardConfig{
		Timeout:       cfg.Timeout,
		MaxRetries:    cfg.MaxRetries,
		BaseBackoff:   cfg.BaseBackoff,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.Burst,
	}
}

// Guard serializes collaborator calls through a token bucket and retries
// transient failures with exponential backoff.
type Guard struct {
	cfg     GuardConfig
	limiter *rate.Limiter
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewGuard(cfg GuardConfig, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Guard{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		sleep:   sleepCtx,
	}
}

// Call runs fn under g and returns its value with the number of attempts
// that reached the collaborator.
func Call[T any](ctx context.Context, g *Guard, op string, fn func(context.Context) (T, error)) (T, int, error) {
	var zero T
	attempts := 0
	backoff := g.cfg.BaseBackoff
	for {
		if err := g.limiter.Wait(ctx); err != nil {
			return zero, attempts, err
		}

		attempts++
		v, err := attempt(ctx, g.cfg.Timeout, fn)
		if err == nil {
			if attempts > 1 {
				g.logger.Info("collab.call.recovered", "op", op, "attempts", attempts)
			}
			return v, attempts, nil
		}

		if ctx.Err() != nil || !common.IsTransient(err) || attempts > g.cfg.MaxRetries {
			g.logger.Error("collab.call.failed", "op", op, "attempts", attempts, "error", err)
			return zero, attempts, err
		}
		g.logger.Warn("collab.call.retry", "op", op, "attempt", attempts, "backoff", backoff, "error", err)
		if err := g.sleep(ctx, backoff); err != nil {
			return zero, attempts, err
		}
		backoff *= 2
	}
}

func attempt[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
