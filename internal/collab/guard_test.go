package collab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTestGuard(retries int) (*Guard, *[]time.Duration) {
	g := NewGuard(GuardConfig{MaxRetries: retries, BaseBackoff: 100 * time.Millisecond}, nil)
	var slept []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return g, &slept
}

func TestCallRetriesTransientFailures(t *testing.T) {
	g, slept := newTestGuard(3)
	calls := 0

	v, attempts, err := Call(context.Background(), g, "ocr", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", status.Error(codes.Unavailable, "try later")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *slept)
}

func TestCallGivesUpAfterMaxRetries(t *testing.T) {
	g, _ := newTestGuard(2)
	transient := status.Error(codes.ResourceExhausted, "quota")

	_, attempts, err := Call(context.Background(), g, "labels", func(context.Context) (int, error) {
		return 0, transient
	})

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, attempts)
}

func TestCallDoesNotRetryPermanentFailures(t *testing.T) {
	g, slept := newTestGuard(5)
	permanent := errors.New("bad document")

	_, attempts, err := Call(context.Background(), g, "ocr", func(context.Context) ([]string, error) {
		return nil, permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *slept)
}

func TestCallAppliesPerAttemptTimeout(t *testing.T) {
	g := NewGuard(GuardConfig{Timeout: 10 * time.Millisecond}, nil)

	_, attempts, err := Call(context.Background(), g, "ocr", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
}

func TestCallStopsOnCanceledContext(t *testing.T) {
	g := NewGuard(GuardConfig{RatePerSecond: 1, Burst: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, attempts, err := Call(ctx, g, "ocr", func(context.Context) (string, error) {
		return "never", nil
	})

	assert.Error(t, err)
	assert.Equal(t, 0, attempts)
}
