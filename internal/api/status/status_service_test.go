package status

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newFastService(checks []Check) *ServiceImpl {
	svc := NewServiceImpl(checks, testLogger())
	svc.backoff = time.Millisecond
	return svc
}

func TestReport_AllHealthy(t *testing.T) {
	svc := newFastService([]Check{
		{Name: "postgres", Fn: func(context.Context) error { return nil }},
		{Name: "kakao", Fn: func(context.Context) error { return nil }},
	})

	report := svc.Report(context.Background())
	assert.Equal(t, "ok", report.Status)
	require.Len(t, report.Targets, 2)
	for _, target := range report.Targets {
		assert.True(t, target.Healthy)
		assert.Equal(t, 1, target.Attempts)
	}
}

func TestReport_RecoversWithinRetryBudget(t *testing.T) {
	calls := 0
	svc := newFastService([]Check{
		{Name: "flaky", Fn: func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		}},
	})

	report := svc.Report(context.Background())
	assert.Equal(t, "ok", report.Status)
	require.Len(t, report.Targets, 1)
	assert.True(t, report.Targets[0].Healthy)
	assert.Equal(t, 3, report.Targets[0].Attempts)
}

func TestReport_GivesUpAfterThreeAttempts(t *testing.T) {
	calls := 0
	svc := newFastService([]Check{
		{Name: "down", Fn: func(context.Context) error {
			calls++
			return errors.New("connection refused")
		}},
	})

	report := svc.Report(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, 3, calls)

	target := report.Targets[0]
	assert.False(t, target.Healthy)
	assert.Equal(t, 3, target.Attempts)
	assert.Contains(t, target.Error, "connection refused")
}

func TestReport_MixedHealthIsDegraded(t *testing.T) {
	svc := newFastService([]Check{
		{Name: "up", Fn: func(context.Context) error { return nil }},
		{Name: "down", Fn: func(context.Context) error { return errors.New("boom") }},
	})

	report := svc.Report(context.Background())
	assert.Equal(t, "degraded", report.Status)
}

func TestReport_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := NewServiceImpl([]Check{
		{Name: "slow", Fn: func(context.Context) error {
			cancel()
			return errors.New("unreachable")
		}},
	}, testLogger())

	report := svc.Report(ctx)
	target := report.Targets[0]
	assert.False(t, target.Healthy)
	assert.Equal(t, 1, target.Attempts)
}
