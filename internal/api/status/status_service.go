package status

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const maxAttempts = 3

// Check is a named readiness probe for one dependency.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// TargetStatus is the outcome of probing one dependency.
type TargetStatus struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	Attempts  int    `json:"attempts"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Report aggregates all dependency probes.
type Report struct {
	Status  string         `json:"status"`
	Targets []TargetStatus `json:"targets"`
}

// Service probes registered dependencies, retrying each with exponential
// backoff (1s, 2s, 4s) before reporting it unhealthy.
type Service interface {
	Report(ctx context.Context) *Report
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	checks  []Check
	backoff time.Duration
	logger  *slog.Logger
}

func NewServiceImpl(checks []Check, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		checks:  checks,
		backoff: time.Second,
		logger:  logger,
	}
}

func (s *ServiceImpl) Report(ctx context.Context) *Report {
	ctx, span := otel.Tracer("StatusService").Start(ctx, "Report")
	defer span.End()

	targets := make([]TargetStatus, len(s.checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, check := range s.checks {
		g.Go(func() error {
			targets[i] = s.probe(gctx, check)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Status: "ok", Targets: targets}
	for _, target := range targets {
		if !target.Healthy {
			report.Status = "degraded"
		}
	}
	span.SetAttributes(attribute.String("status.overall", report.Status))
	return report
}

// probe retries with doubling delays. The first failure waits 1s, the second
// 2s; after the third failure the target is reported down.
func (s *ServiceImpl) probe(ctx context.Context, check Check) TargetStatus {
	start := time.Now()
	delay := s.backoff

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = check.Fn(ctx)
		if lastErr == nil {
			return TargetStatus{
				Name:      check.Name,
				Healthy:   true,
				Attempts:  attempt,
				LatencyMS: time.Since(start).Milliseconds(),
			}
		}

		s.logger.WarnContext(ctx, "Status probe failed",
			slog.String("target", check.Name),
			slog.Int("attempt", attempt),
			slog.Any("error", lastErr),
		)

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return TargetStatus{
				Name:      check.Name,
				Healthy:   false,
				Attempts:  attempt,
				LatencyMS: time.Since(start).Milliseconds(),
				Error:     ctx.Err().Error(),
			}
		case <-time.After(delay):
		}
		delay *= 2
	}

	return TargetStatus{
		Name:      check.Name,
		Healthy:   false,
		Attempts:  maxAttempts,
		LatencyMS: time.Since(start).Milliseconds(),
		Error:     lastErr.Error(),
	}
}
