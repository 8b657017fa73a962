package route

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// Service computes and optimizes routes over a place ordering.
type Service interface {
	ComputeRoute(ctx context.Context, places []types.Place, mode types.TransportMode) (*types.RouteSummary, error)
	Optimize(ctx context.Context, places []types.Place, startIndex int) ([]types.Place, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	directions DirectionsProvider
	logger     *slog.Logger
}

func NewServiceImpl(directions DirectionsProvider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		directions: directions,
		logger:     logger,
	}
}

// ComputeRoute builds the full summary for the given ordering: one segment
// per consecutive pair, fanned out concurrently. A provider failure on any
// leg degrades that leg to a straight-line estimate instead of failing the
// route. Fewer than two places is not an error: there is no route yet, so
// the summary is nil and callers render the empty state.
func (s *ServiceImpl) ComputeRoute(ctx context.Context, places []types.Place, mode types.TransportMode) (*types.RouteSummary, error) {
	ctx, span := otel.Tracer("RouteService").Start(ctx, "ComputeRoute")
	defer span.End()
	span.SetAttributes(
		attribute.Int("route.place_count", len(places)),
		attribute.String("route.mode", string(mode)),
	)

	if len(places) < 2 {
		return nil, nil
	}

	start := time.Now()
	defer func() {
		metrics.Get().RouteComputeDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	segments := make([]types.RouteSegment, len(places)-1)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < len(places)-1; i++ {
		i := i
		g.Go(func() error {
			segments[i] = s.computeSegment(gctx, places[i], places[i+1], mode)
			return nil
		})
	}
	// Segment workers never return errors, Wait only observes cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var totalDistance, totalDuration float64
	for _, seg := range segments {
		totalDistance += seg.DistanceMeters
		totalDuration += seg.DurationSeconds
	}

	summary := &types.RouteSummary{
		TotalDistanceMeters:        totalDistance,
		TotalDistanceText:          FormatDistance(totalDistance),
		TotalDurationSeconds:       totalDuration,
		TotalDurationText:          FormatDuration(totalDuration),
		RecommendedDurationSeconds: totalDuration + float64(len(places))*3600,
		EstimatedCostKRW:           EstimateCost(mode, totalDistance, len(places)),
		Segments:                   segments,
		Mode:                       mode,
	}

	s.logger.InfoContext(ctx, "Route computed",
		slog.Int("segments", len(segments)),
		slog.String("total_distance", summary.TotalDistanceText),
		slog.String("total_duration", summary.TotalDurationText),
		slog.Int("estimated_cost", summary.EstimatedCostKRW),
	)
	return summary, nil
}

func (s *ServiceImpl) computeSegment(ctx context.Context, from, to types.Place, mode types.TransportMode) types.RouteSegment {
	origin := types.LatLng{Lat: from.Lat, Lng: from.Lng}
	dest := types.LatLng{Lat: to.Lat, Lng: to.Lng}

	var est types.DirectionsEstimate
	var err error
	if s.directions != nil {
		est, err = s.directions.Estimate(ctx, types.DirectionsRequest{
			Origin:      origin,
			Destination: dest,
			Mode:        mode,
		})
	} else {
		err = ErrNoEstimate
	}
	if err != nil || est.DistanceMeters == 0 {
		meters := Haversine(origin, dest)
		est = types.DirectionsEstimate{
			DistanceMeters:  meters,
			DurationSeconds: TravelSeconds(meters, mode),
		}
		metrics.Get().ProviderFallbacksTotal.Add(ctx, 1)
	}

	return types.RouteSegment{
		From:            from.Name,
		To:              to.Name,
		DistanceMeters:  est.DistanceMeters,
		DistanceText:    FormatDistance(est.DistanceMeters),
		DurationSeconds: est.DurationSeconds,
		DurationText:    FormatDuration(est.DurationSeconds),
		Mode:            mode,
	}
}

// Optimize reorders places with a greedy nearest-neighbor walk starting at
// startIndex. The input slice is never mutated.
func (s *ServiceImpl) Optimize(ctx context.Context, places []types.Place, startIndex int) ([]types.Place, error) {
	_, span := otel.Tracer("RouteService").Start(ctx, "Optimize")
	defer span.End()

	if len(places) < 2 {
		out := make([]types.Place, len(places))
		copy(out, places)
		return out, nil
	}
	if startIndex < 0 || startIndex >= len(places) {
		startIndex = 0
	}

	remaining := make([]types.Place, 0, len(places)-1)
	remaining = append(remaining, places[:startIndex]...)
	remaining = append(remaining, places[startIndex+1:]...)

	optimized := make([]types.Place, 0, len(places))
	optimized = append(optimized, places[startIndex])
	current := places[startIndex]

	for len(remaining) > 0 {
		nearest := 0
		minDistance := Haversine(
			types.LatLng{Lat: current.Lat, Lng: current.Lng},
			types.LatLng{Lat: remaining[0].Lat, Lng: remaining[0].Lng},
		)
		for i := 1; i < len(remaining); i++ {
			d := Haversine(
				types.LatLng{Lat: current.Lat, Lng: current.Lng},
				types.LatLng{Lat: remaining[i].Lat, Lng: remaining[i].Lng},
			)
			if d < minDistance {
				minDistance = d
				nearest = i
			}
		}
		current = remaining[nearest]
		optimized = append(optimized, current)
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
	}

	return optimized, nil
}
