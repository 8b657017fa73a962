package route

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

var (
	seoul = types.LatLng{Lat: 37.5665, Lng: 126.9780}
	busan = types.LatLng{Lat: 35.1796, Lng: 129.0756}
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func place(name string, lat, lng float64) types.Place {
	return types.Place{ID: name, Name: name, Lat: lat, Lng: lng}
}

func TestHaversine_SeoulToBusan(t *testing.T) {
	got := Haversine(seoul, busan)
	assert.InDelta(t, 325000, got, 5000)
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	assert.Zero(t, Haversine(seoul, seoul))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "999m", FormatDistance(999))
	assert.Equal(t, "1.0km", FormatDistance(1000))
	assert.Equal(t, "1.5km", FormatDistance(1500))
	assert.Equal(t, "12m", FormatDistance(12.4))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30분", FormatDuration(1800))
	assert.Equal(t, "1시간 30분", FormatDuration(5400))
	assert.Equal(t, "0분", FormatDuration(0))
	assert.Equal(t, "2시간 0분", FormatDuration(7200))
}

func TestEstimateCost(t *testing.T) {
	assert.Equal(t, 1500, EstimateCost(types.TransportDrive, 10000, 4))
	assert.Equal(t, 6000, EstimateCost(types.TransportTransit, 10000, 4))
	assert.Equal(t, 0, EstimateCost(types.TransportWalk, 10000, 4))
}

func TestParseTransportMode(t *testing.T) {
	for raw, want := range map[string]types.TransportMode{
		"도보":      types.TransportWalk,
		"WALK":    types.TransportWalk,
		"자동차":     types.TransportDrive,
		"CAR":     types.TransportDrive,
		"":        types.TransportDrive,
		"대중교통":    types.TransportTransit,
		"TRANSIT": types.TransportTransit,
	} {
		got, err := ParseTransportMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseTransportMode("teleport")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

type stubDirections struct {
	est  types.DirectionsEstimate
	err  error
	hits int
}

func (s *stubDirections) Estimate(_ context.Context, _ types.DirectionsRequest) (types.DirectionsEstimate, error) {
	s.hits++
	return s.est, s.err
}

func TestComputeRoute_TooFewPlaces(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())

	summary, err := svc.ComputeRoute(context.Background(), []types.Place{place("a", 37.5, 127.0)}, types.TransportWalk)
	require.NoError(t, err)
	assert.Nil(t, summary)

	summary, err = svc.ComputeRoute(context.Background(), nil, types.TransportWalk)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestComputeRoute_FallbackEstimates(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	places := []types.Place{
		place("서울", seoul.Lat, seoul.Lng),
		place("대전", 36.3504, 127.3845),
		place("부산", busan.Lat, busan.Lng),
	}

	summary, err := svc.ComputeRoute(context.Background(), places, types.TransportDrive)
	require.NoError(t, err)

	require.Len(t, summary.Segments, 2)
	assert.Equal(t, "서울", summary.Segments[0].From)
	assert.Equal(t, "대전", summary.Segments[0].To)
	assert.Equal(t, "대전", summary.Segments[1].From)
	assert.Equal(t, "부산", summary.Segments[1].To)

	var wantDistance, wantDuration float64
	for _, seg := range summary.Segments {
		wantDistance += seg.DistanceMeters
		wantDuration += seg.DurationSeconds
	}
	assert.InDelta(t, wantDistance, summary.TotalDistanceMeters, 0.001)
	assert.InDelta(t, wantDuration, summary.TotalDurationSeconds, 0.001)
	assert.InDelta(t, wantDuration+3*3600, summary.RecommendedDurationSeconds, 0.001)
	assert.Equal(t, EstimateCost(types.TransportDrive, wantDistance, 3), summary.EstimatedCostKRW)
	assert.Equal(t, types.TransportDrive, summary.Mode)

	// Straight-line duration at 40km/h.
	assert.InDelta(t, summary.Segments[0].DistanceMeters/1000/40*3600, summary.Segments[0].DurationSeconds, 0.001)
}

func TestComputeRoute_UsesProviderEstimates(t *testing.T) {
	stub := &stubDirections{est: types.DirectionsEstimate{DistanceMeters: 2500, DurationSeconds: 600}}
	svc := NewServiceImpl(stub, testLogger())
	places := []types.Place{
		place("a", 37.50, 127.00),
		place("b", 37.52, 127.02),
		place("c", 37.54, 127.04),
	}

	summary, err := svc.ComputeRoute(context.Background(), places, types.TransportDrive)
	require.NoError(t, err)

	assert.Equal(t, 2, stub.hits)
	assert.InDelta(t, 5000, summary.TotalDistanceMeters, 0.001)
	assert.InDelta(t, 1200, summary.TotalDurationSeconds, 0.001)
	assert.Equal(t, "2.5km", summary.Segments[0].DistanceText)
	assert.Equal(t, "10분", summary.Segments[0].DurationText)
}

func TestComputeRoute_ProviderErrorFallsBack(t *testing.T) {
	stub := &stubDirections{err: ErrNoEstimate}
	svc := NewServiceImpl(stub, testLogger())
	places := []types.Place{
		place("서울", seoul.Lat, seoul.Lng),
		place("부산", busan.Lat, busan.Lng),
	}

	summary, err := svc.ComputeRoute(context.Background(), places, types.TransportWalk)
	require.NoError(t, err)
	assert.InDelta(t, Haversine(seoul, busan), summary.TotalDistanceMeters, 1)
	assert.Equal(t, 0, summary.EstimatedCostKRW)
}

func TestComputeRoute_Deterministic(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	places := []types.Place{
		place("a", 37.50, 127.00),
		place("b", 37.60, 127.10),
		place("c", 37.40, 126.90),
	}

	first, err := svc.ComputeRoute(context.Background(), places, types.TransportTransit)
	require.NoError(t, err)
	second, err := svc.ComputeRoute(context.Background(), places, types.TransportTransit)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimize_GreedyNearestNeighbor(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	// Laid out west to east; starting in the middle the greedy walk picks the
	// nearest remaining place at each hop.
	places := []types.Place{
		place("east", 37.50, 127.30),
		place("center", 37.50, 127.00),
		place("west", 37.50, 126.85),
		place("near-center", 37.50, 127.05),
	}

	optimized, err := svc.Optimize(context.Background(), places, 1)
	require.NoError(t, err)

	names := make([]string, len(optimized))
	for i, p := range optimized {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"center", "near-center", "west", "east"}, names)

	// Input order is untouched.
	assert.Equal(t, "east", places[0].Name)
	assert.Equal(t, "center", places[1].Name)
}

func TestOptimize_FixedPointOnOwnOutput(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	places := []types.Place{
		place("east", 37.50, 127.30),
		place("center", 37.50, 127.00),
		place("west", 37.50, 126.85),
		place("near-center", 37.50, 127.05),
	}

	once, err := svc.Optimize(context.Background(), places, 1)
	require.NoError(t, err)
	twice, err := svc.Optimize(context.Background(), once, 0)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestOptimize_InvalidStartIndexDefaultsToZero(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	places := []types.Place{
		place("a", 37.50, 127.00),
		place("b", 37.51, 127.01),
	}

	optimized, err := svc.Optimize(context.Background(), places, 99)
	require.NoError(t, err)
	assert.Equal(t, "a", optimized[0].Name)
}

func TestOptimize_TooFewPlaces(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())

	optimized, err := svc.Optimize(context.Background(), []types.Place{place("a", 1, 1)}, 0)
	require.NoError(t, err)
	require.Len(t, optimized, 1)
	assert.Equal(t, "a", optimized[0].Name)
}
