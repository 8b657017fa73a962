package weather

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOpenWeatherClient_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "서울,KR", q.Get("q"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "kr", q.Get("lang"))
		assert.Equal(t, "test-key", q.Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"weather": [{"description": "흐림", "icon": "04d"}],
			"main": {"temp": 17.6, "humidity": 72},
			"wind": {"speed": 3.1}
		}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.URL, "test-key", time.Second, testLogger())
	info, err := client.Current(context.Background(), "서울")
	require.NoError(t, err)

	assert.Equal(t, 18, info.TemperatureC)
	assert.Equal(t, "흐림", info.Description)
	assert.Equal(t, "04d", info.Icon)
	assert.Equal(t, 72, info.Humidity)
	assert.Equal(t, 3.1, info.WindSpeedMS)
	assert.False(t, info.IsMock)
}

func TestOpenWeatherClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.URL, "bad-key", time.Second, testLogger())
	_, err := client.Current(context.Background(), "부산")
	assert.Error(t, err)
}

func TestOpenWeatherClient_NoAPIKey(t *testing.T) {
	client := NewOpenWeatherClient("http://unused", "", time.Second, testLogger())
	_, err := client.Current(context.Background(), "서울")
	assert.Error(t, err)
}

type failingProvider struct{}

func (failingProvider) Current(context.Context, string) (*types.WeatherInfo, error) {
	return nil, assert.AnError
}

func TestService_FallsBackToMock(t *testing.T) {
	svc := NewServiceImpl(failingProvider{}, testLogger())
	info, err := svc.Current(context.Background(), "대구")
	require.NoError(t, err)

	assert.True(t, info.IsMock)
	assert.Equal(t, 20, info.TemperatureC)
	assert.Equal(t, "맑음", info.Description)
	assert.Equal(t, "01d", info.Icon)
	assert.Equal(t, 60, info.Humidity)
	assert.Equal(t, 2.5, info.WindSpeedMS)
}

func TestService_NilProviderUsesMock(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	info, err := svc.Current(context.Background(), "제주")
	require.NoError(t, err)
	assert.True(t, info.IsMock)
}

func TestService_EmptyCity(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	_, err := svc.Current(context.Background(), "")
	assert.Error(t, err)
}
