package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

const defaultTimeout = 5 * time.Second

// Provider fetches current conditions for a Korean city.
type Provider interface {
	Current(ctx context.Context, city string) (*types.WeatherInfo, error)
}

// OpenWeatherClient proxies the OpenWeather current-weather endpoint.
type OpenWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Provider = (*OpenWeatherClient)(nil)

func NewOpenWeatherClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *OpenWeatherClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenWeatherClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (c *OpenWeatherClient) Current(ctx context.Context, city string) (*types.WeatherInfo, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather: no API key configured")
	}

	q := url.Values{}
	q.Set("q", city+",KR")
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "kr")

	reqURL := fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "OpenWeather returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("city", city),
		)
		return nil, fmt.Errorf("weather: upstream returned status %d", resp.StatusCode)
	}

	var body openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather: failed to decode response: %w", err)
	}
	if len(body.Weather) == 0 {
		return nil, fmt.Errorf("weather: empty conditions for city %q", city)
	}

	return &types.WeatherInfo{
		TemperatureC: int(math.Round(body.Main.Temp)),
		Description:  body.Weather[0].Description,
		Icon:         body.Weather[0].Icon,
		Humidity:     body.Main.Humidity,
		WindSpeedMS:  body.Wind.Speed,
	}, nil
}

// Service resolves current weather, degrading to a canned mild reading when
// the upstream is unreachable so dependent flows keep working.
type Service interface {
	Current(ctx context.Context, city string) (*types.WeatherInfo, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	provider Provider
	logger   *slog.Logger
}

func NewServiceImpl(provider Provider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{provider: provider, logger: logger}
}

func (s *ServiceImpl) Current(ctx context.Context, city string) (*types.WeatherInfo, error) {
	ctx, span := otel.Tracer("WeatherService").Start(ctx, "Current")
	defer span.End()
	span.SetAttributes(attribute.String("weather.city", city))

	if city == "" {
		return nil, fmt.Errorf("weather: city must not be empty")
	}

	if s.provider != nil {
		info, err := s.provider.Current(ctx, city)
		if err == nil {
			return info, nil
		}
		s.logger.WarnContext(ctx, "Weather lookup failed, serving mock conditions",
			slog.String("city", city),
			slog.Any("error", err),
		)
	}

	metrics.Get().ProviderFallbacksTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Bool("weather.mock", true))
	return mockWeather(), nil
}

func mockWeather() *types.WeatherInfo {
	return &types.WeatherInfo{
		TemperatureC: 20,
		Description:  "맑음",
		Icon:         "01d",
		Humidity:     60,
		WindSpeedMS:  2.5,
		IsMock:       true,
	}
}
