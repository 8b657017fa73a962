package route

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// ErrNoEstimate signals the provider had no usable answer for a leg. The
// caller falls back to a straight-line estimate.
var ErrNoEstimate = errors.New("route: directions provider returned no estimate")

// DirectionsProvider estimates one leg between two coordinates.
type DirectionsProvider interface {
	Estimate(ctx context.Context, req types.DirectionsRequest) (types.DirectionsEstimate, error)
}

var _ DirectionsProvider = (*KakaoDirectionsClient)(nil)

// KakaoDirectionsClient talks to the Kakao Mobility navigation API. Driving
// uses the GET directions endpoint, walking the POST waypoints endpoint.
// Transit has no API coverage and always reports ErrNoEstimate.
type KakaoDirectionsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewKakaoDirectionsClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *KakaoDirectionsClient {
	return &KakaoDirectionsClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type kakaoDirectionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

func (c *KakaoDirectionsClient) Estimate(ctx context.Context, req types.DirectionsRequest) (types.DirectionsEstimate, error) {
	if c.apiKey == "" {
		return types.DirectionsEstimate{}, ErrNoEstimate
	}

	var httpReq *http.Request
	var err error

	switch req.Mode {
	case types.TransportDrive:
		httpReq, err = c.driveRequest(ctx, req)
	case types.TransportWalk:
		httpReq, err = c.walkRequest(ctx, req)
	default:
		return types.DirectionsEstimate{}, ErrNoEstimate
	}
	if err != nil {
		return types.DirectionsEstimate{}, fmt.Errorf("route: failed to build directions request: %w", err)
	}

	httpReq.Header.Set("Authorization", "KakaoAK "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return types.DirectionsEstimate{}, fmt.Errorf("route: directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WarnContext(ctx, "Directions provider returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return types.DirectionsEstimate{}, ErrNoEstimate
	}

	var parsed kakaoDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return types.DirectionsEstimate{}, fmt.Errorf("route: failed to decode directions response: %w", err)
	}
	if len(parsed.Routes) == 0 || parsed.Routes[0].Summary.Distance == 0 {
		return types.DirectionsEstimate{}, ErrNoEstimate
	}

	return types.DirectionsEstimate{
		DistanceMeters:  parsed.Routes[0].Summary.Distance,
		DurationSeconds: parsed.Routes[0].Summary.Duration,
	}, nil
}

func (c *KakaoDirectionsClient) driveRequest(ctx context.Context, req types.DirectionsRequest) (*http.Request, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", req.Origin.Lng, req.Origin.Lat))
	params.Set("destination", fmt.Sprintf("%f,%f", req.Destination.Lng, req.Destination.Lat))
	params.Set("priority", "RECOMMEND")
	params.Set("car_fuel", "GASOLINE")
	params.Set("car_hipass", "false")
	params.Set("alternatives", "false")
	params.Set("road_details", "false")

	endpoint := c.baseURL + "/v1/directions?" + params.Encode()
	return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
}

func (c *KakaoDirectionsClient) walkRequest(ctx context.Context, req types.DirectionsRequest) (*http.Request, error) {
	body := map[string]any{
		"origin":       map[string]float64{"x": req.Origin.Lng, "y": req.Origin.Lat},
		"destination":  map[string]float64{"x": req.Destination.Lng, "y": req.Destination.Lat},
		"waypoints":    []any{},
		"priority":     "DISTANCE",
		"car_fuel":     "GASOLINE",
		"car_hipass":   false,
		"alternatives": false,
		"road_details": false,
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/v1/waypoints/directions"
	return http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
}
