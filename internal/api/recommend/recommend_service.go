package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/api/places"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

const (
	resultTTL       = 15 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// AIProvider is the text-generation surface the service needs.
type AIProvider interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Service produces weather-aware place recommendations.
type Service interface {
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	ai      AIProvider
	logger  *slog.Logger
	results *cache.Cache
}

func NewServiceImpl(ai AIProvider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		ai:      ai,
		logger:  logger,
		results: cache.New(resultTTL, cleanupInterval),
	}
}

// Recommend asks the model for the 4+1 panel and normalizes the answer.
// Model failures degrade to a locally generated panel so the flow never dies
// on an upstream hiccup. Results are cached per location, preference and
// weather bucket.
func (s *ServiceImpl) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "Recommend")
	defer span.End()
	span.SetAttributes(
		attribute.String("recommend.location", req.Location),
		attribute.String("recommend.travel_style", req.Preferences.TravelStyle),
	)

	if req.Location == "" {
		return nil, fmt.Errorf("recommend: location must not be empty")
	}

	metrics.Get().RecommendationRequestsTotal.Add(ctx, 1)

	key := cacheKey(req)
	if cached, found := s.results.Get(key); found {
		if resp, ok := cached.(*RecommendResponse); ok {
			span.SetAttributes(attribute.Bool("recommend.cache_hit", true))
			return resp, nil
		}
	}

	goodWeather := IsGoodWeather(req.Weather)
	weatherBased := "indoor"
	if goodWeather {
		weatherBased = "outdoor"
	}

	payload, err := s.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Ok, "served from fallback")
		metrics.Get().ProviderFallbacksTotal.Add(ctx, 1)
		s.logger.WarnContext(ctx, "Model recommendation failed, serving local fallback",
			slog.String("location", req.Location),
			slog.Any("error", err),
		)
		resp := &RecommendResponse{
			Success:         true,
			Recommendations: fallbackRecommendations(req.Location, req.Preferences.TravelStyle, goodWeather),
			WeatherBased:    weatherBased,
			IsMock:          true,
		}
		s.results.Set(key, resp, cache.DefaultExpiration)
		return resp, nil
	}

	records := make([]types.RecommendationRecord, 0, len(payload.Recommendations))
	for _, raw := range payload.Recommendations {
		records = append(records, toRecord(raw))
	}

	resp := &RecommendResponse{
		Success:         true,
		Summary:         payload.Summary,
		Recommendations: records,
		WeatherBased:    weatherBased,
	}
	s.results.Set(key, resp, cache.DefaultExpiration)

	s.logger.InfoContext(ctx, "Recommendations generated",
		slog.String("location", req.Location),
		slog.Int("count", len(records)),
	)
	return resp, nil
}

func (s *ServiceImpl) generate(ctx context.Context, req RecommendRequest) (*aiPayload, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("recommend: no AI provider configured")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.8),
		MaxOutputTokens: 2000,
	}
	raw, err := s.ai.GenerateContent(ctx, buildPrompt(req), config)
	if err != nil {
		return nil, err
	}
	return parsePayload(raw)
}

// toRecord fills both alias field families so every downstream consumer can
// read its preferred name.
func toRecord(raw rawRecommendation) types.RecommendationRecord {
	indoor := raw.IsIndoor
	return types.RecommendationRecord{
		ContentID:           "gpt_" + uuid.NewString(),
		Title:               raw.Title,
		Name:                raw.Title,
		Description:         raw.Description,
		Reason:              raw.Description,
		Category:            raw.Category,
		AltCategory:         raw.Category,
		Address:             raw.Address,
		Addr1:               raw.Address,
		MapY:                strconv.FormatFloat(places.DefaultLat, 'f', 4, 64),
		MapX:                strconv.FormatFloat(places.DefaultLng, 'f', 4, 64),
		Rating:              ptrFloat(4.0),
		ReviewCount:         ptrInt(0),
		Tags:                raw.Tags,
		Keywords:            raw.Tags,
		IsIndoor:            &indoor,
		EstimatedCost:       raw.EstimatedCost,
		RecommendedDuration: raw.RecommendedDuration,
	}
}

// fallbackRecommendations builds the 4+1 panel locally when the model is
// unavailable. Bad weather flips the panel indoor.
func fallbackRecommendations(location, travelStyle string, goodWeather bool) []types.RecommendationRecord {
	type entry struct {
		title    string
		category string
		indoor   bool
		tags     []string
	}

	var entries []entry
	if goodWeather {
		entries = []entry{
			{title: location + " 대표 관광명소", category: "관광명소", indoor: false, tags: []string{"인기", "야외"}},
			{title: location + " 현지 맛집", category: "맛집", indoor: true, tags: []string{"맛집", "현지음식"}},
			{title: location + " 감성 카페", category: "카페", indoor: true, tags: []string{"카페", "디저트"}},
			{title: location + " 자연 명소", category: "자연", indoor: false, tags: []string{"자연", "산책"}},
		}
	} else {
		entries = []entry{
			{title: location + " 박물관", category: "문화시설", indoor: true, tags: []string{"실내", "전시"}},
			{title: location + " 현지 맛집", category: "맛집", indoor: true, tags: []string{"맛집", "현지음식"}},
			{title: location + " 감성 카페", category: "카페", indoor: true, tags: []string{"카페", "디저트"}},
			{title: location + " 실내 체험관", category: "문화시설", indoor: true, tags: []string{"실내", "체험"}},
		}
	}
	entries = append(entries, entry{
		title:    location + " 추천 숙소",
		category: AccommodationCategory,
		indoor:   true,
		tags:     []string{"숙박", travelStyle},
	})

	records := make([]types.RecommendationRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(rawRecommendation{
			Title:       e.title,
			Description: fmt.Sprintf("%s에서 %s 여행자에게 추천하는 장소입니다.", location, travelStyle),
			Category:    e.category,
			Address:     location,
			IsIndoor:    e.indoor,
			Tags:        e.tags,
		}))
	}
	return records
}

func cacheKey(req RecommendRequest) string {
	return strings.Join([]string{
		req.Location,
		req.Preferences.TravelStyle,
		req.Preferences.Budget,
		req.Preferences.Companion,
		strconv.FormatBool(IsGoodWeather(req.Weather)),
	}, "|")
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
