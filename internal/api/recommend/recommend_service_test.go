package recommend

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

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

const validPayload = `{
  "summary": "서울 힐링 여행 추천입니다.",
  "recommendations": [
    {"title": "경복궁", "description": "조선의 법궁", "category": "관광명소", "address": "서울 종로구", "isIndoor": false, "tags": ["역사"], "estimatedCost": "저렴", "recommendedDuration": "1-2시간"},
    {"title": "광장시장", "description": "전통 시장", "category": "맛집", "address": "서울 종로구", "isIndoor": true, "tags": ["맛집"]},
    {"title": "성수 카페거리", "description": "카페 밀집 지역", "category": "카페", "address": "서울 성동구", "isIndoor": true, "tags": ["카페"]},
    {"title": "남산공원", "description": "도심 속 공원", "category": "자연", "address": "서울 중구", "isIndoor": false, "tags": ["산책"]},
    {"title": "호텔 한강뷰", "description": "한강이 보이는 호텔", "category": "숙소", "address": "서울 용산구", "isIndoor": true, "tags": ["숙박"]}
  ]
}`

func TestIsGoodWeather(t *testing.T) {
	assert.True(t, IsGoodWeather(nil))
	assert.True(t, IsGoodWeather(&types.WeatherInfo{TemperatureC: 20, Description: "맑음"}))
	assert.False(t, IsGoodWeather(&types.WeatherInfo{TemperatureC: 5, Description: "맑음"}))
	assert.False(t, IsGoodWeather(&types.WeatherInfo{TemperatureC: 20, Description: "비"}))
	assert.False(t, IsGoodWeather(&types.WeatherInfo{TemperatureC: 20, Description: "Light Rain"}))
	assert.False(t, IsGoodWeather(&types.WeatherInfo{TemperatureC: 15, Description: "눈"}))
}

func TestParsePayload_CleanJSON(t *testing.T) {
	payload, err := parsePayload(validPayload)
	require.NoError(t, err)
	assert.Equal(t, "서울 힐링 여행 추천입니다.", payload.Summary)
	require.Len(t, payload.Recommendations, 5)
	assert.Equal(t, AccommodationCategory, payload.Recommendations[4].Category)
}

func TestParsePayload_FencedJSON(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	payload, err := parsePayload(fenced)
	require.NoError(t, err)
	assert.Len(t, payload.Recommendations, 5)
}

func TestParsePayload_JSONEmbeddedInChatter(t *testing.T) {
	noisy := "물론입니다! 추천드릴게요.\n" + validPayload + "\n도움이 되길 바랍니다."
	payload, err := parsePayload(noisy)
	require.NoError(t, err)
	assert.Len(t, payload.Recommendations, 5)
}

func TestParsePayload_TruncatesOverlongList(t *testing.T) {
	var recs []string
	for i := 0; i < 7; i++ {
		recs = append(recs, `{"title": "장소", "category": "관광명소"}`)
	}
	raw := `{"summary": "s", "recommendations": [` + strings.Join(recs, ",") + `]}`

	payload, err := parsePayload(raw)
	require.NoError(t, err)
	assert.Len(t, payload.Recommendations, MaxRecommendations)
}

func TestParsePayload_FillsMissingAccommodationCategory(t *testing.T) {
	raw := `{"recommendations": [
      {"title": "a", "category": "관광명소"},
      {"title": "b", "category": "맛집"},
      {"title": "c", "category": "카페"},
      {"title": "d", "category": "자연"},
      {"title": "e"}
    ]}`
	payload, err := parsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, AccommodationCategory, payload.Recommendations[4].Category)
}

func TestParsePayload_Garbage(t *testing.T) {
	_, err := parsePayload("추천할 장소가 없습니다.")
	assert.Error(t, err)

	_, err = parsePayload(`{"summary": "s", "recommendations": []}`)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

type stubAI struct {
	response string
	err      error
	calls    int
}

func (s *stubAI) GenerateContent(_ context.Context, _ string, _ *genai.GenerateContentConfig) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestRecommend_Success(t *testing.T) {
	ai := &stubAI{response: validPayload}
	svc := NewServiceImpl(ai, testLogger())

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		Location: "서울",
		Preferences: Preferences{
			TravelStyle: "힐링 여행자",
			Companion:   "solo",
			Budget:      "medium",
			Activities:  []string{"휴식", "카페"},
		},
		Weather: &types.WeatherInfo{TemperatureC: 22, Description: "맑음"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.IsMock)
	assert.Equal(t, "outdoor", resp.WeatherBased)
	require.Len(t, resp.Recommendations, 5)

	first := resp.Recommendations[0]
	assert.True(t, strings.HasPrefix(first.ContentID, "gpt_"))
	assert.Equal(t, "경복궁", first.Title)
	assert.Equal(t, first.Title, first.Name)
	assert.Equal(t, first.Address, first.Addr1)
	assert.Equal(t, 4.0, *first.Rating)
	assert.Equal(t, 0, *first.ReviewCount)
	assert.Equal(t, AccommodationCategory, resp.Recommendations[4].Category)
}

func TestRecommend_CachesResults(t *testing.T) {
	ai := &stubAI{response: validPayload}
	svc := NewServiceImpl(ai, testLogger())
	req := RecommendRequest{Location: "서울", Preferences: Preferences{TravelStyle: "힐링 여행자"}}

	first, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, ai.calls)
	assert.Same(t, first, second)
}

func TestRecommend_FallsBackOnModelError(t *testing.T) {
	ai := &stubAI{err: errors.New("quota exceeded")}
	svc := NewServiceImpl(ai, testLogger())

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		Location:    "부산",
		Preferences: Preferences{TravelStyle: "미식 여행자"},
		Weather:     &types.WeatherInfo{TemperatureC: 3, Description: "눈"},
	})
	require.NoError(t, err)

	assert.True(t, resp.IsMock)
	assert.Equal(t, "indoor", resp.WeatherBased)
	require.Len(t, resp.Recommendations, 5)
	assert.Equal(t, AccommodationCategory, resp.Recommendations[4].Category)
	// Bad weather panel is fully indoor.
	for _, rec := range resp.Recommendations {
		assert.True(t, *rec.IsIndoor)
	}
}

func TestRecommend_NoProviderFallsBack(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	resp, err := svc.Recommend(context.Background(), RecommendRequest{Location: "제주"})
	require.NoError(t, err)
	assert.True(t, resp.IsMock)
	assert.Len(t, resp.Recommendations, 5)
}

func TestRecommend_EmptyLocation(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	_, err := svc.Recommend(context.Background(), RecommendRequest{})
	assert.Error(t, err)
}
