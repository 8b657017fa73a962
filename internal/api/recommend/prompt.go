package recommend

import (
	"fmt"
	"strings"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// buildPrompt renders the recommendation prompt. The 4+1 contract (four
// destinations, fifth always an accommodation with category "숙소") is spelled
// out explicitly since downstream parsing relies on it.
func buildPrompt(req RecommendRequest) string {
	var weatherContext string
	if IsGoodWeather(req.Weather) {
		weatherContext = fmt.Sprintf("현재 날씨가 좋습니다 (%s). 야외 활동이 적합합니다.", weatherSummary(req.Weather))
	} else {
		weatherContext = fmt.Sprintf("현재 날씨가 좋지 않습니다 (%s). 실내 활동을 우선 추천해주세요.", weatherSummary(req.Weather))
	}

	return fmt.Sprintf(`당신은 한국 여행 전문가이며, 날씨와 사용자 선호도를 고려하여 최적의 여행지를 추천합니다. 항상 JSON 형식으로만 응답합니다.

다음 정보를 바탕으로 %s에서의 맞춤형 여행지를 추천해주세요.

여행 선호도:
- 여행 스타일: %s
- 동행인: %s
- 예산: %s
- 선호 활동: %s

날씨 정보:
%s

요구사항:
1. 날씨에 적합한 장소를 추천해주세요 (날씨가 나쁘면 실내 위주, 좋으면 실외 위주)
2. 정확한 장소 이름과 간단한 설명을 제공해주세요
3. 각 장소는 실제 존재하는 유명한 관광지여야 합니다
4. **정확히 5개의 장소만 추천해주세요**
5. **첫 4개는 여행지(관광명소/맛집/카페/문화시설/자연)를 추천하고, 5번째는 반드시 숙소(호텔/게스트하우스/펜션/리조트 등)를 추천해주세요**
6. 5번째 숙소의 category는 반드시 "숙소"로 설정해주세요
7. JSON 형식으로만 응답해주세요

응답 형식:
{
  "summary": "추천 요약 (2-3문장)",
  "recommendations": [
    {
      "title": "장소 이름",
      "description": "장소 설명 (2-3문장)",
      "category": "카테고리 (1-4번째: 관광명소/맛집/카페/문화시설/자연 중 하나, 5번째: 숙소)",
      "address": "대략적인 주소나 위치",
      "isIndoor": true 또는 false,
      "tags": ["태그1", "태그2", "태그3"],
      "estimatedCost": "예상 비용 (무료/저렴/보통/비쌈)",
      "recommendedDuration": "권장 소요시간 (예: 1-2시간)"
    }
  ]
}`,
		req.Location,
		req.Preferences.TravelStyle,
		req.Preferences.Companion,
		req.Preferences.Budget,
		strings.Join(req.Preferences.Activities, ", "),
		weatherContext,
	)
}

func weatherSummary(w *types.WeatherInfo) string {
	if w == nil {
		return "날씨 정보 없음"
	}
	return fmt.Sprintf("%d°C, %s", w.TemperatureC, w.Description)
}
