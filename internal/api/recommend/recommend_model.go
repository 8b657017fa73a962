package recommend

import (
	"errors"
	"strings"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// panel contract: four destinations plus one accommodation.
const (
	MaxRecommendations    = 5
	AccommodationCategory = "숙소"
)

var ErrEmptyPayload = errors.New("recommend: model returned no recommendations")

type Preferences struct {
	TravelStyle string   `json:"travelStyle"`
	Companion   string   `json:"companion"`
	Budget      string   `json:"budget"`
	Activities  []string `json:"activities"`
}

type RecommendRequest struct {
	Preferences Preferences        `json:"preferences"`
	Location    string             `json:"location"`
	Weather     *types.WeatherInfo `json:"weather,omitempty"`
}

type RecommendResponse struct {
	Success         bool                         `json:"success"`
	Summary         string                       `json:"gptSummary,omitempty"`
	Recommendations []types.RecommendationRecord `json:"recommendations"`
	WeatherBased    string                       `json:"weatherBased"`
	IsMock          bool                         `json:"isMock"`
}

// rawRecommendation is the shape the model is asked to emit.
type rawRecommendation struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Address             string   `json:"address"`
	IsIndoor            bool     `json:"isIndoor"`
	Tags                []string `json:"tags"`
	EstimatedCost       string   `json:"estimatedCost"`
	RecommendedDuration string   `json:"recommendedDuration"`
}

type aiPayload struct {
	Summary         string              `json:"summary"`
	Recommendations []rawRecommendation `json:"recommendations"`
}

// IsGoodWeather decides the outdoor/indoor recommendation strategy. Missing
// weather counts as good.
func IsGoodWeather(w *types.WeatherInfo) bool {
	if w == nil {
		return true
	}
	if w.TemperatureC <= 10 {
		return false
	}
	desc := strings.ToLower(w.Description)
	for _, bad := range []string{"비", "눈", "rain", "snow"} {
		if strings.Contains(desc, bad) {
			return false
		}
	}
	return true
}
