package places

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

const (
	minPopularCount  = 5
	popularFraction  = 0.3
	maxHiddenGems    = 10
	hiddenMinRating  = 3.5
	hiddenMaxReviews = 100
)

type AnalyzeRequest struct {
	Location string `json:"location"`
	Category string `json:"category,omitempty"`
}

// RankedPlace is a place together with its computed popularity score.
type RankedPlace struct {
	types.Place
	PopularityScore float64 `json:"popularityScore"`
}

type AnalyzeResponse struct {
	PopularPlaces []RankedPlace `json:"popularPlaces"`
	HiddenGems    []RankedPlace `json:"hiddenGems"`
	IsMock        bool          `json:"isMock"`
}

// Analyze splits search results for a location into popular places and hidden
// gems. A dead or empty provider degrades to a synthetic split, flagged via
// IsMock.
func (s *ServiceImpl) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("places.location", req.Location),
		attribute.String("places.category", req.Category),
	)

	if req.Location == "" {
		return nil, fmt.Errorf("places: location must not be empty")
	}

	var found []types.Place
	if s.provider != nil {
		var err error
		found, err = s.provider.Search(ctx, req.Location, req.Category, 1)
		if err != nil {
			s.logger.WarnContext(ctx, "Analyze search failed",
				slog.String("location", req.Location),
				slog.Any("error", err),
			)
		}
	}
	if len(found) == 0 {
		metrics.Get().ProviderFallbacksTotal.Add(ctx, 1)
		s.logger.WarnContext(ctx, "No provider results, serving synthetic analysis",
			slog.String("location", req.Location),
		)
		return &AnalyzeResponse{
			PopularPlaces: mockRankedPlaces(req.Location, req.Category, true),
			HiddenGems:    mockRankedPlaces(req.Location, req.Category, false),
			IsMock:        true,
		}, nil
	}

	popular, hidden := classifyPlaces(dedupePlaces(found))
	s.logger.InfoContext(ctx, "Places analyzed",
		slog.String("location", req.Location),
		slog.Int("popular", len(popular)),
		slog.Int("hidden_gems", len(hidden)),
	)
	return &AnalyzeResponse{PopularPlaces: popular, HiddenGems: hidden}, nil
}

// PopularityScore weights the rating heavily and review volume
// logarithmically, so a well-rated place with few reviews can still rank
// below a slightly worse one everybody visits.
func PopularityScore(rating float64, reviewCount int) float64 {
	return rating*20 + math.Log10(float64(reviewCount)+1)*10
}

// classifyPlaces sorts by popularity score; the top slice (at least five when
// available) is popular, and lightly-reviewed but well-rated places from the
// remainder become hidden gems.
func classifyPlaces(all []types.Place) (popular, hidden []RankedPlace) {
	ranked := make([]RankedPlace, 0, len(all))
	for _, p := range all {
		ranked = append(ranked, RankedPlace{
			Place:           p,
			PopularityScore: PopularityScore(p.Rating, p.ReviewCount),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PopularityScore > ranked[j].PopularityScore
	})

	popularCount := int(float64(len(ranked)) * popularFraction)
	if popularCount < minPopularCount {
		popularCount = minPopularCount
	}
	if popularCount > len(ranked) {
		popularCount = len(ranked)
	}
	popular = ranked[:popularCount]

	hidden = make([]RankedPlace, 0, maxHiddenGems)
	for _, p := range ranked[popularCount:] {
		if p.Rating >= hiddenMinRating && p.ReviewCount < hiddenMaxReviews {
			hidden = append(hidden, p)
			if len(hidden) == maxHiddenGems {
				break
			}
		}
	}
	return popular, hidden
}

// dedupePlaces drops entries sharing a name and near-identical coordinates,
// which happens when one venue appears under several search categories.
func dedupePlaces(all []types.Place) []types.Place {
	out := make([]types.Place, 0, len(all))
	for _, p := range all {
		dup := false
		for _, kept := range out {
			if kept.Name == p.Name &&
				math.Abs(kept.Lat-p.Lat) < 0.001 &&
				math.Abs(kept.Lng-p.Lng) < 0.001 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

var mockPlaceNames = []string{
	"맛집", "카페", "전망대", "공원", "박물관",
	"갤러리", "레스토랑", "관광지", "체험관", "정원",
}

// mockRankedPlaces synthesizes a deterministic popular or hidden-gem list,
// seeded like fallbackPlaces so identical requests agree.
func mockRankedPlaces(location, category string, popular bool) []RankedPlace {
	count, kind := 5, "hidden"
	baseRating, baseReviews := 4.0, 50
	if popular {
		count, kind = 10, "popular"
		baseRating, baseReviews = 4.5, 500
	}

	out := make([]RankedPlace, 0, count)
	for i := 0; i < count; i++ {
		name := category
		if name == "" {
			name = mockPlaceNames[i%len(mockPlaceNames)]
		}
		cat := category
		if cat == "" {
			cat = defaultCategory
		}
		seed := placeSeed(location, kind, name, strconv.Itoa(i))
		place := types.Place{
			ID:          fmt.Sprintf("mock_%s_%d", kind, i),
			Name:        fmt.Sprintf("%s %s %d", location, name, i+1),
			Category:    cat,
			Description: "추천 장소",
			Address:     fmt.Sprintf("%s 모의 주소 %d", location, i+1),
			Rating:      baseRating + float64(seed%50)/100,
			ReviewCount: baseReviews + int(seed%200),
			Lat:         37.5 + float64(seed%1000)/10000,
			Lng:         127.0 + float64(seed/1000%1000)/10000,
		}
		out = append(out, RankedPlace{
			Place:           place,
			PopularityScore: PopularityScore(place.Rating, place.ReviewCount),
		})
	}
	return out
}
