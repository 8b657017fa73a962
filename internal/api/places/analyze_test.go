package places

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// fixedProvider returns the same result set for every search.
type fixedProvider struct {
	places []types.Place
	err    error
}

func (f fixedProvider) Search(context.Context, string, string, int) ([]types.Place, error) {
	return f.places, f.err
}

func ratedPlace(id string, rating float64, reviews int) types.Place {
	return types.Place{ID: id, Name: id, Rating: rating, ReviewCount: reviews, Lat: 37.5, Lng: 127.0}
}

func TestPopularityScore(t *testing.T) {
	// rating*20 + log10(reviews+1)*10
	assert.InDelta(t, 100, PopularityScore(4.0, 99), 0.001)
	assert.InDelta(t, 100, PopularityScore(5.0, 0), 0.001)
	assert.Greater(t, PopularityScore(4.0, 1000), PopularityScore(4.0, 10))
}

func TestAnalyze_ClassifiesPopularAndHiddenGems(t *testing.T) {
	var all []types.Place
	for i := 0; i < 5; i++ {
		all = append(all, ratedPlace(fmt.Sprintf("big_%d", i), 4.8, 1000))
	}
	for i := 0; i < 3; i++ {
		all = append(all, ratedPlace(fmt.Sprintf("gem_%d", i), 4.6, 20))
	}
	for i := 0; i < 2; i++ {
		all = append(all, ratedPlace(fmt.Sprintf("meh_%d", i), 3.0, 50))
	}
	svc := NewServiceImpl(fixedProvider{places: all}, testLogger())

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{Location: "서울"})
	require.NoError(t, err)
	assert.False(t, resp.IsMock)

	// Ten distinct places: top 30% rounds below the five-place floor.
	require.Len(t, resp.PopularPlaces, 5)
	for _, p := range resp.PopularPlaces {
		assert.Contains(t, p.ID, "big_")
		assert.InDelta(t, PopularityScore(4.8, 1000), p.PopularityScore, 0.001)
	}

	// Well-rated low-review places qualify as gems; badly rated ones do not.
	require.Len(t, resp.HiddenGems, 3)
	for _, p := range resp.HiddenGems {
		assert.Contains(t, p.ID, "gem_")
	}
}

func TestAnalyze_DedupesSameVenue(t *testing.T) {
	dup := ratedPlace("first", 4.5, 200)
	twin := dup
	twin.ID = "second"
	svc := NewServiceImpl(fixedProvider{places: []types.Place{dup, twin}}, testLogger())

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{Location: "서울"})
	require.NoError(t, err)
	require.Len(t, resp.PopularPlaces, 1)
	assert.Equal(t, "first", resp.PopularPlaces[0].ID)
}

func TestAnalyze_FallsBackToMock(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{Location: "서울", Category: "카페"})
	require.NoError(t, err)
	assert.True(t, resp.IsMock)
	require.Len(t, resp.PopularPlaces, 10)
	require.Len(t, resp.HiddenGems, 5)
	assert.Equal(t, "서울 카페 1", resp.PopularPlaces[0].Name)
	assert.GreaterOrEqual(t, resp.PopularPlaces[0].Rating, 4.5)
	assert.GreaterOrEqual(t, resp.PopularPlaces[0].ReviewCount, 500)

	// Identical requests describe identical places.
	again, err := svc.Analyze(context.Background(), AnalyzeRequest{Location: "서울", Category: "카페"})
	require.NoError(t, err)
	assert.Equal(t, resp, again)
}

func TestAnalyze_ProviderErrorFallsBack(t *testing.T) {
	svc := NewServiceImpl(fixedProvider{err: errors.New("upstream down")}, testLogger())

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{Location: "부산"})
	require.NoError(t, err)
	assert.True(t, resp.IsMock)
}

func TestAnalyze_EmptyLocation(t *testing.T) {
	svc := NewServiceImpl(nil, testLogger())
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{})
	assert.Error(t, err)
}
