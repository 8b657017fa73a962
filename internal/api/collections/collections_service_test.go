package collections

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/kv"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type memStore struct {
	data map[string]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{data: map[string]json.RawMessage{}}
}

func (m *memStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Get(_ context.Context, key string, dst any) error {
	raw, ok := m.data[key]
	if !ok {
		return kv.ErrNotFound
	}
	return json.Unmarshal(raw, dst)
}

func (m *memStore) GetByPrefix(_ context.Context, prefix string) ([]json.RawMessage, error) {
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	values := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		values = append(values, m.data[k])
	}
	return values, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestItineraryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceImpl(newMemStore(), testLogger())

	created, err := svc.CreateItinerary(ctx, "user-1", CreateItineraryRequest{
		Title:       "서울 당일치기",
		Location:    "서울",
		TravelStyle: "힐링",
		Places:      []types.Place{{ID: "p1", Name: "경복궁"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetItinerary(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	require.Len(t, got.Places, 1)
	assert.Equal(t, "경복궁", got.Places[0].Name)

	list, err := svc.ListItineraries(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteItinerary(ctx, "user-1", created.ID))
	_, err = svc.GetItinerary(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, ErrItineraryNotFound)
}

func TestItinerariesAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceImpl(newMemStore(), testLogger())

	mine, err := svc.CreateItinerary(ctx, "user-1", CreateItineraryRequest{Title: "mine"})
	require.NoError(t, err)
	_, err = svc.CreateItinerary(ctx, "user-2", CreateItineraryRequest{Title: "theirs"})
	require.NoError(t, err)

	list, err := svc.ListItineraries(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Title)

	// Another user cannot read it by ID either.
	_, err = svc.GetItinerary(ctx, "user-2", mine.ID)
	assert.ErrorIs(t, err, ErrItineraryNotFound)
}

func TestListItineraries_Empty(t *testing.T) {
	svc := NewServiceImpl(newMemStore(), testLogger())
	list, err := svc.ListItineraries(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestBookmarkLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceImpl(newMemStore(), testLogger())

	created, err := svc.CreateBookmark(ctx, "user-1", CreateBookmarkRequest{
		PlaceID:   "place-9",
		PlaceName: "남산공원",
		Lat:       37.55,
		Lng:       126.99,
		Rating:    4.3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	ok, err := svc.IsBookmarked(ctx, "user-1", "place-9")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsBookmarked(ctx, "user-1", "place-0")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsBookmarked(ctx, "user-2", "place-9")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.DeleteBookmark(ctx, "user-1", created.ID))
	ok, err = svc.IsBookmarked(ctx, "user-1", "place-9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceImpl(newMemStore(), testLogger())

	created, err := svc.CreateReview(ctx, "user-1", "여행자", "traveler@example.com", CreateReviewRequest{
		PlaceID:   "place-9",
		PlaceName: "남산공원",
		Rating:    5,
		Content:   "야경이 좋아요",
	})
	require.NoError(t, err)
	assert.Equal(t, "여행자", created.UserName)
	assert.Equal(t, "traveler@example.com", created.UserEmail)

	mine, err := svc.ListReviews(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.DeleteReview(ctx, "user-1", created.ID))
	mine, err = svc.ListReviews(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestListPlaceReviews_SpansUsers(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceImpl(newMemStore(), testLogger())

	_, err := svc.CreateReview(ctx, "user-1", "A", "", CreateReviewRequest{PlaceID: "place-9", Rating: 5})
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, "user-2", "B", "", CreateReviewRequest{PlaceID: "place-9", Rating: 3})
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, "user-2", "B", "", CreateReviewRequest{PlaceID: "other", Rating: 4})
	require.NoError(t, err)

	reviews, err := svc.ListPlaceReviews(ctx, "place-9")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, "place-9", r.PlaceID)
	}
}
