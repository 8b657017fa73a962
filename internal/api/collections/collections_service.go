package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/daytrip-ai/daytrip-server/internal/kv"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// Service persists per-user itineraries, bookmarks and reviews in the KV
// store under "{resource}:{userId}:{id}" keys.
type Service interface {
	ListItineraries(ctx context.Context, userID string) ([]types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, id string) (*types.Itinerary, error)
	CreateItinerary(ctx context.Context, userID string, req CreateItineraryRequest) (*types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, id string) error

	ListBookmarks(ctx context.Context, userID string) ([]types.Bookmark, error)
	CreateBookmark(ctx context.Context, userID string, req CreateBookmarkRequest) (*types.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, id string) error
	IsBookmarked(ctx context.Context, userID, placeID string) (bool, error)

	ListReviews(ctx context.Context, userID string) ([]types.Review, error)
	ListPlaceReviews(ctx context.Context, placeID string) ([]types.Review, error)
	CreateReview(ctx context.Context, userID, userName, userEmail string, req CreateReviewRequest) (*types.Review, error)
	DeleteReview(ctx context.Context, userID, id string) error
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	store  kv.Store
	logger *slog.Logger
}

func NewServiceImpl(store kv.Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{store: store, logger: logger}
}

func (s *ServiceImpl) ListItineraries(ctx context.Context, userID string) ([]types.Itinerary, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "ListItineraries")
	defer span.End()

	return listAs[types.Itinerary](ctx, s.store, kv.Prefix(resourceItinerary, userID))
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, userID, id string) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "GetItinerary")
	defer span.End()
	span.SetAttributes(attribute.String("itinerary.id", id))

	var itinerary types.Itinerary
	err := s.store.Get(ctx, kv.Key(resourceItinerary, userID, id), &itinerary)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrItineraryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("collections: failed to load itinerary %q: %w", id, err)
	}
	return &itinerary, nil
}

func (s *ServiceImpl) CreateItinerary(ctx context.Context, userID string, req CreateItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "CreateItinerary")
	defer span.End()

	now := time.Now().UTC()
	itinerary := types.Itinerary{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		TravelStyle: req.TravelStyle,
		Places:      req.Places,
		Summary:     req.Summary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Set(ctx, kv.Key(resourceItinerary, userID, itinerary.ID), itinerary); err != nil {
		return nil, fmt.Errorf("collections: failed to store itinerary: %w", err)
	}

	s.logger.InfoContext(ctx, "Itinerary created",
		slog.String("user_id", userID),
		slog.String("itinerary_id", itinerary.ID),
		slog.Int("places", len(itinerary.Places)),
	)
	return &itinerary, nil
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, userID, id string) error {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "DeleteItinerary")
	defer span.End()

	return s.store.Delete(ctx, kv.Key(resourceItinerary, userID, id))
}

func (s *ServiceImpl) ListBookmarks(ctx context.Context, userID string) ([]types.Bookmark, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "ListBookmarks")
	defer span.End()

	return listAs[types.Bookmark](ctx, s.store, kv.Prefix(resourceBookmark, userID))
}

func (s *ServiceImpl) CreateBookmark(ctx context.Context, userID string, req CreateBookmarkRequest) (*types.Bookmark, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "CreateBookmark")
	defer span.End()
	span.SetAttributes(attribute.String("bookmark.place_id", req.PlaceID))

	bookmark := types.Bookmark{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlaceID:     req.PlaceID,
		PlaceName:   req.PlaceName,
		Address:     req.Address,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Rating:      req.Rating,
		ReviewCount: req.ReviewCount,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Set(ctx, kv.Key(resourceBookmark, userID, bookmark.ID), bookmark); err != nil {
		return nil, fmt.Errorf("collections: failed to store bookmark: %w", err)
	}
	return &bookmark, nil
}

func (s *ServiceImpl) DeleteBookmark(ctx context.Context, userID, id string) error {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "DeleteBookmark")
	defer span.End()

	return s.store.Delete(ctx, kv.Key(resourceBookmark, userID, id))
}

func (s *ServiceImpl) IsBookmarked(ctx context.Context, userID, placeID string) (bool, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "IsBookmarked")
	defer span.End()
	span.SetAttributes(attribute.String("bookmark.place_id", placeID))

	bookmarks, err := s.ListBookmarks(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, b := range bookmarks {
		if b.PlaceID == placeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *ServiceImpl) ListReviews(ctx context.Context, userID string) ([]types.Review, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "ListReviews")
	defer span.End()

	return listAs[types.Review](ctx, s.store, kv.Prefix(resourceReview, userID))
}

// ListPlaceReviews scans reviews across all users. The review keyspace is
// keyed by author, so a place lookup is a full-resource scan plus filter.
func (s *ServiceImpl) ListPlaceReviews(ctx context.Context, placeID string) ([]types.Review, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "ListPlaceReviews")
	defer span.End()
	span.SetAttributes(attribute.String("review.place_id", placeID))

	all, err := listAs[types.Review](ctx, s.store, resourceReview+":")
	if err != nil {
		return nil, err
	}

	reviews := make([]types.Review, 0, len(all))
	for _, r := range all {
		if r.PlaceID == placeID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (s *ServiceImpl) CreateReview(ctx context.Context, userID, userName, userEmail string, req CreateReviewRequest) (*types.Review, error) {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "CreateReview")
	defer span.End()
	span.SetAttributes(attribute.String("review.place_id", req.PlaceID))

	now := time.Now().UTC()
	review := types.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		UserEmail: userEmail,
		PlaceID:   req.PlaceID,
		PlaceName: req.PlaceName,
		Rating:    req.Rating,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Set(ctx, kv.Key(resourceReview, userID, review.ID), review); err != nil {
		return nil, fmt.Errorf("collections: failed to store review: %w", err)
	}
	return &review, nil
}

func (s *ServiceImpl) DeleteReview(ctx context.Context, userID, id string) error {
	ctx, span := otel.Tracer("CollectionsService").Start(ctx, "DeleteReview")
	defer span.End()

	return s.store.Delete(ctx, kv.Key(resourceReview, userID, id))
}

// listAs decodes every value under prefix into T, returning an empty slice
// rather than nil so JSON listings render as [].
func listAs[T any](ctx context.Context, store kv.Store, prefix string) ([]T, error) {
	raws, err := store.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("collections: failed to scan prefix %q: %w", prefix, err)
	}

	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("collections: failed to decode item under %q: %w", prefix, err)
		}
		items = append(items, item)
	}
	return items, nil
}
