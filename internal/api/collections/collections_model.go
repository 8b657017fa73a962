package collections

import (
	"errors"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

var ErrItineraryNotFound = errors.New("collections: itinerary not found")

const (
	resourceItinerary = "itinerary"
	resourceBookmark  = "bookmark"
	resourceReview    = "review"
)

type CreateItineraryRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	TravelStyle string              `json:"travelStyle"`
	Places      []types.Place       `json:"places"`
	Summary     *types.RouteSummary `json:"summary"`
}

type CreateBookmarkRequest struct {
	PlaceID     string  `json:"placeId"`
	PlaceName   string  `json:"placeName"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Notes       string  `json:"notes"`
}

type CreateReviewRequest struct {
	PlaceID   string `json:"placeId"`
	PlaceName string `json:"placeName"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
}
