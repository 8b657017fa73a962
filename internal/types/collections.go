package types

import "time"

// Itinerary is a saved day plan: the selected places plus the route summary
// computed for them at save time.
type Itinerary struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location"`
	TravelStyle string        `json:"travelStyle,omitempty"`
	Places      []Place       `json:"places"`
	Summary     *RouteSummary `json:"summary,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Bookmark pins a single place to a user's saved list. The place fields are
// denormalized so the list renders without re-fetching the provider.
type Bookmark struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PlaceID     string    `json:"placeId"`
	PlaceName   string    `json:"placeName"`
	Address     string    `json:"address,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Rating      float64   `json:"rating,omitempty"`
	ReviewCount int       `json:"reviewCount,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is a user's rating and write-up for a place.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail,omitempty"`
	PlaceID   string    `json:"placeId"`
	PlaceName string    `json:"placeName"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
