package types

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlacesRequest asks the places provider for a panel of candidates.
type PlacesRequest struct {
	Location   string   `json:"location"`
	Categories []string `json:"categories"`
	ExcludeIDs []string `json:"excludeIds,omitempty"`
	Offset     int      `json:"offset"`
}

// PlacesResponse is the provider's answer. IsMock is surfaced all the way to
// the client so the UI can flag synthetic data.
type PlacesResponse struct {
	Places []Place `json:"places"`
	IsMock bool    `json:"isMock"`
}

// DirectionsRequest asks the directions provider for a single-leg estimate.
type DirectionsRequest struct {
	Origin      LatLng        `json:"origin"`
	Destination LatLng        `json:"destination"`
	Mode        TransportMode `json:"mode"`
}

// DirectionsEstimate is a single-leg distance/duration estimate.
type DirectionsEstimate struct {
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// WeatherInfo is the normalized current-conditions reading.
type WeatherInfo struct {
	TemperatureC int     `json:"temperature"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	Humidity     int     `json:"humidity"`
	WindSpeedMS  float64 `json:"windSpeed"`
	IsMock       bool    `json:"isMock"`
}

// RecommendationRecord is the loosely-typed shape recommendation payloads
// arrive in. Field aliases (title/name, addr1/address, mapx/mapy vs lat/lng)
// reflect the mix of upstream sources; the places transform collapses them
// into a canonical Place.
type RecommendationRecord struct {
	ContentID   string   `json:"contentid,omitempty"`
	Title       string   `json:"title,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Reason      string   `json:"gptReason,omitempty"`
	Category    string   `json:"category,omitempty"`
	AltCategory string   `json:"gptCategory,omitempty"`
	Address     string   `json:"address,omitempty"`
	Addr1       string   `json:"addr1,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	GooglePhoto string   `json:"googlePhoto,omitempty"`
	MapX        string   `json:"mapx,omitempty"` // longitude, string-encoded
	MapY        string   `json:"mapy,omitempty"` // latitude, string-encoded
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Keywords    []string `json:"gptKeywords,omitempty"`
	IsIndoor    *bool    `json:"isIndoor,omitempty"`

	EstimatedCost       string `json:"estimatedCost,omitempty"`
	RecommendedDuration string `json:"recommendedDuration,omitempty"`
}
