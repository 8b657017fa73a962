package types

// TransportMode selects how route legs are travelled and priced.
type TransportMode string

const (
	TransportWalk    TransportMode = "WALK"
	TransportTransit TransportMode = "TRANSIT"
	TransportDrive   TransportMode = "DRIVE"
)

// Place is the canonical working unit for candidate selection and route
// building. Every upstream source (LLM recommendations, the places provider,
// synthetic fallbacks) is normalized into this shape.
type Place struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Address     string   `json:"address"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	IsIndoor    bool     `json:"isIndoor"`
	IsOutdoor   bool     `json:"isOutdoor"`
	Keywords    []string `json:"keywords,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Locked      bool     `json:"locked"`
}

// RouteSegment is one leg between two consecutive places.
type RouteSegment struct {
	From            string        `json:"from"`
	To              string        `json:"to"`
	DistanceMeters  float64       `json:"distance"`
	DistanceText    string        `json:"distanceText"`
	DurationSeconds float64       `json:"duration"`
	DurationText    string        `json:"durationText"`
	Mode            TransportMode `json:"transportMode"`
}

// RouteSummary aggregates the segments of the current place ordering. It is
// derived state: recomputed wholesale whenever the working set or transport
// mode changes, never patched.
type RouteSummary struct {
	TotalDistanceMeters        float64        `json:"totalDistance"`
	TotalDistanceText          string         `json:"totalDistanceText"`
	TotalDurationSeconds       float64        `json:"totalDuration"`
	TotalDurationText          string         `json:"totalTimeText"`
	RecommendedDurationSeconds float64        `json:"recommendedDuration"`
	EstimatedCostKRW           int            `json:"estimatedCost"`
	Segments                   []RouteSegment `json:"routes"`
	Mode                       TransportMode  `json:"transportMode"`
}
