package types

// Dimension is one axis of the travel-style score accumulator.
type Dimension string

const (
	DimHealing   Dimension = "healing"
	DimAdventure Dimension = "adventure"
	DimFoodie    Dimension = "foodie"
	DimCulture   Dimension = "culture"
	DimNature    Dimension = "nature"
	DimActive    Dimension = "active"
	DimLuxury    Dimension = "luxury"
	DimLearning  Dimension = "learning"
)

// Dimensions lists every scoring dimension in declaration order. The order is
// load-bearing: ties during finalization resolve to the earlier entry.
var Dimensions = []Dimension{
	DimHealing,
	DimAdventure,
	DimFoodie,
	DimCulture,
	DimNature,
	DimActive,
	DimLuxury,
	DimLearning,
}

// SurveyOption is one answer choice within a question node. An option with an
// empty NextID terminates the survey.
type SurveyOption struct {
	Label  string            `json:"text"`
	Emoji  string            `json:"emoji,omitempty"`
	Value  string            `json:"value"`
	NextID string            `json:"nextId,omitempty"`
	Score  map[Dimension]int `json:"score,omitempty"`
}

// QuestionNode is one step of the survey decision tree. The node graph is
// static data, loaded once and immutable at runtime.
type QuestionNode struct {
	ID      string         `json:"id"`
	Prompt  string         `json:"question"`
	Emoji   string         `json:"emoji,omitempty"`
	Options []SurveyOption `json:"options"`
}

// ProfilePreferences carries the structured answers used when requesting
// recommendations.
type ProfilePreferences struct {
	Pace       string   `json:"pace"`
	Budget     string   `json:"budget"`
	Companion  string   `json:"companion"`
	Activities []string `json:"activities"`
}

// TravelProfile is the survey's terminal output. Immutable once created.
type TravelProfile struct {
	PrimaryStyle    Dimension          `json:"primaryStyle"`
	SecondaryStyle  Dimension          `json:"secondaryStyle"`
	TravelType      string             `json:"travelType"`
	SecondaryType   string             `json:"secondaryType,omitempty"`
	Personality     string             `json:"personality"`
	Preferences     ProfilePreferences `json:"preferences"`
	Recommendations []string           `json:"recommendations"`
}
