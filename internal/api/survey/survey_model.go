package survey

import (
	"errors"
	"time"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

var (
	ErrSessionNotFound  = errors.New("survey: session not found")
	ErrInvalidOption    = errors.New("survey: option does not exist on the current question")
	ErrAtRoot           = errors.New("survey: already at the first question")
	ErrAlreadyCompleted = errors.New("survey: session already completed")
	ErrNotCompleted     = errors.New("survey: session not completed yet")
)

// AnsweredStep records one traversed edge of the question graph. The full
// step list is the single source of truth for scoring: the accumulator is
// recomputed from it on every change, so going back can never leave a stale
// contribution behind.
type AnsweredStep struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// Session is one in-progress or finished survey walk.
type Session struct {
	ID        string               `json:"id"`
	Location  string               `json:"location"`
	CurrentID string               `json:"currentId"`
	Steps     []AnsweredStep       `json:"steps"`
	Completed bool                 `json:"completed"`
	Profile   *types.TravelProfile `json:"profile,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

type StartRequest struct {
	Location string `json:"location"`
}

type AnswerRequest struct {
	Value string `json:"value"`
}

// StepResponse is the state returned after every survey operation.
type StepResponse struct {
	SessionID string                  `json:"sessionId"`
	Location  string                  `json:"location"`
	Question  *types.QuestionNode     `json:"question,omitempty"`
	Answered  int                     `json:"answered"`
	Total     int                     `json:"total"`
	Scores    map[types.Dimension]int `json:"scores"`
	Completed bool                    `json:"completed"`
	Profile   *types.TravelProfile    `json:"profile,omitempty"`
}
