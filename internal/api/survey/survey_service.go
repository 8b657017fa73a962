package survey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

const (
	sessionTTL      = 30 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Service drives survey sessions through the question graph.
type Service interface {
	Start(ctx context.Context, location string) (*StepResponse, error)
	Answer(ctx context.Context, sessionID, value string) (*StepResponse, error)
	Back(ctx context.Context, sessionID string) (*StepResponse, error)
	State(ctx context.Context, sessionID string) (*StepResponse, error)
	Result(ctx context.Context, sessionID string) (*types.TravelProfile, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger   *slog.Logger
	sessions *cache.Cache
	mu       sync.Mutex
}

func NewServiceImpl(logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		sessions: cache.New(sessionTTL, cleanupInterval),
	}
}

// Start opens a new session positioned at the root question.
func (s *ServiceImpl) Start(ctx context.Context, location string) (*StepResponse, error) {
	ctx, span := otel.Tracer("SurveyService").Start(ctx, "Start")
	defer span.End()

	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("survey: location must not be empty")
	}

	session := &Session{
		ID:        uuid.NewString(),
		Location:  location,
		CurrentID: StartNodeID,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions.Set(session.ID, session, cache.DefaultExpiration)

	span.SetAttributes(attribute.String("survey.session_id", session.ID))
	s.logger.InfoContext(ctx, "Survey session started",
		slog.String("session_id", session.ID),
		slog.String("location", location),
	)
	return s.stepResponse(session), nil
}

// Answer applies one option of the current question. Picking a terminal
// option finalizes the session into a travel profile.
func (s *ServiceImpl) Answer(ctx context.Context, sessionID, value string) (*StepResponse, error) {
	ctx, span := otel.Tracer("SurveyService").Start(ctx, "Answer")
	defer span.End()
	span.SetAttributes(
		attribute.String("survey.session_id", sessionID),
		attribute.String("survey.option", value),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		span.SetStatus(codes.Error, "session not found")
		return nil, err
	}
	if session.Completed {
		return nil, ErrAlreadyCompleted
	}

	node, ok := Questions[session.CurrentID]
	if !ok {
		return nil, fmt.Errorf("survey: unknown question node %q", session.CurrentID)
	}

	option, ok := findOption(node, value)
	if !ok {
		span.SetStatus(codes.Error, "invalid option")
		return nil, fmt.Errorf("%w: %q on question %q", ErrInvalidOption, value, node.ID)
	}

	session.Steps = append(session.Steps, AnsweredStep{QuestionID: node.ID, Value: option.Value})

	if option.NextID != "" {
		if _, ok := Questions[option.NextID]; !ok {
			return nil, fmt.Errorf("survey: option %q points at unknown node %q", option.Value, option.NextID)
		}
		session.CurrentID = option.NextID
		s.sessions.Set(session.ID, session, cache.DefaultExpiration)
		return s.stepResponse(session), nil
	}

	// Terminal option: finalize.
	session.Completed = true
	session.CurrentID = ""
	session.Profile = buildProfile(session.Steps)
	s.sessions.Set(session.ID, session, cache.DefaultExpiration)

	metrics.Get().SurveyCompletionsTotal.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Survey session finalized",
		slog.String("session_id", session.ID),
		slog.String("travel_type", session.Profile.TravelType),
	)
	return s.stepResponse(session), nil
}

// Back undoes the most recent answer and repositions the session on the
// question it answered. The score accumulator needs no separate correction
// since it is always derived from the remaining steps.
func (s *ServiceImpl) Back(ctx context.Context, sessionID string) (*StepResponse, error) {
	_, span := otel.Tracer("SurveyService").Start(ctx, "Back")
	defer span.End()
	span.SetAttributes(attribute.String("survey.session_id", sessionID))

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, ErrAlreadyCompleted
	}
	if len(session.Steps) == 0 {
		return nil, ErrAtRoot
	}

	last := session.Steps[len(session.Steps)-1]
	session.Steps = session.Steps[:len(session.Steps)-1]
	session.CurrentID = last.QuestionID
	s.sessions.Set(session.ID, session, cache.DefaultExpiration)

	return s.stepResponse(session), nil
}

// State returns the current session state without modifying it.
func (s *ServiceImpl) State(ctx context.Context, sessionID string) (*StepResponse, error) {
	_, span := otel.Tracer("SurveyService").Start(ctx, "State")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	return s.stepResponse(session), nil
}

// Result returns the finalized travel profile.
func (s *ServiceImpl) Result(ctx context.Context, sessionID string) (*types.TravelProfile, error) {
	_, span := otel.Tracer("SurveyService").Start(ctx, "Result")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Completed || session.Profile == nil {
		return nil, ErrNotCompleted
	}
	return session.Profile, nil
}

func (s *ServiceImpl) load(sessionID string) (*Session, error) {
	v, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	session, ok := v.(*Session)
	if !ok {
		return nil, fmt.Errorf("survey: corrupt session entry for %q", sessionID)
	}
	return session, nil
}

func (s *ServiceImpl) stepResponse(session *Session) *StepResponse {
	resp := &StepResponse{
		SessionID: session.ID,
		Location:  session.Location,
		Answered:  len(session.Steps),
		Total:     TotalQuestions,
		Scores:    ComputeScores(session.Steps),
		Completed: session.Completed,
		Profile:   session.Profile,
	}
	if !session.Completed {
		if node, ok := Questions[session.CurrentID]; ok {
			resp.Question = &node
		}
	}
	return resp
}

func findOption(node types.QuestionNode, value string) (types.SurveyOption, bool) {
	for _, opt := range node.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return types.SurveyOption{}, false
}

// ComputeScores rebuilds the dimension accumulator from the step list. Every
// dimension is present in the result, zero-valued when untouched.
func ComputeScores(steps []AnsweredStep) map[types.Dimension]int {
	scores := make(map[types.Dimension]int, len(types.Dimensions))
	for _, dim := range types.Dimensions {
		scores[dim] = 0
	}
	for _, step := range steps {
		node, ok := Questions[step.QuestionID]
		if !ok {
			continue
		}
		if opt, ok := findOption(node, step.Value); ok {
			for dim, delta := range opt.Score {
				scores[dim] += delta
			}
		}
	}
	return scores
}

// rankedStyles returns the primary and secondary dimensions. Ties resolve to
// the dimension declared earlier, so equal walks always produce the same
// profile.
func rankedStyles(scores map[types.Dimension]int) (types.Dimension, types.Dimension) {
	primary := types.Dimensions[0]
	for _, dim := range types.Dimensions[1:] {
		if scores[dim] > scores[primary] {
			primary = dim
		}
	}
	var secondary types.Dimension
	first := true
	for _, dim := range types.Dimensions {
		if dim == primary {
			continue
		}
		if first || scores[dim] > scores[secondary] {
			secondary = dim
			first = false
		}
	}
	return primary, secondary
}

func buildProfile(steps []AnsweredStep) *types.TravelProfile {
	scores := ComputeScores(steps)
	primary, secondary := rankedStyles(scores)

	primaryProfile := StyleProfiles[primary]
	secondaryProfile := StyleProfiles[secondary]

	recommendations := make([]string, 0, 10)
	recommendations = append(recommendations, primaryProfile.Keywords...)
	recommendations = append(recommendations, secondaryProfile.Keywords...)
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	activities := primaryProfile.Keywords
	if len(activities) > 3 {
		activities = activities[:3]
	}

	return &types.TravelProfile{
		PrimaryStyle:   primary,
		SecondaryStyle: secondary,
		TravelType:     primaryProfile.Name,
		SecondaryType:  secondaryProfile.Name,
		Personality:    primaryProfile.Description,
		Preferences: types.ProfilePreferences{
			Pace:       answerValue(steps, "pace", "medium"),
			Budget:     answerValue(steps, "budget", "medium"),
			Companion:  answerValue(steps, "companion", "solo"),
			Activities: activities,
		},
		Recommendations: recommendations,
	}
}

func answerValue(steps []AnsweredStep, questionID, fallback string) string {
	for _, step := range steps {
		if step.QuestionID == questionID {
			return step.Value
		}
	}
	return fallback
}
