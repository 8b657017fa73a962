package places

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

const (
	// selectTimeout caps one candidate fetch end to end.
	selectTimeout = 30 * time.Second

	setTTL          = time.Hour
	cleanupInterval = 15 * time.Minute
)

// Service selects candidate places and manages working sets (the panel of
// four candidates with lock and refresh).
type Service interface {
	Select(ctx context.Context, req SelectRequest) (*types.PlacesResponse, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
	CreateSet(ctx context.Context, location, travelStyle string) (*WorkingSet, error)
	GetSet(ctx context.Context, setID string) (*WorkingSet, error)
	ToggleLock(ctx context.Context, setID, placeID string) (*WorkingSet, error)
	Refresh(ctx context.Context, setID string) (*WorkingSet, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	provider Provider
	logger   *slog.Logger
	sets     *cache.Cache
	mu       sync.Mutex
}

func NewServiceImpl(provider Provider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		provider: provider,
		logger:   logger,
		sets:     cache.New(setTTL, cleanupInterval),
	}
}

// Select fetches candidates for every requested category concurrently and
// interleaves them round-robin so each category is represented early. A dead
// provider degrades to synthetic places rather than an error.
func (s *ServiceImpl) Select(ctx context.Context, req SelectRequest) (*types.PlacesResponse, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Select")
	defer span.End()
	span.SetAttributes(
		attribute.String("places.location", req.Location),
		attribute.String("places.travel_style", req.TravelStyle),
	)

	if req.Location == "" {
		return nil, fmt.Errorf("places: location must not be empty")
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = CategoriesByStyle(req.TravelStyle)
	}

	ctx, cancel := context.WithTimeout(ctx, selectTimeout)
	defer cancel()

	perCategory := make([][]types.Place, len(categories))
	if s.provider != nil {
		g, gctx := errgroup.WithContext(ctx)
		for i, category := range categories {
			i, category := i, category
			g.Go(func() error {
				found, err := s.provider.Search(gctx, req.Location, category, req.Offset+1)
				if err != nil {
					// A single failed category leaves its slot empty.
					s.logger.WarnContext(gctx, "Category search failed",
						slog.String("category", category),
						slog.Any("error", err),
					)
					return nil
				}
				perCategory[i] = found
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	excluded := make(map[string]bool, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		excluded[id] = true
	}

	interleaved := interleave(perCategory, excluded)
	if len(interleaved) == 0 {
		span.SetStatus(codes.Ok, "served from fallback")
		metrics.Get().ProviderFallbacksTotal.Add(ctx, 1)
		s.logger.WarnContext(ctx, "No provider results, serving synthetic places",
			slog.String("location", req.Location),
		)
		return &types.PlacesResponse{
			Places: fallbackPlaces(req.Location, categories),
			IsMock: true,
		}, nil
	}

	return &types.PlacesResponse{Places: interleaved, IsMock: false}, nil
}

// CreateSet selects an initial panel and opens a working set around it.
func (s *ServiceImpl) CreateSet(ctx context.Context, location, travelStyle string) (*WorkingSet, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "CreateSet")
	defer span.End()

	resp, err := s.Select(ctx, SelectRequest{Location: location, TravelStyle: travelStyle})
	if err != nil {
		return nil, err
	}
	if len(resp.Places) == 0 {
		return nil, ErrNoPlaces
	}

	panel := resp.Places
	if len(panel) > PanelSize {
		panel = panel[:PanelSize]
	}

	ws := &WorkingSet{
		ID:          uuid.NewString(),
		Location:    location,
		TravelStyle: travelStyle,
		Places:      panel,
		IsMock:      resp.IsMock,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.sets.Set(ws.ID, ws, cache.DefaultExpiration)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Working set created",
		slog.String("set_id", ws.ID),
		slog.Int("panel_size", len(ws.Places)),
		slog.Bool("is_mock", ws.IsMock),
	)
	return ws, nil
}

func (s *ServiceImpl) GetSet(ctx context.Context, setID string) (*WorkingSet, error) {
	_, span := otel.Tracer("PlacesService").Start(ctx, "GetSet")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(setID)
}

// ToggleLock flips the lock flag of one place in the panel.
func (s *ServiceImpl) ToggleLock(ctx context.Context, setID, placeID string) (*WorkingSet, error) {
	_, span := otel.Tracer("PlacesService").Start(ctx, "ToggleLock")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := s.load(setID)
	if err != nil {
		return nil, err
	}
	for i := range ws.Places {
		if ws.Places[i].ID == placeID {
			ws.Places[i].Locked = !ws.Places[i].Locked
			s.sets.Set(ws.ID, ws, cache.DefaultExpiration)
			return ws, nil
		}
	}
	return nil, fmt.Errorf("places: place %q not in working set %q", placeID, setID)
}

// Refresh replaces every unlocked place with fresh candidates. Each refresh
// takes the next token; a fetch that finishes after a newer refresh has been
// issued is discarded, leaving the panel on the newest data.
func (s *ServiceImpl) Refresh(ctx context.Context, setID string) (*WorkingSet, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Refresh")
	defer span.End()
	span.SetAttributes(attribute.String("places.set_id", setID))

	s.mu.Lock()
	ws, err := s.load(setID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	lockedIDs := make([]string, 0, len(ws.Places))
	for _, p := range ws.Places {
		if p.Locked {
			lockedIDs = append(lockedIDs, p.ID)
		}
	}
	if len(lockedIDs) == len(ws.Places) {
		s.mu.Unlock()
		return nil, ErrAllLocked
	}

	ws.Offset++
	ws.Token++
	token := ws.Token
	req := SelectRequest{
		Location:    ws.Location,
		TravelStyle: ws.TravelStyle,
		ExcludeIDs:  lockedIDs,
		Offset:      ws.Offset,
	}
	s.mu.Unlock()

	resp, selectErr := s.Select(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err = s.load(setID)
	if err != nil {
		return nil, err
	}
	if ws.Token != token {
		// A newer refresh was issued while this fetch was in flight.
		s.logger.InfoContext(ctx, "Discarding stale refresh result",
			slog.String("set_id", setID),
			slog.Uint64("stale_token", token),
			slog.Uint64("current_token", ws.Token),
		)
		return ws, nil
	}
	if selectErr != nil {
		return nil, selectErr
	}

	ws.Places = MergeWithLocked(ws.Places, resp.Places)
	ws.IsMock = resp.IsMock
	s.sets.Set(ws.ID, ws, cache.DefaultExpiration)
	return ws, nil
}

func (s *ServiceImpl) load(setID string) (*WorkingSet, error) {
	v, found := s.sets.Get(setID)
	if !found {
		return nil, ErrSetNotFound
	}
	ws, ok := v.(*WorkingSet)
	if !ok {
		return nil, fmt.Errorf("places: corrupt working set entry for %q", setID)
	}
	return ws, nil
}

// interleave takes candidates round-robin across categories, skipping
// excluded and duplicate IDs.
func interleave(perCategory [][]types.Place, excluded map[string]bool) []types.Place {
	var out []types.Place
	seen := make(map[string]bool)
	for round := 0; ; round++ {
		progressed := false
		for _, bucket := range perCategory {
			if round >= len(bucket) {
				continue
			}
			progressed = true
			p := bucket[round]
			if excluded[p.ID] || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
		if !progressed {
			break
		}
	}
	return out
}

// fallbackPlaces synthesizes one candidate per category around central Seoul.
// Review counts and coordinates are seeded from location and category, so the
// same request always yields the same panel.
func fallbackPlaces(location string, categories []string) []types.Place {
	out := make([]types.Place, 0, len(categories))
	for i, category := range categories {
		seed := placeSeed(location, category)
		out = append(out, types.Place{
			ID:          fmt.Sprintf("mock_%d", i),
			Name:        fmt.Sprintf("%s %s 추천", location, category),
			Category:    category,
			Description: "추천 장소",
			Rating:      4.5,
			ReviewCount: int(seed%1000) + 100,
			Address:     location,
			Lat:         37.5 + float64(seed%1000)/10000,
			Lng:         127.0 + float64(seed/1000%1000)/10000,
			IsIndoor:    isIndoorCategory(category),
			IsOutdoor:   isOutdoorCategory(category),
			Keywords:    []string{"추천"},
		})
	}
	return out
}
