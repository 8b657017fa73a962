package places

import (
	"errors"
	"time"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// PanelSize is the fixed size of a candidate working set.
const PanelSize = 4

var (
	ErrSetNotFound = errors.New("places: working set not found")
	ErrAllLocked   = errors.New("places: every place is locked, nothing to refresh")
	ErrNoPlaces    = errors.New("places: no places available")
)

type SelectRequest struct {
	Location    string   `json:"location"`
	TravelStyle string   `json:"travelStyle"`
	Categories  []string `json:"categories,omitempty"`
	ExcludeIDs  []string `json:"excludeIds,omitempty"`
	Offset      int      `json:"offset"`
}

type CreateSetRequest struct {
	Location    string `json:"location"`
	TravelStyle string `json:"travelStyle"`
}

// WorkingSet is the user's current candidate panel. Token counts accepted
// refreshes: a refresh whose fetch loses the race to a newer one is
// discarded, so the panel never regresses to stale data.
type WorkingSet struct {
	ID          string        `json:"id"`
	Location    string        `json:"location"`
	TravelStyle string        `json:"travelStyle"`
	Places      []types.Place `json:"places"`
	Offset      int           `json:"offset"`
	Token       uint64        `json:"token"`
	IsMock      bool          `json:"isMock"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// CategoriesByStyle maps a travel style to the place categories used to fill
// the panel.
func CategoriesByStyle(style string) []string {
	switch style {
	case "힐링":
		return []string{"카페", "공원", "숙박", "레스토랑"}
	case "관광":
		return []string{"관광명소", "박물관", "레스토랑", "숙박"}
	default:
		return []string{"액티비티", "레스토랑", "공원", "숙박"}
	}
}

// MergeWithLocked keeps every locked place and tops the panel up with fresh
// candidates, locked first. Incoming duplicates of locked places are skipped.
func MergeWithLocked(current, incoming []types.Place) []types.Place {
	locked := make([]types.Place, 0, PanelSize)
	for _, p := range current {
		if p.Locked {
			locked = append(locked, p)
		}
	}

	merged := make([]types.Place, 0, PanelSize)
	merged = append(merged, locked...)
	for _, p := range incoming {
		if len(merged) >= PanelSize {
			break
		}
		dup := false
		for _, lp := range locked {
			if lp.ID == p.ID {
				dup = true
				break
			}
		}
		if !dup {
			merged = append(merged, p)
		}
	}
	return merged
}
