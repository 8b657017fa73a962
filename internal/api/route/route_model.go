package route

import (
	"errors"
	"strings"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

var ErrUnknownMode = errors.New("route: unknown transport mode")

type CalculateRequest struct {
	Places        []types.Place `json:"places"`
	TransportMode string        `json:"transportMode"`
}

type OptimizeRequest struct {
	Places     []types.Place `json:"places"`
	StartIndex int           `json:"startIndex"`
}

type OptimizeResponse struct {
	Success         bool          `json:"success"`
	OptimizedPlaces []types.Place `json:"optimizedPlaces"`
}

// ParseTransportMode accepts both the canonical enum values and the Korean
// labels clients send.
func ParseTransportMode(raw string) (types.TransportMode, error) {
	switch strings.TrimSpace(raw) {
	case string(types.TransportWalk), "도보", "FOOT":
		return types.TransportWalk, nil
	case string(types.TransportTransit), "대중교통":
		return types.TransportTransit, nil
	case string(types.TransportDrive), "자동차", "CAR", "":
		return types.TransportDrive, nil
	default:
		return "", ErrUnknownMode
	}
}
