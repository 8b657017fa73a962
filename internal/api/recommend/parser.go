package recommend

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parsePayload extracts the recommendation payload from a raw model answer.
// Models wrap JSON in markdown fences or chat filler often enough that the
// parser strips fences first and then falls back to grabbing the outermost
// JSON object.
func parsePayload(raw string) (*aiPayload, error) {
	cleaned := stripFences(raw)

	var payload aiPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		match := jsonObjectPattern.FindString(cleaned)
		if match == "" {
			return nil, fmt.Errorf("recommend: no JSON object in model response: %w", err)
		}
		if err := json.Unmarshal([]byte(match), &payload); err != nil {
			return nil, fmt.Errorf("recommend: failed to parse model response: %w", err)
		}
	}

	if len(payload.Recommendations) == 0 {
		return nil, ErrEmptyPayload
	}

	// Tolerant 4+1: an overlong list is trimmed, a short one accepted. When
	// the contract is met the fifth slot is guaranteed an accommodation
	// category even if the model forgot to set it.
	if len(payload.Recommendations) > MaxRecommendations {
		payload.Recommendations = payload.Recommendations[:MaxRecommendations]
	}
	if len(payload.Recommendations) == MaxRecommendations {
		last := &payload.Recommendations[MaxRecommendations-1]
		if last.Category == "" {
			last.Category = AccommodationCategory
		}
	}
	return &payload, nil
}

func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
