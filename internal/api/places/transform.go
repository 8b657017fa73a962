package places

import (
	"strconv"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// Seoul city hall, the fallback coordinate for records with no usable
// location.
const (
	DefaultLat = 37.5665
	DefaultLng = 126.9780
)

const defaultCategory = "관광지"

// NormalizeRecommendation collapses a loosely-typed recommendation record
// into a canonical Place. It is total: any record, however sparse, yields a
// usable place. Alias precedence follows the field the richer source writes
// first (title over name, address over addr1, imageUrl over googlePhoto,
// numeric lat/lng over string-encoded mapy/mapx).
func NormalizeRecommendation(rec types.RecommendationRecord) types.Place {
	name := rec.Title
	if name == "" {
		name = rec.Name
	}

	category := rec.AltCategory
	if category == "" {
		category = rec.Category
	}
	if category == "" {
		category = defaultCategory
	}

	description := rec.Reason
	if description == "" {
		description = rec.Description
	}

	address := rec.Address
	if address == "" {
		address = rec.Addr1
	}

	imageURL := rec.ImageURL
	if imageURL == "" {
		imageURL = rec.GooglePhoto
	}

	lat := coordinate(rec.Lat, rec.MapY, DefaultLat)
	lng := coordinate(rec.Lng, rec.MapX, DefaultLng)

	rating := 4.0
	if rec.Rating != nil && *rec.Rating > 0 {
		rating = *rec.Rating
	}

	reviewCount := 0
	if rec.ReviewCount != nil {
		reviewCount = *rec.ReviewCount
	}

	keywords := rec.Keywords
	if len(keywords) == 0 {
		keywords = rec.Tags
	}

	isIndoor := rec.IsIndoor != nil && *rec.IsIndoor

	return types.Place{
		ID:          rec.ContentID,
		Name:        name,
		Category:    category,
		Description: description,
		Rating:      rating,
		ReviewCount: reviewCount,
		Address:     address,
		Lat:         lat,
		Lng:         lng,
		IsIndoor:    isIndoor,
		IsOutdoor:   !isIndoor,
		Keywords:    keywords,
		ImageURL:    imageURL,
	}
}

func coordinate(numeric *float64, encoded string, fallback float64) float64 {
	if numeric != nil && *numeric != 0 {
		return *numeric
	}
	if encoded != "" {
		if v, err := strconv.ParseFloat(encoded, 64); err == nil && v != 0 {
			return v
		}
	}
	return fallback
}
