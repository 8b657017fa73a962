package route

import (
	"fmt"
	"math"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

const earthRadiusKm = 6371

// modeSpeedKmh is the average speed used for straight-line estimates when no
// directions provider covers the leg.
var modeSpeedKmh = map[types.TransportMode]float64{
	types.TransportWalk:    5,
	types.TransportTransit: 20,
	types.TransportDrive:   40,
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b types.LatLng) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c * 1000
}

// TravelSeconds estimates the time to cover meters at the mode's average
// speed.
func TravelSeconds(meters float64, mode types.TransportMode) float64 {
	speed, ok := modeSpeedKmh[mode]
	if !ok {
		speed = modeSpeedKmh[types.TransportDrive]
	}
	return meters / 1000 / speed * 3600
}

// FormatDistance renders meters as "X.Xkm" at or above one kilometer, "Xm"
// below it.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1fkm", meters/1000)
	}
	return fmt.Sprintf("%dm", int(math.Round(meters)))
}

// FormatDuration renders seconds as "N시간 M분", dropping the hour part when
// zero.
func FormatDuration(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Round(math.Mod(seconds, 3600) / 60))
	if hours > 0 {
		return fmt.Sprintf("%d시간 %d분", hours, minutes)
	}
	return fmt.Sprintf("%d분", minutes)
}

// EstimateCost prices the whole route in KRW. Driving costs 150 won per
// kilometer, transit a flat 1500 won per visited place, walking nothing.
func EstimateCost(mode types.TransportMode, totalMeters float64, placeCount int) int {
	switch mode {
	case types.TransportDrive:
		return int(math.Round(totalMeters / 1000 * 150))
	case types.TransportTransit:
		return placeCount * 1500
	default:
		return 0
	}
}
