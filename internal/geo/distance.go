package geo

import "math"

// earthRadiusMiles is the mean Earth radius used by the Haversine formula.
const earthRadiusMiles = 3959.0

// walkMinutesPerMile assumes a 3 mph city walking pace.
const walkMinutesPerMile = 20.0

// Miles returns the great-circle distance in miles between two points given in
// signed decimal degrees (WGS84). Callers must reject NaN/undefined coordinates
// before invoking; this function assumes valid numeric input.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// WalkMinutes converts a distance in miles into an estimated walking time.
func WalkMinutes(miles float64) int {
	return int(math.Round(miles * walkMinutesPerMile))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
