package geo

import "math"

// EarthRadiusMeters is the equatorial radius used by the haversine formula.
const EarthRadiusMeters = 6378137.0

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLng := toRadians(b.Lng - a.Lng)

	h := hav(dLat) + math.Cos(lat1)*math.Cos(lat2)*hav(dLng)
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(math.Min(1, h)))
}

func hav(x float64) float64 {
	s := math.Sin(x / 2)
	return s * s
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
