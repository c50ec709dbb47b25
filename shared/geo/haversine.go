package geo

import "math"

// EarthRadiusMeters matches the constant used in the nearby-places SQL so
// in-process distances agree with database-computed ones.
const EarthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// latitude/longitude pairs given in degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180

	cosine := math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Cos(lng2*rad-lng1*rad) +
		math.Sin(lat1*rad)*math.Sin(lat2*rad)

	// Floating point error can push the cosine just outside [-1, 1].
	cosine = math.Min(1, math.Max(-1, cosine))

	return EarthRadiusMeters * math.Acos(cosine)
}
