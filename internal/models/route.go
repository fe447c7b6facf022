package models

// Route is one candidate route returned by the directions provider.
// Geometry carries the encoded polyline exactly as received.
type Route struct {
	Geometry        string  `json:"geometry"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// RoutePath is the decoded and simplified geometry of a planned route.
// Geometry is the simplified path re-encoded as a polyline.
type RoutePath struct {
	Points          []Coordinate `json:"points"`
	Geometry        string       `json:"geometry"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
	RawPointCount   int          `json:"raw_point_count"`
}
