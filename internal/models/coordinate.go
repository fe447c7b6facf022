package models

// Coordinate represents a single geographic point as a latitude/longitude pair in decimal degrees (WGS84).
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within the WGS84 value range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// ResolvedLocation is a range-validated coordinate together with the
// best-effort address label extracted from the source page.
type ResolvedLocation struct {
	Coordinate
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}
