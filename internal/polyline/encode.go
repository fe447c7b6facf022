package polyline

import (
	"math"
	"strings"

	"georoute-api/internal/models"
)

// Encode converts an ordered coordinate sequence into an encoded polyline
// string at the given precision. It is the inverse of Decode for any sequence
// whose coordinates are representable at that precision.
func Encode(points []models.Coordinate, precision int) string {
	if precision <= 0 {
		precision = DefaultPrecision
	}

	scale := math.Pow10(precision)
	var sb strings.Builder

	var prevLat, prevLng int64
	for _, p := range points {
		lat := int64(math.Round(p.Latitude * scale))
		lng := int64(math.Round(p.Longitude * scale))
		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}

	return sb.String()
}

// encodeValue writes one signed delta as a zig-zag encoded group of 5-bit
// chunks, least significant chunk first.
func encodeValue(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte(u&0x1f|0x20) + 63)
		u >>= 5
	}
	sb.WriteByte(byte(u) + 63)
}
