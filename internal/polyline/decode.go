package polyline

import (
	"errors"
	"math"
	"strings"

	"georoute-api/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultPrecision is the digit count used by the Google polyline format
// (coordinates scaled by 10^5).
const DefaultPrecision = 5

var errUnterminated = errors.New("polyline: continuation sequence past end of input")

// Decode converts an encoded polyline string into an ordered coordinate
// sequence. A blank input yields an empty slice. A malformed input (a value
// whose continuation bits run past the end of the string) also yields an
// empty slice rather than an error: encoded paths come from an external
// routing API and corruption is treated as "no path".
func Decode(encoded string, precision int) []models.Coordinate {
	if strings.TrimSpace(encoded) == "" {
		return []models.Coordinate{}
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}

	scale := math.Pow10(precision)
	points := make([]models.Coordinate, 0, len(encoded)/4)

	var lat, lng int64
	idx := 0
	for idx < len(encoded) {
		delta, next, err := decodeValue(encoded, idx)
		if err != nil {
			log.Debug().Int("offset", idx).Msg("polyline: dropping malformed encoded path")
			return []models.Coordinate{}
		}
		idx = next
		lat += delta

		// A trailing latitude delta without a longitude counterpart is
		// dropped, not treated as an error.
		if idx >= len(encoded) {
			break
		}

		delta, next, err = decodeValue(encoded, idx)
		if err != nil {
			log.Debug().Int("offset", idx).Msg("polyline: dropping malformed encoded path")
			return []models.Coordinate{}
		}
		idx = next
		lng += delta

		points = append(points, models.Coordinate{
			Latitude:  float64(lat) / scale,
			Longitude: float64(lng) / scale,
		})
	}

	return points
}

// decodeValue reads one zig-zag encoded delta starting at idx and returns the
// signed delta together with the index of the next unread character.
func decodeValue(encoded string, idx int) (int64, int, error) {
	var result int64
	var shift uint
	for {
		if idx >= len(encoded) {
			return 0, idx, errUnterminated
		}
		b := int64(encoded[idx]) - 63
		idx++
		result |= (b & 0x1f) << shift
		shift += 5
		if b&0x20 == 0 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), idx, nil
	}
	return result >> 1, idx, nil
}
