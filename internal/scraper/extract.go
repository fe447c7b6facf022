package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// An extractor inspects the raw page body and reports a candidate coordinate
// pair as unparsed strings. Extractors are pure and independently testable;
// the cascade composes them first-success-wins. The source page encodes
// coordinates inconsistently, so each stage documents its own ordering.
type extractor func(body string) (rawLat, rawLng string, ok bool)

// extractors is the ordered cascade. A later stage runs only when every
// earlier stage produced nothing.
var extractors = []struct {
	name string
	fn   extractor
}{
	{"embedded-json", extractEmbeddedJSON},
	{"decimal-pair", extractDecimalPair},
	{"viewport", extractViewport},
	{"at-marker", extractAtMarker},
	{"staticmap-center", extractStaticMapCenter},
}

func extractCoordinates(body string) (rawLat, rawLng string, ok bool) {
	for _, e := range extractors {
		if lat, lng, ok := e.fn(body); ok {
			log.Debug().Str("stage", e.name).Msg("scraper: extraction stage matched")
			return lat, lng, true
		}
	}
	return "", "", false
}

var embeddedJSONRe = regexp.MustCompile(`\[null,null,\[(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)\]\]`)

// extractEmbeddedJSON matches the [null,null,[lng,lat]] literal embedded in
// the page's bootstrap data. The source stores the pair as (lng,lat).
func extractEmbeddedJSON(body string) (string, string, bool) {
	m := embeddedJSONRe.FindStringSubmatch(body)
	if m == nil {
		return "", "", false
	}
	return m[2], m[1], true
}

// decimalPairRe matches a high-precision decimal pair in (lng,lat) document
// order: up to 3 integer digits for the longitude, 1-2 for the latitude,
// each with 3-15 fractional digits.
var decimalPairRe = regexp.MustCompile(`(-?\d{1,3}\.\d{3,15}),(-?\d{1,2}\.\d{3,15})`)

// extractDecimalPair scans for any free-standing decimal pair and accepts the
// first one that is range-valid after swapping to (lat,lng). Go's regexp has
// no lookaround, so the "not part of a longer digit run" guard is applied to
// the characters surrounding each match.
func extractDecimalPair(body string) (string, string, bool) {
	for _, idx := range decimalPairRe.FindAllStringSubmatchIndex(body, -1) {
		start, end := idx[0], idx[1]
		if start > 0 {
			prev := body[start-1]
			if prev >= '0' && prev <= '9' || prev == '.' {
				continue
			}
		}
		if end < len(body) {
			next := body[end]
			if next >= '0' && next <= '9' {
				continue
			}
		}

		rawLng := body[idx[2]:idx[3]]
		rawLat := body[idx[4]:idx[5]]
		lat, latErr := strconv.ParseFloat(rawLat, 64)
		lng, lngErr := strconv.ParseFloat(rawLng, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			continue
		}
		return rawLat, rawLng, true
	}
	return "", "", false
}

var signedDecimalRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// extractViewport looks for a viewport declaration and averages its bounding
// box: the midpoint of the 1st/3rd numbers is the latitude axis, the 2nd/4th
// the longitude axis. The search span never crosses a closing brace.
func extractViewport(body string) (string, string, bool) {
	search := body
	for {
		pos := strings.Index(search, "viewport")
		if pos < 0 {
			return "", "", false
		}
		span := search[pos:]
		if len(span) > 400 {
			span = span[:400]
		}
		if brace := strings.IndexByte(span, '}'); brace >= 0 {
			span = span[:brace]
		}

		nums := signedDecimalRe.FindAllString(span, 4)
		if len(nums) == 4 {
			lo0, err0 := strconv.ParseFloat(nums[0], 64)
			lo1, err1 := strconv.ParseFloat(nums[1], 64)
			hi0, err2 := strconv.ParseFloat(nums[2], 64)
			hi1, err3 := strconv.ParseFloat(nums[3], 64)
			if err0 == nil && err1 == nil && err2 == nil && err3 == nil {
				lat := (lo0 + hi0) / 2
				lng := (lo1 + hi1) / 2
				return strconv.FormatFloat(lat, 'f', -1, 64),
					strconv.FormatFloat(lng, 'f', -1, 64), true
			}
		}

		search = search[pos+len("viewport"):]
	}
}

var atMarkerRe = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)

// extractAtMarker matches the @lat,lng permalink marker.
func extractAtMarker(body string) (string, string, bool) {
	m := atMarkerRe.FindStringSubmatch(body)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var staticMapCenterRe = regexp.MustCompile(`center=(-?\d+(?:\.\d+)?)(?:,|%2C)(-?\d+(?:\.\d+)?)`)

// extractStaticMapCenter matches the center=lat,lng parameter of a static map
// URL; the separator may be URL-encoded.
func extractStaticMapCenter(body string) (string, string, bool) {
	pos := strings.Index(body, "staticmap?")
	if pos < 0 {
		return "", "", false
	}
	m := staticMapCenterRe.FindStringSubmatch(body[pos:])
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
