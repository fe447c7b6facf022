package polyline

import (
	"math"

	"georoute-api/internal/models"
)

// DefaultTolerance is the Douglas-Peucker tolerance in degrees, roughly
// 7-11 meters at typical latitudes.
const DefaultTolerance = 0.0001

// Simplify reduces the point count of a path while preserving its visual
// shape using the Douglas-Peucker algorithm. Latitude/longitude degrees are
// treated as a flat Euclidean plane. The first and last point are always
// retained and inputs of length <= 2 pass through unchanged.
//
// The divide-and-conquer recursion is expressed as an explicit worklist so
// that paths with tens of thousands of points cannot exhaust the stack.
func Simplify(points []models.Coordinate, tolerance float64) []models.Coordinate {
	if len(points) <= 2 {
		return points
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true

	type span struct{ first, last int }
	work := []span{{0, len(points) - 1}}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]

		maxDist := 0.0
		maxIdx := -1
		for i := s.first + 1; i < s.last; i++ {
			d := segmentDistance(points[i], points[s.first], points[s.last])
			if d > maxDist {
				maxDist = d
				maxIdx = i
			}
		}

		// A span whose farthest interior point is within tolerance collapses
		// to its endpoints.
		if maxIdx < 0 || maxDist <= tolerance {
			continue
		}

		keep[maxIdx] = true
		work = append(work, span{s.first, maxIdx}, span{maxIdx, s.last})
	}

	out := make([]models.Coordinate, 0, len(points))
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// segmentDistance returns the Euclidean distance from p to the segment a-b,
// clamping the projection parameter to the segment. Coincident endpoints
// degenerate to the point-to-point distance.
func segmentDistance(p, a, b models.Coordinate) float64 {
	dx := b.Latitude - a.Latitude
	dy := b.Longitude - a.Longitude

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.Latitude-a.Latitude, p.Longitude-a.Longitude)
	}

	t := ((p.Latitude-a.Latitude)*dx + (p.Longitude-a.Longitude)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return math.Hypot(
		p.Latitude-(a.Latitude+t*dx),
		p.Longitude-(a.Longitude+t*dy),
	)
}
