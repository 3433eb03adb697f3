package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// TokyoStation is the reference point all extent segments are measured from.
var TokyoStation = orb.Point{139.7671, 35.6812}

// Segment is a straight line between two points in (lon, lat) space.
type Segment [2]orb.Point

func (s Segment) Start() orb.Point { return s[0] }

func (s Segment) End() orb.Point { return s[1] }

// DistanceSquared returns the squared euclidean distance of the two points. Longitude and latitude are treated as
// plain x and y values, which is fine as long as the result is only compared with other distances.
func DistanceSquared(p1 orb.Point, p2 orb.Point) float64 {
	return planar.DistanceSquared(p1, p2)
}

// ExtentSegment returns the segment from the coordinate nearest to the center to the one farthest away from it. False
// is returned for empty input.
func ExtentSegment(coordinates []orb.Point, center orb.Point) (Segment, bool) {
	if len(coordinates) == 0 {
		return Segment{}, false
	}

	nearest := coordinates[0]
	farthest := coordinates[0]
	minDistance := DistanceSquared(nearest, center)
	maxDistance := minDistance

	for _, coordinate := range coordinates[1:] {
		distance := DistanceSquared(coordinate, center)
		if distance < minDistance {
			minDistance = distance
			nearest = coordinate
		}
		if distance > maxDistance {
			maxDistance = distance
			farthest = coordinate
		}
	}

	return Segment{nearest, farthest}, true
}

// CrossProduct returns twice the signed area of the triangle o-a-b. A positive value means a counter-clockwise turn.
func CrossProduct(o orb.Point, a orb.Point, b orb.Point) float64 {
	return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
}

// SegmentsIntersect only reports proper crossings. Touching endpoints and collinear overlaps are not considered to be
// an intersection.
func SegmentsIntersect(s1 Segment, s2 Segment) bool {
	d1 := CrossProduct(s2.Start(), s2.End(), s1.Start())
	d2 := CrossProduct(s2.Start(), s2.End(), s1.End())
	d3 := CrossProduct(s1.Start(), s1.End(), s2.Start())
	d4 := CrossProduct(s1.Start(), s1.End(), s2.End())

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func PointToSegmentDistanceSquared(p orb.Point, s Segment) float64 {
	dx := s.End().X() - s.Start().X()
	dy := s.End().Y() - s.Start().Y()

	lengthSquared := dx*dx + dy*dy
	if lengthSquared == 0 {
		return DistanceSquared(p, s.Start())
	}

	// Parameter of the projection onto the line through the segment, clamped to the segment itself.
	t := ((p.X()-s.Start().X())*dx + (p.Y()-s.Start().Y())*dy) / lengthSquared
	t = math.Max(0, math.Min(1, t))

	projection := orb.Point{s.Start().X() + t*dx, s.Start().Y() + t*dy}
	return DistanceSquared(p, projection)
}

// SegmentToSegmentDistance returns 0 for crossing segments and otherwise the smallest distance of an endpoint to the
// other segment.
func SegmentToSegmentDistance(s1 Segment, s2 Segment) float64 {
	if SegmentsIntersect(s1, s2) {
		return 0.0
	}

	minDistance := math.Min(
		math.Min(PointToSegmentDistanceSquared(s1.Start(), s2), PointToSegmentDistanceSquared(s1.End(), s2)),
		math.Min(PointToSegmentDistanceSquared(s2.Start(), s1), PointToSegmentDistanceSquared(s2.End(), s1)),
	)

	return math.Sqrt(minDistance)
}
