package highway

import (
	"math"
	"routrace/common"
	"routrace/geometry"
	"unicode"

	"golang.org/x/exp/maps"
)

// EffectiveRef returns the ref used to group a way. Only the first part of a compound ref like "E4;E13" is used.
func EffectiveRef(way Way) string {
	return firstRefComponent(way.Tags.Find("ref"))
}

// IsNationalRoute returns true for purely numerical refs like "4" or "152". These denote national roads running along
// an expressway and not expressway route codes like "E20" or "C2".
func IsNationalRoute(ref string) bool {
	if ref == "" {
		return false
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isExpresswayRouteCode(ref string) bool {
	for _, r := range ref {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// GroupWaysByRef puts the ways into buckets by their effective ref. Ways without ref are added to the bucket
// containing the nearest coordinate. Only when no way has a ref, all of them end up in the "" bucket.
func GroupWaysByRef(ways []Way) map[string][]Way {
	waysByRef := map[string][]Way{}
	var waysWithoutRef []Way

	for _, way := range ways {
		ref := EffectiveRef(way)
		if ref == "" {
			waysWithoutRef = append(waysWithoutRef, way)
			continue
		}
		waysByRef[ref] = append(waysByRef[ref], way)
	}

	if len(waysWithoutRef) == 0 {
		return waysByRef
	}
	if len(waysByRef) == 0 {
		waysByRef[""] = waysWithoutRef
		return waysByRef
	}

	// Candidates are only the buckets of ways with a ref, so the result does not depend on the order of the ways.
	refs := common.Sort(maps.Keys(waysByRef))
	candidates := map[string][]Way{}
	for _, ref := range refs {
		candidates[ref] = waysByRef[ref]
	}

	for _, way := range waysWithoutRef {
		nearestRef := nearestBucket(way, refs, candidates)
		waysByRef[nearestRef] = append(waysByRef[nearestRef], way)
	}

	return waysByRef
}

func nearestBucket(way Way, refs []string, buckets map[string][]Way) string {
	nearestRef := refs[0]
	minDistance := math.Inf(1)

	for _, ref := range refs {
		distance := minWayDistanceSquared(way, buckets[ref])
		if distance < minDistance {
			minDistance = distance
			nearestRef = ref
		}
	}

	return nearestRef
}

func minWayDistanceSquared(way Way, others []Way) float64 {
	minDistance := math.Inf(1)
	for _, coordinate := range way.Coordinates {
		for _, other := range others {
			for _, otherCoordinate := range other.Coordinates {
				minDistance = math.Min(minDistance, geometry.DistanceSquared(coordinate, otherCoordinate))
			}
		}
	}
	return minDistance
}

// ShouldSplitByRef decides whether the highway is presented as one entity per ref. Urban expressways use their
// numerical route numbers for this, while other highways only consider expressway route codes, since they often share
// their road with a national route.
func ShouldSplitByRef(waysByRef map[string][]Way, name string) bool {
	_, isUrban := DetectGroup(name)

	distinctRefs := 0
	for ref := range waysByRef {
		if ref == "" {
			continue
		}
		if isUrban || isExpresswayRouteCode(ref) {
			distinctRefs++
		}
	}

	return distinctRefs >= 2
}
