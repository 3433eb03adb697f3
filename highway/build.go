package highway

import (
	"cmp"
	"routrace/common"
	"strings"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WayIDSource provides the way IDs belonging to a highway base name.
type WayIDSource interface {
	WayIDs(name string) []osm.WayID
}

// Build turns the discovered highways into the final, ordered list of highway entities. Highways are split by their
// refs where appropriate, highways without any coordinates are dropped and every remaining highway gets its group.
func Build(discovered []Discovered, wayIDSource WayIDSource, waysByID map[osm.WayID]Way) []*Highway {
	var highways []*Highway

	for _, d := range discovered {
		ways := resolveWays(wayIDSource.WayIDs(d.Name), waysByID)
		sigolo.Debugf("%s: %d ways", d.Name, len(ways))

		for _, h := range split(d, ways) {
			h.updateExtent()
			if _, ok := h.Extent(); !ok {
				sigolo.Warnf("Highway %s has no coordinates and will be skipped", h.ID)
				continue
			}
			highways = append(highways, h)
		}
	}

	classifier := NewClassifier(highways)
	for _, h := range highways {
		h.Group = classifier.Assign(h)
		sigolo.Tracef("Highway %s belongs to group %s", h.ID, h.Group)
	}

	sortHighways(highways)

	return highways
}

func resolveWays(wayIDs []osm.WayID, waysByID map[osm.WayID]Way) []Way {
	var ways []Way
	for _, wayID := range wayIDs {
		if way, ok := waysByID[wayID]; ok {
			ways = append(ways, way)
		}
	}
	slices.SortFunc(ways, func(a, b Way) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return ways
}

func split(d Discovered, ways []Way) []*Highway {
	waysByRef := GroupWaysByRef(ways)

	if !ShouldSplitByRef(waysByRef, d.Name) {
		return []*Highway{{
			ID:     d.Name,
			Name:   d.Name,
			NameEn: d.NameEn,
			Ref:    d.Ref,
			Ways:   ways,
		}}
	}

	if _, isUrban := DetectGroup(d.Name); !isUrban {
		waysByRef = mergeNationalRoutes(waysByRef)
	}

	var highways []*Highway
	for _, ref := range common.Sort(maps.Keys(waysByRef)) {
		highways = append(highways, &Highway{
			ID:     d.Name + "_" + ref,
			Name:   d.Name,
			NameEn: d.NameEn,
			Ref:    ref,
			Ways:   waysByRef[ref],
		})
	}
	sigolo.Debugf("Split %s into %d highways by ref", d.Name, len(highways))

	return highways
}

// mergeNationalRoutes moves the ways of national route buckets into the nearest bucket of an expressway route code,
// so that a national road sharing the corridor does not become a highway of its own.
func mergeNationalRoutes(waysByRef map[string][]Way) map[string][]Way {
	var expresswayRefs []string
	expresswayBuckets := map[string][]Way{}
	for ref, ways := range waysByRef {
		if isExpresswayRouteCode(ref) {
			expresswayRefs = append(expresswayRefs, ref)
			expresswayBuckets[ref] = ways
		}
	}
	if len(expresswayRefs) == 0 {
		return waysByRef
	}
	expresswayRefs = common.Sort(expresswayRefs)

	result := map[string][]Way{}
	for ref, ways := range expresswayBuckets {
		result[ref] = ways
	}
	for _, ref := range common.Sort(maps.Keys(waysByRef)) {
		if isExpresswayRouteCode(ref) {
			continue
		}
		for _, way := range waysByRef[ref] {
			nearestRef := nearestBucket(way, expresswayRefs, expresswayBuckets)
			result[nearestRef] = append(result[nearestRef], way)
		}
	}

	return result
}

// sortHighways orders by group first, then by name and finally by ref.
func sortHighways(highways []*Highway) {
	slices.SortStableFunc(highways, func(a, b *Highway) int {
		if a.Group != b.Group {
			return GroupOrder(a.Group) - GroupOrder(b.Group)
		}
		if a.Name != b.Name {
			return strings.Compare(a.Name, b.Name)
		}
		if common.IsLessThan(a.Ref, b.Ref) {
			return -1
		}
		if common.IsLessThan(b.Ref, a.Ref) {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}
