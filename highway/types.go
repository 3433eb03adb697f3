package highway

import (
	"routrace/geometry"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Way is a single OSM way with resolved node coordinates. Ways with fewer than two coordinates never reach this
// package.
type Way struct {
	ID          osm.WayID
	Tags        osm.Tags
	Coordinates orb.LineString
}

// Discovered is a highway as found during relation collection, before its ways are resolved.
type Discovered struct {
	Name   string
	NameEn string
	Ref    string
}

// Highway is one entity of the final dataset. A discovered highway results in several entities when it is split by
// its route refs.
type Highway struct {
	ID     string
	Name   string
	NameEn string
	Ref    string
	Ways   []Way
	Group  string

	extent    geometry.Segment
	hasExtent bool
}

// RefDisplay returns the first component of a compound ref like "E4;E13".
func (h *Highway) RefDisplay() string {
	return firstRefComponent(h.Ref)
}

func (h *Highway) Coordinates() []orb.Point {
	var coordinates []orb.Point
	for _, way := range h.Ways {
		coordinates = append(coordinates, way.Coordinates...)
	}
	return coordinates
}

// Extent returns the segment between the points nearest to and farthest from Tokyo Station.
func (h *Highway) Extent() (geometry.Segment, bool) {
	return h.extent, h.hasExtent
}

func (h *Highway) updateExtent() {
	h.extent, h.hasExtent = geometry.ExtentSegment(h.Coordinates(), geometry.TokyoStation)
}

func firstRefComponent(ref string) string {
	first, _, _ := strings.Cut(ref, ";")
	return strings.TrimSpace(first)
}
