package highway

import (
	"math"
	"routrace/geometry"
	"strings"

	"github.com/hauke96/sigolo/v2"
)

type GroupType string

const (
	GroupTypeUrban   GroupType = "urban"
	GroupTypeGeneral GroupType = "general"
)

// Group is a display corridor. Order defines the position of the group when rendering.
type Group struct {
	Name  string    `json:"name"`
	Type  GroupType `json:"type"`
	Order int       `json:"order"`
}

type alias struct {
	prefix string
	group  string
}

type coreHighway struct {
	name  string
	group string
}

// urbanPrefixes are the urban expressway systems, each forming its own group.
var urbanPrefixes = []string{
	"首都高速",
	"名古屋高速",
	"阪神高速",
	"広島高速",
	"北九州高速",
	"福岡高速",
}

// urbanAliases map alternative official and colloquial names to their urban group.
var urbanAliases = []alias{
	{"北九州都市高速", "北九州高速"},
	{"福岡都市高速", "福岡高速"},
	{"東京高速道路", "首都高速"},
}

const nagoyaPrefix = "名古屋"
const nagoyaGroup = "名古屋高速"

// coreHighways are the trunk routes each defining a corridor. All other general highways are assigned to the corridor
// of the nearest core highway. The order is used to resolve ties.
var coreHighways = []coreHighway{
	{"東名高速道路", "東名"},
	{"中央自動車道", "中央"},
	{"関越自動車道", "関越"},
	{"東北自動車道", "東北"},
	{"常磐自動車道", "常磐"},
	{"東関東自動車道", "東関東"},
	{"名神高速道路", "名神"},
	{"山陽自動車道", "山陽"},
	{"九州自動車道", "九州"},
	{"道央自動車道", "北海道"},
}

// DefaultGroup is used when no better group can be determined.
var DefaultGroup = coreHighways[0].group

var groupCatalog = buildGroupCatalog()

func buildGroupCatalog() []Group {
	var groups []Group
	for _, prefix := range urbanPrefixes {
		groups = append(groups, Group{Name: prefix, Type: GroupTypeUrban, Order: len(groups)})
	}
	for _, core := range coreHighways {
		groups = append(groups, Group{Name: core.group, Type: GroupTypeGeneral, Order: len(groups)})
	}
	return groups
}

// Groups returns the catalog of all groups in rendering order: the urban expressways first, then the corridors.
func Groups() []Group {
	groups := make([]Group, len(groupCatalog))
	copy(groups, groupCatalog)
	return groups
}

// GroupOrder returns the position of the group in the catalog or -1 for unknown groups.
func GroupOrder(name string) int {
	for _, group := range groupCatalog {
		if group.Name == name {
			return group.Order
		}
	}
	return -1
}

// CoreGroup returns the corridor of the given highway name, when the highway is a core highway itself.
func CoreGroup(name string) (string, bool) {
	for _, core := range coreHighways {
		if core.name == name {
			return core.group, true
		}
	}
	return "", false
}

func IsCoreHighway(name string) bool {
	_, ok := CoreGroup(name)
	return ok
}

// DetectGroup returns the urban expressway group of the highway or false for all other highways.
func DetectGroup(name string) (string, bool) {
	for _, prefix := range urbanPrefixes {
		if strings.HasPrefix(name, prefix) {
			return prefix, true
		}
	}

	for _, a := range urbanAliases {
		if strings.HasPrefix(name, a.prefix) {
			return a.group, true
		}
	}

	// Alternative spelling like "名古屋高速道路"
	for _, prefix := range urbanPrefixes {
		if strings.HasPrefix(name, prefix+"道路") {
			return prefix, true
		}
	}

	// Ring roads and spurs like "名古屋第二環状自動車道"
	if strings.HasPrefix(name, nagoyaPrefix) {
		return nagoyaGroup, true
	}

	return "", false
}

// DetermineGeneralGroup returns the corridor of the core highway nearest to the given segment. The segments of the
// core highways are given by name. Without any core segment the default group is returned.
func DetermineGeneralGroup(segment geometry.Segment, coreSegments map[string]geometry.Segment) string {
	group := DefaultGroup
	minDistance := math.Inf(1)

	for _, core := range coreHighways {
		coreSegment, ok := coreSegments[core.name]
		if !ok {
			continue
		}

		distance := geometry.SegmentToSegmentDistance(segment, coreSegment)
		if distance < minDistance {
			minDistance = distance
			group = core.group
		}
	}

	return group
}

// Classifier assigns groups to highways. It knows the extent segments of all core highways of the current run.
type Classifier struct {
	coreSegments map[string]geometry.Segment
}

// NewClassifier determines the extent segments of the core highways among the given highways. All highways of the
// same name contribute to the segment, so a core highway split by its refs is still used as a whole.
func NewClassifier(highways []*Highway) *Classifier {
	waysByName := map[string][]Way{}
	for _, h := range highways {
		if IsCoreHighway(h.Name) {
			waysByName[h.Name] = append(waysByName[h.Name], h.Ways...)
		}
	}

	coreSegments := map[string]geometry.Segment{}
	for name, ways := range waysByName {
		core := &Highway{Name: name, Ways: ways}
		core.updateExtent()
		if segment, ok := core.Extent(); ok {
			coreSegments[name] = segment
			sigolo.Debugf("Core highway %s spans from %v to %v", name, segment.Start(), segment.End())
		}
	}

	return &Classifier{
		coreSegments: coreSegments,
	}
}

func (c *Classifier) CoreSegments() map[string]geometry.Segment {
	return c.coreSegments
}

// Assign returns the group of the given highway. This is a total function, unclassifiable highways get the default
// group.
func (c *Classifier) Assign(h *Highway) string {
	if group, ok := DetectGroup(h.Name); ok {
		return group
	}

	if group, ok := CoreGroup(h.Name); ok {
		return group
	}

	segment, ok := h.Extent()
	if ok && len(c.coreSegments) > 0 {
		return DetermineGeneralGroup(segment, c.coreSegments)
	}

	sigolo.Warnf("Unable to determine group of highway %s (has extent: %t, core highways: %d), use default group %s", h.ID, ok, len(c.coreSegments), DefaultGroup)
	return DefaultGroup
}
