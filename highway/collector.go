package highway

import (
	"strings"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"golang.org/x/exp/slices"
)

// RelationCollector gathers the way IDs of all route relations per highway base name. It can be used as handler while
// reading an OSM file or be fed with relations directly via Collect.
type RelationCollector struct {
	wayIDsByName map[string]map[osm.WayID]struct{}
	highways     map[string]*Discovered

	relationCount        int
	skippedRelationCount int
}

func NewRelationCollector() *RelationCollector {
	return &RelationCollector{
		wayIDsByName: map[string]map[osm.WayID]struct{}{},
		highways:     map[string]*Discovered{},
	}
}

func (c *RelationCollector) Name() string {
	return "RelationCollector"
}

func (c *RelationCollector) Init() error {
	return nil
}

func (c *RelationCollector) HandleNode(node *osm.Node) error {
	return nil
}

func (c *RelationCollector) HandleWay(way *osm.Way) error {
	return nil
}

func (c *RelationCollector) HandleRelation(relation *osm.Relation) error {
	c.Collect(relation)
	return nil
}

func (c *RelationCollector) Done() error {
	sigolo.Infof("Found %d highways in %d road relations (%d relations skipped)", len(c.highways), c.relationCount, c.skippedRelationCount)
	return nil
}

func (c *RelationCollector) Collect(relations ...*osm.Relation) {
	for _, relation := range relations {
		c.collect(relation)
	}
}

func (c *RelationCollector) collect(relation *osm.Relation) {
	if relation.Tags.Find("route") != "road" {
		return
	}
	c.relationCount++

	rawName := relation.Tags.Find("name")
	name, ok := NormalizeName(rawName)
	if !ok {
		sigolo.Tracef("Skip relation %d with name '%s'", relation.ID, rawName)
		c.skippedRelationCount++
		return
	}

	wayIDs, ok := c.wayIDsByName[name]
	if !ok {
		wayIDs = map[osm.WayID]struct{}{}
		c.wayIDsByName[name] = wayIDs
		c.highways[name] = &Discovered{Name: name}
		sigolo.Debugf("Discovered highway '%s' in relation %d", name, relation.ID)
	}

	for _, member := range relation.Members {
		if member.Type == osm.TypeWay {
			wayIDs[osm.WayID(member.Ref)] = struct{}{}
		}
	}

	// The first non-blank value wins and is never overwritten afterward.
	highway := c.highways[name]
	if highway.NameEn == "" {
		highway.NameEn = strings.TrimSpace(relation.Tags.Find("name:en"))
	}
	if highway.Ref == "" {
		highway.Ref = strings.TrimSpace(relation.Tags.Find("ref"))
	}
}

// Highways returns all discovered highways ordered by their base name.
func (c *RelationCollector) Highways() []Discovered {
	var highways []Discovered
	for _, highway := range c.highways {
		highways = append(highways, *highway)
	}
	slices.SortFunc(highways, func(a, b Discovered) int {
		return strings.Compare(a.Name, b.Name)
	})
	return highways
}

// WayIDs returns the way IDs of the given highway ordered by ID.
func (c *RelationCollector) WayIDs(name string) []osm.WayID {
	var wayIDs []osm.WayID
	for wayID := range c.wayIDsByName[name] {
		wayIDs = append(wayIDs, wayID)
	}
	slices.Sort(wayIDs)
	return wayIDs
}

// AllWayIDs returns the union of the way IDs of all given highways.
func (c *RelationCollector) AllWayIDs(highways []Discovered) map[osm.WayID]struct{} {
	allWayIDs := map[osm.WayID]struct{}{}
	for _, highway := range highways {
		for wayID := range c.wayIDsByName[highway.Name] {
			allWayIDs[wayID] = struct{}{}
		}
	}
	return allWayIDs
}
