package osm

import (
	"context"
	"routrace/highway"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// WayCollector keeps the wanted ways and remembers which nodes they reference.
type WayCollector struct {
	wantedWayIDs map[osm.WayID]struct{}
	ways         map[osm.WayID]*osm.Way
	nodeIDs      map[osm.NodeID]struct{}
}

func NewWayCollector(wantedWayIDs map[osm.WayID]struct{}) *WayCollector {
	return &WayCollector{
		wantedWayIDs: wantedWayIDs,
		ways:         map[osm.WayID]*osm.Way{},
		nodeIDs:      map[osm.NodeID]struct{}{},
	}
}

func (c *WayCollector) Name() string {
	return "WayCollector"
}

func (c *WayCollector) Init() error {
	return nil
}

func (c *WayCollector) HandleNode(node *osm.Node) error {
	return nil
}

func (c *WayCollector) HandleWay(way *osm.Way) error {
	if _, ok := c.wantedWayIDs[way.ID]; !ok {
		return nil
	}

	c.ways[way.ID] = way
	for _, wayNode := range way.Nodes {
		c.nodeIDs[wayNode.ID] = struct{}{}
	}
	return nil
}

func (c *WayCollector) HandleRelation(relation *osm.Relation) error {
	return nil
}

func (c *WayCollector) Done() error {
	sigolo.Infof("Found %d of %d ways referencing %d nodes", len(c.ways), len(c.wantedWayIDs), len(c.nodeIDs))
	if missing := len(c.wantedWayIDs) - len(c.ways); missing > 0 {
		sigolo.Warnf("%d ways referenced by relations are missing in the input data", missing)
	}
	return nil
}

func (c *WayCollector) NodeIDs() map[osm.NodeID]struct{} {
	return c.nodeIDs
}

// NodeLocator stores the coordinates of the wanted nodes.
type NodeLocator struct {
	wantedNodeIDs map[osm.NodeID]struct{}
	locations     map[osm.NodeID]orb.Point
}

func NewNodeLocator(wantedNodeIDs map[osm.NodeID]struct{}) *NodeLocator {
	return &NodeLocator{
		wantedNodeIDs: wantedNodeIDs,
		locations:     map[osm.NodeID]orb.Point{},
	}
}

func (l *NodeLocator) Name() string {
	return "NodeLocator"
}

func (l *NodeLocator) Init() error {
	return nil
}

func (l *NodeLocator) HandleNode(node *osm.Node) error {
	if _, ok := l.wantedNodeIDs[node.ID]; ok {
		l.locations[node.ID] = node.Point()
	}
	return nil
}

func (l *NodeLocator) HandleWay(way *osm.Way) error {
	return nil
}

func (l *NodeLocator) HandleRelation(relation *osm.Relation) error {
	return nil
}

func (l *NodeLocator) Done() error {
	sigolo.Infof("Located %d of %d nodes", len(l.locations), len(l.wantedNodeIDs))
	return nil
}

func (l *NodeLocator) Location(nodeID osm.NodeID) (orb.Point, bool) {
	location, ok := l.locations[nodeID]
	return location, ok
}

// ExtractWays reads the given ways and resolves their node coordinates in two passes over the file. Nodes missing in
// the data are left out and ways with less than two remaining coordinates are dropped.
func ExtractWays(ctx context.Context, filename string, wayIDs map[osm.WayID]struct{}, options ...Option) (map[osm.WayID]highway.Way, error) {
	wayCollector := NewWayCollector(wayIDs)
	wayReader := NewOsmReader(options...)
	wayReader.skipNodes = true
	wayReader.skipRelations = true
	err := wayReader.Read(ctx, filename, wayCollector)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read ways from %s", filename)
	}

	nodeLocator := NewNodeLocator(wayCollector.NodeIDs())
	nodeReader := NewOsmReader(options...)
	nodeReader.skipWays = true
	nodeReader.skipRelations = true
	err = nodeReader.Read(ctx, filename, nodeLocator)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read nodes from %s", filename)
	}

	return resolveWays(wayCollector.ways, nodeLocator), nil
}

func resolveWays(ways map[osm.WayID]*osm.Way, nodeLocator *NodeLocator) map[osm.WayID]highway.Way {
	result := map[osm.WayID]highway.Way{}
	droppedWays := 0

	for wayID, way := range ways {
		var coordinates orb.LineString
		for _, wayNode := range way.Nodes {
			if location, ok := nodeLocator.Location(wayNode.ID); ok {
				coordinates = append(coordinates, location)
			}
		}

		if len(coordinates) < 2 {
			sigolo.Tracef("Way %d has only %d located nodes and will be skipped", wayID, len(coordinates))
			droppedWays++
			continue
		}

		result[wayID] = highway.Way{
			ID:          wayID,
			Tags:        way.Tags,
			Coordinates: coordinates,
		}
	}

	if droppedWays > 0 {
		sigolo.Debugf("Skipped %d ways with less than two located nodes", droppedWays)
	}

	return result
}
