package osm

import (
	"context"
	"routrace/highway"
	"routrace/util"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

const testFile = "testdata/highways.osm"

type countingHandler struct {
	nodes, ways, relations int
	initCalled, doneCalled bool
	wayErr                 error
}

func (h *countingHandler) Name() string { return "CountingHandler" }

func (h *countingHandler) Init() error {
	h.initCalled = true
	return nil
}

func (h *countingHandler) HandleNode(node *osm.Node) error {
	h.nodes++
	return nil
}

func (h *countingHandler) HandleWay(way *osm.Way) error {
	h.ways++
	return h.wayErr
}

func (h *countingHandler) HandleRelation(relation *osm.Relation) error {
	h.relations++
	return nil
}

func (h *countingHandler) Done() error {
	h.doneCalled = true
	return nil
}

func TestOsmReader_Read(t *testing.T) {
	// Arrange
	handler := &countingHandler{}

	// Act
	err := NewOsmReader().Read(context.Background(), testFile, handler)

	// Assert
	util.AssertNil(t, err)
	util.AssertTrue(t, handler.initCalled)
	util.AssertTrue(t, handler.doneCalled)
	util.AssertEqual(t, 6, handler.nodes)
	util.AssertEqual(t, 5, handler.ways)
	util.AssertEqual(t, 3, handler.relations)
}

func TestOsmReader_Read_skipObjects(t *testing.T) {
	// Arrange
	handler := &countingHandler{}
	reader := NewOsmReader(WithSkipNodes(), WithSkipWays(), WithProcs(2))

	// Act
	err := reader.Read(context.Background(), testFile, handler)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 0, handler.nodes)
	util.AssertEqual(t, 0, handler.ways)
	util.AssertEqual(t, 3, handler.relations)
	util.AssertEqual(t, 2, reader.procs)
}

func TestOsmReader_Read_skipRelations(t *testing.T) {
	handler := &countingHandler{}

	err := NewOsmReader(WithSkipRelations()).Read(context.Background(), testFile, handler)

	util.AssertNil(t, err)
	util.AssertEqual(t, 6, handler.nodes)
	util.AssertEqual(t, 5, handler.ways)
	util.AssertEqual(t, 0, handler.relations)
}

func TestOsmReader_Read_handlerError(t *testing.T) {
	// Arrange
	handler := &countingHandler{wayErr: errors.New("foo")}

	// Act
	err := NewOsmReader().Read(context.Background(), testFile, handler)

	// Assert
	util.AssertError(t, "Handling way 10 using handler 'CountingHandler' failed: foo", err)
	util.AssertFalse(t, handler.doneCalled)
}

func TestOsmReader_Read_missingFile(t *testing.T) {
	err := NewOsmReader().Read(context.Background(), "testdata/missing.osm", &countingHandler{})

	util.AssertNotNil(t, err)
}

func TestOsmReader_Read_unsupportedExtension(t *testing.T) {
	err := NewOsmReader().Read(context.Background(), "reader_test.go", &countingHandler{})

	util.AssertError(t, "File extension '.go' of file reader_test.go is not supported", err)
}

func TestOsmReader_Read_relationCollector(t *testing.T) {
	// Arrange
	collector := highway.NewRelationCollector()

	// Act
	err := NewOsmReader(WithSkipNodes(), WithSkipWays()).Read(context.Background(), testFile, collector)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []highway.Discovered{{Name: "東名高速道路", NameEn: "Tomei Expressway", Ref: "E1"}}, collector.Highways())
	util.AssertEqual(t, []osm.WayID{10, 11, 12, 13}, collector.WayIDs("東名高速道路"))
}

func TestExtractWays(t *testing.T) {
	// Arrange
	wayIDs := map[osm.WayID]struct{}{10: {}, 11: {}, 12: {}, 13: {}, 15: {}}

	// Act
	ways, err := ExtractWays(context.Background(), testFile, wayIDs)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, 3, len(ways))
	util.AssertEqual(t, orb.LineString{{139.0, 35.0}, {139.1, 35.1}}, ways[10].Coordinates)
	util.AssertEqual(t, orb.LineString{{139.1, 35.1}, {139.2, 35.2}}, ways[11].Coordinates)
	util.AssertEqual(t, orb.LineString{{135.0, 34.0}, {135.1, 34.1}}, ways[12].Coordinates)
	util.AssertEqual(t, "E1", ways[10].Tags.Find("ref"))
	util.AssertEqual(t, osm.WayID(12), ways[12].ID)

	_, hasWayWithMissingNode := ways[13]
	util.AssertFalse(t, hasWayWithMissingNode)
}

func TestExtractWays_missingFile(t *testing.T) {
	ways, err := ExtractWays(context.Background(), "testdata/missing.osm", map[osm.WayID]struct{}{10: {}})

	util.AssertNotNil(t, err)
	util.AssertNil(t, ways)
}

func TestExtractWays_pipeline(t *testing.T) {
	// Arrange
	collector := highway.NewRelationCollector()
	err := NewOsmReader(WithSkipNodes(), WithSkipWays()).Read(context.Background(), testFile, collector)
	util.AssertNil(t, err)
	discovered := collector.Highways()

	// Act
	ways, err := ExtractWays(context.Background(), testFile, collector.AllWayIDs(discovered))
	highways := highway.Build(discovered, collector, ways)

	// Assert
	util.AssertNil(t, err)
	util.AssertLen(t, 2, highways)
	util.AssertEqual(t, "東名高速道路_E1", highways[0].ID)
	util.AssertEqual(t, "東名高速道路_E1A", highways[1].ID)
	util.AssertEqual(t, "東名", highways[0].Group)
	util.AssertEqual(t, "東名", highways[1].Group)
}

func TestOsmReader_Read_progressIgnoredForXml(t *testing.T) {
	handler := &countingHandler{}

	err := NewOsmReader(WithProgress("Reading")).Read(context.Background(), testFile, handler)

	util.AssertNil(t, err)
	util.AssertEqual(t, 6, handler.nodes)
}
