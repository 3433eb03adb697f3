package geometry

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
)

// DefaultSimplifyTolerance is given in degrees, which is roughly 100m in Japan.
const DefaultSimplifyTolerance = 0.001

// SimplifyFeatureCollection returns a new collection with all geometries simplified by the Douglas-Peucker algorithm.
// The input collection is not modified. Features whose geometry collapses are dropped.
func SimplifyFeatureCollection(featureCollection *geojson.FeatureCollection, tolerance float64) *geojson.FeatureCollection {
	simplifier := simplify.DouglasPeucker(tolerance)

	result := geojson.NewFeatureCollection()
	for _, feature := range featureCollection.Features {
		if feature.Geometry == nil {
			continue
		}

		simplifiedGeometry := simplifier.Simplify(orb.Clone(feature.Geometry))
		if isCollapsed(simplifiedGeometry) {
			sigolo.Tracef("Drop feature %v with collapsed geometry", feature.ID)
			continue
		}

		simplifiedFeature := geojson.NewFeature(simplifiedGeometry)
		simplifiedFeature.ID = feature.ID
		for key, value := range feature.Properties {
			simplifiedFeature.Properties[key] = value
		}
		result.Features = append(result.Features, simplifiedFeature)
	}

	return result
}

func isCollapsed(g orb.Geometry) bool {
	switch geometry := g.(type) {
	case nil:
		return true
	case orb.LineString:
		return len(geometry) < 2
	case orb.MultiLineString:
		return len(geometry) == 0
	case orb.Polygon:
		return len(geometry) == 0 || len(geometry[0]) < 4
	case orb.MultiPolygon:
		return len(geometry) == 0
	}
	return CoordinateCount(g) == 0
}

// CoordinateCount returns the total number of points of the given geometry.
func CoordinateCount(g orb.Geometry) int {
	switch geometry := g.(type) {
	case orb.Point:
		return 1
	case orb.MultiPoint:
		return len(geometry)
	case orb.LineString:
		return len(geometry)
	case orb.Ring:
		return len(geometry)
	case orb.MultiLineString:
		count := 0
		for _, lineString := range geometry {
			count += len(lineString)
		}
		return count
	case orb.Polygon:
		count := 0
		for _, ring := range geometry {
			count += len(ring)
		}
		return count
	case orb.MultiPolygon:
		count := 0
		for _, polygon := range geometry {
			count += CoordinateCount(polygon)
		}
		return count
	case orb.Collection:
		count := 0
		for _, child := range geometry {
			count += CoordinateCount(child)
		}
		return count
	}
	return 0
}

// FeatureCollectionCoordinateCount sums up the coordinates of all features.
func FeatureCollectionCoordinateCount(featureCollection *geojson.FeatureCollection) int {
	count := 0
	for _, feature := range featureCollection.Features {
		count += CoordinateCount(feature.Geometry)
	}
	return count
}
