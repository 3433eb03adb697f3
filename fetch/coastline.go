package fetch

import (
	"context"
	"io"
	"routrace/geometry"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	DefaultCoastlineUrl = "https://raw.githubusercontent.com/dataofjapan/land/master/japan.geojson"
	coastlineName       = "Japan Coastline"
	coastlineSource     = "dataofjapan/land"
)

// FetchCoastline downloads the coastline of Japan and simplifies it with the given tolerance. The collection carries
// top-level properties describing its origin.
func FetchCoastline(ctx context.Context, url string, tolerance float64) (*geojson.FeatureCollection, error) {
	sigolo.Infof("Fetch coastline from %s", url)

	response, err := get(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to download coastline")
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read coastline from %s", url)
	}

	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse coastline from %s", url)
	}

	sigolo.Infof("Fetched coastline with %d features", len(featureCollection.Features))
	if len(featureCollection.Features) == 0 {
		sigolo.Warnf("Coastline from %s contains no features", url)
	}

	simplified := geometry.SimplifyFeatureCollection(featureCollection, tolerance)
	sigolo.Infof("Simplified coastline from %d to %d coordinates", geometry.FeatureCollectionCoordinateCount(featureCollection), geometry.FeatureCollectionCoordinateCount(simplified))

	simplified.ExtraMembers = geojson.Properties{
		"properties": map[string]interface{}{
			"name":       coastlineName,
			"source":     coastlineSource,
			"simplified": true,
			"tolerance":  tolerance,
		},
	}

	return simplified, nil
}
