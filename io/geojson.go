package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"routrace/geometry"
	"routrace/highway"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	DataDirName       = "data"
	HighwaysDirName   = "highways"
	IndexFileName     = "index.json"
	MetadataFileName  = "metadata.json"
	CoastlineFileName = "coastline.json"
)

// Characters not allowed in file names on common file systems.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

func DataDir(outputDir string) string {
	return filepath.Join(outputDir, DataDirName)
}

func HighwaysDir(outputDir string) string {
	return filepath.Join(DataDir(outputDir), HighwaysDirName)
}

// FileName returns the name of the GeoJSON file of the highway with the given ID.
func FileName(highwayID string) string {
	return fileNameReplacer.Replace(highwayID) + ".json"
}

// FormatSize returns a human readable file size like "1.2 MiB".
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// HighwayToFeatureCollection creates one LineString feature per way of the highway.
func HighwayToFeatureCollection(h *highway.Highway) *geojson.FeatureCollection {
	featureCollection := geojson.NewFeatureCollection()
	for _, way := range h.Ways {
		feature := geojson.NewFeature(way.Coordinates)
		feature.Properties["name"] = way.Tags.Find("name")
		feature.Properties["ref"] = way.Tags.Find("ref")
		feature.Properties["highway"] = way.Tags.Find("highway")
		featureCollection.Append(feature)
	}
	return featureCollection
}

// WriteHighway writes the simplified geometry of the highway into the given folder and returns the file size.
func WriteHighway(highwaysDir string, h *highway.Highway, tolerance float64) (int64, error) {
	featureCollection := HighwayToFeatureCollection(h)
	simplified := geometry.SimplifyFeatureCollection(featureCollection, tolerance)
	sigolo.Debugf("Simplified %s from %d to %d coordinates", h.ID, geometry.FeatureCollectionCoordinateCount(featureCollection), geometry.FeatureCollectionCoordinateCount(simplified))

	if len(simplified.Features) == 0 {
		sigolo.Warnf("Highway %s has no features after simplification", h.ID)
	}

	simplified.ExtraMembers = geojson.Properties{
		"properties": map[string]interface{}{
			"id":         h.ID,
			"name":       h.Name,
			"nameEn":     h.NameEn,
			"ref":        h.Ref,
			"refDisplay": h.RefDisplay(),
			"group":      h.Group,
			"simplified": true,
			"tolerance":  tolerance,
		},
	}

	return writeGeoJsonFile(filepath.Join(highwaysDir, FileName(h.ID)), simplified)
}

func WriteCoastline(dataDir string, featureCollection *geojson.FeatureCollection) (int64, error) {
	return writeGeoJsonFile(filepath.Join(dataDir, CoastlineFileName), featureCollection)
}

func writeGeoJsonFile(filename string, featureCollection *geojson.FeatureCollection) (int64, error) {
	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return 0, errors.Wrapf(err, "Unable to encode GeoJSON for file %s", filename)
	}
	return writeFile(filename, geojsonBytes)
}

func writeJsonFile(filename string, value interface{}) (int64, error) {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return 0, errors.Wrapf(err, "Unable to encode JSON for file %s", filename)
	}
	return writeFile(filename, jsonBytes)
}

func writeFile(filename string, data []byte) (int64, error) {
	err := os.MkdirAll(filepath.Dir(filename), os.ModePerm)
	if err != nil {
		return 0, errors.Wrapf(err, "Unable to create folder for file %s", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "Unable to create file %s", filename)
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		return 0, errors.Wrapf(err, "Unable to write file %s", filename)
	}

	err = file.Close()
	if err != nil {
		return 0, errors.Wrapf(err, "Unable to close file handle for file %s", filename)
	}

	size := int64(len(data))
	sigolo.Infof("Wrote %s (%s)", filename, FormatSize(size))

	return size, nil
}
