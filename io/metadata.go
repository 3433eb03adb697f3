package io

import (
	"path/filepath"
	"time"
)

const (
	DatasetVersion     = "1.0.0"
	DatasetSource      = "OpenStreetMap"
	DatasetLicense     = "ODbL"
	DatasetAttribution = "© OpenStreetMap contributors"
)

type Metadata struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generatedAt"`
	Source      string `json:"source"`
	License     string `json:"license"`
	Attribution string `json:"attribution"`
}

func NewMetadata(generatedAt time.Time) Metadata {
	return Metadata{
		Version:     DatasetVersion,
		GeneratedAt: FormatTimestamp(generatedAt),
		Source:      DatasetSource,
		License:     DatasetLicense,
		Attribution: DatasetAttribution,
	}
}

func WriteMetadata(dataDir string, metadata Metadata) (int64, error) {
	return writeJsonFile(filepath.Join(dataDir, MetadataFileName), metadata)
}
