package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"routrace/highway"
	"routrace/util"
	"strings"
	"testing"
	"time"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestFormatTimestamp(t *testing.T) {
	util.AssertEqual(t, "2024-05-01T03:00:00Z", FormatTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, jst)))
}

func TestNewIndexEntry(t *testing.T) {
	// Act
	entry := NewIndexEntry(testHighway(), 1234, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	// Assert
	util.AssertEqual(t, IndexEntry{
		ID:         "東名高速道路_E1",
		Name:       "東名高速道路",
		NameEn:     "Tomei Expressway",
		Ref:        "E1;E1A",
		RefDisplay: "E1",
		Group:      "東名",
		FileSize:   1234,
		UpdatedAt:  "2024-05-01T12:00:00Z",
	}, entry)
}

func TestWriteIndex(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	updatedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	urban := &highway.Highway{ID: "首都高速1号上野線", Name: "首都高速1号上野線", Ref: "1", Group: "首都高速"}
	index := NewIndex([]IndexEntry{
		NewIndexEntry(urban, 10, updatedAt),
		NewIndexEntry(testHighway(), 20, updatedAt),
	})

	// Act
	size, err := WriteIndex(dir, index)

	// Assert
	util.AssertNil(t, err)

	data, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	util.AssertNil(t, err)
	util.AssertEqual(t, int64(len(data)), size)

	var written Index
	err = json.Unmarshal(data, &written)
	util.AssertNil(t, err)
	util.AssertEqual(t, index, written)
	util.AssertLen(t, 16, written.Groups)
	util.AssertEqual(t, "首都高速", written.Highways[0].Group)
}

func TestWriteIndex_withoutHighways(t *testing.T) {
	// Arrange
	dir := t.TempDir()

	// Act
	_, err := WriteIndex(dir, NewIndex(nil))

	// Assert
	util.AssertNil(t, err)
	data, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	util.AssertNil(t, err)
	util.AssertTrue(t, strings.HasPrefix(string(data), `{"highways":[],"groups":[{"name":"首都高速","type":"urban","order":0},`))
}

func TestWriteMetadata(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	metadata := NewMetadata(time.Date(2024, 5, 1, 12, 0, 0, 0, jst))

	// Act
	_, err := WriteMetadata(dir, metadata)

	// Assert
	util.AssertNil(t, err)
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	util.AssertNil(t, err)
	util.AssertEqual(t, `{"version":"1.0.0","generatedAt":"2024-05-01T03:00:00Z","source":"OpenStreetMap","license":"ODbL","attribution":"© OpenStreetMap contributors"}`, string(data))
}
