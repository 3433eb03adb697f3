package io

import (
	"path/filepath"
	"routrace/highway"
	"time"
)

const timestampFormat = "2006-01-02T15:04:05Z"

type IndexEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NameEn     string `json:"nameEn"`
	Ref        string `json:"ref"`
	RefDisplay string `json:"refDisplay"`
	Group      string `json:"group"`
	FileSize   int64  `json:"fileSize"`
	UpdatedAt  string `json:"updatedAt"`
}

// Index lists all highway files in display order together with the group catalog.
type Index struct {
	Highways []IndexEntry   `json:"highways"`
	Groups   []highway.Group `json:"groups"`
}

func NewIndexEntry(h *highway.Highway, fileSize int64, updatedAt time.Time) IndexEntry {
	return IndexEntry{
		ID:         h.ID,
		Name:       h.Name,
		NameEn:     h.NameEn,
		Ref:        h.Ref,
		RefDisplay: h.RefDisplay(),
		Group:      h.Group,
		FileSize:   fileSize,
		UpdatedAt:  FormatTimestamp(updatedAt),
	}
}

func NewIndex(entries []IndexEntry) Index {
	if entries == nil {
		entries = []IndexEntry{}
	}
	return Index{
		Highways: entries,
		Groups:   highway.Groups(),
	}
}

func WriteIndex(highwaysDir string, index Index) (int64, error) {
	return writeJsonFile(filepath.Join(highwaysDir, IndexFileName), index)
}

// FormatTimestamp returns the given time in UTC with second precision, e.g. "2024-05-01T12:00:00Z".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}
