package fetch

import (
	"context"
	"os"
	"path/filepath"
	"routrace/util"
	"runtime"
	"strings"
	"testing"
	"time"
)

const fakeOsmium = `#!/bin/sh
while [ $# -gt 0 ]; do
	if [ "$1" = "-o" ]; then
		shift
		echo "filtered" > "$1"
	fi
	shift
done
`

const failingOsmium = `#!/bin/sh
echo "Unknown option" >&2
exit 1
`

func writeScript(t *testing.T, content string) string {
	if runtime.GOOS == "windows" {
		t.Skip("Shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "osmium")
	err := os.WriteFile(path, []byte(content), 0755)
	util.AssertNil(t, err)
	return path
}

func writePbf(t *testing.T, dir string) string {
	path := filepath.Join(dir, PbfCacheFileName)
	err := os.WriteFile(path, []byte("pbf-data"), 0644)
	util.AssertNil(t, err)

	past := time.Now().Add(-time.Hour)
	err = os.Chtimes(path, past, past)
	util.AssertNil(t, err)

	return path
}

func TestFilterRoutes(t *testing.T) {
	// Arrange
	osmium := writeScript(t, fakeOsmium)
	cacheDir := t.TempDir()
	pbfPath := writePbf(t, cacheDir)

	// Act
	path, err := FilterRoutes(context.Background(), osmium, pbfPath, cacheDir)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, filepath.Join(cacheDir, FilteredCacheFileName), path)
	util.AssertEqual(t, "filtered\n", readFile(t, path))
}

func TestFilterRoutes_reuseNewerFile(t *testing.T) {
	// Arrange
	osmium := writeScript(t, failingOsmium)
	cacheDir := t.TempDir()
	pbfPath := writePbf(t, cacheDir)
	err := os.WriteFile(filepath.Join(cacheDir, FilteredCacheFileName), []byte("cached"), 0644)
	util.AssertNil(t, err)

	// Act
	path, err := FilterRoutes(context.Background(), osmium, pbfPath, cacheDir)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, "cached", readFile(t, path))
}

func TestFilterRoutes_osmiumFails(t *testing.T) {
	// Arrange
	osmium := writeScript(t, failingOsmium)
	cacheDir := t.TempDir()
	pbfPath := writePbf(t, cacheDir)

	// Act
	_, err := FilterRoutes(context.Background(), osmium, pbfPath, cacheDir)

	// Assert
	util.AssertNotNil(t, err)
	util.AssertTrue(t, strings.Contains(err.Error(), "with osmium: Unknown option"))
}

func TestFilterRoutes_withoutOsmium(t *testing.T) {
	// Arrange
	cacheDir := t.TempDir()
	pbfPath := writePbf(t, cacheDir)

	// Act
	path, err := FilterRoutes(context.Background(), "routrace-osmium-does-not-exist", pbfPath, cacheDir)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, pbfPath, path)
}

func TestIsNewerThan(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	older := writePbf(t, dir)
	newer := filepath.Join(dir, "newer")
	err := os.WriteFile(newer, []byte{}, 0644)
	util.AssertNil(t, err)

	// Act & Assert
	isNewer, err := isNewerThan(newer, older)
	util.AssertNil(t, err)
	util.AssertTrue(t, isNewer)

	isNewer, err = isNewerThan(older, newer)
	util.AssertNil(t, err)
	util.AssertFalse(t, isNewer)

	isNewer, err = isNewerThan(filepath.Join(dir, "missing"), older)
	util.AssertNil(t, err)
	util.AssertFalse(t, isNewer)
}
