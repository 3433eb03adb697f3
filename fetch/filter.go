package fetch

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
)

const (
	DefaultOsmium         = "osmium"
	FilteredCacheFileName = "japan-routes.osm.pbf"
	routeFilterExpression = "r/route=road"
)

// FilterRoutes reduces the PBF file to road route relations using osmium, which makes the relation pass much faster.
// An existing filtered file newer than the input is reused. Without osmium on the PATH, the unfiltered file is
// returned.
func FilterRoutes(ctx context.Context, osmium string, pbfPath string, cacheDir string) (string, error) {
	osmiumPath, err := exec.LookPath(osmium)
	if err != nil {
		sigolo.Warnf("Command '%s' not found, the unfiltered file %s is used. This makes the relation pass slower.", osmium, pbfPath)
		return pbfPath, nil
	}

	outputPath := filepath.Join(cacheDir, FilteredCacheFileName)

	upToDate, err := isNewerThan(outputPath, pbfPath)
	if err != nil {
		return "", err
	}
	if upToDate {
		sigolo.Infof("Use cached filtered OSM data %s", outputPath)
		return outputPath, nil
	}

	sigolo.Infof("Filter %s for '%s' using %s", pbfPath, routeFilterExpression, osmiumPath)
	startTime := time.Now()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, osmiumPath, "tags-filter", pbfPath, routeFilterExpression, "-o", outputPath, "--overwrite")
	cmd.Stderr = &stderr
	err = cmd.Run()
	if err != nil {
		return "", errors.Wrapf(err, "Unable to filter %s with osmium: %s", pbfPath, strings.TrimSpace(stderr.String()))
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to find filtered file %s", outputPath)
	}
	sigolo.Infof("Filtered OSM data to %s (%s) in %s", outputPath, humanize.Bytes(uint64(stat.Size())), time.Since(startTime))

	return outputPath, nil
}

func isNewerThan(filename string, reference string) (bool, error) {
	stat, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "Unable to check file %s", filename)
	}

	referenceStat, err := os.Stat(reference)
	if err != nil {
		return false, errors.Wrapf(err, "Unable to check file %s", reference)
	}

	return stat.ModTime().After(referenceStat.ModTime()), nil
}
