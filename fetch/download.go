package fetch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"routrace/util"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
)

const (
	DefaultPbfUrl    = "https://download.geofabrik.de/asia/japan-latest.osm.pbf"
	PbfCacheFileName = "japan-latest.osm.pbf"
)

// DownloadPbf stores the PBF file from the given URL in the cache folder and returns its path. An already cached file
// is reused unless force is set. The data is written to a temporary file first, so that an interrupted download never
// ends up as cached file.
func DownloadPbf(ctx context.Context, url string, cacheDir string, force bool) (string, error) {
	err := os.MkdirAll(cacheDir, os.ModePerm)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to create cache folder %s", cacheDir)
	}

	outputPath := filepath.Join(cacheDir, PbfCacheFileName)

	if !force {
		stat, err := os.Stat(outputPath)
		if err == nil {
			sigolo.Infof("Use cached OSM data %s (%s)", outputPath, humanize.Bytes(uint64(stat.Size())))
			return outputPath, nil
		}
		if !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "Unable to check cached file %s", outputPath)
		}
	}

	sigolo.Infof("Download OSM data from %s", url)
	startTime := time.Now()

	response, err := get(ctx, url)
	if err != nil {
		return "", errors.Wrap(err, "Unable to download OSM data")
	}
	defer response.Body.Close()

	partPath := outputPath + ".part"
	written, err := writeWithProgress(partPath, response.Body, response.ContentLength)
	if err != nil {
		os.Remove(partPath)
		return "", err
	}

	err = os.Rename(partPath, outputPath)
	if err != nil {
		return "", errors.Wrapf(err, "Unable to move downloaded file %s to %s", partPath, outputPath)
	}

	sigolo.Infof("Downloaded %s to %s in %s", humanize.Bytes(uint64(written)), outputPath, time.Since(startTime))

	return outputPath, nil
}

func writeWithProgress(filename string, reader io.Reader, total int64) (int64, error) {
	file, err := os.Create(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "Unable to create file %s", filename)
	}

	return copyWithProgress(file, filename, reader, total)
}

// copyWithProgress copies the reader into the writer and closes it. A failed close is reported, since the data might
// not be completely written.
func copyWithProgress(writer io.WriteCloser, filename string, reader io.Reader, total int64) (int64, error) {
	if total < 0 {
		total = 0
	}
	bar := util.NewProgressBar("Downloading", total).Start()
	written, err := io.Copy(writer, bar.NewProxyReader(reader))
	bar.Finish()
	if err != nil {
		writer.Close()
		return written, errors.Wrapf(err, "Unable to write file %s", filename)
	}

	err = writer.Close()
	if err != nil {
		return written, errors.Wrapf(err, "Unable to close file handle for file %s", filename)
	}

	return written, nil
}
