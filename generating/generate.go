package generating

import (
	"context"
	"routrace/config"
	"routrace/fetch"
	"routrace/highway"
	ownIo "routrace/io"
	ownOsm "routrace/osm"
	"strings"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
)

// Generator creates the files of the dataset below the output folder.
type Generator struct {
	options config.Options
	now     func() time.Time
}

func NewGenerator(options config.Options) *Generator {
	return &Generator{
		options: options,
		now:     time.Now,
	}
}

// GenerateAll creates the metadata, the coastline and all highway files.
func (g *Generator) GenerateAll(ctx context.Context) error {
	err := g.GenerateMetadata()
	if err != nil {
		return err
	}

	err = g.GenerateCoastline(ctx)
	if err != nil {
		return err
	}

	return g.GenerateHighways(ctx)
}

func (g *Generator) GenerateMetadata() error {
	_, err := ownIo.WriteMetadata(ownIo.DataDir(g.options.OutputDir), ownIo.NewMetadata(g.now()))
	if err != nil {
		return errors.Wrap(err, "Unable to write metadata")
	}
	return nil
}

func (g *Generator) GenerateCoastline(ctx context.Context) error {
	featureCollection, err := fetch.FetchCoastline(ctx, g.options.CoastlineUrl, g.options.SimplifyTolerance)
	if err != nil {
		return err
	}

	_, err = ownIo.WriteCoastline(ownIo.DataDir(g.options.OutputDir), featureCollection)
	if err != nil {
		return errors.Wrap(err, "Unable to write coastline")
	}
	return nil
}

// GenerateHighways downloads the OSM data, if not cached yet, and writes one file per highway as well as the index.
func (g *Generator) GenerateHighways(ctx context.Context) error {
	pbfPath, err := fetch.DownloadPbf(ctx, g.options.PbfUrl, g.options.CacheDir, g.options.ForceDownload)
	if err != nil {
		return err
	}

	filteredPbfPath, err := fetch.FilterRoutes(ctx, g.options.Osmium, pbfPath, g.options.CacheDir)
	if err != nil {
		return err
	}

	return g.GenerateHighwaysFromFiles(ctx, filteredPbfPath, pbfPath)
}

// GenerateHighwaysFromFiles discovers the highways in the relations of the first file and takes the ways and nodes
// from the second one. Both files may be the same.
func (g *Generator) GenerateHighwaysFromFiles(ctx context.Context, relationFile string, dataFile string) error {
	startTime := time.Now()

	collector := highway.NewRelationCollector()
	relationReader := ownOsm.NewOsmReader(
		ownOsm.WithSkipNodes(),
		ownOsm.WithSkipWays(),
		ownOsm.WithProcs(g.options.Procs),
		ownOsm.WithProgress("Relations"),
	)
	err := relationReader.Read(ctx, relationFile, collector)
	if err != nil {
		return errors.Wrap(err, "Unable to discover highways")
	}

	discovered := FilterByName(collector.Highways(), g.options.HighwayNames)
	if len(discovered) == 0 {
		if len(g.options.HighwayNames) > 0 {
			sigolo.Warnf("No highway found matching the names %v", g.options.HighwayNames)
		} else {
			sigolo.Warnf("No highway found in %s", relationFile)
		}
		return nil
	}
	sigolo.Infof("Generate data for %d highways", len(discovered))

	waysByID, err := ownOsm.ExtractWays(ctx, dataFile, collector.AllWayIDs(discovered), ownOsm.WithProcs(g.options.Procs), ownOsm.WithProgress("Ways"))
	if err != nil {
		return errors.Wrap(err, "Unable to extract highway ways")
	}

	highways := highway.Build(discovered, collector, waysByID)

	highwaysDir := ownIo.HighwaysDir(g.options.OutputDir)
	var entries []ownIo.IndexEntry
	for _, h := range highways {
		fileSize, err := ownIo.WriteHighway(highwaysDir, h, g.options.SimplifyTolerance)
		if err != nil {
			sigolo.Errorf("Unable to write highway %s: %+v", h.ID, err)
			continue
		}
		entries = append(entries, ownIo.NewIndexEntry(h, fileSize, g.now()))
	}

	_, err = ownIo.WriteIndex(highwaysDir, ownIo.NewIndex(entries))
	if err != nil {
		return errors.Wrap(err, "Unable to write highway index")
	}

	sigolo.Infof("Generated %d highway files in %s", len(entries), time.Since(startTime))

	return nil
}

// FilterByName keeps the highways whose name contains one of the given names. Without names all highways are kept.
func FilterByName(highways []highway.Discovered, names []string) []highway.Discovered {
	if len(names) == 0 {
		return highways
	}

	var result []highway.Discovered
	for _, h := range highways {
		for _, name := range names {
			if strings.Contains(h.Name, name) {
				result = append(result, h)
				break
			}
		}
	}
	return result
}
