package osm

import (
	"context"
	"os"
	"path/filepath"
	"routrace/util"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// OsmDataHandler is called for every OSM object while reading a file. Init is called before the first object and Done
// after the last one.
type OsmDataHandler interface {
	Name() string
	Init() error
	HandleNode(node *osm.Node) error
	HandleWay(way *osm.Way) error
	HandleRelation(relation *osm.Relation) error
	Done() error
}

type scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// Implemented by the PBF scanner.
type scannedBytesCounter interface {
	FullyScannedBytes() int64
}

type OsmReader struct {
	procs         int
	skipNodes     bool
	skipWays      bool
	skipRelations bool
	progress      string
}

type Option func(*OsmReader)

// WithProcs sets the number of goroutines decoding PBF blocks.
func WithProcs(procs int) Option {
	return func(r *OsmReader) {
		if procs > 0 {
			r.procs = procs
		}
	}
}

func WithSkipNodes() Option {
	return func(r *OsmReader) {
		r.skipNodes = true
	}
}

func WithSkipWays() Option {
	return func(r *OsmReader) {
		r.skipWays = true
	}
}

func WithSkipRelations() Option {
	return func(r *OsmReader) {
		r.skipRelations = true
	}
}

// WithProgress shows a progress bar with the given prefix while reading PBF files.
func WithProgress(prefix string) Option {
	return func(r *OsmReader) {
		r.progress = prefix
	}
}

func NewOsmReader(options ...Option) *OsmReader {
	reader := &OsmReader{
		procs: 1,
	}
	for _, option := range options {
		option(reader)
	}
	return reader
}

// Read passes all objects of the given .osm.pbf or .osm file to the handlers. Skipped object types never reach any
// handler.
func (r *OsmReader) Read(ctx context.Context, filename string, handlers ...OsmDataHandler) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer file.Close()

	scanner, err := r.newScanner(ctx, file, filename)
	if err != nil {
		return err
	}
	defer scanner.Close()

	sigolo.Infof("Start processing OSM data file %s", filename)
	startTime := time.Now()

	for _, handler := range handlers {
		err = handler.Init()
		if err != nil {
			return errors.Wrapf(err, "Initializing OSM data handler '%s' failed", handler.Name())
		}
	}

	var progressBar *pb.ProgressBar
	counter, isCounting := scanner.(scannedBytesCounter)
	if r.progress != "" && isCounting {
		progressBar, err = startProgressBar(r.progress, file)
		if err != nil {
			return err
		}
		defer progressBar.Finish()
	}

	firstWayHasBeenProcessed := false
	firstRelationHasBeenProcessed := false
	objectCount := 0

	for scanner.Scan() {
		objectCount++
		if progressBar != nil && objectCount%10000 == 0 {
			progressBar.SetCurrent(counter.FullyScannedBytes())
		}

		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			if r.skipNodes {
				continue
			}
			for _, handler := range handlers {
				err = handler.HandleNode(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling node %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		case *osm.Way:
			if r.skipWays {
				continue
			}
			if !firstWayHasBeenProcessed {
				sigolo.Debug("Start processing ways")
				firstWayHasBeenProcessed = true
			}
			for _, handler := range handlers {
				err = handler.HandleWay(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling way %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		case *osm.Relation:
			if r.skipRelations {
				continue
			}
			if !firstRelationHasBeenProcessed {
				sigolo.Debug("Start processing relations")
				firstRelationHasBeenProcessed = true
			}
			for _, handler := range handlers {
				err = handler.HandleRelation(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling relation %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		}
	}

	err = scanner.Err()
	if err != nil {
		return errors.Wrapf(err, "Unable to read OSM data from %s", filename)
	}
	if progressBar != nil {
		progressBar.SetCurrent(counter.FullyScannedBytes())
	}

	for _, handler := range handlers {
		err = handler.Done()
		if err != nil {
			return errors.Wrapf(err, "Calling done function on handler '%s' failed", handler.Name())
		}
	}

	sigolo.Infof("Done processing %d OSM objects in %s", objectCount, time.Since(startTime))

	return nil
}

func startProgressBar(prefix string, file *os.File) (*pb.ProgressBar, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to get size of file %s", file.Name())
	}
	return util.NewProgressBar(prefix, stat.Size()).Start(), nil
}

func (r *OsmReader) newScanner(ctx context.Context, file *os.File, filename string) (scanner, error) {
	switch {
	case strings.HasSuffix(filename, ".pbf"):
		pbfScanner := osmpbf.New(ctx, file, r.procs)
		pbfScanner.SkipNodes = r.skipNodes
		pbfScanner.SkipWays = r.skipWays
		pbfScanner.SkipRelations = r.skipRelations
		return pbfScanner, nil
	case strings.HasSuffix(filename, ".osm"), strings.HasSuffix(filename, ".xml"):
		return osmxml.New(ctx, file), nil
	}
	return nil, errors.Errorf("File extension '%s' of file %s is not supported", filepath.Ext(filename), filename)
}
