package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"routrace/config"
	"routrace/generating"
	"routrace/geometry"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging       string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version       VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Config        string      `help:"Optional YAML config file. Its values are used for all options not given on the command line." placeholder:"<config-file>" type:"existingfile" env:"ROUTRACE_CONFIG"`
	OutputDir     string      `help:"Base folder, the data is written to its 'data' sub-folder." placeholder:"<output-dir>" default:"${default_output_dir}" env:"ROUTRACE_OUTPUT_DIR"`
	CacheDir      string      `help:"Folder for downloaded and filtered OSM data." placeholder:"<cache-dir>" default:"${default_cache_dir}" env:"ROUTRACE_CACHE_DIR"`
	Tolerance     float64     `help:"Simplification tolerance in degrees." default:"${default_tolerance}"`
	Procs         int         `help:"Number of goroutines decoding OSM PBF data." default:"${default_procs}"`
	ForceDownload bool        `help:"Download the OSM data even when a cached file exists."`

	Generate struct {
	} `cmd:"" default:"1" help:"Generates the metadata, the coastline and all highways."`
	Highways struct {
		HighwayName []string `help:"Only generate highways whose name contains this value. Can be given multiple times." name:"highway-name" short:"n" placeholder:"<name>"`
	} `cmd:"" help:"Generates the highways and their index only."`
	Coastline struct {
	} `cmd:"" help:"Generates the coastline only."`
	Metadata struct {
	} `cmd:"" help:"Generates the metadata file only."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	err := config.LoadEnv(config.DefaultEnvFile)
	if err != nil {
		sigolo.Errorf("%+v", err)
	}

	ctx := kong.Parse(
		&cli,
		kong.Name("routrace"),
		kong.Description("Generates the GeoJSON map data of the Japanese expressways."),
		kong.Vars{
			"version":            VERSION,
			"default_output_dir": config.DefaultOutputDir,
			"default_cache_dir":  config.DefaultCacheDir,
			"default_tolerance":  fmt.Sprint(geometry.DefaultSimplifyTolerance),
			"default_procs":      fmt.Sprint(config.DefaultProcs),
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	options, err := createOptions()
	sigolo.FatalCheck(err)

	sigolo.Infof("Write data to %s", options.OutputDir)

	runContext, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	generator := generating.NewGenerator(options)

	switch ctx.Command() {
	case "generate":
		err = generator.GenerateAll(runContext)
	case "highways":
		err = generator.GenerateHighways(runContext)
	case "coastline":
		err = generator.GenerateCoastline(runContext)
	case "metadata":
		err = generator.GenerateMetadata()
	default:
		sigolo.Fatalf("Unknown command '%s'", ctx.Command())
	}
	sigolo.FatalCheck(err)

	sigolo.Info("Done")
}

func createOptions() (config.Options, error) {
	options := config.DefaultOptions()
	options.OutputDir = cli.OutputDir
	options.CacheDir = cli.CacheDir
	options.SimplifyTolerance = cli.Tolerance
	options.Procs = cli.Procs
	options.ForceDownload = cli.ForceDownload
	options.HighwayNames = cli.Highways.HighwayName

	if cli.Config != "" {
		conf, err := config.Load(cli.Config)
		if err != nil {
			return options, err
		}
		options.UpdateFromConfig(conf)
	}

	return options, options.Check()
}
