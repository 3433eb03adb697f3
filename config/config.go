package config

import (
	"os"
	"routrace/fetch"
	"routrace/geometry"

	"github.com/hauke96/sigolo/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DefaultOutputDir = "."
	DefaultCacheDir  = "cache"
	DefaultProcs     = 1
	DefaultEnvFile   = ".env"
)

// Config is the content of the optional YAML config file. Empty values are ignored.
type Config struct {
	OutputDir         string   `yaml:"output_dir"`
	CacheDir          string   `yaml:"cache_dir"`
	PbfUrl            string   `yaml:"pbf_url"`
	CoastlineUrl      string   `yaml:"coastline_url"`
	SimplifyTolerance float64  `yaml:"simplify_tolerance"`
	Osmium            string   `yaml:"osmium"`
	Procs             int      `yaml:"procs"`
	HighwayNames      []string `yaml:"highway_names"`
}

// Options are the settings of one run.
type Options struct {
	OutputDir         string
	CacheDir          string
	PbfUrl            string
	CoastlineUrl      string
	SimplifyTolerance float64
	Osmium            string
	Procs             int
	HighwayNames      []string
	ForceDownload     bool
}

func DefaultOptions() Options {
	return Options{
		OutputDir:         DefaultOutputDir,
		CacheDir:          DefaultCacheDir,
		PbfUrl:            fetch.DefaultPbfUrl,
		CoastlineUrl:      fetch.DefaultCoastlineUrl,
		SimplifyTolerance: geometry.DefaultSimplifyTolerance,
		Osmium:            fetch.DefaultOsmium,
		Procs:             DefaultProcs,
	}
}

// Load reads the YAML config file. Unknown keys are treated as error to reveal typos.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read config file %s", filename)
	}

	conf := &Config{}
	err = yaml.UnmarshalStrict(data, conf)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse config file %s", filename)
	}

	sigolo.Debugf("Loaded config file %s", filename)
	return conf, nil
}

// LoadEnv adds the variables of the given .env files to the environment. Already set variables are not overwritten
// and missing files are ignored.
func LoadEnv(filenames ...string) error {
	for _, filename := range filenames {
		err := godotenv.Load(filename)
		if os.IsNotExist(err) {
			sigolo.Tracef("No env file %s found", filename)
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "Unable to load env file %s", filename)
		}
		sigolo.Debugf("Loaded env file %s", filename)
	}
	return nil
}

// UpdateFromConfig takes the values of the config file for all options that are still set to their default value.
// Options set explicitly, e.g. via CLI flags, take precedence.
func (o *Options) UpdateFromConfig(conf *Config) {
	if conf == nil {
		return
	}

	defaults := DefaultOptions()

	if conf.OutputDir != "" && o.OutputDir == defaults.OutputDir {
		o.OutputDir = conf.OutputDir
	}
	if conf.CacheDir != "" && o.CacheDir == defaults.CacheDir {
		o.CacheDir = conf.CacheDir
	}
	if conf.PbfUrl != "" && o.PbfUrl == defaults.PbfUrl {
		o.PbfUrl = conf.PbfUrl
	}
	if conf.CoastlineUrl != "" && o.CoastlineUrl == defaults.CoastlineUrl {
		o.CoastlineUrl = conf.CoastlineUrl
	}
	if conf.SimplifyTolerance != 0 && o.SimplifyTolerance == defaults.SimplifyTolerance {
		o.SimplifyTolerance = conf.SimplifyTolerance
	}
	if conf.Osmium != "" && o.Osmium == defaults.Osmium {
		o.Osmium = conf.Osmium
	}
	if conf.Procs != 0 && o.Procs == defaults.Procs {
		o.Procs = conf.Procs
	}
	if len(conf.HighwayNames) > 0 && len(o.HighwayNames) == 0 {
		o.HighwayNames = conf.HighwayNames
	}
}

func (o *Options) Check() error {
	if o.SimplifyTolerance <= 0 {
		return errors.Errorf("Simplify tolerance must be positive but was %f", o.SimplifyTolerance)
	}
	if o.Procs < 1 {
		return errors.Errorf("Number of processes must be at least 1 but was %d", o.Procs)
	}
	if o.OutputDir == "" {
		return errors.New("Output folder must not be empty")
	}
	if o.CacheDir == "" {
		return errors.New("Cache folder must not be empty")
	}
	return nil
}
