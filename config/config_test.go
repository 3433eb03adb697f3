package config

import (
	"os"
	"path/filepath"
	"routrace/util"
	"testing"
)

func writeTestFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	util.AssertNil(t, err)
	return path
}

func TestLoad(t *testing.T) {
	// Arrange
	path := writeTestFile(t, "routrace.yml", `
output_dir: /srv/routrace
cache_dir: /var/cache/routrace
pbf_url: http://localhost/japan.osm.pbf
simplify_tolerance: 0.0005
osmium: /usr/local/bin/osmium
procs: 4
highway_names:
  - 東名
  - 首都高速
`)

	// Act
	conf, err := Load(path)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, &Config{
		OutputDir:         "/srv/routrace",
		CacheDir:          "/var/cache/routrace",
		PbfUrl:            "http://localhost/japan.osm.pbf",
		SimplifyTolerance: 0.0005,
		Osmium:            "/usr/local/bin/osmium",
		Procs:             4,
		HighwayNames:      []string{"東名", "首都高速"},
	}, conf)
}

func TestLoad_unknownKey(t *testing.T) {
	path := writeTestFile(t, "routrace.yml", "output_dri: foo\n")

	conf, err := Load(path)

	util.AssertNotNil(t, err)
	util.AssertNil(t, conf)
}

func TestLoad_missingFile(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

	util.AssertNotNil(t, err)
	util.AssertNil(t, conf)
}

func TestLoadEnv(t *testing.T) {
	// Arrange
	path := writeTestFile(t, ".env", "ROUTRACE_TEST_ENV_VALUE=foo\n")
	t.Cleanup(func() {
		os.Unsetenv("ROUTRACE_TEST_ENV_VALUE")
	})

	// Act
	err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, "foo", os.Getenv("ROUTRACE_TEST_ENV_VALUE"))
}

func TestLoadEnv_doesNotOverwrite(t *testing.T) {
	// Arrange
	path := writeTestFile(t, ".env", "ROUTRACE_TEST_ENV_SET=foo\n")
	t.Setenv("ROUTRACE_TEST_ENV_SET", "bar")

	// Act
	err := LoadEnv(path)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, "bar", os.Getenv("ROUTRACE_TEST_ENV_SET"))
}

func TestOptions_UpdateFromConfig(t *testing.T) {
	// Arrange
	options := DefaultOptions()
	options.CacheDir = "/tmp/explicit"
	options.HighwayNames = []string{"中央"}
	conf := &Config{
		OutputDir:         "/srv/routrace",
		CacheDir:          "/var/cache/routrace",
		CoastlineUrl:      "http://localhost/japan.geojson",
		SimplifyTolerance: 0.0005,
		HighwayNames:      []string{"東名"},
	}

	// Act
	options.UpdateFromConfig(conf)

	// Assert
	util.AssertEqual(t, "/srv/routrace", options.OutputDir)
	util.AssertEqual(t, "/tmp/explicit", options.CacheDir)
	util.AssertEqual(t, DefaultOptions().PbfUrl, options.PbfUrl)
	util.AssertEqual(t, "http://localhost/japan.geojson", options.CoastlineUrl)
	util.AssertEqual(t, 0.0005, options.SimplifyTolerance)
	util.AssertEqual(t, "osmium", options.Osmium)
	util.AssertEqual(t, 1, options.Procs)
	util.AssertEqual(t, []string{"中央"}, options.HighwayNames)
}

func TestOptions_UpdateFromConfig_nilConfig(t *testing.T) {
	options := DefaultOptions()

	options.UpdateFromConfig(nil)

	util.AssertEqual(t, DefaultOptions(), options)
}

func TestOptions_Check(t *testing.T) {
	options := DefaultOptions()
	util.AssertNil(t, options.Check())

	options.SimplifyTolerance = 0
	util.AssertError(t, "Simplify tolerance must be positive but was 0.000000", options.Check())

	options = DefaultOptions()
	options.Procs = 0
	util.AssertError(t, "Number of processes must be at least 1 but was 0", options.Check())

	options = DefaultOptions()
	options.CacheDir = ""
	util.AssertError(t, "Cache folder must not be empty", options.Check())
}
