// Package config holds generator settings: defaults, an optional YAML file
// and OPTICGEN_* environment overrides (a .env file is read first).
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no config path is
// given.
const DefaultFile = "opticgen.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OPTICGEN_"

// Config is the generator configuration.
type Config struct {
	// Prefix is prepended to member names to form accessor names.
	Prefix string `yaml:"prefix"`
	// RuntimeImport is the import path of the optics runtime package.
	RuntimeImport string `yaml:"runtime_import"`
	// RuntimeAlias is the name generated code uses for the runtime package.
	RuntimeAlias string `yaml:"runtime_alias"`
	// OutputSuffix names generated files: <package><suffix>.
	OutputSuffix string `yaml:"output_suffix"`
	// Parallelism bounds the concurrent implementation passes.
	Parallelism int `yaml:"parallelism"`
	// BuildTags are passed to the package loader.
	BuildTags []string `yaml:"build_tags"`
	// DebugDir receives unformatted output when formatting fails.
	DebugDir string `yaml:"debug_dir"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Prefix:        "_",
		RuntimeImport: "optic-generator/optics",
		RuntimeAlias:  "optics",
		OutputSuffix:  "_optics.go",
		Parallelism:   runtime.GOMAXPROCS(0),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// DefaultFile if it exists and path is empty), then the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from OPTICGEN_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("PREFIX"); ok {
		c.Prefix = v
	}

	if v, ok := lookup("RUNTIME_IMPORT"); ok {
		c.RuntimeImport = v
	}

	if v, ok := lookup("RUNTIME_ALIAS"); ok {
		c.RuntimeAlias = v
	}

	if v, ok := lookup("OUTPUT_SUFFIX"); ok {
		c.OutputSuffix = v
	}

	if v, ok := lookup("DEBUG_DIR"); ok {
		c.DebugDir = v
	}

	if v, ok := lookup("BUILD_TAGS"); ok {
		c.BuildTags = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	}

	if v, ok := lookup("PARALLELISM"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPARALLELISM: %w", EnvPrefix, err)
		}

		c.Parallelism = n
	}

	if v, ok := lookup("VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sVERBOSE: %w", EnvPrefix, err)
		}

		c.Verbose = b
	}

	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}

// Validate rejects settings the generator cannot work with.
func (c Config) Validate() error {
	var errs []error

	if c.Prefix == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}

	if c.RuntimeImport == "" {
		errs = append(errs, errors.New("runtime_import must not be empty"))
	}

	if c.RuntimeAlias == "" {
		errs = append(errs, errors.New("runtime_alias must not be empty"))
	}

	if !strings.HasSuffix(c.OutputSuffix, ".go") || strings.HasSuffix(c.OutputSuffix, "_test.go") {
		errs = append(errs, fmt.Errorf("output_suffix %q must end in .go and not _test.go", c.OutputSuffix))
	}

	if c.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
