// Package config loads the options of the kinded command. Options are layered:
// defaults, then a YAML file, then KINDED_* environment variables, then command
// line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/sublee/kinded/internal/logger"
)

// FileName is the config file looked up in the working directory.
const FileName = ".kinded.yaml"

// EnvPrefix prefixes the environment variables overriding options.
const EnvPrefix = "KINDED_"

type Config struct {
	Output      string   `koanf:"output" yaml:"output"`
	Tags        string   `koanf:"tags" yaml:"tags"`
	Tests       bool     `koanf:"tests" yaml:"tests"`
	Exclude     []string `koanf:"exclude" yaml:"exclude"`
	Concurrency int      `koanf:"concurrency" yaml:"concurrency"`
	Color       string   `koanf:"color" yaml:"color"`
	Format      string   `koanf:"format" yaml:"format"`
	Log         Log      `koanf:"log" yaml:"log"`
}

type Log struct {
	Level string `koanf:"level" yaml:"level"`
	JSON  bool   `koanf:"json" yaml:"json"`
}

func Default() *Config {
	return &Config{
		Output:      "kinded_gen.go",
		Concurrency: 4,
		Color:       "auto",
		Format:      "json",
		Log: Log{
			Level: string(logger.InfoLevel),
		},
	}
}

// Options locates the sources of a [Load].
type Options struct {
	// Fs is where the config file is read. Nil is the OS file system.
	Fs afero.Fs

	// Dir is the working directory relative file paths are resolved against.
	// Empty is the working directory of the process.
	Dir string

	// File is the YAML file to read. An empty File reads [FileName] in Dir if
	// it exists.
	File string

	// Environ lists environment variables as "KEY=value". Nil reads the process
	// environment.
	Environ []string

	// Flags overrides options by their koanf keys, e.g. "log.level".
	Flags map[string]any
}

// Load layers the sources of opts over the defaults and validates the result.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := readFile(fs, opts.Dir, opts.File)
	if err != nil {
		return nil, err
	}
	if len(data) != 0 {
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("failed to apply config file: %w", err)
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   func() []string { return environ },
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range opts.Flags {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set flag %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// transformEnv maps KINDED_LOG_LEVEL to log.level and KINDED_OUTPUT to
// output.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		key = "log." + rest
	}
	return key, value
}

// readFile reads a YAML config file. A relative path is resolved against dir.
// A missing default file is not an error.
func readFile(fs afero.Fs, dir, path string) (map[string]any, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return filterNilValues(m), nil
}

// filterNilValues drops null YAML values so that they do not override lower
// layers.
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			if filtered := filterNilValues(nested); len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}

// Validate reports invalid option values.
func (c *Config) Validate() error {
	var errs error
	if !strings.HasSuffix(c.Output, ".go") {
		errs = errors.Join(errs, fmt.Errorf("output must be a .go file: %q", c.Output))
	}
	if strings.ContainsAny(c.Output, `/\`) {
		errs = errors.Join(errs, fmt.Errorf("output must be a file name, not a path: %q", c.Output))
	}
	if c.Concurrency < 1 {
		errs = errors.Join(errs, fmt.Errorf("concurrency must be positive: %d", c.Concurrency))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = errors.Join(errs, fmt.Errorf("color must be one of auto, always, never: %q", c.Color))
	}
	switch c.Format {
	case "json", "yaml":
	default:
		errs = errors.Join(errs, fmt.Errorf("format must be one of json, yaml: %q", c.Format))
	}
	if !logger.LogLevel(c.Log.Level).IsValid() {
		errs = errors.Join(errs, fmt.Errorf("unknown log level: %q", c.Log.Level))
	}
	return errs
}

// rawMap is a koanf.Provider for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
