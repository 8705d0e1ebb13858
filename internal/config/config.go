package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"binding-generator/internal/reduce"
	"binding-generator/internal/registry"
)

// Defaults applied to missing fields.
const (
	DefaultRegistry = "https://raw.githubusercontent.com/KhronosGroup/OpenGL-Registry/main/xml/gl.xml"
	DefaultOutput   = "./gl"
	DefaultPackage  = "gl"
	DefaultApi      = "gl"
	DefaultVersion  = "4.6"
	DefaultProfile  = "core"
	DefaultTimeout  = 30 * time.Second
)

// Config selects the registry, the target and the output location.
type Config struct {
	// Registry is a file path or http(s) URL.
	Registry   string        `yaml:"registry"`
	Output     string        `yaml:"output"`
	Package    string        `yaml:"package"`
	Api        string        `yaml:"api"`
	Version    string        `yaml:"version"`
	Profile    string        `yaml:"profile"`
	Extensions []string      `yaml:"extensions,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a configuration holding every default.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for empty fields.
func applyDefaults(cfg *Config) {
	if cfg.Registry == "" {
		cfg.Registry = DefaultRegistry
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	if cfg.Package == "" {
		cfg.Package = DefaultPackage
	}

	if cfg.Api == "" {
		cfg.Api = DefaultApi
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
}

// Target converts the api, version, profile and extensions into a
// reduction target.
func (c *Config) Target() (reduce.Target, error) {
	api, err := registry.ParseApi(c.Api)
	if err != nil {
		return reduce.Target{}, err
	}

	version, err := strconv.ParseFloat(c.Version, 64)
	if err != nil {
		return reduce.Target{}, fmt.Errorf("invalid version %q: %w", c.Version, err)
	}

	profile, err := registry.ParseProfile(c.Profile)
	if err != nil {
		return reduce.Target{}, err
	}

	return reduce.Target{
		Api:        api,
		Version:    version,
		Profile:    profile,
		Extensions: c.Extensions,
	}, nil
}

// Validate checks that the configuration can drive a generation run.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Target(); err != nil {
		errs = append(errs, err)
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	if !isIdentifier(c.Package) {
		errs = append(errs, fmt.Errorf("package %q is not a valid Go identifier", c.Package))
	}

	return errors.Join(errs...)
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func isIdentifier(s string) bool {
	if s == "" || registry.IsReserved(s) {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
