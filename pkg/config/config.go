// Package config holds the settings of the espenv build hook itself.
//
// The hook is started by the host build orchestrator, not by a person, so it
// takes no command-line flags. Everything is read from environment variables:
//
//	ESPENV_PROJECT_DIR  project directory (falls back to PROJECT_DIR, then ".")
//	ESPENV_DOTENV       dotenv file path (default: <parent of project dir>/.env)
//	ESPENV_SINK         flags | header | yaml | none (default: flags)
//	ESPENV_HEADER       header path for the header sink, relative to the project dir
//	ESPENV_DEBUG        enable debug logging
package config

import (
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Sink kinds accepted in ESPENV_SINK.
const (
	SinkFlags  = "flags"
	SinkHeader = "header"
	SinkYAML   = "yaml"
	SinkNone   = "none"
)

// DotenvFileName is the file looked up in the anchor directory.
const DotenvFileName = ".env"

// ErrUnknownSink is returned by Validate for an unsupported ESPENV_SINK.
var ErrUnknownSink = errors.New("unknown sink")

// Validatable is implemented by configuration that can check itself.
type Validatable interface {
	Validate() error
}

// Config holds the hook configuration.
type Config struct {
	ProjectDir           string `env:"ESPENV_PROJECT_DIR"`
	PlatformIOProjectDir string `env:"PROJECT_DIR"`
	DotenvFile           string `env:"ESPENV_DOTENV"`
	Sink                 string `env:"ESPENV_SINK" envDefault:"flags"`
	HeaderFile           string `env:"ESPENV_HEADER" envDefault:"include/espenv_defines.h"`
	Debug                bool   `env:"ESPENV_DEBUG"`
}

var _ Validatable = Config{}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Wrap(err, "error reading espenv configuration from environment")
	}
	cfg.Sink = strings.ToLower(strings.TrimSpace(cfg.Sink))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "espenv configuration is invalid")
	}
	return cfg, nil
}

// Validate checks the sink kind and its required settings.
func (c Config) Validate() error {
	switch c.Sink {
	case SinkFlags, SinkYAML, SinkNone:
	case SinkHeader:
		if strings.TrimSpace(c.HeaderFile) == "" {
			return errors.New("ESPENV_HEADER must be set for the header sink")
		}
	default:
		return errors.Wrapf(ErrUnknownSink, "%q", c.Sink)
	}
	return nil
}

// Dir returns the absolute project directory.
func (c Config) Dir() (string, error) {
	dir := c.ProjectDir
	if dir == "" {
		dir = c.PlatformIOProjectDir
	}
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve project directory %q", dir)
	}
	return abs, nil
}

// DotenvPath returns the dotenv file to read. Unless overridden, it lives in
// the parent of the project directory (the repository root).
func (c Config) DotenvPath() (string, error) {
	if c.DotenvFile != "" {
		return c.DotenvFile, nil
	}

	dir, err := c.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dir), DotenvFileName), nil
}

// HeaderPath returns the header file written by the header sink.
func (c Config) HeaderPath() (string, error) {
	if filepath.IsAbs(c.HeaderFile) {
		return c.HeaderFile, nil
	}

	dir, err := c.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.HeaderFile), nil
}
