package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration for the CLI. Every field has a
// usable zero value; a missing config file means pure defaults.
type Config struct {
	// Format is the default output format ("text" or "json").
	Format string `yaml:"format,omitempty"`

	// Verbose enables debug logging by default.
	Verbose bool `yaml:"verbose,omitempty"`

	// BusyTimeoutMS is applied to every database the CLI opens. Zero keeps
	// the engine default (fail immediately on lock contention).
	BusyTimeoutMS int `yaml:"busy_timeout_ms,omitempty"`
}

// LoadConfig reads a YAML config from path. An empty path returns defaults;
// a named path must exist and parse.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot read config", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid config %s", path), err)
	}
	if cfg.Format != "" && !isValidFormat(cfg.Format) {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q in config %s", cfg.Format, path), nil)
	}
	if cfg.BusyTimeoutMS < 0 {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("negative busy_timeout_ms in config %s", path), nil)
	}
	return cfg, nil
}
