package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/codec"
	"github.com/pelletier/go-toml/v2"
)

// defaultConfigFile is read from the working directory when -config is not
// given. A missing default file is not an error.
const defaultConfigFile = "gpures.toml"

// config holds the settings shared by every subcommand.
type config struct {
	LogLevel  string `toml:"log_level"`
	AssetsDir string `toml:"assets_dir"`
	Workers   int    `toml:"workers"`
	Format    string `toml:"format"`
	Backend   string `toml:"backend"`

	// DecodeCache bounds the descriptors kept by watch to skip re-decoding
	// unchanged files. Zero disables it.
	DecodeCache int `toml:"decode_cache"`
}

func defaultConfig() config {
	return config{
		LogLevel:    "info",
		AssetsDir:   "assets",
		Format:      codec.FormatYAML.String(),
		DecodeCache: 64,
	}
}

// loadConfig reads path over the defaults. Unknown keys are rejected so
// typos do not go unnoticed.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.DecodeCache < 0 {
		return fmt.Errorf("config: decode_cache must not be negative, got %d", c.DecodeCache)
	}
	if _, err := codec.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: format: %w", err)
	}
	return nil
}

// newLogger builds the terminal logger and installs it as the library
// logger.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "gpures",
		Level:           lvl,
	})
	gpures.SetLogger(slog.New(l))
	return l, nil
}
