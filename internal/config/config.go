// Package config loads the optional tyir.yaml configuration of the CLI
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no path is given
const FileName = "tyir.yaml"

type Config struct {
	Log   Log   `yaml:"log"`
	Unify Unify `yaml:"unify"`
}

type Log struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level"`
	// Sections enabled below WARN, like "unify" or "ir"
	Sections []string `yaml:"sections"`
}

type Unify struct {
	IgnoreRegions bool `yaml:"ignore_regions"`
}

func Default() Config {
	return Config{
		Log: Log{
			Level:    "error",
			Sections: []string{"cmd"},
		},
	}
}

// Load reads the configuration at path. If path is empty, FileName is read
// from the working directory if it exists, and Default is returned
// otherwise.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "could not read config %s", path)
	}
	conf, err := Parse(data)
	return conf, errors.Wrapf(err, "invalid config %s", path)
}

// Parse decodes a YAML configuration. Missing keys keep their Default value.
func Parse(data []byte) (Config, error) {
	conf := Default()
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, err
	}
	if _, err := conf.Log.SlogLevel(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, errors.Wrapf(err, "log level %q", l.Level)
	}
	return level, nil
}
