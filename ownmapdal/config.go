package ownmapdal

import (
	"io"
	"os"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/styling"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr                     = ":9000"
	DefaultMaxConcurrentEvaluations = 4
	DefaultGeometryColumn           = "geom"
	DefaultIDColumn                 = "id"
)

type SourceConfig struct {
	Name string     `yaml:"name"`
	Type SourceType `yaml:"type"`
	// Connection is a connection string for postgresql, or a database file path for duckdb (empty for in-memory).
	// With no type set it is read as a "type://path" URL.
	Connection     string `yaml:"connection"`
	Table          string `yaml:"table"`
	GeometryColumn string `yaml:"geometryColumn"`
	IDColumn       string `yaml:"idColumn"`
}

type Config struct {
	Addr                     string          `yaml:"addr"`
	DefaultStyleID           string          `yaml:"defaultStyleId"`
	StylesDir                string          `yaml:"stylesDir"`
	TraceDir                 string          `yaml:"traceDir"`
	MaxConcurrentEvaluations uint            `yaml:"maxConcurrentEvaluations"`
	Sources                  []*SourceConfig `yaml:"sources"`
}

// DefaultConfig is the config used when no config file is given
func DefaultConfig() *Config {
	config := new(Config)
	config.applyDefaults()
	return config
}

func LoadConfigFromFile(filePath string) (*Config, errorsx.Error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer file.Close()

	config, err := LoadConfig(file)
	if err != nil {
		return nil, errorsx.Wrap(err, "filePath", filePath)
	}

	return config, nil
}

// LoadConfig decodes, defaults and validates a YAML config
func LoadConfig(reader io.Reader) (*Config, errorsx.Error) {
	config := new(Config)
	err := yaml.NewDecoder(reader).Decode(config)
	if err != nil && err != io.EOF {
		return nil, errorsx.Wrap(err)
	}

	err = config.applyDefaults()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	err = config.Validate()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return config, nil
}

func (c *Config) applyDefaults() errorsx.Error {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.DefaultStyleID == "" {
		c.DefaultStyleID = styling.BUILTIN_STYLEID
	}
	if c.MaxConcurrentEvaluations == 0 {
		c.MaxConcurrentEvaluations = DefaultMaxConcurrentEvaluations
	}

	for _, source := range c.Sources {
		if source == nil {
			continue
		}

		if source.Type == "" && source.Connection != "" {
			connURL, err := ParseSourceConnectionURL(source.Connection)
			if err != nil {
				return errorsx.Wrap(err, "source", source.Name)
			}
			source.Type = connURL.Type
			source.Connection = connURL.ConnectionPath
		}
		if source.GeometryColumn == "" {
			source.GeometryColumn = DefaultGeometryColumn
		}
		if source.IDColumn == "" {
			source.IDColumn = DefaultIDColumn
		}
	}

	return nil
}

func (c *Config) Validate() errorsx.Error {
	names := make(map[string]bool)
	for idx, source := range c.Sources {
		if source == nil {
			return errorsx.Errorf("empty source definition at index %d", idx)
		}
		if source.Name == "" {
			return errorsx.Errorf("source at index %d has no name", idx)
		}
		if names[source.Name] {
			return errorsx.Errorf("duplicate source name: %q", source.Name)
		}
		names[source.Name] = true

		if !source.Type.IsValid() {
			return errorsx.Errorf("unknown source type %q for source %q", source.Type, source.Name)
		}
		if source.Table == "" {
			return errorsx.Errorf("source %q has no table", source.Name)
		}
	}

	return nil
}

// PathsConfig takes the directories from the config, falling back to the default paths
func (c *Config) PathsConfig() (*PathsConfig, errorsx.Error) {
	pathsConfig, err := DefaultPathsConfig()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	if c.StylesDir != "" {
		pathsConfig.StylesDir = c.StylesDir
	}
	if c.TraceDir != "" {
		pathsConfig.TraceDir = c.TraceDir
	}

	return pathsConfig, nil
}
