// Package config loads engine configuration from YAML or JSON files with
// defaults applied before validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nmachari/weaver/pkg/intelligence/engine"
	"github.com/nmachari/weaver/pkg/intelligence/graph"
)

// Config is the full file-loadable configuration: the engine parameters
// plus the graph store's aging policy and an optional gazetteer override.
type Config struct {
	Engine    engine.Config `yaml:"engine" json:"engine"`
	Graph     graph.Config  `yaml:"graph" json:"graph"`
	Gazetteer string        `yaml:"gazetteer" json:"gazetteer"` // optional path to a lexicon file
}

// Default returns the canonical configuration.
func Default() Config {
	return Config{
		Engine: engine.DefaultConfig(),
		Graph:  graph.DefaultConfig(),
	}
}

// Load reads a configuration file, layering it over the defaults. Format
// is chosen by extension; unknown extensions try YAML then JSON.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	case ".json":
		err = json.Unmarshal(data, &config)
	default:
		if err = yaml.Unmarshal(data, &config); err != nil {
			err = json.Unmarshal(data, &config)
		}
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return c.Graph.Validate()
}
