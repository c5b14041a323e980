package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmachari/weaver/pkg/domain"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())
	assert.Equal(t, 500, config.Engine.MaxBatchSize)
	assert.Equal(t, 0.9, config.Graph.DecayFactor)
	assert.Empty(t, config.Gazetteer)
}

func TestLoad(t *testing.T) {
	t.Run("yaml_overrides_layer_over_defaults", func(t *testing.T) {
		path := writeFile(t, "weaver.yaml", `
engine:
  max_batch_size: 100
  clustering:
    threshold: 0.7
    min_size: 3
graph:
  decay_factor: 0.8
`)
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 100, config.Engine.MaxBatchSize)
		assert.Equal(t, 0.7, config.Engine.Clustering.Threshold)
		assert.Equal(t, 3, config.Engine.Clustering.MinSize)
		assert.Equal(t, 0.8, config.Graph.DecayFactor)

		// Untouched sections keep their defaults.
		assert.Equal(t, 0.6, config.Engine.CorrelationThreshold)
		assert.Equal(t, 2.0, config.Engine.Anomaly.ZThreshold)
	})

	t.Run("json_by_extension", func(t *testing.T) {
		path := writeFile(t, "weaver.json", `{"engine":{"max_batch_size":50},"gazetteer":"lexicon.yaml"}`)
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 50, config.Engine.MaxBatchSize)
		assert.Equal(t, "lexicon.yaml", config.Gazetteer)
	})

	t.Run("unknown_extension_falls_back", func(t *testing.T) {
		path := writeFile(t, "weaver.conf", "engine:\n  max_batch_size: 25\n")
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 25, config.Engine.MaxBatchSize)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := writeFile(t, "weaver.yaml", "engine: [not a mapping")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})

	t.Run("invalid_values_rejected", func(t *testing.T) {
		path := writeFile(t, "weaver.yaml", "graph:\n  decay_factor: 1.5\n")
		_, err := Load(path)
		var configErr *domain.ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "decay_factor", configErr.Field)
	})
}
