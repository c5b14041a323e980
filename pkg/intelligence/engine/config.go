package engine

import (
	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/anomaly"
	"github.com/nmachari/weaver/pkg/intelligence/clustering"
	"github.com/nmachari/weaver/pkg/intelligence/similarity"
)

// Config wires every phase of the orchestrator.
type Config struct {
	Similarity similarity.Weights `yaml:"similarity" json:"similarity"`
	Clustering clustering.Config  `yaml:"clustering" json:"clustering"`
	Anomaly    anomaly.Config     `yaml:"anomaly" json:"anomaly"`

	// CorrelationThreshold is the minimum composite similarity for a pair
	// to count as a significant correlation.
	CorrelationThreshold float64 `yaml:"correlation_threshold" json:"correlation_threshold"`

	// AdvancedMinItems selects the advanced path at or above this batch
	// size; smaller batches take the degraded basic path.
	AdvancedMinItems int `yaml:"advanced_min_items" json:"advanced_min_items"`

	// MaxBatchSize is the hard batch limit; the pairwise phases are
	// O(n squared) and the engine refuses larger input outright.
	MaxBatchSize int `yaml:"max_batch_size" json:"max_batch_size"`

	// TopKCentrality bounds the centrality ranking in reports.
	TopKCentrality int `yaml:"top_k_centrality" json:"top_k_centrality"`

	// MinCommunitySize filters reported graph communities.
	MinCommunitySize int `yaml:"min_community_size" json:"min_community_size"`

	// KeyEntities are the terms that form cross-source content signatures.
	KeyEntities []string `yaml:"key_entities" json:"key_entities"`
}

// DefaultConfig returns the canonical engine parameters.
func DefaultConfig() Config {
	return Config{
		Similarity:           similarity.DefaultWeights(),
		Clustering:           clustering.DefaultConfig(),
		Anomaly:              anomaly.DefaultConfig(),
		CorrelationThreshold: 0.6,
		AdvancedMinItems:     3,
		MaxBatchSize:         500,
		TopKCentrality:       10,
		MinCommunitySize:     2,
		KeyEntities: []string{
			"ruto", "raila", "nairobi", "mombasa", "development", "infrastructure",
		},
	}
}

// Validate checks engine-level parameters; component configs validate
// themselves at component construction.
func (c Config) Validate() error {
	if c.CorrelationThreshold < 0 || c.CorrelationThreshold > 1 {
		return domain.NewConfigError("engine", "correlation_threshold", "must be in [0,1]")
	}
	if c.AdvancedMinItems < 1 {
		return domain.NewConfigError("engine", "advanced_min_items", "must be at least 1")
	}
	if c.MaxBatchSize < 1 {
		return domain.NewConfigError("engine", "max_batch_size", "must be positive")
	}
	if c.TopKCentrality < 1 {
		return domain.NewConfigError("engine", "top_k_centrality", "must be at least 1")
	}
	if c.MinCommunitySize < 1 {
		return domain.NewConfigError("engine", "min_community_size", "must be at least 1")
	}
	return nil
}
