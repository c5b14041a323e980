// Package clustering groups batch items by similarity to a seed item.
//
// The pass is greedy and seed-order dependent by design: the first
// unassigned item in input order seeds a cluster, and every later
// unassigned item is compared against that seed only. Membership is
// first-match assignment, not transitive closure; reordering the input can
// change cluster composition. Downstream consumers depend on this policy,
// so it must not be "fixed" into symmetric clustering.
package clustering

import (
	"sort"

	"go.uber.org/zap"

	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/similarity"
)

// Config bounds cluster formation.
type Config struct {
	// Threshold is the minimum seed similarity for membership, in [0,1].
	Threshold float64 `yaml:"threshold" json:"threshold"`
	// MinSize discards clusters with fewer members.
	MinSize int `yaml:"min_size" json:"min_size"`
}

// DefaultConfig returns the canonical clustering parameters.
func DefaultConfig() Config {
	return Config{Threshold: 0.6, MinSize: 2}
}

// Validate rejects out-of-range parameters.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return domain.NewConfigError("clustering", "threshold", "must be in [0,1]")
	}
	if c.MinSize < 1 {
		return domain.NewConfigError("clustering", "min_size", "must be at least 1")
	}
	return nil
}

// Clusterer groups items using the pairwise similarity engine.
type Clusterer struct {
	sim    *similarity.Engine
	config Config
	logger *zap.Logger
}

// NewClusterer validates the config and returns a ready clusterer.
func NewClusterer(sim *similarity.Engine, config Config, logger *zap.Logger) (*Clusterer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Clusterer{sim: sim, config: config, logger: logger}, nil
}

// Cluster runs one greedy pass over the batch and returns surviving
// clusters sorted by cohesion descending. No item appears in more than one
// cluster, and no returned cluster is smaller than MinSize.
func (c *Clusterer) Cluster(items []domain.Item) []domain.Cluster {
	if len(items) < 2 {
		return nil
	}

	assigned := make([]bool, len(items))
	var clusters []domain.Cluster

	for seed := range items {
		if assigned[seed] {
			continue
		}
		members := []int{seed}
		assigned[seed] = true

		for candidate := seed + 1; candidate < len(items); candidate++ {
			if assigned[candidate] {
				continue
			}
			score := c.sim.Pairwise(items[seed], items[candidate])
			if score.Composite >= c.config.Threshold {
				members = append(members, candidate)
				assigned[candidate] = true
			}
		}

		if len(members) < c.config.MinSize {
			// Discarded, but members stay assigned: first-match assignment
			// consumes items even when the cluster is too small to report.
			continue
		}
		clusters = append(clusters, c.buildCluster(items, members))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Cohesion > clusters[j].Cohesion
	})
	if c.logger != nil {
		c.logger.Debug("clustering pass complete",
			zap.Int("items", len(items)),
			zap.Int("clusters", len(clusters)))
	}
	return clusters
}

func (c *Clusterer) buildCluster(items []domain.Item, members []int) domain.Cluster {
	titles := make([]string, len(members))
	for i, index := range members {
		titles[i] = items[index].Title
	}
	return domain.Cluster{
		ItemIndexes: members,
		Titles:      titles,
		Cohesion:    c.cohesion(items, members),
		Themes:      commonThemes(items, members),
	}
}

// cohesion is 0.3 * min(size/10, 1) + 0.7 * mean pairwise similarity across
// all member pairs.
func (c *Clusterer) cohesion(items []domain.Item, members []int) float64 {
	sizeScore := float64(len(members)) / 10.0
	if sizeScore > 1 {
		sizeScore = 1
	}

	total := 0.0
	pairs := 0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			total += c.sim.Pairwise(items[members[i]], items[members[j]]).Composite
			pairs++
		}
	}
	meanSimilarity := 0.0
	if pairs > 0 {
		meanSimilarity = total / float64(pairs)
	}
	return 0.3*sizeScore + 0.7*meanSimilarity
}
