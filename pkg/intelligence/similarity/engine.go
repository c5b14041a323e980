// Package similarity scores item pairs across four modalities: content,
// temporal, spatial, and source reliability. All component scores and the
// weighted composite lie in [0,1].
package similarity

import (
	"math"

	"go.uber.org/zap"

	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/extraction"
)

// Weights controls the contribution of each modality to the composite.
// Non-negative; normalized to sum 1 at construction.
type Weights struct {
	Content  float64 `yaml:"content" json:"content"`
	Temporal float64 `yaml:"temporal" json:"temporal"`
	Spatial  float64 `yaml:"spatial" json:"spatial"`
	Source   float64 `yaml:"source" json:"source"`
}

// DefaultWeights returns the canonical modality weighting.
func DefaultWeights() Weights {
	return Weights{Content: 0.4, Temporal: 0.3, Spatial: 0.2, Source: 0.1}
}

// normalize scales the weights to sum 1, rejecting negative or all-zero
// configurations.
func (w Weights) normalize() (Weights, error) {
	if w.Content < 0 || w.Temporal < 0 || w.Spatial < 0 || w.Source < 0 {
		return Weights{}, domain.NewConfigError("similarity", "weights", "weights must be non-negative")
	}
	sum := w.Content + w.Temporal + w.Spatial + w.Source
	if sum == 0 {
		return Weights{}, domain.NewConfigError("similarity", "weights", "weights must not all be zero")
	}
	return Weights{
		Content:  w.Content / sum,
		Temporal: w.Temporal / sum,
		Spatial:  w.Spatial / sum,
		Source:   w.Source / sum,
	}, nil
}

// Engine computes pairwise multi-dimensional similarity. It is stateless
// and safe for concurrent use.
type Engine struct {
	weights   Weights
	extractor *extraction.Extractor
	logger    *zap.Logger
}

// NewEngine validates and normalizes the weights and returns a ready
// engine.
func NewEngine(weights Weights, extractor *extraction.Extractor, logger *zap.Logger) (*Engine, error) {
	normalized, err := weights.normalize()
	if err != nil {
		return nil, err
	}
	return &Engine{weights: normalized, extractor: extractor, logger: logger}, nil
}

// Weights returns the normalized weights in effect.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Pairwise scores one item pair across all modalities.
func (e *Engine) Pairwise(a, b domain.Item) domain.SimilarityScore {
	score := domain.SimilarityScore{
		ItemA:    a.Title,
		ItemB:    b.Title,
		Content:  ContentSimilarity(a.Text(), b.Text()),
		Temporal: TemporalSimilarity(a.Timestamp, b.Timestamp),
		Spatial:  e.spatialSimilarity(a, b),
		Source:   SourceSimilarity(a.Source, b.Source),
	}
	composite := score.Content*e.weights.Content +
		score.Temporal*e.weights.Temporal +
		score.Spatial*e.weights.Spatial +
		score.Source*e.weights.Source
	score.Composite = clamp01(composite)
	return score
}

// ContentSimilarity is cosine similarity over term-frequency vectors of the
// two texts. Empty text on either side scores 0.
func ContentSimilarity(textA, textB string) float64 {
	if textA == "" || textB == "" {
		return 0.0
	}
	tokensA := domain.Tokenize(textA)
	tokensB := domain.Tokenize(textB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	tfA := termFrequencies(tokensA)
	tfB := termFrequencies(tokensB)

	dot := 0.0
	for term, countA := range tfA {
		if countB, ok := tfB[term]; ok {
			dot += float64(countA) * float64(countB)
		}
	}
	magnitude := vectorMagnitude(tfA) * vectorMagnitude(tfB)
	if magnitude == 0 {
		return 0.0
	}
	return clamp01(dot / magnitude)
}

func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	return tf
}

func vectorMagnitude(tf map[string]int) float64 {
	sum := 0.0
	for _, count := range tf {
		sum += float64(count) * float64(count)
	}
	return math.Sqrt(sum)
}

// TemporalSimilarity maps elapsed time between two items onto fixed step
// thresholds. A missing timestamp on either side is neutral 0.5.
func TemporalSimilarity(a, b domain.Timestamp) float64 {
	if !a.Valid() || !b.Valid() {
		return 0.5
	}
	elapsed := a.Time.Sub(b.Time)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	switch {
	case elapsed <= time1Hour:
		return 1.0
	case elapsed <= time1Day:
		return 0.8
	case elapsed <= time1Week:
		return 0.6
	default:
		return 0.3
	}
}

// spatialSimilarity compares the location entities mentioned by each item.
// No locations on either side is neutral-low 0.3; identical sets score 1.0;
// overlapping sets 0.5; disjoint sets 0.2.
func (e *Engine) spatialSimilarity(a, b domain.Item) float64 {
	locationsA := e.extractor.Locations(a)
	locationsB := e.extractor.Locations(b)
	if len(locationsA) == 0 || len(locationsB) == 0 {
		return 0.3
	}

	setA := toSet(locationsA)
	setB := toSet(locationsB)
	if equalSets(setA, setB) {
		return 1.0
	}
	for location := range setA {
		if setB[location] {
			return 0.5
		}
	}
	return 0.2
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func equalSets(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
