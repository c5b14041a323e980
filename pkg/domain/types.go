package domain

import "time"

// SimilarityScore is the multi-dimensional similarity between one item
// pair. Scores are ephemeral, computed on demand and never persisted.
type SimilarityScore struct {
	ItemA string `json:"item1"`
	ItemB string `json:"item2"`

	// Component scores, each in [0,1].
	Content  float64 `json:"content_similarity"`
	Temporal float64 `json:"temporal_similarity"`
	Spatial  float64 `json:"spatial_similarity"`
	Source   float64 `json:"source_similarity"`

	// Composite is the weighted sum of the components, clamped to [0,1].
	Composite float64 `json:"correlation_score"`
}

// Breakdown returns the per-modality scores keyed the way reports expose
// them.
func (s SimilarityScore) Breakdown() map[string]float64 {
	return map[string]float64{
		"content_similarity":  s.Content,
		"temporal_similarity": s.Temporal,
		"spatial_similarity":  s.Spatial,
		"source_similarity":   s.Source,
	}
}

// Cluster is a seed-anchored group of items judged similar enough to be
// related. Membership is first-match against the seed, not transitive.
type Cluster struct {
	// ItemIndexes are positions into the orchestration batch, seed first.
	ItemIndexes []int    `json:"item_indexes"`
	Titles      []string `json:"titles"`
	Cohesion    float64  `json:"cluster_score"`
	Themes      []string `json:"common_themes"`
}

// Size returns the member count.
func (c Cluster) Size() int { return len(c.ItemIndexes) }

// Edge is a decaying, reinforcing link between two co-occurring entities.
// Edges are owned by the relationship graph and are the only values that
// survive across orchestration calls. Strength stays in [0,1] and is only
// moved through the documented decay-then-merge rule.
type Edge struct {
	A             Entity    `json:"source"`
	B             Entity    `json:"target"`
	Strength      float64   `json:"strength"`
	Type          string    `json:"correlation_type"`
	EvidenceCount int       `json:"evidence_count"`
	LastObserved  time.Time `json:"last_observed"`
}

// AnomalyKind distinguishes what was counted.
type AnomalyKind string

const (
	AnomalyTopic    AnomalyKind = "topic_anomaly"
	AnomalyActivity AnomalyKind = "activity_anomaly"
)

// Anomaly flags a topic or time bucket whose mention count is a statistical
// outlier.
type Anomaly struct {
	Kind        AnomalyKind `json:"type"`
	Subject     string      `json:"subject"`
	Count       int         `json:"observed_count"`
	ZScore      float64     `json:"z_score"`
	Direction   string      `json:"direction"` // "high" or "low"
	Description string      `json:"description"`
}

// Trend directions reported by the anomaly detector.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// ConfidenceLevel is the qualitative verdict bucket.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// ConfidenceReport aggregates heterogeneous phase confidence signals into
// one verdict.
type ConfidenceReport struct {
	Overall    float64           `json:"overall_confidence"`
	Components []ConfidenceInput `json:"component_scores"`
	Level      ConfidenceLevel   `json:"confidence_level"`
}

// ConfidenceInput records one signal that fed the synthesis.
type ConfidenceInput struct {
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}
