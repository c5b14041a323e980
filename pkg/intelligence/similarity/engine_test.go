package similarity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/extraction"
)

func newTestEngine(t *testing.T, weights Weights) *Engine {
	t.Helper()
	extractor := extraction.NewExtractor(extraction.DefaultGazetteer())
	engine, err := NewEngine(weights, extractor, zaptest.NewLogger(t))
	require.NoError(t, err)
	return engine
}

func ts(value string) domain.Timestamp {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return domain.NewTimestamp(parsed)
}

func TestWeightValidation(t *testing.T) {
	extractor := extraction.NewExtractor(extraction.DefaultGazetteer())

	t.Run("negative_weight_rejected", func(t *testing.T) {
		_, err := NewEngine(Weights{Content: -0.1, Temporal: 0.5, Spatial: 0.3, Source: 0.3}, extractor, nil)
		var configErr *domain.ConfigError
		require.ErrorAs(t, err, &configErr)
	})

	t.Run("all_zero_rejected", func(t *testing.T) {
		_, err := NewEngine(Weights{}, extractor, nil)
		assert.Error(t, err)
	})

	t.Run("unnormalized_weights_scaled", func(t *testing.T) {
		engine, err := NewEngine(Weights{Content: 2, Temporal: 1, Spatial: 1, Source: 0}, extractor, nil)
		require.NoError(t, err)
		w := engine.Weights()
		assert.InDelta(t, 0.5, w.Content, 1e-9)
		assert.InDelta(t, 0.25, w.Temporal, 1e-9)
		assert.InDelta(t, 0.25, w.Spatial, 1e-9)
		assert.InDelta(t, 0.0, w.Source, 1e-9)
	})
}

func TestContentSimilarity(t *testing.T) {
	t.Run("reflexive", func(t *testing.T) {
		for _, text := range []string{"nairobi", "highway construction in nairobi", "a b c a b"} {
			assert.InDelta(t, 1.0, ContentSimilarity(text, text), 1e-9)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a, b := "port expansion in mombasa", "mombasa port delays reported"
		assert.InDelta(t, ContentSimilarity(a, b), ContentSimilarity(b, a), 1e-12)
	})

	t.Run("empty_text_scores_zero", func(t *testing.T) {
		assert.Zero(t, ContentSimilarity("", "some text"))
		assert.Zero(t, ContentSimilarity("some text", ""))
		assert.Zero(t, ContentSimilarity("", ""))
	})

	t.Run("disjoint_vocabulary_scores_zero", func(t *testing.T) {
		assert.Zero(t, ContentSimilarity("alpha beta", "gamma delta"))
	})

	t.Run("known_value", func(t *testing.T) {
		// "a b" vs "a c": dot = 1, magnitudes sqrt(2)*sqrt(2) = 2.
		assert.InDelta(t, 0.5, ContentSimilarity("a b", "a c"), 1e-9)
	})
}

func TestTemporalSimilarity(t *testing.T) {
	base := ts("2024-01-15T10:00:00Z")
	tests := []struct {
		name  string
		other domain.Timestamp
		want  float64
	}{
		{"within_hour", ts("2024-01-15T10:45:00Z"), 1.0},
		{"exactly_one_hour", ts("2024-01-15T11:00:00Z"), 1.0},
		{"within_day", ts("2024-01-15T22:00:00Z"), 0.8},
		{"within_week", ts("2024-01-19T10:00:00Z"), 0.6},
		{"beyond_week", ts("2024-02-20T10:00:00Z"), 0.3},
		{"missing", domain.Timestamp{}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TemporalSimilarity(base, tt.other), 1e-9)
			assert.InDelta(t, tt.want, TemporalSimilarity(tt.other, base), 1e-9, "must be symmetric")
		})
	}
}

func TestSpatialSimilarity(t *testing.T) {
	engine := newTestEngine(t, DefaultWeights())

	tests := []struct {
		name     string
		contentA string
		contentB string
		want     float64
	}{
		{"identical_sets", "meeting in nairobi", "protest in nairobi", 1.0},
		{"overlapping_sets", "nairobi and mombasa", "mombasa only", 0.5},
		{"disjoint_sets", "event in kisumu", "event in nakuru", 0.2},
		{"one_side_empty", "event in kisumu", "no location named", 0.3},
		{"both_empty", "nothing here", "nothing there", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Item{Content: tt.contentA}
			b := domain.Item{Content: tt.contentB}
			assert.InDelta(t, tt.want, engine.spatialSimilarity(a, b), 1e-9)
			assert.InDelta(t, tt.want, engine.spatialSimilarity(b, a), 1e-9, "must be symmetric")
		})
	}
}

func TestSourceSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		sourceA string
		sourceB string
		want    float64
	}{
		{"both_high", "government", "official", 0.8},
		{"both_medium", "news", "academic", 0.6},
		{"both_low", "social_media", "unofficial", 0.6},
		{"unknown_label_is_low", "blog", "social_media", 0.6},
		{"different_buckets", "government", "news", 0.4},
		{"high_vs_low", "official", "unknown", 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SourceSimilarity(tt.sourceA, tt.sourceB), 1e-9)
			assert.InDelta(t, tt.want, SourceSimilarity(tt.sourceB, tt.sourceA), 1e-9)
		})
	}
}

func TestPairwiseBounds(t *testing.T) {
	engine := newTestEngine(t, DefaultWeights())
	items := []domain.Item{
		{Title: "Nairobi infrastructure project", Content: "highway in nairobi", Source: "government", Timestamp: ts("2024-01-15T10:00:00Z")},
		{Title: "Mombasa port update", Content: "port works in mombasa", Source: "news", Timestamp: ts("2024-01-16T14:30:00Z")},
		{Title: "", Content: "", Source: ""},
		{Title: "Kisumu farming", Content: "agriculture in kisumu", Source: "ngo"},
	}

	for i := 0; i < len(items); i++ {
		for j := 0; j < len(items); j++ {
			score := engine.Pairwise(items[i], items[j])
			for name, value := range map[string]float64{
				"content":   score.Content,
				"temporal":  score.Temporal,
				"spatial":   score.Spatial,
				"source":    score.Source,
				"composite": score.Composite,
			} {
				assert.GreaterOrEqual(t, value, 0.0, name)
				assert.LessOrEqual(t, value, 1.0, name)
			}
		}
	}
}

func TestPairwiseIdenticalItems(t *testing.T) {
	engine := newTestEngine(t, DefaultWeights())
	item := domain.Item{
		Title:     "Nairobi infrastructure project announced",
		Content:   "New highway construction in Nairobi County starting next month",
		Source:    "government",
		Timestamp: ts("2024-01-15T10:00:00Z"),
	}
	score := engine.Pairwise(item, item)

	assert.InDelta(t, 1.0, score.Content, 1e-9)
	assert.InDelta(t, 1.0, score.Temporal, 1e-9)
	assert.InDelta(t, 1.0, score.Spatial, 1e-9)
	assert.InDelta(t, 0.8, score.Source, 1e-9)
	// 0.4 + 0.3 + 0.2 + 0.8*0.1
	assert.InDelta(t, 0.98, score.Composite, 1e-9)
}
