package clustering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/extraction"
	"github.com/nmachari/weaver/pkg/intelligence/similarity"
)

func newTestClusterer(t *testing.T, config Config) *Clusterer {
	t.Helper()
	extractor := extraction.NewExtractor(extraction.DefaultGazetteer())
	sim, err := similarity.NewEngine(similarity.DefaultWeights(), extractor, zaptest.NewLogger(t))
	require.NoError(t, err)
	clusterer, err := NewClusterer(sim, config, zaptest.NewLogger(t))
	require.NoError(t, err)
	return clusterer
}

func stamped(title, content, source, instant string) domain.Item {
	parsed, err := time.Parse(time.RFC3339, instant)
	if err != nil {
		panic(err)
	}
	return domain.Item{Title: title, Content: content, Source: source, Timestamp: domain.NewTimestamp(parsed)}
}

func TestConfigValidation(t *testing.T) {
	extractor := extraction.NewExtractor(extraction.DefaultGazetteer())
	sim, err := similarity.NewEngine(similarity.DefaultWeights(), extractor, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		config Config
	}{
		{"threshold_above_one", Config{Threshold: 1.5, MinSize: 2}},
		{"threshold_negative", Config{Threshold: -0.1, MinSize: 2}},
		{"zero_min_size", Config{Threshold: 0.6, MinSize: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClusterer(sim, tt.config, nil)
			var configErr *domain.ConfigError
			assert.ErrorAs(t, err, &configErr)
		})
	}
}

func TestIdenticalItemsClusterTogether(t *testing.T) {
	clusterer := newTestClusterer(t, DefaultConfig())

	twin := func(instant string) domain.Item {
		return stamped(
			"Nairobi infrastructure project announced",
			"New highway construction in Nairobi County starting next month",
			"government",
			instant,
		)
	}
	a := twin("2024-01-15T10:00:00Z")
	b := twin("2024-01-15T10:30:00Z")
	unrelated := stamped("Weather update", "sunny skies expected across the coast", "news", "2024-01-15T11:00:00Z")

	t.Run("forward_order", func(t *testing.T) {
		clusters := clusterer.Cluster([]domain.Item{a, b, unrelated})
		require.Len(t, clusters, 1)
		assert.ElementsMatch(t, []int{0, 1}, clusters[0].ItemIndexes)
	})

	t.Run("reversed_order", func(t *testing.T) {
		clusters := clusterer.Cluster([]domain.Item{unrelated, b, a})
		require.Len(t, clusters, 1)
		assert.ElementsMatch(t, []int{1, 2}, clusters[0].ItemIndexes)
	})
}

func TestClusterInvariants(t *testing.T) {
	clusterer := newTestClusterer(t, DefaultConfig())
	items := []domain.Item{
		stamped("Nairobi highway works", "highway construction in nairobi", "government", "2024-01-15T10:00:00Z"),
		stamped("Nairobi highway update", "highway construction in nairobi continues", "news", "2024-01-15T11:00:00Z"),
		stamped("Mombasa port expansion", "port of mombasa expansion announced", "government", "2024-01-15T12:00:00Z"),
		stamped("Mombasa port delays", "port of mombasa expansion facing delays", "news", "2024-01-15T13:00:00Z"),
		stamped("Unrelated bulletin", "completely different subject matter entirely", "social_media", "2024-01-15T14:00:00Z"),
	}

	clusters := clusterer.Cluster(items)

	total := 0
	seen := map[int]bool{}
	for _, cluster := range clusters {
		assert.GreaterOrEqual(t, cluster.Size(), DefaultConfig().MinSize)
		total += cluster.Size()
		for _, index := range cluster.ItemIndexes {
			assert.False(t, seen[index], "no item may appear in two clusters")
			seen[index] = true
		}
	}
	assert.LessOrEqual(t, total, len(items))

	// Output is sorted by cohesion descending.
	for i := 1; i < len(clusters); i++ {
		assert.GreaterOrEqual(t, clusters[i-1].Cohesion, clusters[i].Cohesion)
	}
}

func TestSmallBatches(t *testing.T) {
	clusterer := newTestClusterer(t, DefaultConfig())
	assert.Empty(t, clusterer.Cluster(nil))
	assert.Empty(t, clusterer.Cluster([]domain.Item{{Title: "alone"}}))
}

func TestNoClustersBelowThreshold(t *testing.T) {
	clusterer := newTestClusterer(t, DefaultConfig())
	items := []domain.Item{
		stamped("Harbor expansion approved", "mombasa confirmed the harbor expansion", "government", "2024-01-15T10:00:00Z"),
		stamped("Farming initiative launched", "kisumu farmers welcome new crops", "news", "2024-01-16T14:30:00Z"),
		stamped("Highway upgrade planned", "nakuru agency schedules roadworks", "social_media", "2024-01-17T09:15:00Z"),
	}
	assert.Empty(t, clusterer.Cluster(items))
}

func TestCohesionFormula(t *testing.T) {
	clusterer := newTestClusterer(t, DefaultConfig())

	item := stamped(
		"Nairobi infrastructure project announced",
		"New highway construction in Nairobi County starting next month",
		"government",
		"2024-01-15T10:00:00Z",
	)
	clusters := clusterer.Cluster([]domain.Item{item, item})
	require.Len(t, clusters, 1)

	// Two members: size score 2/10, pairwise similarity 0.98 (identical
	// items from the same high-confidence source).
	expected := 0.3*0.2 + 0.7*0.98
	assert.InDelta(t, expected, clusters[0].Cohesion, 1e-9)
}

func TestCommonThemes(t *testing.T) {
	clusterer := newTestClusterer(t, DefaultConfig())
	item := stamped(
		"Highway highway highway",
		"highway construction construction with this that from",
		"news",
		"2024-01-15T10:00:00Z",
	)
	clusters := clusterer.Cluster([]domain.Item{item, item})
	require.Len(t, clusters, 1)

	themes := clusters[0].Themes
	require.NotEmpty(t, themes)
	assert.Equal(t, "highway", themes[0])
	assert.NotContains(t, themes, "with")
	assert.NotContains(t, themes, "this")
}
