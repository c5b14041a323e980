package extraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmachari/weaver/pkg/domain"
)

func TestDefaultGazetteer(t *testing.T) {
	g := DefaultGazetteer()
	assert.Contains(t, g.Terms(domain.CategoryLocation), "nairobi")
	assert.Contains(t, g.Terms(domain.CategoryTopic), "infrastructure")
	assert.Greater(t, g.Size(), 20)
	assert.Len(t, g.Categories(), 4)
}

func TestLoadGazetteer(t *testing.T) {
	t.Run("valid_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		content := "categories:\n  locations: [Harborton, harborton, '']\n  topics: [shipping]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		g, err := LoadGazetteer(path)
		require.NoError(t, err)
		// Duplicates and blanks are dropped, terms lowercased.
		assert.Equal(t, []string{"harborton"}, g.Terms(domain.CategoryLocation))
		assert.Equal(t, []string{"shipping"}, g.Terms(domain.CategoryTopic))
	})

	t.Run("unknown_category", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  vehicles: [matatu]\n"), 0o644))
		_, err := LoadGazetteer(path)
		assert.ErrorContains(t, err, "unknown gazetteer category")
	})

	t.Run("empty_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: {}\n"), 0o644))
		_, err := LoadGazetteer(path)
		assert.ErrorContains(t, err, "no categories")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadGazetteer(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestExtract(t *testing.T) {
	extractor := NewExtractor(DefaultGazetteer())

	t.Run("typed_entities", func(t *testing.T) {
		item := domain.Item{
			Title:   "Nairobi infrastructure project announced",
			Content: "Ruto confirmed new highway construction in Nairobi County",
		}
		entities := extractor.Extract(item)

		assert.Contains(t, entities, domain.Entity{Category: domain.CategoryLocation, Term: "nairobi"})
		assert.Contains(t, entities, domain.Entity{Category: domain.CategoryPerson, Term: "ruto"})
		assert.Contains(t, entities, domain.Entity{Category: domain.CategoryTopic, Term: "infrastructure"})
		assert.Contains(t, entities, domain.Entity{Category: domain.CategoryOrganization, Term: "county"})
	})

	t.Run("deduplicated", func(t *testing.T) {
		item := domain.Item{Title: "nairobi nairobi", Content: "nairobi again"}
		entities := extractor.Extract(item)
		require.Len(t, entities, 1)
		assert.Equal(t, "nairobi", entities[0].Term)
	})

	t.Run("empty_text", func(t *testing.T) {
		assert.Empty(t, extractor.Extract(domain.Item{Source: "news"}))
	})

	t.Run("no_matches", func(t *testing.T) {
		assert.Empty(t, extractor.Extract(domain.Item{Title: "weather report", Content: "sunny skies expected"}))
	})

	t.Run("deterministic_order", func(t *testing.T) {
		item := domain.Item{Title: "ruto and raila met in mombasa and nairobi"}
		first := extractor.Extract(item)
		second := extractor.Extract(item)
		assert.Equal(t, first, second)
	})
}

func TestLocations(t *testing.T) {
	extractor := NewExtractor(DefaultGazetteer())
	locations := extractor.Locations(domain.Item{Title: "travel notes", Content: "from mombasa to kisumu"})
	assert.ElementsMatch(t, []string{"kisumu", "mombasa"}, locations)
	assert.Empty(t, extractor.Locations(domain.Item{Title: "no places here"}))
}

func TestExtractAll(t *testing.T) {
	extractor := NewExtractor(DefaultGazetteer())
	items := []domain.Item{
		{Title: "nairobi development plans"},
		{Title: "mombasa development meeting"},
		{Title: "nairobi education budget"},
	}
	summary := extractor.ExtractAll(items)

	assert.Equal(t, []string{"mombasa", "nairobi"}, summary["location"])
	assert.Equal(t, []string{"development", "education"}, summary["topic"])
}
