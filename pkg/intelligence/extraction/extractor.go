package extraction

import (
	"sort"
	"strings"

	"github.com/nmachari/weaver/pkg/domain"
)

// Extractor recognizes typed entities in item text by gazetteer membership.
// It is a pure function over its inputs: deterministic, no side effects.
type Extractor struct {
	gazetteer *Gazetteer
}

// NewExtractor builds an extractor over the given lexicon.
func NewExtractor(gazetteer *Gazetteer) *Extractor {
	return &Extractor{gazetteer: gazetteer}
}

// Gazetteer exposes the lexicon backing this extractor.
func (e *Extractor) Gazetteer() *Gazetteer {
	return e.gazetteer
}

// Extract returns the deduplicated entities whose terms occur as literal
// substrings of the item's lowercased title+content. Empty text yields an
// empty slice. Results are sorted by category then term.
func (e *Extractor) Extract(item domain.Item) []domain.Entity {
	text := item.Text()
	if text == "" {
		return nil
	}

	var entities []domain.Entity
	for _, category := range e.gazetteer.Categories() {
		for _, term := range e.gazetteer.Terms(category) {
			if strings.Contains(text, term) {
				entities = append(entities, domain.Entity{Category: category, Term: term})
			}
		}
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Category != entities[j].Category {
			return entities[i].Category < entities[j].Category
		}
		return entities[i].Term < entities[j].Term
	})
	return entities
}

// Locations returns just the location terms present in the item.
func (e *Extractor) Locations(item domain.Item) []string {
	text := item.Text()
	if text == "" {
		return nil
	}
	var locations []string
	for _, term := range e.gazetteer.Terms(domain.CategoryLocation) {
		if strings.Contains(text, term) {
			locations = append(locations, term)
		}
	}
	return locations
}

// ExtractAll aggregates unique terms per category across a whole batch,
// keyed by category name, for the report's entity summary.
func (e *Extractor) ExtractAll(items []domain.Item) map[string][]string {
	seen := make(map[domain.EntityCategory]map[string]bool)
	for _, item := range items {
		for _, entity := range e.Extract(item) {
			if seen[entity.Category] == nil {
				seen[entity.Category] = make(map[string]bool)
			}
			seen[entity.Category][entity.Term] = true
		}
	}

	result := make(map[string][]string, len(seen))
	for category, terms := range seen {
		list := make([]string, 0, len(terms))
		for term := range terms {
			list = append(list, term)
		}
		sort.Strings(list)
		result[string(category)] = list
	}
	return result
}
