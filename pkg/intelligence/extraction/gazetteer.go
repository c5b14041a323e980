package extraction

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nmachari/weaver/pkg/domain"
)

//go:embed gazetteer.yaml
var defaultGazetteerYAML []byte

// Gazetteer is an immutable category-to-terms lexicon. Entity recognition
// is literal substring membership against it; nothing is ever inferred.
type Gazetteer struct {
	categories map[domain.EntityCategory][]string
}

// gazetteerFile is the on-disk YAML shape.
type gazetteerFile struct {
	Categories map[string][]string `yaml:"categories"`
}

var categoryNames = map[string]domain.EntityCategory{
	"persons":       domain.CategoryPerson,
	"locations":     domain.CategoryLocation,
	"organizations": domain.CategoryOrganization,
	"topics":        domain.CategoryTopic,
}

// DefaultGazetteer returns the built-in lexicon.
func DefaultGazetteer() *Gazetteer {
	g, err := parseGazetteer(defaultGazetteerYAML)
	if err != nil {
		// The embedded file is validated by tests; a parse failure here is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded gazetteer invalid: %v", err))
	}
	return g
}

// LoadGazetteer reads a YAML lexicon from path.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	return parseGazetteer(data)
}

func parseGazetteer(data []byte) (*Gazetteer, error) {
	var file gazetteerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse gazetteer: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("gazetteer has no categories")
	}

	g := &Gazetteer{categories: make(map[domain.EntityCategory][]string)}
	for name, terms := range file.Categories {
		category, ok := categoryNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown gazetteer category %q", name)
		}
		seen := make(map[string]bool, len(terms))
		cleaned := make([]string, 0, len(terms))
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			cleaned = append(cleaned, term)
		}
		sort.Strings(cleaned)
		g.categories[category] = cleaned
	}
	return g, nil
}

// Terms returns the lexicon for one category. The returned slice is shared;
// callers must not mutate it.
func (g *Gazetteer) Terms(category domain.EntityCategory) []string {
	return g.categories[category]
}

// Categories lists the known categories in stable order.
func (g *Gazetteer) Categories() []domain.EntityCategory {
	categories := make([]domain.EntityCategory, 0, len(g.categories))
	for category := range g.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// Size returns the total term count across categories.
func (g *Gazetteer) Size() int {
	total := 0
	for _, terms := range g.categories {
		total += len(terms)
	}
	return total
}
