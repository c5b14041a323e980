package graph

import (
	"time"

	"github.com/nmachari/weaver/pkg/domain"
)

const (
	// baseStrength is every co-occurrence's floor.
	baseStrength = 0.3
	// proximityScale weights how much token closeness can add.
	proximityScale = 0.4
	// officialSourceBonus rewards official/government-labeled sources.
	officialSourceBonus = 0.2

	correlationTypeCoOccurrence = "co_occurrence"
)

// officialSources are labels that earn the source bonus.
var officialSources = map[string]bool{
	"government": true,
	"official":   true,
}

// BuildEdges forms one candidate edge per co-extracted entity pair within a
// single item. Strength is base 0.3 plus a proximity bonus (inverse token
// distance, scaled) plus a fixed bonus for official sources, clamped to 1.
// The item's timestamp is used as the observation time when present,
// otherwise observedAt.
func BuildEdges(item domain.Item, entities []domain.Entity, observedAt time.Time) []domain.Edge {
	if len(entities) < 2 {
		return nil
	}

	tokens := domain.Tokenize(item.Text())
	positions := firstPositions(tokens)
	when := observedAt
	if item.Timestamp.Valid() {
		when = item.Timestamp.Time
	}
	sourceBonus := 0.0
	if officialSources[item.Source] {
		sourceBonus = officialSourceBonus
	}

	var edges []domain.Edge
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			strength := baseStrength + sourceBonus +
				proximityBonus(entities[i].Term, entities[j].Term, positions, len(tokens))
			edges = append(edges, domain.Edge{
				A:             entities[i],
				B:             entities[j],
				Strength:      clamp01(strength),
				Type:          correlationTypeCoOccurrence,
				EvidenceCount: 1,
				LastObserved:  when,
			})
		}
	}
	return edges
}

// proximityBonus rewards terms appearing close together in the tokenized
// text: max(0, 1 - distance/tokenCount) scaled. Terms that never appear as
// standalone tokens (substring-only matches) earn no bonus.
func proximityBonus(termA, termB string, positions map[string]int, tokenCount int) float64 {
	posA, okA := positions[termA]
	posB, okB := positions[termB]
	if !okA || !okB || tokenCount == 0 {
		return 0.0
	}
	distance := posA - posB
	if distance < 0 {
		distance = -distance
	}
	proximity := 1 - float64(distance)/float64(tokenCount)
	if proximity < 0 {
		proximity = 0
	}
	return proximity * proximityScale
}

func firstPositions(tokens []string) map[string]int {
	positions := make(map[string]int, len(tokens))
	for i, token := range tokens {
		if _, seen := positions[token]; !seen {
			positions[token] = i
		}
	}
	return positions
}
