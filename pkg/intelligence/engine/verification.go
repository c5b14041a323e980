package engine

import (
	"sort"
	"strings"

	"github.com/nmachari/weaver/pkg/domain"
)

// signatureFallback groups items mentioning no key entity.
const signatureFallback = "general"

// verifyAcrossSources groups items by content signature and scores each
// multi-item group by how many distinct source types reported it:
// min(distinct/3, 1). Single-item groups are unverifiable and skipped.
func (e *Engine) verifyAcrossSources(items []domain.Item) domain.CrossSource {
	groups := make(map[string][]domain.Item)
	for _, item := range items {
		signature := e.contentSignature(item)
		groups[signature] = append(groups[signature], item)
	}

	signatures := make([]string, 0, len(groups))
	for signature := range groups {
		signatures = append(signatures, signature)
	}
	sort.Strings(signatures)

	verified := []domain.VerifiedCluster{}
	total := 0.0
	for _, signature := range signatures {
		group := groups[signature]
		if len(group) < 2 {
			continue
		}
		sources := make([]string, len(group))
		distinct := make(map[string]bool)
		for i, item := range group {
			sources[i] = item.Source
			distinct[item.Source] = true
		}
		score := float64(len(distinct)) / 3.0
		if score > 1 {
			score = 1
		}
		verified = append(verified, domain.VerifiedCluster{
			Signature:       signature,
			SourceCount:     len(group),
			SourceDiversity: len(distinct),
			Confidence:      score,
			Sources:         sources,
		})
		total += score
	}

	average := 0.0
	if len(verified) > 0 {
		average = total / float64(len(verified))
	}
	return domain.CrossSource{
		VerifiedClusters:  verified,
		TotalVerified:     len(verified),
		AverageConfidence: average,
	}
}

// contentSignature is the sorted set of configured key entities present in
// the item text, joined with underscores.
func (e *Engine) contentSignature(item domain.Item) string {
	text := item.Text()
	var present []string
	for _, term := range e.config.KeyEntities {
		if strings.Contains(text, term) {
			present = append(present, term)
		}
	}
	if len(present) == 0 {
		return signatureFallback
	}
	sort.Strings(present)
	return strings.Join(present, "_")
}
