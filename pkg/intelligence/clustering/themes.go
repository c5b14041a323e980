package clustering

import (
	"sort"

	"github.com/nmachari/weaver/pkg/domain"
)

const maxThemes = 5

// stopwords excluded from theme extraction.
var stopwords = map[string]bool{
	"this": true,
	"that": true,
	"with": true,
	"from": true,
}

// commonThemes returns the most frequent words longer than three characters
// across all member texts, ties broken alphabetically for determinism.
func commonThemes(items []domain.Item, members []int) []string {
	frequencies := make(map[string]int)
	for _, index := range members {
		for _, word := range domain.Tokenize(items[index].Text()) {
			if len(word) <= 3 || stopwords[word] {
				continue
			}
			frequencies[word]++
		}
	}
	if len(frequencies) == 0 {
		return nil
	}

	words := make([]string, 0, len(frequencies))
	for word := range frequencies {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if frequencies[words[i]] != frequencies[words[j]] {
			return frequencies[words[i]] > frequencies[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > maxThemes {
		words = words[:maxThemes]
	}
	return words
}
