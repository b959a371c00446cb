package hkt

import "sort"

// vocabulary is the output of indexVocabulary: the global word dictionary,
// the unsorted SourceWord relation list, and the distinct-word count
// reported in stats (before the importance filter).
type vocabulary struct {
	words         map[int]string
	sourceWords   []SourceWord
	numberOfWords int
}

// orderedSourceIDs returns the source ids of sources in ascending order.
// Go map iteration order is randomized; the algorithm's determinism
// (spec §8 property 6) depends on fixing a canonical traversal order of
// the input map, so every pass over sources in this package goes through
// this helper instead of ranging over the map directly.
func orderedSourceIDs(sources map[int]Source) []int {
	ids := make([]int, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// distinctWords returns the distinct words of a source, deduplicated
// while preserving the first-occurrence order of s.Words. This order is
// the "insertion order" spec §4.1 requires of the counting structure.
func distinctWords(s Source) []string {
	seen := make(map[string]struct{}, len(s.Words))
	out := make([]string, 0, len(s.Words))
	for _, w := range s.Words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// indexVocabulary implements the vocabulary indexer (spec §4.1): it
// filters raw words by minimum source frequency, assigns stable integer
// ids in deterministic insertion order, and produces the initial
// SourceWord relation set.
func indexVocabulary(sources map[int]Source, minimumSourcesImportant int) vocabulary {
	df := make(map[string]int)
	order := make([]string, 0)

	sourceIDs := orderedSourceIDs(sources)
	for _, sid := range sourceIDs {
		for _, w := range distinctWords(sources[sid]) {
			if _, ok := df[w]; !ok {
				order = append(order, w)
			}
			df[w]++
		}
	}

	wordToID := make(map[string]int, len(order))
	words := make(map[int]string, len(order))
	nextID := 1
	for _, w := range order {
		if df[w] >= minimumSourcesImportant {
			wordToID[w] = nextID
			words[nextID] = w
			nextID++
		}
	}

	var sourceWords []SourceWord
	swID := 1
	for _, sid := range sourceIDs {
		src := sources[sid]
		for _, w := range distinctWords(src) {
			wid, ok := wordToID[w]
			if !ok {
				continue
			}
			sourceWords = append(sourceWords, SourceWord{
				SourceWordID:    swID,
				SourceID:        src.SourceID,
				WordID:          wid,
				Word:            w,
				WordNoOfSources: df[w],
			})
			swID++
		}
	}

	return vocabulary{
		words:         words,
		sourceWords:   sourceWords,
		numberOfWords: len(order),
	}
}
