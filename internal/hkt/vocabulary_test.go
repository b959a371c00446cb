package hkt

import "testing"

func TestIndexVocabularyFiltersByMinimumSources(t *testing.T) {
	sources := map[int]Source{
		1: {SourceID: 1, Words: []string{"a", "a", "b"}},
		2: {SourceID: 2, Words: []string{"a"}},
		3: {SourceID: 3, Words: []string{"z"}},
	}

	vocab := indexVocabulary(sources, 2)

	if vocab.numberOfWords != 3 {
		t.Fatalf("numberOfWords = %d, want 3", vocab.numberOfWords)
	}

	var aID int
	found := false
	for id, w := range vocab.words {
		if w == "a" {
			aID = id
			found = true
		}
		if w == "b" || w == "z" {
			t.Fatalf("word %q should have been filtered out, got id %d", w, id)
		}
	}
	if !found {
		t.Fatalf("expected word 'a' to be present in vocabulary")
	}

	count := 0
	for _, sw := range vocab.sourceWords {
		if sw.WordID != aID {
			t.Fatalf("unexpected word id %d in source words", sw.WordID)
		}
		if sw.WordNoOfSources != 2 {
			t.Fatalf("word_no_of_sources = %d, want 2", sw.WordNoOfSources)
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 source_word records, got %d", count)
	}
}

func TestDistinctWordsDeduplicatesPreservingOrder(t *testing.T) {
	got := distinctWords(Source{Words: []string{"b", "a", "b", "c", "a"}})
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("distinctWords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("distinctWords = %v, want %v", got, want)
		}
	}
}
