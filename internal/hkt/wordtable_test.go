package hkt

import "testing"

func sw(wordID, sourceID, count int) SourceWord {
	return SourceWord{WordID: wordID, SourceID: sourceID, WordNoOfSources: count}
}

func TestWordRankTableSortByFrequencyDesc(t *testing.T) {
	table := newWordRankTable([]SourceWord{
		sw(3, 1, 1),
		sw(1, 2, 5),
		sw(2, 3, 5),
	})
	table.SortByFrequencyDesc()

	entries := table.Entries()
	if entries[0].WordID != 1 || entries[1].WordID != 2 || entries[2].WordID != 3 {
		t.Fatalf("unexpected sort order: %+v", entries)
	}
	for i, e := range entries {
		if e.SourceWordID != i+1 {
			t.Fatalf("expected dense keys reassigned after sort, got %+v", entries)
		}
	}
}

func TestWordRankTableDeleteByWordID(t *testing.T) {
	table := newWordRankTable([]SourceWord{
		sw(1, 1, 2),
		sw(2, 1, 2),
		sw(1, 2, 2),
	})
	table.DeleteByWordID(1)

	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if table.Entries()[0].WordID != 2 {
		t.Fatalf("expected remaining entry to be word 2")
	}
}

func TestWordRankTableCloneIsIndependent(t *testing.T) {
	orig := newWordRankTable([]SourceWord{sw(1, 1, 1)})
	clone := orig.Clone()
	clone.DeleteByWordID(1)

	if orig.Len() != 1 {
		t.Fatalf("mutating clone affected original table")
	}
	if clone.Len() != 0 {
		t.Fatalf("clone deletion did not apply")
	}
}

func TestWordRankTableRecomputeLocalFrequencies(t *testing.T) {
	table := newWordRankTable([]SourceWord{
		sw(1, 1, 99),
		sw(1, 2, 99),
		sw(2, 1, 99),
	})
	table.RecomputeLocalFrequencies()

	counts := map[int]int{}
	for _, e := range table.Entries() {
		counts[e.WordID] = e.WordNoOfSources
	}
	if counts[1] != 2 {
		t.Fatalf("word 1 local count = %d, want 2", counts[1])
	}
	if counts[2] != 1 {
		t.Fatalf("word 2 local count = %d, want 1", counts[2])
	}
}
