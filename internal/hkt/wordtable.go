package hkt

import "sort"

// WordRankTable is the ordered multimap of SourceWord entries described
// in spec §4.2: a dense-keyed, insertion-ordered associative container
// supporting iteration in insertion order, deletion by word id, and
// re-sorting by a comparator. Keys are assigned densely starting at 1
// whenever the table is built or re-sorted.
//
// The reference behavior deep-copies this table at each recursion level
// (spec §9); Clone provides that deep copy.
type WordRankTable struct {
	entries []SourceWord
}

// newWordRankTable assigns dense keys 1..n to sws in the given order,
// without sorting it first. Callers that need the root table's initial
// sort order should sort sws before calling this.
func newWordRankTable(sws []SourceWord) *WordRankTable {
	t := &WordRankTable{entries: make([]SourceWord, len(sws))}
	copy(t.entries, sws)
	t.reassignKeys()
	return t
}

func (t *WordRankTable) reassignKeys() {
	for i := range t.entries {
		t.entries[i].SourceWordID = i + 1
	}
}

// Len returns the number of live entries.
func (t *WordRankTable) Len() int {
	return len(t.entries)
}

// Entries returns the live entries in current iteration order. The
// returned slice must not be mutated by the caller.
func (t *WordRankTable) Entries() []SourceWord {
	return t.entries
}

// First returns the first entry in iteration order, if any.
func (t *WordRankTable) First() (SourceWord, bool) {
	if len(t.entries) == 0 {
		return SourceWord{}, false
	}
	return t.entries[0], true
}

// DeleteByWordID removes every entry whose WordID equals wordID,
// preserving the relative order of the remaining entries.
func (t *WordRankTable) DeleteByWordID(wordID int) {
	out := t.entries[:0]
	for _, sw := range t.entries {
		if sw.WordID != wordID {
			out = append(out, sw)
		}
	}
	t.entries = out
}

// Delete removes the entry with the given dense key, if present.
func (t *WordRankTable) Delete(key int) bool {
	for i, sw := range t.entries {
		if sw.SourceWordID == key {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// SourceIDsForWord returns the set of distinct source ids carrying
// wordID among the live entries.
func (t *WordRankTable) SourceIDsForWord(wordID int) map[int]struct{} {
	out := make(map[int]struct{})
	for _, sw := range t.entries {
		if sw.WordID == wordID {
			out[sw.SourceID] = struct{}{}
		}
	}
	return out
}

// SortByFrequencyDesc re-sorts the table by (-WordNoOfSources, WordID)
// ascending — the table's canonical order per spec §4.2 — and reassigns
// dense keys 1..n in the new order.
func (t *WordRankTable) SortByFrequencyDesc() {
	sort.SliceStable(t.entries, func(i, j int) bool {
		a, b := t.entries[i], t.entries[j]
		if a.WordNoOfSources != b.WordNoOfSources {
			return a.WordNoOfSources > b.WordNoOfSources
		}
		return a.WordID < b.WordID
	})
	t.reassignKeys()
}

// RecomputeLocalFrequencies overwrites each entry's WordNoOfSources with
// the count of entries sharing its WordID within this table — the local
// recount spec §4.4 step 2 requires before a branch's table is sorted.
func (t *WordRankTable) RecomputeLocalFrequencies() {
	counts := make(map[int]int, len(t.entries))
	for _, sw := range t.entries {
		counts[sw.WordID]++
	}
	for i := range t.entries {
		t.entries[i].WordNoOfSources = counts[t.entries[i].WordID]
	}
}

// Clone returns a deep copy: mutating the clone never affects t, and
// vice versa.
func (t *WordRankTable) Clone() *WordRankTable {
	c := &WordRankTable{entries: make([]SourceWord, len(t.entries))}
	copy(c.entries, t.entries)
	return c
}
