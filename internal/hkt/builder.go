package hkt

// expectedWords implements spec §4.3 step 1: it walks table (already
// sorted by descending word_no_of_sources) and collects word ids whose
// ratio against the maximum count meets the threshold, stopping at the
// first entry that falls below it. This early-exit is intentional: the
// table's sort order makes a full scan redundant, but the exit itself
// must be preserved rather than replaced with a filter over the whole
// table (spec §9).
func expectedWords(table *WordRankTable, threshold float64) []int {
	entries := table.Entries()
	if len(entries) == 0 {
		return nil
	}

	maximum := entries[0].WordNoOfSources
	if maximum == 0 {
		return nil
	}

	var out []int
	seen := make(map[int]struct{})
	for _, sw := range entries {
		ratio := float64(sw.WordNoOfSources) / float64(maximum)
		if ratio < threshold {
			break
		}
		if _, ok := seen[sw.WordID]; ok {
			continue
		}
		seen[sw.WordID] = struct{}{}
		out = append(out, sw.WordID)
	}
	return out
}

// removeFromExpectedWords returns expected with wordID's first
// occurrence removed, preserving order.
func removeFromExpectedWords(expected []int, wordID int) []int {
	for i, w := range expected {
		if w == wordID {
			return append(expected[:i:i], expected[i+1:]...)
		}
	}
	return expected
}

// createHKT implements the HKT builder (spec §4.3). It mutates table in
// place (the working table), consuming it as it folds and seeds nodes,
// and returns nil if no expected word can be found.
func (e *engine) createHKT(table *WordRankTable, parentNodeID int, params Params) *HKT {
	expected := expectedWords(table, params.MinimumThresholdAgainstMaxWordCount)
	if len(expected) == 0 {
		return nil
	}

	hktID := e.nextHKTID()
	h := &HKT{
		HKTID:         hktID,
		ParentNodeID:  parentNodeID,
		ExpectedWords: expected,
	}

	// Step 2 — seed node for the most frequent word.
	first, _ := table.First()
	seedWordID := first.WordID
	seed := e.newNode(hktID, seedWordID, table.SourceIDsForWord(seedWordID))
	h.Nodes = append(h.Nodes, seed)
	e.registerNode(seed)

	table.DeleteByWordID(seedWordID)
	expected = removeFromExpectedWords(expected, seedWordID)

	// Step 3 — fold remaining expected words by source-set similarity.
	for _, w := range expected {
		sw := table.SourceIDsForWord(w)

		var best *Node
		bestScore := -1.0
		for _, n := range h.Nodes {
			if len(n.SourceIDs) == 0 {
				continue
			}
			score := overlapScore(n.SourceIDs, sw)
			if score >= params.SimilarityThreshold && score > bestScore {
				bestScore = score
				best = n
			}
		}

		if best != nil {
			best.WordIDs[w] = struct{}{}
			for sid := range sw {
				best.SourceIDs[sid] = struct{}{}
			}
		} else {
			n := e.newNode(hktID, w, sw)
			h.Nodes = append(h.Nodes, n)
			e.registerNode(n)
		}

		table.DeleteByWordID(w)
	}

	// Step 4 — collect sources not covered by any regular node as refuge.
	covered := make(map[int]struct{})
	for _, n := range h.Nodes {
		for sid := range n.SourceIDs {
			covered[sid] = struct{}{}
		}
	}
	var refuge map[int]struct{}
	for _, sw := range table.Entries() {
		if _, ok := covered[sw.SourceID]; !ok {
			if refuge == nil {
				refuge = make(map[int]struct{})
			}
			refuge[sw.SourceID] = struct{}{}
		}
	}
	if len(refuge) > 0 {
		n := e.newRefugeNode(hktID, refuge)
		h.Nodes = append(h.Nodes, n)
		e.registerNode(n)
	}

	return h
}

// overlapScore computes |nodeSources ∩ wordSources| / |nodeSources| —
// the asymmetric similarity measure spec §4.3 and §9 call for. It is
// deliberately not Jaccard: the denominator favors absorption into
// already-large nodes.
func overlapScore(nodeSources, wordSources map[int]struct{}) float64 {
	if len(nodeSources) == 0 {
		return 0
	}
	inter := 0
	for sid := range nodeSources {
		if _, ok := wordSources[sid]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(nodeSources))
}

func (e *engine) newNode(hktID, wordID int, sourceIDs map[int]struct{}) *Node {
	return &Node{
		NodeID:    e.nextNodeID(),
		HKTID:     hktID,
		WordIDs:   map[int]struct{}{wordID: {}},
		SourceIDs: sourceIDs,
	}
}

func (e *engine) newRefugeNode(hktID int, sourceIDs map[int]struct{}) *Node {
	return &Node{
		NodeID:    e.nextNodeID(),
		HKTID:     hktID,
		WordIDs:   map[int]struct{}{RefugeWordID: {}},
		SourceIDs: sourceIDs,
	}
}
