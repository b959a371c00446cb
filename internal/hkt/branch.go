package hkt

import "sort"

const topWordsLimit = 10

// createBranches implements the branch recursor (spec §4.4). For every
// node of parentHKT above the branch threshold, it recomputes a local
// word-rank table restricted to that node's sources (excluding words
// already assigned to the node, unless it is a refuge node), populates
// the node's top_words, and recurses create_hkt on the residual
// vocabulary, linking any produced child HKT back to the node.
func (e *engine) createBranches(parentHKT *HKT, mainTable *WordRankTable, params Params) {
	for _, n := range parentHKT.Nodes {
		if len(n.SourceIDs) <= params.MinimumSourcesBranch {
			continue
		}

		refuge := n.IsRefuge()
		var filtered []SourceWord
		for _, sw := range mainTable.Entries() {
			if _, inScope := n.SourceIDs[sw.SourceID]; !inScope {
				continue
			}
			if !refuge {
				if _, excluded := n.WordIDs[sw.WordID]; excluded {
					continue
				}
			}
			filtered = append(filtered, sw)
		}

		localTable := newWordRankTable(filtered)
		localTable.RecomputeLocalFrequencies()
		localTable.SortByFrequencyDesc()

		e.populateTopWords(n, localTable)

		if localTable.Len() == 0 {
			continue
		}

		working := localTable.Clone()
		child := e.createHKT(working, n.NodeID, params)
		if child == nil {
			continue
		}
		e.registerHKT(child)
		e.createBranches(child, localTable, params)
	}
}

// populateTopWords implements spec §4.4 step 4. Non-refuge nodes first
// contribute their own word ids (in ascending order, for a deterministic
// display list), then the local table's descending-frequency order fills
// the rest, skipping duplicates, until 10 ids are collected. Refuge
// nodes skip the first copy step entirely — only the local table's
// ranking (if any) contributes, per spec §9.
func (e *engine) populateTopWords(n *Node, localTable *WordRankTable) {
	if !n.IsRefuge() {
		ids := make([]int, 0, len(n.WordIDs))
		for w := range n.WordIDs {
			ids = append(ids, w)
		}
		sort.Ints(ids)
		n.TopWords = append(n.TopWords, ids...)
	}

	present := make(map[int]struct{}, len(n.TopWords))
	for _, w := range n.TopWords {
		present[w] = struct{}{}
	}

	for _, sw := range localTable.Entries() {
		if len(n.TopWords) >= topWordsLimit {
			break
		}
		if _, ok := present[sw.WordID]; ok {
			continue
		}
		present[sw.WordID] = struct{}{}
		n.TopWords = append(n.TopWords, sw.WordID)
	}
}
