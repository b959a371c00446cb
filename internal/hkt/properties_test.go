package hkt

import "testing"

// a moderately sized corpus exercising seeding, folding, branching and
// refuge all in one run, used by the property tests below.
func propertyCorpus() map[int]Source {
	return mkSources(map[int][]string{
		1:  {"cat", "feline", "pet"},
		2:  {"cat", "feline", "pet"},
		3:  {"cat", "feline"},
		4:  {"cat", "dog"},
		5:  {"dog", "pet"},
		6:  {"dog", "pet"},
		7:  {"dog"},
		8:  {"bird"},
		9:  {"cat", "bird"},
		10: {"fish"},
	})
}

func buildProperty(t *testing.T) *Result {
	t.Helper()
	res, err := Build(propertyCorpus(), defaultScenarioParams())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return res
}

// Property 1 & 2: every node is registered under its own id, and
// hkt_id/node_id form a contiguous range starting at 1.
func TestPropertyContiguousIDs(t *testing.T) {
	res := buildProperty(t)

	for id, h := range res.HKTs {
		if h.HKTID != id {
			t.Fatalf("hkt stored under mismatched key %d vs %d", id, h.HKTID)
		}
	}
	for i := 1; i <= len(res.HKTs); i++ {
		if _, ok := res.HKTs[i]; !ok {
			t.Fatalf("hkt_id range is not contiguous from 1, missing %d", i)
		}
	}

	for id, n := range res.Nodes {
		if n.NodeID != id {
			t.Fatalf("node stored under mismatched key %d vs %d", id, n.NodeID)
		}
		if res.Nodes[n.NodeID] != n {
			t.Fatalf("node %d is not the same object in the index", n.NodeID)
		}
	}
	for i := 1; i <= len(res.Nodes); i++ {
		if _, ok := res.Nodes[i]; !ok {
			t.Fatalf("node_id range is not contiguous from 1, missing %d", i)
		}
	}
}

// Property 3: every non-root HKT's parent_node_id resolves in nodeDS.
func TestPropertyParentNodeResolves(t *testing.T) {
	res := buildProperty(t)
	for _, h := range res.HKTs {
		if h.ParentNodeID == 0 {
			continue
		}
		if _, ok := res.Nodes[h.ParentNodeID]; !ok {
			t.Fatalf("hkt %d has dangling parent_node_id %d", h.HKTID, h.ParentNodeID)
		}
	}
}

// Property 4: a node containing the refuge sentinel carries it
// exclusively.
func TestPropertyRefugeWordIDsExclusive(t *testing.T) {
	res := buildProperty(t)
	for _, n := range res.Nodes {
		if n.IsRefuge() && len(n.WordIDs) != 1 {
			t.Fatalf("refuge node %d has extra word ids: %v", n.NodeID, n.WordIDs)
		}
	}
}

// Property 5: within one HKT, the union of node source_ids equals the
// full set of sources present in that HKT's starting scope (no source
// is silently dropped). For the root HKT that scope is every input
// source with at least one vocabulary word.
func TestPropertyNoSourceDropped(t *testing.T) {
	res := buildProperty(t)

	var root *HKT
	for _, h := range res.HKTs {
		if h.ParentNodeID == 0 {
			root = h
		}
	}
	if root == nil {
		t.Fatalf("expected a root HKT")
	}

	covered := make(map[int]struct{})
	for _, n := range root.Nodes {
		for sid := range n.SourceIDs {
			covered[sid] = struct{}{}
		}
	}

	for sid := range res.Sources {
		if _, ok := covered[sid]; !ok {
			t.Fatalf("source %d missing from root HKT's nodes", sid)
		}
	}
}

// Property 8: running Build twice on identical input returns
// structurally equal forests.
func TestPropertyDeterministicAcrossRuns(t *testing.T) {
	corpus := propertyCorpus()
	a, err := Build(corpus, defaultScenarioParams())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b, err := Build(corpus, defaultScenarioParams())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if a.Stats != b.Stats {
		t.Fatalf("stats differ across runs: %+v vs %+v", a.Stats, b.Stats)
	}
	if len(a.HKTs) != len(b.HKTs) || len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("forest shape differs across runs")
	}
	for id, na := range a.Nodes {
		nb, ok := b.Nodes[id]
		if !ok {
			t.Fatalf("node %d present in run a but missing in run b", id)
		}
		if !sameIntSet(na.WordIDs, nb.WordIDs) {
			t.Fatalf("node %d word_ids differ: %v vs %v", id, na.WordIDs, nb.WordIDs)
		}
		if !sameIntSet(na.SourceIDs, nb.SourceIDs) {
			t.Fatalf("node %d source_ids differ: %v vs %v", id, na.SourceIDs, nb.SourceIDs)
		}
	}
}

func sameIntSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Boundary property 12: minimum_sources_branch >= |sources| yields
// exactly one HKT with no children.
func TestPropertyHighBranchThresholdYieldsOnlyRoot(t *testing.T) {
	sources := propertyCorpus()
	params := defaultScenarioParams()
	params.MinimumSourcesBranch = len(sources)

	res, err := Build(sources, params)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if res.Stats.NumberOfHKTs != 1 {
		t.Fatalf("NumberOfHKTs = %d, want 1", res.Stats.NumberOfHKTs)
	}
}

// Boundary property 11: with similarity_threshold = 1.0, a node only
// absorbs a word if its existing source set is a subset of the word's
// source set: a strictly smaller overlap always spawns a new node.
func TestPropertySimilarityThresholdOneForcesNewNodes(t *testing.T) {
	sources := mkSources(map[int][]string{
		1: {"a", "b"},
		2: {"a"},
	})
	params := defaultScenarioParams()
	params.SimilarityThreshold = 1.0
	// disable branching so this test isolates root-level folding only —
	// the seed node for "a" (size 2) would otherwise itself qualify for
	// a branch pass that rediscovers "b" locally, changing the node count.
	params.MinimumSourcesBranch = len(sources)

	res, err := Build(sources, params)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// seed node for "a" covers {1,2}; "b"'s source set is {1}, so the
	// node is not a subset of it: overlap 1 over node size 2 => 1/2 < 1.0,
	// so "b" must form its own node.
	if res.Stats.NumberOfNodes != 2 {
		t.Fatalf("NumberOfNodes = %d, want 2", res.Stats.NumberOfNodes)
	}
}
