package hkt

import "fmt"

// Build runs the full HKT construction pipeline: vocabulary indexing,
// root word-rank table, root HKT, and recursive branching. It is a pure,
// synchronous, single-threaded computation — see package doc and spec
// §5. Distinct Build calls over distinct inputs are independent and may
// run concurrently; nothing inside one call may be parallelized without
// perturbing the deterministic id assignment spec §9 requires.
func Build(sources map[int]Source, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := validateSources(sources); err != nil {
		return nil, err
	}

	e := newEngine()

	if len(sources) == 0 {
		return &Result{
			HKTs:    e.hkts,
			Nodes:   e.nodes,
			Words:   map[int]string{},
			Sources: map[int]Source{},
			Stats:   Stats{},
		}, nil
	}

	vocab := indexVocabulary(sources, params.MinimumSourcesImportant)

	root := vocab.sourceWords
	mainTable := newWordRankTable(root)
	mainTable.SortByFrequencyDesc()
	workingTable := mainTable.Clone()

	rootHKT := e.createHKT(workingTable, 0, params)
	if rootHKT != nil {
		e.registerHKT(rootHKT)
		e.createBranches(rootHKT, mainTable, params)
	}

	if err := checkInvariants(e, sources); err != nil {
		return nil, err
	}

	srcCopy := make(map[int]Source, len(sources))
	for id, s := range sources {
		srcCopy[id] = s
	}

	return &Result{
		HKTs:    e.hkts,
		Nodes:   e.nodes,
		Words:   vocab.words,
		Sources: srcCopy,
		Stats: Stats{
			NumberLoaded:               len(sources),
			NumberAcceptedSources:      len(sources),
			NumberOfWords:              vocab.numberOfWords,
			UpdateSourceWordRelationDB: len(vocab.sourceWords),
			NumberOfHKTs:               len(e.hkts),
			NumberOfNodes:              len(e.nodes),
		},
	}, nil
}

// validateSources enforces spec §7's InvalidSource rule: every source
// id must be positive, and map keys already guarantee uniqueness, so
// this only needs to check that the key matches the source's own id and
// that it is positive — guarding against a caller constructing the map
// with a mismatched SourceID.
func validateSources(sources map[int]Source) error {
	for id, s := range sources {
		if s.SourceID <= 0 {
			return fmt.Errorf("%w: source_id must be positive, got %d", ErrInvalidSource, s.SourceID)
		}
		if s.SourceID != id {
			return fmt.Errorf("%w: source map key %d does not match source_id %d", ErrInvalidSource, id, s.SourceID)
		}
	}
	return nil
}

// checkInvariants re-validates the post-conditions spec §3 and §8
// demand. It never fires for valid input; if it does, that is a defect
// in this package, surfaced rather than swallowed.
func checkInvariants(e *engine, sources map[int]Source) error {
	for hktID, h := range e.hkts {
		if h.HKTID != hktID {
			return fmt.Errorf("%w: hkt %d stored under mismatched key", ErrInternalInvariantViolation, hktID)
		}
		if h.ParentNodeID != 0 {
			if _, ok := e.nodes[h.ParentNodeID]; !ok {
				return fmt.Errorf("%w: hkt %d has dangling parent_node_id %d", ErrInternalInvariantViolation, hktID, h.ParentNodeID)
			}
		}
		for _, n := range h.Nodes {
			stored, ok := e.nodes[n.NodeID]
			if !ok || stored != n {
				return fmt.Errorf("%w: node %d of hkt %d missing from node index", ErrInternalInvariantViolation, n.NodeID, hktID)
			}
			if n.IsRefuge() {
				if len(n.WordIDs) != 1 {
					return fmt.Errorf("%w: refuge node %d carries extra word ids", ErrInternalInvariantViolation, n.NodeID)
				}
				if len(n.SourceIDs) == 0 {
					return fmt.Errorf("%w: refuge node %d has no sources", ErrInternalInvariantViolation, n.NodeID)
				}
			} else {
				for w := range n.WordIDs {
					if w <= 0 {
						return fmt.Errorf("%w: non-refuge node %d carries non-positive word id %d", ErrInternalInvariantViolation, n.NodeID, w)
					}
				}
			}
			for sid := range n.SourceIDs {
				if _, ok := sources[sid]; !ok {
					return fmt.Errorf("%w: node %d references unknown source %d", ErrInternalInvariantViolation, n.NodeID, sid)
				}
			}
		}
	}
	return nil
}
