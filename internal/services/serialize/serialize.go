// Package serialize adapts hkt.Result to and from the JSON shape
// spec.md §6 documents for downstream persistence and tooling. The
// algorithm core performs no I/O of its own; this package is the thin
// boundary that does, the same way the teacher marshals models.Document
// in leveldb.go and fts_kv.go.
package serialize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"hkt-hw/internal/domain/models"
	"hkt-hw/internal/hkt"
)

// Forest renders a completed build into spec.md §6's JSON document.
func Forest(result *hkt.Result) ([]byte, error) {
	doc := models.ForestDocument{
		Stats: models.StatsDocument{
			NumberLoaded:               result.Stats.NumberLoaded,
			NumberAcceptedSources:      result.Stats.NumberAcceptedSources,
			NumberOfWords:              result.Stats.NumberOfWords,
			UpdateSourceWordRelationDB: result.Stats.UpdateSourceWordRelationDB,
			NumberOfHKTs:               result.Stats.NumberOfHKTs,
			NumberOfNodes:              result.Stats.NumberOfNodes,
		},
		HKTs:     make(map[string]models.HKTDocument, len(result.HKTs)),
		WordDict: make(map[string]string, len(result.Words)),
	}

	for id, h := range result.HKTs {
		nodes := make([]models.NodeDocument, 0, len(h.Nodes))
		for _, n := range h.Nodes {
			nodes = append(nodes, models.NodeDocument{
				NodeID:    n.NodeID,
				WordIDs:   sortedIntKeys(n.WordIDs),
				SourceIDs: sortedIntKeys(n.SourceIDs),
				TopWords:  append([]int(nil), n.TopWords...),
			})
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].NodeID < nodes[j].NodeID })

		doc.HKTs[strconv.Itoa(id)] = models.HKTDocument{
			HKTID:        h.HKTID,
			ParentNodeID: h.ParentNodeID,
			Nodes:        nodes,
		}
	}

	for id, w := range result.Words {
		doc.WordDict[strconv.Itoa(id)] = w
	}

	return json.Marshal(doc)
}

// Parse reconstructs the indices serialize.Forest produced. It does not
// attempt to reconstruct result.Sources, which spec.md §6 never
// documents as part of the wire shape.
func Parse(data []byte) (*hkt.Result, error) {
	var doc models.ForestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("serialize.Parse: %w", err)
	}

	res := &hkt.Result{
		HKTs:  make(map[int]*hkt.HKT, len(doc.HKTs)),
		Nodes: make(map[int]*hkt.Node),
		Words: make(map[int]string, len(doc.WordDict)),
		Stats: hkt.Stats{
			NumberLoaded:               doc.Stats.NumberLoaded,
			NumberAcceptedSources:      doc.Stats.NumberAcceptedSources,
			NumberOfWords:              doc.Stats.NumberOfWords,
			UpdateSourceWordRelationDB: doc.Stats.UpdateSourceWordRelationDB,
			NumberOfHKTs:               doc.Stats.NumberOfHKTs,
			NumberOfNodes:              doc.Stats.NumberOfNodes,
		},
	}

	for idStr, w := range doc.WordDict {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("serialize.Parse: bad word id %q: %w", idStr, err)
		}
		res.Words[id] = w
	}

	for idStr, hd := range doc.HKTs {
		hktID, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("serialize.Parse: bad hkt id %q: %w", idStr, err)
		}

		h := &hkt.HKT{
			HKTID:        hd.HKTID,
			ParentNodeID: hd.ParentNodeID,
			Nodes:        make([]*hkt.Node, 0, len(hd.Nodes)),
		}
		for _, nd := range hd.Nodes {
			n := &hkt.Node{
				NodeID:    nd.NodeID,
				HKTID:     hktID,
				WordIDs:   toIntSet(nd.WordIDs),
				SourceIDs: toIntSet(nd.SourceIDs),
				TopWords:  append([]int(nil), nd.TopWords...),
			}
			h.Nodes = append(h.Nodes, n)
			res.Nodes[n.NodeID] = n
		}
		res.HKTs[hktID] = h
	}

	return res, nil
}

func sortedIntKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func toIntSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
