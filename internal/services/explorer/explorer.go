// Package explorer is a read-only terminal browser over a computed
// hkt.Result, adapted from the teacher's search-box-and-results-pane
// CUI into a left pane of HKTs and a right pane of the selected HKT's
// nodes.
package explorer

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jroimartin/gocui"

	"hkt-hw/internal/hkt"
	"hkt-hw/internal/lib/logger/sl"
)

// refugeLabel is what the original system's Streamlit dashboard
// (app.py) renders for a node whose word_ids carry only the refuge
// sentinel, instead of joining word names.
const refugeLabel = "<refuge>"

type Explorer struct {
	cui        *gocui.Gui
	result     *hkt.Result
	log        *slog.Logger
	hktIDs     []int
	selectedAt int
}

func New(log *slog.Logger, result *hkt.Result) (*Explorer, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("explorer: failed to create gui: %w", err)
	}

	ids := make([]int, 0, len(result.HKTs))
	for id := range result.HKTs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return &Explorer{cui: g, result: result, log: log, hktIDs: ids}, nil
}

func (e *Explorer) Close() {
	e.cui.Close()
}

func (e *Explorer) Start() error {
	e.cui.Cursor = true
	e.cui.SetManagerFunc(e.layout)
	defer e.cui.Close()

	if err := e.cui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		e.log.Error("Failed to set keybinding", "error", sl.Err(err))
	}
	if err := e.cui.SetKeybinding("hkts", gocui.KeyArrowDown, gocui.ModNone, e.selectNext); err != nil {
		e.log.Error("Failed to set keybinding", "error", sl.Err(err))
	}
	if err := e.cui.SetKeybinding("hkts", gocui.KeyArrowUp, gocui.ModNone, e.selectPrev); err != nil {
		e.log.Error("Failed to set keybinding", "error", sl.Err(err))
	}
	if err := e.cui.SetKeybinding("jump", gocui.KeyEnter, gocui.ModNone, e.jumpToNode); err != nil {
		e.log.Error("Failed to set keybinding", "error", sl.Err(err))
	}
	if err := e.cui.SetKeybinding("", gocui.KeyTab, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
		if g.CurrentView().Name() == "hkts" {
			_, _ = g.SetCurrentView("jump")
		} else {
			_, _ = g.SetCurrentView("hkts")
		}
		return nil
	}); err != nil {
		e.log.Error("Failed to set keybinding", "error", sl.Err(err))
	}

	if err := e.cui.MainLoop(); err != nil && err != gocui.ErrQuit {
		e.log.Error("Failed to run GUI", "error", sl.Err(err))
	}

	return nil
}

func (e *Explorer) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX < 10 || maxY < 6 {
		return fmt.Errorf("terminal window is too small")
	}

	if v, err := g.SetView("hkts", 0, 0, maxX/4, maxY-4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "HKTs"
		v.Wrap = true
		_, _ = g.SetCurrentView("hkts")
	}

	if v, err := g.SetView("jump", 0, maxY-3, maxX/4, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Editable = true
		v.Title = "Jump to node_id"
		v.Wrap = true
	}

	if v, err := g.SetView("nodes", maxX/4+1, 0, maxX-2, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Nodes"
		v.Wrap = true
	}

	return e.render(g)
}

func (e *Explorer) render(g *gocui.Gui) error {
	hktsView, err := g.View("hkts")
	if err != nil {
		return err
	}
	hktsView.Clear()
	for i, id := range e.hktIDs {
		marker := "  "
		if i == e.selectedAt {
			marker = "> "
		}
		h := e.result.HKTs[id]
		fmt.Fprintf(hktsView, "%shkt %d (parent node %d)\n", marker, h.HKTID, h.ParentNodeID)
	}

	nodesView, err := g.View("nodes")
	if err != nil {
		return err
	}
	nodesView.Clear()
	if len(e.hktIDs) == 0 {
		fmt.Fprintln(nodesView, "no HKTs in this forest")
		return nil
	}

	h := e.result.HKTs[e.hktIDs[e.selectedAt]]
	for _, n := range h.Nodes {
		fmt.Fprintf(nodesView, "node %d: %s (sources=%d)\n", n.NodeID, e.nodeLabel(n), len(n.SourceIDs))
		if len(n.TopWords) > 0 {
			fmt.Fprintf(nodesView, "  top_words: %s\n", e.wordList(n.TopWords))
		}
	}
	return nil
}

// nodeLabel reproduces the original Streamlit dashboard's rendering
// rule (app.py): join word names for every positive word_id, or fall
// back to "<refuge>" when the node carries only the sentinel.
func (e *Explorer) nodeLabel(n *hkt.Node) string {
	if n.IsRefuge() {
		return refugeLabel
	}
	ids := make([]int, 0, len(n.WordIDs))
	for id := range n.WordIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, e.result.Words[id])
	}
	return strings.Join(names, ", ")
}

func (e *Explorer) wordList(ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, e.result.Words[id])
	}
	return strings.Join(names, ", ")
}

func (e *Explorer) selectNext(g *gocui.Gui, v *gocui.View) error {
	if e.selectedAt < len(e.hktIDs)-1 {
		e.selectedAt++
	}
	return e.render(g)
}

func (e *Explorer) selectPrev(g *gocui.Gui, v *gocui.View) error {
	if e.selectedAt > 0 {
		e.selectedAt--
	}
	return e.render(g)
}

func (e *Explorer) jumpToNode(g *gocui.Gui, v *gocui.View) error {
	text := strings.TrimSpace(v.Buffer())
	nodeID, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}

	node, ok := e.result.Nodes[nodeID]
	if !ok {
		return nil
	}
	for i, id := range e.hktIDs {
		if id == node.HKTID {
			e.selectedAt = i
			break
		}
	}
	return e.render(g)
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
