package knuthplass

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/npillmayer/parabreak/khipu"
	"github.com/npillmayer/parabreak/linebreak"
)

// fbGraph is the breakpoint DAG the Feasibility Engine constructs while
// scanning a paragraph: nodes are feasible breakpoints, edges are candidate
// lines, labelled with the line-count they would produce.
type fbGraph struct {
	nodes map[int64]*feasibleBreakpoint // indexed by text position
	edges *arraylist.List               // of *kpEdge
}

func newFBGraph() *fbGraph {
	return &fbGraph{
		nodes: make(map[int64]*feasibleBreakpoint),
		edges: arraylist.New(),
	}
}

// kpEdge is a candidate line between two feasible breakpoints.
type kpEdge struct {
	from, to  *feasibleBreakpoint
	cost      linebreak.Merits
	totalcost linebreak.Merits
	linecount int32
}

func (e *kpEdge) isNull() bool {
	return e == nil
}

// edgeList is a filterable slice of edges, returned by EdgesTo.
type edgeList []*kpEdge

// WithLabel narrows an edgeList to edges carrying a given line-count label.
func (el edgeList) WithLabel(linecnt int32) edgeList {
	var r edgeList
	for _, e := range el {
		if e.linecount == linecnt {
			r = append(r, e)
		}
	}
	return r
}

// Add registers a feasible breakpoint as a node of the graph.
func (g *fbGraph) Add(fb *feasibleBreakpoint) *feasibleBreakpoint {
	g.nodes[fb.mark.Position()] = fb
	return fb
}

// Breakpoint looks up the feasible breakpoint already registered at a text
// position, returning nil if none exists yet.
func (g *fbGraph) Breakpoint(pos int64) *feasibleBreakpoint {
	return g.nodes[pos]
}

// AddEdge records a candidate line from -> to, labelled with the line-count
// it would produce.
func (g *fbGraph) AddEdge(from, to *feasibleBreakpoint, cost, totalcost linebreak.Merits,
	linecnt int32) *kpEdge {
	e := &kpEdge{from: from, to: to, cost: cost, totalcost: totalcost, linecount: linecnt}
	g.edges.Add(e)
	return e
}

// RemoveEdge discards the (unique, with pruning) edge from -> to labelled
// linecnt.
func (g *fbGraph) RemoveEdge(from, to *feasibleBreakpoint, linecnt int32) {
	values := g.edges.Values()
	kept := arraylist.New()
	for _, v := range values {
		e := v.(*kpEdge)
		if e.from == from && e.to == to && e.linecount == linecnt {
			continue
		}
		kept.Add(e)
	}
	g.edges = kept
}

// EdgesTo returns all edges ending at fb, of any line-count label.
func (g *fbGraph) EdgesTo(fb *feasibleBreakpoint) edgeList {
	var r edgeList
	for _, v := range g.edges.Values() {
		e := v.(*kpEdge)
		if e.to == fb {
			r = append(r, e)
		}
	}
	return r
}

// Edge returns the (with pruning: unique) edge from -> to labelled linecnt,
// or a zero-cost synthetic edge if none is found.
func (g *fbGraph) Edge(from, to *feasibleBreakpoint, linecnt int32) *kpEdge {
	for _, v := range g.edges.Values() {
		e := v.(*kpEdge)
		if e.from == from && e.to == to && e.linecount == linecnt {
			return e
		}
	}
	return &kpEdge{from: from, to: to, linecount: linecnt}
}

// StartOfEdge returns an edge's origin node.
func (g *fbGraph) StartOfEdge(e *kpEdge) *feasibleBreakpoint {
	if e == nil {
		return nil
	}
	return e.from
}

// toGraphViz dumps every edge of the breakpoint graph in DOT format,
// followed by one comment line per line-count variant listing its break
// marks (debugging / illustration aid).
func (g *fbGraph) toGraphViz(cursor *khipu.Cursor, breaks map[int32][]khipu.Mark, w io.Writer) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "  rankdir=LR;")
	for _, v := range g.edges.Values() {
		e := v.(*kpEdge)
		fmt.Fprintf(w, "  \"%d\" -> \"%d\" [label=\"#%d/%d\"];\n",
			e.from.mark.Position(), e.to.mark.Position(), e.linecount, e.cost)
	}
	for linecnt, marks := range breaks {
		fmt.Fprintf(w, "  // variant with %d lines: %v\n", linecnt, marks)
	}
	fmt.Fprintln(w, "}")
}
