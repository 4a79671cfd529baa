/*
Package knuthplass implements the Knuth/Plass dynamic-programming paragraph
line-breaking algorithm: a Feasibility Engine that scans a khipu, maintaining
a horizon of active feasible breakpoints, and selects the set of breaks with
least total demerits.

Computers & Typesetting, Vol. A & C.
http://www-cs-faculty.stanford.edu/~knuth/abcde.html

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package knuthplass

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
	"github.com/npillmayer/parabreak/linebreak"
)

// linebreaker is an internal entity for K&P-linebreaking.
type linebreaker struct {
	*fbGraph
	horizon          *activeFeasibleBreakpoints // horizon of possible linebreaks
	params           *linebreak.Parameters      // typesetting parameters relevant for line-breaking
	parshape         linebreak.ParShape         // target shape of the paragraph
	root             *feasibleBreakpoint        // "break" at start of paragraph
	end              *feasibleBreakpoint        // "break" at end of paragraph
	tolerance        linebreak.Merits           // effective tolerance for the current pass
	allowDisc        bool                       // whether discretionaries are breakpoints this pass
	emergencyStretch dimen.DU                   // extra stretch granted this pass
}

func newLinebreaker(parshape linebreak.ParShape, params *linebreak.Parameters) *linebreaker {
	kp := &linebreaker{}
	kp.fbGraph = newFBGraph()
	kp.horizon = newActiveFeasibleBreakpoints()
	kp.parshape = parshape
	if params == nil {
		params = linebreak.DefaultParameters
	}
	kp.params = params
	kp.tolerance = params.Tolerance
	kp.allowDisc = true
	return kp
}

func setupLinebreaker(cursor linebreak.Cursor, parshape linebreak.ParShape,
	params *linebreak.Parameters) (*linebreaker, error) {
	if parshape == nil {
		return nil, errors.New("cannot shape a paragraph without a ParShape")
	}
	kp := newLinebreaker(parshape, params)
	fb := kp.newBreakpointAtMark(provisionalMark(-1)) // start of paragraph
	fb.books[0] = &bookkeeping{}
	kp.root = fb       // remember the start breakpoint as root of the graph
	kp.horizon.Add(fb) // this is the first 'active node' of horizon
	return kp, nil
}

// --- Horizon (active Nodes) ------------------------------------------------

type activeFeasibleBreakpoints struct {
	*hashset.Set               // a set of feasible breakpoints
	values       []interface{} // holds breakpoints during iteration
	iterinx      int           // current iteration index
}

func newActiveFeasibleBreakpoints() *activeFeasibleBreakpoints {
	set := hashset.New()
	return &activeFeasibleBreakpoints{set, nil, -1}
}

// first starts iteration over the feasible breakpoints of the current horizon.
func (h *activeFeasibleBreakpoints) first() *feasibleBreakpoint {
	var fb *feasibleBreakpoint
	if h.Size() > 0 {
		h.values = h.Values()
		fb = h.values[0].(*feasibleBreakpoint)
		h.iterinx = 1
	}
	return fb
}

// next gets the next feasible breakpoint of the current horizon.
func (h *activeFeasibleBreakpoints) next() *feasibleBreakpoint {
	var fb *feasibleBreakpoint
	if h.values != nil && h.iterinx < len(h.values) {
		fb = h.values[h.iterinx].(*feasibleBreakpoint)
		h.iterinx++
	}
	return fb
}

// --- Breakpoints -----------------------------------------------------------

// fitClass classifies how tightly a candidate line's glue must stretch or
// shrink to reach its target length, the way TeX's §852 does.
type fitClass int8

const (
	classDecent fitClass = iota
	classLoose
	classVeryLoose
	classTight
)

// A feasible breakpoint is uniquely identified by a text position (mark). A
// break position may be selectable for different line counts, and we retain
// all of them; different line-count paths usually have different costs.
type feasibleBreakpoint struct {
	mark  khipu.Mark             // location of this breakpoint
	books map[int32]*bookkeeping // bookkeeping per linecount
}

type bookkeeping struct {
	segment      linebreak.WSS    // sum of widths from this breakpoint up to current knot
	totalcost    linebreak.Merits // sum of costs for segment up to this breakpoint
	startDiscard linebreak.WSS    // sum of discardable space at start of segment / line
	breakDiscard linebreak.WSS    // sum of discardable space while looking for next breakpoint
	hasContent   bool             // does this segment contain non-discardable item?
	fit          fitClass         // fit class of the line ending at this breakpoint
	hyphenated   bool             // did the line end in a discretionary hyphen?
}

type cost struct {
	badness    linebreak.Merits // 0 <= b <= 10000
	demerits   linebreak.Merits // -10000 <= d <= 10000
	fit        fitClass
	hyphenated bool
}

type provisionalMark int64 // provisional mark from an integer position

func (m provisionalMark) Position() int64  { return int64(m) }
func (m provisionalMark) Knot() khipu.Knot { return khipu.Penalty(-10000) }

func (fb *feasibleBreakpoint) String() string {
	if fb.mark == nil || fb.mark.Position() < 0 {
		return "<para-start>"
	}
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("<fb %d/%v", fb.mark.Position(), fb.mark.Knot()))
	b.WriteString("{")
	for l, book := range fb.books {
		b.WriteString(fmt.Sprintf(" %d:c=%d", l, book.totalcost))
	}
	b.WriteString(" }>")
	return b.String()
}

func (fb *feasibleBreakpoint) UpdateSegmentBookkeeping(mark khipu.Mark) {
	wss := linebreak.WSS{}.SetFromKnot(mark.Knot())
	for _, book := range fb.books {
		book.segment = book.segment.Add(wss)
		if book.hasContent {
			if mark.Knot().IsDiscardable() {
				book.breakDiscard = book.breakDiscard.Add(wss)
			} else {
				book.breakDiscard = linebreak.WSS{}
			}
		} else {
			if mark.Knot().IsDiscardable() {
				book.startDiscard = book.startDiscard.Add(wss)
			} else {
				book.hasContent = true
			}
		}
		T().Debugf("extending segment to %v", book.segment)
	}
}

// newBreakpointAtMark creates a breakpoint at the given cursor position.
func (kp *linebreaker) newBreakpointAtMark(mark khipu.Mark) *feasibleBreakpoint {
	fb := &feasibleBreakpoint{
		mark:  mark,
		books: make(map[int32]*bookkeeping),
	}
	kp.Add(fb)
	return fb
}

func (kp *linebreaker) findBreakpointAtMark(mark khipu.Mark) *feasibleBreakpoint {
	if mark == nil {
		return nil
	}
	return kp.Breakpoint(mark.Position())
}

func (kp *linebreaker) findPredecessorsWithLinecount(fb *feasibleBreakpoint, linecnt int32) (
	[]*feasibleBreakpoint, error) {
	//
	var predecessors []*feasibleBreakpoint
	edges := kp.EdgesTo(fb).WithLabel(linecnt)
	for _, edge := range edges {
		if edge.isNull() {
			return nil, linebreak.NewBreakingError("line breaking", "edge found but is null, this should not happen")
		}
		from := kp.StartOfEdge(edge)
		if from == nil || from.books[linecnt-1] == nil {
			T().Errorf("books of start node is %v", from.books)
			return nil, linebreak.NewBreakingError("line breaking",
				fmt.Sprintf("edge found, but start node seems broken: %v", from))
		}
		if edge.linecount == linecnt {
			predecessors = append(predecessors, kp.StartOfEdge(edge))
		}
	}
	return predecessors, nil
}

// --- Segments ---------------------------------------------------------

// newFeasibleLine possibly creates a segment between two given breakpoints.
//
// The segment is constructed and compared to any existing segments (for the
// same line-count). If its cost is cheaper than the existing one, the new
// segment replaces the old one (just one segment between the two
// breakpoints can exist with pruning).
func (kp *linebreaker) newFeasibleLine(fb *feasibleBreakpoint, mark khipu.Mark,
	c cost, linecnt int32) (*feasibleBreakpoint, error) {
	//
	newfb := kp.findBreakpointAtMark(mark)
	if newfb == nil {
		newfb = kp.newBreakpointAtMark(mark)
	}
	targettotal := fb.books[linecnt-1].totalcost + c.demerits
	survivor, err := kp.isCheapestSurvivor(newfb, targettotal, linecnt)
	if err != nil {
		return nil, err
	}
	if survivor {
		newfb.books[linecnt] = &bookkeeping{totalcost: targettotal, fit: c.fit, hyphenated: c.hyphenated}
		kp.AddEdge(fb, newfb, c.demerits, targettotal, linecnt)
		T().Debugf("new line %v ---%d---> %v", fb, c.demerits, newfb)
	} else {
		T().Debugf("not creating line %v ---%d---> %v", fb, c.demerits, newfb)
	}
	return newfb, nil
}

// isCheapestSurvivor calculates the total cost for a new segment, and
// compares it to all existing segments. If the new segment would be
// cheaper, the others will die (pruning).
func (kp *linebreaker) isCheapestSurvivor(fb *feasibleBreakpoint, totalcost linebreak.Merits,
	linecnt int32) (bool, error) {
	//
	var predecessor *feasibleBreakpoint
	mintotal := linebreak.InfinityDemerits * 100
	T().Debugf("FB is %v, would produce line #%d", fb, linecnt)
	pp, err := kp.findPredecessorsWithLinecount(fb, linecnt)
	if err != nil {
		return false, err
	}
	if pp != nil {
		if len(pp) > 1 {
			return false, linebreak.NewBreakingError("line breaking",
				"breakpoint (with pruning) has more than one predecessor[line]")
		}
		predecessor = pp[0]
		if predecessor.books[linecnt-1] == nil {
			return false, linebreak.NewBreakingError("line breaking",
				fmt.Sprintf("predecessor breakpoint has no entry for linecount=%d", linecnt))
		}
		predCost := kp.Edge(predecessor, fb, linecnt).cost
		mintotal = predecessor.books[linecnt-1].totalcost + predCost
	}
	if totalcost < mintotal {
		if predecessor != nil {
			T().Debugf("new FB is cheaper than existing %v--->%v, remove it", predecessor, fb)
			kp.RemoveEdge(predecessor, fb, linecnt)
		}
		return true, nil
	}
	return false, nil
}

// === Algorithms ============================================================

// calculateCostsTo calculates the cost of breaking at penalty, for every
// line-count this breakpoint currently tracks a segment for. A breakpoint
// may result either in being infeasible (demerits >= infinity) or having a
// positive (demerits) or negative (merits) cost/benefit.
func (fb *feasibleBreakpoint) calculateCostsTo(penalty khipu.Penalty, discretionary bool,
	parshape linebreak.ParShape, params *linebreak.Parameters, emergencyStretch dimen.DU) (map[int32]cost, bool) {
	//
	T().Debugf("### calculateCostsTo(%v)", penalty)
	costs := make(map[int32]cost)
	cannotReachIt := 0
	for linecnt, book := range fb.books {
		linelen := parshape.LineLength(linecnt + 1)
		segwss := fb.segmentWidth(linecnt, params)
		d := linebreak.InfinityDemerits
		b := linebreak.InfinityDemerits
		fit := classDecent
		stretching := segwss.W <= linelen
		if stretching {
			segwss.Max += emergencyStretch
		}
		stsh := absD(linelen - segwss.W)
		if segwss.Min > linelen {
			cannotReachIt++
		} else {
			d, b, fit = calculateDemerits(segwss, stsh, stretching, penalty, params, book.fit, book.hyphenated, discretionary)
		}
		T().Debugf(" ## cost for line %d (b=%d) would be %s, penalty %v", linecnt+1, b,
			demeritsString(d), penalty)
		costs[linecnt] = cost{demerits: d, badness: b, fit: fit, hyphenated: discretionary}
	}
	stillreachable := cannotReachIt < len(fb.books)
	T().Debugf("### costs to %v is %v, reachable is %v", penalty, costs, stillreachable)
	return costs, stillreachable
}

// segmentWidth returns the widths of a segment at fb, subtracting
// discardable items at the start of the segment and at the end (the
// possible breakpoint), and adding left_skip/right_skip glue.
func (fb *feasibleBreakpoint) segmentWidth(linecnt int32, params *linebreak.Parameters) linebreak.WSS {
	segw := fb.books[linecnt].segment
	segw = segw.Subtract(fb.books[linecnt].startDiscard)
	segw = segw.Subtract(fb.books[linecnt].breakDiscard)
	segw = segw.Add(linebreak.WSS{}.SetFromKnot(params.LeftSkip))
	segw = segw.Add(linebreak.WSS{}.SetFromKnot(params.RightSkip))
	return segw
}

// calculateDemerits computes a line's badness and demerits following TeX's
// formula, adding double-hyphen and adjacent-fit-class demerits where
// applicable. FinalHyphenDemerits is not applied, here or elsewhere in this
// package.
func calculateDemerits(segwss linebreak.WSS, stretch dimen.DU, stretching bool, penalty khipu.Penalty,
	params *linebreak.Parameters, prevFit fitClass, prevHyphenated, discretionary bool) (
	d linebreak.Merits, b linebreak.Merits, fit fitClass) {
	//
	p := linebreak.CapDemerits(linebreak.Merits(penalty.Demerits()))
	p2 := abs(p)
	capacity := segwss.Max - segwss.W // stretchability
	if !stretching {
		capacity = segwss.W - segwss.Min // shrinkability
	}
	s, m := float64(stretch), float64(absD(capacity))
	m = maxF(1.0, m)
	sm := minF(10000.0, s/m*s/m)
	sm = sm * s / m // in total: sm = (s/m)^3
	badness := linebreak.Merits(minF(sm, 100.0) * 100.0)
	b = params.LinePenalty + badness
	fit = classifyFit(stretching, badness)
	b2 := b * b
	if p > 0 {
		d = b2 + p2
	} else {
		d = b2 - p2
	}
	if discretionary && prevHyphenated {
		d += params.DoubleHyphenDemerits
	}
	// fit classes ranked from very loose to tight, the order TeX compares them in
	rank := [...]int{classVeryLoose: 0, classLoose: 1, classDecent: 2, classTight: 3}
	if jump := rank[fit] - rank[prevFit]; jump > 1 || jump < -1 {
		d += params.AdjDemerits
	}
	d = linebreak.CapDemerits(d)
	T().Debugf("    calculating demerits for p=%d, b=%d: d=%d", p, badness, d)
	return d, badness, fit
}

// classifyFit bins a candidate line by how far its glue had to stretch or
// shrink, the way TeX's line_break does for later demerit adjustments.
func classifyFit(stretching bool, badness linebreak.Merits) fitClass {
	if stretching {
		switch {
		case badness > 99:
			return classVeryLoose
		case badness > 12:
			return classLoose
		default:
			return classDecent
		}
	}
	if badness > 12 {
		return classTight
	}
	return classDecent
}

func absFit(a, b fitClass) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func demeritsString(d linebreak.Merits) string {
	if d >= linebreak.InfinityDemerits {
		return "∞"
	} else if d <= linebreak.InfinityMerits {
		return "-∞"
	}
	return fmt.Sprintf("%d", d)
}

// penaltyAt iterates over all penalties, starting at the current cursor
// mark, and collects penalties, searching for the most significant one.
// Returns -10000 if a forced break is present, otherwise the maximum of the
// penalties found. Advances the cursor over all adjacent penalties.
func penaltyAt(cursor linebreak.Cursor) (khipu.Penalty, khipu.Mark) {
	if cursor.Knot().Type() != khipu.KTPenalty {
		return khipu.Penalty(linebreak.InfinityDemerits), cursor.Mark()
	}
	penalty := cursor.Knot().(khipu.Penalty)
	ignore := linebreak.Merits(penalty.Demerits()) <= linebreak.InfinityMerits // forced break found
	knot, ok := cursor.Peek()
	for ok {
		if knot.Type() == khipu.KTPenalty {
			cursor.Next()
			if !ignore {
				p := knot.(khipu.Penalty)
				if linebreak.Merits(p.Demerits()) <= linebreak.InfinityMerits {
					penalty = p
					ignore = true
				} else if p.Demerits() > penalty.Demerits() {
					penalty = p
				}
			}
			knot, ok = cursor.Peek()
		} else {
			ok = false
		}
	}
	p := khipu.Penalty(linebreak.CapDemerits(linebreak.Merits(penalty.Demerits())))
	return p, cursor.Mark()
}

// --- Main API ---------------------------------------------------------

// BreakParagraph determines optimal linebreaks for a paragraph, depending on
// a given set of linebreaking parameters and the desired shape of the
// paragraph.
//
// Paragraphs may be broken with different line counts; only one of these is
// optimal, and BreakParagraph returns that one (adjusted for Looseness, if
// set). For a function returning every line-count variant, see
// FindBreakpoints.
func BreakParagraph(cursor linebreak.Cursor, parshape linebreak.ParShape,
	params *linebreak.Parameters) ([]khipu.Mark, error) {
	//
	variants, breakpoints, err := FindBreakpoints(cursor, parshape, params, nil)
	if err != nil {
		return nil, err
	}
	if len(breakpoints) == 0 {
		return nil, fmt.Errorf("no breakpoints could be found for paragraph")
	}
	best := variants[0] // sorted by increasing totalcost
	if params != nil && params.Looseness != 0 {
		best = applyLooseness(variants, best, params.Looseness)
	}
	return breakpoints[best], err
}

// applyLooseness picks, among the available line-count variants, the one
// whose line count is closest to best+looseness, preferring the
// demerits-optimal one on ties (TeX's looseness parameter).
func applyLooseness(variants []int32, best int32, looseness int32) int32 {
	target := best + looseness
	chosen := best
	bestDist := int32(1 << 30)
	for _, v := range variants {
		dist := v - target
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			chosen = v
		}
	}
	return chosen
}

// FindBreakpoints finds all breakpoints for a paragraph for a given
// paragraph shape. Selecting the breakpoints is governed by a set of
// line-breaking parameters. The paragraph's content is given as a
// khipu.Khipu, navigated with a linebreak.Cursor.
//
// If dotfile is given, the function outputs the intermediate
// breakpoint-graph in GraphViz DOT format.
//
// Breaking a paragraph might be acceptable in more than one way, resulting
// in different counts of broken lines. This function returns all variants
// found. The first return value is a slice of line-count variants, in
// decreasing order of linebreak quality; the second is a map from
// line-count variant to its breakpoint marks.
func FindBreakpoints(cursor linebreak.Cursor, parshape linebreak.ParShape, params *linebreak.Parameters,
	dotfile io.Writer) ([]int32, map[int32][]khipu.Mark, error) {
	//
	kp, err := setupLinebreaker(cursor, parshape, params)
	if err != nil {
		return nil, nil, err
	}
	if err = kp.constructBreakpointGraph(cursor, parshape, params); err != nil {
		T().Errorf(err.Error())
		return nil, nil, err
	}
	variants, breaks, err := kp.collectFeasibleBreakpoints(kp.end)
	if err != nil {
		return nil, nil, err
	}
	if dotfile != nil {
		dotcursor := khipu.NewCursor(cursor.Khipu())
		kp.toGraphViz(dotcursor, breaks, dotfile)
	}
	return variants, breaks, nil
}

// isBreakpoint reports whether a knot is a position a line may legally be
// broken at: a penalty always is; a discretionary (hyphenation point) only
// on passes that allow hyphenation.
func (kp *linebreaker) isBreakpoint(k khipu.Knot) bool {
	if k.Type() == khipu.KTPenalty {
		return true
	}
	return k.Type() == khipu.KTDisc && kp.allowDisc
}

// penaltyOf returns the penalty value governing a break at k, and whether
// the break is a discretionary (hyphen) break.
func penaltyOf(k khipu.Knot, params *linebreak.Parameters) (khipu.Penalty, bool) {
	if k.Type() == khipu.KTDisc {
		d := k.(*khipu.DiscNode)
		if d.Explicit {
			return khipu.Penalty(params.ExHyphenPenalty), true
		}
		return khipu.Penalty(params.HyphenPenalty), true
	}
	return k.(khipu.Penalty), false
}

// constructBreakpointGraph is the central algorithm, akin to the paragraph
// breaking algorithm described by Knuth & Plass for the TeX typesetting
// system.
//
// The central data type is a feasible breakpoint (FB). An fb is a potential
// line-breaking opportunity, which carries a certain cost. For all FBs
// considered, the cost is below a certain threshold (configured by the
// line-breaking parameters). The task of the algorithm is to fit a sequence
// of FBs which produce the least cost overall.
//
// A linebreak.Cursor moves over the knots in the input khipu, consisting of
// such things as text, glue, and penalties. Lines can potentially be broken
// at penalties and discretionaries. The algorithm maintains a set of active
// feasible linebreaks, called horizon. These FBs are inspected in turn and
// tested for a potential line between the FB and the location of the
// cursor. If such a line is not too costly, a new FB is constructed and
// appended to the horizon. Other FBs which can no longer start any new
// potential line are removed from the horizon.
//
// These operations construct a DAG, from a single node representing the
// start of the paragraph to a single node representing its end.
func (kp *linebreaker) constructBreakpointGraph(cursor linebreak.Cursor, parshape linebreak.ParShape,
	params *linebreak.Parameters) error {
	//
	var last khipu.Mark
	var fb *feasibleBreakpoint
	for cursor.Next() {
		last = cursor.Mark()
		T().Debugf("_______________ %d/%v ___________________", last.Position(), last.Knot())
		if fb = kp.horizon.first(); fb == nil {
			return linebreak.NewBreakingError("paragraph", "no more active breakpoints, but input available")
		}
		for fb != nil {
			T().Debugf("                %d/%v  (in horizon)", fb.mark.Position(), fb.mark.Knot())
			fb.UpdateSegmentBookkeeping(cursor.Mark())
			if kp.isBreakpoint(cursor.Mark().Knot()) {
				penalty, discretionary := penaltyOf(cursor.Mark().Knot(), params)
				var markAt khipu.Mark
				penalty, markAt = resolvePenalty(cursor, penalty, discretionary)
				costs, stillreachable := fb.calculateCostsTo(penalty, discretionary, parshape, kp.params, kp.emergencyStretch)
				if stillreachable {
					for linecnt, c := range costs {
						if linebreak.Merits(penalty.Demerits()) <= linebreak.InfinityMerits {
							if c.badness > kp.tolerance {
								T().Infof("Underfull box at line %d, b=%d, d=%d", linecnt+1, c.badness, c.demerits)
							}
							newfb, err := kp.newFeasibleLine(fb, markAt, c, linecnt+1)
							if err != nil {
								return err
							}
							kp.horizon.Add(newfb)
						} else if c.badness < kp.tolerance && c.demerits < linebreak.InfinityDemerits {
							newfb, err := kp.newFeasibleLine(fb, markAt, c, linecnt+1)
							if err != nil {
								return err
							}
							kp.horizon.Add(newfb)
						}
					}
				} else {
					if kp.horizon.Size() <= 1 {
						for linecnt := range costs {
							T().Infof("Overfull box at line %d, cost=10000", linecnt+1)
							c := cost{demerits: linebreak.InfinityDemerits}
							newfb, err := kp.newFeasibleLine(fb, markAt, c, linecnt+1)
							if err != nil {
								return err
							}
							kp.horizon.Add(newfb)
							if newfb.mark.Position() == fb.mark.Position() {
								return linebreak.NewBreakingError("line breaking",
									"feasible line collapsed onto its own start")
							}
						}
					}
					kp.horizon.Remove(fb)
				}
			}
			fb = kp.horizon.next()
		}
	}
	T().Infof("Collected %d potential breakpoints for paragraph", len(kp.nodes))
	fb = kp.findBreakpointAtMark(last)
	if fb == nil {
		return linebreak.NewBreakingError("paragraph", "last breakpoint not found: khipu didn't end with a forced break")
	}
	kp.end = fb
	return nil
}

// resolvePenalty normalizes a penalty/discretionary breakpoint, reusing
// penaltyAt's penalty-run collapsing logic for plain penalties.
func resolvePenalty(cursor linebreak.Cursor, penalty khipu.Penalty, discretionary bool) (khipu.Penalty, khipu.Mark) {
	if discretionary {
		return penalty, cursor.Mark()
	}
	return penaltyAt(cursor)
}

// Collecting breakpoints, backwards from last.
func (kp *linebreaker) collectFeasibleBreakpoints(last *feasibleBreakpoint) (
	[]int32, map[int32][]khipu.Mark, error) {
	breakpoints := make(map[int32][]khipu.Mark)
	costDict := make(map[int32]linebreak.Merits)
	lineVariants := make([]int32, 0, len(last.books))
	for linecnt, book := range last.books {
		costDict[linecnt] = book.totalcost
		i := len(lineVariants)
		for j, c := range lineVariants {
			if book.totalcost < costDict[c] {
				i = j
				break
			}
		}
		lineVariants = insert(lineVariants, i, linecnt)
		breaks := make([]khipu.Mark, 0, 20)
		breaks = append(breaks, last.mark)
		l := linecnt
		predecessors, err := kp.findPredecessorsWithLinecount(last, l)
		if err != nil {
			return nil, nil, err
		}
		for len(predecessors) > 0 {
			l--
			if len(predecessors) > 1 {
				return nil, nil, linebreak.NewBreakingError("line breaking",
					"breakpoint (with pruning) has more than one predecessor")
			}
			pred := predecessors[0]
			breaks = append(breaks, pred.mark)
			predecessors, err = kp.findPredecessorsWithLinecount(pred, l)
			if err != nil {
				return nil, nil, err
			}
		}
		T().Debugf("reversing the breakpoint list for line %d: %v", linecnt, breaks)
		for i := len(breaks)/2 - 1; i >= 0; i-- {
			opp := len(breaks) - 1 - i
			breaks[i], breaks[opp] = breaks[opp], breaks[i]
		}
		breakpoints[linecnt] = breaks
	}
	T().Infof("K&P found %d solutions: %v, costs are %v", len(lineVariants), lineVariants, costDict)
	return lineVariants, breakpoints, nil
}

// --- Helpers ----------------------------------------------------------

func absD(n dimen.DU) dimen.DU {
	if n < 0 {
		return -n
	}
	return n
}

func abs(n linebreak.Merits) linebreak.Merits {
	if n < 0 {
		return -n
	}
	return n
}

func minF(n, m float64) float64 {
	if n < m {
		return n
	}
	return m
}

func maxF(n, m float64) float64 {
	if n > m {
		return n
	}
	return m
}

func insert(s []int32, i int, n int32) []int32 {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = n
	return s
}
