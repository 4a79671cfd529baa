package knuthplass

import (
	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
	"github.com/npillmayer/parabreak/linebreak"
)

// Line is a single broken line: the knots it spans (already stripped of
// leading discardables, and on the final line of trailing ones too, and
// fitted with left_skip/right_skip), its
// 1-based line number and whether it ends in a hyphen.
type Line struct {
	Number     int32
	Knots      []khipu.Knot
	Hyphenated bool
}

// PostLineBreak turns a paragraph's khipu plus the breakpoint marks chosen
// by BreakParagraph/BreakParagraphInPasses into a sequence of Lines, the way
// TeX's post_line_break assembles each hlist from the break positions:
// the knot at each break is dropped, discardables at the start of every
// line (and at the end of the final line) are dropped, a disc break's pre-break
// material becomes the visible line end (with a trailing hyphen char), and
// left_skip/right_skip glue bracket the result.
//
// breaks is the mark list as returned by BreakParagraph/BreakParagraphInPasses,
// whose first entry is the paragraph-start sentinel (Position() < 0, no
// corresponding knot in kh); it is skipped rather than matched against.
//
// parshape supplies each line's target length, needed only to apply
// last-line-fit (params.LastLineFit); pass the same ParShape given to
// BreakParagraph/BreakParagraphInPasses.
func PostLineBreak(kh *khipu.Khipu, breaks []khipu.Mark, parshape linebreak.ParShape,
	params *linebreak.Parameters) []Line {
	if params == nil {
		params = linebreak.DefaultParameters
	}
	lines := make([]Line, 0, len(breaks))
	c := khipu.NewCursor(kh)
	var cur []khipu.Knot
	lineNo := int32(0)
	breakIdx := 0
	for breakIdx < len(breaks) && breaks[breakIdx].Position() < 0 {
		breakIdx++
	}
	targetPos := int64(-1)
	if breakIdx < len(breaks) {
		targetPos = breaks[breakIdx].Position()
	}
	var dirStack []khipu.MathSubtype // open LBegin/RBegin runs, eTeX Texxet only
	flush := func(hyphenated bool, trailing []khipu.Knot) {
		lineNo++
		if params.Texxet {
			trailing = append(trailing, closingMathNodes(dirStack)...)
		}
		knots := make([]khipu.Knot, 0, len(cur)+len(trailing)+2)
		knots = append(knots, params.LeftSkip)
		knots = append(knots, stripLeadingDiscardables(cur)...)
		knots = append(knots, trailing...)
		knots = append(knots, params.RightSkip)
		lines = append(lines, Line{Number: lineNo, Knots: knots, Hyphenated: hyphenated})
		cur = cur[:0]
		if params.Texxet {
			cur = append(cur, reopeningMathNodes(dirStack)...)
		}
	}
	for c.Next() {
		pos := c.Mark().Position()
		knot := c.Knot()
		if params.Texxet && knot.Type() == khipu.KTMath {
			dirStack = pushPopDirStack(dirStack, knot.(khipu.MathNode).Kind)
		}
		if breakIdx < len(breaks) && pos == targetPos {
			var trailing []khipu.Knot
			hyphenated := false
			if knot.Type() == khipu.KTDisc {
				d := knot.(*khipu.DiscNode)
				hyphenated = true
				if d.PreBreak != nil {
					pc := khipu.NewCursor(d.PreBreak)
					for pc.Next() {
						trailing = append(trailing, pc.Knot())
					}
				}
			}
			flush(hyphenated, trailing)
			breakIdx++
			if breakIdx < len(breaks) {
				targetPos = breaks[breakIdx].Position()
			}
			if knot.Type() == khipu.KTDisc {
				d := knot.(*khipu.DiscNode)
				if d.PostBreak != nil {
					pc := khipu.NewCursor(d.PostBreak)
					for pc.Next() {
						cur = append(cur, pc.Knot())
					}
				}
				continue
			}
			continue
		}
		cur = append(cur, knot)
	}
	if len(cur) > 0 {
		knots := append([]khipu.Knot{params.LeftSkip}, stripTrailingDiscardables(stripLeadingDiscardables(cur))...)
		knots = append(knots, params.ParFillSkip, params.RightSkip)
		lineNo++
		lines = append(lines, Line{Number: lineNo, Knots: knots})
	} else if len(lines) > 0 {
		lines[len(lines)-1].Knots = append(lines[len(lines)-1].Knots, params.ParFillSkip)
	}
	applyLastLineFit(lines, parshape, params)
	if params.XetexProtrudeChars > 0 {
		applyProtrusion(lines, params)
	}
	return lines
}

// stripLeadingDiscardables drops glue/kern/penalty material TeX's algorithm
// would discard at the start of a freshly broken line.
func stripLeadingDiscardables(knots []khipu.Knot) []khipu.Knot {
	i := 0
	for i < len(knots) && knots[i].IsDiscardable() {
		i++
	}
	return knots[i:]
}

// stripTrailingDiscardables drops discardable material at the end of the
// paragraph's final (unterminated) line.
func stripTrailingDiscardables(knots []khipu.Knot) []khipu.Knot {
	j := len(knots)
	for j > 0 && knots[j-1].IsDiscardable() {
		j--
	}
	return knots[:j]
}

// pushPopDirStack maintains the eTeX LR stack (Texxet's cur_list.eTeX_aux):
// an LBegin/RBegin opens a directional run, the matching LEnd/REnd closes
// the innermost one. A mismatched End is ignored rather than treated as a
// confusion, since malformed markup shouldn't abort the whole paragraph.
func pushPopDirStack(stack []khipu.MathSubtype, kind khipu.MathSubtype) []khipu.MathSubtype {
	switch kind {
	case khipu.LBegin, khipu.RBegin:
		return append(stack, kind)
	case khipu.LEnd, khipu.REnd:
		if len(stack) == 0 {
			return stack
		}
		want := khipu.LBegin
		if kind == khipu.REnd {
			want = khipu.RBegin
		}
		if stack[len(stack)-1] == want {
			return stack[:len(stack)-1]
		}
		return stack
	}
	return stack
}

// closingMathNodes returns the MathNodes needed to close every directional
// run still open at a breakpoint, innermost first, so the line being ended
// is left in a balanced state (TeX inserts these just before right_skip).
func closingMathNodes(stack []khipu.MathSubtype) []khipu.Knot {
	if len(stack) == 0 {
		return nil
	}
	nodes := make([]khipu.Knot, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		kind := khipu.LEnd
		if stack[i] == khipu.RBegin {
			kind = khipu.REnd
		}
		nodes = append(nodes, khipu.MathNode{Kind: kind})
	}
	return nodes
}

// reopeningMathNodes returns the MathNodes needed to reopen every
// directional run still open after a breakpoint, outermost first, so the
// next line starts inside the same nesting the previous one ended in (TeX
// inserts these just after left_skip).
func reopeningMathNodes(stack []khipu.MathSubtype) []khipu.Knot {
	if len(stack) == 0 {
		return nil
	}
	nodes := make([]khipu.Knot, 0, len(stack))
	for _, kind := range stack {
		nodes = append(nodes, khipu.MathNode{Kind: kind})
	}
	return nodes
}

// sumWSS folds a line's knots' elastic widths into a single WSS.
func sumWSS(knots []khipu.Knot) linebreak.WSS {
	var wss linebreak.WSS
	for _, k := range knots {
		wss = wss.Add(linebreak.WSS{}.SetFromKnot(k))
	}
	return wss
}

// applyLastLineFit implements eTeX's \lastlinefit: when enabled, the
// paragraph's final line is allowed to borrow a fraction of the stretch or
// shrink the penultimate line needed to reach its target width, so a short
// last line doesn't look unduly loose (or a long one unduly tight) relative
// to its neighbors. The fraction is expressed in per-mille, as TeX does
// (1000 == full fit); it scales the penultimate line's own shortfall ratio,
// then that scaled ratio is spent against the last line's own stretch.
func applyLastLineFit(lines []Line, parshape linebreak.ParShape, params *linebreak.Parameters) {
	if params.LastLineFit <= 0 || len(lines) < 2 {
		return
	}
	T().Debugf("applying last-line-fit at %d/1000", params.LastLineFit)
	prev := &lines[len(lines)-2]
	last := &lines[len(lines)-1]
	prevWSS := sumWSS(prev.Knots)
	var prevTarget dimen.DU
	if parshape != nil {
		prevTarget = parshape.LineLength(prev.Number)
	} else {
		prevTarget = prevWSS.W
	}
	shortfall := prevTarget - prevWSS.W
	var capacity dimen.DU
	if shortfall >= 0 {
		capacity = prevWSS.Max - prevWSS.W
	} else {
		capacity = prevWSS.W - prevWSS.Min
	}
	if capacity <= 0 {
		return
	}
	ratio := minF(1.0, float64(absD(shortfall))/float64(capacity))
	if shortfall < 0 {
		ratio = -ratio
	}
	fraction := ratio * float64(params.LastLineFit) / 1000.0
	lastWSS := sumWSS(last.Knots)
	var borrow dimen.DU
	if fraction >= 0 {
		borrow = dimen.DU(fraction * float64(lastWSS.Max-lastWSS.W))
	} else {
		borrow = dimen.DU(fraction * float64(lastWSS.W-lastWSS.Min))
	}
	if borrow != 0 {
		last.Knots = append(last.Knots, khipu.KernNode{Width: borrow, Kind: khipu.KernExplicit})
	}
}

// applyProtrusion implements character protrusion (xetex_protrude_chars):
// punctuation hanging at the end of a line is given a small negative kern,
// appended after the line's last knot, so it doesn't visually disturb the
// block's margin. The start of a line is not examined.
func applyProtrusion(lines []Line, params *linebreak.Parameters) {
	for i := range lines {
		knots := lines[i].Knots
		if len(knots) == 0 {
			continue
		}
		if k, ok := lastChar(knots); ok {
			amount := protrusionAmount(k, params)
			if amount != 0 {
				lines[i].Knots = append(lines[i].Knots, khipu.KernNode{Width: -amount, Kind: khipu.KernExplicit})
			}
		}
	}
}

func lastChar(knots []khipu.Knot) (khipu.CharNode, bool) {
	for i := len(knots) - 1; i >= 0; i-- {
		if c, ok := knots[i].(khipu.CharNode); ok {
			return c, true
		}
		if !knots[i].IsDiscardable() {
			break
		}
	}
	return khipu.CharNode{}, false
}

// protrusionAmount derives a margin kern from a character's width, following
// the common convention of protruding by a fraction of the glyph's width for
// typical hanging punctuation.
func protrusionAmount(c khipu.CharNode, params *linebreak.Parameters) dimen.DU {
	switch c.Char {
	case '.', ',', ';', ':', '-':
		return c.Width / 2
	}
	return 0
}
