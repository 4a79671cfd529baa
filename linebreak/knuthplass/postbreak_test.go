package knuthplass

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
	"github.com/npillmayer/parabreak/linebreak"
)

func TestPostLineBreakFromRealBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	kh := buildParagraph()
	parshape := linebreak.RectangularParShape(30 * dimen.BP)
	params := linebreak.DefaultParameters
	breaks, err := BreakParagraph(khipu.NewCursor(kh), parshape, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := PostLineBreak(kh, breaks, parshape, params)
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
	for _, l := range lines {
		if len(l.Knots) == 0 {
			t.Errorf("line %d has no knots", l.Number)
			continue
		}
		if g, ok := l.Knots[0].(khipu.GlueNode); !ok || g.Spec != params.LeftSkip.Spec {
			t.Errorf("line %d should open with left_skip glue, got %T", l.Number, l.Knots[0])
		}
	}
}

func TestPostLineBreakDiscHyphenation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	kh := khipu.NewKhipu()
	kh.AppendKnot(khipu.CharNode{Char: 'h', Width: 5 * dimen.BP})
	kh.AppendKnot(khipu.CharNode{Char: 'e', Width: 5 * dimen.BP})
	pre := khipu.NewKhipu()
	pre.AppendKnot(khipu.CharNode{Char: '-', Width: 3 * dimen.BP})
	kh.AppendKnot(&khipu.DiscNode{PreBreak: pre, HyphenChar: '-'})
	kh.AppendKnot(khipu.CharNode{Char: 'l', Width: 5 * dimen.BP})
	kh.AppendKnot(khipu.CharNode{Char: 'p', Width: 5 * dimen.BP})
	kh.AppendKnot(khipu.Penalty(-10000))

	c := khipu.NewCursor(kh)
	var discMark, endMark khipu.Mark
	for c.Next() {
		switch c.Knot().Type() {
		case khipu.KTDisc:
			discMark = c.Mark()
		case khipu.KTPenalty:
			endMark = c.Mark()
		}
	}
	breaks := []khipu.Mark{discMark, endMark}
	parshape := linebreak.RectangularParShape(30 * dimen.BP)
	lines := PostLineBreak(kh, breaks, parshape, linebreak.DefaultParameters)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !lines[0].Hyphenated {
		t.Error("expected first line to be marked hyphenated")
	}
	foundHyphen := false
	for _, k := range lines[0].Knots {
		if c, ok := k.(khipu.CharNode); ok && c.Char == '-' {
			foundHyphen = true
		}
	}
	if !foundHyphen {
		t.Error("expected the hyphen char to appear at the end of the first line")
	}
}

func TestPostLineBreakTexxetReopensAcrossBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	kh := khipu.NewKhipu()
	kh.AppendKnot(khipu.MathNode{Kind: khipu.RBegin})
	kh.AppendKnot(khipu.CharNode{Char: 'a', Width: 5 * dimen.BP})
	kh.AppendKnot(khipu.Penalty(0))
	kh.AppendKnot(khipu.CharNode{Char: 'b', Width: 5 * dimen.BP})
	kh.AppendKnot(khipu.MathNode{Kind: khipu.REnd})
	kh.AppendKnot(khipu.Penalty(-10000))

	c := khipu.NewCursor(kh)
	var breaks []khipu.Mark
	for c.Next() {
		if c.Knot().Type() == khipu.KTPenalty {
			breaks = append(breaks, c.Mark())
		}
	}
	params := *linebreak.DefaultParameters
	params.Texxet = true
	parshape := linebreak.RectangularParShape(30 * dimen.BP)
	lines := PostLineBreak(kh, breaks, parshape, &params)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	closesRun := false
	for _, k := range lines[0].Knots {
		if m, ok := k.(khipu.MathNode); ok && m.Kind == khipu.REnd {
			closesRun = true
		}
	}
	if !closesRun {
		t.Error("expected first line to close the still-open R2L run before right_skip")
	}
	// left_skip itself is knots[0], so the reopening node sits right after it.
	reopensRun := false
	if len(lines[1].Knots) > 1 {
		if m, ok := lines[1].Knots[1].(khipu.MathNode); ok && m.Kind == khipu.RBegin {
			reopensRun = true
		}
	}
	if !reopensRun {
		t.Error("expected second line to reopen the R2L run after left_skip")
	}
}

func TestApplyLastLineFitAddsKernWhenPenultimateLineIsLoose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	// Penultimate line: one stretchable interword glue, set short of its
	// target width, so it has spare stretch to report a shortfall ratio.
	word := func(s string) []khipu.Knot {
		knots := make([]khipu.Knot, 0, len(s))
		for _, r := range s {
			knots = append(knots, khipu.CharNode{Char: r, Width: 6 * dimen.BP})
		}
		return knots
	}
	prevKnots := append(word("word"), khipu.NewGlue(4*dimen.BP, 2*dimen.BP, 4*dimen.BP))
	prevKnots = append(prevKnots, word("word")...)
	lastKnots := append([]khipu.Knot{}, word("hi")...)
	lastKnots = append(lastKnots, khipu.NewGlue(4*dimen.BP, 2*dimen.BP, 10*dimen.BP))

	lines := []Line{
		{Number: 1, Knots: prevKnots},
		{Number: 2, Knots: lastKnots},
	}
	params := *linebreak.DefaultParameters
	params.LastLineFit = 1000
	parshape := linebreak.RectangularParShape(60 * dimen.BP)
	applyLastLineFit(lines, parshape, &params)

	last := lines[1].Knots
	if _, ok := last[len(last)-1].(khipu.KernNode); !ok {
		t.Fatalf("expected a last-line-fit kern appended to the final line, got %T", last[len(last)-1])
	}
}

func TestApplyLastLineFitNoopWhenDisabled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	lines := []Line{
		{Number: 1, Knots: []khipu.Knot{khipu.NewGlue(4*dimen.BP, 2*dimen.BP, 4*dimen.BP)}},
		{Number: 2, Knots: []khipu.Knot{khipu.CharNode{Char: 'x', Width: 6 * dimen.BP}}},
	}
	params := *linebreak.DefaultParameters
	params.LastLineFit = 0
	parshape := linebreak.RectangularParShape(60 * dimen.BP)
	applyLastLineFit(lines, parshape, &params)
	if len(lines[1].Knots) != 1 {
		t.Errorf("expected no kern added when LastLineFit is disabled, got %d knots", len(lines[1].Knots))
	}
}
