package knuthplass

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
	"github.com/npillmayer/parabreak/linebreak"
)

// buildParagraph constructs a small khipu: three four-letter "words"
// separated by stretchable interword glue, terminated by a forced break
// (an eject penalty), the minimal shape constructBreakpointGraph requires.
func buildParagraph() *khipu.Khipu {
	kh := khipu.NewKhipu()
	word := func(s string) {
		for _, r := range s {
			kh.AppendKnot(khipu.CharNode{Char: r, Width: 6 * dimen.BP})
		}
	}
	glue := khipu.NewGlue(4*dimen.BP, 2*dimen.BP, 2*dimen.BP)
	word("word")
	kh.AppendKnot(glue)
	word("word")
	kh.AppendKnot(glue)
	word("word")
	kh.AppendKnot(khipu.Penalty(-10000))
	return kh
}

func TestBreakParagraphFindsForcedBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	kh := buildParagraph()
	parshape := linebreak.RectangularParShape(30 * dimen.BP)
	params := linebreak.DefaultParameters
	cursor := khipu.NewCursor(kh)
	breaks, err := BreakParagraph(cursor, parshape, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(breaks) < 2 {
		t.Fatalf("expected at least a start mark and the forced final break, got %d marks", len(breaks))
	}
	if breaks[0].Position() != -1 {
		t.Errorf("expected first mark to be the paragraph-start sentinel (-1), got %d", breaks[0].Position())
	}
	last := breaks[len(breaks)-1]
	if _, ok := last.Knot().(khipu.Penalty); !ok {
		t.Errorf("expected last break to land on the forced penalty, got %T", last.Knot())
	}
}

func TestFindBreakpointsReturnsVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	kh := buildParagraph()
	parshape := linebreak.RectangularParShape(30 * dimen.BP)
	params := linebreak.DefaultParameters
	cursor := khipu.NewCursor(kh)
	variants, breakpoints, err := FindBreakpoints(cursor, parshape, params, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants) == 0 {
		t.Fatal("expected at least one line-count variant")
	}
	for _, v := range variants {
		if _, ok := breakpoints[v]; !ok {
			t.Errorf("variant %d has no breakpoint list", v)
		}
	}
}

func TestBreakParagraphInPassesEscalates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.knuthplass")
	defer teardown()
	//
	params := *linebreak.DefaultParameters
	params.PreTolerance = 1 // force the rough pass to fail on a tight paragraph
	params.Tolerance = 10000
	params.EmergencyStretch = 0
	parshape := linebreak.RectangularParShape(30 * dimen.BP)
	newCursor := func() linebreak.Cursor {
		return khipu.NewCursor(buildParagraph())
	}
	breaks, err := BreakParagraphInPasses(newCursor, parshape, &params)
	if err != nil {
		t.Fatalf("expected the tolerance pass to eventually succeed, got error: %v", err)
	}
	if len(breaks) < 2 {
		t.Errorf("expected at least 2 marks, got %d", len(breaks))
	}
}
