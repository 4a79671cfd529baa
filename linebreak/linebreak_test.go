package linebreak

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
)

func TestWSSAddSubtract(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.linebreak")
	defer teardown()
	//
	a := WSS{W: 10 * dimen.PT, Min: 8 * dimen.PT, Max: 14 * dimen.PT}
	b := WSS{W: 5 * dimen.PT, Min: 5 * dimen.PT, Max: 5 * dimen.PT}
	sum := a.Add(b)
	if sum.W != 15*dimen.PT || sum.Min != 13*dimen.PT || sum.Max != 19*dimen.PT {
		t.Errorf("unexpected sum: %s", sum)
	}
	diff := sum.Subtract(b)
	if diff != a {
		t.Errorf("expected Subtract to invert Add, got %s vs %s", diff, a)
	}
}

func TestWSSSetFromKnot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.linebreak")
	defer teardown()
	//
	glue := khipu.NewGlue(3*dimen.PT, 1*dimen.PT, 2*dimen.PT)
	var wss WSS
	wss = wss.SetFromKnot(glue)
	if wss.W != 3*dimen.PT || wss.Min != 2*dimen.PT || wss.Max != 5*dimen.PT {
		t.Errorf("unexpected WSS from glue: %s", wss)
	}
}

func TestRectangularParShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.linebreak")
	defer teardown()
	//
	ps := RectangularParShape(100 * dimen.PT)
	for _, line := range []int32{1, 2, 50} {
		if ps.LineLength(line) != 100*dimen.PT {
			t.Errorf("expected constant line length, got %s at line %d", ps.LineLength(line), line)
		}
	}
}

func TestHangingParShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.linebreak")
	defer teardown()
	//
	ps := HangingParShape(100*dimen.PT, 20*dimen.PT, 2)
	if ps.LineLength(1) != 100*dimen.PT {
		t.Errorf("expected line 1 full width, got %s", ps.LineLength(1))
	}
	if ps.LineLength(2) != 100*dimen.PT {
		t.Errorf("expected line 2 (== hangAfter) still full width, got %s", ps.LineLength(2))
	}
	if ps.LineLength(3) != 80*dimen.PT {
		t.Errorf("expected line 3 narrowed by hangIndent, got %s", ps.LineLength(3))
	}
}

func TestHangingParShapeNegativeHangAfter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.linebreak")
	defer teardown()
	//
	ps := HangingParShape(100*dimen.PT, 20*dimen.PT, -1)
	if ps.LineLength(1) != 80*dimen.PT {
		t.Errorf("expected first line narrowed when hangAfter is negative, got %s", ps.LineLength(1))
	}
	if ps.LineLength(2) != 100*dimen.PT {
		t.Errorf("expected line 2 back to full width, got %s", ps.LineLength(2))
	}
}

func TestFixedWidthCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.linebreak")
	defer teardown()
	//
	kh := khipu.NewKhipu()
	kh.AppendKnot(khipu.CharNode{Char: 'a', Width: 3 * dimen.PT})
	kh.AppendKnot(khipu.CharNode{Char: 'b', Width: 99 * dimen.PT})
	fc := NewFixedWidthCursor(khipu.NewCursor(kh), 10*dimen.BP, 1*dimen.BP)
	var widths []dimen.DU
	for fc.Next() {
		widths = append(widths, fc.Knot().W())
	}
	if len(widths) != 2 {
		t.Fatalf("expected 2 knots, got %d", len(widths))
	}
	for _, w := range widths {
		if w != 11*dimen.BP {
			t.Errorf("expected every char width overridden to 11bp, got %s", w)
		}
	}
}
