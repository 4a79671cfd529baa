package reconstitute

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
)

// fakeProgram is a tiny Program fixture: it turns the pair ('f','f') into a
// left-replace of a single "ff"-ligature rune, and ('f', 'i') following an
// "ff" replacement into an ffi ligature via cascade, mirroring the classic
// Latin lig/kern example.
type fakeProgram struct {
	font khipu.FontID
}

func (p fakeProgram) FontID() khipu.FontID { return p.font }

func (p fakeProgram) Lookup(left, right rune) (Opcode, rune, dimen.DU, bool) {
	switch {
	case left == 'f' && right == 'f':
		return OpLeftReplace, 0xFB00, 0, true // "ff" ligature rune (placeholder codepoint)
	case left == 0xFB00 && right == 'i':
		return OpCascade, 'i', 0, true
	case left == 'A' && right == 'V':
		return OpFuseAdvance, 'A', -2 * dimen.PT, true // kerning pair, no replacement character
	}
	return 0, 0, 0, false
}

func (p fakeProgram) Width(r rune) dimen.DU {
	if r == 0xFB00 {
		return 12 * dimen.PT
	}
	return 6 * dimen.PT
}

func TestReconstituteNoMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.reconstitute")
	defer teardown()
	//
	r := New(fakeProgram{font: 1})
	out := khipu.NewKhipu()
	codes := []rune{'c', 'a', 't'}
	j := r.Reconstitute(out, codes, 0, len(codes), 0, 0, nil)
	if j != len(codes) {
		t.Errorf("expected to consume all codes, stopped at %d", j)
	}
	if out.Length() != 3 {
		t.Errorf("expected 3 plain char nodes, got %d", out.Length())
	}
}

func TestReconstituteLeftReplace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.reconstitute")
	defer teardown()
	//
	r := New(fakeProgram{font: 1})
	out := khipu.NewKhipu()
	codes := []rune{'f', 'f', 'x'}
	j := r.Reconstitute(out, codes, 0, len(codes), 0, 0, nil)
	if j != len(codes) {
		t.Errorf("expected to consume all codes, stopped at %d", j)
	}
	// expect a ligature node for "ff" followed by a plain 'x'
	c := khipu.NewCursor(out)
	if !c.Next() {
		t.Fatal("expected at least one knot")
	}
	lig, ok := c.Knot().(*khipu.LigatureNode)
	if !ok {
		t.Fatalf("expected first knot to be a ligature, got %T", c.Knot())
	}
	if lig.Char != 0xFB00 {
		t.Errorf("expected ligature char 0xFB00, got %U", lig.Char)
	}
	if lig.Original.Length() != 2 {
		t.Errorf("expected ligature to retain 2 original chars, got %d", lig.Original.Length())
	}
}

func TestReconstituteKern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.reconstitute")
	defer teardown()
	//
	r := New(fakeProgram{font: 1})
	out := khipu.NewKhipu()
	codes := []rune{'A', 'V'}
	r.Reconstitute(out, codes, 0, len(codes), 0, 0, nil)
	var sawKern bool
	c := khipu.NewCursor(out)
	for c.Next() {
		if k, ok := c.Knot().(khipu.KernNode); ok && k.Width == -2*dimen.PT {
			sawKern = true
		}
	}
	if !sawKern {
		t.Error("expected a kern of -2pt between A and V")
	}
}

func TestReconstituteHyphenPassed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.reconstitute")
	defer teardown()
	//
	r := New(fakeProgram{font: 1})
	out := khipu.NewKhipu()
	codes := []rune{'f', 'x'} // 'f'+'x' alone doesn't match; 'f'+hchar('f') does
	oddHyf := func(pos int) bool { return pos == 1 }
	r.Reconstitute(out, codes, 0, len(codes), 0, 'f', oddHyf)
	if _, ok := r.HyphenPassed(); !ok {
		t.Error("expected a hyphen-probe match to be recorded for this fixture")
	}
}
