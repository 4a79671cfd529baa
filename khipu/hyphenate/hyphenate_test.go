package hyphenate

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parabreak/khipu"
)

func TestFoldHashStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	h1 := foldHash([]rune("associate"))
	h2 := foldHash([]rune("associate"))
	if h1 != h2 {
		t.Errorf("foldHash should be deterministic, got %d and %d", h1, h2)
	}
	if h1 < 0 || h1 >= HyphPrime {
		t.Errorf("foldHash must fall in [0, HyphPrime), got %d", h1)
	}
}

func TestExceptionDictLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	d := NewExceptionDict()
	d.Add("en", "as-so-ciate")
	pos, ok := d.Lookup("en", []rune("associate"))
	if !ok {
		t.Fatal("expected exception entry to be found")
	}
	if len(pos) != 2 || pos[0] != 2 || pos[1] != 4 {
		t.Errorf("expected positions [2 4], got %v", pos)
	}
	if _, ok := d.Lookup("de", []rune("associate")); ok {
		t.Error("expected no match for a different language")
	}
}

func TestPatternSetApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	ps := NewPatternSet()
	ps.AddPattern("hel1lo") // legal break between 'l' and 'l' of "hello"
	bounded := []rune(".hello.")
	hyf := make([]int8, len(bounded)+1)
	ps.Apply(bounded, hyf)
	// the pattern "hel1lo" matches at offset 1 (after the leading '.');
	// weight 1 lands between 'l' and the second 'l', i.e. hyf[1+3]==1.
	if hyf[4] != 1 {
		t.Errorf("expected weight 1 at position 4, got hyf=%v", hyf)
	}
}

func TestHyphenateWordViaPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	h := New()
	h.AddPattern("en", "hel1lo")
	positions, ok := h.HyphenateWord("hello", "en", 1, 1)
	if !ok {
		t.Fatal("expected at least one legal hyphenation position")
	}
	t.Logf("positions = %v", positions)
	for _, p := range positions {
		if p < 1 || p > len("hello")-1 {
			t.Errorf("position %d violates hyphen-min guard", p)
		}
	}
}

func TestHyphenateWordException(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	h := New()
	h.AddException("en", "as-so-ciate")
	positions, ok := h.HyphenateWord("associate", "en", 1, 1)
	if !ok {
		t.Fatal("expected the exception entry to be used")
	}
	if len(positions) != 2 {
		t.Errorf("expected 2 legal positions from the exception, got %v", positions)
	}
}

func TestSpliceNativeWordNoPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	word := &khipu.NativeWordNode{Text: "cat", Chars: []rune("cat"), Font: 1}
	kh := SpliceNativeWord(word, nil, '-', 1)
	if kh.Length() != 1 {
		t.Errorf("expected a single unsplit word node, got length %d", kh.Length())
	}
}

func TestSpliceNativeWordWithPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.hyphenate")
	defer teardown()
	//
	word := &khipu.NativeWordNode{Text: "hello", Chars: []rune("hello"), Font: 1}
	kh := SpliceNativeWord(word, []int{3}, '-', 1)
	// expect: word-fragment, disc, word-fragment == 3 knots
	if kh.Length() != 3 {
		t.Fatalf("expected 3 knots (fragment, disc, fragment), got %d", kh.Length())
	}
	c := khipu.NewCursor(kh)
	c.Next()
	if _, ok := c.Knot().(khipu.WhatsitNode); !ok {
		t.Errorf("expected first knot to be a whatsit-wrapped word fragment, got %T", c.Knot())
	}
	c.Next()
	if _, ok := c.Knot().(*khipu.DiscNode); !ok {
		t.Errorf("expected second knot to be a DiscNode, got %T", c.Knot())
	}
}
