package khipu

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parabreak/core/dimen"
)

func TestDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.khipu")
	defer teardown()
	//
	if dimen.BP.String() != "65536sp" {
		t.Error("a big point BP should be 65536 scaled points SP")
	}
}

func TestKhipuAppend(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.khipu")
	defer teardown()
	//
	kh := NewKhipu()
	kh.AppendKnot(KernNode{Width: 2 * dimen.PT}).AppendKnot(NewGlue(0, 0, dimen.Fil))
	kh.AppendKnot(CharNode{Char: 'H', Width: 5 * dimen.PT})
	t.Logf("khipu = %s", kh.String())
	if kh.Length() != 3 {
		t.Errorf("length of khipu should be 3, is %d", kh.Length())
	}
}

func TestCursorPeek(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.khipu")
	defer teardown()
	//
	kh := NewKhipu()
	kh.AppendKnot(CharNode{Char: 'a'}).AppendKnot(CharNode{Char: 'b'})
	c := NewCursor(kh)
	if !c.Next() {
		t.Fatal("expected a first knot")
	}
	peeked, ok := c.Peek()
	if !ok || peeked.(CharNode).Char != 'b' {
		t.Errorf("expected to peek 'b', got %v", peeked)
	}
	if !c.Next() {
		t.Fatal("expected a second knot")
	}
	if c.Knot().(CharNode).Char != 'b' {
		t.Errorf("expected current knot 'b', got %v", c.Knot())
	}
	if c.Next() {
		t.Errorf("expected cursor to be exhausted")
	}
}

func TestArenaFreelist(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.khipu")
	defer teardown()
	//
	a := NewArena()
	h1 := a.New(CharNode{Char: 'x'})
	a.Free(h1)
	h2 := a.New(CharNode{Char: 'y'})
	if h2 != h1 {
		t.Errorf("expected freed handle %d to be reused, got %d", h1, h2)
	}
}

func TestGlueSpecRefCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parabreak.khipu")
	defer teardown()
	//
	spec := NewGlueSpec(10*dimen.PT, 0, 5*dimen.PT)
	spec.Use()
	if spec.RefCount() != 2 {
		t.Errorf("expected refcount 2, got %d", spec.RefCount())
	}
	spec.Release()
	spec.Release()
	if spec.RefCount() != 0 {
		t.Errorf("expected refcount floored at 0, got %d", spec.RefCount())
	}
}
