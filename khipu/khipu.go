package khipu

import (
	"bytes"
)

// List types a Khipu may represent.
const (
	HList int = iota // horizontal list
	VList            // vertical list
	MList            // math list
)

// Khipu is a string of knots — the horizontal (or vertical) list the
// paragraph breaker scans. Knots live in an Arena and are linked via
// intrusive next-pointers, per spec.md §3.1/§4.A.
type Khipu struct {
	typ        int
	arena      *Arena
	head, tail Handle
	length     int64
}

// NewKhipu creates an empty knot list with its own arena.
func NewKhipu() *Khipu {
	return &Khipu{arena: NewArena()}
}

// Length gives the number of knots in the list.
func (kh *Khipu) Length() int64 {
	return kh.length
}

// AppendKnot appends a knot at the end of the list.
func (kh *Khipu) AppendKnot(knot Knot) *Khipu {
	h := kh.arena.New(knot)
	if kh.tail == NullHandle {
		kh.head = h
	} else {
		kh.arena.SetLink(kh.tail, h)
	}
	kh.tail = h
	kh.length++
	return kh
}

// AppendKhipu concatenates another khipu onto this one, copying its knots
// into this khipu's arena (the two may have been built independently, as
// happens when a paragraph driver assembles sub-khipus per segment).
func (kh *Khipu) AppendKhipu(other *Khipu) *Khipu {
	if other == nil {
		return kh
	}
	c := NewCursor(other)
	for c.Next() {
		kh.AppendKnot(c.Knot())
	}
	return kh
}

// ReplaceKnot overwrites the knot at the position a Mark refers to,
// keeping the list's linkage intact. Returns the previous knot, or nil if
// the Mark was not made by a Cursor or refers to no knot.
func (kh *Khipu) ReplaceKnot(m Mark, knot Knot) Knot {
	mm, ok := m.(*mark)
	if !ok || mm.h == NullHandle {
		return nil
	}
	old := kh.arena.Knot(mm.h)
	kh.arena.SetKnot(mm.h, knot)
	return old
}

// Arena exposes the underlying node arena.
func (kh *Khipu) Arena() *Arena {
	return kh.arena
}

// Debug representation of a knot list.
func (kh *Khipu) String() string {
	var w bytes.Buffer
	switch kh.typ {
	case HList:
		w.WriteString("\\hlist{")
	case VList:
		w.WriteString("\\vlist{")
	case MList:
		w.WriteString("\\mlist{")
	}
	first := true
	c := NewCursor(kh)
	for c.Next() {
		if !first {
			w.WriteString(" ")
		}
		first = false
		w.WriteString(KnotString(c.Knot()))
	}
	w.WriteString("}")
	return w.String()
}

// --- Marks and Cursors --------------------------------------------------

// Mark identifies a position within a Khipu: an ordinal distance from the
// start of the paragraph, plus the knot found there.
type Mark interface {
	Position() int64
	Knot() Knot
}

// mark is the concrete Mark used by Cursor.
type mark struct {
	pos int64
	h   Handle
	k   Knot
}

func (m *mark) Position() int64 { return m.pos }
func (m *mark) Knot() Knot      { return m.k }

// Cursor walks a Khipu's knots in order, supporting one-knot lookahead.
// This is the concrete iterator behind the linebreak.Cursor interface.
type Cursor struct {
	kh      *Khipu
	cur     Handle
	pos     int64
	started bool
}

// NewCursor creates a Cursor positioned just before the first knot of kh.
func NewCursor(kh *Khipu) *Cursor {
	return &Cursor{kh: kh, cur: NullHandle, pos: -1}
}

// Next advances the cursor to the next knot, returning false once the
// list is exhausted.
func (c *Cursor) Next() bool {
	if !c.started {
		c.started = true
		c.cur = c.kh.head
	} else if c.cur != NullHandle {
		c.cur = c.kh.arena.Link(c.cur)
	}
	if c.cur == NullHandle {
		return false
	}
	c.pos++
	return true
}

// Knot returns the knot at the cursor's current position.
func (c *Cursor) Knot() Knot {
	if c.cur == NullHandle {
		return nil
	}
	return c.kh.arena.Knot(c.cur)
}

// Peek returns the knot that a subsequent Next() would move to, without
// advancing the cursor.
func (c *Cursor) Peek() (Knot, bool) {
	next := c.kh.head
	if c.started {
		next = c.kh.arena.Link(c.cur)
	}
	if next == NullHandle {
		return nil, false
	}
	return c.kh.arena.Knot(next), true
}

// Mark captures the cursor's current position as a Mark.
func (c *Cursor) Mark() Mark {
	return &mark{pos: c.pos, h: c.cur, k: c.Knot()}
}

// Khipu returns the list this cursor walks.
func (c *Cursor) Khipu() *Khipu {
	return c.kh
}
