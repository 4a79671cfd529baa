package khipu

// Handle addresses a knot inside an Arena. The zero Handle is reserved as
// "null" and never denotes a live knot — the node arena facade's contract
// from spec.md §4.A.
type Handle int32

// NullHandle is the reserved sentinel meaning "no node".
const NullHandle Handle = 0

// Arena is the shared heap all knots of one or more Khipus are allocated
// from. It promises O(1) allocation and free; it does not promise that a
// freed handle's storage stays intact, nor that handles are reused in any
// particular order.
type Arena struct {
	cells []Knot   // cells[0] is the unused null slot
	next  []Handle // intrusive "next" pointer, one per cell
	free  []Handle // free list of reclaimed handles
}

// NewArena creates an empty Arena with its null sentinel installed.
func NewArena() *Arena {
	a := &Arena{
		cells: make([]Knot, 1, 64),
		next:  make([]Handle, 1, 64),
	}
	return a
}

// New allocates a fresh handle holding knot k and returns it. Part of the
// node arena facade (`new(kind)` in spec.md §4.A, generalized to take the
// already-populated knot since Go has no uninitialized-cell notion worth
// modeling).
func (a *Arena) New(k Knot) Handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.cells[h] = k
		a.next[h] = NullHandle
		return h
	}
	a.cells = append(a.cells, k)
	a.next = append(a.next, NullHandle)
	return Handle(len(a.cells) - 1)
}

// Free returns a handle's storage to the free pool. The caller must not
// use h again afterwards.
func (a *Arena) Free(h Handle) {
	if h == NullHandle {
		return
	}
	a.cells[h] = nil
	a.next[h] = NullHandle
	a.free = append(a.free, h)
}

// Link reads the intrusive next-pointer of a node.
func (a *Arena) Link(h Handle) Handle {
	if h == NullHandle {
		return NullHandle
	}
	return a.next[h]
}

// SetLink writes the intrusive next-pointer of a node.
func (a *Arena) SetLink(h, to Handle) {
	if h == NullHandle {
		return
	}
	a.next[h] = to
}

// Knot dereferences a handle. Returns nil for the null handle.
func (a *Arena) Knot(h Handle) Knot {
	if h == NullHandle {
		return nil
	}
	return a.cells[h]
}

// SetKnot overwrites the knot stored at h in place, keeping its link
// intact. Khipu.ReplaceKnot is built on it.
func (a *Arena) SetKnot(h Handle, k Knot) {
	if h == NullHandle {
		return
	}
	a.cells[h] = k
}

// TypeOf exposes a node's type tag without forcing the caller to go
// through an interface type-assertion.
func (a *Arena) TypeOf(h Handle) KnotType {
	if h == NullHandle {
		return ktNull
	}
	return a.cells[h].Type()
}
