/*
Package reconstitute walks a run of character codes through a font's
ligature/kern program and emits the equivalent flat sequence of character,
ligature and kern nodes — the step TeX calls "reconstitution".

Loading or parsing an actual font program is out of scope here (that is a
glyph-shaping concern); this package only consumes the small contract a
shaped font exposes: Program. Callers wanting to reconstitute text
shaped by a real font provide their own implementation of that interface.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reconstitute

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Opcode groups a lig/kern program entry may dispatch on.
type Opcode int8

const (
	OpFuseAdvance     Opcode = iota // default: fuse left+right, advance
	OpLeftReplace                   // 1, 5: left -> replacement; consume nothing right
	OpRightReplace                  // 2, 6: right -> replacement; consume right into stack
	OpCascade                       // 3: three-way cascade via lig_stack
	OpCommitThenFuse                // 7, 11: commit pending ligature first, then fuse
)

// StopHere is the bit TeX calls "bit 2 set": the opcode commits the
// ligature without advancing the cursor.
const StopHere = 0x04

// Program is the contract a shaped font exposes for reconstitution: given a
// pair of adjacent character codes, what does the font's ligature/kern
// table say to do?
//
// Width reports a character's natural advance width (needed when a program
// entry fuses characters into a CharNode or LigatureNode). FontID
// identifies which font this program belongs to, so a Reconstitutor can
// refuse to span codes belonging to different fonts.
type Program interface {
	FontID() khipu.FontID
	Lookup(left, right rune) (Opcode, replacement rune, kernWidth dimen.DU, matched bool)
	Width(r rune) dimen.DU
}

// lig_stack entry: a pending right-context character still awaiting fusion.
type pending struct {
	char rune
}

// Reconstitutor holds the cursor state TeX's reconstitute algorithm
// threads through a run: cur_l/cur_r, the boundary-hit flags, the pending
// ligature stack, and whether a hyphen probe was ever matched.
type Reconstitutor struct {
	prog           Program
	ligStack       *arraystack.Stack
	leftBoundary   bool // lft_hit: did the program match a start-of-word marker?
	rightBoundary  bool // rt_hit: did the program match an end-of-word marker?
	ligaturePresent bool
	hyphenPassed   int // -1 if no hyphen probe matched; else the position it matched at
}

// New creates a Reconstitutor bound to a font's lig/kern program.
func New(prog Program) *Reconstitutor {
	return &Reconstitutor{prog: prog, ligStack: arraystack.New(), hyphenPassed: -1}
}

// HyphenPassed reports the position (if any) at which an opcode matched
// against the hyphen probe rather than the real right-hand character — a
// discretionary break there is legal even though the ligature program would
// otherwise have crossed it.
func (r *Reconstitutor) HyphenPassed() (int, bool) {
	if r.hyphenPassed < 0 {
		return 0, false
	}
	return r.hyphenPassed, true
}

// Reconstitute consumes codes[j:n] (all belonging to the same font), using
// the ligature/kern program, and appends the resulting character, ligature
// and kern nodes to out. bchar is the code following the word (for matching
// end-of-word ligatures); hchar is the hyphen character substituted at odd
// hyf positions so hyphenation-sensitive patterns can still trigger.
//
// Returns the index one past the last code consumed (TeX's advanced `j`).
func (r *Reconstitutor) Reconstitute(out *khipu.Khipu, codes []rune, j, n int, bchar rune,
	hchar rune, oddHyf func(pos int) bool) int {
	//
	if j >= n || j >= len(codes) {
		return j
	}
	curL := codes[j]
	var pendingKern dimen.DU
	hasKern := false
	i := j + 1
	for {
		var curR rune
		var curRh rune
		haveRh := false
		if i < n && i < len(codes) {
			curR = codes[i]
		} else {
			curR = bchar
		}
		if oddHyf != nil && oddHyf(i) {
			curRh = hchar
			haveRh = true
		}
		op, repl, kern, matched := r.prog.Lookup(curL, curR)
		if !matched && haveRh {
			op, repl, kern, matched = r.prog.Lookup(curL, curRh)
			if matched {
				r.hyphenPassed = i
			}
		}
		if !matched {
			r.flushKern(out, &pendingKern, &hasKern)
			r.commitLigature(out, curL)
			if i >= n || i >= len(codes) {
				return i // curR was bchar, not a code of this run
			}
			curL = curR
			i++
			continue
		}
		switch op {
		case OpLeftReplace:
			curL = repl
			r.ligaturePresent = true
		case OpRightReplace:
			r.ligStack.Push(pending{char: curR})
			i++
			r.ligaturePresent = true
		case OpCascade:
			curL = r.cascade(curL, repl)
			i++
		case OpCommitThenFuse:
			r.commitLigature(out, curL)
			curL = repl
			i++
		default: // OpFuseAdvance
			curL = repl
			i++
			r.ligaturePresent = true
		}
		if kern != 0 {
			pendingKern += kern
			hasKern = true
		}
		if i > n || i-1 >= len(codes) {
			break
		}
	}
	r.commitLigature(out, curL)
	r.flushKern(out, &pendingKern, &hasKern)
	return i
}

// commitLigature flushes the pending lig_stack (if any) and the current
// left participant into an output node: a LigatureNode if any ligature
// fired during the run, otherwise a plain CharNode.
func (r *Reconstitutor) commitLigature(out *khipu.Khipu, left rune) {
	if r.ligStack.Empty() && !r.ligaturePresent {
		out.AppendKnot(r.charNode(left))
		return
	}
	orig := khipu.NewKhipu()
	orig.AppendKnot(r.charNode(left))
	for !r.ligStack.Empty() {
		v, _ := r.ligStack.Pop()
		p := v.(pending)
		orig.AppendKnot(r.charNode(p.char))
	}
	out.AppendKnot(&khipu.LigatureNode{
		Font:     r.prog.FontID(),
		Char:     left,
		Width:    r.prog.Width(left),
		Original: orig,
	})
	r.ligaturePresent = false
}

func (r *Reconstitutor) cascade(left, mid rune) rune {
	r.ligStack.Push(pending{char: mid})
	return left
}

func (r *Reconstitutor) flushKern(out *khipu.Khipu, pendingKern *dimen.DU, hasKern *bool) {
	if *hasKern {
		out.AppendKnot(khipu.KernNode{Width: *pendingKern, Kind: khipu.KernNormal})
		*pendingKern = 0
		*hasKern = false
	}
}

func (r *Reconstitutor) charNode(c rune) khipu.CharNode {
	return khipu.CharNode{Font: r.prog.FontID(), Char: c, Width: r.prog.Width(c)}
}
