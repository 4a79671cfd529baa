/*
Package linebreak collects the vocabulary shared by every paragraph
line-breaking algorithm: elastic widths, breaking parameters, and the
Cursor/ParShape abstractions a breaker scans a horizontal list through.

https://quod.lib.umich.edu/j/jep/3336451.0013.105?view=text;rgn=main

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package linebreak

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/core/params"
	"github.com/npillmayer/parabreak/khipu"
)

// T traces to the global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Merits is the unit of badness/demerits/penalty arithmetic: a signed
// fixed quantity, clamped at InfinityDemerits / InfinityMerits.
type Merits int32

// CharPos addresses a position in the original input text (independent of
// khipu knot position, since one CharNode may stand for several code
// points after reconstitution).
type CharPos int64

// InfinityDemerits is the worst (least desirable) demerit value possible.
const InfinityDemerits Merits = 10000

// InfinityMerits is the best (most desirable, most negative) demerit
// value possible.
const InfinityMerits Merits = -10000

// CapDemerits clamps a demerit value into the representable range.
func CapDemerits(d Merits) Merits {
	if d > InfinityDemerits {
		d = InfinityDemerits
	} else if d < InfinityMerits {
		d = InfinityMerits
	}
	return d
}

// BreakingError reports a structural invariant violation ("confusion", in
// TeX's vocabulary) found while breaking a paragraph: a breakpoint graph
// that can no longer be reconciled with the algorithm's own bookkeeping.
// Tag names the confused subsystem ("paragraph", "disc3", "disc4", "line
// breaking", ...), the short tag the teacher's code would have panicked
// with. Callers can recover from a BreakingError (e.g. skip the paragraph,
// retry with relaxed parameters); only genuinely unrecoverable arena
// exhaustion still panics.
type BreakingError struct {
	Tag string
	Msg string
}

func (e *BreakingError) Error() string {
	return fmt.Sprintf("%s confusion: %s", e.Tag, e.Msg)
}

// NewBreakingError creates a BreakingError for the given subsystem tag.
func NewBreakingError(tag, msg string) *BreakingError {
	return &BreakingError{Tag: tag, Msg: msg}
}

// ----------------------------------------------------------------------

// Parameters is a collection of configuration parameters for line-breaking,
// spec.md §6's "Inputs read" narrowed to what the Feasibility Engine and
// Paragraph Driver consume directly. Scalar engine-wide registers that
// also matter elsewhere (language, hyphen_char, uc_hyph, ...) live in
// Registers instead of being duplicated here.
type Parameters struct {
	PreTolerance         Merits // acceptable badness for the first (rough) pass; <0 disables it
	Tolerance            Merits // acceptable badness for the second pass
	LinePenalty          Merits // flat penalty for any additional line
	HyphenPenalty         Merits // penalty for hyphenating a word
	ExHyphenPenalty       Merits // penalty for an explicit ('\-') discretionary
	DoubleHyphenDemerits  Merits // extra demerits for two consecutive hyphenated lines
	FinalHyphenDemerits   Merits // extra demerits if the next-to-last line is hyphenated
	AdjDemerits           Merits // extra demerits when fit class jumps by more than one step
	Looseness             int32  // desired line-count delta from the demerits-optimal solution
	LastLineFit           int32  // 0 disables; 1..1000 enables last-line-fit (eTeX, per-mille)
	EmergencyStretch      dimen.DU // additional stretch granted only on the final pass

	LeftSkip    khipu.GlueNode // glue at the left edge of every line
	RightSkip   khipu.GlueNode // glue at the right edge of every line
	ParFillSkip khipu.GlueNode // glue appended after the last item of the paragraph

	XetexProtrudeChars   int32 // 0 off, 1 protrude margins, 2 protrude & adjust natural width
	XetexUseGlyphMetrics bool  // derive protrusion amounts from glyph metrics
	Texxet               bool  // eTeX directional (bidi) breakpoint bookkeeping

	InterLinePenalties    []int32 // additional penalty indexed by (1-based) line number
	ClubPenalties         []int32 // penalty for leaving a short first line (a "club line")
	WidowPenalties        []int32 // penalty for a short line preceding the last
	DisplayWidowPenalties []int32 // like WidowPenalties, but before a display

	// Registers carries the scalar engine-wide parameters the Hyphenator
	// and eTeX bookkeeping need (language, hyphen_char, uc_hyph, the
	// hyphen-min pair, min_hyphen_length). May be nil, in which case
	// params.NewRegisters() defaults apply.
	Registers *params.Registers
}

// DefaultParameters are permissive line-breaking parameters, suitable for
// almost always finding an acceptable set of linebreaks.
var DefaultParameters = &Parameters{
	PreTolerance:         100,
	Tolerance:            200,
	LinePenalty:          10,
	HyphenPenalty:        50,
	ExHyphenPenalty:      50,
	DoubleHyphenDemerits: 0,
	FinalHyphenDemerits:  0,
	AdjDemerits:          10000,
	EmergencyStretch:     dimen.DU(dimen.BP * 20),
	LeftSkip:             khipu.NewGlue(0, 0, 0),
	RightSkip:            khipu.NewGlue(0, 0, 0),
	ParFillSkip:          khipu.NewFill(2),
}

// ----------------------------------------------------------------------

// WSS (width, stretch & shrink) holds an elastic width, accumulated across
// the knots a candidate line would span.
type WSS struct {
	W   dimen.DU
	Min dimen.DU
	Max dimen.DU
}

// Spread returns the natural, minimum and maximum widths.
func (wss WSS) Spread() (w dimen.DU, min dimen.DU, max dimen.DU) {
	return wss.W, wss.Min, wss.Max
}

// SetFromKnot sets wss's widths to those of a knot.
func (wss WSS) SetFromKnot(knot khipu.Knot) WSS {
	if knot == nil {
		return wss
	}
	wss.W = knot.W()
	wss.Min = knot.MinW()
	wss.Max = knot.MaxW()
	return wss
}

// Add adds another WSS's dimensions to wss, returning a new WSS.
func (wss WSS) Add(other WSS) WSS {
	return WSS{W: wss.W + other.W, Min: wss.Min + other.Min, Max: wss.Max + other.Max}
}

// Subtract subtracts another WSS's dimensions from wss, returning a new WSS.
func (wss WSS) Subtract(other WSS) WSS {
	return WSS{W: wss.W - other.W, Min: wss.Min - other.Min, Max: wss.Max - other.Max}
}

// Copy copies a WSS.
func (wss WSS) Copy() WSS {
	return WSS{W: wss.W, Min: wss.Min, Max: wss.Max}
}

func (wss WSS) String() string {
	return fmt.Sprintf("{%.2f < %.2f < %.2f}", wss.Min.Points(), wss.W.Points(), wss.Max.Points())
}

// --- Interfaces ---------------------------------------------------------

// Cursor iterates over a khipu, with one-knot lookahead.
type Cursor interface {
	Next() bool
	Knot() khipu.Knot
	Peek() (khipu.Knot, bool)
	Mark() khipu.Mark
	Khipu() *khipu.Khipu
}

// ParShape returns the target line length for a given (1-based) line
// number, generalizing par_shape/hang_indent/hang_after.
type ParShape interface {
	LineLength(line int32) dimen.DU
}

type rectParShape dimen.DU

func (r rectParShape) LineLength(int32) dimen.DU {
	return dimen.DU(r)
}

// RectangularParShape returns a ParShape for paragraphs of constant line
// length.
func RectangularParShape(linelen dimen.DU) ParShape {
	return rectParShape(linelen)
}

// hangingParShape realizes hang_indent/hang_after: lines up to hangAfter
// keep the full width; lines after it are narrowed by hangIndent (a
// negative hangAfter narrows from the first line instead).
type hangingParShape struct {
	width      dimen.DU
	hangIndent dimen.DU
	hangAfter  int32
}

// HangingParShape returns a ParShape mimicking hang_indent/hang_after:
// full-width lines until hangAfter, then lines narrowed by |hangIndent|
// (or, if hangAfter is negative, narrowed from the very first line).
func HangingParShape(width, hangIndent dimen.DU, hangAfter int32) ParShape {
	return &hangingParShape{width: width, hangIndent: hangIndent, hangAfter: hangAfter}
}

// FixedWidthCursor decorates a khipu.Cursor, overriding every CharNode's
// width to a constant cell width plus extra spacing. Useful for tests and
// quick previews that have no real font metrics to consult.
type FixedWidthCursor struct {
	inner *khipu.Cursor
	width dimen.DU
	extra dimen.DU
}

// NewFixedWidthCursor wraps a khipu.Cursor, giving every character a fixed
// width (plus extra) instead of the width baked into its CharNode.
func NewFixedWidthCursor(inner *khipu.Cursor, width, extra dimen.DU) *FixedWidthCursor {
	return &FixedWidthCursor{inner: inner, width: width, extra: extra}
}

func (f *FixedWidthCursor) Next() bool        { return f.inner.Next() }
func (f *FixedWidthCursor) Mark() khipu.Mark  { return f.inner.Mark() }
func (f *FixedWidthCursor) Khipu() *khipu.Khipu { return f.inner.Khipu() }

func (f *FixedWidthCursor) Knot() khipu.Knot {
	return f.fixed(f.inner.Knot())
}

func (f *FixedWidthCursor) Peek() (khipu.Knot, bool) {
	k, ok := f.inner.Peek()
	return f.fixed(k), ok
}

func (f *FixedWidthCursor) fixed(k khipu.Knot) khipu.Knot {
	if c, ok := k.(khipu.CharNode); ok {
		c.Width = f.width + f.extra
		return c
	}
	return k
}

func (h *hangingParShape) LineLength(line int32) dimen.DU {
	narrow := false
	if h.hangAfter >= 0 {
		narrow = line > h.hangAfter
	} else {
		narrow = line <= -h.hangAfter
	}
	if narrow {
		return h.width - dimen.Abs(h.hangIndent)
	}
	return h.width
}
