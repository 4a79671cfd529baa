package khipu

import (
	"fmt"

	"github.com/npillmayer/parabreak/core/dimen"
)

// KnotType distinguishes the different flavours of knots, mirroring the
// node shapes of spec.md §3.1.
type KnotType int8

// Knot types. ktNull is internal (the arena's unused slot 0); client code
// never observes it on a live node.
const (
	ktNull KnotType = iota
	KTChar
	KTList
	KTGlue
	KTKern
	KTLigature
	KTDisc
	KTMath
	KTPenalty
	KTWhatsit
	KTUserDefined // clients should use custom knot types above this
)

// A Knot has a width (possibly elastic) and may be discardable at a line
// break. Every concrete node shape in spec.md §3.1 implements this.
type Knot interface {
	Type() KnotType      // type identifier of this knot
	Subtype() int16      // sub-classification within the type, or 0
	W() dimen.DU         // natural width
	MinW() dimen.DU      // width at maximum shrink
	MaxW() dimen.DU      // width at maximum stretch
	IsDiscardable() bool // may this knot be dropped when found at a break?
}

// FontID is an opaque handle for a font, resolved by the (out-of-scope)
// font-loading collaborator. The breaker never interprets it beyond
// grouping characters destined for the same ligature/kern program.
type FontID int32

// --- CharNode ---------------------------------------------------------

// CharNode is a single character of a given font, the leaf of a
// reconstituted horizontal list (spec.md §3.1 "CharNode").
type CharNode struct {
	Font  FontID
	Char  rune
	Width dimen.DU // advance width, supplied by the (out-of-scope) font metrics
}

func (c CharNode) Type() KnotType      { return KTChar }
func (c CharNode) Subtype() int16      { return 0 }
func (c CharNode) W() dimen.DU         { return c.Width }
func (c CharNode) MinW() dimen.DU      { return c.Width }
func (c CharNode) MaxW() dimen.DU      { return c.Width }
func (c CharNode) IsDiscardable() bool { return false }
func (c CharNode) String() string      { return fmt.Sprintf("%c", c.Char) }

// --- ListNode (HLIST/VLIST/RULE) ---------------------------------------

// ListKind selects which list-like box a ListNode represents.
type ListKind int16

const (
	HListBox ListKind = iota
	VListBox
	RuleBox
)

// ListNode is a packed box (hlist, vlist, or rule) appearing inside a
// horizontal list, e.g. the result of a prior hpack.
type ListNode struct {
	Kind          ListKind
	Width, Height dimen.DU
	Depth         dimen.DU
	Shift         dimen.DU // baseline shift
	Sub           *Khipu   // nested list, nil for rules
}

func (l *ListNode) Type() KnotType      { return KTList }
func (l *ListNode) Subtype() int16      { return int16(l.Kind) }
func (l *ListNode) W() dimen.DU         { return l.Width }
func (l *ListNode) MinW() dimen.DU      { return l.Width }
func (l *ListNode) MaxW() dimen.DU      { return l.Width }
func (l *ListNode) IsDiscardable() bool { return false }

// --- Glue ---------------------------------------------------------------

// GlueSubtype distinguishes ordinary inter-word glue from glue supplied by
// a parameter (left_skip, right_skip, par_fill_skip, ...).
type GlueSubtype int16

const (
	GlueOrdinary GlueSubtype = iota
	GlueParameter
)

// GlueSpec is a shared, reference-counted elastic width. Several GlueNodes
// may point at the same spec (e.g. every inter-word space of a paragraph
// typically shares one). Reference counts must balance per spec.md §5/P6:
// every replaced glue releases a reference, every newly installed glue
// (left_skip, right_skip at a chosen break) takes one.
type GlueSpec struct {
	Width, Shrink, Stretch dimen.DU
	ShrinkOrder            dimen.StretchOrder
	StretchOrder           dimen.StretchOrder
	refcount               int32
}

// NewGlueSpec creates a glue specification with a reference count of one.
func NewGlueSpec(width, shrink, stretch dimen.DU) *GlueSpec {
	return &GlueSpec{Width: width, Shrink: shrink, Stretch: stretch, refcount: 1}
}

// Use increments the reference count and returns the spec, for assigning
// it to a second GlueNode.
func (g *GlueSpec) Use() *GlueSpec {
	if g != nil {
		g.refcount++
	}
	return g
}

// Release decrements the reference count. Callers are not required to
// free the spec at zero (the arena/GC reclaims it); the count exists so
// P6 (refcount conservation) can be checked.
func (g *GlueSpec) Release() {
	if g != nil && g.refcount > 0 {
		g.refcount--
	}
}

// RefCount reports the current reference count, for invariant checking.
func (g *GlueSpec) RefCount() int32 {
	if g == nil {
		return 0
	}
	return g.refcount
}

// GlueNode is a potentially-stretching, potentially-shrinking, always
// discardable space.
type GlueNode struct {
	Spec   *GlueSpec
	Leader *Khipu // optional leader box repeated to fill the glue, nil if none
	Kind   GlueSubtype
}

func (g GlueNode) Type() KnotType      { return KTGlue }
func (g GlueNode) Subtype() int16      { return int16(g.Kind) }
func (g GlueNode) W() dimen.DU         { return g.Spec.Width }
func (g GlueNode) MinW() dimen.DU      { return g.Spec.Width - g.Spec.Shrink }
func (g GlueNode) MaxW() dimen.DU      { return g.Spec.Width + g.Spec.Stretch }
func (g GlueNode) IsDiscardable() bool { return true }
func (g GlueNode) String() string      { return fmt.Sprintf("glue(%s)", g.Spec.Width) }

// NewGlue creates an ordinary glue node with the given natural width,
// shrink and stretch (all first-order/finite).
func NewGlue(width, shrink, stretch dimen.DU) GlueNode {
	return GlueNode{Spec: NewGlueSpec(width, shrink, stretch)}
}

// NewFill creates an infinitely stretchable glue node of the given
// infinity order (1=fil, 2=fill, 3=filll), the shape par_fill_skip usually
// takes.
func NewFill(order int) GlueNode {
	var stretch dimen.DU
	switch order {
	case 3:
		stretch = dimen.Filll
	case 2:
		stretch = dimen.Fill
	default:
		stretch = dimen.Fil
	}
	spec := NewGlueSpec(0, 0, stretch)
	spec.StretchOrder = dimen.OrderOf(stretch)
	return GlueNode{Spec: spec}
}

// --- Kern -----------------------------------------------------------------

// KernSubtype classifies the origin of a kern.
type KernSubtype int16

const (
	KernNormal KernSubtype = iota // from a font's ligature/kern program; discardable
	KernExplicit                  // user-requested, e.g. \kern; a legal, non-discardable break trigger
	KernAccent                    // accent placement
	KernSpaceAdjustment            // inter-word space correction (e.g. after italic correction)
)

// KernNode is a fixed, unshrinkable, unstretchable space.
type KernNode struct {
	Width dimen.DU
	Kind  KernSubtype
}

func (k KernNode) Type() KnotType { return KTKern }
func (k KernNode) Subtype() int16 { return int16(k.Kind) }
func (k KernNode) W() dimen.DU    { return k.Width }
func (k KernNode) MinW() dimen.DU { return k.Width }
func (k KernNode) MaxW() dimen.DU { return k.Width }
func (k KernNode) IsDiscardable() bool {
	return k.Kind == KernNormal
}
func (k KernNode) String() string { return fmt.Sprintf("kern(%s)", k.Width) }

// --- Ligature ---------------------------------------------------------

// Boundary bits record whether a ligature program ever matched a
// start-of-word or end-of-word boundary marker while building this
// ligature (spec.md §4.B "lft_hit"/"rt_hit").
const (
	BoundaryLeft  uint16 = 1 << 0
	BoundaryRight uint16 = 1 << 1
)

// LigatureNode replaces a run of original characters by a single
// (font, char) pair, e.g. "ffi" -> a single ffi-ligature glyph. The
// original characters are retained so hyphenation can still split them.
type LigatureNode struct {
	Font     FontID
	Char     rune
	Width    dimen.DU
	Original *Khipu // the characters this ligature replaces, in order
	Boundary uint16 // BoundaryLeft|BoundaryRight
}

func (l *LigatureNode) Type() KnotType      { return KTLigature }
func (l *LigatureNode) Subtype() int16      { return int16(l.Boundary) }
func (l *LigatureNode) W() dimen.DU         { return l.Width }
func (l *LigatureNode) MinW() dimen.DU      { return l.Width }
func (l *LigatureNode) MaxW() dimen.DU      { return l.Width }
func (l *LigatureNode) IsDiscardable() bool { return false }

// --- Discretionary ------------------------------------------------------

// DiscNode is a hyphenation opportunity: material to splice in if the
// break is taken (PreBreak/PostBreak) and a count of following main-list
// nodes it replaces (ReplaceCount), per spec.md §3.1/§4.E.
type DiscNode struct {
	PreBreak, PostBreak *Khipu
	ReplaceCount        int
	HyphenChar          rune
	Explicit            bool // user-requested (\-) rather than algorithmically inserted
}

func (d *DiscNode) Type() KnotType { return KTDisc }
func (d *DiscNode) Subtype() int16 { return 0 }

// W is part of interface Knot. An un-broken discretionary contributes no
// width to the line.
func (d *DiscNode) W() dimen.DU { return 0 }

// MinW reports the width contributed by PreBreak material, relevant once
// the break is taken.
func (d *DiscNode) MinW() dimen.DU { return khipuWidth(d.PreBreak) }

// MaxW reports the width contributed by PostBreak material.
func (d *DiscNode) MaxW() dimen.DU { return khipuWidth(d.PostBreak) }

func (d *DiscNode) IsDiscardable() bool { return false }

func khipuWidth(kh *Khipu) dimen.DU {
	if kh == nil {
		return 0
	}
	var w dimen.DU
	c := NewCursor(kh)
	for c.Next() {
		w += c.Knot().W()
	}
	return w
}

// --- Math -----------------------------------------------------------

// MathSubtype classifies a MathNode. Values below LCode toggle "math is
// on" (auto_breaking flips its low bit); values at or above LCode carry
// eTeX LR-direction nesting information (spec.md §4.E, §8 S6).
type MathSubtype int8

const (
	MathOn  MathSubtype = iota // entering a math formula
	MathOff                    // leaving a math formula
	LCode                      // threshold: subtypes >= LCode carry LR bits
)

// Directional math subtypes, used to maintain the eTeX LR stack across
// chosen breakpoints.
const (
	LBegin MathSubtype = LCode + iota // opens an L2R run
	LEnd                              // closes an L2R run
	RBegin                            // opens an R2L run
	REnd                              // closes an R2L run
)

// MathNode marks entry/exit of an embedded math formula, or (under eTeX)
// a directional nesting boundary.
type MathNode struct {
	Width dimen.DU
	Kind  MathSubtype
}

func (m MathNode) Type() KnotType      { return KTMath }
func (m MathNode) Subtype() int16      { return int16(m.Kind) }
func (m MathNode) W() dimen.DU         { return m.Width }
func (m MathNode) MinW() dimen.DU      { return m.Width }
func (m MathNode) MaxW() dimen.DU      { return m.Width }
func (m MathNode) IsDiscardable() bool { return false }

// --- Penalty ---------------------------------------------------------------

// Penalty contributes to (or, if negative, subtracts from) the demerits
// of a break considered at this position.
type Penalty int32

// InfinitePenalty and EjectPenalty are the two sentinel magnitudes
// spec.md §4.D step 1 singles out: at or above InfinitePenalty a break is
// forbidden; at or below -InfinitePenalty it is a forced break.
const (
	InfinitePenalty Penalty = 10000
	EjectPenalty    Penalty = -10000
)

func (p Penalty) Type() KnotType      { return KTPenalty }
func (p Penalty) Subtype() int16      { return 0 }
func (p Penalty) W() dimen.DU         { return 0 }
func (p Penalty) MinW() dimen.DU      { return 0 }
func (p Penalty) MaxW() dimen.DU      { return 0 }
func (p Penalty) IsDiscardable() bool { return true }
func (p Penalty) String() string      { return fmt.Sprintf("penalty(%d)", int32(p)) }

// Demerits returns the penalty's raw numeric value.
func (p Penalty) Demerits() int32 { return int32(p) }

// --- Whatsit ---------------------------------------------------------

// Whatsit is the payload of a WhatsitNode: an extension item the breaker
// mostly just measures and passes through.
type Whatsit interface {
	WhatsitName() string
}

// LanguageNode switches the hyphenation language (and l_hyf/r_hyf) at the
// point it occurs.
type LanguageNode struct {
	Lang       string
	LeftHyphenMin, RightHyphenMin int
}

func (LanguageNode) WhatsitName() string { return "language" }

// NativeWordNode is a pre-shaped run of Unicode text with a per-character
// width array, as produced by a shaping engine (out of scope here; this
// breaker only ever measures and, when hyphenating, re-splits one).
type NativeWordNode struct {
	Text       string
	Chars      []rune
	CharWidths []dimen.DU
	Font       FontID
}

func (NativeWordNode) WhatsitName() string { return "native-word" }

func (n NativeWordNode) totalWidth() dimen.DU {
	var w dimen.DU
	for _, cw := range n.CharWidths {
		w += cw
	}
	return w
}

// GlyphNode is a single already-resolved glyph (as opposed to a character
// still subject to font lookup).
type GlyphNode struct {
	Font  FontID
	Glyph uint32
	Width dimen.DU
}

func (GlyphNode) WhatsitName() string { return "glyph" }

// PicNode embeds an external image.
type PicNode struct {
	Width, Height dimen.DU
	Path          string
}

func (PicNode) WhatsitName() string { return "pic" }

// PdfNode embeds a literal PDF content fragment.
type PdfNode struct {
	Width, Height dimen.DU
	Content       []byte
}

func (PdfNode) WhatsitName() string { return "pdf" }

// WhatsitNode wraps any Whatsit payload as a Knot.
type WhatsitNode struct {
	Payload Whatsit
}

func (w WhatsitNode) Type() KnotType { return KTWhatsit }
func (w WhatsitNode) Subtype() int16 { return 0 }

func (w WhatsitNode) W() dimen.DU {
	switch p := w.Payload.(type) {
	case NativeWordNode:
		return p.totalWidth()
	case GlyphNode:
		return p.Width
	case PicNode:
		return p.Width
	case PdfNode:
		return p.Width
	default:
		return 0
	}
}
func (w WhatsitNode) MinW() dimen.DU      { return w.W() }
func (w WhatsitNode) MaxW() dimen.DU      { return w.W() }
func (w WhatsitNode) IsDiscardable() bool { return false }

// KnotString is a debugging helper, returning a short human-readable
// representation of a knot.
func KnotString(k Knot) string {
	if k == nil {
		return "∅"
	}
	switch v := k.(type) {
	case CharNode:
		return v.String()
	case GlueNode:
		return v.String()
	case KernNode:
		return v.String()
	case Penalty:
		return v.String()
	case *DiscNode:
		return "⫶"
	case *LigatureNode:
		return fmt.Sprintf("lig(%c)", v.Char)
	case *ListNode:
		return fmt.Sprintf("box(%s)", v.Width)
	case MathNode:
		return "math"
	case WhatsitNode:
		return fmt.Sprintf("whatsit:%s", v.Payload.WhatsitName())
	default:
		return fmt.Sprintf("%v", k)
	}
}
