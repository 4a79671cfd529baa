/*
Package hyphenate implements Liang-style pattern hyphenation: an exception
dictionary consulted first, a packed pattern trie consulted otherwise,
followed by masking of the word's hyphen-unsafe edges and splicing of
DiscNodes into the paragraph at each legal break.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hyphenate

import (
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parabreak/core/dimen"
	"github.com/npillmayer/parabreak/khipu"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Hyphenator combines an exception dictionary and a per-language pattern
// set, the way TeX consults \hyphenation{} exceptions before falling back
// to the pattern trie.
type Hyphenator struct {
	exceptions *ExceptionDict
	patterns   map[string]*PatternSet // keyed by language
}

// New creates an empty Hyphenator. Use AddException and AddPattern to
// populate it before hyphenating.
func New() *Hyphenator {
	return &Hyphenator{
		exceptions: NewExceptionDict(),
		patterns:   make(map[string]*PatternSet),
	}
}

// AddException records an exception-dictionary entry for a language, e.g.
// AddException("en", "as-so-ciate").
func (h *Hyphenator) AddException(language, word string) {
	h.exceptions.Add(language, word)
}

// AddPattern records a Liang pattern for a language, e.g.
// AddPattern("en", "hel1lo").
func (h *Hyphenator) AddPattern(language, pattern string) {
	ps, ok := h.patterns[language]
	if !ok {
		ps = NewPatternSet()
		h.patterns[language] = ps
	}
	ps.AddPattern(pattern)
}

// HyphenateWord computes the legal hyphenation positions within word for a
// given language, honoring the left/right hyphen-min guard (no break within
// leftHyfMin characters of the start, or rightHyfMin of the end). Returns
// the sorted positions (a position p means "a break is legal between
// word[p-1] and word[p]") and whether any were found.
func (h *Hyphenator) HyphenateWord(word string, language string, leftHyfMin, rightHyfMin int) ([]int, bool) {
	lower := []rune(strings.ToLower(word))
	if pos, ok := h.exceptions.Lookup(language, lower); ok {
		pos = maskPositions(pos, len(lower), leftHyfMin, rightHyfMin)
		return pos, len(pos) > 0
	}
	ps := h.patterns[language]
	if ps == nil {
		return nil, false
	}
	bounded := make([]rune, 0, len(lower)+2)
	bounded = append(bounded, '.')
	bounded = append(bounded, lower...)
	bounded = append(bounded, '.')
	hyf := make([]int8, len(bounded)+1)
	ps.Apply(bounded, hyf)
	// hyf is indexed over the bounded word; translate to positions within
	// the unbounded word (offset by the leading '.').
	var positions []int
	for p := 1; p <= len(lower); p++ {
		if hyf[p+1]%2 == 1 { // odd weight: legal break
			positions = append(positions, p)
		}
	}
	positions = maskPositions(positions, len(lower), leftHyfMin, rightHyfMin)
	return positions, len(positions) > 0
}

// maskPositions drops positions within leftHyfMin of the start or
// rightHyfMin of the end.
func maskPositions(positions []int, wordlen, leftHyfMin, rightHyfMin int) []int {
	var kept []int
	for _, p := range positions {
		if p < leftHyfMin || p > wordlen-rightHyfMin {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// SpliceNativeWord splices a NativeWordNode, plus the hyphenation positions
// found for it, into a khipu of alternating NativeWordNodes and DiscNodes —
// the native-word path of the splicing step: each odd-hyf position becomes
// a DiscNode whose replacement is the language's hyphen character.
func SpliceNativeWord(word *khipu.NativeWordNode, positions []int, hyphenChar rune, font khipu.FontID) *khipu.Khipu {
	out := khipu.NewKhipu()
	if len(positions) == 0 {
		out.AppendKnot(asWhatsit(word))
		return out
	}
	start := 0
	for _, p := range positions {
		if p <= start || p > len(word.Chars) {
			continue
		}
		out.AppendKnot(asWhatsit(sliceNativeWord(word, start, p, font)))
		out.AppendKnot(&khipu.DiscNode{
			PreBreak:   hyphenKhipu(hyphenChar, font),
			HyphenChar: hyphenChar,
		})
		start = p
	}
	if start < len(word.Chars) {
		out.AppendKnot(asWhatsit(sliceNativeWord(word, start, len(word.Chars), font)))
	}
	return out
}

// asWhatsit wraps a NativeWordNode as the Knot the khipu storage expects;
// NativeWordNode itself only satisfies Whatsit, not Knot.
func asWhatsit(word *khipu.NativeWordNode) khipu.WhatsitNode {
	return khipu.WhatsitNode{Payload: *word}
}

func sliceNativeWord(word *khipu.NativeWordNode, from, to int, font khipu.FontID) *khipu.NativeWordNode {
	chars := append([]rune(nil), word.Chars[from:to]...)
	w := &khipu.NativeWordNode{
		Font:  word.Font,
		Chars: chars,
		Text:  string(chars),
	}
	if word.CharWidths != nil {
		w.CharWidths = append([]dimen.DU(nil), word.CharWidths[from:to]...)
	}
	return w
}

func hyphenKhipu(hyphenChar rune, font khipu.FontID) *khipu.Khipu {
	kh := khipu.NewKhipu()
	kh.AppendKnot(khipu.CharNode{Font: font, Char: hyphenChar})
	return kh
}
