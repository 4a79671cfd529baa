package hyphenate

import (
	"strings"

	"github.com/derekparker/trie"
)

// PatternSet is a Liang-style packed hyphenation pattern set for one
// language: the systems-language rendition of the trie_trl/trie_trc/trie_tro
// triple, backed by a real packed trie instead of hand-rolled arrays.
//
// A pattern such as "hel1lo" (conventional Liang notation: digits are
// interhyphenation weights, default weight 0 where a digit is omitted)
// is split into its letters ("hello") and a parallel weights array
// ([]int8 of len(letters)+1) before being inserted, keyed by the letters.
type PatternSet struct {
	t *trie.Trie
}

// NewPatternSet creates an empty pattern set.
func NewPatternSet() *PatternSet {
	return &PatternSet{t: trie.New()}
}

// AddPattern inserts one Liang pattern, given in conventional dotted
// notation (a leading/trailing '.' anchors the pattern to a word boundary,
// e.g. ".hel1" or "1ow.").
func (p *PatternSet) AddPattern(pattern string) {
	letters, weights := parseLiangPattern(pattern)
	if letters == "" {
		return
	}
	p.t.Add(letters, weights)
}

// parseLiangPattern splits a Liang pattern into its letters and the
// weights between (and around) them.
func parseLiangPattern(pattern string) (string, []int8) {
	var letters strings.Builder
	weights := make([]int8, 0, len(pattern)+1)
	weights = append(weights, 0) // weight before the first letter
	for _, r := range pattern {
		if r >= '0' && r <= '9' {
			weights[len(weights)-1] = int8(r - '0')
			continue
		}
		letters.WriteRune(r)
		weights = append(weights, 0)
	}
	return letters.String(), weights
}

// Apply scans a dot-anchored word (".word.", lowercase-mapped) against
// every pattern in the set, OR-ing (by max) each matching pattern's weights
// into hyf, the way TeX's trie walk does: for every start position, try
// successively longer substrings, and whenever one names an inserted
// pattern, merge its weights in at the matching offset.
func (p *PatternSet) Apply(boundedWord []rune, hyf []int8) {
	n := len(boundedWord)
	for start := 0; start < n; start++ {
		for length := 1; start+length <= n; length++ {
			key := string(boundedWord[start : start+length])
			node, ok := p.t.Find(key)
			if !ok {
				continue
			}
			weights, ok := node.Meta().([]int8)
			if !ok {
				continue
			}
			for i, w := range weights {
				pos := start + i
				if pos < 0 || pos >= len(hyf) {
					continue
				}
				if w > hyf[pos] {
					hyf[pos] = w
				}
			}
		}
	}
}
