package hyphenate

// HyphPrime is the modulus TeX folds exception-word hashes into (its
// HYPH_PRIME, an odd-ish small prime keeping bucket chains short).
const HyphPrime = 607

// exceptionEntry is one bucket-chain member: a language/word pair mapped to
// the hyphenation-legal positions TeX's hyf[] would carry a weight-1 at.
type exceptionEntry struct {
	language  string
	word      string // lowercase-mapped
	positions []int
}

// ExceptionDict is an explicit exception dictionary for words whose correct
// hyphenation the pattern trie gets wrong (or can't reach), keyed the way
// TeX folds it: bucket := foldHash(word) mod HyphPrime, then a linear probe
// of the bucket's chain comparing (length, code sequence).
type ExceptionDict struct {
	buckets map[int][]exceptionEntry
}

// NewExceptionDict creates an empty exception dictionary.
func NewExceptionDict() *ExceptionDict {
	return &ExceptionDict{buckets: make(map[int][]exceptionEntry)}
}

// foldHash computes TeX's h := hc[1]; h := (2h + hc[j]) mod HYPH_PRIME fold
// over a lowercase-mapped word.
func foldHash(word []rune) int {
	if len(word) == 0 {
		return 0
	}
	h := int(word[0])
	for _, c := range word[1:] {
		h = (2*h + int(c)) % HyphPrime
	}
	return h % HyphPrime
}

// Add records an exception: word is given with embedded hyphen markers
// ('-'), e.g. "as-so-ciate"; positions are derived from the marker offsets.
func (e *ExceptionDict) Add(language, word string) {
	plain := make([]rune, 0, len(word))
	var positions []int
	for _, r := range word {
		if r == '-' {
			positions = append(positions, len(plain))
			continue
		}
		plain = append(plain, r)
	}
	bucket := foldHash(plain)
	e.buckets[bucket] = append(e.buckets[bucket], exceptionEntry{
		language:  language,
		word:      string(plain),
		positions: positions,
	})
}

// Lookup probes the exception dictionary for a (language, lowercased word)
// pair, returning the legal hyphenation positions if found.
func (e *ExceptionDict) Lookup(language string, word []rune) ([]int, bool) {
	bucket := foldHash(word)
	for _, entry := range e.buckets[bucket] {
		if entry.language != language || len(entry.word) != len(word) {
			continue
		}
		if entry.word == string(word) {
			return entry.positions, true
		}
	}
	return nil, false
}
