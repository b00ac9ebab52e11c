// Package gurmukhi holds the code points and the canonicalization pass shared
// by the legacy decoder and the phonetic encoders.
package gurmukhi

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Marks and symbols that drive the parsing rules.
const (
	AdakBindi   = 'ਁ' // udaat
	Bindi       = 'ਂ'
	Visarga     = 'ਃ'
	Nukta       = '਼'
	Sihari      = 'ਿ'
	Virama      = '੍'
	Tippi       = 'ੰ'
	Addak       = 'ੱ'
	Iri         = 'ੲ'
	Oora        = 'ੳ'
	IkOnkar     = 'ੴ'
	Yakash      = 'ੵ'
	Yayya       = 'ਯ'
	Danda       = '।'
	DoubleDanda = '॥'
)

// Block is the Gurmukhi Unicode block.
var Block = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0A00, Hi: 0x0A7F, Stride: 1}},
}

// IsGurmukhi reports whether r belongs to the Gurmukhi block.
func IsGurmukhi(r rune) bool {
	return unicode.Is(Block, r)
}

// ContainsGurmukhi reports whether s has at least one Gurmukhi code point.
func ContainsGurmukhi(s string) bool {
	return strings.IndexFunc(s, IsGurmukhi) >= 0
}

// Precomposed Persian-derived letters keyed by their base consonant. These are
// composition exclusions, so NFC leaves them decomposed.
var nuktaForms = map[rune]rune{
	'ਲ': 'ਲ਼', // ਲ਼
	'ਸ': 'ਸ਼', // ਸ਼
	'ਖ': 'ਖ਼', // ਖ਼
	'ਗ': 'ਗ਼', // ਗ਼
	'ਜ': 'ਜ਼', // ਜ਼
	'ਫ': 'ਫ਼', // ਫ਼
}

// Precomposed returns the precomposed letter for base+nukta, if one exists.
func Precomposed(base rune) (rune, bool) {
	r, ok := nuktaForms[base]
	return r, ok
}

// Canonicalize applies canonical composition and then folds every base+nukta
// pair that has a precomposed Persian-derived letter into that letter, so both
// spellings share one representation. ਕ਼ and ਅ਼ stay decomposed.
//
// Canonicalize is idempotent.
func Canonicalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	if !strings.ContainsRune(s, Nukta) {
		return s
	}

	rs := []rune(s)
	out := rs[:0]
	for i := 0; i < len(rs); i++ {
		if i+1 < len(rs) && rs[i+1] == Nukta {
			if p, ok := nuktaForms[rs[i]]; ok {
				out = append(out, p)
				i++
				continue
			}
		}
		out = append(out, rs[i])
	}
	return string(out)
}
