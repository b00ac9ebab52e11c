package transliteration

import (
	"strings"
	"unicode"

	"github.com/jusunglee/gurmukhi/internal/phonetic"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchRomanizer produces a loose key for matching spoken or typed queries
// against Gurmukhi text. It starts from the practical romanization, strips
// diacritics, lowercases, drops apostrophes and collapses doubled letters, so
// "vaahiguroo" and "vahiguru" land close together.
type SearchRomanizer struct {
	enc *phonetic.Encoder
}

func NewSearchRomanizer(enc *phonetic.Encoder) *SearchRomanizer {
	if enc == nil {
		enc = phonetic.NewPractical()
	}
	return &SearchRomanizer{enc: enc}
}

func (s *SearchRomanizer) Romanize(text string) string {
	return foldSearchKey(s.enc.Encode(text))
}

func foldSearchKey(s string) string {
	// transform.Chain keeps state, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	var prev rune
	for _, r := range strings.ToLower(folded) {
		if r == '\'' {
			continue
		}
		if r == prev && unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
