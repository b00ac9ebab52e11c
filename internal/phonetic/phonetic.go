// Package phonetic romanizes Unicode Gurmukhi.
//
// Two schemes share one parser: the scholarly scheme follows ISO 15919 and the
// practical scheme is an informal spelling meant for search and display. They
// differ only in their tables and in how they treat nasal marks and the
// inherent vowel at the end of a word.
package phonetic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/jusunglee/gurmukhi/internal/gurmukhi"
	"github.com/jusunglee/gurmukhi/internal/logger"
)

type unitKind int

const (
	noUnit unitKind = iota
	consonantUnit
	vowelUnit
	signUnit
)

// scheme is one romanization: its closed tables plus the policies that tell
// the schemes apart. Schemes are built once and never modified.
type scheme struct {
	name string

	special     map[rune]string
	punctuation map[rune]string
	digits      map[rune]string
	vowels      map[rune]string
	signs       map[rune]string
	consonants  map[rune]string
	nuktaForms  map[rune]string // base consonant followed by nukta
	modifiers   map[rune]string

	inherent      string
	syllableBreak string // written before an independent vowel that follows the inherent vowel; empty disables it

	// nasal renders tippi or bindi given the code point after the mark (0 at
	// end of text).
	nasal func(mark, next rune) string
	// wordFinal reports whether rs[i] ends a word for the purpose of dropping
	// the inherent vowel. nil means the inherent vowel is never dropped there.
	wordFinal func(rs []rune, i int) bool

	unknownLevel slog.Level
	quietUnknown bool // unknown characters are reported only in debug mode
}

// Encoder converts Unicode Gurmukhi to one romanization. It keeps no state
// between calls and is safe for concurrent use.
type Encoder struct {
	scheme *scheme
	log    *slog.Logger
	debug  bool
}

type Option func(*Encoder)

// WithLogger sets the sink for unknown-character diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Encoder) {
		if log != nil {
			e.log = log
		}
	}
}

// WithDebug enables diagnostics that a scheme keeps quiet by default.
func WithDebug(debug bool) Option {
	return func(e *Encoder) {
		e.debug = debug
	}
}

func newEncoder(s *scheme, opts []Option) *Encoder {
	e := &Encoder{scheme: s, log: logger.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name identifies the romanization scheme.
func (e *Encoder) Name() string {
	return e.scheme.name
}

// Encode romanizes text. It never fails: characters outside the scheme's
// tables are skipped and reported to the logger.
func (e *Encoder) Encode(text string) string {
	if text == "" {
		return ""
	}
	s := e.scheme
	rs := []rune(gurmukhi.Canonicalize(text))

	var b strings.Builder
	b.Grow(len(rs) * 2)

	for i := 0; i < len(rs); {
		r := rs[i]

		if v, ok := s.special[r]; ok {
			b.WriteString(v)
			i++
			continue
		}
		if v, ok := s.punctuation[r]; ok {
			b.WriteString(v)
			i++
			continue
		}
		if v, ok := s.digits[r]; ok {
			b.WriteString(v)
			i++
			continue
		}

		val, kind, width := s.unit(rs, i)
		if kind == noUnit {
			if _, ok := s.modifiers[r]; ok {
				b.WriteString(s.strayModifier(rs, i))
			} else {
				e.unknown(r, i)
			}
			i++
			continue
		}
		j := i + width

		// Addak doubles the consonant after it.
		if j+1 < len(rs) && rs[j] == gurmukhi.Addak {
			if next, nextKind, nextWidth := s.unit(rs, j+1); nextKind == consonantUnit {
				b.WriteString(val)
				if kind == consonantUnit {
					b.WriteString(s.inherent)
				}
				b.WriteString(geminate(next))
				i = j + 1 + nextWidth
				if s.keepsInherent(rs, i) {
					b.WriteString(s.inherent)
				}
				continue
			}
		}

		if j < len(rs) && (rs[j] == gurmukhi.Tippi || rs[j] == gurmukhi.Bindi) {
			b.WriteString(val)
			if kind == consonantUnit {
				b.WriteString(s.inherent)
			}
			b.WriteString(s.nasal(rs[j], at(rs, j+1)))
			i = j + 1
			continue
		}

		// Two vowels in a row are separate syllables, not a diphthong.
		// This also fires after any value that merely ends in the inherent
		// vowel letter.
		if kind == vowelUnit && s.syllableBreak != "" && strings.HasSuffix(b.String(), s.inherent) {
			b.WriteString(s.syllableBreak)
		}

		b.WriteString(val)
		i = j
		if kind != consonantUnit {
			continue
		}

		// Conjuncts: virama or yakash joins the next consonant into the
		// same syllable.
		for i < len(rs) {
			if rs[i] == gurmukhi.Yakash {
				b.WriteString(s.consonants[gurmukhi.Yayya])
				i++
				continue
			}
			if rs[i] == gurmukhi.Virama && i+1 < len(rs) {
				if next, nextKind, nextWidth := s.unit(rs, i+1); nextKind == consonantUnit {
					b.WriteString(next)
					i += 1 + nextWidth
					continue
				}
			}
			break
		}

		if s.keepsInherent(rs, i) {
			b.WriteString(s.inherent)
		}
	}

	return b.String()
}

// unit reads the grapheme at rs[i]: a consonant with an optional nukta, an
// independent vowel, or a vowel sign. width is the number of runes consumed.
func (s *scheme) unit(rs []rune, i int) (val string, kind unitKind, width int) {
	r := rs[i]
	hasNukta := at(rs, i+1) == gurmukhi.Nukta
	width = 1
	if hasNukta {
		width = 2
	}

	if v, ok := s.consonants[r]; ok {
		if hasNukta {
			if nv, ok := s.nuktaForms[r]; ok {
				return nv, consonantUnit, 2
			}
		}
		return v, consonantUnit, width
	}
	if v, ok := s.vowels[r]; ok {
		return v, vowelUnit, width
	}
	if v, ok := s.signs[r]; ok {
		return v, signUnit, 1
	}
	return "", noUnit, 1
}

// keepsInherent reports whether a consonant whose successor is rs[i] carries
// the inherent vowel.
func (s *scheme) keepsInherent(rs []rune, i int) bool {
	if i < len(rs) {
		if _, ok := s.signs[rs[i]]; ok {
			return false
		}
		if rs[i] == gurmukhi.Virama {
			return false
		}
	}
	if s.wordFinal != nil && s.wordFinal(rs, i) {
		return false
	}
	return true
}

// strayModifier renders a mark that no rule consumed together with its base.
func (s *scheme) strayModifier(rs []rune, i int) string {
	if r := rs[i]; r == gurmukhi.Tippi || r == gurmukhi.Bindi {
		return s.nasal(r, at(rs, i+1))
	}
	return s.modifiers[rs[i]]
}

func (e *Encoder) unknown(r rune, pos int) {
	if e.scheme.quietUnknown && !e.debug {
		return
	}
	e.log.Log(context.Background(), e.scheme.unknownLevel, "unknown character",
		"scheme", e.scheme.name,
		"char", string(r),
		"code", fmt.Sprintf("U+%04X", r),
		"position", pos,
	)
}

// geminate doubles a consonant value. For aspirates only the onset is
// repeated: kh becomes kkh, not khkh.
func geminate(v string) string {
	rs := []rune(v)
	if len(rs) > 1 && rs[len(rs)-1] == 'h' {
		return string(rs[:len(rs)-1]) + v
	}
	return v + v
}

func at(rs []rune, i int) rune {
	if i < 0 || i >= len(rs) {
		return 0
	}
	return rs[i]
}

// endsWord reports whether rs[i] is past the end of text, whitespace, or
// punctuation that closes a word.
func endsWord(rs []rune, i int) bool {
	if i >= len(rs) {
		return true
	}
	switch r := rs[i]; r {
	case gurmukhi.Danda, gurmukhi.DoubleDanda, '.', '?', '!', ',', ';', ':', '"':
		return true
	default:
		return unicode.IsSpace(r)
	}
}
