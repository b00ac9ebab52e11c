// Package legacy converts text typed with the AnmolLipi keyboard layout, the
// ASCII encoding used by legacy Gurmukhi fonts, into Unicode Gurmukhi.
package legacy

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jusunglee/gurmukhi/internal/gurmukhi"
	"github.com/jusunglee/gurmukhi/internal/logger"
)

// Encoding names a legacy keyboard layout.
type Encoding string

// AnmolLipi is the only supported layout.
const AnmolLipi Encoding = "anmollipi"

// UnsupportedEncodingError is returned when a caller asks for a layout other
// than AnmolLipi. It is never returned because of the text itself.
type UnsupportedEncodingError struct {
	Encoding Encoding
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported encoding: %s", e.Encoding)
}

// ParseEncoding normalizes an encoding name. Matching ignores case and
// surrounding whitespace.
func ParseEncoding(name string) (Encoding, error) {
	if Encoding(strings.ToLower(strings.TrimSpace(name))) == AnmolLipi {
		return AnmolLipi, nil
	}
	return "", &UnsupportedEncodingError{Encoding: Encoding(name)}
}

// Decoder converts legacy text to Unicode. A Decoder holds no per-call state
// and is safe for concurrent use.
type Decoder struct {
	log *slog.Logger
}

type Option func(*Decoder)

// WithLogger sets the sink for unknown-character diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(d *Decoder) {
		if log != nil {
			d.log = log
		}
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: logger.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode converts text with the default decoder.
func Decode(text string, enc Encoding) (string, error) {
	return defaultDecoder.Decode(text, enc)
}

// Decode converts text typed in the given layout to canonical Unicode.
//
// The input is scanned once, left to right. Multi-key combinations win over
// single keys, longest first. Sihari is typed before its consonant, so it is
// held in a single pending slot and written after the next base letter and
// any subjoined letters that follow it. Unknown keys are skipped.
func (d *Decoder) Decode(text string, enc Encoding) (string, error) {
	if _, err := ParseEncoding(string(enc)); err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}

	rs := []rune(text)
	out := make([]string, 0, len(rs))
	pending := -1

	for i := 0; i < len(rs); {
		if repl, n, ok := matchSpecial(rs, i); ok {
			out = append(out, repl)
			i += n
			continue
		}

		r := rs[i]
		if r == sihariKey {
			pending = len(out)
			i++
			continue
		}

		if base, ok := singles[r]; ok {
			basePos := len(out)
			out = append(out, base)
			i++
			for i < len(rs) {
				sub, ok := subjoined[rs[i]]
				if !ok {
					break
				}
				out = append(out, sub)
				i++
			}
			if pending >= 0 && pending <= basePos {
				out = append(out, string(gurmukhi.Sihari))
				pending = -1
			}
			continue
		}

		if r != 0 && r != utf8.RuneError {
			d.log.Warn("unknown legacy character", "char", string(r), "code", fmt.Sprintf("U+%04X", r), "position", i)
		}
		i++
	}

	if pending >= 0 {
		out = append(out, string(gurmukhi.Sihari))
	}

	return gurmukhi.Canonicalize(strings.Join(out, "")), nil
}
