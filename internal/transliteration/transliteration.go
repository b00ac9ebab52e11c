// Package transliteration ties the legacy decoder and the phonetic encoders
// together behind a single request type.
package transliteration

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/jusunglee/gurmukhi/internal/gurmukhi"
	"github.com/jusunglee/gurmukhi/internal/legacy"
	"github.com/jusunglee/gurmukhi/internal/logger"
	"github.com/jusunglee/gurmukhi/internal/metrics"
	"github.com/jusunglee/gurmukhi/internal/phonetic"
	"github.com/samber/lo"
)

// Style selects the output form of a conversion.
type Style string

const (
	StyleUnicode   Style = "unicode"
	StyleISO15919  Style = "iso15919"
	StylePractical Style = "practical"
	StyleSearch    Style = "search"
)

// Styles lists every output style in display order.
var Styles = []Style{StyleUnicode, StyleISO15919, StylePractical, StyleSearch}

// UnicodeInput marks request text that is already Unicode Gurmukhi.
const UnicodeInput legacy.Encoding = "unicode"

type UnsupportedStyleError struct {
	Style Style
}

func (e *UnsupportedStyleError) Error() string {
	return fmt.Sprintf("unsupported style: %s", e.Style)
}

// ParseStyle normalizes a style name, ignoring case and surrounding space.
func ParseStyle(name string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	if lo.Contains(Styles, s) {
		return s, nil
	}
	return "", &UnsupportedStyleError{Style: Style(name)}
}

// Request is one conversion. An empty Encoding means the text is Unicode; an
// empty Style means StyleISO15919.
type Request struct {
	Text     string
	Encoding legacy.Encoding
	Style    Style
}

// StyleOrDefault returns the requested style, or StyleISO15919 when unset.
func (r Request) StyleOrDefault() Style {
	if r.Style == "" {
		return StyleISO15919
	}
	return r.Style
}

// EncodingName is the encoding as recorded in history and metrics.
func (r Request) EncodingName() string {
	if r.Encoding == "" {
		return string(UnicodeInput)
	}
	return strings.ToLower(strings.TrimSpace(string(r.Encoding)))
}

// Romanizer is an alternate romanization engine used for StyleSearch.
type Romanizer interface {
	Romanize(text string) string
}

type options struct {
	log       *slog.Logger
	debug     bool
	romanizer Romanizer
}

type Option func(*options)

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDebug turns on diagnostics the scholarly encoder keeps quiet by default.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithRomanizer replaces the engine behind StyleSearch.
func WithRomanizer(r Romanizer) Option {
	return func(o *options) {
		o.romanizer = r
	}
}

// Transliterator converts requests. It is safe for concurrent use.
type Transliterator struct {
	log       *slog.Logger
	decoder   *legacy.Decoder
	scholarly *phonetic.Encoder
	practical *phonetic.Encoder
	romanizer Romanizer
}

func New(opts ...Option) *Transliterator {
	o := options{log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Transliterator{
		log:       o.log,
		decoder:   legacy.NewDecoder(legacy.WithLogger(o.log)),
		scholarly: phonetic.NewScholarly(phonetic.WithLogger(o.log), phonetic.WithDebug(o.debug)),
		practical: phonetic.NewPractical(phonetic.WithLogger(o.log), phonetic.WithDebug(o.debug)),
		romanizer: o.romanizer,
	}
	if t.romanizer == nil {
		t.romanizer = NewSearchRomanizer(t.practical)
	}
	return t
}

// Transliterate decodes req.Text if it is in a legacy layout and renders it in
// req.Style.
func (t *Transliterator) Transliterate(req Request) (string, error) {
	style, err := ParseStyle(string(req.StyleOrDefault()))
	if err != nil {
		metrics.ConversionErrors.WithLabelValues("style").Inc()
		return "", err
	}

	text, err := t.toUnicode(req.Text, req.Encoding)
	if err != nil {
		metrics.ConversionErrors.WithLabelValues("encoding").Inc()
		return "", err
	}

	if req.EncodingName() == string(UnicodeInput) && missingGurmukhi(req.Text) {
		t.log.Warn("unicode input has no Gurmukhi letters, it may be in a legacy layout",
			"text", req.Text, "hint", "-encoding anmollipi")
	}

	out := t.render(text, style)
	metrics.ConversionsTotal.WithLabelValues(string(style), req.EncodingName()).Inc()
	metrics.InputBytes.Observe(float64(len(req.Text)))
	t.log.Debug("transliterated", "style", style, "scheme", t.scheme(style), "encoding", req.EncodingName(), "in", len(req.Text), "out", len(out))
	return out, nil
}

// Variants renders text in every style.
func (t *Transliterator) Variants(text string, enc legacy.Encoding) (map[Style]string, error) {
	uni, err := t.toUnicode(text, enc)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(Styles, func(s Style) (Style, string) {
		return s, t.render(uni, s)
	}), nil
}

func (t *Transliterator) toUnicode(text string, enc legacy.Encoding) (string, error) {
	if enc == "" || strings.EqualFold(strings.TrimSpace(string(enc)), string(UnicodeInput)) {
		return gurmukhi.Canonicalize(text), nil
	}
	parsed, err := legacy.ParseEncoding(string(enc))
	if err != nil {
		return "", err
	}
	return t.decoder.Decode(text, parsed)
}

// missingGurmukhi reports whether text has letters but none of them Gurmukhi.
func missingGurmukhi(text string) bool {
	return strings.IndexFunc(text, unicode.IsLetter) >= 0 && !gurmukhi.ContainsGurmukhi(text)
}

// scheme names the engine that renders style.
func (t *Transliterator) scheme(style Style) string {
	switch style {
	case StyleISO15919:
		return t.scholarly.Name()
	case StylePractical:
		return t.practical.Name()
	case StyleSearch:
		return fmt.Sprintf("%T", t.romanizer)
	default:
		return string(style)
	}
}

func (t *Transliterator) render(text string, style Style) string {
	switch style {
	case StyleISO15919:
		return t.scholarly.Encode(text)
	case StylePractical:
		return t.practical.Encode(text)
	case StyleSearch:
		return t.romanizer.Romanize(text)
	default:
		return text
	}
}
