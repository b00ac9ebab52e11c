package transliteration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jusunglee/gurmukhi/internal/legacy"
	"github.com/jusunglee/gurmukhi/internal/logger"
	"github.com/jusunglee/gurmukhi/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input string
		want  Style
	}{
		{"unicode", StyleUnicode},
		{"ISO15919", StyleISO15919},
		{" practical ", StylePractical},
		{"Search", StyleSearch},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStyle("pinyin")
	var styleErr *UnsupportedStyleError
	require.True(t, errors.As(err, &styleErr))
	assert.Equal(t, Style("pinyin"), styleErr.Style)
	assert.EqualError(t, err, "unsupported style: pinyin")
}

func TestTransliterateUnicodeInput(t *testing.T) {
	tr := New()
	tests := []struct {
		style Style
		want  string
	}{
		{StyleUnicode, "ਵਾਹਿਗੁਰੂ"},
		{StyleISO15919, "vāhigurū"},
		{StylePractical, "vaahiguroo"},
		{StyleSearch, "vahiguro"},
		{"", "vāhigurū"},
	}
	for _, tt := range tests {
		got, err := tr.Transliterate(Request{Text: "ਵਾਹਿਗੁਰੂ", Style: tt.style})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "style %q", tt.style)
	}
}

func TestTransliterateLegacyInput(t *testing.T) {
	tr := New()

	got, err := tr.Transliterate(Request{Text: "siqgur", Encoding: legacy.AnmolLipi, Style: StyleUnicode})
	require.NoError(t, err)
	assert.Equal(t, "ਸਤਿਗੁਰ", got)

	got, err = tr.Transliterate(Request{Text: "pRym", Encoding: "AnmolLipi", Style: StyleISO15919})
	require.NoError(t, err)
	assert.Equal(t, "prēma", got)

	got, err = tr.Transliterate(Request{Text: "ਸੰਤ", Encoding: UnicodeInput, Style: StylePractical})
	require.NoError(t, err)
	assert.Equal(t, "sant", got)
}

func TestTransliterateErrors(t *testing.T) {
	tr := New()

	_, err := tr.Transliterate(Request{Text: "siq", Encoding: "gurbaniakhar"})
	var encErr *legacy.UnsupportedEncodingError
	require.True(t, errors.As(err, &encErr))

	_, err = tr.Transliterate(Request{Text: "ਸਤਿ", Style: "braille"})
	var styleErr *UnsupportedStyleError
	require.True(t, errors.As(err, &styleErr))
}

func TestTransliterateEmpty(t *testing.T) {
	tr := New()
	for _, s := range Styles {
		got, err := tr.Transliterate(Request{Style: s})
		require.NoError(t, err)
		assert.Equal(t, "", got, "style %q", s)
	}
}

func TestVariants(t *testing.T) {
	got, err := New().Variants("sMq", legacy.AnmolLipi)
	require.NoError(t, err)
	assert.Equal(t, map[Style]string{
		StyleUnicode:   "ਸੰਤ",
		StyleISO15919:  "saṁta",
		StylePractical: "sant",
		StyleSearch:    "sant",
	}, got)

	_, err = New().Variants("sMq", "unknown")
	assert.Error(t, err)
}

type upperRomanizer struct{}

func (upperRomanizer) Romanize(text string) string { return strings.ToUpper(text) + "!" }

func TestWithRomanizer(t *testing.T) {
	tr := New(WithRomanizer(upperRomanizer{}))
	got, err := tr.Transliterate(Request{Text: "ਸਤਿ", Style: StyleSearch})
	require.NoError(t, err)
	assert.Equal(t, "ਸਤਿ!", got)
}

func TestSearchRomanizer(t *testing.T) {
	r := NewSearchRomanizer(nil)
	tests := []struct {
		input string
		want  string
	}{
		{"ੴ", "ik oankar"},
		{"ਕਈ", "kae"},
		{"ਪੱਕਾ", "paka"},
		{"ਟਿੱਕਾ", "tika"},
		{"ਸਤਿਗੁਰੁ", "satiguru"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Romanize(tt.input), "input %q", tt.input)
	}
}

func TestFoldSearchKey(t *testing.T) {
	assert.Equal(t, "kai", foldSearchKey("ka'ī"))
	assert.Equal(t, "drista", foldSearchKey("DRIŚṬA"))
	assert.Equal(t, "", foldSearchKey(""))
}

func TestBatchPreservesOrder(t *testing.T) {
	words := []string{"ਸਤਿ", "ਨਾਮੁ", "ਕਰਤਾ", "ਪੁਰਖੁ", "ਨਿਰਭਉ", "ਨਿਰਵੈਰੁ", "ਅਕਾਲ", "ਮੂਰਤਿ"}
	var reqs []Request
	for range 25 {
		for _, w := range words {
			reqs = append(reqs, Request{Text: w, Style: StyleISO15919})
		}
	}

	tr := New()
	got, err := tr.Batch(t.Context(), reqs, 4)
	require.NoError(t, err)
	require.Len(t, got, len(reqs))
	for i, req := range reqs {
		want, err := tr.Transliterate(req)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "request %d", i)
	}
}

func TestBatchUnboundedWorkers(t *testing.T) {
	got, err := New().Batch(t.Context(), []Request{
		{Text: "ਕ", Style: StylePractical},
		{Text: "ਕਾ", Style: StylePractical},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "kaa"}, got)
}

func TestBatchReturnsFirstError(t *testing.T) {
	reqs := []Request{
		{Text: "ਸਤਿ"},
		{Text: "ਸਤਿ", Style: "nope"},
		{Text: "ਸਤਿ"},
	}
	got, err := New().Batch(t.Context(), reqs, 2)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "converting request 1")

	var styleErr *UnsupportedStyleError
	assert.True(t, errors.As(err, &styleErr))
}

func TestBatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := New().Batch(ctx, []Request{{Text: "ਸਤਿ"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingRomanizer struct{ n atomic.Int64 }

func (c *countingRomanizer) Romanize(text string) string {
	c.n.Add(1)
	return fmt.Sprint(len(text))
}

func TestBatchUsesInjectedRomanizer(t *testing.T) {
	c := &countingRomanizer{}
	reqs := make([]Request, 50)
	for i := range reqs {
		reqs[i] = Request{Text: "ਸਤਿ", Style: StyleSearch}
	}
	_, err := New(WithRomanizer(c)).Batch(t.Context(), reqs, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.n.Load())
}

func TestTransliterateRecordsMetrics(t *testing.T) {
	ok := metrics.ConversionsTotal.WithLabelValues("practical", "anmollipi")
	failed := metrics.ConversionErrors.WithLabelValues("style")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	tr := New()
	_, err := tr.Transliterate(Request{Text: "siq", Encoding: "AnmolLipi", Style: StylePractical})
	require.NoError(t, err)
	_, err = tr.Transliterate(Request{Text: "siq", Style: "nope"})
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestRequestDefaults(t *testing.T) {
	assert.Equal(t, StyleISO15919, Request{}.StyleOrDefault())
	assert.Equal(t, StyleSearch, Request{Style: StyleSearch}.StyleOrDefault())
	assert.Equal(t, "unicode", Request{}.EncodingName())
	assert.Equal(t, "anmollipi", Request{Encoding: " AnmolLipi"}.EncodingName())
}

func TestTransliterateWarnsOnLatinUnicodeInput(t *testing.T) {
	var buf bytes.Buffer
	tr := New(WithLogger(logger.New(logger.Config{Format: "json", Level: "debug", Output: &buf})))

	_, err := tr.Transliterate(Request{Text: "ਸਤਿ", Style: StylePractical})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "no Gurmukhi letters")
	assert.Contains(t, buf.String(), `"scheme":"practical"`)

	for _, text := range []string{"", "123 ।", "ੴ"} {
		_, err = tr.Transliterate(Request{Text: text})
		require.NoError(t, err)
	}
	_, err = tr.Transliterate(Request{Text: "siq", Encoding: legacy.AnmolLipi})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "no Gurmukhi letters")

	_, err = tr.Transliterate(Request{Text: "siq nwmu"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no Gurmukhi letters")
	assert.Contains(t, buf.String(), `"hint":"-encoding anmollipi"`)
}

func TestMissingGurmukhi(t *testing.T) {
	assert.True(t, missingGurmukhi("siqgur"))
	assert.False(t, missingGurmukhi("ਸਤਿਗੁਰ"))
	assert.False(t, missingGurmukhi("ਸਤਿ sat"))
	assert.False(t, missingGurmukhi("42 !"))
	assert.False(t, missingGurmukhi(""))
}
