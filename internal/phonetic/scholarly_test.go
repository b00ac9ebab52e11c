package phonetic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type encodeCase struct {
	input string
	want  string
}

func runEncode(t *testing.T, enc func(string) string, cases []encodeCase) {
	t.Helper()
	for _, tt := range cases {
		assert.Equal(t, tt.want, enc(tt.input), "input %q", tt.input)
	}
}

func TestScholarlyEmpty(t *testing.T) {
	assert.Equal(t, "", Scholarly(""))
}

func TestScholarlyBasics(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ੴ", "ika oaṁkāra"},
		{"ਕ", "ka"},
		{"ਕਾ", "kā"},
		{"ਸਤਿ ਸ੍ਰੀ ਅਕਾਲ", "sati srī akāla"},
		{"੧੨੩", "123"},
		{"ਸਤਿ।", "sati|"},
		{"ਸਤਿ॥", "sati||"},
	})
}

func TestScholarlyGemination(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ਪੱਕਾ", "pakkā"},
		{"ਚੱਲੀ", "callī"},
		{"ਕੱਚਾ", "kaccā"},
		{"ਅੱਖ", "akkha"},
		{"ਚੁੱਕ", "cukka"},
		{"\u0a2a\u0a71\u0a15\u0a3c\u0a3e", "paqqā"}, // ਪੱਕ਼ਾ, no precomposed form
	})
}

func TestScholarlyNasalization(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ਸੰਤ", "saṁta"},
		{"ਅੰਗ", "aṁga"},
		{"ਪੰਜ", "paṁja"},
		{"ਮਾਂ", "māṃ"},
		{"ਨੂੰ", "nūṁ"},
		{"ਹਁ", "ham̐"},
	})
}

func TestScholarlyPersianLetters(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"\u0A36", "śa"},
		{"\u0A59", "k̲ha"},
		{"\u0A5A", "ġha"},
		{"\u0A5B", "za"},
		{"\u0A5E", "fa"},
		{"\u0A33", "ḷa"},
		{"ਕ\u0A3C", "qa"},
	})
}

func TestScholarlyPersianFormsAgree(t *testing.T) {
	pairs := [][2]string{
		{"\u0A38\u0A3C", "\u0A36"},
		{"\u0A16\u0A3C", "\u0A59"},
		{"\u0A17\u0A3C", "\u0A5A"},
		{"\u0A1C\u0A3C", "\u0A5B"},
		{"\u0A2B\u0A3C", "\u0A5E"},
		{"\u0A32\u0A3C", "\u0A33"},
	}
	for _, p := range pairs {
		assert.Equal(t, Scholarly(p[1]), Scholarly(p[0]), "%q", p[0])
		assert.Equal(t, Practical(p[1]), Practical(p[0]), "%q", p[0])
	}
}

func TestScholarlyGurbaniWords(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ਸਤਿਗੁਰੁ", "satiguru"},
		{"ਵਾਹਿਗੁਰੂ", "vāhigurū"},
		{"ਸੰਗਤਿ", "saṁgati"},
		{"ਕੀਰਤਨੁ", "kīratanu"},
	})
}

func TestScholarlyVowelSequences(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ਭਾਈ", "bhāī"},
		{"ਹੋਇਆ", "hōiā"},
		{"ਕਿਉਂ", "kiuṃ"},
		{"ਸੋਈ", "sōī"},
		{"ਆਈ", "āī"},
	})
}

func TestScholarlySyllableBreak(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ਕਈ", "ka'ī"},
		{"ਅਉ", "a'u"},
	})
}

func TestScholarlyConjuncts(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ਪ੍ਰੇਮ", "prēma"},
		{"ਤ੍ਰੇਤਾ", "trētā"},
		{"ਸ੍ਰੀ", "srī"},
		{"ਕ੍ਰਿਪਾ", "kripā"},
		{"ਸ੍ਵਾਮੀ", "svāmī"},
		{"ਦ੍ਰਿ\u0A38\u0A3C੍ਟ", "driśṭa"},
		{"ਦ੍ਰਿ\u0A36੍ਟ", "driśṭa"},
		{"ਪ੍ਰਸਾਦਿ", "prasādi"},
		{"ਇਸ੍ਨਾਨੁ", "isnānu"},
		{"ਮਸ੍ਤ", "masta"},
		{"ਸੵਾਮ", "syāma"},
		{"ਪ੍ਰੰ", "praṁ"},
	})
}

func TestScholarlyStrayMarks(t *testing.T) {
	runEncode(t, Scholarly, []encodeCase{
		{"ੰ", "ṁ"},
		{"ਂ", "ṃ"},
		{"ਃ", "ḥ"},
		{"੍", ""},
		{"ੱ", ""},
		{"ਕ੍", "k"},
	})
}

func TestScholarlyUnknownIsQuietUnlessDebug(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	got := NewScholarly(WithLogger(log)).Encode("ਕ$ਕ")
	assert.Equal(t, "kaka", got)
	assert.Empty(t, buf.String())

	got = NewScholarly(WithLogger(log), WithDebug(true)).Encode("ਕ$ਕ")
	assert.Equal(t, "kaka", got)
	assert.Contains(t, buf.String(), "unknown character")
	assert.Contains(t, buf.String(), "scheme=iso15919")
	assert.Contains(t, buf.String(), "code=U+0024")
}

func TestScholarlyMalformedInput(t *testing.T) {
	inputs := []string{"test\uFFFF", "test$123", "\xff\xfe", "੍੍੍", "ੱੱ", "ਿਿ"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Scholarly(in) }, "input %q", in)
	}
}

func TestScholarlyIsDeterministic(t *testing.T) {
	input := "ੴ ਸਤਿ ਨਾਮੁ ਕਰਤਾ ਪੁਰਖੁ ਨਿਰਭਉ ਨਿਰਵੈਰੁ"
	first := Scholarly(input)
	for range 10 {
		assert.Equal(t, first, Scholarly(input))
	}
}

func TestGeminate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"k", "kk"},
		{"kh", "kkh"},
		{"ch", "cch"},
		{"chh", "chchh"},
		{"k̲h", "k̲k̲h"},
		{"h", "hh"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, geminate(tt.in), "geminate(%q)", tt.in)
	}
}

func TestEncoderNames(t *testing.T) {
	assert.Equal(t, "iso15919", NewScholarly().Name())
	assert.Equal(t, "practical", NewPractical().Name())
}
