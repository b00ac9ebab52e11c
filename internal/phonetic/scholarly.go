package phonetic

import (
	"log/slog"

	"github.com/jusunglee/gurmukhi/internal/gurmukhi"
	"github.com/samber/lo"
)

var commonPunctuation = map[rune]string{
	'॥':  "||",
	'।':  "|",
	' ':  " ",
	'.':  ".",
	',':  ",",
	'?':  "?",
	'!':  "!",
	'"':  "\"",
	'\'': "'",
	'\n': "\n",
	'\r': "\r",
	'\t': "\t",
}

var gurmukhiDigits = map[rune]string{
	'੦': "0", '੧': "1", '੨': "2", '੩': "3", '੪': "4",
	'੫': "5", '੬': "6", '੭': "7", '੮': "8", '੯': "9",
}

var scholarly = &scheme{
	name: "iso15919",

	special: map[rune]string{
		gurmukhi.IkOnkar: "ika oaṁkāra",
	},
	punctuation: commonPunctuation,
	digits:      gurmukhiDigits,

	vowels: map[rune]string{
		'ਅ': "a", 'ਆ': "ā", 'ਇ': "i", 'ਈ': "ī",
		'ਉ': "u", 'ਊ': "ū", 'ਏ': "ē", 'ਐ': "ai",
		'ਓ': "ō", 'ਔ': "au",
		gurmukhi.Iri: "", gurmukhi.Oora: "",
	},
	signs: map[rune]string{
		'ਾ': "ā", 'ਿ': "i", 'ੀ': "ī", 'ੁ': "u",
		'ੂ': "ū", 'ੇ': "ē", 'ੈ': "ai", 'ੋ': "ō",
		'ੌ': "au",
	},
	consonants: lo.Assign(
		map[rune]string{
			'ਸ': "s", 'ਹ': "h",
			'ਕ': "k", 'ਖ': "kh", 'ਗ': "g", 'ਘ': "gh", 'ਙ': "ṅ",
			'ਚ': "c", 'ਛ': "ch", 'ਜ': "j", 'ਝ': "jh", 'ਞ': "ñ",
			'ਟ': "ṭ", 'ਠ': "ṭh", 'ਡ': "ḍ", 'ਢ': "ḍh", 'ਣ': "ṇ",
			'ਤ': "t", 'ਥ': "th", 'ਦ': "d", 'ਧ': "dh", 'ਨ': "n",
			'ਪ': "p", 'ਫ': "ph", 'ਬ': "b", 'ਭ': "bh", 'ਮ': "m",
			'ਯ': "y", 'ਰ': "r", 'ਲ': "l", 'ਵ': "v", 'ੜ': "ṛ",
		},
		precomposedValues(scholarlyPersian),
	),
	nuktaForms: scholarlyPersian,
	modifiers: map[rune]string{
		gurmukhi.Virama:    "",
		gurmukhi.Addak:     "",
		gurmukhi.Nukta:     "",
		gurmukhi.Tippi:     "ṁ",
		gurmukhi.Bindi:     "ṃ",
		gurmukhi.AdakBindi: "m̐",
		gurmukhi.Visarga:   "ḥ",
		gurmukhi.Yakash:    "y",
	},

	inherent:      "a",
	syllableBreak: "'",
	nasal: func(mark, _ rune) string {
		if mark == gurmukhi.Tippi {
			return "ṁ"
		}
		return "ṃ"
	},

	unknownLevel: slog.LevelDebug,
	quietUnknown: true,
}

// Persian-derived letters keyed by base consonant.
var scholarlyPersian = map[rune]string{
	'ਸ': "ś",
	'ਖ': "k̲h",
	'ਗ': "ġh",
	'ਜ': "z",
	'ਫ': "f",
	'ਲ': "ḷ",
	'ਕ': "q",
}

// precomposedValues re-keys a base-consonant table by the precomposed letter,
// for the bases that have one.
func precomposedValues(byBase map[rune]string) map[rune]string {
	out := make(map[rune]string, len(byBase))
	for base, v := range byBase {
		if p, ok := gurmukhi.Precomposed(base); ok {
			out[p] = v
		}
	}
	return out
}

var defaultScholarly = NewScholarly()

// NewScholarly returns an ISO 15919 encoder.
func NewScholarly(opts ...Option) *Encoder {
	return newEncoder(scholarly, opts)
}

// Scholarly romanizes text with ISO 15919 conventions.
func Scholarly(text string) string {
	return defaultScholarly.Encode(text)
}
