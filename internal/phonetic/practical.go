package phonetic

import (
	"log/slog"

	"github.com/jusunglee/gurmukhi/internal/gurmukhi"
	"github.com/samber/lo"
)

// Tippi and bindi assimilate to m before these.
var labials = map[rune]bool{
	'ਬ': true, 'ਭ': true, 'ਪ': true, 'ਫ': true, 'ਮ': true,
}

var practical = &scheme{
	name: "practical",

	special: map[rune]string{
		gurmukhi.IkOnkar: "ik oankaar",
	},
	punctuation: commonPunctuation,
	digits:      gurmukhiDigits,

	vowels: map[rune]string{
		'ਅ': "a", 'ਆ': "aa", 'ਇ': "i", 'ਈ': "ee",
		'ਉ': "u", 'ਊ': "oo", 'ਏ': "e", 'ਐ': "ai",
		'ਓ': "o", 'ਔ': "au",
		gurmukhi.Iri: "", gurmukhi.Oora: "",
	},
	signs: map[rune]string{
		'ਾ': "aa", 'ਿ': "i", 'ੀ': "ee", 'ੁ': "u",
		'ੂ': "oo", 'ੇ': "e", 'ੈ': "ai", 'ੋ': "o",
		'ੌ': "au",
	},
	consonants: lo.Assign(
		map[rune]string{
			'ਸ': "s", 'ਹ': "h",
			'ਕ': "k", 'ਖ': "kh", 'ਗ': "g", 'ਘ': "gh", 'ਙ': "ng",
			'ਚ': "ch", 'ਛ': "chh", 'ਜ': "j", 'ਝ': "jh", 'ਞ': "ny",
			'ਟ': "ṭ", 'ਠ': "ṭh", 'ਡ': "ḍ", 'ਢ': "ḍh", 'ਣ': "ṇ",
			'ਤ': "t", 'ਥ': "th", 'ਦ': "d", 'ਧ': "dh", 'ਨ': "n",
			'ਪ': "p", 'ਫ': "ph", 'ਬ': "b", 'ਭ': "bh", 'ਮ': "m",
			'ਯ': "y", 'ਰ': "r", 'ਲ': "l", 'ਵ': "v", 'ੜ': "ṛ",
		},
		precomposedValues(practicalPersian),
	),
	nuktaForms: practicalPersian,
	modifiers: map[rune]string{
		gurmukhi.Virama:    "",
		gurmukhi.Addak:     "",
		gurmukhi.Nukta:     "",
		gurmukhi.Tippi:     "n",
		gurmukhi.Bindi:     "n",
		gurmukhi.AdakBindi: "n",
		gurmukhi.Visarga:   "h",
		gurmukhi.Yakash:    "y",
	},

	inherent: "a",
	nasal: func(_, next rune) string {
		if labials[next] {
			return "m"
		}
		return "n"
	},
	wordFinal: endsWord,

	unknownLevel: slog.LevelWarn,
}

var practicalPersian = map[rune]string{
	'ਸ': "sh",
	'ਖ': "kh",
	'ਗ': "gh",
	'ਜ': "z",
	'ਫ': "f",
	'ਲ': "l",
	'ਕ': "q",
}

var defaultPractical = NewPractical()

// NewPractical returns an encoder for the informal romanization. It drops the
// inherent vowel at the end of a word and spells long vowels by doubling.
func NewPractical(opts ...Option) *Encoder {
	return newEncoder(practical, opts)
}

// Practical romanizes text with the informal scheme.
func Practical(text string) string {
	return defaultPractical.Encode(text)
}
