package legacy

import (
	"fmt"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/samber/lo"
)

// sihariKey is typed before the consonant it belongs to.
const sihariKey = 'i'

type combination struct {
	key         string
	replacement string
}

// Multi-character sequences, checked before the single-character map. Matching
// is longest key first, so declaration order does not matter.
var combinations = []combination{
	{"<>", "ੴ"}, // ik onkar
	{"ÅÆ", "ੴ"},
	{"[]", "॥"},
	{"]", "॥"},
	{"[", "।"},
	{"W", "ਾਂ"}, // kanna + bindi
	{"`N", "ਁ"}, // udaat
	{"`ˆ", "ਁ"},
	{"~N", "ਁ"},
	{"~ˆ", "ਁ"},
	{"ƒ", "ਨੂੰ"},

	// airha carrier
	{"Aw", "ਆ"},
	{"AW", "ਆਂ"},
	{"AY", "ਐ"},
	{"AO", "ਔ"},

	// iri carrier
	{"ie", "ਇ"},
	{"eI", "ਈ"},
	{"ey", "ਏ"},

	// oora carrier
	{"au", "ਉ"},
	{"aU", "ਊ"},

	// base + nukta spelled out
	{"sæ", "\u0A36"},
	{"Kæ", "\u0A59"},
	{"gæ", "\u0A5A"},
	{"jæ", "\u0A5B"},
	{"Pæ", "\u0A5E"},
	{"læ", "\u0A33"},
	{"kæ", "\u0A15\u0A3C"},
	{"Aæ", "\u0A05\u0A3C"},
}

// Single keys of the AnmolLipi layout.
var singles = map[rune]string{
	// vowel carriers
	'a': "ੳ",
	'A': "ਅ",
	'e': "ੲ",
	'E': "ਓ",

	// vowel signs
	'w': "ਾ",
	'I': "ੀ",
	'u': "ੁ",
	'ü': "ੁ",
	'U': "ੂ",
	'¨': "ੂ",
	'y': "ੇ",
	'Y': "ੈ",
	'o': "ੋ",
	'O': "ੌ",

	// marks
	'M': "ੰ",
	'µ': "ੰ",
	'N': "ਂ",
	'ˆ': "ਂ",
	'æ': "਼",
	'Ú': "ਃ",
	'`': "ੱ",
	'~': "ੱ",
	'@': "੍",

	'¡': "ੴ",
	'¤': "ੴ",

	// consonants
	's':  "ਸ",
	'h':  "ਹ",
	'k':  "ਕ",
	'K':  "ਖ",
	'g':  "ਗ",
	'G':  "ਘ",
	'|':  "ਙ",
	'c':  "ਚ",
	'C':  "ਛ",
	'j':  "ਜ",
	'J':  "ਝ",
	'\\': "ਞ",
	't':  "ਟ",
	'T':  "ਠ",
	'f':  "ਡ",
	'F':  "ਢ",
	'x':  "ਣ",
	'q':  "ਤ",
	'Q':  "ਥ",
	'd':  "ਦ",
	'D':  "ਧ",
	'n':  "ਨ",
	'p':  "ਪ",
	'P':  "ਫ",
	'b':  "ਬ",
	'B':  "ਭ",
	'm':  "ਮ",
	'X':  "ਯ",
	'r':  "ਰ",
	'l':  "ਲ",
	'v':  "ਵ",
	'V':  "ੜ",

	// Persian-derived, precomposed
	'L': "\u0A33",
	'S': "\u0A36",
	'z': "\u0A5B",
	'Z': "\u0A5A",
	'^': "\u0A59",
	'&': "\u0A5E",

	'0': "੦",
	'1': "੧",
	'2': "੨",
	'3': "੩",
	'4': "੪",
	'5': "੫",
	'6': "੬",
	'7': "੭",
	'8': "੮",
	'9': "੯",

	' ':  " ",
	'\n': "\n",
}

// Keys for consonants written in reduced form under the preceding letter.
var subjoined = map[rune]string{
	'H': "੍ਹ",
	'†': "੍ਟ",
	'˜': "੍ਨ",
	'œ': "੍ਤ",
	'R': "੍ਰ",
	'®': "੍ਰ",
	'Î': "੍ਯ",
	'Í': "੍ਵ",
	'ç': "੍ਚ",
	'´': "ੵ", // yakash
	'Ï': "ੵ",
}

var (
	specials       = buildSpecials(combinations)
	maxSpecialSize = lo.Max(lo.Map(combinations, func(c combination, _ int) int {
		return utf8.RuneCountInString(c.key)
	}))
)

func buildSpecials(combos []combination) *trie.Trie {
	if dup := lo.FindDuplicatesBy(combos, func(c combination) string { return c.key }); len(dup) > 0 {
		panic(fmt.Sprintf("legacy: duplicate combination key %q", dup[0].key))
	}
	t := trie.New()
	for _, c := range combos {
		t.Add(c.key, c.replacement)
	}
	return t
}

// matchSpecial returns the replacement for the longest combination starting at
// rs[i] and the number of runes it covers.
func matchSpecial(rs []rune, i int) (string, int, bool) {
	var (
		best    string
		bestLen int
	)
	for k := 1; k <= maxSpecialSize && i+k <= len(rs); k++ {
		prefix := string(rs[i : i+k])
		if !specials.HasKeysWithPrefix(prefix) {
			break
		}
		if node, ok := specials.Find(prefix); ok {
			best, bestLen = node.Meta().(string), k
		}
	}
	return best, bestLen, bestLen > 0
}
