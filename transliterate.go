package tarjama

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// digraphs are matched before single letters, longest first.
var digraphs = []struct {
	latin  string
	arabic string
}{
	{"sch", "ش"},
	{"sh", "ش"},
	{"ch", "تش"},
	{"th", "ث"},
	{"ph", "ف"},
	{"gh", "غ"},
	{"kh", "خ"},
}

// letters maps single lower-case Latin letters to Arabic.
var letters = map[rune]string{
	'a': "ا",
	'b': "ب",
	'c': "ك",
	'd': "د",
	'e': "ي",
	'f': "ف",
	'g': "ج",
	'h': "ح",
	'i': "ي",
	'j': "ج",
	'k': "ك",
	'l': "ل",
	'm': "م",
	'n': "ن",
	'o': "و",
	'p': "ب",
	'q': "ق",
	'r': "ر",
	's': "س",
	't': "ت",
	'u': "و",
	'v': "ف",
	'w': "و",
	'x': "كس",
	'y': "ي",
	'z': "ز",
}

// Transliterate renders Latin text with Arabic letters by fixed substitution.
// It is a phonetic approximation, not a translation. Digits, whitespace,
// punctuation and any rune without a mapping are copied unchanged.
func Transliterate(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(norm.NFC.String(s))
	var b strings.Builder
	b.Grow(len(s) * 2)

	for i := 0; i < len(runes); {
		if rep, n := matchDigraph(runes[i:]); n > 0 {
			b.WriteString(rep)
			i += n
			continue
		}

		r := runes[i]
		if rep, ok := letters[unicode.ToLower(r)]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
		i++
	}

	return b.String()
}

// matchDigraph returns the replacement and length of the digraph at the
// start of runes, or 0 when none matches.
func matchDigraph(runes []rune) (string, int) {
	for _, d := range digraphs {
		n := len(d.latin)
		if len(runes) < n {
			continue
		}
		matched := true
		for k := 0; k < n; k++ {
			if unicode.ToLower(runes[k]) != rune(d.latin[k]) {
				matched = false
				break
			}
		}
		if matched {
			return d.arabic, n
		}
	}
	return "", 0
}
