package ingredient

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var vulgarFractions = map[rune]string{
	'¼': "1/4", '½': "1/2", '¾': "3/4",
	'⅐': "1/7", '⅑': "1/9", '⅒': "1/10",
	'⅓': "1/3", '⅔': "2/3",
	'⅕': "1/5", '⅖': "2/5", '⅗': "3/5", '⅘': "4/5",
	'⅙': "1/6", '⅚': "5/6",
	'⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// checkbox glyphs and bullets that recipe plugins prefix ingredient lines with
const leadingJunk = "▢☐□•·*-–— \t"

// normalize rewrites a sentence into the plain ASCII-friendly form the
// tokenizer expects: entities decoded, vulgar fractions spelled out,
// compatibility characters folded, dashes unified and whitespace collapsed.
func normalize(sentence string) string {
	s := html.UnescapeString(sentence)

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if frac, ok := vulgarFractions[r]; ok {
			b.WriteByte(' ')
			b.WriteString(frac)
			b.WriteByte(' ')
			continue
		}
		switch r {
		case '⁄', '∕':
			b.WriteByte('/')
		case '–', '—', '‐', '‑':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}

	s = norm.NFKC.String(b.String())
	s = strings.TrimLeft(s, leadingJunk)
	s = strings.Join(strings.Fields(s), " ")

	// "1 / 2" and "2 - 3" written with spaces collapse back into one token
	s = strings.ReplaceAll(s, " / ", "/")
	return strings.TrimSpace(s)
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
