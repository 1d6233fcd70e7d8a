// Package ingredient parses free-text recipe ingredient lines such as
// "1 1/2 cups finely chopped onion, divided" into structured fields.
package ingredient

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptySentence is returned for blank ingredient lines.
	ErrEmptySentence = errors.New("ingredient: empty sentence")
	// ErrUnparseable is returned for lines without any letters or digits.
	ErrUnparseable = errors.New("ingredient: sentence has no parseable tokens")
)

// Result is the structured form of one ingredient line. Empty strings mean
// the field was not present in the sentence.
type Result struct {
	Sentence    string
	Name        string
	Size        string
	Amounts     []Amount
	Preparation string
	Comment     string
	Purpose     string
}

var parentheticalRe = regexp.MustCompile(`\(([^()]*)\)`)

var sizeWords = map[string]bool{
	"small": true, "medium": true, "large": true, "big": true, "jumbo": true,
	"extra-large": true, "x-large": true, "xl": true, "medium-sized": true,
	"large-sized": true, "small-sized": true,
}

var adverbs = map[string]bool{
	"finely": true, "roughly": true, "coarsely": true, "thinly": true,
	"thickly": true, "freshly": true, "lightly": true, "firmly": true,
	"loosely": true, "well": true, "very": true, "freshly-ground": true,
}

var prepWords = map[string]bool{
	"chopped": true, "diced": true, "minced": true, "sliced": true,
	"grated": true, "shredded": true, "crushed": true, "melted": true,
	"softened": true, "peeled": true, "cubed": true, "beaten": true,
	"sifted": true, "packed": true, "halved": true, "quartered": true,
	"julienned": true, "toasted": true, "cooked": true, "drained": true,
	"rinsed": true, "trimmed": true, "cut": true, "torn": true,
	"seeded": true, "deseeded": true, "pitted": true, "zested": true,
	"juiced": true, "mashed": true, "whisked": true, "cored": true,
	"stemmed": true, "shelled": true, "deveined": true, "thawed": true,
	"squeezed": true, "crumbled": true, "roasted": true, "blanched": true,
}

// words ending in -ed that are comments rather than preparation steps
var commentWords = map[string]bool{
	"divided": true, "needed": true, "desired": true, "preferred": true,
	"used": true, "reserved": true,
}

// Parser turns ingredient sentences into Results. The zero value is ready to use.
type Parser struct{}

// New returns a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse parses a single ingredient line.
func (p *Parser) Parse(sentence string) (*Result, error) {
	s := normalize(sentence)
	if s == "" {
		return nil, ErrEmptySentence
	}
	if !hasAlnum(s) {
		return nil, ErrUnparseable
	}

	res := &Result{Sentence: sentence}
	var prep, comments []string
	var extra []Amount

	for _, m := range parentheticalRe.FindAllStringSubmatch(s, -1) {
		inner := strings.TrimSpace(m[1])
		if inner == "" {
			continue
		}
		if a, ok := parseStandaloneAmount(inner); ok {
			extra = append(extra, a)
			continue
		}
		comments = append(comments, inner)
	}
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")

	segments := strings.Split(s, ",")
	head := strings.TrimSpace(segments[0])
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		switch {
		case seg == "":
		case strings.HasPrefix(strings.ToLower(seg), "for "):
			res.Purpose = seg
		case isPreparation(seg):
			prep = append(prep, seg)
		default:
			comments = append(comments, seg)
		}
	}

	tokens := strings.Fields(head)
	amounts, i := readAmounts(tokens)
	res.Amounts = append(amounts, extra...)

	if i < len(tokens) && sizeWords[strings.ToLower(tokens[i])] {
		res.Size = tokens[i]
		i++
	} else if i+1 < len(tokens) && strings.EqualFold(tokens[i], "extra") && sizeWords[strings.ToLower(tokens[i+1])] {
		res.Size = tokens[i] + " " + tokens[i+1]
		i += 2
	}

	var leading []string
	for i < len(tokens)-1 {
		w := strings.ToLower(tokens[i])
		if !adverbs[w] && !prepWords[w] && w != "and" {
			break
		}
		if w == "and" && len(leading) == 0 {
			break
		}
		leading = append(leading, tokens[i])
		i++
	}
	if len(leading) > 0 {
		if strings.EqualFold(leading[len(leading)-1], "and") {
			leading = leading[:len(leading)-1]
			i--
		}
		prep = append([]string{strings.Join(leading, " ")}, prep...)
	}

	name := strings.Join(tokens[i:], " ")
	name, purpose, comment := splitNameTail(name)
	if purpose != "" && res.Purpose == "" {
		res.Purpose = purpose
	}
	if comment != "" {
		comments = append(comments, comment)
	}

	res.Name = strings.Trim(name, " ,;:.")
	res.Preparation = strings.Join(prep, ", ")
	res.Comment = strings.Join(comments, ", ")
	return res, nil
}

// parseStandaloneAmount accepts parentheticals that are entirely an amount,
// e.g. "240 ml", "about 2 cups" or "14-ounce".
func parseStandaloneAmount(s string) (Amount, bool) {
	for _, prefix := range []string{"about ", "approximately ", "approx. ", "approx ", "~", "roughly "} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Amount{}, false
	}
	a, next, ok := readAmount(tokens, 0)
	if !ok || a.Unit == "" || a.Quantity == nil || next != len(tokens) {
		return Amount{}, false
	}
	return a, true
}

func isPreparation(seg string) bool {
	words := strings.Fields(strings.ToLower(seg))
	for len(words) > 0 && adverbs[words[0]] {
		words = words[1:]
	}
	if len(words) == 0 {
		return false
	}
	first := strings.Trim(words[0], ".;:")
	if commentWords[first] {
		return false
	}
	return prepWords[first] || (strings.HasSuffix(first, "ed") && len(first) > 4)
}

var (
	tailCommentRe = regexp.MustCompile(`(?i)\s+(to taste|optional|as needed)$`)
	purposeRe     = regexp.MustCompile(`(?i)\s+for\s+`)
)

// splitNameTail peels "for ..." purposes and "to taste"/"optional" comments
// off the end of a name written without a separating comma.
func splitNameTail(name string) (string, string, string) {
	var purpose, comment string

	if m := tailCommentRe.FindStringSubmatchIndex(name); m != nil {
		comment = name[m[2]:m[3]]
		name = name[:m[0]]
	}
	if loc := purposeRe.FindStringIndex(name); loc != nil && loc[0] > 0 {
		purpose = strings.TrimSpace(name[loc[0]:])
		name = name[:loc[0]]
	}
	return strings.TrimSpace(name), purpose, comment
}
