package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

// Quantity is a numeric amount as written in the ingredient line.
// Ranges such as "2-3" keep the lower bound in Value and the upper in Max.
type Quantity struct {
	Value float64
	Max   float64
	Text  string
}

// IsRange reports whether the quantity was written as a range.
func (q Quantity) IsRange() bool {
	return q.Max > q.Value
}

// Amount pairs a quantity with its unit. Either side may be missing:
// "3 eggs" has no unit and "pinch of salt" has no quantity.
type Amount struct {
	Quantity *Quantity
	Unit     Unit
}

var (
	decimalRe  = regexp.MustCompile(`^(?:\d+(?:\.\d+)?|\.\d+)$`)
	integerRe  = regexp.MustCompile(`^\d+$`)
	fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)
	rangeRe    = regexp.MustCompile(`^(\d+(?:\.\d+)?|\d+/\d+)-(\d+(?:\.\d+)?|\d+/\d+)$`)
	attachedRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)-?([A-Za-z]+\.?)$`)
)

var rangeWords = map[string]bool{"-": true, "to": true, "or": true}

// parseNumber parses a decimal or a simple fraction.
func parseNumber(tok string) (float64, bool) {
	if decimalRe.MatchString(tok) {
		v, err := strconv.ParseFloat(tok, 64)
		return v, err == nil
	}
	if m := fractionRe.FindStringSubmatch(tok); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return 0, false
		}
		return num / den, true
	}
	return 0, false
}

// readQuantity reads a quantity starting at tokens[i]. It understands mixed
// numbers ("1 1/2") and ranges ("2-3", "2 to 3").
func readQuantity(tokens []string, i int) (*Quantity, int) {
	if i >= len(tokens) {
		return nil, i
	}
	tok := tokens[i]

	if m := rangeRe.FindStringSubmatch(tok); m != nil {
		lo, ok1 := parseNumber(m[1])
		hi, ok2 := parseNumber(m[2])
		if ok1 && ok2 {
			return &Quantity{Value: lo, Max: hi, Text: tok}, i + 1
		}
	}

	v, ok := parseNumber(tok)
	if !ok {
		return nil, i
	}
	next := i + 1
	if integerRe.MatchString(tok) && next < len(tokens) && fractionRe.MatchString(tokens[next]) {
		frac, _ := parseNumber(tokens[next])
		v += frac
		next++
	}

	q := &Quantity{Value: v}
	if next+1 < len(tokens) && rangeWords[strings.ToLower(tokens[next])] {
		if hi, ok := parseNumber(tokens[next+1]); ok && hi > v {
			q.Max = hi
			next += 2
		}
	}
	q.Text = strings.Join(tokens[i:next], " ")
	return q, next
}

// readUnit reads an optional unit at tokens[i], preferring two-word units.
func readUnit(tokens []string, i int) (Unit, int) {
	if i >= len(tokens) {
		return "", i
	}
	if i+1 < len(tokens) {
		if u, ok := lookupUnit(tokens[i] + " " + tokens[i+1]); ok {
			return u, i + 2
		}
	}
	if u, ok := lookupUnit(tokens[i]); ok {
		return u, i + 1
	}
	return "", i
}

// readAmount reads one quantity/unit pair starting at tokens[i].
func readAmount(tokens []string, i int) (Amount, int, bool) {
	if i >= len(tokens) {
		return Amount{}, i, false
	}

	if m := attachedRe.FindStringSubmatch(tokens[i]); m != nil {
		if u, ok := lookupUnit(m[2]); ok {
			v, _ := strconv.ParseFloat(m[1], 64)
			return Amount{Quantity: &Quantity{Value: v, Text: tokens[i]}, Unit: u}, skipOf(tokens, i+1), true
		}
	}

	q, next := readQuantity(tokens, i)
	if q == nil {
		article := strings.ToLower(tokens[i])
		if article != "a" && article != "an" {
			return Amount{}, i, false
		}
		u, afterUnit := readUnit(tokens, i+1)
		if u == "" {
			return Amount{}, i, false
		}
		return Amount{Quantity: &Quantity{Value: 1, Text: tokens[i]}, Unit: u}, skipOf(tokens, afterUnit), true
	}

	u, afterUnit := readUnit(tokens, next)
	if u == "" {
		return Amount{Quantity: q}, next, true
	}
	return Amount{Quantity: q, Unit: u}, skipOf(tokens, afterUnit), true
}

// readAmounts reads the leading amounts of a sentence, including
// "1 cup plus 2 tablespoons" style compounds and a bare "pinch of".
func readAmounts(tokens []string) ([]Amount, int) {
	var amounts []Amount
	i := 0

	if u, next := readUnit(tokens, 0); u != "" && next < len(tokens) && strings.EqualFold(tokens[next], "of") {
		return []Amount{{Unit: u}}, next + 1
	}

	for i < len(tokens) {
		a, next, ok := readAmount(tokens, i)
		if !ok {
			break
		}
		amounts = append(amounts, a)
		i = next
		if i < len(tokens) && (strings.EqualFold(tokens[i], "plus") || tokens[i] == "+") {
			if _, _, ok := readAmount(tokens, i+1); ok {
				i++
				continue
			}
		}
		break
	}
	return amounts, i
}

func skipOf(tokens []string, i int) int {
	if i < len(tokens) && strings.EqualFold(tokens[i], "of") {
		return i + 1
	}
	return i
}
