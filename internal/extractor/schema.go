package extractor

import (
	"encoding/json"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

func norm(s string) string {
	s = html.UnescapeString(s)
	s = strings.TrimSpace(s)
	return spaceRe.ReplaceAllString(s, " ")
}

// isRecipeNode reports whether a JSON-LD node has @type Recipe.
func isRecipeNode(node map[string]interface{}) bool {
	switch t := node["@type"].(type) {
	case string:
		return strings.EqualFold(t, "Recipe") || strings.HasSuffix(t, "/Recipe")
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && (strings.EqualFold(s, "Recipe") || strings.HasSuffix(s, "/Recipe")) {
				return true
			}
		}
	}
	return false
}

// findRecipeNode walks a decoded JSON-LD document (objects, arrays, @graph,
// mainEntity) and returns the first Recipe node.
func findRecipeNode(v interface{}) map[string]interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if isRecipeNode(t) {
			return t
		}
		for _, key := range []string{"@graph", "mainEntity", "mainEntityOfPage", "itemListElement", "item"} {
			if child, ok := t[key]; ok {
				if found := findRecipeNode(child); found != nil {
					return found
				}
			}
		}
	case []interface{}:
		for _, item := range t {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func decodeJSONLD(raw string) (interface{}, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), ";")

	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// some sites emit raw newlines and tabs inside JSON strings
		cleaned := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(raw)
		if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
			return nil, false
		}
	}
	return v, true
}

// text coerces a schema.org value into a single string.
func text(v interface{}) string {
	switch t := v.(type) {
	case string:
		return norm(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]interface{}:
		for _, key := range []string{"name", "text", "@value", "url", "@id"} {
			if s := text(t[key]); s != "" {
				return s
			}
		}
	case []interface{}:
		for _, item := range t {
			if s := text(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// texts coerces a schema.org value into a list of non-empty strings.
func texts(v interface{}) []string {
	var out []string
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if s := text(item); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := text(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// commaList joins list values and splits comma separated strings.
func commaList(v interface{}) []string {
	var out []string
	for _, s := range texts(v) {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// instructionList flattens recipeInstructions: a string, a list of strings,
// HowToStep objects or HowToSection objects with nested steps.
func instructionList(v interface{}) []string {
	var out []string
	switch t := v.(type) {
	case string:
		for _, line := range strings.Split(html.UnescapeString(t), "\n") {
			if line = norm(stripTags(line)); line != "" {
				out = append(out, line)
			}
		}
	case []interface{}:
		for _, item := range t {
			out = append(out, instructionList(item)...)
		}
	case map[string]interface{}:
		if steps, ok := t["itemListElement"]; ok {
			return instructionList(steps)
		}
		if s := norm(stripTags(text(t["text"]))); s != "" {
			return []string{s}
		}
		if s := norm(stripTags(text(t["name"]))); s != "" {
			return []string{s}
		}
	}
	return out
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, " ")
}

var durationRe = regexp.MustCompile(`(?i)^P(?:(\d+(?:\.\d+)?)Y)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)W)?(?:(\d+(?:\.\d+)?)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// parseMinutes converts an ISO 8601 duration (PT1H30M) or a bare number of
// minutes into whole minutes.
func parseMinutes(v interface{}) (int, bool) {
	s := text(v)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(n)), true
	}
	m := durationRe.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.EqualFold(s, "PT") {
		return 0, false
	}
	f := func(i int) float64 {
		if m[i] == "" {
			return 0
		}
		n, _ := strconv.ParseFloat(m[i], 64)
		return n
	}
	// years and months are not meaningful for recipes and are ignored
	minutes := f(3)*7*24*60 + f(4)*24*60 + f(5)*60 + f(6) + f(7)/60
	return int(math.Round(minutes)), true
}

var leadingNumberRe = regexp.MustCompile(`^(\d+)(?:\s*(?:-|to)\s*\d+)?\s*(servings?|portions?|people|persons?|serves)?$`)

// yields formats recipeYield the way recipe sites are usually read: "4 servings".
func yields(v interface{}) string {
	s := text(v)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(s), "serves ") {
		s = strings.TrimSpace(s[len("serves "):])
	}
	m := leadingNumberRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return s
	}
	if m[1] == "1" {
		return "1 serving"
	}
	return m[1] + " servings"
}

func number(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(t, ",", ".")), 64)
		return n, err == nil
	case map[string]interface{}:
		return number(t["@value"])
	}
	return 0, false
}
