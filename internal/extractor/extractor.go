// Package extractor pulls schema.org Recipe data out of an HTML page.
//
// JSON-LD blocks are tried first; pages that only carry microdata fall back
// to an itemprop walk of the first Recipe itemscope.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// ErrNoRecipe is returned when a page carries no schema.org Recipe.
var ErrNoRecipe = errors.New("no schema.org Recipe found on page")

// SchemaExtractor implements service.RecipeExtractor on top of goquery.
type SchemaExtractor struct{}

// New returns a SchemaExtractor.
func New() *SchemaExtractor {
	return &SchemaExtractor{}
}

// Extract parses html and maps the page's Recipe onto a RawRecipe.
func (e *SchemaExtractor) Extract(ctx context.Context, html, sourceURL string) (types.RawRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	node := jsonLDRecipe(doc)
	if node == nil {
		node = microdataRecipe(doc)
	}
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRecipe, sourceURL)
	}

	return buildRecipe(doc, node, sourceURL), nil
}

func jsonLDRecipe(doc *goquery.Document) map[string]interface{} {
	var found map[string]interface{}
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := decodeJSONLD(s.Text())
		if !ok {
			return true
		}
		found = findRecipeNode(v)
		return found == nil
	})
	return found
}

func meta(doc *goquery.Document, key string) string {
	if v, ok := doc.Find(fmt.Sprintf(`meta[name="%s"]`, key)).Attr("content"); ok {
		return norm(v)
	}
	if v, ok := doc.Find(fmt.Sprintf(`meta[property="%s"]`, key)).Attr("content"); ok {
		return norm(v)
	}
	return ""
}

func host(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func image(v interface{}) string {
	switch t := v.(type) {
	case string:
		return norm(t)
	case map[string]interface{}:
		if s := text(t["url"]); s != "" {
			return s
		}
		return text(t["@id"])
	case []interface{}:
		for _, item := range t {
			if s := image(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func nutrients(v interface{}) map[string]interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, val := range m {
		if strings.HasPrefix(k, "@") {
			continue
		}
		if s := text(val); s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringsToAny(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// buildRecipe maps a schema.org Recipe node onto the response keys. Absent
// fields are omitted except ingredients, which is always a list.
func buildRecipe(doc *goquery.Document, node map[string]interface{}, sourceURL string) types.RawRecipe {
	r := types.RawRecipe{}
	set := func(key, value string) {
		if value != "" {
			r[key] = value
		}
	}
	setList := func(key string, values []string) {
		if len(values) > 0 {
			r[key] = values
		}
	}

	set("title", text(node["name"]))
	set("author", text(node["author"]))
	set("host", host(sourceURL))

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	if canonical = norm(canonical); canonical == "" {
		canonical = meta(doc, "og:url")
	}
	if canonical == "" {
		canonical = sourceURL
	}
	set("canonical_url", canonical)
	set("site_name", meta(doc, "og:site_name"))
	lang, _ := doc.Find("html").Attr("lang")
	set("language", norm(lang))

	description := text(node["description"])
	if description == "" {
		description = meta(doc, "description")
	}
	set("description", description)
	img := image(node["image"])
	if img == "" {
		img = meta(doc, "og:image")
	}
	set("image", img)

	set("category", strings.Join(commaList(node["recipeCategory"]), ","))
	set("cuisine", strings.Join(commaList(node["recipeCuisine"]), ","))
	setList("keywords", commaList(node["keywords"]))
	set("yields", yields(node["recipeYield"]))

	prep, hasPrep := parseMinutes(node["prepTime"])
	cook, hasCook := parseMinutes(node["cookTime"])
	if total, ok := parseMinutes(node["totalTime"]); ok {
		r["total_time"] = total
	} else if hasPrep || hasCook {
		r["total_time"] = prep + cook
	}
	if hasCook {
		r["cook_time"] = cook
	}
	if hasPrep {
		r["prep_time"] = prep
	}

	ingredients := texts(node["recipeIngredient"])
	if len(ingredients) == 0 {
		ingredients = texts(node["ingredients"])
	}
	if ingredients == nil {
		ingredients = []string{}
	}
	r["ingredients"] = ingredients
	r["ingredient_groups"] = []interface{}{
		map[string]interface{}{"ingredients": ingredients, "purpose": nil},
	}

	steps := instructionList(node["recipeInstructions"])
	if len(steps) > 0 {
		r["instructions_list"] = steps
		r["instructions"] = strings.Join(steps, "\n")
	}

	if n := nutrients(node["nutrition"]); n != nil {
		r["nutrients"] = n
	}
	if rating, ok := node["aggregateRating"].(map[string]interface{}); ok {
		if v, ok := number(rating["ratingValue"]); ok {
			r["ratings"] = math.Round(v*100) / 100
		}
		count, ok := number(rating["ratingCount"])
		if !ok {
			count, ok = number(rating["reviewCount"])
		}
		if ok {
			r["ratings_count"] = int(count)
		}
	}
	setList("equipment", texts(node["tool"]))

	return r
}
