package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// microdataRecipe converts the first Recipe itemscope into the same shape a
// JSON-LD node decodes to. Properties repeated on the page become lists.
func microdataRecipe(doc *goquery.Document) map[string]interface{} {
	root := doc.Find(`[itemscope][itemtype*="schema.org/Recipe"]`).First()
	if root.Length() == 0 {
		return nil
	}

	values := map[string][]string{}
	var order []string
	root.Find("[itemprop]").Each(func(_ int, s *goquery.Selection) {
		if !s.ParentsFiltered("[itemscope]").First().IsSelection(root) {
			return
		}
		v := propValue(s)
		if v == "" {
			return
		}
		for _, prop := range strings.Fields(s.AttrOr("itemprop", "")) {
			if _, seen := values[prop]; !seen {
				order = append(order, prop)
			}
			values[prop] = append(values[prop], v)
		}
	})

	node := map[string]interface{}{"@type": "Recipe"}
	for _, prop := range order {
		vs := values[prop]
		switch {
		case prop == "recipeIngredient" || prop == "ingredients" || prop == "recipeInstructions" || len(vs) > 1:
			node[prop] = stringsToAny(vs)
		default:
			node[prop] = vs[0]
		}
	}
	if rating := nestedScope(root, "aggregateRating"); rating != nil {
		node["aggregateRating"] = rating
	}
	if nutrition := nestedScope(root, "nutrition"); nutrition != nil {
		node["nutrition"] = nutrition
	}
	return node
}

// propValue reads an itemprop value from the attribute HTML microdata
// assigns to each element type, falling back to the text content.
func propValue(s *goquery.Selection) string {
	if _, scoped := s.Attr("itemscope"); scoped {
		if name := s.Find(`[itemprop="name"]`).First(); name.Length() > 0 {
			return propValue(name)
		}
		return norm(s.Text())
	}
	if v, ok := s.Attr("content"); ok {
		return norm(v)
	}
	switch goquery.NodeName(s) {
	case "img", "audio", "video", "source":
		return norm(s.AttrOr("src", ""))
	case "a", "link", "area":
		return norm(s.AttrOr("href", ""))
	case "time":
		if v, ok := s.Attr("datetime"); ok {
			return norm(v)
		}
	case "data", "meter":
		if v, ok := s.Attr("value"); ok {
			return norm(v)
		}
	}
	return norm(s.Text())
}

// nestedScope flattens a nested itemscope such as aggregateRating into a map.
func nestedScope(root *goquery.Selection, prop string) map[string]interface{} {
	scope := root.Find(`[itemprop="` + prop + `"][itemscope]`).First()
	if scope.Length() == 0 {
		return nil
	}
	out := map[string]interface{}{}
	scope.Find("[itemprop]").Each(func(_ int, s *goquery.Selection) {
		if !s.ParentsFiltered("[itemscope]").First().IsSelection(scope) {
			return
		}
		if v := propValue(s); v != "" {
			out[s.AttrOr("itemprop", "")] = v
		}
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
