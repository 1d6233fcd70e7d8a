package types

import (
	"encoding/json"
	"fmt"
)

// RawRecipe is the JSON-compatible mapping produced by a recipe extractor.
// Fields other than "ingredients" are passed through to the client untouched.
type RawRecipe map[string]interface{}

// Ingredients returns the ingredient lines of the recipe in source order.
func (r RawRecipe) Ingredients() []string {
	switch v := r["ingredients"].(type) {
	case []string:
		return v
	case []interface{}:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				lines = append(lines, s)
				continue
			}
			lines = append(lines, fmt.Sprint(item))
		}
		return lines
	}
	return nil
}

// Amount is a single quantity/unit pair of a parsed ingredient.
type Amount struct {
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// ParsedIngredient is the structured form of one ingredient line.
type ParsedIngredient struct {
	Name        *string  `json:"name"`
	Size        *string  `json:"size"`
	Amount      []Amount `json:"amount"`
	Preparation *string  `json:"preparation"`
	Comment     *string  `json:"comment"`
	Purpose     *string  `json:"purpose"`
	Original    string   `json:"original"`

	degraded bool
}

// NewDegradedIngredient returns the fallback record used when a line cannot be parsed.
func NewDegradedIngredient(line string) ParsedIngredient {
	return ParsedIngredient{Original: line, degraded: true}
}

// Degraded reports whether the record is the parse-failure fallback.
func (p ParsedIngredient) Degraded() bool {
	return p.degraded
}

// MarshalJSON emits only "original" for degraded records.
func (p ParsedIngredient) MarshalJSON() ([]byte, error) {
	if p.degraded {
		return json.Marshal(struct {
			Original string `json:"original"`
		}{Original: p.Original})
	}

	type parsedIngredient ParsedIngredient
	out := parsedIngredient(p)
	if out.Amount == nil {
		out.Amount = []Amount{}
	}
	return json.Marshal(out)
}

// RecipeResponse is the body returned by the scrape endpoint.
type RecipeResponse map[string]interface{}

// NewRecipeResponse copies the extracted recipe and attaches parsed ingredients
// when the ingredient stage ran. A nil parsed slice means the stage was disabled.
func NewRecipeResponse(raw RawRecipe, parsed []ParsedIngredient) RecipeResponse {
	resp := make(RecipeResponse, len(raw)+1)
	for k, v := range raw {
		resp[k] = v
	}
	if parsed != nil {
		resp["parsed_ingredients"] = parsed
	}
	return resp
}
