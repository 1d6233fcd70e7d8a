package ingredient

import "strings"

// Unit is a canonical, singular unit name such as "cup" or "gram".
type Unit string

func (u Unit) String() string {
	return string(u)
}

var unitAliases = map[string]Unit{}

var unitTable = map[Unit][]string{
	"teaspoon":    {"teaspoon", "teaspoons", "tsp", "tsps", "t"},
	"tablespoon":  {"tablespoon", "tablespoons", "tbsp", "tbsps", "tbs", "tbl", "tbls", "T"},
	"cup":         {"cup", "cups", "c"},
	"fluid ounce": {"fluid ounce", "fluid ounces", "fl oz", "fl. oz", "floz"},
	"ounce":       {"ounce", "ounces", "oz"},
	"pound":       {"pound", "pounds", "lb", "lbs"},
	"gram":        {"gram", "grams", "gramme", "grammes", "g", "gr"},
	"kilogram":    {"kilogram", "kilograms", "kg", "kgs", "kilo", "kilos"},
	"milligram":   {"milligram", "milligrams", "mg"},
	"milliliter":  {"milliliter", "milliliters", "millilitre", "millilitres", "ml"},
	"centiliter":  {"centiliter", "centiliters", "centilitre", "centilitres", "cl"},
	"deciliter":   {"deciliter", "deciliters", "decilitre", "decilitres", "dl"},
	"liter":       {"liter", "liters", "litre", "litres", "l"},
	"pint":        {"pint", "pints", "pt"},
	"quart":       {"quart", "quarts", "qt"},
	"gallon":      {"gallon", "gallons", "gal"},
	"inch":        {"inch", "inches", "in"},
	"centimeter":  {"centimeter", "centimeters", "centimetre", "centimetres", "cm"},
	"pinch":       {"pinch", "pinches"},
	"dash":        {"dash", "dashes"},
	"drop":        {"drop", "drops"},
	"handful":     {"handful", "handfuls"},
	"clove":       {"clove", "cloves"},
	"can":         {"can", "cans", "tin", "tins"},
	"jar":         {"jar", "jars"},
	"bottle":      {"bottle", "bottles"},
	"package":     {"package", "packages", "pkg", "pack", "packs", "packet", "packets"},
	"envelope":    {"envelope", "envelopes"},
	"bag":         {"bag", "bags"},
	"box":         {"box", "boxes"},
	"container":   {"container", "containers"},
	"carton":      {"carton", "cartons"},
	"slice":       {"slice", "slices"},
	"piece":       {"piece", "pieces"},
	"stick":       {"stick", "sticks"},
	"sprig":       {"sprig", "sprigs"},
	"stalk":       {"stalk", "stalks"},
	"rib":         {"rib", "ribs"},
	"bunch":       {"bunch", "bunches"},
	"head":        {"head", "heads"},
	"sheet":       {"sheet", "sheets"},
	"fillet":      {"fillet", "fillets", "filet", "filets"},
	"knob":        {"knob", "knobs"},
	"leaf":        {"leaf", "leaves"},
	"scoop":       {"scoop", "scoops"},
}

func init() {
	for unit, aliases := range unitTable {
		for _, alias := range aliases {
			unitAliases[alias] = unit
		}
	}
}

// lookupUnit resolves a written unit. Single letters are case-sensitive so
// that "T" stays a tablespoon and "t" a teaspoon.
func lookupUnit(word string) (Unit, bool) {
	word = strings.TrimSuffix(word, ".")
	if word == "" {
		return "", false
	}
	if len(word) == 1 {
		u, ok := unitAliases[word]
		return u, ok
	}
	u, ok := unitAliases[strings.ToLower(word)]
	return u, ok
}
