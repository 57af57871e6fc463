package categorize

import (
	"regexp"
	"strings"
)

// FalseFriend overrides the keyword rules for an ambiguous term.
type FalseFriend struct {
	Word     string
	Category string
}

// CategoryRule maps keywords to a category. Rule order is priority order:
// more specific rules belong earlier in the table.
type CategoryRule struct {
	Category string
	Keywords []string
}

// RuleTable is the static categorization configuration: the closed category
// list, false-friend overrides and the keyword table.
type RuleTable struct {
	Categories   []string
	FalseFriends []FalseFriend
	Rules        []CategoryRule
}

// DefaultRuleTable returns the built-in table for German supermarket items.
func DefaultRuleTable() *RuleTable {
	return &RuleTable{
		Categories: []string{
			"Energy Drinks", "Beverages", "Alcoholic Beverages",
			"Fresh Produce", "Dairy & Eggs", "Meat & Fish",
			"Pantry & Cooking", "Breakfast & Bakery", "Frozen Food",
			"Sweets & Snacks", "Cleaning", "Personal Care & Health",
			"Pet Supplies", "Financials", "Others(Hardware,Hobby,One-time purchase)", "Miscellaneous",
		},
		FalseFriends: []FalseFriend{
			{Word: "scheuermilch", Category: "Cleaning"},
			{Word: "reinigungsmilch", Category: "Personal Care & Health"},
			{Word: "eisspray", Category: "Personal Care & Health"},
			{Word: "karosseriebutter", Category: "Miscellaneous"},
			{Word: "oetk", Category: "Pantry & Cooking"},
		},
		Rules: []CategoryRule{
			{Category: "Financials", Keywords: []string{"discount", "rabatt", "aktion", "pfand", "coupon", "gutschrift"}},
			{Category: "Energy Drinks", Keywords: []string{"monster", "red bull", "rockstar", "reign", "effect", "kong strong"}},
			{Category: "Cleaning", Keywords: []string{
				"scheuer", "reiniger", "putz", "wc", "spül", "wasch", "tasc",
				"müll", "beutel", "folie", "küchenroll",
			}},
			{Category: "Others(Hardware,Hobby,One-time purchase)", Keywords: []string{
				"brikett", "kohle", "batterie", "kerze", "feuerzeug", "grill", "hobby", "werkzeug", "papiertrag",
			}},
			{Category: "Frozen Food", Keywords: []string{"tk ", "tiefk", "pizza", "pomm", "eis ", "wellenschnitt", "iglo", "mccain"}},
			{Category: "Dairy & Eggs", Keywords: []string{"käse", "quark", "joghurt", "sahne", "schmand", "butter", "ei ", "eier", "frischmilch", "h milch"}},
			{Category: "Meat & Fish", Keywords: []string{"wurst", "schinken", "salami", "fleisch", "hack", "chick", "hähnchen", "pute", "lachs", "thunfisch"}},
			{Category: "Fresh Produce", Keywords: []string{"ingwer", "bio", "lose", "apfel", "banane", "gurke", "tomate fresh", "salat"}},
			{Category: "Beverages", Keywords: []string{"wasser", "water", "cola", "fanta", "sprite", "limo", "saft", "nektar", "schorle", "drink", "kaffee", "tee"}},
			{Category: "Sweets & Snacks", Keywords: []string{"schoko", "keks", "gummi", "bonbon", "riegel", "hanuta", "chips", "nüsse", "snack"}},
			{Category: "Pantry & Cooking", Keywords: []string{"nudeln", "pasta", "fusilli", "reis", "mehl", "zucker", "salz", "ketchup", "senf", "mayo", "öl", "essig", "konserve", "dose", "glas"}},
		},
	}
}

var nameCleanRe = regexp.MustCompile(`[^a-z0-9äöüß ]`)

// normalizeName lowercases an item name and strips everything but letters,
// digits and spaces so keyword comparisons are stable across OCR noise.
func normalizeName(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = nameCleanRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// RuleClassifier is the first chain tier: false-friend overrides, then the
// ordered keyword table, all at full confidence.
type RuleClassifier struct {
	table *RuleTable
}

// NewRuleClassifier creates a RuleClassifier. A nil table selects
// DefaultRuleTable.
func NewRuleClassifier(table *RuleTable) *RuleClassifier {
	if table == nil {
		table = DefaultRuleTable()
	}
	return &RuleClassifier{table: table}
}

// Classify matches the normalized item name against the rule table.
func (r *RuleClassifier) Classify(itemName string) (*Match, error) {
	clean := normalizeName(itemName)
	if clean == "" {
		return nil, nil
	}

	for _, ff := range r.table.FalseFriends {
		if strings.Contains(clean, ff.Word) {
			return &Match{Category: ff.Category, Confidence: 1.0}, nil
		}
	}
	for _, rule := range r.table.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(clean, strings.ToLower(kw)) {
				return &Match{Category: rule.Category, Confidence: 1.0}, nil
			}
		}
	}
	return nil, nil
}

// Close is a no-op for the rule tier.
func (r *RuleClassifier) Close() error {
	return nil
}
