package categorize

import (
	"fmt"
	"strings"
)

// categoryPrompt is shared by all model providers.
func categoryPrompt(itemName string, categories []string) string {
	return fmt.Sprintf(`You are an expert for German supermarket products.
Categorize the following item: %q

Choose EXACTLY ONE category from this list: %s

Specific rules:
- "Passierte Tomaten" always belongs to "Pantry & Cooking".
- "Baguette" always belongs to "Breakfast & Bakery".
- Pay attention to brand names and typical German abbreviations.

Return ONLY the exact category name from the list.
No explanations, no introduction, no punctuation.`, itemName, strings.Join(categories, ", "))
}
