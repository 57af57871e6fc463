// Package cleaning holds the post-parse normalization steps that run between
// the receipt parser and persistence: numeric cell coercion and row
// consolidation.
package cleaning

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/danielliedt/smart-receipt-manager/internal/parsing"
)

// NormalizeCell coerces a delimited amount cell to a canonical form. Strings
// of exactly eight digits are returned verbatim so date and ID columns
// survive the numeric pass, cells containing letters stay text, and anything
// else is parsed as a number (comma decimals, trailing minus sign) and
// reformatted to two decimal places.
func NormalizeCell(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return s
	}
	if len(s) == 8 && allDigits(s) {
		return s
	}
	for _, r := range s {
		if unicode.IsLetter(r) {
			return s
		}
	}

	v := strings.ReplaceAll(s, ",", ".")
	if strings.HasSuffix(v, "-") {
		v = "-" + strings.TrimSuffix(v, "-")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ConsolidateItems merges rows with identical name and unit price into a
// single row with the summed quantity. First-seen order is preserved, and
// the first row of a group keeps its receipt ID and category.
func ConsolidateItems(items []parsing.Item) []parsing.Item {
	type groupKey struct {
		name  string
		price float64
	}

	index := make(map[groupKey]int)
	out := make([]parsing.Item, 0, len(items))
	for _, item := range items {
		k := groupKey{name: item.Name, price: item.UnitPrice}
		if i, seen := index[k]; seen {
			out[i].Quantity += item.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}
