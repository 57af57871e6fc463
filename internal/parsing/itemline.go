package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	priceRe = regexp.MustCompile(`-?\d+\.\d{2}`)

	// quantityHeadRe matches a quantity marker anchored at the current scan
	// position: an integer next to a multiplication sign in either order.
	// Word-boundary and separator-adjacency rules are checked by hand around
	// the match because RE2 has no lookaround.
	quantityHeadRe = regexp.MustCompile(`^(?:(\d+)\s*[x*]|[x*]\s*(\d+))`)

	digitRunRe = regexp.MustCompile(`\d+`)
)

// ItemParse is the result of parsing a single product line.
type ItemParse struct {
	Name      string
	UnitPrice float64
	Quantity  float64
	Total     float64
}

// ParseItemLine extracts price, quantity and item name from a line ending in
// a tax marker. pending is the buffered fragment from the previous line; it
// is prefixed onto the name unless already contained in it. ok is false when
// the line carries no recognizable price, in which case the caller should
// fall back to fragment/junk handling for the same line.
func ParseItemLine(line, pending string) (ItemParse, bool) {
	loc := taxMarkerRe.FindStringIndex(line)
	if loc == nil {
		return ItemParse{}, false
	}
	content := strings.TrimSpace(line[:loc[0]])

	prices := priceRe.FindAllString(content, -1)
	if len(prices) == 0 {
		return ItemParse{}, false
	}
	total, _ := strconv.ParseFloat(prices[len(prices)-1], 64)

	quantity := 1.0
	var unit float64
	if q, found := findQuantity(content); found {
		quantity, _ = strconv.ParseFloat(q, 64)
		switch {
		case len(prices) >= 2:
			unit, _ = strconv.ParseFloat(prices[0], 64)
			unit, quantity, total = fixMath(unit, quantity, total)
		case quantity != 0:
			unit = round2(total / quantity)
			unit, quantity, total = fixMath(unit, quantity, total)
		default:
			// Unusable quantity with a single price; same fallback as a
			// failed math validation.
			unit, quantity, total = 0.0, 1.0, 0.0
		}
	} else {
		unit = total
	}

	name := content
	for _, p := range prices {
		name = strings.ReplaceAll(name, p, "")
	}
	name = strings.TrimSpace(removeQuantityMarkers(name))

	final := name
	if pending != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(pending)) {
		final = strings.TrimSpace(pending + " " + name)
	}

	lower := strings.ToLower(final)
	if (strings.Contains(lower, "pfand") || strings.Contains(lower, "leergut")) &&
		!strings.Contains(strings.ToUpper(final), "PFAND") {
		final = strings.ToUpper("PFAND " + final)
	}

	return ItemParse{
		Name:      strings.Trim(final, " .,-*"),
		UnitPrice: unit,
		Quantity:  quantity,
		Total:     total,
	}, true
}

// fixMath validates unit*qty against the observed line total and trusts the
// quantity over the unit price when they disagree beyond the tolerance.
// quantity == 1 shortcuts to the observed total so spurious corrections are
// avoided.
func fixMath(unit, qty, total float64) (float64, float64, float64) {
	if qty == 1 {
		return total, qty, total
	}
	if math.Abs(unit*qty-total) > 0.03 && qty != 0 {
		unit = round2(total / qty)
	}
	return unit, qty, total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type span struct {
	start, end int
}

// findQuantityMarkers scans content left to right for non-overlapping
// quantity markers. A digits-before-sign match needs a word boundary before
// the digits and no adjacent decimal separator; a digits-after-sign match
// needs the same at its tail. strict additionally rejects a trailing comma or
// period after the digits, the tighter rule used for quantity detection as
// opposed to name cleanup.
func findQuantityMarkers(content string, strict bool) []span {
	var spans []span
	for i := 0; i < len(content); {
		m := quantityHeadRe.FindStringSubmatchIndex(content[i:])
		if m == nil {
			i++
			continue
		}
		var ok bool
		if m[2] >= 0 {
			ok = leadingBoundaryOK(content, i+m[2])
		} else {
			ok = trailingBoundaryOK(content, i+m[5], strict)
		}
		if ok {
			spans = append(spans, span{start: i + m[0], end: i + m[1]})
			i += m[1]
			continue
		}
		i++
	}
	return spans
}

func leadingBoundaryOK(content string, digitStart int) bool {
	if digitStart == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(content[:digitStart])
	return !isWordRune(prev) && prev != '.' && prev != ','
}

func trailingBoundaryOK(content string, digitEnd int, strict bool) bool {
	if digitEnd >= len(content) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(content[digitEnd:])
	if isWordRune(next) {
		return false
	}
	if strict && (next == ',' || next == '.') {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// findQuantity returns the digits of the first quantity marker in content.
func findQuantity(content string) (string, bool) {
	spans := findQuantityMarkers(content, true)
	if len(spans) == 0 {
		return "", false
	}
	return digitRunRe.FindString(content[spans[0].start:spans[0].end]), true
}

// removeQuantityMarkers strips every quantity marker from content.
func removeQuantityMarkers(content string) string {
	spans := findQuantityMarkers(content, false)
	if len(spans) == 0 {
		return content
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(content[last:sp.start])
		last = sp.end
	}
	b.WriteString(content[last:])
	return b.String()
}
