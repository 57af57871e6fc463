package parsing

import (
	"regexp"
	"strings"
)

// LineKind is the classification of a normalized receipt line.
type LineKind int

const (
	// LineBlank clears the pending name buffer without emitting anything.
	LineBlank LineKind = iota
	// LineTotal carries the receipt total sum.
	LineTotal
	// LineItem ends in a tax marker and is a candidate product line.
	LineItem
	// LineJunk is store boilerplate that must not become an item name.
	LineJunk
	// LineFragment may be the first half of a name split across two lines.
	LineFragment
)

var (
	taxMarkerRe = regexp.MustCompile(`\s+[ABW]$`)
	addressRe   = regexp.MustCompile(`\d+[-\s/]+\d+`)
	postalRe    = regexp.MustCompile(`^\d{5}\s+`)
)

// ClassifyLine decides what a normalized line is. The check order is
// significant: total-sum keywords win over tax markers, and tax markers win
// over junk detection, so a line matching several categories always lands in
// the highest-priority one.
func ClassifyLine(line string, rules *Rules) LineKind {
	if strings.TrimSpace(line) == "" {
		return LineBlank
	}

	lower := strings.ToLower(line)
	for _, kw := range rules.TotalKeywords {
		if strings.Contains(lower, kw) {
			return LineTotal
		}
	}

	if taxMarkerRe.MatchString(line) {
		return LineItem
	}

	if IsJunkLine(line, rules) {
		return LineJunk
	}
	return LineFragment
}

// IsJunkLine reports whether a line is store boilerplate (address, phone or
// tax-ID label, legal-entity suffix, payment word) rather than a potential
// item name. Deposit lines (Pfand/Leergut) are never junk; that check runs
// before the numeric address and postal-code patterns.
func IsJunkLine(line string, rules *Rules) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return true
	}

	for _, kw := range rules.JunkKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, name := range rules.StoreShortNames {
		if lower == name {
			return true
		}
	}

	if strings.Contains(lower, "pfand") || strings.Contains(lower, "leergut") {
		return false
	}

	if addressRe.MatchString(line) {
		return true
	}
	if postalRe.MatchString(line) {
		return true
	}
	return false
}
