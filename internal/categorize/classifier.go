// Package categorize assigns spending categories to parsed item names. The
// lookup is a fixed-order chain: keyword rules, remembered manual
// corrections, then a generative model. The first tier with an opinion wins.
package categorize

import "strings"

// Uncategorized is the fallback label for items no tier could place with
// enough confidence.
const Uncategorized = "UNCATEGORIZED"

// MinConfidence is the cut-off below which callers should fall back to
// Uncategorized.
const MinConfidence = 0.75

// Match is a categorization decision with its confidence.
type Match struct {
	Category   string
	Confidence float64
}

// Classifier assigns a category to an item name. A nil Match means the tier
// has no opinion and the next tier should be consulted.
type Classifier interface {
	Classify(itemName string) (*Match, error)
	Close() error
}

// Chain consults classifiers in fixed order and short-circuits on the first
// match.
type Chain struct {
	tiers []Classifier
}

// NewChain creates a Chain over the given tiers, tried in argument order.
func NewChain(tiers ...Classifier) *Chain {
	return &Chain{tiers: tiers}
}

// Classify returns the first tier's match. When no tier has an opinion the
// result is Uncategorized with zero confidence.
func (c *Chain) Classify(itemName string) (*Match, error) {
	if strings.TrimSpace(itemName) == "" {
		return &Match{Category: Uncategorized}, nil
	}
	for _, tier := range c.tiers {
		match, err := tier.Classify(itemName)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	return &Match{Category: Uncategorized}, nil
}

// Close closes every tier, returning the first error encountered.
func (c *Chain) Close() error {
	var firstErr error
	for _, tier := range c.tiers {
		if err := tier.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// matchCategory validates a model response against the known category list.
// A recognized category scores 0.95; anything else lands in Miscellaneous
// with a confidence low enough that callers treat it cautiously but above
// the uncategorized floor.
func matchCategory(response string, categories []string) *Match {
	lower := strings.ToLower(response)
	for _, cat := range categories {
		if strings.Contains(lower, strings.ToLower(cat)) {
			return &Match{Category: cat, Confidence: 0.95}
		}
	}
	return &Match{Category: "Miscellaneous", Confidence: 0.70}
}
