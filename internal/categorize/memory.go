package categorize

import "fmt"

// MappingStore persists manual category corrections keyed by the exact item
// name.
type MappingStore interface {
	GetMapping(itemName string) (string, bool, error)
	PutMapping(itemName, category string) error
}

// Memory is the second chain tier: it answers from previously saved manual
// corrections with full confidence, so a user's fix sticks across runs.
type Memory struct {
	store MappingStore
}

// NewMemory creates a Memory tier over the given store.
func NewMemory(store MappingStore) *Memory {
	return &Memory{store: store}
}

// Classify looks the item name up in the correction store.
func (m *Memory) Classify(itemName string) (*Match, error) {
	category, found, err := m.store.GetMapping(itemName)
	if err != nil {
		return nil, fmt.Errorf("looking up mapping: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &Match{Category: category, Confidence: 1.0}, nil
}

// Remember saves a manual correction for future classifications.
func (m *Memory) Remember(itemName, category string) error {
	if err := m.store.PutMapping(itemName, category); err != nil {
		return fmt.Errorf("saving mapping: %w", err)
	}
	return nil
}

// Close is a no-op; the store's lifecycle belongs to its owner.
func (m *Memory) Close() error {
	return nil
}
