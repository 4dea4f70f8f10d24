// Package catalog holds the static data tables the generator draws from:
// factions, vessel classes, room types, and container types. Entries are
// immutable once loaded and are handed to the generator as an explicit
// Context rather than ambient global state.
package catalog

import "fmt"

// Rarity is an ordered item-quality tier used to weight loot rolls.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

// NumRarities is the size of a rarity weight vector.
const NumRarities = int(Legendary) + 1

// RarityVector carries one value per rarity tier, indexed by Rarity.
type RarityVector [NumRarities]float64

// UniformVector returns a vector with every tier set to v.
func UniformVector(v float64) RarityVector {
	var out RarityVector
	for i := range out {
		out[i] = v
	}
	return out
}

var rarityNames = [NumRarities]string{"common", "uncommon", "rare", "epic", "legendary"}

// String returns the lowercase rarity name.
func (r Rarity) String() string {
	if r < 0 || int(r) >= NumRarities {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity converts a lowercase rarity name to its tier.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if s == name {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}
