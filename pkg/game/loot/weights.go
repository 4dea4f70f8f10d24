// Package loot computes the rarity-weight distributions containers roll
// against. Weights combine a global base curve with tier, faction, room,
// container, and distance modifiers; gameplay resolves actual items by
// sampling the resulting vector against an item table elsewhere.
package loot

import (
	"math"

	"derelict/pkg/game/catalog"
)

// BaseWeights is the pre-modifier weight of each rarity tier.
var BaseWeights = catalog.RarityVector{100, 40, 15, 5, 1.5}

// minTierFor gates rarities behind vessel tiers: Epic needs tier 2,
// Legendary tier 3. Gates only open as tier rises, which keeps the
// distribution monotonic in tier.
var minTierFor = [catalog.NumRarities]int{1, 1, 1, 2, 3}

// MinTierFor returns the lowest vessel tier at which the rarity can
// carry weight.
func MinTierFor(r catalog.Rarity) int {
	return minTierFor[r]
}

// TierModifier scales all weights by 1.3 per tier above the first.
func TierModifier(tier int) float64 {
	return math.Pow(1.3, float64(tier-1))
}

// DistanceModifier scales weights by up to +50% at the far end of the
// distance factor's [0,1] range.
func DistanceModifier(distanceFactor float64) float64 {
	return 1 + 0.5*distanceFactor
}

// Weights resolves the final rarity-weight vector for one container:
//
//	w(r) = base(r) × tier × faction(r) × room(r) × container(r) × distance
//
// with tier-gated rarities zeroed out entirely.
func Weights(tier int, distanceFactor float64, faction, room, container catalog.RarityVector) catalog.RarityVector {
	var out catalog.RarityVector
	tm := TierModifier(tier)
	dm := DistanceModifier(distanceFactor)
	for r := 0; r < catalog.NumRarities; r++ {
		if minTierFor[r] > tier {
			continue
		}
		out[r] = BaseWeights[r] * tm * faction[r] * room[r] * container[r] * dm
	}
	return out
}

// FloorWeights returns w with every tier below floor zeroed, for the one
// guaranteed roll special rooms enforce.
func FloorWeights(w catalog.RarityVector, floor catalog.Rarity) catalog.RarityVector {
	out := w
	for r := catalog.Rarity(0); r < floor; r++ {
		out[r] = 0
	}
	return out
}
