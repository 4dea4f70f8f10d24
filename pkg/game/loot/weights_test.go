package loot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"derelict/pkg/game/catalog"
)

func TestWeights_TierOneGatesHighRarities(t *testing.T) {
	u := catalog.UniformVector(1.0)
	w := Weights(1, 0, u, u, u)

	assert.Zero(t, w[catalog.Epic], "epic must carry no weight at tier 1")
	assert.Zero(t, w[catalog.Legendary], "legendary must carry no weight at tier 1")
	assert.InDelta(t, 100.0, w[catalog.Common], 1e-9)
	assert.InDelta(t, 40.0, w[catalog.Uncommon], 1e-9)
	assert.InDelta(t, 15.0, w[catalog.Rare], 1e-9)
}

func TestWeights_GatesOpenWithTier(t *testing.T) {
	u := catalog.UniformVector(1.0)

	assert.Zero(t, Weights(1, 0, u, u, u)[catalog.Epic])
	assert.Positive(t, Weights(2, 0, u, u, u)[catalog.Epic])
	assert.Zero(t, Weights(2, 0, u, u, u)[catalog.Legendary])
	assert.Positive(t, Weights(3, 0, u, u, u)[catalog.Legendary])
}

func TestWeights_MonotonicInTier(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mod := func(label string) catalog.RarityVector {
			var v catalog.RarityVector
			for i := range v {
				v[i] = rapid.Float64Range(0.1, 2.0).Draw(t, label)
			}
			return v
		}
		faction := mod("faction")
		room := mod("room")
		container := mod("container")
		distance := rapid.Float64Range(0, 1).Draw(t, "distance")
		tier := rapid.IntRange(1, 4).Draw(t, "tier")

		lo := Weights(tier, distance, faction, room, container)
		hi := Weights(tier+1, distance, faction, room, container)
		for r := 0; r < catalog.NumRarities; r++ {
			if lo[r] > hi[r] {
				t.Fatalf("rarity %d weight dropped from %v to %v between tier %d and %d",
					r, lo[r], hi[r], tier, tier+1)
			}
		}
	})
}

func TestWeights_MonotonicInDistance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := catalog.UniformVector(1.0)
		tier := rapid.IntRange(1, 5).Draw(t, "tier")
		d1 := rapid.Float64Range(0, 1).Draw(t, "d1")
		d2 := rapid.Float64Range(d1, 1).Draw(t, "d2")

		near := Weights(tier, d1, u, u, u)
		far := Weights(tier, d2, u, u, u)
		for r := 0; r < catalog.NumRarities; r++ {
			if near[r] > far[r] {
				t.Fatalf("rarity %d weight dropped with distance: %v at %v, %v at %v",
					r, near[r], d1, far[r], d2)
			}
		}
	})
}

func TestWeights_ModifiersMultiply(t *testing.T) {
	u := catalog.UniformVector(1.0)
	boosted := u
	boosted[catalog.Rare] = 2.0

	base := Weights(3, 0, u, u, u)
	withFaction := Weights(3, 0, boosted, u, u)
	assert.InDelta(t, 2*base[catalog.Rare], withFaction[catalog.Rare], 1e-9)
	assert.InDelta(t, base[catalog.Common], withFaction[catalog.Common], 1e-9)
}

func TestTierModifier(t *testing.T) {
	assert.InDelta(t, 1.0, TierModifier(1), 1e-9)
	assert.InDelta(t, 1.3, TierModifier(2), 1e-9)
	assert.InDelta(t, 1.3*1.3, TierModifier(3), 1e-9)
}

func TestDistanceModifier(t *testing.T) {
	assert.InDelta(t, 1.0, DistanceModifier(0), 1e-9)
	assert.InDelta(t, 1.25, DistanceModifier(0.5), 1e-9)
	assert.InDelta(t, 1.5, DistanceModifier(1), 1e-9)
}

func TestFloorWeights(t *testing.T) {
	w := catalog.RarityVector{10, 8, 6, 4, 2}
	floored := FloorWeights(w, catalog.Rare)

	assert.Zero(t, floored[catalog.Common])
	assert.Zero(t, floored[catalog.Uncommon])
	assert.Equal(t, w[catalog.Rare], floored[catalog.Rare])
	assert.Equal(t, w[catalog.Epic], floored[catalog.Epic])
	assert.Equal(t, w[catalog.Legendary], floored[catalog.Legendary])

	// Common floor is the no-op case.
	assert.Equal(t, w, FloorWeights(w, catalog.Common))
}

func TestMinTierFor(t *testing.T) {
	assert.Equal(t, 1, MinTierFor(catalog.Common))
	assert.Equal(t, 1, MinTierFor(catalog.Rare))
	assert.Equal(t, 2, MinTierFor(catalog.Epic))
	assert.Equal(t, 3, MinTierFor(catalog.Legendary))
}
