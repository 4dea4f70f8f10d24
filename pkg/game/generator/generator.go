// Package generator builds boardable vessel interiors: non-overlapping
// rooms placed inside a bounded hull, corridors carved along a minimum
// spanning tree, locked doors with guaranteed-reachable keys, and
// containers with resolved rarity-weight distributions. Generation is
// single-threaded, synchronous, and pure with respect to its seed.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"derelict/pkg/engine/grid"
	"derelict/pkg/game/catalog"
	"derelict/pkg/game/layout"
)

// minRoomGap is the minimum number of empty cells kept between any two
// room rectangles and between rooms and the hull edge.
const minRoomGap = 1

// Params are the inputs to one generation call. Identical Params against
// the same catalog always produce an identical layout.
type Params struct {
	// Tier is the difficulty/reward level, 1 (lowest) to 5.
	Tier int
	// FactionID selects the owning faction.
	FactionID string
	// ClassID optionally pins the vessel class. When empty, a class
	// valid for the tier is auto-selected from the catalog by seed.
	ClassID string
	// Seed drives all random choices.
	Seed int64
	// DistanceFactor in [0,1] is how far the vessel is from the
	// player's home base; it only scales loot quality.
	DistanceFactor float64
}

// Generate builds one complete ShipLayout. Recoverable placement and
// connectivity failures are retried internally with derived seeds
// (seed + attempt); only ErrGenerationFailed and catalog.ErrMissing
// cross this boundary.
func Generate(cat *catalog.Context, p Params, log *zap.Logger) (*layout.ShipLayout, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if p.Tier < 1 || p.Tier > 5 {
		return nil, fmt.Errorf("tier %d outside [1,5]", p.Tier)
	}
	if p.DistanceFactor < 0 || p.DistanceFactor > 1 {
		return nil, fmt.Errorf("distance factor %v outside [0,1]", p.DistanceFactor)
	}

	faction, err := cat.Faction(p.FactionID)
	if err != nil {
		return nil, err
	}
	class, err := resolveClass(cat, p)
	if err != nil {
		return nil, err
	}
	if !class.ValidForTier(p.Tier) {
		log.Warn("vessel class spawned outside its tier range",
			zap.String("class", class.ID), zap.Int("tier", p.Tier))
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := &build{
			cat:      cat,
			class:    class,
			faction:  faction,
			tier:     p.Tier,
			distance: p.DistanceFactor,
			seed:     p.Seed,
			rng:      rand.New(rand.NewSource(p.Seed + int64(attempt))),
			log:      log,
		}
		l, err := b.run()
		if err == nil {
			if attempt > 0 {
				log.Debug("generation succeeded after retries",
					zap.Int("attempts", attempt+1), zap.Int64("seed", p.Seed))
			}
			return l, nil
		}
		if !errors.Is(err, errPlacementExhausted) && !errors.Is(err, errConnectivity) {
			return nil, err
		}
		lastErr = err
		log.Debug("generation attempt failed",
			zap.Int("attempt", attempt), zap.Int64("seed", p.Seed), zap.Error(err))
	}
	return nil, fmt.Errorf("%w: class %s tier %d seed %d after %d attempts: %v",
		ErrGenerationFailed, class.ID, p.Tier, p.Seed, maxAttempts, lastErr)
}

// GenerateForDistance derives tier and faction probabilistically from the
// distance factor, then delegates to Generate.
func GenerateForDistance(cat *catalog.Context, distanceFactor float64, seed int64, log *zap.Logger) (*layout.ShipLayout, error) {
	if distanceFactor < 0 || distanceFactor > 1 {
		return nil, fmt.Errorf("distance factor %v outside [0,1]", distanceFactor)
	}
	rng := rand.New(rand.NewSource(seed))
	tier := tierForDistance(rng, distanceFactor)
	factionID, err := factionForDistance(rng, cat, distanceFactor)
	if err != nil {
		return nil, err
	}
	return Generate(cat, Params{
		Tier:           tier,
		FactionID:      factionID,
		Seed:           seed,
		DistanceFactor: distanceFactor,
	}, log)
}

// resolveClass returns the pinned class or auto-selects one valid for the
// tier, picked deterministically from the seed.
func resolveClass(cat *catalog.Context, p Params) (*catalog.VesselClass, error) {
	if p.ClassID != "" {
		return cat.VesselClass(p.ClassID)
	}
	classes := cat.ClassesForTier(p.Tier)
	if len(classes) == 0 {
		return nil, fmt.Errorf("no vessel class valid for tier %d: %w", p.Tier, catalog.ErrMissing)
	}
	rng := rand.New(rand.NewSource(p.Seed))
	return classes[rng.Intn(len(classes))], nil
}

// tierForDistance maps distance onto the tier ladder with a small seeded
// nudge either way.
func tierForDistance(rng *rand.Rand, d float64) int {
	tier := 1 + int(math.Floor(d*4+0.5))
	switch roll := rng.Float64(); {
	case roll < 0.2:
		tier--
	case roll > 0.8:
		tier++
	}
	if tier < 1 {
		tier = 1
	}
	if tier > 5 {
		tier = 5
	}
	return tier
}

// factionForDistance picks a faction weighted toward those whose traffic
// is densest near the given distance.
func factionForDistance(rng *rand.Rand, cat *catalog.Context, d float64) (string, error) {
	factions := cat.Factions()
	if len(factions) == 0 {
		return "", fmt.Errorf("no factions in catalog: %w", catalog.ErrMissing)
	}
	weights := make([]float64, len(factions))
	for i, f := range factions {
		weights[i] = 1 / (0.25 + math.Abs(d-f.HomeDistance))
	}
	return factions[weightedIndex(rng, weights)].ID, nil
}

// build holds the mutable state of one generation attempt. It is owned
// exclusively by the single Generate call; nothing observes it
// mid-generation.
type build struct {
	cat      *catalog.Context
	class    *catalog.VesselClass
	faction  *catalog.Faction
	tier     int
	distance float64
	seed     int64
	rng      *rand.Rand
	log      *zap.Logger

	hull       *grid.Grid
	rooms      []layout.RoomInstance
	roomTypes  []*catalog.RoomType
	corridors  []layout.CorridorSegment
	doors      []layout.DoorPlacement
	containers []layout.ContainerPlacement

	lockedRooms []int
	entry       grid.Point
	exit        grid.Point

	areaUsed   int
	areaBudget int
}

// run executes one full generation attempt.
func (b *build) run() (*layout.ShipLayout, error) {
	if err := b.placeRooms(); err != nil {
		return nil, err
	}
	b.entry = b.rooms[0].Bounds.Center()
	b.buildCorridors()
	b.selectLockedRooms()
	b.chooseExit()
	b.placeContainers()
	b.finalizeLocks()
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.dressWalls()

	return layout.New(
		b.class.ID, b.faction.ID, b.tier, b.seed,
		b.hull, b.rooms, b.corridors, b.doors, b.containers,
		b.entry, b.exit,
	), nil
}

// dressWalls converts every Empty cell touching carved space into Wall so
// consumers get a closed hull silhouette. Done last; placement logic only
// ever reads Empty.
func (b *build) dressWalls() {
	var walls []grid.Point
	b.hull.ForEach(func(p grid.Point, c grid.Cell) {
		if c.State != grid.Empty {
			return
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				switch b.hull.StateAt(grid.Point{X: p.X + dx, Y: p.Y + dy}) {
				case grid.Room, grid.Corridor, grid.Door, grid.Reserved:
					walls = append(walls, p)
					return
				}
			}
		}
	})
	for _, p := range walls {
		b.hull.Set(p, grid.Wall, grid.NoOwner)
	}
}

// randBetween returns a seeded uniform int in [lo, hi].
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// weightedIndex picks an index with probability proportional to its
// weight. Returns -1 when no weight is positive.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	// Float round-off: fall back to the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
