package generator

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"derelict/pkg/engine/grid"
	"derelict/pkg/game/catalog"
	"derelict/pkg/game/layout"
	"derelict/pkg/game/loot"
)

// positionRetries bounds the rejection sampling for one container before
// it is skipped. Skipping is a local decision, never a generation error.
const positionRetries = 12

// placedContainer tracks in-room spacing constraints while placing.
type placedContainer struct {
	pos     grid.Point
	spacing int
}

// placeContainers fills every room with containers drawn from its room
// type's compatible list, then resolves each container's rarity-weight
// vector from the tier, faction, room, container, and distance modifiers.
func (b *build) placeContainers() {
	for i := range b.rooms {
		rt := b.roomTypes[i]
		if len(rt.Containers) > 0 {
			b.placeRoomContainers(i, rt)
		}
	}
	b.log.Debug("containers placed", zap.Int("count", len(b.containers)))
}

// placeRoomContainers places one room's containers. The room's container
// count is sampled from the type's total range and nudged up by tier.
// Special rooms guarantee the first placed container a floor roll of
// Rare or better.
func (b *build) placeRoomContainers(room int, rt *catalog.RoomType) {
	minTotal, maxTotal := 0, 0
	for _, slot := range rt.Containers {
		minTotal += slot.MinCount
		maxTotal += slot.MaxCount
	}
	if maxTotal == 0 {
		return
	}
	count := randBetween(b.rng, minTotal, maxTotal) + (b.tier-1)/2
	if count > maxTotal {
		count = maxTotal
	}

	drawn := make([]int, len(rt.Containers))
	var inRoom []placedContainer
	guaranteed := false

	for n := 0; n < count; n++ {
		si := b.pickContainerSlot(rt, drawn)
		if si < 0 {
			break
		}
		drawn[si]++

		ct, err := b.cat.ContainerType(rt.Containers[si].TypeID)
		if err != nil {
			// Cross-references were validated at catalog load.
			continue
		}
		pos, ok := b.findContainerPos(room, ct, inRoom)
		if !ok {
			continue
		}

		weights := loot.Weights(b.tier, b.distance,
			b.faction.RarityModifiers, rt.RarityModifiers, ct.RarityModifiers)
		floor := catalog.Common
		floorWeights := weights
		if rt.Special && !guaranteed {
			floor = catalog.Rare
			floorWeights = loot.FloorWeights(weights, floor)
			guaranteed = true
		}

		b.hull.Set(pos, grid.Reserved, room)
		inRoom = append(inRoom, placedContainer{pos: pos, spacing: ct.MinSpacing})
		b.containers = append(b.containers, layout.ContainerPlacement{
			Pos:          pos,
			TypeID:       ct.ID,
			RoomIndex:    room,
			Slots:        randBetween(b.rng, ct.MinSlots, ct.MaxSlots),
			Weights:      weights,
			FloorWeights: floorWeights,
			Floor:        floor,
		})
	}
}

// pickContainerSlot draws a container slot weighted by affinity. Slots
// still below their minimum count are satisfied before any others; slots
// at their maximum are excluded. Returns -1 when everything is exhausted.
func (b *build) pickContainerSlot(rt *catalog.RoomType, drawn []int) int {
	weights := make([]float64, len(rt.Containers))
	belowMin := false
	for i, slot := range rt.Containers {
		if drawn[i] < slot.MinCount {
			belowMin = true
		}
	}
	for i, slot := range rt.Containers {
		if drawn[i] >= slot.MaxCount {
			continue
		}
		if belowMin && drawn[i] >= slot.MinCount {
			continue
		}
		weights[i] = slot.Affinity
	}
	return weightedIndex(b.rng, weights)
}

// findContainerPos rejection-samples a cell inside the room rectangle
// that honors the container's minimum spacing from walls and from other
// containers in the room. Entry and exit cells are never taken.
func (b *build) findContainerPos(room int, ct *catalog.ContainerType, inRoom []placedContainer) (grid.Point, bool) {
	bounds := b.rooms[room].Bounds
	minX := bounds.X + ct.MinSpacing
	maxX := bounds.Right() - 1 - ct.MinSpacing
	minY := bounds.Y + ct.MinSpacing
	maxY := bounds.Bottom() - 1 - ct.MinSpacing
	if minX > maxX || minY > maxY {
		return grid.Point{}, false
	}

	for try := 0; try < positionRetries; try++ {
		p := grid.Point{
			X: randBetween(b.rng, minX, maxX),
			Y: randBetween(b.rng, minY, maxY),
		}
		if p == b.entry || p == b.exit || b.hull.StateAt(p) != grid.Room {
			continue
		}
		clear := true
		for _, other := range inRoom {
			need := ct.MinSpacing
			if other.spacing > need {
				need = other.spacing
			}
			if chebyshev(p, other.pos) < need+1 {
				clear = false
				break
			}
		}
		if clear {
			return p, true
		}
	}
	return grid.Point{}, false
}

// finalizeLocks turns provisional room locks into real ones. A room stays
// locked only if some container in an unlocked room remains reachable
// from the entry with every still-locked door treated as impassable; that
// container is recorded as the door's guaranteed key host. Otherwise the
// lock is downgraded to unlocked rather than risking an unsolvable
// layout.
func (b *build) finalizeLocks() {
	if len(b.lockedRooms) == 0 {
		return
	}
	stillLocked := mapset.New[int]()
	for _, room := range b.lockedRooms {
		stillLocked.Put(room)
	}

	for _, room := range b.lockedRooms {
		blocked := b.lockedDoorCells(stillLocked)
		reachable := b.reachableFromEntry(blocked)

		var candidates []int
		for ci, c := range b.containers {
			if stillLocked.Has(c.RoomIndex) {
				continue
			}
			if b.containerReachable(c, reachable) {
				candidates = append(candidates, ci)
			}
		}
		if len(candidates) == 0 {
			stillLocked.Remove(room)
			b.log.Debug("lock downgraded, no reachable key host", zap.Int("room", room))
			continue
		}

		key := candidates[b.rng.Intn(len(candidates))]
		for di := range b.doors {
			if b.doors[di].RoomIndex == room {
				b.doors[di].LockTier = b.tier
				b.doors[di].KeyContainer = key
			}
		}
		b.log.Debug("room locked",
			zap.Int("room", room),
			zap.Int("lock_tier", b.tier),
			zap.Int("key_container", key))
	}
}

// lockedDoorCells collects the door positions of every room in the set,
// in door order.
func (b *build) lockedDoorCells(locked mapset.Set[int]) []grid.Point {
	var out []grid.Point
	for _, d := range b.doors {
		if locked.Has(d.RoomIndex) {
			out = append(out, d.Pos)
		}
	}
	return out
}

// containerReachable reports whether a boarder standing on any reached
// cell can interact with the container (its own cell is Reserved, so
// adjacency is what counts).
func (b *build) containerReachable(c layout.ContainerPlacement, reached mapset.Set[grid.Point]) bool {
	for _, nb := range c.Pos.Neighbors() {
		if reached.Has(nb) {
			return true
		}
	}
	return false
}

func chebyshev(a, b grid.Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
