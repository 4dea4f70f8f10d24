package generator

import (
	"fmt"

	"go.uber.org/zap"

	"derelict/pkg/engine/grid"
	"derelict/pkg/game/catalog"
	"derelict/pkg/game/layout"
)

// spiralRadius bounds the local search around a room's preferred anchor
// before falling back to a full hull scan.
const spiralRadius = 8

// placeRooms samples the hull, places every required room in class order,
// then adds filler rooms until the room-count target or the free-area
// budget is exhausted. Required rooms that cannot be placed fail the
// attempt; filler rooms just stop.
func (b *build) placeRooms() error {
	w := randBetween(b.rng, b.class.HullMin.W, b.class.HullMax.W)
	h := randBetween(b.rng, b.class.HullMin.H, b.class.HullMax.H)
	b.hull = grid.New(w, h)

	// Fillers may claim up to two thirds of the interior; the rest stays
	// corridors and dead space.
	b.areaBudget = (w - 2) * (h - 2) * 2 / 3
	b.areaUsed = 0

	target := randBetween(b.rng, b.class.MinRooms, b.class.MaxRooms)
	if target < len(b.class.RequiredRooms) {
		target = len(b.class.RequiredRooms)
	}

	for _, id := range b.class.RequiredRooms {
		rt, err := b.cat.RoomType(id)
		if err != nil {
			return err
		}
		if !b.placeRoom(rt) {
			return fmt.Errorf("required room %q does not fit %dx%d hull: %w",
				id, w, h, errPlacementExhausted)
		}
	}

	for len(b.rooms) < target && b.areaUsed < b.areaBudget {
		rt := b.pickFiller()
		if rt == nil {
			break
		}
		if !b.placeRoom(rt) {
			// Hull is tight; stop adding fillers rather than thrash.
			break
		}
	}

	b.log.Debug("rooms placed",
		zap.String("class", b.class.ID),
		zap.Int("rooms", len(b.rooms)),
		zap.Int("hull_w", w),
		zap.Int("hull_h", h))
	return nil
}

// pickFiller draws an optional room type weighted by the faction's room
// affinity. Special rooms that are already placed are excluded. Returns
// nil when nothing is drawable.
func (b *build) pickFiller() *catalog.RoomType {
	placedSpecial := make(map[string]bool)
	for _, rt := range b.roomTypes {
		if rt.Special {
			placedSpecial[rt.ID] = true
		}
	}

	var candidates []*catalog.RoomType
	var weights []float64
	for _, id := range b.class.OptionalRooms {
		rt, err := b.cat.RoomType(id)
		if err != nil || placedSpecial[rt.ID] {
			continue
		}
		weight := 1.0
		if aff, ok := b.faction.RoomAffinity[id]; ok {
			weight = aff
		}
		candidates = append(candidates, rt)
		weights = append(weights, weight)
	}
	i := weightedIndex(b.rng, weights)
	if i < 0 {
		return nil
	}
	return candidates[i]
}

// placeRoom samples a size for the room type and finds a position via
// anchor, spiral search, then full scan. Returns false when no position
// exists anywhere in the hull.
func (b *build) placeRoom(rt *catalog.RoomType) bool {
	sw := randBetween(b.rng, rt.MinSize.W, rt.MaxSize.W)
	sh := randBetween(b.rng, rt.MinSize.H, rt.MaxSize.H)

	pos, ok := b.findPlacement(b.anchorFor(rt, sw, sh), sw, sh)
	if !ok {
		return false
	}

	idx := len(b.rooms)
	bounds := grid.Rect{X: pos.X, Y: pos.Y, W: sw, H: sh}
	b.hull.FillRect(bounds, grid.Room, idx)
	b.rooms = append(b.rooms, layout.RoomInstance{Index: idx, TypeID: rt.ID, Bounds: bounds})
	b.roomTypes = append(b.roomTypes, rt)
	b.areaUsed += bounds.Grow(minRoomGap).Area()

	b.log.Debug("placed room",
		zap.String("type", rt.ID),
		zap.Int("index", idx),
		zap.Int("x", pos.X), zap.Int("y", pos.Y),
		zap.Int("w", sw), zap.Int("h", sh))
	return true
}

// anchorFor returns the preferred top-left position for a room of the
// given size. Fore is the high-X hull edge, aft the low-X edge.
func (b *build) anchorFor(rt *catalog.RoomType, sw, sh int) grid.Point {
	maxX := b.hull.Width() - sw - minRoomGap
	maxY := b.hull.Height() - sh - minRoomGap
	midY := (b.hull.Height() - sh) / 2

	switch rt.Anchor {
	case catalog.AnchorFore:
		return grid.Point{X: maxX, Y: midY}
	case catalog.AnchorAft:
		return grid.Point{X: minRoomGap, Y: midY}
	case catalog.AnchorCenter:
		return grid.Point{X: (b.hull.Width() - sw) / 2, Y: midY}
	default:
		return grid.Point{
			X: randBetween(b.rng, minRoomGap, maxX),
			Y: randBetween(b.rng, minRoomGap, maxY),
		}
	}
}

// findPlacement tries the anchor, then a bounded spiral of offsets around
// it, then every position in deterministic grid order. This replaces
// unbounded random retry with an explicit search order.
func (b *build) findPlacement(anchor grid.Point, sw, sh int) (grid.Point, bool) {
	fits := func(p grid.Point) bool {
		return b.hull.RegionAvailable(grid.Rect{X: p.X, Y: p.Y, W: sw, H: sh}, minRoomGap)
	}

	if fits(anchor) {
		return anchor, true
	}
	for r := 1; r <= spiralRadius; r++ {
		for _, off := range ringOffsets(r) {
			p := grid.Point{X: anchor.X + off.X, Y: anchor.Y + off.Y}
			if fits(p) {
				return p, true
			}
		}
	}
	for y := minRoomGap; y <= b.hull.Height()-sh-minRoomGap; y++ {
		for x := minRoomGap; x <= b.hull.Width()-sw-minRoomGap; x++ {
			p := grid.Point{X: x, Y: y}
			if fits(p) {
				return p, true
			}
		}
	}
	return grid.Point{}, false
}

// ringOffsets returns the offsets forming the square ring at the given
// radius, walked clockwise from the top-left corner. The order is fixed
// so placement stays deterministic.
func ringOffsets(r int) []grid.Point {
	out := make([]grid.Point, 0, 8*r)
	for x := -r; x <= r; x++ {
		out = append(out, grid.Point{X: x, Y: -r})
	}
	for y := -r + 1; y <= r; y++ {
		out = append(out, grid.Point{X: r, Y: y})
	}
	for x := r - 1; x >= -r; x-- {
		out = append(out, grid.Point{X: x, Y: r})
	}
	for y := r - 1; y >= -r+1; y-- {
		out = append(out, grid.Point{X: -r, Y: y})
	}
	return out
}
