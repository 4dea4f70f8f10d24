package generator

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"derelict/pkg/engine/grid"
)

// validate runs the final reachability checks over the finished grid:
// the exit cell, every room, and every container's room must be reachable
// from the entry cell across Room/Corridor/Door cells. Locked doors count
// as traversable; unlocking is a gameplay-time concern. Any failure
// retries the whole generation with a derived seed.
func (b *build) validate() error {
	reached := b.reachableFromEntry(nil)

	if !reached.Has(b.exit) {
		return fmt.Errorf("exit at (%d,%d) unreachable from entry: %w",
			b.exit.X, b.exit.Y, errConnectivity)
	}
	for i := range b.rooms {
		if !b.roomReached(i, reached) {
			return fmt.Errorf("room %d (%s) unreachable from entry: %w",
				i, b.rooms[i].TypeID, errConnectivity)
		}
	}
	for ci, c := range b.containers {
		if !b.containerReachable(c, reached) {
			return fmt.Errorf("container %d (%s) in room %d unreachable: %w",
				ci, c.TypeID, c.RoomIndex, errConnectivity)
		}
	}
	return nil
}

// reachableFromEntry floods outward from the entry cell across walkable
// cells, treating the given positions as impassable. Neighbor order is
// fixed, so the traversal is deterministic.
func (b *build) reachableFromEntry(blocked []grid.Point) mapset.Set[grid.Point] {
	blockedSet := mapset.New[grid.Point]()
	for _, p := range blocked {
		blockedSet.Put(p)
	}

	reached := mapset.New[grid.Point]()
	if blockedSet.Has(b.entry) || !b.hull.Walkable(b.entry) {
		return reached
	}
	reached.Put(b.entry)
	queue := []grid.Point{b.entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range cur.Neighbors() {
			if !b.hull.Walkable(nb) || reached.Has(nb) || blockedSet.Has(nb) {
				continue
			}
			reached.Put(nb)
			queue = append(queue, nb)
		}
	}
	return reached
}

// roomReached reports whether at least one cell of the room was reached.
func (b *build) roomReached(room int, reached mapset.Set[grid.Point]) bool {
	bounds := b.rooms[room].Bounds
	for y := bounds.Y; y < bounds.Bottom(); y++ {
		for x := bounds.X; x < bounds.Right(); x++ {
			if reached.Has(grid.Point{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}
