package generator

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/heap"
	"go.uber.org/zap"

	"derelict/pkg/engine/grid"
	"derelict/pkg/game/layout"
)

// mstEdge is a candidate connection between two rooms during Prim's
// construction, weighted by center-to-center Euclidean distance.
type mstEdge struct {
	from int
	to   int
	dist float64
}

// buildCorridors connects every room with a minimum spanning tree built
// by Prim's algorithm starting from the entry room, then adds a small
// seed-determined number of redundant loop edges for variety. Equidistant
// candidates break ties toward the lower room index so the tree is
// deterministic for a fixed seed.
func (b *build) buildCorridors() {
	n := len(b.rooms)
	if n < 2 {
		return
	}

	centers := make([]grid.Point, n)
	for i, room := range b.rooms {
		centers[i] = room.Bounds.Center()
	}

	connected := make([]bool, n)
	direct := make(map[[2]int]bool)
	frontier := heap.New(func(a, c mstEdge) bool {
		if a.dist != c.dist {
			return a.dist < c.dist
		}
		if a.to != c.to {
			return a.to < c.to
		}
		return a.from < c.from
	})
	push := func(from int) {
		for to := 0; to < n; to++ {
			if !connected[to] {
				frontier.Push(mstEdge{from: from, to: to, dist: euclidean(centers[from], centers[to])})
			}
		}
	}

	connected[0] = true
	push(0)
	for joined := 1; joined < n; {
		e, ok := frontier.Pop()
		if !ok {
			break
		}
		if connected[e.to] {
			continue
		}
		connected[e.to] = true
		joined++
		b.carveCorridor(e.from, e.to)
		direct[edgeKey(e.from, e.to)] = true
		push(e.to)
	}

	b.addLoopEdges(direct)
}

// addLoopEdges carves up to two extra corridors between already-connected
// rooms, nearest pairs first. Purely a variety feature; reachability
// never depends on these.
func (b *build) addLoopEdges(direct map[[2]int]bool) {
	extra := b.rng.Intn(3)
	n := len(b.rooms)
	if extra == 0 || n < 3 {
		return
	}

	var candidates []mstEdge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if direct[edgeKey(i, j)] {
				continue
			}
			candidates = append(candidates, mstEdge{
				from: i,
				to:   j,
				dist: euclidean(b.rooms[i].Bounds.Center(), b.rooms[j].Bounds.Center()),
			})
		}
	}
	sort.Slice(candidates, func(x, y int) bool {
		a, c := candidates[x], candidates[y]
		if a.dist != c.dist {
			return a.dist < c.dist
		}
		if a.from != c.from {
			return a.from < c.from
		}
		return a.to < c.to
	})

	for i := 0; i < extra && i < len(candidates); i++ {
		b.carveCorridor(candidates[i].from, candidates[i].to)
		b.log.Debug("added loop corridor",
			zap.Int("from", candidates[i].from), zap.Int("to", candidates[i].to))
	}
}

// carveCorridor walks a straight or L-shaped path between the two rooms'
// centers, turning Empty cells into Corridor and marking a Door cell at
// every point where the carved path touches room floor. That includes
// cells the path merely runs alongside, not just head-on crossings: any
// walkable corridor/room adjacency is a passage, and rooms must be
// enterable only through their doors or their locks mean nothing.
func (b *build) carveCorridor(from, to int) {
	start := b.rooms[from].Bounds.Center()
	end := b.rooms[to].Bounds.Center()
	path := lPath(start, end, b.rng.Intn(2) == 0)

	for _, p := range path {
		if b.hull.StateAt(p) == grid.Empty {
			b.hull.Set(p, grid.Corridor, grid.NoOwner)
		}
	}

	segIdx := len(b.corridors)
	for _, p := range path {
		if b.roomInteriorAt(p) >= 0 {
			continue
		}
		for _, nb := range p.Neighbors() {
			if room := b.roomInteriorAt(nb); room >= 0 {
				b.markDoor(p, room, segIdx)
			}
		}
	}

	b.corridors = append(b.corridors, layout.CorridorSegment{From: from, To: to, Path: path})
}

// roomInteriorAt returns the owning room index when p is room floor,
// otherwise -1. Door cells do not count as interior.
func (b *build) roomInteriorAt(p grid.Point) int {
	if b.hull.StateAt(p) != grid.Room {
		return -1
	}
	return b.hull.OwnerAt(p)
}

// markDoor turns the corridor cell at p into a Door joining the given
// room, deduplicating repeat crossings of the same boundary cell. One
// cell can border two rooms; it then carries one DoorPlacement per room
// and the grid owner stays the first room marked.
func (b *build) markDoor(p grid.Point, room, segIdx int) {
	for _, d := range b.doors {
		if d.Pos == p && d.RoomIndex == room {
			return
		}
	}
	if b.hull.StateAt(p) != grid.Door {
		b.hull.Set(p, grid.Door, room)
	}
	b.doors = append(b.doors, layout.DoorPlacement{
		Pos:           p,
		RoomIndex:     room,
		CorridorIndex: segIdx,
		LockTier:      0,
		KeyContainer:  layout.NoKey,
	})
}

// lockedRoomTarget is how many rooms the tier tries to lock. Low tiers
// lock at most one; tier 1 never locks.
func lockedRoomTarget(tier int) int {
	switch {
	case tier >= 5:
		return 3
	case tier >= 4:
		return 2
	case tier >= 2:
		return 1
	default:
		return 0
	}
}

// selectLockedRooms marks which rooms the tier rules lock. The locks are
// provisional until finalizeLocks proves a key can be hosted outside.
// The entry room is never locked.
func (b *build) selectLockedRooms() {
	target := lockedRoomTarget(b.tier)
	if target == 0 {
		return
	}

	hasDoor := make([]bool, len(b.rooms))
	for _, d := range b.doors {
		hasDoor[d.RoomIndex] = true
	}
	var candidates []int
	for i := 1; i < len(b.rooms); i++ {
		if hasDoor[i] {
			candidates = append(candidates, i)
		}
	}
	b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > target {
		candidates = candidates[:target]
	}
	sort.Ints(candidates)
	b.lockedRooms = candidates
}

// chooseExit places the exit at the room cell with the longest walk from
// the entry, found by BFS. Ties keep the first cell found so the choice
// is deterministic.
func (b *build) chooseExit() {
	type queued struct {
		p grid.Point
		d int
	}
	visited := make(map[grid.Point]bool)
	queue := []queued{{b.entry, 0}}
	visited[b.entry] = true

	best := b.entry
	bestDist := -1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if b.hull.StateAt(cur.p) == grid.Room && cur.d > bestDist {
			best = cur.p
			bestDist = cur.d
		}
		for _, nb := range cur.p.Neighbors() {
			if b.hull.Walkable(nb) && !visited[nb] {
				visited[nb] = true
				queue = append(queue, queued{nb, cur.d + 1})
			}
		}
	}
	b.exit = best
}

// lPath returns the inclusive cell path of a straight or L-shaped walk
// from a to c, one axis at a time.
func lPath(a, c grid.Point, horizontalFirst bool) []grid.Point {
	var path []grid.Point
	push := func(p grid.Point) {
		if len(path) == 0 || path[len(path)-1] != p {
			path = append(path, p)
		}
	}
	walkX := func(y int) {
		step := axisStep(a.X, c.X)
		for x := a.X; ; x += step {
			push(grid.Point{X: x, Y: y})
			if x == c.X {
				break
			}
		}
	}
	walkY := func(x int) {
		step := axisStep(a.Y, c.Y)
		for y := a.Y; ; y += step {
			push(grid.Point{X: x, Y: y})
			if y == c.Y {
				break
			}
		}
	}
	if horizontalFirst {
		walkX(a.Y)
		walkY(c.X)
	} else {
		walkY(a.X)
		walkX(c.Y)
	}
	return path
}

func axisStep(from, to int) int {
	if to >= from {
		return 1
	}
	return -1
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func euclidean(a, b grid.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
