package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"derelict/pkg/engine/grid"
	"derelict/pkg/game/catalog"
	"derelict/pkg/game/layout"
)

// reachableCells floods from start across Room/Corridor/Door cells,
// treating blocked positions as impassable.
func reachableCells(l *layout.ShipLayout, start grid.Point, blocked map[grid.Point]bool) map[grid.Point]bool {
	walkable := func(p grid.Point) bool {
		switch l.StateAt(p) {
		case grid.Room, grid.Corridor, grid.Door:
			return true
		default:
			return false
		}
	}

	reached := map[grid.Point]bool{}
	if blocked[start] || !walkable(start) {
		return reached
	}
	reached[start] = true
	queue := []grid.Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range cur.Neighbors() {
			if walkable(nb) && !reached[nb] && !blocked[nb] {
				reached[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return reached
}

func roomIsReached(l *layout.ShipLayout, room layout.RoomInstance, reached map[grid.Point]bool) bool {
	for y := room.Bounds.Y; y < room.Bounds.Bottom(); y++ {
		for x := room.Bounds.X; x < room.Bounds.Right(); x++ {
			if reached[grid.Point{X: x, Y: y}] {
				return true
			}
		}
	}
	return false
}

func TestGenerate_Deterministic(t *testing.T) {
	cat := catalog.Default()
	p := Params{Tier: 3, FactionID: "SYN", ClassID: "patrol_corvette", Seed: 1234, DistanceFactor: 0.5}

	a, err := Generate(cat, p, zap.NewNop())
	require.NoError(t, err)
	b, err := Generate(cat, p, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical params must produce identical layouts")
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cat := catalog.Default()
	base := Params{Tier: 3, FactionID: "SYN", ClassID: "patrol_corvette", DistanceFactor: 0.5}

	p1, p2 := base, base
	p1.Seed, p2.Seed = 1, 2
	a, err := Generate(cat, p1, nil)
	require.NoError(t, err)
	b, err := Generate(cat, p2, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerate_CargoShuttleTierOne(t *testing.T) {
	cat := catalog.Default()
	l, err := Generate(cat, Params{Tier: 1, FactionID: "CCG", ClassID: "cargo_shuttle", Seed: 42}, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(l.Rooms), 2)
	assert.LessOrEqual(t, len(l.Rooms), 4)
	assert.Equal(t, "bridge", l.Rooms[0].TypeID)
	assert.Equal(t, "cargo_hold", l.Rooms[1].TypeID)

	assert.Empty(t, l.LockedDoors(), "tier 1 never locks rooms")
	for _, c := range l.Containers {
		assert.Zero(t, c.Weights[catalog.Epic], "epic gated at tier 1")
		assert.Zero(t, c.Weights[catalog.Legendary], "legendary gated at tier 1")
	}
}

func TestGenerate_RoomsKeepMinimumGap(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(0); seed < 10; seed++ {
		l, err := Generate(cat, Params{Tier: 3, FactionID: "FER", ClassID: "freighter", Seed: seed}, nil)
		require.NoError(t, err, "seed %d", seed)

		for i := range l.Rooms {
			for j := i + 1; j < len(l.Rooms); j++ {
				assert.False(t, l.Rooms[i].Bounds.Grow(1).Intersects(l.Rooms[j].Bounds),
					"seed %d: rooms %d and %d closer than the minimum gap", seed, i, j)
			}
		}
	}
}

func TestGenerate_EverythingReachableFromEntry(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(0); seed < 10; seed++ {
		l, err := Generate(cat, Params{Tier: 4, FactionID: "SYN", ClassID: "patrol_corvette", Seed: seed}, nil)
		require.NoError(t, err, "seed %d", seed)

		require.Equal(t, grid.Room, l.StateAt(l.Entry))
		require.Equal(t, grid.Room, l.StateAt(l.Exit))
		require.True(t, l.Rooms[0].Bounds.Contains(l.Entry))

		reached := reachableCells(l, l.Entry, nil)
		assert.True(t, reached[l.Exit], "seed %d: exit unreachable", seed)
		for _, room := range l.Rooms {
			assert.True(t, roomIsReached(l, room, reached),
				"seed %d: room %d (%s) unreachable", seed, room.Index, room.TypeID)
		}
		for ci, c := range l.Containers {
			adjacent := false
			for _, nb := range c.Pos.Neighbors() {
				if reached[nb] {
					adjacent = true
					break
				}
			}
			assert.True(t, adjacent, "seed %d: container %d unreachable", seed, ci)
		}
	}
}

func TestGenerate_LockedDoorsHaveReachableKeys(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(1); seed <= 20; seed++ {
		l, err := Generate(cat, Params{Tier: 5, FactionID: "SYN", ClassID: "black_ops_vessel", Seed: seed}, nil)
		require.NoError(t, err, "seed %d", seed)

		lockedRooms := map[int]bool{}
		blocked := map[grid.Point]bool{}
		for _, d := range l.LockedDoors() {
			lockedRooms[d.RoomIndex] = true
			blocked[d.Pos] = true
		}

		reached := reachableCells(l, l.Entry, blocked)
		for _, d := range l.LockedDoors() {
			require.GreaterOrEqual(t, d.KeyContainer, 0, "seed %d: locked door without key", seed)
			require.Equal(t, l.Tier, d.LockTier)

			key := l.Containers[d.KeyContainer]
			assert.False(t, lockedRooms[key.RoomIndex],
				"seed %d: key for room %d placed behind a lock", seed, d.RoomIndex)

			adjacent := false
			for _, nb := range key.Pos.Neighbors() {
				if reached[nb] {
					adjacent = true
					break
				}
			}
			assert.True(t, adjacent,
				"seed %d: key container %d not reachable with locked doors sealed", seed, d.KeyContainer)
		}
	}
}

func TestGenerate_UnlockedDoorsCarryNoKey(t *testing.T) {
	cat := catalog.Default()
	l, err := Generate(cat, Params{Tier: 2, FactionID: "CCG", ClassID: "cargo_shuttle", Seed: 7}, nil)
	require.NoError(t, err)

	for _, d := range l.Doors {
		require.Equal(t, grid.Door, l.StateAt(d.Pos))
		if d.LockTier == 0 {
			assert.Equal(t, layout.NoKey, d.KeyContainer)
		}
	}
}

func TestGenerate_ContainersSitOnReservedRoomCells(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(0); seed < 5; seed++ {
		l, err := Generate(cat, Params{Tier: 4, FactionID: "FER", ClassID: "freighter", Seed: seed}, nil)
		require.NoError(t, err, "seed %d", seed)

		for _, c := range l.Containers {
			assert.Equal(t, grid.Reserved, l.StateAt(c.Pos))
			assert.Equal(t, c.RoomIndex, l.RoomAt(c.Pos))
			assert.True(t, l.Rooms[c.RoomIndex].Bounds.Contains(c.Pos))
			assert.NotEqual(t, l.Entry, c.Pos)
			assert.NotEqual(t, l.Exit, c.Pos)
			assert.Positive(t, c.Slots)
		}
	}
}

func TestGenerate_SpecialRoomGuaranteesRareFloor(t *testing.T) {
	cat := catalog.Default()

	flooredSeen := false
	for seed := int64(1); seed <= 20; seed++ {
		l, err := Generate(cat, Params{Tier: 5, FactionID: "SYN", ClassID: "black_ops_vessel", Seed: seed}, nil)
		require.NoError(t, err, "seed %d", seed)

		for _, c := range l.Containers {
			if c.Floor == catalog.Common {
				assert.Equal(t, c.Weights, c.FloorWeights)
				continue
			}
			flooredSeen = true
			assert.Equal(t, "vault", l.Rooms[c.RoomIndex].TypeID,
				"seed %d: floor guarantee outside the special room", seed)
			assert.Equal(t, catalog.Rare, c.Floor)
			for r := catalog.Rarity(0); r < c.Floor; r++ {
				assert.Zero(t, c.FloorWeights[r])
			}
			for r := c.Floor; int(r) < catalog.NumRarities; r++ {
				assert.Equal(t, c.Weights[r], c.FloorWeights[r])
			}
		}
	}
	assert.True(t, flooredSeen, "no special-room container placed in 20 seeds")
}

func TestGenerate_SealedLocksIsolateRoomInteriors(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(1); seed <= 50; seed++ {
		l, err := Generate(cat, Params{Tier: 5, FactionID: "SYN", ClassID: "black_ops_vessel", Seed: seed}, nil)
		require.NoError(t, err, "seed %d", seed)

		lockedRooms := map[int]bool{}
		blocked := map[grid.Point]bool{}
		for _, d := range l.LockedDoors() {
			lockedRooms[d.RoomIndex] = true
			blocked[d.Pos] = true
		}
		if len(lockedRooms) == 0 {
			continue
		}

		reached := reachableCells(l, l.Entry, blocked)
		for p := range reached {
			room := l.RoomAt(p)
			if l.StateAt(p) == grid.Room && lockedRooms[room] {
				t.Fatalf("seed %d: locked room %d interior cell (%d,%d) reachable with doors sealed",
					seed, room, p.X, p.Y)
			}
		}
	}
}

func TestGenerate_HighTierSeedsSucceed(t *testing.T) {
	cat := catalog.Default()
	for seed := int64(7); seed <= 106; seed++ {
		_, err := Generate(cat, Params{Tier: 5, FactionID: "SYN", ClassID: "black_ops_vessel", Seed: seed}, nil)
		assert.NoError(t, err, "seed %d", seed)
	}
}

func TestMarkDoor_SharedBoundaryCellKeepsBothPlacements(t *testing.T) {
	b := &build{hull: grid.New(5, 5)}
	pos := grid.Point{X: 2, Y: 2}
	b.hull.Set(pos, grid.Corridor, grid.NoOwner)

	b.markDoor(pos, 0, 0)
	b.markDoor(pos, 1, 0)
	b.markDoor(pos, 1, 0) // repeat crossing, deduplicated

	require.Len(t, b.doors, 2)
	assert.Equal(t, grid.Door, b.hull.StateAt(pos))
	// The grid owner stays the first room marked.
	assert.Equal(t, 0, b.hull.OwnerAt(pos))
	assert.Equal(t, 0, b.doors[0].RoomIndex)
	assert.Equal(t, 1, b.doors[1].RoomIndex)
}

func TestGenerate_RejectsInvalidParams(t *testing.T) {
	cat := catalog.Default()

	_, err := Generate(cat, Params{Tier: 0, FactionID: "CCG", Seed: 1}, nil)
	assert.Error(t, err)
	_, err = Generate(cat, Params{Tier: 6, FactionID: "CCG", Seed: 1}, nil)
	assert.Error(t, err)
	_, err = Generate(cat, Params{Tier: 2, FactionID: "CCG", Seed: 1, DistanceFactor: 1.5}, nil)
	assert.Error(t, err)
	_, err = Generate(cat, Params{Tier: 2, FactionID: "nobody", Seed: 1}, nil)
	assert.ErrorIs(t, err, catalog.ErrMissing)
	_, err = Generate(cat, Params{Tier: 2, FactionID: "CCG", ClassID: "ghost_ship", Seed: 1}, nil)
	assert.ErrorIs(t, err, catalog.ErrMissing)
}

func TestGenerate_AutoSelectsClassForTier(t *testing.T) {
	cat := catalog.Default()
	l, err := Generate(cat, Params{Tier: 5, FactionID: "SYN", Seed: 9}, nil)
	require.NoError(t, err)
	// Only one class spawns at tier 5.
	assert.Equal(t, "black_ops_vessel", l.ClassID)
}

func TestGenerateForDistance(t *testing.T) {
	cat := catalog.Default()

	l, err := GenerateForDistance(cat, 0.9, 3, zap.NewNop())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, l.Tier, 1)
	assert.LessOrEqual(t, l.Tier, 5)
	assert.NotEmpty(t, l.FactionID)

	_, err = GenerateForDistance(cat, 1.5, 3, nil)
	assert.Error(t, err)
}

func TestGenerateForDistance_Deterministic(t *testing.T) {
	cat := catalog.Default()
	a, err := GenerateForDistance(cat, 0.4, 77, nil)
	require.NoError(t, err)
	b, err := GenerateForDistance(cat, 0.4, 77, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLockedRoomTarget(t *testing.T) {
	assert.Equal(t, 0, lockedRoomTarget(1))
	assert.Equal(t, 1, lockedRoomTarget(2))
	assert.Equal(t, 1, lockedRoomTarget(3))
	assert.Equal(t, 2, lockedRoomTarget(4))
	assert.Equal(t, 3, lockedRoomTarget(5))
}

func TestLPath(t *testing.T) {
	path := lPath(grid.Point{X: 1, Y: 1}, grid.Point{X: 4, Y: 3}, true)
	require.NotEmpty(t, path)
	assert.Equal(t, grid.Point{X: 1, Y: 1}, path[0])
	assert.Equal(t, grid.Point{X: 4, Y: 3}, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		assert.Equal(t, 1, dx*dx+dy*dy, "step %d is not a single orthogonal move", i)
	}
}
