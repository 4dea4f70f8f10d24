// Package layout defines the generated vessel interior: rooms, corridors,
// doors, and container placements, aggregated into an immutable ShipLayout
// that rendering and gameplay collaborators consume read-only.
package layout

import (
	"derelict/pkg/engine/grid"
	"derelict/pkg/game/catalog"
)

// NoKey marks a door that needs no key container.
const NoKey = -1

// RoomInstance is a placed room: a rectangle tagged with its room type.
// Rooms are never resized after creation and their indices are stable for
// the lifetime of the layout.
type RoomInstance struct {
	Index  int
	TypeID string
	Bounds grid.Rect
}

// CorridorSegment connects two rooms and records the carved cell path.
type CorridorSegment struct {
	From int
	To   int
	Path []grid.Point
}

// DoorPlacement is a carved Door cell joining a room to a corridor.
// LockTier 0 means unlocked. For locked doors, KeyContainer is the index
// of the container guaranteed to hold a matching key; it always lies in
// an unlocked room reachable without passing this door.
type DoorPlacement struct {
	Pos           grid.Point
	RoomIndex     int
	CorridorIndex int
	LockTier      int
	KeyContainer  int
}

// ContainerPlacement is a lootable container inside a room, with its
// rarity-weight distribution fully resolved. The first roll of a
// special-room container uses FloorWeights (weights below the guaranteed
// floor zeroed); all other rolls use Weights. For ordinary containers the
// two vectors are identical.
type ContainerPlacement struct {
	Pos          grid.Point
	TypeID       string
	RoomIndex    int
	Slots        int
	Weights      catalog.RarityVector
	FloorWeights catalog.RarityVector
	// Floor is the guaranteed minimum rarity of the first roll; Common
	// means no guarantee.
	Floor catalog.Rarity
}

// ShipLayout is the aggregate the generator returns. It is immutable once
// built and may be read by multiple consumers concurrently.
type ShipLayout struct {
	ClassID   string
	FactionID string
	Tier      int
	Seed      int64

	Width  int
	Height int

	Entry grid.Point
	Exit  grid.Point

	Rooms      []RoomInstance
	Corridors  []CorridorSegment
	Doors      []DoorPlacement
	Containers []ContainerPlacement

	hull *grid.Grid
}

// New assembles a layout, taking ownership of the finished hull grid.
// Callers must not mutate any argument afterwards.
func New(classID, factionID string, tier int, seed int64, hull *grid.Grid,
	rooms []RoomInstance, corridors []CorridorSegment, doors []DoorPlacement,
	containers []ContainerPlacement, entry, exit grid.Point) *ShipLayout {
	return &ShipLayout{
		ClassID:    classID,
		FactionID:  factionID,
		Tier:       tier,
		Seed:       seed,
		Width:      hull.Width(),
		Height:     hull.Height(),
		Entry:      entry,
		Exit:       exit,
		Rooms:      rooms,
		Corridors:  corridors,
		Doors:      doors,
		Containers: containers,
		hull:       hull,
	}
}

// StateAt returns the cell state at p. Out-of-bounds reads as Wall, same
// as during generation.
func (l *ShipLayout) StateAt(p grid.Point) grid.CellState {
	return l.hull.StateAt(p)
}

// RoomAt returns the owning room index of the cell at p, or grid.NoOwner.
func (l *ShipLayout) RoomAt(p grid.Point) int {
	return l.hull.OwnerAt(p)
}

// Room returns the room with the given index.
func (l *ShipLayout) Room(i int) RoomInstance {
	return l.Rooms[i]
}

// LockedDoors returns all doors with a lock tier above 0.
func (l *ShipLayout) LockedDoors() []DoorPlacement {
	var out []DoorPlacement
	for _, d := range l.Doors {
		if d.LockTier > 0 {
			out = append(out, d)
		}
	}
	return out
}

// ContainersInRoom returns the containers placed in the given room, in
// placement order.
func (l *ShipLayout) ContainersInRoom(room int) []ContainerPlacement {
	var out []ContainerPlacement
	for _, c := range l.Containers {
		if c.RoomIndex == room {
			out = append(out, c)
		}
	}
	return out
}
