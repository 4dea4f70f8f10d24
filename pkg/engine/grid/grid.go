package grid

// CellState classifies a single cell of the hull grid.
type CellState uint8

const (
	// Empty is unclaimed interior space.
	Empty CellState = iota
	// Wall is impassable hull structure. Out-of-bounds queries read as Wall.
	Wall
	// Room is floor belonging to a placed room.
	Room
	// Corridor is carved connective floor between rooms.
	Corridor
	// Door is a room/corridor boundary crossing.
	Door
	// Reserved is held back from placement (entry pads, machinery).
	Reserved
)

// String returns a short human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Room:
		return "room"
	case Corridor:
		return "corridor"
	case Door:
		return "door"
	case Reserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// NoOwner marks a cell that belongs to no room.
const NoOwner = -1

// Cell is one cell of the grid: its state plus the owning room index
// when the state is Room or Door.
type Cell struct {
	State CellState
	Owner int
}

// Grid is a uniform-cell representation of a vessel hull interior.
// It is mutated only during generation and handed to consumers read-only
// once generation completes.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New creates a grid of the given dimensions with every cell Empty.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("grid dimensions must be positive")
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for i := range g.cells {
		g.cells[i].Owner = NoOwner
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether the point lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// StateAt returns the state of the cell at p. Out-of-bounds positions
// read as Wall so callers never need a separate bounds check.
func (g *Grid) StateAt(p Point) CellState {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[p.Y*g.width+p.X].State
}

// OwnerAt returns the owning room index of the cell at p, or NoOwner.
func (g *Grid) OwnerAt(p Point) int {
	if !g.InBounds(p) {
		return NoOwner
	}
	return g.cells[p.Y*g.width+p.X].Owner
}

// Set assigns state and owner to the cell at p. Returns false for
// out-of-bounds positions instead of panicking.
func (g *Grid) Set(p Point, state CellState, owner int) bool {
	if !g.InBounds(p) {
		return false
	}
	g.cells[p.Y*g.width+p.X] = Cell{State: state, Owner: owner}
	return true
}

// Walkable reports whether the cell at p can be traversed by a boarder:
// Room, Corridor, and Door cells only. Locked doors still count as
// walkable here; unlocking is a gameplay concern, not a layout one.
func (g *Grid) Walkable(p Point) bool {
	switch g.StateAt(p) {
	case Room, Corridor, Door:
		return true
	default:
		return false
	}
}

// RegionAvailable reports whether every cell of r grown by gap is Empty
// and within bounds. Used to keep placed rooms separated by at least the
// minimum gap.
func (g *Grid) RegionAvailable(r Rect, gap int) bool {
	grown := r.Grow(gap)
	if grown.X < 0 || grown.Y < 0 || grown.Right() > g.width || grown.Bottom() > g.height {
		return false
	}
	for y := grown.Y; y < grown.Bottom(); y++ {
		for x := grown.X; x < grown.Right(); x++ {
			if g.cells[y*g.width+x].State != Empty {
				return false
			}
		}
	}
	return true
}

// FillRect sets every cell of r to the given state and owner. Cells
// outside the grid are skipped.
func (g *Grid) FillRect(r Rect, state CellState, owner int) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.Set(Point{x, y}, state, owner)
		}
	}
}

// ForEach iterates over all cells in row-major order.
func (g *Grid) ForEach(fn func(p Point, c Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Point{x, y}, g.cells[y*g.width+x])
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}
