// Package grid provides generic 2D cell-grid primitives for tile-based
// layout generation. These are engine-level constructs usable by any
// grid-based generator.
package grid

// Point is a cell coordinate on the grid.
type Point struct {
	X int
	Y int
}

// Neighbors returns the four orthogonally adjacent points in a fixed
// north, east, south, west order. Callers rely on the order being stable
// so that traversals stay deterministic.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
	}
}

// Rect is an axis-aligned rectangle of grid cells. W and H are in cells;
// Right and Bottom are exclusive.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Grow returns the rectangle expanded by n cells on every side.
func (r Rect) Grow(n int) Rect {
	return Rect{r.X - n, r.Y - n, r.W + 2*n, r.H + 2*n}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether the two rectangles share any cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Area returns the number of cells the rectangle covers.
func (r Rect) Area() int {
	return r.W * r.H
}
