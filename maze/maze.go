/*
Package maze provides tools for carving perfect mazes over rectangular grids.

It defines the `Grid` structure, composed of `Cell` values that record whether the cell has been
carved and which of its walls are open. Walls are always opened in pairs, so the open-wall view
of a grid is an undirected graph.

Mazes are carved with a randomized backtracker (see Generator), either in one call or step by
step through a Walk that yields carve and backtrack events.
*/
package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("position is out of the maze")
	ErrAsymmetricWall    = errors.New("wall is open on one side only")
)

// Edge is an open wall between two adjacent cells.
type Edge struct {
	From      Position  // cell the wall is reported from
	To        Position  // neighbor on the other side
	Direction Direction // direction from From to To
}

// Grid is a fixed-size rectangle of cells addressed by (x, z).
type Grid struct {
	width int    // number of columns, along x
	depth int    // number of rows, along z
	cells []Cell // row-major, index z*width+x
}

// NewGrid allocates a width by depth grid of uncarved, fully walled cells.
func NewGrid(width, depth int) (*Grid, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, depth)
	}

	return &Grid{
		width: width,
		depth: depth,
		cells: make([]Cell, width*depth),
	}, nil
}

// Restore rebuilds a grid from previously captured cell state in row-major order.
// The result is checked for bounds and wall mutuality.
func Restore(width, depth int, cells []Cell) (*Grid, error) {
	if width <= 0 || depth <= 0 || len(cells)/width != depth || len(cells)%width != 0 {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidDimensions, len(cells), width, depth)
	}
	g, err := NewGrid(width, depth)
	if err != nil {
		return nil, err
	}

	for i, c := range cells {
		g.cells[i] = NewCell(c.carved, c.open)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Depth returns the number of rows.
func (g *Grid) Depth() int {
	return g.depth
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// InBound reports whether (x, z) lies inside the grid.
func (g *Grid) InBound(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.depth
}

func (g *Grid) index(x, z int) int {
	return z*g.width + x
}

func (g *Grid) checkBounds(x, z int) error {
	if !g.InBound(x, z) {
		return fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, z, g.width, g.depth)
	}
	return nil
}

// CellAt returns a copy of the cell at (x, z).
func (g *Grid) CellAt(x, z int) (Cell, error) {
	if err := g.checkBounds(x, z); err != nil {
		return Cell{}, err
	}
	return g.cells[g.index(x, z)], nil
}

// MarkCarved flags the cell at (x, z) as carved. Marking twice is a no-op.
func (g *Grid) MarkCarved(x, z int) error {
	if err := g.checkBounds(x, z); err != nil {
		return err
	}
	g.cells[g.index(x, z)].carved = true
	return nil
}

// OpenWall removes the wall between (x, z) and its neighbor in direction d, on both sides.
// Nothing is changed if either cell is outside the grid.
func (g *Grid) OpenWall(x, z int, d Direction) error {
	if err := g.checkBounds(x, z); err != nil {
		return err
	}
	n := Position{X: x, Z: z}.Add(d)
	if err := g.checkBounds(n.X, n.Z); err != nil {
		return fmt.Errorf("opening %s wall of (%d,%d): %w", d, x, z, err)
	}

	from := &g.cells[g.index(x, z)]
	to := &g.cells[g.index(n.X, n.Z)]
	from.open = from.open.With(d)
	to.open = to.open.With(d.Opposite())
	return nil
}

// IsOpen reports whether the wall of (x, z) in direction d is open.
// Out-of-bounds positions have no open walls.
func (g *Grid) IsOpen(x, z int, d Direction) bool {
	if !g.InBound(x, z) {
		return false
	}
	return g.cells[g.index(x, z)].open.Has(d)
}

// CarvedCount returns the number of carved cells.
func (g *Grid) CarvedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.carved {
			n++
		}
	}
	return n
}

// Cells returns a row-major copy of every cell.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Edges lists every open wall once, reported from the west or south side.
func (g *Grid) Edges() []Edge {
	var edges []Edge
	for z := 0; z < g.depth; z++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[g.index(x, z)]
			for _, d := range [2]Direction{East, North} {
				if c.open.Has(d) {
					from := Position{X: x, Z: z}
					edges = append(edges, Edge{From: from, To: from.Add(d), Direction: d})
				}
			}
		}
	}
	return edges
}

// Validate checks that every open wall leads into the grid and is open on the far side too.
func (g *Grid) Validate() error {
	for z := 0; z < g.depth; z++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[g.index(x, z)]
			for _, d := range c.open.Directions() {
				n := Position{X: x, Z: z}.Add(d)
				if !g.InBound(n.X, n.Z) {
					return fmt.Errorf("%w: %s wall of (%d,%d) opens outside", ErrOutOfBounds, d, x, z)
				}
				if !g.cells[g.index(n.X, n.Z)].open.Has(d.Opposite()) {
					return fmt.Errorf("%w: %s of (%d,%d)", ErrAsymmetricWall, d, x, z)
				}
			}
		}
	}
	return nil
}

// reset clears carving and walls so the grid can be carved again from scratch.
func (g *Grid) reset() {
	clear(g.cells)
}
