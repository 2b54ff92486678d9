package maze

// Walls is a set of open walls, one bit per Direction.
type Walls uint8

// wallsMask covers the four direction bits.
const wallsMask Walls = 1<<East | 1<<West | 1<<North | 1<<South

// WallsOf builds a set from the given directions.
func WallsOf(dirs ...Direction) Walls {
	var w Walls
	for _, d := range dirs {
		w = w.With(d)
	}
	return w
}

// Has reports whether the wall in direction d is open.
func (w Walls) Has(d Direction) bool {
	return w&(1<<d) != 0
}

// With returns the set with d added.
func (w Walls) With(d Direction) Walls {
	return w | 1<<d
}

// Directions lists the open directions in direction table order.
func (w Walls) Directions() []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		if w.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Count returns how many walls are open.
func (w Walls) Count() int {
	n := 0
	for _, d := range Directions {
		if w.Has(d) {
			n++
		}
	}
	return n
}

// Cell represents a single cell in a maze grid.
// It records whether the carver has entered it and which of its walls are open.
type Cell struct {
	carved bool  // carved is set once the carver enters the cell.
	open   Walls // open holds the removed walls, i.e. the connected neighbors.
}

// NewCell builds a cell value, mostly for restoring decoded layouts.
func NewCell(carved bool, open Walls) Cell {
	return Cell{carved: carved, open: open & wallsMask}
}

// IsCarved returns true once the carver has entered the cell.
func (c Cell) IsCarved() bool {
	return c.carved
}

// IsOpen returns true if the wall in direction d has been removed.
func (c Cell) IsOpen(d Direction) bool {
	return c.open.Has(d)
}

// HasWall returns true if the wall in direction d is still standing.
func (c Cell) HasWall(d Direction) bool {
	return !c.open.Has(d)
}

// OpenWalls returns the set of removed walls.
func (c Cell) OpenWalls() Walls {
	return c.open
}
