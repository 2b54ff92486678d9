package maze

import "fmt"

// Direction is one of the four cardinal moves on the grid.
type Direction uint8

// The order of these constants is the order of the direction table and must not change:
// the carver rotates through it starting from a random index.
const (
	East  Direction = iota // +x
	West                   // -x
	North                  // +z
	South                  // -z
)

var (
	// Directions is the direction table used by the carver.
	Directions = [4]Direction{East, West, North, South}

	offsets = [4]Position{
		East:  {X: 1, Z: 0},
		West:  {X: -1, Z: 0},
		North: {X: 0, Z: 1},
		South: {X: 0, Z: -1},
	}

	opposites = [4]Direction{
		East:  West,
		West:  East,
		North: South,
		South: North,
	}

	names = [4]string{
		East:  "east",
		West:  "west",
		North: "north",
		South: "south",
	}
)

// Offset returns the unit step of the direction.
func (d Direction) Offset() Position {
	return offsets[d&3]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return opposites[d&3]
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	if int(d) >= len(names) {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return names[d]
}

// Position identifies a cell by its grid coordinates.
type Position struct {
	X int `json:"x" bson:"x"` // column, along +x
	Z int `json:"z" bson:"z"` // row, along +z
}

// Add returns the neighbor of p in direction d. The result may be out of bounds.
func (p Position) Add(d Direction) Position {
	o := d.Offset()
	return Position{X: p.X + o.X, Z: p.Z + o.Z}
}

// String formats the position as "(x,z)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}
