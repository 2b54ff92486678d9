package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	t.Run("allocates uncarved walled cells", func(t *testing.T) {
		g, err := NewGrid(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 3, g.Depth())
		assert.Equal(t, 12, g.Size())
		assert.Zero(t, g.CarvedCount())
		assert.Empty(t, g.Edges())

		for _, c := range g.Cells() {
			assert.False(t, c.IsCarved())
			assert.Zero(t, c.OpenWalls())
		}
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
			_, err := NewGrid(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
		}
	})
}

func TestCellAt(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	_, err = g.CellAt(5, 5)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = g.CellAt(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	c, err := g.CellAt(2, 2)
	require.NoError(t, err)
	assert.False(t, c.IsCarved())
}

func TestMarkCarved(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)

	require.NoError(t, g.MarkCarved(1, 0))
	require.NoError(t, g.MarkCarved(1, 0))
	assert.Equal(t, 1, g.CarvedCount())

	c, _ := g.CellAt(1, 0)
	assert.True(t, c.IsCarved())

	assert.ErrorIs(t, g.MarkCarved(2, 0), ErrOutOfBounds)
}

func TestOpenWall(t *testing.T) {
	t.Run("opens both sides", func(t *testing.T) {
		g, err := NewGrid(3, 3)
		require.NoError(t, err)

		require.NoError(t, g.OpenWall(1, 1, North))
		assert.True(t, g.IsOpen(1, 1, North))
		assert.True(t, g.IsOpen(1, 2, South))
		assert.False(t, g.IsOpen(1, 1, South))

		require.NoError(t, g.OpenWall(1, 1, West))
		assert.True(t, g.IsOpen(0, 1, East))

		c, _ := g.CellAt(1, 1)
		assert.Equal(t, []Direction{West, North}, c.OpenWalls().Directions())
		assert.True(t, c.HasWall(East))
		assert.NoError(t, g.Validate())
	})

	t.Run("neighbor outside leaves grid untouched", func(t *testing.T) {
		g, err := NewGrid(2, 2)
		require.NoError(t, err)

		assert.ErrorIs(t, g.OpenWall(1, 0, East), ErrOutOfBounds)
		assert.ErrorIs(t, g.OpenWall(0, 0, South), ErrOutOfBounds)
		assert.ErrorIs(t, g.OpenWall(3, 3, North), ErrOutOfBounds)
		assert.Empty(t, g.Edges())
	})
}

func TestEdges(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.OpenWall(1, 0, West))
	require.NoError(t, g.OpenWall(1, 1, South))

	assert.Equal(t, []Edge{
		{From: Position{0, 0}, To: Position{1, 0}, Direction: East},
		{From: Position{1, 0}, To: Position{1, 1}, Direction: North},
	}, g.Edges())
}

func TestRestore(t *testing.T) {
	t.Run("round trips cell state", func(t *testing.T) {
		g, err := NewGrid(2, 1)
		require.NoError(t, err)
		require.NoError(t, g.MarkCarved(0, 0))
		require.NoError(t, g.MarkCarved(1, 0))
		require.NoError(t, g.OpenWall(0, 0, East))

		r, err := Restore(2, 1, g.Cells())
		require.NoError(t, err)
		assert.Equal(t, g.Cells(), r.Cells())
	})

	t.Run("rejects wrong cell count", func(t *testing.T) {
		_, err := Restore(2, 2, make([]Cell, 3))
		assert.ErrorIs(t, err, ErrInvalidDimensions)

		// Would need a terabyte-sized grid if the count were checked after allocating.
		_, err = Restore(1<<20, 1<<20, make([]Cell, 1))
		assert.ErrorIs(t, err, ErrInvalidDimensions)

		_, err = Restore(0, 3, nil)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("rejects one-sided walls", func(t *testing.T) {
		cells := []Cell{NewCell(true, WallsOf(East)), NewCell(true, 0)}
		_, err := Restore(2, 1, cells)
		assert.ErrorIs(t, err, ErrAsymmetricWall)
	})

	t.Run("rejects walls opening outside", func(t *testing.T) {
		cells := []Cell{NewCell(true, WallsOf(South))}
		_, err := Restore(1, 1, cells)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestDirections(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		o, back := d.Offset(), d.Opposite().Offset()
		assert.Equal(t, Position{}, Position{X: o.X + back.X, Z: o.Z + back.Z})
		assert.NotEmpty(t, d.String())
	}
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
