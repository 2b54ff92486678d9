package pb

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/beka-birhanu/vinom-carver/maze"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestProtobuf(t *testing.T) {
	enc := &Protobuf{}

	t.Run("carved layout survives encoding", func(t *testing.T) {
		g, err := maze.NewGrid(8, 5)
		require.NoError(t, err)
		require.NoError(t, maze.NewGenerator(rand.New(rand.NewSource(11))).Generate(g, maze.Position{X: 2, Z: 2}))

		b, err := enc.Marshal(g)
		require.NoError(t, err)

		decoded, err := enc.Unmarshal(b)
		require.NoError(t, err)
		assert.Equal(t, 8, decoded.Width())
		assert.Equal(t, 5, decoded.Depth())
		if diff := cmp.Diff(g.Edges(), decoded.Edges()); diff != "" {
			t.Fatalf("edges differ (-want +got):\n%s", diff)
		}
		assert.Equal(t, g.CarvedCount(), decoded.CarvedCount())
	})

	t.Run("unknown fields are skipped", func(t *testing.T) {
		g, err := maze.NewGrid(1, 1)
		require.NoError(t, err)
		b, err := enc.Marshal(g)
		require.NoError(t, err)

		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte("future"))

		decoded, err := enc.Unmarshal(b)
		require.NoError(t, err)
		assert.Equal(t, 1, decoded.Size())
	})

	t.Run("truncated input", func(t *testing.T) {
		g, err := maze.NewGrid(3, 3)
		require.NoError(t, err)
		b, err := enc.Marshal(g)
		require.NoError(t, err)

		_, err = enc.Unmarshal(b[:len(b)-2])
		assert.ErrorIs(t, err, ErrMalformedLayout)
	})

	t.Run("missing dimensions", func(t *testing.T) {
		_, err := enc.Unmarshal(nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("oversized header with a short payload", func(t *testing.T) {
		var b []byte
		b = protowire.AppendTag(b, widthField, protowire.VarintType)
		b = protowire.AppendVarint(b, 1<<14)
		b = protowire.AppendTag(b, depthField, protowire.VarintType)
		b = protowire.AppendVarint(b, 1<<14)
		b = protowire.AppendTag(b, cellsField, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte{0})

		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		_, err := enc.Unmarshal(b)
		runtime.ReadMemStats(&after)

		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
	})

	t.Run("one-sided wall", func(t *testing.T) {
		var b []byte
		b = protowire.AppendTag(b, widthField, protowire.VarintType)
		b = protowire.AppendVarint(b, 2)
		b = protowire.AppendTag(b, depthField, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
		b = protowire.AppendTag(b, cellsField, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte{carvedBit | 1<<maze.East, carvedBit})

		_, err := enc.Unmarshal(b)
		assert.ErrorIs(t, err, maze.ErrAsymmetricWall)
	})
}
