// Package pb encodes carved grids in protobuf wire format.
//
// The message layout is:
//
//	message Layout {
//	  uint32 width = 1;
//	  uint32 depth = 2;
//	  bytes  cells = 3; // one byte per cell, row-major
//	}
//
// Each cell byte keeps the open walls in bits 0..3 (east, west, north, south) and the carved
// flag in bit 4.
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-carver/maze"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	widthField protowire.Number = 1
	depthField protowire.Number = 2
	cellsField protowire.Number = 3

	carvedBit = 1 << 4
	wallsBits = 0x0f
)

var ErrMalformedLayout = errors.New("malformed layout")

// Protobuf encodes and decodes grid layouts.
type Protobuf struct{}

// Marshal encodes the grid.
func (p *Protobuf) Marshal(g *maze.Grid) ([]byte, error) {
	cells := g.Cells()
	packed := make([]byte, len(cells))
	for i, c := range cells {
		b := byte(c.OpenWalls()) & wallsBits
		if c.IsCarved() {
			b |= carvedBit
		}
		packed[i] = b
	}

	var b []byte
	b = protowire.AppendTag(b, widthField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Width()))
	b = protowire.AppendTag(b, depthField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Depth()))
	b = protowire.AppendTag(b, cellsField, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b, nil
}

// Unmarshal decodes a layout and validates it through maze.Restore.
// Unknown fields are skipped.
func (p *Protobuf) Unmarshal(b []byte) (*maze.Grid, error) {
	var (
		width, depth uint64
		packed       []byte
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLayout, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == widthField && typ == protowire.VarintType:
			width, n = protowire.ConsumeVarint(b)
		case num == depthField && typ == protowire.VarintType:
			depth, n = protowire.ConsumeVarint(b)
		case num == cellsField && typ == protowire.BytesType:
			packed, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedLayout, num, protowire.ParseError(n))
		}
		b = b[n:]
	}

	const maxSide = 1 << 16
	if width > maxSide || depth > maxSide {
		return nil, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, width, depth)
	}
	if uint64(len(packed)) != width*depth {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", maze.ErrInvalidDimensions, len(packed), width, depth)
	}

	cells := make([]maze.Cell, len(packed))
	for i, c := range packed {
		cells[i] = maze.NewCell(c&carvedBit != 0, maze.Walls(c&wallsBits))
	}
	return maze.Restore(int(width), int(depth), cells)
}
