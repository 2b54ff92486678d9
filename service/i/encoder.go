package i

import "github.com/beka-birhanu/vinom-carver/maze"

// LayoutEncoder turns grids into bytes for caching and storage.
type LayoutEncoder interface {
	Marshal(*maze.Grid) ([]byte, error)
	Unmarshal([]byte) (*maze.Grid, error)
}
