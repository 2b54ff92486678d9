// Package topology inspects the open-wall graph of a carved grid.
package topology

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-carver/maze"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

var (
	ErrUncarved     = errors.New("maze has uncarved cells")
	ErrDisconnected = errors.New("maze is not connected")
	ErrCycle        = errors.New("maze contains a cycle")
)

// Stats summarises the shape of a perfect maze.
type Stats struct {
	Cells     int           `json:"cells" bson:"cells"`
	Edges     int           `json:"edges" bson:"edges"`
	DeadEnds  int           `json:"deadEnds" bson:"deadEnds"`   // cells with one opening
	Corridors int           `json:"corridors" bson:"corridors"` // cells with two openings
	Junctions int           `json:"junctions" bson:"junctions"` // cells with three or more openings
	Longest   int           `json:"longest" bson:"longest"`     // steps from the start to the farthest cell
	Farthest  maze.Position `json:"farthest" bson:"farthest"`
}

// NodeID maps a position to its node id in Graph.
func NodeID(g *maze.Grid, p maze.Position) int64 {
	return int64(p.Z*g.Width() + p.X)
}

func position(g *maze.Grid, id int64) maze.Position {
	return maze.Position{X: int(id) % g.Width(), Z: int(id) / g.Width()}
}

// Graph builds an undirected graph with one node per cell and one edge per open wall.
func Graph(g *maze.Grid) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for id := int64(0); id < int64(g.Size()); id++ {
		ug.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(ug.NewEdge(simple.Node(NodeID(g, e.From)), simple.Node(NodeID(g, e.To))))
	}
	return ug
}

// Verify returns nil if g is a perfect maze: fully carved, mutually walled, connected and acyclic.
func Verify(g *maze.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if carved := g.CarvedCount(); carved != g.Size() {
		return fmt.Errorf("%w: %d of %d", ErrUncarved, g.Size()-carved, g.Size())
	}

	ug := Graph(g)
	if parts := topo.ConnectedComponents(ug); len(parts) != 1 {
		return fmt.Errorf("%w: %d components", ErrDisconnected, len(parts))
	}

	// A connected graph on n nodes is a tree iff it has n-1 edges.
	if edges := len(g.Edges()); edges != g.Size()-1 {
		return fmt.Errorf("%w: %d edges for %d cells", ErrCycle, edges, g.Size())
	}
	return nil
}

// Analyze verifies g and measures it from the given start cell.
func Analyze(g *maze.Grid, from maze.Position) (Stats, error) {
	if !g.InBound(from.X, from.Z) {
		return Stats{}, fmt.Errorf("start %s: %w", from, maze.ErrOutOfBounds)
	}
	if err := Verify(g); err != nil {
		return Stats{}, err
	}

	ug := Graph(g)
	stats := Stats{Cells: g.Size(), Edges: len(g.Edges()), Farthest: from}

	nodes := ug.Nodes()
	for nodes.Next() {
		switch degree := ug.From(nodes.Node().ID()).Len(); {
		case degree == 1:
			stats.DeadEnds++
		case degree == 2:
			stats.Corridors++
		case degree >= 3:
			stats.Junctions++
		}
	}

	var bf traverse.BreadthFirst
	bf.Walk(ug, simple.Node(NodeID(g, from)), func(n graph.Node, depth int) bool {
		if depth > stats.Longest {
			stats.Longest = depth
			stats.Farthest = position(g, n.ID())
		}
		return false
	})

	return stats, nil
}
