package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/beka-birhanu/vinom-carver/maze"
	"github.com/beka-birhanu/vinom-carver/topology"
)

// CarveRequest is the body of POST /mazes. Omitted fields take the server defaults.
type CarveRequest struct {
	Width  *int   `json:"width"`
	Depth  *int   `json:"depth"`
	StartX *int   `json:"startX"`
	StartZ *int   `json:"startZ"`
	Seed   *int64 `json:"seed"`
	Policy string `json:"policy"`
}

func (r CarveRequest) toDomain() dmn.MazeRequest {
	return dmn.MazeRequest{
		Width:  r.Width,
		Depth:  r.Depth,
		StartX: r.StartX,
		StartZ: r.StartZ,
		Seed:   r.Seed,
		Policy: r.Policy,
	}
}

// CellView is the read model of one cell.
type CellView struct {
	Carved    bool     `json:"carved"`
	OpenWalls []string `json:"openWalls"`
}

// MazeSummary describes a stored maze without its cells.
type MazeSummary struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"ownerId"`
	Width     int            `json:"width"`
	Depth     int            `json:"depth"`
	Start     maze.Position  `json:"start"`
	Seed      int64          `json:"seed"`
	Policy    string         `json:"policy"`
	Stats     topology.Stats `json:"stats"`
	CreatedAt time.Time      `json:"createdAt"`
}

// MazeResponse is a stored maze with its cells indexed as cells[z][x].
type MazeResponse struct {
	MazeSummary
	Cells [][]CellView `json:"cells"`
}

// EventView is one step of a replayed carve.
type EventView struct {
	Kind      string         `json:"kind"`
	From      maze.Position  `json:"from"`
	To        *maze.Position `json:"to,omitempty"`
	Direction string         `json:"direction,omitempty"`
}

// TraceResponse lists the replayed carve of a maze.
type TraceResponse struct {
	ID     string      `json:"id"`
	Events []EventView `json:"events"`
}

func newSummary(r *dmn.MazeRecord) MazeSummary {
	return MazeSummary{
		ID:        r.ID.String(),
		OwnerID:   r.OwnerID.String(),
		Width:     r.Width,
		Depth:     r.Depth,
		Start:     maze.Position{X: r.StartX, Z: r.StartZ},
		Seed:      r.Seed,
		Policy:    r.Policy,
		Stats:     r.Stats,
		CreatedAt: r.CreatedAt,
	}
}

func newMazeResponse(r *dmn.MazeRecord, g *maze.Grid) (*MazeResponse, error) {
	rows := make([][]CellView, g.Depth())
	for z := range rows {
		rows[z] = make([]CellView, g.Width())
		for x := range rows[z] {
			cell, err := g.CellAt(x, z)
			if err != nil {
				return nil, err
			}

			dirs := cell.OpenWalls().Directions()
			open := make([]string, len(dirs))
			for k, d := range dirs {
				open[k] = d.String()
			}
			rows[z][x] = CellView{Carved: cell.IsCarved(), OpenWalls: open}
		}
	}
	return &MazeResponse{MazeSummary: newSummary(r), Cells: rows}, nil
}

func newEventView(e maze.Event) EventView {
	v := EventView{Kind: e.Kind.String(), From: e.From}
	if e.Kind == maze.EventCarve {
		to := e.To
		v.To = &to
		v.Direction = e.Direction.String()
	}
	return v
}
