package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/beka-birhanu/vinom-carver/maze"
	"github.com/google/uuid"
)

// MazeCarver carves, stores and replays mazes.
type MazeCarver interface {
	// Generate carves a maze for the owner and stores it.
	Generate(ctx context.Context, ownerID uuid.UUID, r dmn.MazeRequest) (*dmn.MazeRecord, *maze.Grid, error)

	// ByID loads a stored maze with its decoded grid.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Grid, error)

	// Recent lists the latest mazes, newest first.
	Recent(ctx context.Context, limit int) ([]*dmn.MazeRecord, error)

	// Trace replays the carve of a stored maze event by event.
	Trace(ctx context.Context, id uuid.UUID) ([]maze.Event, error)
}
