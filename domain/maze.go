package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-carver/topology"
	"github.com/google/uuid"
)

var ErrMazeNotFound = errors.New("maze not found")

// MazeRecord is a carved maze as stored. Layout holds the pb-encoded grid; the seed, start
// and policy are enough to replay the carve step by step.
type MazeRecord struct {
	ID        uuid.UUID      `bson:"_id"`
	OwnerID   uuid.UUID      `bson:"ownerId"`
	Width     int            `bson:"width"`
	Depth     int            `bson:"depth"`
	StartX    int            `bson:"startX"`
	StartZ    int            `bson:"startZ"`
	Seed      int64          `bson:"seed"`
	Policy    string         `bson:"policy"`
	Layout    []byte         `bson:"layout"`
	Stats     topology.Stats `bson:"stats"`
	CreatedAt time.Time      `bson:"createdAt"`
}

// MazeRequest describes a maze to carve. Nil fields take the configured defaults;
// a nil Seed picks a fresh one. An empty Policy means newest-first.
type MazeRequest struct {
	Width  *int
	Depth  *int
	StartX *int
	StartZ *int
	Seed   *int64
	Policy string
}
