package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/beka-birhanu/vinom-carver/maze"
	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/beka-birhanu/vinom-carver/topology"
	"github.com/google/uuid"
)

const (
	recentMazesKey = "carver:recent"

	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

var (
	ErrInvalidRequest = errors.New("invalid maze request")
	ErrMazeTooLarge   = errors.New("maze dimension exceeds the limit")
	ErrTraceMismatch  = errors.New("replayed carve does not match the stored layout")
)

// MazeDefaults are used for request fields that are left out.
type MazeDefaults struct {
	Width  int
	Depth  int
	StartX int
	StartZ int
}

// Config holds the collaborators of a MazeService.
type Config struct {
	Repo         i.MazeRepo
	Cache        i.LayoutCache // optional; layouts are carved on every request without it
	Recent       i.SortedQueue // optional; Recent returns nothing without it
	Encoder      i.LayoutEncoder
	Logger       i.Logger
	Defaults     MazeDefaults
	MaxDimension int

	// NewRand returns the random source for a seed. Defaults to math/rand.
	NewRand func(seed int64) maze.Rand
	// Now defaults to time.Now.
	Now func() time.Time
}

// params is a fully resolved request. Equal params always carve the same maze.
type params struct {
	width, depth int
	start        maze.Position
	seed         int64
	policy       maze.Policy
}

func (p params) key() string {
	return fmt.Sprintf("%dx%d:%d,%d:%d:%s", p.width, p.depth, p.start.X, p.start.Z, p.seed, p.policy)
}

var _ i.MazeCarver = &MazeService{}

// MazeService carves, stores and replays mazes.
type MazeService struct {
	repo         i.MazeRepo
	cache        i.LayoutCache
	recent       i.SortedQueue
	encoder      i.LayoutEncoder
	logger       i.Logger
	defaults     MazeDefaults
	maxDimension int
	newRand      func(seed int64) maze.Rand
	now          func() time.Time
}

// NewMazeService validates the config and builds the service.
func NewMazeService(c *Config) (*MazeService, error) {
	if c.Repo == nil || c.Encoder == nil || c.Logger == nil {
		return nil, errors.New("maze service needs a repo, an encoder and a logger")
	}
	if c.MaxDimension <= 0 {
		return nil, fmt.Errorf("max dimension must be positive, got %d", c.MaxDimension)
	}

	s := &MazeService{
		repo:         c.Repo,
		cache:        c.Cache,
		recent:       c.Recent,
		encoder:      c.Encoder,
		logger:       c.Logger,
		defaults:     c.Defaults,
		maxDimension: c.MaxDimension,
		newRand:      c.NewRand,
		now:          c.Now,
	}
	if s.newRand == nil {
		s.newRand = func(seed int64) maze.Rand { return rand.New(rand.NewSource(seed)) }
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Generate carves a maze for ownerID, stores it and returns the record with its grid.
func (s *MazeService) Generate(ctx context.Context, ownerID uuid.UUID, r dmn.MazeRequest) (*dmn.MazeRecord, *maze.Grid, error) {
	p, err := s.resolve(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	layout, err := s.layout(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	grid, err := s.encoder.Unmarshal(layout)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding layout %s: %w", p.key(), err)
	}
	stats, err := topology.Analyze(grid, p.start)
	if err != nil {
		return nil, nil, fmt.Errorf("layout %s is not a perfect maze: %w", p.key(), err)
	}

	record := &dmn.MazeRecord{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Width:     p.width,
		Depth:     p.depth,
		StartX:    p.start.X,
		StartZ:    p.start.Z,
		Seed:      p.seed,
		Policy:    p.policy.String(),
		Layout:    layout,
		Stats:     stats,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, nil, err
	}

	if s.recent != nil {
		score := float64(record.CreatedAt.UnixMilli())
		if err := s.recent.Enqueue(ctx, recentMazesKey, score, record.ID.String()); err != nil {
			s.logger.Warning(fmt.Sprintf("indexing maze %s as recent: %s", record.ID, err))
		}
	}

	s.logger.Info(fmt.Sprintf("carved %dx%d maze %s for %s (seed %d, %s)", p.width, p.depth, record.ID, ownerID, p.seed, p.policy))
	return record, grid, nil
}

// ByID loads a stored maze and decodes its grid.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Grid, error) {
	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	grid, err := s.encoder.Unmarshal(record.Layout)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding maze %s: %w", id, err)
	}
	return record, grid, nil
}

// Recent returns the most recently carved mazes, newest first.
// A non-positive limit means the default; limits above the maximum are clamped.
func (s *MazeService) Recent(ctx context.Context, limit int) ([]*dmn.MazeRecord, error) {
	if s.recent == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	limit = min(limit, maxRecentLimit)

	members, err := s.recent.Latest(ctx, recentMazesKey, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing recent mazes: %w", err)
	}

	records := make([]*dmn.MazeRecord, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("skipping malformed recent maze id %q", member))
			continue
		}

		record, err := s.repo.ByID(ctx, id)
		if errors.Is(err, dmn.ErrMazeNotFound) {
			s.logger.Warning(fmt.Sprintf("recent maze %s is gone", id))
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Trace replays the carve of a stored maze and returns every carve and backtrack event in order.
func (s *MazeService) Trace(ctx context.Context, id uuid.UUID) ([]maze.Event, error) {
	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	policy, err := maze.ParsePolicy(record.Policy)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", id, err)
	}
	p := params{
		width:  record.Width,
		depth:  record.Depth,
		start:  maze.Position{X: record.StartX, Z: record.StartZ},
		seed:   record.Seed,
		policy: policy,
	}

	grid, err := maze.NewGrid(p.width, p.depth)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", id, err)
	}
	walk, err := maze.NewGenerator(s.newRand(p.seed), maze.WithPolicy(p.policy)).Walk(grid, p.start)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", id, err)
	}

	// Every cell is carved once and backtracked once; the start cell is carved up front.
	events := make([]maze.Event, 0, 2*grid.Size()-1)
	for e := range walk.Events() {
		events = append(events, e)
	}

	replayed, err := s.encoder.Marshal(grid)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(replayed, record.Layout) {
		return nil, fmt.Errorf("maze %s: %w", id, ErrTraceMismatch)
	}
	return events, nil
}

func (s *MazeService) resolve(r dmn.MazeRequest) (params, error) {
	p := params{
		width: valueOr(r.Width, s.defaults.Width),
		depth: valueOr(r.Depth, s.defaults.Depth),
		start: maze.Position{
			X: valueOr(r.StartX, s.defaults.StartX),
			Z: valueOr(r.StartZ, s.defaults.StartZ),
		},
	}

	if p.width <= 0 || p.depth <= 0 {
		return params{}, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, p.width, p.depth)
	}
	if max(p.width, p.depth) > s.maxDimension {
		return params{}, fmt.Errorf("%w: %dx%d, limit %d", ErrMazeTooLarge, p.width, p.depth, s.maxDimension)
	}
	if p.start.X < 0 || p.start.X >= p.width || p.start.Z < 0 || p.start.Z >= p.depth {
		return params{}, fmt.Errorf("start %s: %w", p.start, maze.ErrOutOfBounds)
	}

	policy, err := maze.ParsePolicy(r.Policy)
	if err != nil {
		return params{}, err
	}
	p.policy = policy

	if r.Seed != nil {
		p.seed = *r.Seed
	} else {
		p.seed = rand.Int63()
	}
	return p, nil
}

// layout returns the encoded maze for p, through the cache when there is one.
func (s *MazeService) layout(ctx context.Context, p params) ([]byte, error) {
	build := func() ([]byte, error) {
		grid, err := maze.NewGrid(p.width, p.depth)
		if err != nil {
			return nil, err
		}
		gen := maze.NewGenerator(s.newRand(p.seed), maze.WithPolicy(p.policy))
		if err := gen.Generate(grid, p.start); err != nil {
			return nil, err
		}
		return s.encoder.Marshal(grid)
	}

	if s.cache == nil {
		return build()
	}
	return s.cache.GetOrCreate(ctx, p.key(), build)
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
