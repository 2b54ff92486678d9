package maze

import (
	"fmt"
	"iter"
)

// Rand is the source of randomness for the carver. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// EventKind tells carve events from backtrack events.
type EventKind uint8

const (
	EventCarve     EventKind = iota + 1 // a wall was opened into a new cell
	EventBacktrack                      // a cell ran out of uncarved neighbors
)

// String returns "carve" or "backtrack".
func (k EventKind) String() string {
	switch k {
	case EventCarve:
		return "carve"
	case EventBacktrack:
		return "backtrack"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is the outcome of one visit to a frontier cell.
// For EventBacktrack only From is meaningful.
type Event struct {
	Kind      EventKind
	From      Position
	To        Position
	Direction Direction
}

// Generator carves perfect mazes with a randomized backtracker.
type Generator struct {
	rng    Rand
	policy Policy
}

// Option configures a Generator.
type Option func(*Generator)

// WithPolicy replaces the default newest-first frontier policy.
func WithPolicy(p Policy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// NewGenerator returns a generator drawing from rng.
func NewGenerator(rng Rand, opts ...Option) *Generator {
	g := &Generator{rng: rng, policy: PolicyNewest}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate carves grid into a perfect maze starting at start. Any previous carving is discarded.
func (gen *Generator) Generate(grid *Grid, start Position) error {
	w, err := gen.Walk(grid, start)
	if err != nil {
		return err
	}
	for !w.Done() {
		w.Step()
	}
	return nil
}

// Walk clears grid, carves start and returns a walk that carves the rest one step at a time.
// The grid belongs to the walk until it is done.
func (gen *Generator) Walk(grid *Grid, start Position) (*Walk, error) {
	if !grid.InBound(start.X, start.Z) {
		return nil, fmt.Errorf("start %s: %w", start, ErrOutOfBounds)
	}

	grid.reset()
	_ = grid.MarkCarved(start.X, start.Z)

	w := &Walk{grid: grid, rng: gen.rng, policy: gen.policy}
	w.frontier.push(start)
	return w, nil
}

// Walk is an in-progress carve. It is not safe for concurrent use.
type Walk struct {
	grid     *Grid
	rng      Rand
	policy   Policy
	frontier frontier
}

// Done reports whether the frontier is empty.
func (w *Walk) Done() bool {
	return w.frontier.len() == 0
}

// Live returns the number of cells still on the frontier.
func (w *Walk) Live() int {
	return w.frontier.len()
}

// Step visits one frontier cell. It either carves into one uncarved neighbor or, when all
// four directions fail, drops the cell from the frontier. It returns false once done.
func (w *Walk) Step() (Event, bool) {
	if w.Done() {
		return Event{}, false
	}

	needle := w.policy.next(w.frontier.len(), w.rng)
	current := w.frontier.at(needle)
	r := w.rng.Intn(len(Directions))

	for attempt := range len(Directions) {
		d := Directions[(r+attempt)%len(Directions)]
		next := current.Add(d)
		if !w.grid.InBound(next.X, next.Z) {
			continue
		}
		if c := w.grid.cells[w.grid.index(next.X, next.Z)]; c.carved {
			continue
		}

		// Both cells are in bounds here, so neither call can fail.
		_ = w.grid.OpenWall(current.X, current.Z, d)
		_ = w.grid.MarkCarved(next.X, next.Z)
		w.frontier.push(next)
		return Event{Kind: EventCarve, From: current, To: next, Direction: d}, true
	}

	w.frontier.removeAt(needle)
	return Event{Kind: EventBacktrack, From: current}, true
}

// Events yields the remaining events until the walk is done.
func (w *Walk) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			e, ok := w.Step()
			if !ok || !yield(e) {
				return
			}
		}
	}
}
