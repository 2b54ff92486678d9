package maze

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownPolicy = errors.New("unknown frontier policy")

// Policy decides which frontier entry the carver extends next.
type Policy uint8

const (
	// PolicyNewest always extends the most recently carved live cell. This is the classic
	// recursive backtracker: long winding corridors and few branches.
	PolicyNewest Policy = iota
	// PolicyRandom extends a uniformly chosen live cell. Mazes look closer to Prim's
	// algorithm: short dead ends and many branches.
	PolicyRandom
)

// String returns the policy name used in configuration and requests.
func (p Policy) String() string {
	switch p {
	case PolicyNewest:
		return "newest"
	case PolicyRandom:
		return "random"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy maps "newest" or "random" to a Policy. An empty name means PolicyNewest.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "newest":
		return PolicyNewest, nil
	case "random":
		return PolicyRandom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// next returns the frontier index to extend. n must be positive.
func (p Policy) next(n int, rng Rand) int {
	if p == PolicyRandom {
		return rng.Intn(n)
	}
	return n - 1
}

// frontier is the carve stack: live carved cells that may still have uncarved neighbors.
type frontier struct {
	cells []Position
}

func (f *frontier) push(p Position) {
	f.cells = append(f.cells, p)
}

func (f *frontier) len() int {
	return len(f.cells)
}

func (f *frontier) at(i int) Position {
	return f.cells[i]
}

// removeAt drops the entry at i and keeps the order of the rest.
func (f *frontier) removeAt(i int) {
	f.cells = slices.Delete(f.cells, i, i+1)
}
