package tsp

import (
	"context"
	"errors"
)

// Sentinel errors. Every message is prefixed with "tsp:"; callers match them
// with errors.Is. Outer layers may wrap with fmt.Errorf("ctx: %w", ErrX).
var (
	// ErrNilMatrix is returned when a nil matrix or nil rows are supplied.
	ErrNilMatrix = errors.New("tsp: nil matrix")

	// ErrNonSquare signals that some row length differs from the row count.
	ErrNonSquare = errors.New("tsp: matrix is not square")

	// ErrTooSmall signals N < 2; a tour needs at least two cities.
	ErrTooSmall = errors.New("tsp: matrix must have at least 2 cities")

	// ErrNegativeCost signals a negative finite off-diagonal cost.
	ErrNegativeCost = errors.New("tsp: negative cost")

	// ErrCostOverflow signals a finite cost large enough that summing N of
	// them (plus reductions) could overflow int64.
	ErrCostOverflow = errors.New("tsp: cost too large")

	// ErrStartOutOfRange signals a start city outside [0..N-1].
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrInfeasible is returned when forbidden edges leave no Hamiltonian cycle.
	ErrInfeasible = errors.New("tsp: no hamiltonian cycle exists")

	// ErrNoZeroCell signals that vertex selection found no zero cell in a
	// reduced matrix. It indicates a broken reduction, never bad input.
	ErrNoZeroCell = errors.New("tsp: no zero cell after reduction")

	// ErrInvariant signals an internal consistency failure (for example a
	// completed tour whose true cost differs from its lower bound).
	ErrInvariant = errors.New("tsp: internal invariant violated")

	// ErrTooLarge is returned by HeldKarp for instances above MaxHeldKarpCities.
	ErrTooLarge = errors.New("tsp: instance too large for held-karp")

	// ErrInvalidPath signals a cycle that is not a permutation of the cities.
	ErrInvalidPath = errors.New("tsp: path is not a hamiltonian cycle")
)

// Vertex identifies the directed edge Row→Col of the cost matrix.
type Vertex struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewVertex is a branching candidate: a zero cell of the reduced matrix and
// the regret paid if the edge is not taken.
type NewVertex struct {
	Vertex
	Cost Cost `json:"cost"`
}

// Solution is one optimal tour. Path holds every city exactly once in visiting
// order; the closing edge Path[len-1]→Path[0] is implicit.
type Solution struct {
	Cost int64 `json:"cost"`
	Path []int `json:"path"`
}

// Stats are search diagnostics collected by Solve.
type Stats struct {
	// Popped counts StageStates taken from the frontier.
	Popped int `json:"popped"`
	// Branches counts right-branch siblings pushed onto the frontier.
	Branches int `json:"branches"`
	// Pruned counts nodes abandoned because their bound exceeded the best one.
	Pruned int `json:"pruned"`
	// DeadEnds counts nodes discarded because no Hamiltonian completion exists.
	DeadEnds int `json:"dead_ends"`
	// MaxFrontier is the largest frontier size observed.
	MaxFrontier int `json:"max_frontier"`
	// Candidates counts complete tours recorded before the final filter.
	Candidates int `json:"candidates"`
}

// Result is the outcome of Solve.
type Result struct {
	// Solutions holds every optimal tour found, in discovery order.
	Solutions []Solution `json:"solutions"`
	// Cost is the optimal tour cost.
	Cost int64 `json:"cost"`
	// LowerBound is the best lower bound of the search; equal to Cost.
	LowerBound Cost `json:"lower_bound"`
	Stats      Stats `json:"stats"`
}

// Option configures Solve.
type Option func(*Options)

// Options holds the tunables of Solve. The zero-hook defaults never alter the
// search; hooks only observe it.
type Options struct {
	// Ctx is checked between frontier pops; cancelling it aborts the search.
	Ctx context.Context

	// StartVertex is the city every returned Path begins with.
	StartVertex int

	// OnBranch, if non-nil, is called for each branching decision with the
	// node level and lower bound at selection time.
	OnBranch func(level int, v NewVertex, lowerBound Cost)

	// OnPrune, if non-nil, is called when a node is abandoned by the bound.
	OnPrune func(level int, lowerBound Cost, best Cost)

	// OnSolution, if non-nil, is called for every recorded candidate tour.
	OnSolution func(s Solution, lowerBound Cost)
}

// DefaultOptions returns Options with a background context, start city 0 and
// no hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		StartVertex: 0,
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithStartVertex rotates every returned Path to begin at v.
func WithStartVertex(v int) Option {
	return func(o *Options) {
		o.StartVertex = v
	}
}

// WithOnBranch installs a branching hook.
func WithOnBranch(fn func(level int, v NewVertex, lowerBound Cost)) Option {
	return func(o *Options) {
		o.OnBranch = fn
	}
}

// WithOnPrune installs a pruning hook.
func WithOnPrune(fn func(level int, lowerBound Cost, best Cost)) Option {
	return func(o *Options) {
		o.OnPrune = fn
	}
}

// WithOnSolution installs a hook called for each recorded candidate tour.
func WithOnSolution(fn func(s Solution, lowerBound Cost)) Option {
	return func(o *Options) {
		o.OnSolution = fn
	}
}
