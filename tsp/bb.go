// Package tsp — Search Driver: depth-first Little branch-and-bound.
//
// Solve explores the binary branching tree of StageStates depth-first over an
// explicit LIFO frontier:
//
//  1. Pop a node. If its bound already exceeds the best bound, drop it.
//  2. Descend the left branch while level < N−2:
//     reduce → bound check → select the max-regret zero cell →
//     push the right-branch sibling (edge forbidden) → commit the edge.
//  3. At level N−2 close the tour. If its bound is ≤ the best bound, the bound
//     becomes the new best and the tour is recorded as a candidate.
//  4. When the frontier is empty keep the candidates whose bound equals the
//     minimum bound. Ties are all kept, so every optimal tour is returned.
//
// Pruning uses a strict "bound > best" test so that equal-cost alternatives are
// still explored; this is what makes the result the full set of optimal tours.
//
// Complexity:
//   - Worst case exponential in N; memory is dominated by the frontier, which
//     is not bounded (each entry holds an O(N²) matrix). Use WithContext to
//     cap wall time in hosting applications.
//   - Per node: O(N²) reduction + O(N³) selection (N² zero cells × O(N) regret).
package tsp

import "errors"

// errDeadEnd marks a node without any Hamiltonian completion. It never leaves
// the package; the node is simply discarded.
var errDeadEnd = errors.New("tsp: dead end")

// errPruned reports that a node was cut by the bound.
var errPruned = errors.New("tsp: pruned")

// candidate is a complete tour recorded during the search.
type candidate struct {
	lowerBound Cost
	solution   Solution
}

// bbSearch holds the state of one Solve call. best is owned here and threaded
// through every step instead of living in shared state.
type bbSearch struct {
	n        int
	original *CostMatrix
	opts     Options

	frontier   []*StageState
	best       Cost
	candidates []candidate
	stats      Stats
}

// Solve finds every minimum-cost Hamiltonian cycle of m with Little's
// branch-and-bound. m is not modified.
//
// Errors:
//   - ErrNilMatrix, ErrStartOutOfRange for bad arguments;
//   - ErrInfeasible when forbidden edges leave no Hamiltonian cycle;
//   - ErrNoZeroCell, ErrInvariant on internal failures;
//   - the context error when Options.Ctx is cancelled.
func Solve(m *CostMatrix, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrNilMatrix
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateStartVertex(m.n, o.StartVertex); err != nil {
		return Result{}, err
	}

	s := &bbSearch{
		n:        m.n,
		original: m,
		opts:     o,
		best:     Forbidden,
	}
	s.push(NewStageState(m))

	if err := s.run(); err != nil {
		return Result{}, err
	}

	return s.result()
}

// push appends a node to the frontier and tracks its peak size.
func (s *bbSearch) push(node *StageState) {
	s.frontier = append(s.frontier, node)
	if len(s.frontier) > s.stats.MaxFrontier {
		s.stats.MaxFrontier = len(s.frontier)
	}
}

// pop removes the most recently pushed node.
func (s *bbSearch) pop() *StageState {
	last := len(s.frontier) - 1
	node := s.frontier[last]
	s.frontier[last] = nil
	s.frontier = s.frontier[:last]

	return node
}

// run drains the frontier.
func (s *bbSearch) run() error {
	var (
		node *StageState
		err  error
	)
	for len(s.frontier) > 0 {
		if err = s.opts.Ctx.Err(); err != nil {
			return err
		}
		node = s.pop()
		s.stats.Popped++

		err = s.explore(node)
		switch {
		case err == nil, errors.Is(err, errPruned):
		case errors.Is(err, errDeadEnd):
			s.stats.DeadEnds++
		default:
			return err
		}
	}

	return nil
}

// explore descends the left branch of node and closes it.
func (s *bbSearch) explore(node *StageState) error {
	if err := s.descend(node); err != nil {
		return err
	}

	return s.finish(node)
}

// exceeds reports whether node must be abandoned against the current best.
func (s *bbSearch) exceeds(node *StageState) bool {
	return node.lowerBound.Compare(s.best) > 0
}

// prune records a bound cut.
func (s *bbSearch) prune(node *StageState) error {
	s.stats.Pruned++
	if s.opts.OnPrune != nil {
		s.opts.OnPrune(node.level, node.lowerBound, s.best)
	}

	return errPruned
}

// descend walks the left branch of node down to level N−2, pushing a
// right-branch sibling at every decision.
func (s *bbSearch) descend(node *StageState) error {
	if node.lowerBound.IsForbidden() {
		return errDeadEnd
	}
	if s.exceeds(node) {
		return s.prune(node)
	}

	var (
		nv    NewVertex
		right *StageState
		ok    bool
		err   error
	)
	for node.level < s.n-2 {
		// 1. Reduce the matrix in rows and columns.
		node.Reduce()

		// 2. Check the break condition on the updated bound.
		if node.lowerBound.IsForbidden() {
			return errDeadEnd
		}
		if s.exceeds(node) {
			return s.prune(node)
		}

		// 3. Get the branching edge and the cost of not choosing it.
		if nv, err = node.ChooseNewVertex(); err != nil {
			return err
		}
		if s.opts.OnBranch != nil {
			s.opts.OnBranch(node.level, nv, node.lowerBound)
		}

		// 4. Push the "edge forbidden" universe before committing.
		if right, ok = node.RightBranch(nv); ok {
			s.stats.Branches++
			s.push(right)
		}

		// 5. Take the edge in the left branch.
		node.Commit(nv.Vertex)
	}

	return nil
}

// finish closes a node at level N−2 and records it when it ties or beats the
// best bound.
func (s *bbSearch) finish(node *StageState) error {
	path, err := node.FinalPath(s.opts.StartVertex)
	if err != nil {
		return err
	}
	if s.exceeds(node) {
		return s.prune(node)
	}

	cost, err := CycleCost(s.original, path)
	if err != nil {
		return err
	}
	value, ok := cost.Int64()
	if !ok || cost.Compare(node.lowerBound) != 0 {
		// A complete tour's bound is its exact cost; anything else is a bug.
		return ErrInvariant
	}

	s.best = node.lowerBound
	sol := Solution{Cost: value, Path: path}
	s.candidates = append(s.candidates, candidate{lowerBound: node.lowerBound, solution: sol})
	s.stats.Candidates++
	if s.opts.OnSolution != nil {
		s.opts.OnSolution(sol, node.lowerBound)
	}

	return nil
}

// result keeps the candidates whose bound equals the minimum bound.
func (s *bbSearch) result() (Result, error) {
	if len(s.candidates) == 0 {
		return Result{Stats: s.stats}, ErrInfeasible
	}

	optimal := Forbidden
	for _, c := range s.candidates {
		optimal = Min(optimal, c.lowerBound)
	}

	res := Result{LowerBound: optimal, Stats: s.stats}
	for _, c := range s.candidates {
		if c.lowerBound.Compare(optimal) == 0 {
			res.Solutions = append(res.Solutions, c.solution)
		}
	}
	res.Cost, _ = optimal.Int64()

	return res, nil
}
