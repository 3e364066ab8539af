// Package tsp — StageState: one node of the Little branch-and-bound tree.
//
// A node owns its CostMatrix, an accumulated lower bound, its level (number of
// committed edges) and the committed edges themselves. The Search Driver moves a
// node through reduce → select → commit until level == N−2 and then closes it
// with FinalPath. Every selection also yields a right-branch sibling in which
// the selected edge is forbidden instead of taken.
//
// Besides the unsorted edge list, a node keeps successor/predecessor links of
// the committed edges. They identify the chain a new edge joins, so the edge
// that would close that chain into a premature sub-tour can be forbidden, and
// they identify the two open rows and columns left at the leaf.
package tsp

// noLink marks a city without a committed successor or predecessor.
const noLink = -1

// StageState is a branch-and-bound tree node. It is not safe for concurrent use.
type StageState struct {
	matrix       *CostMatrix
	lowerBound   Cost
	level        int
	unsortedPath []Vertex

	next []int // next[r] = c for committed r→c
	prev []int // prev[c] = r for committed r→c
}

// NewStageState returns the root node for m. The node owns a clone of m, so
// the caller's matrix is never mutated.
func NewStageState(m *CostMatrix) *StageState {
	s := &StageState{
		matrix:     m.Clone(),
		lowerBound: Finite(0),
		next:       make([]int, m.n),
		prev:       make([]int, m.n),
	}
	var i int
	for i = 0; i < m.n; i++ {
		s.next[i] = noLink
		s.prev[i] = noLink
	}

	return s
}

// Matrix returns the node's own matrix. Mutating it changes the node.
func (s *StageState) Matrix() *CostMatrix { return s.matrix }

// LowerBound returns the accumulated lower bound; Forbidden marks a dead end.
func (s *StageState) LowerBound() Cost { return s.lowerBound }

// Level returns the number of committed edges.
func (s *StageState) Level() int { return s.level }

// UnsortedPath returns a copy of the committed edges in commit order.
func (s *StageState) UnsortedPath() []Vertex {
	return append([]Vertex(nil), s.unsortedPath...)
}

// UpdateLowerBound adds c to the lower bound.
func (s *StageState) UpdateLowerBound(c Cost) {
	s.lowerBound = s.lowerBound.Add(c)
}

// Reduce runs row then column reduction, adds both totals to the lower bound
// and returns their sum. If a city still needing a successor (open row) or a
// predecessor (open column) has no finite edge left, the node cannot be
// completed and its lower bound becomes Forbidden.
//
// The root starts with a zero bound, so its first Reduce initializes the bound.
func (s *StageState) Reduce() Cost {
	reduced := s.matrix.ReduceRows().Add(s.matrix.ReduceCols())
	s.UpdateLowerBound(reduced)
	if !s.completable() {
		s.lowerBound = Forbidden
	}

	return reduced
}

// completable reports whether every open row and column keeps a finite cell.
func (s *StageState) completable() bool {
	var i int
	for i = 0; i < s.matrix.n; i++ {
		if s.next[i] == noLink && !s.matrix.rowHasFinite(i) {
			return false
		}
		if s.prev[i] == noLink && !s.matrix.colHasFinite(i) {
			return false
		}
	}

	return true
}

// ChooseNewVertex scans the zero cells in row-major order and returns the one
// with the largest regret; the first one found wins ties. A Forbidden regret
// (an edge that cannot be avoided) beats any finite regret.
//
// Errors: ErrNoZeroCell if the matrix holds no zero, which cannot happen right
// after a Reduce on a completable node.
func (s *StageState) ChooseNewVertex() (NewVertex, error) {
	var (
		best  NewVertex
		found bool
		n     = s.matrix.n
		r, c  int
		cost  Cost
	)
	for r = 0; r < n; r++ {
		for c = 0; c < n; c++ {
			if !s.matrix.cell[r*n+c].IsZero() {
				continue
			}
			cost = s.matrix.VertexCost(r, c)
			if !found || cost.Compare(best.Cost) > 0 {
				best = NewVertex{Vertex: Vertex{Row: r, Col: c}, Cost: cost}
				found = true
			}
		}
	}
	if !found {
		return NewVertex{}, ErrNoZeroCell
	}

	return best, nil
}

// RightBranch returns the sibling in which nv is forbidden rather than taken.
// It must be called before Commit(nv.Vertex). The sibling gets a clone of the
// current matrix with nv's cell set to Forbidden and reduced; its lower bound
// is this node's bound plus that reduction, which equals nv.Cost. Committed
// edges and level are inherited.
//
// When nv.Cost is Forbidden the edge is unavoidable, the sibling has no tour,
// and RightBranch returns (nil, false).
func (s *StageState) RightBranch(nv NewVertex) (*StageState, bool) {
	if nv.Cost.IsForbidden() {
		return nil, false
	}

	child := &StageState{
		matrix:       s.matrix.Clone(),
		lowerBound:   s.lowerBound,
		level:        s.level,
		unsortedPath: append([]Vertex(nil), s.unsortedPath...),
		next:         append([]int(nil), s.next...),
		prev:         append([]int(nil), s.prev...),
	}
	child.matrix.Set(nv.Row, nv.Col, Forbidden)
	child.UpdateLowerBound(child.matrix.ReduceRows().Add(child.matrix.ReduceCols()))

	return child, true
}

// Commit takes edge v: it is appended to the path, row v.Row and column v.Col
// are forbidden, and so are the reverse edge and the edge that would close the
// committed chain containing v into a sub-tour. The level is incremented.
func (s *StageState) Commit(v Vertex) {
	s.unsortedPath = append(s.unsortedPath, v)
	s.next[v.Row] = v.Col
	s.prev[v.Col] = v.Row

	s.matrix.forbidRow(v.Row)
	s.matrix.forbidCol(v.Col)
	s.matrix.Set(v.Col, v.Row, Forbidden)

	// Walk to both ends of the chain v now belongs to.
	head, tail := v.Row, v.Col
	for s.prev[head] != noLink {
		head = s.prev[head]
	}
	for s.next[tail] != noLink {
		tail = s.next[tail]
	}
	// Only the very last edge of a tour may close a chain.
	if s.level+1 < s.matrix.n-1 {
		s.matrix.Set(tail, head, Forbidden)
	}

	s.level++
}

// FinalPath completes a node at level N−2. The matrix is reduced once more,
// then of the two ways to pair the two open rows with the two open columns,
// the one forming a single Hamiltonian cycle over finite cells is committed
// and its reduced cost added to the bound. The cycle is rebuilt from the
// unordered edge set and rotated to begin at start.
//
// Errors: errDeadEnd when no pairing is feasible; ErrInvariant when the node
// is not at level N−2.
func (s *StageState) FinalPath(start int) ([]int, error) {
	n := s.matrix.n
	if s.level != n-2 {
		return nil, ErrInvariant
	}
	s.Reduce()
	if s.lowerBound.IsForbidden() {
		return nil, errDeadEnd
	}

	var (
		rows = make([]int, 0, 2)
		cols = make([]int, 0, 2)
		i    int
	)
	for i = 0; i < n; i++ {
		if s.next[i] == noLink {
			rows = append(rows, i)
		}
		if s.prev[i] == noLink {
			cols = append(cols, i)
		}
	}
	if len(rows) != 2 || len(cols) != 2 {
		return nil, ErrInvariant
	}

	pairings := [2][2]Vertex{
		{{Row: rows[0], Col: cols[0]}, {Row: rows[1], Col: cols[1]}},
		{{Row: rows[0], Col: cols[1]}, {Row: rows[1], Col: cols[0]}},
	}
	var (
		chosen  [2]Vertex
		closing = Forbidden
		cost    Cost
		edges   []Vertex
	)
	for _, p := range pairings {
		cost = s.matrix.At(p[0].Row, p[0].Col).Add(s.matrix.At(p[1].Row, p[1].Col))
		if cost.IsForbidden() {
			continue
		}
		edges = append(append(edges[:0], s.unsortedPath...), p[0], p[1])
		if _, err := orderCycle(edges, n, start); err != nil {
			continue
		}
		if cost.Less(closing) {
			chosen, closing = p, cost
		}
	}
	if closing.IsForbidden() {
		return nil, errDeadEnd
	}

	s.UpdateLowerBound(closing)
	for _, v := range chosen {
		s.unsortedPath = append(s.unsortedPath, v)
		s.next[v.Row] = v.Col
		s.prev[v.Col] = v.Row
	}
	s.level = n

	return orderCycle(s.unsortedPath, n, start)
}

// orderCycle rebuilds the visiting order from an unordered set of n edges by
// repeatedly following "row of the next edge equals col of the current one",
// starting at start. It fails with ErrInvalidPath unless the edges form one
// Hamiltonian cycle.
func orderCycle(edges []Vertex, n int, start int) ([]int, error) {
	if len(edges) != n {
		return nil, ErrInvalidPath
	}
	succ := make([]int, n)
	var i int
	for i = range succ {
		succ[i] = noLink
	}
	for _, e := range edges {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n || succ[e.Row] != noLink {
			return nil, ErrInvalidPath
		}
		succ[e.Row] = e.Col
	}

	path := make([]int, 0, n)
	seen := make([]bool, n)
	city := start
	for i = 0; i < n; i++ {
		if seen[city] {
			return nil, ErrInvalidPath
		}
		seen[city] = true
		path = append(path, city)
		city = succ[city]
	}
	if city != start {
		return nil, ErrInvalidPath
	}

	return path, nil
}
