// Package tsp — CostMatrix: the reduction arithmetic of Little's algorithm.
//
// A CostMatrix is a dense N×N row-major buffer of Cost values. It never shrinks:
// when a city is used up its row and column are set to Forbidden instead of
// being removed, so indices always keep their original meaning.
//
// Complexity: every reduction and minima scan is O(N²); VertexCost is O(N).
package tsp

import (
	"fmt"
	"strings"
)

// CostMatrix is a square matrix of costs with a Forbidden diagonal.
// A CostMatrix is owned by exactly one StageState; use Clone to branch.
type CostMatrix struct {
	n    int
	cell []Cost // cell[r*n+c]
}

// NewCostMatrix validates rows and copies them into a new CostMatrix.
// The diagonal is forced to Forbidden whatever the supplied values are.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrTooSmall, ErrNegativeCost, ErrCostOverflow.
func NewCostMatrix(rows [][]Cost) (*CostMatrix, error) {
	n, err := validateRows(rows)
	if err != nil {
		return nil, err
	}

	m := &CostMatrix{n: n, cell: make([]Cost, n*n)}
	var r, c int
	for r = 0; r < n; r++ {
		for c = 0; c < n; c++ {
			if r == c {
				m.cell[r*n+c] = Forbidden
				continue
			}
			m.cell[r*n+c] = rows[r][c]
		}
	}

	return m, nil
}

// FromInts builds a CostMatrix from plain integers; cells equal to inf become
// Forbidden. This matches matrices written with a large "INF" constant.
func FromInts(rows [][]int64, inf int64) (*CostMatrix, error) {
	if rows == nil {
		return nil, ErrNilMatrix
	}
	tagged := make([][]Cost, len(rows))
	var r, c int
	for r = range rows {
		tagged[r] = make([]Cost, len(rows[r]))
		for c = range rows[r] {
			if rows[r][c] == inf {
				tagged[r][c] = Forbidden
				continue
			}
			tagged[r][c] = Finite(rows[r][c])
		}
	}

	return NewCostMatrix(tagged)
}

// MustFromInts is FromInts that panics on error; meant for literals in tests
// and examples.
func MustFromInts(rows [][]int64, inf int64) *CostMatrix {
	m, err := FromInts(rows, inf)
	if err != nil {
		panic(err)
	}

	return m
}

// Size returns N.
func (m *CostMatrix) Size() int { return m.n }

// At returns the cost of edge row→col. It panics when an index is out of range.
func (m *CostMatrix) At(row, col int) Cost {
	m.mustIndex(row, col)

	return m.cell[row*m.n+col]
}

// Set overwrites the cost of edge row→col. It panics when an index is out of range.
func (m *CostMatrix) Set(row, col int, c Cost) {
	m.mustIndex(row, col)
	m.cell[row*m.n+col] = c
}

func (m *CostMatrix) mustIndex(row, col int) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		panic(fmt.Sprintf("tsp: index (%d,%d) out of range for %dx%d matrix", row, col, m.n, m.n))
	}
}

// Clone returns an independent deep copy.
func (m *CostMatrix) Clone() *CostMatrix {
	cp := &CostMatrix{n: m.n, cell: make([]Cost, len(m.cell))}
	copy(cp.cell, m.cell)

	return cp
}

// Rows returns a deep copy of the matrix as a slice of rows.
func (m *CostMatrix) Rows() [][]Cost {
	out := make([][]Cost, m.n)
	var r int
	for r = 0; r < m.n; r++ {
		out[r] = append([]Cost(nil), m.cell[r*m.n:(r+1)*m.n]...)
	}

	return out
}

// MinValuesInRows returns the minimum of every row. A row without finite
// cells has minimum Forbidden.
func (m *CostMatrix) MinValuesInRows() []Cost {
	mins := make([]Cost, m.n)
	var r, c int
	for r = 0; r < m.n; r++ {
		mins[r] = Forbidden
		for c = 0; c < m.n; c++ {
			mins[r] = Min(mins[r], m.cell[r*m.n+c])
		}
	}

	return mins
}

// ReduceRows subtracts each row minimum from the finite cells of its row and
// returns the sum of the subtracted minima. Rows whose minimum is Forbidden
// are left as they are and add nothing to the sum.
func (m *CostMatrix) ReduceRows() Cost {
	var (
		mins  = m.MinValuesInRows()
		total = Finite(0)
		r, c  int
		idx   int
	)
	for r = 0; r < m.n; r++ {
		if mins[r].IsForbidden() || mins[r].IsZero() {
			continue
		}
		for c = 0; c < m.n; c++ {
			idx = r*m.n + c
			if !m.cell[idx].IsForbidden() {
				m.cell[idx] = m.cell[idx].Sub(mins[r])
			}
		}
		total = total.Add(mins[r])
	}

	return total
}

// MinValuesInCols returns the minimum of every column. A column without
// finite cells has minimum Forbidden.
func (m *CostMatrix) MinValuesInCols() []Cost {
	mins := make([]Cost, m.n)
	var r, c int
	for c = 0; c < m.n; c++ {
		mins[c] = Forbidden
		for r = 0; r < m.n; r++ {
			mins[c] = Min(mins[c], m.cell[r*m.n+c])
		}
	}

	return mins
}

// ReduceCols is the column counterpart of ReduceRows.
func (m *CostMatrix) ReduceCols() Cost {
	var (
		mins  = m.MinValuesInCols()
		total = Finite(0)
		r, c  int
		idx   int
	)
	for c = 0; c < m.n; c++ {
		if mins[c].IsForbidden() || mins[c].IsZero() {
			continue
		}
		for r = 0; r < m.n; r++ {
			idx = r*m.n + c
			if !m.cell[idx].IsForbidden() {
				m.cell[idx] = m.cell[idx].Sub(mins[c])
			}
		}
		total = total.Add(mins[c])
	}

	return total
}

// VertexCost returns the regret of edge row→col: the cheapest other way out
// of row plus the cheapest other way into col. If either side has no finite
// alternative the regret is Forbidden, since skipping the edge is impossible.
func (m *CostMatrix) VertexCost(row, col int) Cost {
	m.mustIndex(row, col)

	var (
		minRow = Forbidden
		minCol = Forbidden
		i      int
	)
	for i = 0; i < m.n; i++ {
		if i != col {
			minRow = Min(minRow, m.cell[row*m.n+i])
		}
		if i != row {
			minCol = Min(minCol, m.cell[i*m.n+col])
		}
	}

	return minRow.Add(minCol)
}

// forbidRow sets every cell of row r to Forbidden.
func (m *CostMatrix) forbidRow(r int) {
	var c int
	for c = 0; c < m.n; c++ {
		m.cell[r*m.n+c] = Forbidden
	}
}

// forbidCol sets every cell of column c to Forbidden.
func (m *CostMatrix) forbidCol(c int) {
	var r int
	for r = 0; r < m.n; r++ {
		m.cell[r*m.n+c] = Forbidden
	}
}

// rowHasFinite reports whether row r still has a usable edge.
func (m *CostMatrix) rowHasFinite(r int) bool {
	var c int
	for c = 0; c < m.n; c++ {
		if !m.cell[r*m.n+c].IsForbidden() {
			return true
		}
	}

	return false
}

// colHasFinite reports whether column c still has a usable edge.
func (m *CostMatrix) colHasFinite(c int) bool {
	var r int
	for r = 0; r < m.n; r++ {
		if !m.cell[r*m.n+c].IsForbidden() {
			return true
		}
	}

	return false
}

// String renders the matrix row by row with "INF" for Forbidden cells.
func (m *CostMatrix) String() string {
	var (
		sb   strings.Builder
		r, c int
	)
	for r = 0; r < m.n; r++ {
		for c = 0; c < m.n; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.cell[r*m.n+c].String())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
