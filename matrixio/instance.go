package matrixio

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/littletsp/tsp"
)

// Sentinel errors.
var (
	// ErrUnknownFormat is returned for an unsupported Format value.
	ErrUnknownFormat = errors.New("matrixio: unknown format")

	// ErrBadCell signals a matrix cell that is neither an integer nor a
	// forbidden token.
	ErrBadCell = errors.New("matrixio: bad cell")

	// ErrLabelCount signals a labels list whose length differs from N.
	ErrLabelCount = errors.New("matrixio: label count does not match matrix size")
)

// Instance is a named cost matrix.
type Instance struct {
	Name   string
	Labels []string
	Matrix *tsp.CostMatrix
}

// Label returns the display label of city i: its label when present,
// otherwise the index.
func (inst *Instance) Label(i int) string {
	if i >= 0 && i < len(inst.Labels) && inst.Labels[i] != "" {
		return inst.Labels[i]
	}

	return fmt.Sprint(i)
}

// newInstance validates rows and labels into an Instance.
func newInstance(name string, labels []string, rows [][]tsp.Cost) (*Instance, error) {
	m, err := tsp.NewCostMatrix(rows)
	if err != nil {
		return nil, err
	}
	if len(labels) > 0 && len(labels) != m.Size() {
		return nil, fmt.Errorf("%d labels for %d cities: %w", len(labels), m.Size(), ErrLabelCount)
	}

	return &Instance{Name: name, Labels: labels, Matrix: m}, nil
}

// cellFromAny converts a decoded TOML/YAML value into a Cost.
func cellFromAny(v any) (tsp.Cost, error) {
	switch x := v.(type) {
	case nil:
		return tsp.Forbidden, nil
	case int:
		return tsp.Finite(int64(x)), nil
	case int64:
		return tsp.Finite(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return tsp.Cost{}, fmt.Errorf("%d: %w", x, ErrBadCell)
		}
		return tsp.Finite(int64(x)), nil
	case float64:
		if math.IsInf(x, 1) {
			return tsp.Forbidden, nil
		}
		if x != math.Trunc(x) || math.IsNaN(x) {
			return tsp.Cost{}, fmt.Errorf("%v is not an integer: %w", x, ErrBadCell)
		}
		return tsp.Finite(int64(x)), nil
	case string:
		c, err := tsp.ParseCost(x)
		if err != nil {
			return tsp.Cost{}, fmt.Errorf("%q: %w", x, ErrBadCell)
		}
		return c, nil
	}

	return tsp.Cost{}, fmt.Errorf("%T: %w", v, ErrBadCell)
}

// rowsFromAny converts a decoded matrix of loosely typed cells.
func rowsFromAny(raw [][]any) ([][]tsp.Cost, error) {
	if raw == nil {
		return nil, tsp.ErrNilMatrix
	}
	rows := make([][]tsp.Cost, len(raw))
	var (
		r, c int
		err  error
	)
	for r = range raw {
		rows[r] = make([]tsp.Cost, len(raw[r]))
		for c = range raw[r] {
			if rows[r][c], err = cellFromAny(raw[r][c]); err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", r, c, err)
			}
		}
	}

	return rows, nil
}

// rowsToAny renders the matrix with "INF" for forbidden cells, the shape the
// TOML and YAML encoders expect.
func rowsToAny(m *tsp.CostMatrix) [][]any {
	out := make([][]any, m.Size())
	var r, c int
	for r = range out {
		out[r] = make([]any, m.Size())
		for c = range out[r] {
			if v, ok := m.At(r, c).Int64(); ok {
				out[r][c] = v
				continue
			}
			out[r][c] = tsp.InfToken
		}
	}

	return out
}
