// Package tsp — cost values and tour cost evaluation.
//
// Cost is a tagged value: either a finite int64 or Forbidden. Forbidden is
// absorbing under Add/Sub and compares greater than every finite cost, so
// reductions and bound checks can never wrap around the way a "very large
// integer" sentinel does.
package tsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// InfToken is the textual form of Forbidden in matrices, logs and JSON.
const InfToken = "INF"

// Cost is either a finite integer cost or Forbidden. The zero value is Finite(0).
type Cost struct {
	v   int64
	inf bool
}

// Forbidden marks a missing or prohibited edge.
var Forbidden = Cost{inf: true}

// Finite wraps v as a finite cost.
func Finite(v int64) Cost { return Cost{v: v} }

// IsForbidden reports whether c is Forbidden.
func (c Cost) IsForbidden() bool { return c.inf }

// Int64 returns the finite value and true, or (0, false) for Forbidden.
func (c Cost) Int64() (int64, bool) {
	if c.inf {
		return 0, false
	}

	return c.v, true
}

// IsZero reports whether c is exactly Finite(0).
func (c Cost) IsZero() bool { return !c.inf && c.v == 0 }

// Add returns c+d; Forbidden if either operand is Forbidden.
func (c Cost) Add(d Cost) Cost {
	if c.inf || d.inf {
		return Forbidden
	}

	return Cost{v: c.v + d.v}
}

// Sub returns c−d; Forbidden if either operand is Forbidden.
func (c Cost) Sub(d Cost) Cost {
	if c.inf || d.inf {
		return Forbidden
	}

	return Cost{v: c.v - d.v}
}

// Compare returns -1, 0 or +1. Forbidden equals Forbidden and is greater than
// any finite cost.
func (c Cost) Compare(d Cost) int {
	switch {
	case c.inf && d.inf:
		return 0
	case c.inf:
		return 1
	case d.inf:
		return -1
	case c.v < d.v:
		return -1
	case c.v > d.v:
		return 1
	}

	return 0
}

// Less reports c < d.
func (c Cost) Less(d Cost) bool { return c.Compare(d) < 0 }

// Min returns the smaller of a and b.
func Min(a, b Cost) Cost {
	if b.Less(a) {
		return b
	}

	return a
}

// String renders finite costs in base 10 and Forbidden as "INF".
func (c Cost) String() string {
	if c.inf {
		return InfToken
	}

	return strconv.FormatInt(c.v, 10)
}

// MarshalJSON encodes finite costs as numbers and Forbidden as "INF".
func (c Cost) MarshalJSON() ([]byte, error) {
	if c.inf {
		return []byte(`"` + InfToken + `"`), nil
	}

	return []byte(strconv.FormatInt(c.v, 10)), nil
}

// UnmarshalJSON accepts a number, null, or one of the forbidden tokens.
func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Forbidden
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseCost(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("tsp: cost %s: %w", data, err)
	}
	*c = Finite(v)

	return nil
}

// ParseCost parses a decimal integer or a forbidden token ("INF", "inf", "-").
func ParseCost(s string) (Cost, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case InfToken, "-", "INFINITY":
		return Forbidden, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Cost{}, fmt.Errorf("tsp: cost %q: %w", s, err)
	}

	return Finite(v), nil
}

// CycleCost sums m along path, including the closing edge back to path[0].
// Costs are read from m as given; a Forbidden edge makes the result Forbidden.
//
// Errors: ErrNilMatrix, ErrInvalidPath when path is not a permutation of m's cities.
//
// Complexity: O(n).
func CycleCost(m *CostMatrix, path []int) (Cost, error) {
	if m == nil {
		return Cost{}, ErrNilMatrix
	}
	if err := ValidateCycle(path, m.n); err != nil {
		return Cost{}, err
	}

	var (
		sum = Finite(0)
		i   int
	)
	for i = 1; i < len(path); i++ {
		sum = sum.Add(m.At(path[i-1], path[i]))
	}
	// Return from the last city to the first one.
	sum = sum.Add(m.At(path[len(path)-1], path[0]))

	return sum, nil
}
