package mip

import (
	"fmt"
	"strings"
)

// Column holds the non-zero entries of one variable across all
// constraints, the transposed view of a constraint's row. It is a pure
// value object: position i of the constraint sequence always corresponds
// to position i of the coefficient sequence.
type Column struct {
	constrs []Constr
	coeffs  []float64
}

// NewColumn pairs constraints with coefficients. The two slices must have
// the same length, otherwise ErrLengthMismatch is returned.
func NewColumn(constrs []Constr, coeffs []float64) (Column, error) {
	if len(constrs) != len(coeffs) {
		return Column{}, fmt.Errorf("%d constraints, %d coefficients: %w", len(constrs), len(coeffs), ErrLengthMismatch)
	}
	c := Column{
		constrs: make([]Constr, len(constrs)),
		coeffs:  make([]float64, len(coeffs)),
	}
	copy(c.constrs, constrs)
	copy(c.coeffs, coeffs)
	return c, nil
}

// Len returns the number of entries in the column.
func (c Column) Len() int {
	return len(c.constrs)
}

// Constrs returns a copy of the constraint sequence.
func (c Column) Constrs() []Constr {
	r := make([]Constr, len(c.constrs))
	copy(r, c.constrs)
	return r
}

// Coeffs returns a copy of the coefficient sequence.
func (c Column) Coeffs() []float64 {
	r := make([]float64, len(c.coeffs))
	copy(r, c.coeffs)
	return r
}

// String renders the column as "[coeff name, coeff name, ...]".
func (c Column) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range c.constrs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v %s", c.coeffs[i], c.constrs[i].Name())
	}
	b.WriteByte(']')
	return b.String()
}
