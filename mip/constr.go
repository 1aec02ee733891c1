// Copyright 2024-2026 The gomip Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mip

import (
	"fmt"
	"strings"
)

// Constr is a reference to a row of the constraint matrix. Like Var it is
// a thin index handle: every attribute is delegated to the owning model's
// solver.
type Constr struct {
	model *Model
	idx   int
}

// Index returns the index of the constraint in the owning model's table.
func (c Constr) Index() int {
	return c.idx
}

// Model returns the model this constraint belongs to.
func (c Constr) Model() *Model {
	return c.model
}

// Name returns the constraint name.
func (c Constr) Name() string {
	return c.model.solver.ConstrName(c.idx)
}

// RHS returns the right-hand side of the constraint.
func (c Constr) RHS() float64 {
	return c.model.solver.ConstrRHS(c.idx)
}

// SetRHS sets the right-hand side of the constraint.
func (c Constr) SetRHS(rhs float64) {
	c.model.solver.SetConstrRHS(c.idx, rhs)
	c.model.invalidate()
}

// Slack returns the slack of the constraint in the optimal solution,
// available only after a pure linear programming model was optimized.
func (c Constr) Slack() (float64, bool) {
	return c.model.solver.ConstrSlack(c.idx)
}

// Pi returns the dual price of the constraint in the optimal solution,
// available only after a pure linear programming model was optimized.
func (c Constr) Pi() (float64, bool) {
	return c.model.solver.ConstrPi(c.idx)
}

// Expr returns the linear expression defining the constraint.
func (c Constr) Expr() *LinExpr {
	return c.model.solver.ConstrExpr(c.idx)
}

// SetExpr replaces the constraint's row with the given expression. The
// expression must carry a relational sense and refer only to variables of
// the constraint's model.
func (c Constr) SetExpr(e *LinExpr) error {
	if e == nil {
		return fmt.Errorf("nil expression: %w", ErrTypeMismatch)
	}
	if err := e.Err(); err != nil {
		return err
	}
	switch e.sense {
	case Equal, LessOrEqual, GreaterOrEqual:
	default:
		return fmt.Errorf("constraint requires a relational sense, got %q: %w", string(e.sense), ErrInvalidSense)
	}
	if err := c.model.checkOwnership(e); err != nil {
		return err
	}
	c.model.solver.SetConstrExpr(c.idx, e.Copy())
	c.model.invalidate()
	return nil
}

// String renders the constraint as "name: +a x1 -b x2 <= rhs", wrapping
// long rows for readability.
func (c Constr) String() string {
	var b strings.Builder
	if name := c.Name(); name != "" {
		b.WriteString(name)
		b.WriteString(":")
	} else {
		fmt.Fprintf(&b, "constr(%d):", c.idx+1)
	}
	e := c.Expr()
	lineLen := 0
	for _, i := range e.sortedIndices() {
		t := e.terms[i]
		s := fmt.Sprintf(" %+v %s", t.coeff, t.v.Name())
		lineLen += len(s)
		b.WriteString(s)
		if lineLen > 75 {
			b.WriteString("\n\t")
			lineLen = 0
		}
	}
	fmt.Fprintf(&b, " %s %v", e.sense.symbol(), -e.constant)
	return b.String()
}
