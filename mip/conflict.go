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
	"math"
)

// Literal is an assignment of a binary variable: the variable at one when
// Value is true, at zero otherwise. It is the closed set of argument kinds
// the conflict graph accepts.
type Literal struct {
	Var   Var
	Value bool
}

// PositiveLiteral returns the literal v == 1.
func PositiveLiteral(v Var) Literal {
	return Literal{Var: v, Value: true}
}

// NegativeLiteral returns the literal v == 0.
func NegativeLiteral(v Var) Literal {
	return Literal{Var: v, Value: false}
}

func (l Literal) String() string {
	if l.Value {
		return l.Var.Name()
	}
	return "!" + l.Var.Name()
}

// ConflictGraph is a read-only query facade over the solver-maintained
// index of pairwise incompatibilities between binary assignments. For
// example the constraint x1 + x2 <= 1 makes x1 == 1 and x2 == 1
// conflicting, and x1 <= x2 makes x1 == 1 and x2 == 0 conflicting.
//
// Queries accept either a Var, meaning the assignment to one, or a
// *LinExpr of the form `x == 0` or `x == 1` naming the assignment
// explicitly. Nothing is cached here: every call reflects the solver's
// live conflict index.
type ConflictGraph struct {
	model *Model
}

// Conflicting reports whether the two binary assignments can never hold
// simultaneously.
func (g *ConflictGraph) Conflicting(e1, e2 any) (bool, error) {
	l1, err := g.literalOf(e1)
	if err != nil {
		return false, err
	}
	l2, err := g.literalOf(e2)
	if err != nil {
		return false, err
	}
	return g.model.solver.Conflicting(l1, l2), nil
}

// ConflictingAssignments partitions all variables with a discovered
// conflict against the given assignment into those conflicting when set
// to one and those conflicting when set to zero.
func (g *ConflictGraph) ConflictingAssignments(x any) (atOne, atZero []Var, err error) {
	l, err := g.literalOf(x)
	if err != nil {
		return nil, nil, err
	}
	oneIdx, zeroIdx := g.model.solver.ConflictingNodes(l)
	atOne = make([]Var, len(oneIdx))
	for i, idx := range oneIdx {
		atOne[i] = g.model.Var(idx)
	}
	atZero = make([]Var, len(zeroIdx))
	for i, idx := range zeroIdx {
		atZero[i] = g.model.Var(idx)
	}
	return atOne, atZero, nil
}

// literalOf validates the argument type before any solver delegation: a
// bare Var encodes the assignment to one, an expression must be of the
// form `x == 0` or `x == 1`.
func (g *ConflictGraph) literalOf(x any) (Literal, error) {
	switch t := x.(type) {
	case Var:
		return PositiveLiteral(t), nil
	case *LinExpr:
		return literalFromExpr(t)
	default:
		return Literal{}, fmt.Errorf("type %T not supported: %w", x, ErrTypeMismatch)
	}
}

func literalFromExpr(e *LinExpr) (Literal, error) {
	if e.sense != Equal || len(e.terms) != 1 {
		return Literal{}, fmt.Errorf("expression %q does not encode a binary assignment", e)
	}
	var t term
	for _, t = range e.terms {
	}
	val := -e.constant / t.coeff
	switch {
	case math.Abs(val-1) <= EPS:
		return PositiveLiteral(t.v), nil
	case math.Abs(val) <= EPS:
		return NegativeLiteral(t.v), nil
	}
	return Literal{}, fmt.Errorf("expression %q does not encode a binary assignment", e)
}
